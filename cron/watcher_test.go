package cron_test

import (
	"testing"
	"time"

	"hoteltriggers/cron"
	"hoteltriggers/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func changeDoc(op, coll, id string) cron.ChangeDoc {
	var c cron.ChangeDoc
	c.ID = bson.M{"_data": "8263"}
	c.OperationType = op
	c.NS.DB = "hotel_booking"
	c.NS.Coll = coll
	c.DocumentKey = bson.M{"_id": id}
	return c
}

func TestChangeDoc_Update(t *testing.T) {
	c := changeDoc("update", "bookings", "B2")
	c.FullDocumentBeforeChange = bson.M{"_id": "B2", "status": "pending"}
	c.FullDocument = bson.M{"_id": "B2", "status": "confirmed"}
	c.WallTime = primitive.NewDateTimeFromTime(time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC))

	evt, ok := c.ChangeEvent()
	require.True(t, ok)
	assert.Equal(t, "8263", evt.ID)
	assert.Equal(t, models.ChangeUpdate, evt.Kind)
	assert.Equal(t, "bookings/B2", evt.Path)
	assert.Equal(t, "pending", evt.Before.StringField("status"))
	assert.Equal(t, "confirmed", evt.After.StringField("status"))
	assert.NotContains(t, evt.After.Fields, "_id")
	assert.Equal(t, time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC), evt.Timestamp)
}

func TestChangeDoc_NestedCollection(t *testing.T) {
	c := changeDoc("delete", "hotels.H1.rooms", "R1")
	c.FullDocumentBeforeChange = bson.M{"_id": "R1", "pricePerNight": int32(90)}

	evt, ok := c.ChangeEvent()
	require.True(t, ok)
	assert.Equal(t, models.ChangeDelete, evt.Kind)
	assert.Equal(t, "hotels/H1/rooms/R1", evt.Path)
	assert.Nil(t, evt.After)
	require.NotNil(t, evt.Before)
}

func TestChangeDoc_Skipped(t *testing.T) {
	_, ok := changeDoc("drop", "bookings", "B1").ChangeEvent()
	assert.False(t, ok)

	_, ok = changeDoc("insert", "hotels.H1", "x").ChangeEvent()
	assert.False(t, ok, "collection name with an even path")

	c := changeDoc("insert", "bookings", "")
	c.DocumentKey = bson.M{}
	_, ok = c.ChangeEvent()
	assert.False(t, ok)
}

func TestChangeDoc_ReplaceWithoutPreImage(t *testing.T) {
	c := changeDoc("replace", "bookings", "B3")
	c.FullDocument = bson.M{"_id": "B3", "status": "confirmed"}

	evt, ok := c.ChangeEvent()
	require.True(t, ok)
	assert.Equal(t, models.ChangeUpdate, evt.Kind)
	assert.Nil(t, evt.Before)
}
