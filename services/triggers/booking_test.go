package triggers_test

import (
	"context"
	"testing"

	"hoteltriggers/database/repository"
	"hoteltriggers/models"
	"hoteltriggers/services/triggers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRegistry(t *testing.T, store *memStore, sender *fakeSender) *triggers.Registry {
	t.Helper()
	reg := triggers.NewRegistry(zap.NewNop(), nil)
	require.NoError(t, triggers.RegisterDefaults(reg, triggers.Deps{
		Repos:  repository.New(store),
		Sender: sender,
		Logger: zap.NewNop(),
	}))
	return reg
}

func bookingSnap(id string, fields map[string]any) *models.Snapshot {
	return &models.Snapshot{ID: id, Path: "bookings/" + id, Exists: true, Fields: fields}
}

func TestBookingCreated_NotifiesOwner(t *testing.T) {
	store := newMemStore()
	store.put("users", "U1", map[string]any{"fcmToken": "tok-A"})
	sender := &fakeSender{}
	reg := newRegistry(t, store, sender)

	err := reg.Dispatch(context.Background(), models.ChangeEvent{
		ID:   "e1",
		Kind: models.ChangeCreate,
		Path: "bookings/B1",
		After: bookingSnap("B1", map[string]any{
			"ownerId": "U1", "userId": "C1", "hotelName": "Sea View", "status": "pending",
		}),
	})
	require.NoError(t, err)

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "tok-A", sender.sent[0].token)
	assert.Equal(t, "Booking Mới!", sender.sent[0].n.Title)
	assert.Equal(t, "Bạn có một đặt phòng mới tại Sea View.", sender.sent[0].n.Body)
	assert.Equal(t, map[string]string{"bookingId": "B1", "screen": "AdminBookingList"}, sender.sent[0].n.Data)
}

func TestBookingCreated_NoOps(t *testing.T) {
	tests := []struct {
		name  string
		users map[string]map[string]any
		owner any
	}{
		{name: "owner missing", users: nil, owner: "U1"},
		{name: "no token field", users: map[string]map[string]any{"U1": {"name": "admin"}}, owner: "U1"},
		{name: "null token", users: map[string]map[string]any{"U1": {"fcmToken": nil}}, owner: "U1"},
		{name: "empty token", users: map[string]map[string]any{"U1": {"fcmToken": ""}}, owner: "U1"},
		{name: "no owner id", users: map[string]map[string]any{"U1": {"fcmToken": "tok"}}, owner: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			for id, f := range tt.users {
				store.put("users", id, f)
			}
			sender := &fakeSender{}
			reg := newRegistry(t, store, sender)

			err := reg.Dispatch(context.Background(), models.ChangeEvent{
				Kind:  models.ChangeCreate,
				Path:  "bookings/B1",
				After: bookingSnap("B1", map[string]any{"ownerId": tt.owner, "hotelName": "Sea View"}),
			})
			require.NoError(t, err)
			assert.Empty(t, sender.sent)
		})
	}
}

func TestBookingCreated_SendFailurePropagates(t *testing.T) {
	store := newMemStore()
	store.put("users", "U1", map[string]any{"fcmToken": "tok-A"})
	sender := &fakeSender{err: errBoom}
	reg := newRegistry(t, store, sender)

	err := reg.Dispatch(context.Background(), models.ChangeEvent{
		Kind:  models.ChangeCreate,
		Path:  "bookings/B1",
		After: bookingSnap("B1", map[string]any{"ownerId": "U1", "hotelName": "Sea View"}),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, errBoom)
	assert.Len(t, sender.sent, 1)
}

func TestBookingCreated_LookupFailurePropagates(t *testing.T) {
	store := newMemStore()
	store.getErr = errBoom
	sender := &fakeSender{}
	reg := newRegistry(t, store, sender)

	err := reg.Dispatch(context.Background(), models.ChangeEvent{
		Kind:  models.ChangeCreate,
		Path:  "bookings/B1",
		After: bookingSnap("B1", map[string]any{"ownerId": "U1"}),
	})
	assert.ErrorIs(t, err, errBoom)
	assert.Empty(t, sender.sent)
}

func TestBookingConfirmed_NotifiesCustomer(t *testing.T) {
	store := newMemStore()
	store.put("users", "U2", map[string]any{"fcmToken": "tok-B"})
	store.put("users", "OWNER", map[string]any{"fcmToken": "tok-owner"})
	sender := &fakeSender{}
	reg := newRegistry(t, store, sender)

	fields := func(status string) map[string]any {
		return map[string]any{"ownerId": "OWNER", "userId": "U2", "hotelName": "Lake House", "status": status}
	}
	err := reg.Dispatch(context.Background(), models.ChangeEvent{
		Kind:   models.ChangeUpdate,
		Path:   "bookings/B2",
		Before: bookingSnap("B2", fields("pending")),
		After:  bookingSnap("B2", fields("confirmed")),
	})
	require.NoError(t, err)

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "tok-B", sender.sent[0].token)
	assert.Equal(t, "Đặt phòng được xác nhận!", sender.sent[0].n.Title)
	assert.Equal(t, "Đặt phòng của bạn tại Lake House đã được xác nhận.", sender.sent[0].n.Body)
	assert.Equal(t, map[string]string{"bookingId": "B2", "screen": "BookingList"}, sender.sent[0].n.Data)
}

func TestBookingConfirmed_OnlyPendingToConfirmed(t *testing.T) {
	statuses := []any{"pending", "confirmed", "cancelled", "completed", "Pending", "", nil}
	for _, before := range statuses {
		for _, after := range statuses {
			store := newMemStore()
			store.put("users", "U2", map[string]any{"fcmToken": "tok-B"})
			sender := &fakeSender{}
			reg := newRegistry(t, store, sender)

			err := reg.Dispatch(context.Background(), models.ChangeEvent{
				Kind:   models.ChangeUpdate,
				Path:   "bookings/B2",
				Before: bookingSnap("B2", map[string]any{"userId": "U2", "hotelName": "Lake House", "status": before}),
				After:  bookingSnap("B2", map[string]any{"userId": "U2", "hotelName": "Lake House", "status": after}),
			})
			require.NoError(t, err)

			want := 0
			if before == "pending" && after == "confirmed" {
				want = 1
			}
			assert.Len(t, sender.sent, want, "before=%v after=%v", before, after)
		}
	}
}

func TestBookingConfirmed_CustomerWithoutToken(t *testing.T) {
	store := newMemStore()
	store.put("users", "U2", map[string]any{})
	sender := &fakeSender{}
	reg := newRegistry(t, store, sender)

	err := reg.Dispatch(context.Background(), models.ChangeEvent{
		Kind:   models.ChangeUpdate,
		Path:   "bookings/B2",
		Before: bookingSnap("B2", map[string]any{"userId": "U2", "status": "pending"}),
		After:  bookingSnap("B2", map[string]any{"userId": "U2", "status": "confirmed"}),
	})
	require.NoError(t, err)
	assert.Empty(t, sender.sent)
}

func TestIsConfirmation(t *testing.T) {
	assert.True(t, triggers.IsConfirmation(models.Booking{Status: "pending"}, models.Booking{Status: "confirmed"}))
	assert.False(t, triggers.IsConfirmation(models.Booking{Status: "pending"}, models.Booking{Status: "cancelled"}))
	assert.False(t, triggers.IsConfirmation(models.Booking{Status: "confirmed"}, models.Booking{Status: "pending"}))
	assert.False(t, triggers.IsConfirmation(models.Booking{Status: "pending"}, models.Booking{Status: "pending"}))
	assert.False(t, triggers.IsConfirmation(models.Booking{Status: "confirmed"}, models.Booking{Status: "confirmed"}))
}
