package models

// UsersCollection holds one document per app user, admins included.
const UsersCollection = "users"

// User is the typed view of a users/{id} document.
type User struct {
	ID       string `json:"id"`
	FCMToken string `json:"fcmToken"`
}

// DecodeUser reads a user snapshot. A null or non-string token decodes as empty.
func DecodeUser(s *Snapshot) User {
	if s == nil {
		return User{}
	}
	return User{ID: s.ID, FCMToken: s.StringField("fcmToken")}
}
