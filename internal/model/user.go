// Package model defines the data structures used throughout the application.
// Every record carries both bson tags (how it is stored in MongoDB) and json
// tags (how it is rendered in API responses). The `id` field is our own
// xid-generated string, kept separate from Mongo's internal `_id` so primary
// keys never depend on the storage engine.
package model

import "time"

// Role distinguishes the two kinds of accounts. A user's role is assigned
// when the account is first created and is never changed afterwards.
type Role string

const (
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

// User represents a registered account.
//
// Identity is fully delegated to the external assertion service — we never
// store passwords. Email is the natural key: repeated logins with the same
// email always map back to the same user record (and keep its role).
type User struct {
	ID        string    `bson:"id" json:"id"`
	Email     string    `bson:"email" json:"email"`
	Name      string    `bson:"name" json:"name"`
	Picture   string    `bson:"picture" json:"picture"` // avatar URL from the identity provider
	Role      Role      `bson:"role" json:"role"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// IsTeacher reports whether the user holds the teacher role.
func (u *User) IsTeacher() bool { return u.Role == RoleTeacher }

// IsStudent reports whether the user holds the student role.
func (u *User) IsStudent() bool { return u.Role == RoleStudent }
