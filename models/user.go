package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a back-office account. Active users form the recipient population
// for notifications sent with sendToAllUsers.
type User struct {
	ID       primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Email    string             `json:"email" bson:"email"`
	Password string             `json:"-" bson:"password"`

	FirstName string `json:"firstName" bson:"firstName"`
	LastName  string `json:"lastName" bson:"lastName"`
	Role      string `json:"role" bson:"role"` // admin, staff

	// Push delivery target for this user's device, if registered.
	DeviceToken string `json:"-" bson:"deviceToken,omitempty"`

	IsActive bool      `json:"isActive" bson:"isActive"`
	LastSeen time.Time `json:"lastSeen" bson:"lastSeen"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
