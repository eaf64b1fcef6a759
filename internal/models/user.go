package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a single registration record stored in the users collection.
// EmailAddress and MobileNumber carry unique indexes.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName     string             `bson:"fullName" json:"fullName"`
	MobileNumber string             `bson:"mobileNumber" json:"mobileNumber"`
	EmailAddress string             `bson:"emailAddress" json:"emailAddress"`
	DateOfBirth  string             `bson:"dateOfBirth" json:"dateOfBirth"`
	AddressLine1 string             `bson:"addressLine1" json:"addressLine1"`
	AddressLine2 string             `bson:"addressLine2,omitempty" json:"addressLine2,omitempty"`
	City         string             `bson:"city" json:"city"`
	PinCode      string             `bson:"pinCode" json:"pinCode"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CreateUser is the registration payload. Id and timestamps are assigned by
// the store.
type CreateUser struct {
	FullName     string `json:"fullName"`
	MobileNumber string `json:"mobileNumber"`
	EmailAddress string `json:"emailAddress"`
	DateOfBirth  string `json:"dateOfBirth"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2"`
	City         string `json:"city"`
	PinCode      string `json:"pinCode"`
}

// UserPatch is a partial update. Nil means the field was not supplied; only
// non-nil fields are validated and written.
type UserPatch struct {
	FullName     *string `json:"fullName"`
	MobileNumber *string `json:"mobileNumber"`
	EmailAddress *string `json:"emailAddress"`
	DateOfBirth  *string `json:"dateOfBirth"`
	AddressLine1 *string `json:"addressLine1"`
	AddressLine2 *string `json:"addressLine2"`
	City         *string `json:"city"`
	PinCode      *string `json:"pinCode"`
}

// UserList is the listing response payload. Total and Showing are equal while
// the API has no pagination.
type UserList struct {
	Users   []User `json:"users"`
	Total   int64  `json:"total"`
	Showing int    `json:"showing"`
}
