package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LetsConnect is a prospective client's request to be contacted at a
// preferred time.
type LetsConnect struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Phone     string             `bson:"phone" json:"phone"`
	BestTime  time.Time          `bson:"bestTime" json:"bestTime"`
	Timezone  string             `bson:"timezone" json:"timezone"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type LetsConnectRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	BestTime string `json:"bestTime"`
	Timezone string `json:"timezone"`
}
