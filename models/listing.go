package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Listing struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Address     string             `bson:"address" json:"address"`
	Price       float64            `bson:"price" json:"price"`
	Beds        float64            `bson:"beds" json:"beds"`
	Baths       float64            `bson:"baths" json:"baths"`
	LivingArea  float64            `bson:"livingArea" json:"livingArea"`
	Sqft        string             `bson:"sqft" json:"sqft"`
	Status      string             `bson:"status" json:"status"`
	Images      []string           `bson:"images" json:"images"`
	Description string             `bson:"description" json:"description"`
	LotSize     string             `bson:"lotSize" json:"lotSize"`
	MLS         string             `bson:"mls" json:"mls"`
	Agent       string             `bson:"agent" json:"agent"`
	AgentPhoto  string             `bson:"agentPhoto" json:"agentPhoto"`
	RequestInfo bool               `bson:"requestInfo" json:"requestInfo"`
	Features    string             `bson:"features" json:"features"`
	Amenities   string             `bson:"amenities" json:"amenities"`

	TotalBedrooms         int `bson:"totalBedrooms" json:"totalBedrooms"`
	TotalBathrooms        int `bson:"totalBathrooms" json:"totalBathrooms"`
	FullBathrooms         int `bson:"fullBathrooms" json:"fullBathrooms"`
	ThreeQuarterBathrooms int `bson:"threeQuarterBathrooms" json:"threeQuarterBathrooms"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
