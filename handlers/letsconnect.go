package handlers

import (
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/Kawish07/concepcion-pena/config"
	"github.com/Kawish07/concepcion-pena/models"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// bestTimeLayouts are the timestamp shapes the booking form is known to
// send, most specific first.
var bestTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

func parseBestTime(s string) (time.Time, error) {
	for _, layout := range bestTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("unrecognized time format")
}

type LetsConnectController struct {
	collection *mongo.Collection
}

func NewLetsConnectController() *LetsConnectController {
	collectionName := os.Getenv("MONGODB_COLLECTION_LETSCONNECT")
	if collectionName == "" {
		collectionName = "letsconnects"
	}
	return &LetsConnectController{
		collection: config.GetCollection(collectionName),
	}
}

func (lcc *LetsConnectController) CreateLetsConnect(c echo.Context) error {
	var req models.LetsConnectRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if req.Name == "" || req.Email == "" || req.BestTime == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Missing required fields"})
	}

	bestTime, err := parseBestTime(req.BestTime)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid bestTime"})
	}

	timezone := req.Timezone
	if timezone == "" {
		timezone = "ET"
	}

	now := time.Now()
	lead := models.LetsConnect{
		ID:        primitive.NewObjectID(),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		BestTime:  bestTime,
		Timezone:  timezone,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := lcc.collection.InsertOne(c.Request().Context(), lead); err != nil {
		log.Printf("Create letsconnect error: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create letsconnect"})
	}

	return c.JSON(http.StatusCreated, lead)
}

func (lcc *LetsConnectController) ListLetsConnect(c echo.Context) error {
	ctx := c.Request().Context()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := lcc.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to list letsconnect"})
	}
	defer cursor.Close(ctx)

	leads := []models.LetsConnect{}
	for cursor.Next(ctx) {
		var lead models.LetsConnect
		if err := cursor.Decode(&lead); err != nil {
			continue
		}
		leads = append(leads, lead)
	}

	return c.JSON(http.StatusOK, leads)
}
