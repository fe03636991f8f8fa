package handlers

import (
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

type ContactController struct {
	collection *mongo.Collection
}

func NewContactController() *ContactController {
	collectionName := os.Getenv("MONGODB_COLLECTION_CONTACTS")
	if collectionName == "" {
		collectionName = "contacts"
	}
	return &ContactController{
		collection: config.GetCollection(collectionName),
	}
}

func (cc *ContactController) CreateContact(c echo.Context) error {
	var req models.ContactRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if req.Name == "" || req.Email == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Missing required fields"})
	}

	now := time.Now()
	contact := models.Contact{
		ID:        primitive.NewObjectID(),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := cc.collection.InsertOne(c.Request().Context(), contact); err != nil {
		log.Printf("Create contact error: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create contact"})
	}

	return c.JSON(http.StatusCreated, contact)
}

func (cc *ContactController) ListContacts(c echo.Context) error {
	ctx := c.Request().Context()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := cc.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to list contacts"})
	}
	defer cursor.Close(ctx)

	contacts := []models.Contact{}
	for cursor.Next(ctx) {
		var contact models.Contact
		if err := cursor.Decode(&contact); err != nil {
			continue
		}
		contacts = append(contacts, contact)
	}

	return c.JSON(http.StatusOK, contacts)
}
