package handlers

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/Kawish07/concepcion-pena/config"
	"github.com/Kawish07/concepcion-pena/models"
	"github.com/Kawish07/concepcion-pena/utils"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type AdminController struct {
	collection *mongo.Collection
}

func NewAdminController() *AdminController {
	collectionName := os.Getenv("MONGODB_COLLECTION_ADMINS")
	if collectionName == "" {
		collectionName = "admins"
	}
	return &AdminController{
		collection: config.GetCollection(collectionName),
	}
}

func (ac *AdminController) Signup(c echo.Context) error {
	var req models.SignupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Missing required fields"})
	}
	ctx := c.Request().Context()
	email := utils.NormalizeEmail(req.Email)

	count, err := ac.collection.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create admin"})
	}
	if count > 0 {
		return c.JSON(http.StatusConflict, map[string]string{"error": "User already exists"})
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to hash password"})
	}

	now := time.Now()
	admin := models.Admin{
		ID:           primitive.NewObjectID(),
		Email:        email,
		PasswordHash: hash,
		Name:         req.Name,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := ac.collection.InsertOne(ctx, admin); err != nil {
		// The unique index closes the check-then-insert race.
		if mongo.IsDuplicateKeyError(err) {
			return c.JSON(http.StatusConflict, map[string]string{"error": "User already exists"})
		}
		log.Printf("Admin signup error: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create admin"})
	}

	token, err := utils.GenerateJWT(admin.ID, admin.Email)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to generate token"})
	}

	return c.JSON(http.StatusCreated, models.AuthResponse{
		Token: token,
		Admin: admin.View(),
	})
}

func (ac *AdminController) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Missing required fields"})
	}
	ctx := c.Request().Context()

	var admin models.Admin
	err := ac.collection.FindOne(ctx, bson.M{"email": utils.NormalizeEmail(req.Email)}).Decode(&admin)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
		}
		log.Printf("Admin login error: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to login"})
	}

	if err := utils.CheckPassword(admin.PasswordHash, req.Password); err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
	}

	token, err := utils.GenerateJWT(admin.ID, admin.Email)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to generate token"})
	}

	return c.JSON(http.StatusOK, models.AuthResponse{
		Token: token,
		Admin: admin.View(),
	})
}

func (ac *AdminController) Me(c echo.Context) error {
	adminID := c.Get("admin_id").(primitive.ObjectID)
	ctx := c.Request().Context()

	var admin models.Admin
	err := ac.collection.FindOne(ctx, bson.M{"_id": adminID}).Decode(&admin)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch admin"})
	}

	return c.JSON(http.StatusOK, map[string]models.AdminView{"admin": admin.View()})
}
