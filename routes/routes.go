package routes

import (
	"time"

	"github.com/Kawish07/concepcion-pena/handlers"
	"github.com/Kawish07/concepcion-pena/middleware"
	"github.com/Kawish07/concepcion-pena/storage"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, store *storage.LocalStore) {
	listings := handlers.NewListingController(store)
	contacts := handlers.NewContactController()
	leads := handlers.NewLetsConnectController()
	admins := handlers.NewAdminController()

	auth := middleware.JWTMiddleware()
	submitLimiter := middleware.NewLimiterStore(30, 10, 5*time.Minute)
	rateLimited := middleware.RateLimit(submitLimiter)

	e.GET("/health", handlers.HealthCheck)
	e.Static("/uploads", store.Dir())

	api := e.Group("/api")

	api.GET("/listings", listings.ListListings)
	api.GET("/listings/:id", listings.GetListing)
	api.POST("/listings", listings.CreateListing, auth)
	api.PUT("/listings/:id", listings.UpdateListing, auth)
	api.DELETE("/listings/:id", listings.DeleteListing, auth)

	api.POST("/contact", contacts.CreateContact, rateLimited)
	api.GET("/contact", contacts.ListContacts)

	api.POST("/letsconnect", leads.CreateLetsConnect, rateLimited)
	api.GET("/letsconnect", leads.ListLetsConnect)

	api.POST("/admin/signup", admins.Signup, rateLimited)
	api.POST("/admin/login", admins.Login, rateLimited)
	api.GET("/admin/me", admins.Me, auth)
}
