package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Kawish07/concepcion-pena/config"
	"github.com/Kawish07/concepcion-pena/models"
	"github.com/Kawish07/concepcion-pena/storage"
	"github.com/Kawish07/concepcion-pena/utils"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	maxImageFiles    = 20
	listingsCacheKey = "listings:all"
	listingCacheTTL  = time.Minute
)

type ListingController struct {
	collection *mongo.Collection
	store      *storage.LocalStore
}

func NewListingController(store *storage.LocalStore) *ListingController {
	collectionName := os.Getenv("MONGODB_COLLECTION_LISTINGS")
	if collectionName == "" {
		collectionName = "listings"
	}
	return &ListingController{
		collection: config.GetCollection(collectionName),
		store:      store,
	}
}

func (lc *ListingController) ListListings(c echo.Context) error {
	ctx := c.Request().Context()

	var listings []models.Listing
	if hit, err := utils.GetCached(ctx, listingsCacheKey, &listings); err != nil {
		log.Printf("Listings cache read error: %v", err)
	} else if hit {
		return c.JSON(http.StatusOK, listings)
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := lc.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch listings"})
	}
	defer cursor.Close(ctx)

	listings = []models.Listing{}
	for cursor.Next(ctx) {
		var listing models.Listing
		if err := cursor.Decode(&listing); err != nil {
			continue
		}
		listings = append(listings, listing)
	}

	if err := utils.SetCached(ctx, listingsCacheKey, listings, listingCacheTTL); err != nil {
		log.Printf("Listings cache write error: %v", err)
	}

	return c.JSON(http.StatusOK, listings)
}

func (lc *ListingController) GetListing(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid id"})
	}
	ctx := c.Request().Context()
	cacheKey := "listings:" + id.Hex()

	var listing models.Listing
	if hit, err := utils.GetCached(ctx, cacheKey, &listing); err != nil {
		log.Printf("Listing cache read error: %v", err)
	} else if hit {
		return c.JSON(http.StatusOK, listing)
	}

	err = lc.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&listing)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch listing"})
	}

	if err := utils.SetCached(ctx, cacheKey, listing, listingCacheTTL); err != nil {
		log.Printf("Listing cache write error: %v", err)
	}

	return c.JSON(http.StatusOK, listing)
}

func (lc *ListingController) CreateListing(c echo.Context) error {
	ctx := c.Request().Context()

	data, err := parseListingBody(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if err := lc.attachUploads(c, data); err != nil {
		log.Printf("Create listing upload error: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to store uploads"})
	}

	doc := buildListingUpdate(data)
	for key, def := range listingDefaults {
		if _, ok := doc[key]; !ok {
			doc[key] = def
		}
	}
	now := time.Now()
	doc["createdAt"] = now
	doc["updatedAt"] = now

	res, err := lc.collection.InsertOne(ctx, doc)
	if err != nil {
		log.Printf("Create listing error: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create listing"})
	}

	var created models.Listing
	if err := lc.collection.FindOne(ctx, bson.M{"_id": res.InsertedID}).Decode(&created); err != nil {
		log.Printf("Fetch created listing error: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create listing"})
	}

	lc.invalidateCache(ctx, created.ID)
	return c.JSON(http.StatusCreated, created)
}

func (lc *ListingController) UpdateListing(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid id"})
	}
	ctx := c.Request().Context()

	data, err := parseListingBody(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if err := lc.attachUploads(c, data); err != nil {
		log.Printf("Update listing upload error: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to store uploads"})
	}

	update := buildListingUpdate(data)
	update["updatedAt"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Listing
	err = lc.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": update}, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Not found"})
		}
		log.Printf("Update listing error: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update listing"})
	}

	lc.invalidateCache(ctx, id)
	return c.JSON(http.StatusOK, updated)
}

func (lc *ListingController) DeleteListing(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid id"})
	}
	ctx := c.Request().Context()

	// Uploaded image files are intentionally left on disk; listings only
	// reference them by URL.
	if _, err := lc.collection.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		log.Printf("Delete listing error: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete listing"})
	}

	lc.invalidateCache(ctx, id)
	// Deleting a well-formed but unknown id is a no-op success.
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}

func (lc *ListingController) invalidateCache(ctx context.Context, id primitive.ObjectID) {
	if err := utils.InvalidateCache(ctx, listingsCacheKey, "listings:"+id.Hex()); err != nil {
		log.Printf("Listings cache invalidate error: %v", err)
	}
}

// parseListingBody collects the request fields into a loosely-typed map so
// multipart form values and JSON bodies go through the same coercion path.
func parseListingBody(c echo.Context) (map[string]interface{}, error) {
	data := map[string]interface{}{}

	ctype := c.Request().Header.Get(echo.HeaderContentType)
	if strings.HasPrefix(ctype, echo.MIMEMultipartForm) {
		form, err := c.MultipartForm()
		if err != nil {
			return nil, errors.New("Invalid form data")
		}
		// Plain and bracketed spellings of a field merge into one value;
		// repeated fields keep every submitted value, in order.
		seen := map[string]bool{}
		for rawKey := range form.Value {
			key := strings.TrimSuffix(rawKey, "[]")
			if seen[key] {
				continue
			}
			seen[key] = true
			vals := append([]string(nil), form.Value[key]...)
			vals = append(vals, form.Value[key+"[]"]...)
			switch {
			case len(vals) == 1:
				data[key] = vals[0]
			case len(vals) > 1:
				data[key] = vals
			}
		}
		if len(form.File["imageFiles"])+len(form.File["imageFiles[]"]) > maxImageFiles {
			return nil, errors.New("Too many image files")
		}
		return data, nil
	}

	if err := json.NewDecoder(c.Request().Body).Decode(&data); err != nil {
		return nil, errors.New("Invalid request body")
	}
	return data, nil
}

// attachUploads saves any multipart image/agent-photo files and replaces
// them in data with their public URLs, preserving upload order.
func (lc *ListingController) attachUploads(c echo.Context, data map[string]interface{}) error {
	ctype := c.Request().Header.Get(echo.HeaderContentType)
	if !strings.HasPrefix(ctype, echo.MIMEMultipartForm) {
		return nil
	}
	form, err := c.MultipartForm()
	if err != nil {
		return err
	}

	images := append([]*multipart.FileHeader{}, form.File["imageFiles"]...)
	images = append(images, form.File["imageFiles[]"]...)
	if len(images) > 0 {
		urls := make([]string, 0, len(images))
		for _, fh := range images {
			filename, err := lc.store.SaveUpload(fh)
			if err != nil {
				return err
			}
			urls = append(urls, uploadURL(c, filename))
		}
		data["images"] = urls
	}

	if photos := form.File["agentPhotoFile"]; len(photos) > 0 {
		filename, err := lc.store.SaveUpload(photos[0])
		if err != nil {
			return err
		}
		data["agentPhoto"] = uploadURL(c, filename)
	}
	return nil
}

func uploadURL(c echo.Context, filename string) string {
	return fmt.Sprintf("%s://%s/uploads/%s", c.Scheme(), c.Request().Host, filename)
}

// listingFields maps accepted input keys to the coercion applied before the
// value reaches the store. Keys outside this table are dropped.
var listingFields = map[string]func(interface{}) interface{}{
	"title":                 asString,
	"address":               asString,
	"price":                 asFloat,
	"beds":                  asFloat,
	"baths":                 asFloat,
	"livingArea":            asFloat,
	"sqft":                  asString,
	"status":                asString,
	"images":                asStringSlice,
	"description":           asString,
	"lotSize":               asString,
	"mls":                   asString,
	"agent":                 asString,
	"agentPhoto":            asString,
	"requestInfo":           asBool,
	"features":              asString,
	"amenities":             asString,
	"totalBedrooms":         asInt,
	"totalBathrooms":        asInt,
	"fullBathrooms":         asInt,
	"threeQuarterBathrooms": asInt,
}

// listingDefaults mirrors the listing schema defaults so a partial create
// still produces a fully-populated document.
var listingDefaults = map[string]interface{}{
	"title":                 "",
	"address":               "",
	"price":                 float64(0),
	"beds":                  float64(0),
	"baths":                 float64(0),
	"livingArea":            float64(0),
	"sqft":                  "",
	"status":                "active",
	"images":                []string{},
	"description":           "",
	"lotSize":               "",
	"mls":                   "",
	"agent":                 "",
	"agentPhoto":            "",
	"requestInfo":           true,
	"features":              "",
	"amenities":             "",
	"totalBedrooms":         0,
	"totalBathrooms":        0,
	"fullBathrooms":         0,
	"threeQuarterBathrooms": 0,
}

func buildListingUpdate(data map[string]interface{}) bson.M {
	update := bson.M{}
	for key, v := range data {
		if coerce, ok := listingFields[key]; ok {
			update[key] = coerce(v)
		}
	}
	return update
}

func asString(v interface{}) interface{} {
	if s, ok := v.(string); ok {
		return s
	}
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}

func asFloat(v interface{}) interface{} { return utils.ToFloat(v) }
func asInt(v interface{}) interface{}   { return utils.ToInt(v) }
func asBool(v interface{}) interface{}  { return utils.ToBool(v) }

func asStringSlice(v interface{}) interface{} {
	switch s := v.(type) {
	case []string:
		return s
	case []interface{}:
		out := make([]string, 0, len(s))
		for _, e := range s {
			out = append(out, asString(e).(string))
		}
		return out
	case string:
		if s == "" {
			return []string{}
		}
		return []string{s}
	}
	return []string{}
}
