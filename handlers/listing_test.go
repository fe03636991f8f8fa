package handlers

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Kawish07/concepcion-pena/storage"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestBuildListingUpdateCoercesNumerics(t *testing.T) {
	update := buildListingUpdate(map[string]interface{}{
		"title":         "Modern Farmhouse",
		"price":         "925000",
		"beds":          "4",
		"baths":         "2.5",
		"livingArea":    "3200",
		"totalBedrooms": "4",
		"requestInfo":   "false",
		"bogusField":    "dropped",
	})

	assert.Equal(t, bson.M{
		"title":         "Modern Farmhouse",
		"price":         float64(925000),
		"beds":          float64(4),
		"baths":         2.5,
		"livingArea":    float64(3200),
		"totalBedrooms": 4,
		"requestInfo":   false,
	}, update)
}

func TestBuildListingUpdateGarbageNumericsBecomeZero(t *testing.T) {
	update := buildListingUpdate(map[string]interface{}{
		"price": "call for price",
		"beds":  "",
	})

	assert.Equal(t, float64(0), update["price"])
	assert.Equal(t, float64(0), update["beds"])
}

func TestListingDefaultsCoverSchema(t *testing.T) {
	require.Equal(t, len(listingFields), len(listingDefaults))
	for key := range listingFields {
		_, ok := listingDefaults[key]
		assert.True(t, ok, "missing default for %s", key)
	}
	assert.Equal(t, "active", listingDefaults["status"])
	assert.Equal(t, true, listingDefaults["requestInfo"])
	assert.Equal(t, []string{}, listingDefaults["images"])
}

func TestParseListingBodyJSON(t *testing.T) {
	body := strings.NewReader(`{"title":"Cape Cod","price":"450000","beds":3}`)
	req := httptest.NewRequest(http.MethodPost, "http://example.com/api/listings", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := echo.New().NewContext(req, httptest.NewRecorder())

	data, err := parseListingBody(c)
	require.NoError(t, err)
	assert.Equal(t, "Cape Cod", data["title"])
	assert.Equal(t, "450000", data["price"])
	assert.Equal(t, float64(3), data["beds"])
}

func TestParseListingBodyJSONInvalid(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "http://example.com/api/listings", strings.NewReader("{nope"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := echo.New().NewContext(req, httptest.NewRecorder())

	_, err := parseListingBody(c)
	assert.Error(t, err)
}

func TestParseListingBodyMultipartValues(t *testing.T) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("title", "Split Level"))
	require.NoError(t, w.WriteField("price", "619000"))
	require.NoError(t, w.WriteField("status[]", "pending"))
	require.NoError(t, w.Close())

	c := multipartContext(t, &buf, w)

	data, err := parseListingBody(c)
	require.NoError(t, err)
	assert.Equal(t, "Split Level", data["title"])
	assert.Equal(t, "619000", data["price"])
	// Bracketed field names are accepted for client compatibility.
	assert.Equal(t, "pending", data["status"])
}

func TestParseListingBodyRepeatedValuesKeepAll(t *testing.T) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("images[]", "http://example.com/uploads/a.jpg"))
	require.NoError(t, w.WriteField("images[]", "http://example.com/uploads/b.jpg"))
	require.NoError(t, w.Close())

	c := multipartContext(t, &buf, w)

	data, err := parseListingBody(c)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"http://example.com/uploads/a.jpg",
		"http://example.com/uploads/b.jpg",
	}, data["images"])

	// The full list survives coercion into the update document.
	update := buildListingUpdate(data)
	assert.Equal(t, []string{
		"http://example.com/uploads/a.jpg",
		"http://example.com/uploads/b.jpg",
	}, update["images"])
}

func TestParseListingBodyMergesPlainAndBracketedValues(t *testing.T) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("images", "http://example.com/uploads/a.jpg"))
	require.NoError(t, w.WriteField("images[]", "http://example.com/uploads/b.jpg"))
	require.NoError(t, w.Close())

	c := multipartContext(t, &buf, w)

	data, err := parseListingBody(c)
	require.NoError(t, err)
	// Plain fields come first, then the bracketed ones.
	assert.Equal(t, []string{
		"http://example.com/uploads/a.jpg",
		"http://example.com/uploads/b.jpg",
	}, data["images"])
}

func TestParseListingBodyTooManyImages(t *testing.T) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for i := 0; i < maxImageFiles+1; i++ {
		fw, err := w.CreateFormFile("imageFiles", fmt.Sprintf("img%d.jpg", i))
		require.NoError(t, err)
		_, err = fw.Write([]byte("x"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	c := multipartContext(t, &buf, w)

	_, err := parseListingBody(c)
	assert.Error(t, err)
}

func TestAttachUploadsMapsFilesToURLs(t *testing.T) {
	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	lc := &ListingController{store: store}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, name := range []string{"one.jpg", "two.png", "three.webp"} {
		fw, err := w.CreateFormFile("imageFiles", name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(name))
		require.NoError(t, err)
	}
	fw, err := w.CreateFormFile("agentPhotoFile", "agent.jpg")
	require.NoError(t, err)
	_, err = fw.Write([]byte("agent"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	c := multipartContext(t, &buf, w)

	data := map[string]interface{}{}
	require.NoError(t, lc.attachUploads(c, data))

	urls, ok := data["images"].([]string)
	require.True(t, ok)
	require.Len(t, urls, 3)
	// Order-preserving: the generated names keep each original extension.
	assert.True(t, strings.HasSuffix(urls[0], ".jpg"))
	assert.True(t, strings.HasSuffix(urls[1], ".png"))
	assert.True(t, strings.HasSuffix(urls[2], ".webp"))
	for _, u := range urls {
		assert.True(t, strings.HasPrefix(u, "http://example.com/uploads/"), u)
	}

	agentPhoto, ok := data["agentPhoto"].(string)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(agentPhoto, "http://example.com/uploads/"))
}

func TestAttachUploadsBracketedImageField(t *testing.T) {
	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	lc := &ListingController{store: store}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("imageFiles[]", "deck.jpg")
	require.NoError(t, err)
	_, err = fw.Write([]byte("deck"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	c := multipartContext(t, &buf, w)

	data := map[string]interface{}{}
	require.NoError(t, lc.attachUploads(c, data))

	urls, ok := data["images"].([]string)
	require.True(t, ok)
	require.Len(t, urls, 1)
}

func TestListingHandlersRejectMalformedID(t *testing.T) {
	// The nil collection proves the id check runs before any store access.
	lc := &ListingController{}

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		req := httptest.NewRequest(method, "http://example.com/api/listings/not-a-hex-id", nil)
		rec := httptest.NewRecorder()
		c := echo.New().NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("not-a-hex-id")

		var err error
		switch method {
		case http.MethodGet:
			err = lc.GetListing(c)
		case http.MethodPut:
			err = lc.UpdateListing(c)
		default:
			err = lc.DeleteListing(c)
		}
		require.NoError(t, err, method)
		assert.Equal(t, http.StatusBadRequest, rec.Code, method)
		assert.JSONEq(t, `{"error":"Invalid id"}`, rec.Body.String(), method)
	}
}

func multipartContext(t *testing.T, body *bytes.Buffer, w *multipart.Writer) echo.Context {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "http://example.com/api/listings", body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return echo.New().NewContext(req, httptest.NewRecorder())
}
