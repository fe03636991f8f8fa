package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBestTime(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want time.Time
	}{
		{"RFC3339", "2026-09-02T14:30:00Z", time.Date(2026, 9, 2, 14, 30, 0, 0, time.UTC)},
		{"datetime-local", "2026-09-02T14:30", time.Date(2026, 9, 2, 14, 30, 0, 0, time.UTC)},
		{"date only", "2026-09-02", time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseBestTime(tt.in)
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %v", got)
		})
	}
}

func TestParseBestTimeInvalid(t *testing.T) {
	_, err := parseBestTime("whenever works")
	assert.Error(t, err)

	_, err = parseBestTime("")
	assert.Error(t, err)
}

func TestCreateLetsConnectMissingBestTime(t *testing.T) {
	// The nil collection proves validation runs before any store access.
	lcc := &LetsConnectController{}

	c, rec := postJSON(t, "/api/letsconnect", `{"name":"Jane","email":"jane@x.com"}`)
	require.NoError(t, lcc.CreateLetsConnect(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Missing required fields"}`, rec.Body.String())
}

func TestCreateLetsConnectUnparseableBestTime(t *testing.T) {
	lcc := &LetsConnectController{}

	c, rec := postJSON(t, "/api/letsconnect", `{"name":"Jane","email":"jane@x.com","bestTime":"whenever works"}`)
	require.NoError(t, lcc.CreateLetsConnect(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid bestTime"}`, rec.Body.String())
}
