package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupMissingFields(t *testing.T) {
	// The nil collection proves validation runs before any store access.
	ac := &AdminController{}

	tests := []struct {
		name string
		body string
	}{
		{"no password", `{"email":"admin@x.com"}`},
		{"no email", `{"password":"hunter22"}`},
		{"empty body", `{}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := postJSON(t, "/api/admin/signup", tt.body)
			require.NoError(t, ac.Signup(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, `{"error":"Missing required fields"}`, rec.Body.String())
		})
	}
}

func TestLoginMissingFields(t *testing.T) {
	ac := &AdminController{}

	c, rec := postJSON(t, "/api/admin/login", `{"email":"admin@x.com"}`)
	require.NoError(t, ac.Login(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Missing required fields"}`, rec.Body.String())
}
