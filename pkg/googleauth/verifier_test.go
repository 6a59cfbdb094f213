package googleauth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"stockpro/pkg/googleauth"

	"github.com/stretchr/testify/assert"
)

func TestClient_Verify(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer good-token", r.Header.Get("Authorization"))
		w.Write([]byte(`{"sub":"google-123","email":"g@x.com","name":"G User","picture":"https://example.com/pic.png"}`))
	}))
	defer server.Close()

	client := googleauth.NewClient(server.URL)
	profile, err := client.Verify(context.Background(), "good-token")
	assert.NoError(t, err)
	assert.Equal(t, "google-123", profile.Subject)
	assert.Equal(t, "g@x.com", profile.Email)
	assert.Equal(t, "G User", profile.Name)
}

func TestClient_VerifyRejectedToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"invalid_token"}`))
	}))
	defer server.Close()

	client := googleauth.NewClient(server.URL)
	_, err := client.Verify(context.Background(), "bad-token")
	assert.ErrorIs(t, err, googleauth.ErrTokenRejected)
}

func TestClient_VerifyUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := googleauth.NewClient(server.URL)
	_, err := client.Verify(context.Background(), "any-token")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, googleauth.ErrTokenRejected)
}
