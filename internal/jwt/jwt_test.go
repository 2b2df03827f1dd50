package jwt

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateAndGetSubject(t *testing.T) {
	j := New("test-secret", time.Minute)
	ctx := context.Background()

	token, err := j.Generate(ctx, "user-sub-123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	sub, err := j.GetSubject(ctx, token)
	assert.NoError(t, err)
	assert.Equal(t, "user-sub-123", sub)
}

func TestGetSubject_WrongSecret(t *testing.T) {
	ctx := context.Background()

	token, err := New("secret-a", time.Minute).Generate(ctx, "u1")
	assert.NoError(t, err)

	_, err = New("secret-b", time.Minute).GetSubject(ctx, token)
	assert.Error(t, err)
}

func TestGetSubject_Expired(t *testing.T) {
	ctx := context.Background()
	j := New("test-secret", -time.Minute)

	token, err := j.Generate(ctx, "u1")
	assert.NoError(t, err)

	_, err = j.GetSubject(ctx, token)
	assert.Error(t, err)
}

func TestGetTokenFromRequest(t *testing.T) {
	j := New("test-secret", time.Minute)
	ctx := context.Background()

	t.Run("missing header", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/", nil)
		_, err := j.GetTokenFromRequest(ctx, r)
		assert.Error(t, err)
	})

	t.Run("bad format", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/", nil)
		r.Header.Set("Authorization", "Basic abc")
		_, err := j.GetTokenFromRequest(ctx, r)
		assert.Error(t, err)
	})

	t.Run("bearer", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/", nil)
		r.Header.Set("Authorization", "Bearer sometoken")
		token, err := j.GetTokenFromRequest(ctx, r)
		assert.NoError(t, err)
		assert.Equal(t, "sometoken", token)
	})
}
