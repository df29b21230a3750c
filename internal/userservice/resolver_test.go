package userservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPResolver(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/oauth2/userinfo", r.URL.Path)

		switch r.Header.Get("Authorization") {
		case "Bearer goodtoken":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"userId": "u1", "username": "alice", "groupIds": ["g1"]}`))
		default:
			w.WriteHeader(http.StatusUnauthorized)
		}
	}))
	defer ts.Close()

	resolver := NewHTTPResolver(ts.URL)

	t.Run("valid token", func(t *testing.T) {
		user, err := resolver.ResolveUser(context.Background(), "goodtoken")
		assert.NoError(t, err)
		assert.Equal(t, &User{ID: "u1", Username: "alice", GroupIDs: []string{"g1"}}, user)
	})

	t.Run("invalid token", func(t *testing.T) {
		user, err := resolver.ResolveUser(context.Background(), "badtoken")
		assert.ErrorIs(t, err, ErrInvalidToken)
		assert.Nil(t, user)
	})
}

func TestIsAnonymous(t *testing.T) {
	assert.True(t, AnonymousUser.IsAnonymous())
	assert.True(t, (*User)(nil).IsAnonymous())
	assert.False(t, (&User{ID: "u1"}).IsAnonymous())
}

func TestInGroup(t *testing.T) {
	u := &User{ID: "u1", GroupIDs: []string{"g1", "g2"}}
	assert.True(t, u.InGroup("g1"))
	assert.False(t, u.InGroup("g3"))
	assert.False(t, (*User)(nil).InGroup("g1"))
}
