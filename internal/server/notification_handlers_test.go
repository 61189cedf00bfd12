package server

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// likeOnce creates a post as author and likes it as liker, producing one
// notification for the author.
func likeOnce(t *testing.T, ta *testApp, author, liker string) float64 {
	t.Helper()

	resp := ta.request(t, fiber.MethodPost, "/api/posts/create", map[string]string{
		"text": "notify me",
	}, author)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	postID := decodeMap(t, resp)["id"].(float64)

	resp = ta.request(t, fiber.MethodPost, fmt.Sprintf("/api/posts/like/%.0f", postID), nil, liker)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	return postID
}

func TestGetNotifications(t *testing.T) {
	ta := newTestApp(t)
	alice := ta.signup(t, "alice", "secret-pass")
	bob := ta.signup(t, "bob", "secret-pass")

	likeOnce(t, ta, bob, alice)

	t.Run("first fetch returns unread and marks read", func(t *testing.T) {
		resp := ta.request(t, fiber.MethodGet, "/api/notifications/", nil, bob)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		var list []map[string]any
		decodeJSON(t, resp, &list)
		require.Len(t, list, 1)
		assert.False(t, list[0]["read"].(bool))

		resp = ta.request(t, fiber.MethodGet, "/api/notifications/", nil, bob)
		decodeJSON(t, resp, &list)
		require.Len(t, list, 1)
		assert.True(t, list[0]["read"].(bool))
	})

	t.Run("other users see nothing", func(t *testing.T) {
		resp := ta.request(t, fiber.MethodGet, "/api/notifications/", nil, alice)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		var list []map[string]any
		decodeJSON(t, resp, &list)
		assert.Empty(t, list)
	})
}

func TestDeleteNotifications(t *testing.T) {
	ta := newTestApp(t)
	alice := ta.signup(t, "alice", "secret-pass")
	bob := ta.signup(t, "bob", "secret-pass")

	likeOnce(t, ta, bob, alice)
	likeOnce(t, ta, bob, alice)

	resp := ta.request(t, fiber.MethodDelete, "/api/notifications/", nil, bob)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = ta.request(t, fiber.MethodGet, "/api/notifications/", nil, bob)
	var list []map[string]any
	decodeJSON(t, resp, &list)
	assert.Empty(t, list)
}

func TestDeleteNotification(t *testing.T) {
	ta := newTestApp(t)
	alice := ta.signup(t, "alice", "secret-pass")
	bob := ta.signup(t, "bob", "secret-pass")

	likeOnce(t, ta, bob, alice)

	resp := ta.request(t, fiber.MethodGet, "/api/notifications/", nil, bob)
	var list []map[string]any
	decodeJSON(t, resp, &list)
	require.Len(t, list, 1)
	id := list[0]["id"].(float64)
	deleteURL := fmt.Sprintf("/api/notifications/%.0f", id)

	t.Run("only the recipient may delete", func(t *testing.T) {
		resp := ta.request(t, fiber.MethodDelete, deleteURL, nil, alice)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run("recipient deletes", func(t *testing.T) {
		resp := ta.request(t, fiber.MethodDelete, deleteURL, nil, bob)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		resp = ta.request(t, fiber.MethodDelete, deleteURL, nil, bob)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}
