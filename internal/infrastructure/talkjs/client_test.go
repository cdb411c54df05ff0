package talkjs

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	method string
	path   string
	auth   string
	body   map[string]any
}

func newTestClient(t *testing.T, status int, response string) (*Client, *recorded) {
	t.Helper()
	rec := &recorded{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.auth = r.Header.Get("Authorization")
		if b, _ := io.ReadAll(r.Body); len(b) > 0 {
			require.NoError(t, json.Unmarshal(b, &rec.body))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, response)
	}))
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{AppID: "tApp", SecretKey: "sk_test", BaseURL: srv.URL + "/"})
	require.NoError(t, err)
	return c, rec
}

func TestNewClient_RequiresCredentials(t *testing.T) {
	_, err := NewClient(Config{AppID: "tApp"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestUpsertUser(t *testing.T) {
	c, rec := newTestClient(t, http.StatusOK, "{}")

	err := c.UpsertUser(context.Background(), "0f3c", User{
		Name:     "Steve Works",
		Email:    []string{"steve.awesome@me.com"},
		PhotoURL: "https://example.com/steve.jpg",
		Role:     "default",
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, rec.method)
	assert.Equal(t, "/v1/tApp/users/0f3c", rec.path)
	assert.Equal(t, "Bearer sk_test", rec.auth)
	assert.Equal(t, "Steve Works", rec.body["name"])
	assert.Equal(t, []any{"steve.awesome@me.com"}, rec.body["email"])
	assert.Contains(t, rec.body, "welcomeMessage")
	assert.Nil(t, rec.body["welcomeMessage"])
}

func TestUpsertConversation(t *testing.T) {
	c, rec := newTestClient(t, http.StatusOK, "")

	require.NoError(t, c.UpsertConversation(context.Background(), "u2_2_u1_2", []string{"u1", "u2"}))
	assert.Equal(t, http.MethodPut, rec.method)
	assert.Equal(t, "/v1/tApp/conversations/u2_2_u1_2", rec.path)
	assert.Equal(t, []any{"u1", "u2"}, rec.body["participants"])
}

func TestListUserConversations(t *testing.T) {
	c, rec := newTestClient(t, http.StatusOK, `{"data":[{
		"id":"u2_2_u1_2",
		"participants":{"u1":{"access":"ReadWrite","notify":true},"u2":{"access":"ReadWrite","notify":true}},
		"lastMessage":{"text":"hi"},
		"welcomeMessages":null,
		"createdAt":1700000000000
	}]}`)

	convs, err := c.ListUserConversations(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, rec.method)
	assert.Equal(t, "/v1/tApp/users/u1/conversations", rec.path)

	require.Len(t, convs, 1)
	assert.Equal(t, "u2_2_u1_2", convs[0].ID)
	assert.Len(t, convs[0].Participants, 2)
	assert.JSONEq(t, `{"text":"hi"}`, string(convs[0].LastMessage))
	assert.Equal(t, int64(1700000000000), convs[0].CreatedAt)
}

func TestListUserConversations_FollowsCursor(t *testing.T) {
	var queries []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		queries = append(queries, r.URL.RawQuery)
		assert.Equal(t, "30", r.URL.Query().Get("limit"))

		n, prefix := 30, "p1-"
		if r.URL.Query().Get("startingAfter") == "p1-29" {
			n, prefix = 2, "p2-"
		}
		data := make([]map[string]any, 0, n)
		for i := 0; i < n; i++ {
			data = append(data, map[string]any{"id": prefix + strconv.Itoa(i)})
		}
		require.NoError(t, json.NewEncoder(w).Encode(map[string]any{"data": data}))
	}))
	defer srv.Close()

	c, err := NewClient(Config{AppID: "tApp", SecretKey: "sk_test", BaseURL: srv.URL})
	require.NoError(t, err)

	convs, err := c.ListUserConversations(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, convs, 32)
	assert.Equal(t, "p2-1", convs[31].ID)
	require.Len(t, queries, 2)
	assert.NotContains(t, queries[0], "startingAfter")
	assert.Contains(t, queries[1], "startingAfter=p1-29")
}

func TestGetConversation(t *testing.T) {
	c, rec := newTestClient(t, http.StatusOK, `{"id":"u2_2_u1_2","participants":{"u1":{},"u2":{}}}`)

	conv, err := c.GetConversation(context.Background(), "u2_2_u1_2")
	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, rec.method)
	assert.Equal(t, "/v1/tApp/conversations/u2_2_u1_2", rec.path)
	assert.Equal(t, "u2_2_u1_2", conv.ID)
	assert.Len(t, conv.Participants, 2)

	c, _ = newTestClient(t, http.StatusNotFound, `{"errorCode":"NOT_FOUND"}`)
	_, err = c.GetConversation(context.Background(), "u1_2_u2_2")
	assert.ErrorIs(t, err, ErrConversationNotFound)

	c, _ = newTestClient(t, http.StatusInternalServerError, "")
	_, err = c.GetConversation(context.Background(), "u1_2_u2_2")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrConversationNotFound)
}

func TestAPIError(t *testing.T) {
	c, _ := newTestClient(t, http.StatusServiceUnavailable, "maintenance")

	_, err := c.ListUserConversations(context.Background(), "u1")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
	assert.Equal(t, "maintenance", apiErr.Body)
	assert.True(t, apiErr.Temporary())

	c, _ = newTestClient(t, http.StatusBadRequest, "bad")
	err = c.UpsertConversation(context.Background(), "x", nil)
	require.True(t, errors.As(err, &apiErr))
	assert.False(t, apiErr.Temporary())
}

func TestSign(t *testing.T) {
	sig := Sign("sk_test", "u1")
	assert.Len(t, sig, 64)
	assert.Equal(t, sig, Sign("sk_test", "u1"))
	assert.NotEqual(t, sig, Sign("sk_test", "u2"))

	c, _ := newTestClient(t, http.StatusOK, "")
	assert.Equal(t, sig, c.Signature("u1"))
	assert.Equal(t, "tApp", c.AppID())
}
