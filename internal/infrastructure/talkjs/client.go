// Package talkjs is a small client for the TalkJS REST API. Message storage,
// delivery and presence stay with TalkJS; this backend only syncs users,
// creates conversations and lists them.
package talkjs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrNotConfigured is returned when the app id or secret key is missing.
var ErrNotConfigured = errors.New("talkjs: app id and secret key are required")

// ErrConversationNotFound is returned by GetConversation on a 404.
var ErrConversationNotFound = errors.New("talkjs: conversation not found")

// conversationPageSize is the largest page the conversation list endpoint serves.
const conversationPageSize = 30

// APIError is a non-2xx response from TalkJS.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("talkjs: %s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// Temporary reports whether retrying may succeed.
func (e *APIError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// User is the TalkJS user resource.
type User struct {
	Name           string   `json:"name"`
	Email          []string `json:"email,omitempty"`
	PhotoURL       string   `json:"photoUrl,omitempty"`
	WelcomeMessage *string  `json:"welcomeMessage"`
	Role           string   `json:"role,omitempty"`
}

// Conversation is one entry of a user's conversation list.
type Conversation struct {
	ID              string                     `json:"id"`
	Participants    map[string]json.RawMessage `json:"participants"`
	LastMessage     json.RawMessage            `json:"lastMessage"`
	WelcomeMessages json.RawMessage            `json:"welcomeMessages"`
	CreatedAt       int64                      `json:"createdAt"`
}

// Config configures a Client.
type Config struct {
	AppID      string
	SecretKey  string
	BaseURL    string // defaults to https://api.talkjs.com
	HTTPClient *http.Client
}

type Client struct {
	appID     string
	secretKey string
	baseURL   string
	http      *http.Client
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.AppID == "" || cfg.SecretKey == "" {
		return nil, ErrNotConfigured
	}
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = "https://api.talkjs.com"
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{appID: cfg.AppID, secretKey: cfg.SecretKey, baseURL: base, http: hc}, nil
}

// AppID is handed to browsers so the client SDK can open a session.
func (c *Client) AppID() string { return c.appID }

// Signature is the identity-verification signature for userID.
func (c *Client) Signature(userID string) string {
	return Sign(c.secretKey, userID)
}

// UpsertUser creates or updates a user.
func (c *Client) UpsertUser(ctx context.Context, id string, u User) error {
	return c.do(ctx, http.MethodPut, "/users/"+url.PathEscape(id), u, nil)
}

// UpsertConversation creates the conversation if needed and joins participants to it.
func (c *Client) UpsertConversation(ctx context.Context, id string, participants []string) error {
	body := struct {
		Participants []string `json:"participants"`
	}{Participants: participants}
	return c.do(ctx, http.MethodPut, "/conversations/"+url.PathEscape(id), body, nil)
}

// GetConversation fetches one conversation. A missing conversation is
// ErrConversationNotFound.
func (c *Client) GetConversation(ctx context.Context, id string) (*Conversation, error) {
	var out Conversation
	err := c.do(ctx, http.MethodGet, "/conversations/"+url.PathEscape(id), nil, &out)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrConversationNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListUserConversations returns every conversation userID takes part in,
// following the startingAfter cursor until a short page comes back.
func (c *Client) ListUserConversations(ctx context.Context, userID string) ([]Conversation, error) {
	var all []Conversation
	cursor := ""
	for {
		q := url.Values{"limit": {strconv.Itoa(conversationPageSize)}}
		if cursor != "" {
			q.Set("startingAfter", cursor)
		}
		var page struct {
			Data []Conversation `json:"data"`
		}
		path := "/users/" + url.PathEscape(userID) + "/conversations?" + q.Encode()
		if err := c.do(ctx, http.MethodGet, path, nil, &page); err != nil {
			return nil, err
		}
		all = append(all, page.Data...)

		if len(page.Data) < conversationPageSize {
			return all, nil
		}
		next := page.Data[len(page.Data)-1].ID
		if next == "" || next == cursor {
			return all, nil
		}
		cursor = next
	}
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("talkjs: encode %s: %w", path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/v1/"+url.PathEscape(c.appID)+path, body)
	if err != nil {
		return fmt.Errorf("talkjs: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("talkjs: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return &APIError{Method: method, Path: path, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("talkjs: decode %s: %w", path, err)
	}
	return nil
}
