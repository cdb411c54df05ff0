package avatar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var ErrNoPicture = errors.New("avatar: no picture in response")

// RandomUser picks a thumbnail from the randomuser.me API, seeded by email.
type RandomUser struct {
	baseURL string
	http    *http.Client
}

func NewRandomUser(baseURL string, hc *http.Client) *RandomUser {
	if baseURL == "" {
		baseURL = "https://randomuser.me"
	}
	if hc == nil {
		hc = &http.Client{Timeout: 5 * time.Second}
	}
	return &RandomUser{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

// Lookup returns a thumbnail URL for email.
func (r *RandomUser) Lookup(ctx context.Context, email string) (string, error) {
	q := url.Values{"inc": {"picture"}, "email": {email}}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/api/?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("avatar: build request: %w", err)
	}
	resp, err := r.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("avatar: fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("avatar: fetch: status %d", resp.StatusCode)
	}

	var body struct {
		Results []struct {
			Picture struct {
				Thumbnail string `json:"thumbnail"`
			} `json:"picture"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("avatar: decode: %w", err)
	}
	if len(body.Results) == 0 || body.Results[0].Picture.Thumbnail == "" {
		return "", ErrNoPicture
	}
	return body.Results[0].Picture.Thumbnail, nil
}
