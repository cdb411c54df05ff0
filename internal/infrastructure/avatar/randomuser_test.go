package avatar

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomUser_Lookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/", r.URL.Path)
		assert.Equal(t, "picture", r.URL.Query().Get("inc"))
		assert.Equal(t, "mara02@yahoo.home", r.URL.Query().Get("email"))
		_, _ = io.WriteString(w, `{"results":[{"picture":{"thumbnail":"https://randomuser.me/api/portraits/thumb/women/2.jpg"}}]}`)
	}))
	defer srv.Close()

	got, err := NewRandomUser(srv.URL, nil).Lookup(context.Background(), "mara02@yahoo.home")
	require.NoError(t, err)
	assert.Equal(t, "https://randomuser.me/api/portraits/thumb/women/2.jpg", got)
}

func TestRandomUser_Failures(t *testing.T) {
	tests := map[string]struct {
		status int
		body   string
	}{
		"server error": {status: http.StatusBadGateway, body: ""},
		"empty results": {status: http.StatusOK, body: `{"results":[]}`},
		"garbage":       {status: http.StatusOK, body: `<html>`},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			_, err := NewRandomUser(srv.URL, nil).Lookup(context.Background(), "x@y.z")
			assert.Error(t, err)
		})
	}
}
