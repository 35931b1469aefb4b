package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yfe404/actor-adopte-get-auth-token/internal/utils"
)

// TestUserAgentInjector tests that the User-Agent header is injected when missing
// and preserved when already set.
func TestUserAgentInjector(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name              string
		existingUserAgent string
		providedUserAgent string
		expectedUserAgent string
	}{
		{
			name:              "injects user agent when missing",
			existingUserAgent: "",
			providedUserAgent: "test-agent/1.0",
			expectedUserAgent: "test-agent/1.0",
		},
		{
			name:              "preserves existing user agent",
			existingUserAgent: "existing-agent/2.0",
			providedUserAgent: "test-agent/1.0",
			expectedUserAgent: "existing-agent/2.0",
		},
		{
			name:              "injects default browser user agent",
			existingUserAgent: "",
			providedUserAgent: DefaultUserAgent,
			expectedUserAgent: DefaultUserAgent,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var receivedUserAgent string

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				receivedUserAgent = r.Header.Get("User-Agent")
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			transport := NewUserAgentInjector(
				http.DefaultTransport,
				utils.NewSimpleUserAgentProvider(tt.providedUserAgent),
			)
			client := &http.Client{Transport: transport}

			req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, server.URL, http.NoBody)
			require.NoError(t, err)

			if tt.existingUserAgent != "" {
				req.Header.Set("User-Agent", tt.existingUserAgent)
			}

			resp, err := client.Do(req)
			require.NoError(t, err)
			resp.Body.Close()

			assert.Equal(t, tt.expectedUserAgent, receivedUserAgent)
		})
	}
}
