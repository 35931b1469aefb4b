package adopte

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestExtractRefreshToken tests refresh token extraction from login response bodies.
func TestExtractRefreshToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		body          string
		expectedToken string
		expectedErr   error
	}{
		{
			name:          "token embedded in page script",
			body:          `<script>var apiRefreshToken = "abc123",\n otherVar = 1;</script>`,
			expectedToken: "abc123",
		},
		{
			name:          "token with surrounding HTML noise",
			body:          `<html><head></head><body>apiRefreshToken = "eyJhbGciOiJIUzI1NiJ9.payload.sig",</body></html>`,
			expectedToken: "eyJhbGciOiJIUzI1NiJ9.payload.sig",
		},
		{
			name:          "token containing special characters",
			body:          `apiRefreshToken = "a-b_c.d+e/f=",`,
			expectedToken: "a-b_c.d+e/f=",
		},
		{
			name:          "first occurrence wins",
			body:          `apiRefreshToken = "first", apiRefreshToken = "second",`,
			expectedToken: "first",
		},
		{
			name:        "marker absent",
			body:        `<html><body>Welcome back!</body></html>`,
			expectedErr: ErrRefreshTokenNotFound,
		},
		{
			name:        "marker present but delimiter missing",
			body:        `apiRefreshToken = "truncated`,
			expectedErr: ErrRefreshTokenNotFound,
		},
		{
			name:        "empty token value",
			body:        `apiRefreshToken = "",`,
			expectedErr: ErrRefreshTokenNotFound,
		},
		{
			name:        "empty body",
			body:        "",
			expectedErr: ErrRefreshTokenNotFound,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			token, err := ExtractRefreshToken(tt.body)

			if tt.expectedErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Empty(t, token)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedToken, token)
			}
		})
	}
}
