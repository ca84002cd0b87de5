package corpora

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name    string
		baseURL string
		wantErr bool
	}{
		{
			name:    "valid config",
			baseURL: "http://localhost:7272/v1",
		},
		{
			name:    "trailing slash trimmed",
			baseURL: "http://localhost:7272/v1/",
		},
		{
			name:    "missing URL",
			baseURL: "",
			wantErr: true,
		},
		{
			name:    "blank URL",
			baseURL: "   ",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.baseURL, logger)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "http://localhost:7272/v1", client.BaseURL())

			access, refresh := client.Tokens()
			assert.Empty(t, access)
			assert.Empty(t, refresh)
		})
	}
}

func TestClientOptions(t *testing.T) {
	client, err := NewClient("http://localhost:7272/v1", zerolog.Nop(),
		WithTimeout(5*time.Second),
		WithUserAgent("test-agent"),
	)
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, client.httpClient.Timeout)
	assert.Equal(t, "test-agent", client.userAgent)
	// Streamed calls must not inherit the buffered deadline.
	assert.Zero(t, client.streamClient.Timeout)
}
