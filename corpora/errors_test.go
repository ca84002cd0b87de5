package corpora

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAPIError(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{
			name:    "string detail",
			status:  403,
			body:    `{"detail":"forbidden"}`,
			wantMsg: "Status 403: forbidden",
		},
		{
			name:    "object detail with message",
			status:  404,
			body:    `{"detail":{"message":"not found"}}`,
			wantMsg: "Status 404: not found",
		},
		{
			name:    "object detail without message",
			status:  404,
			body:    `{"detail":{"code":"missing"}}`,
			wantMsg: "Status 404: Not Found",
		},
		{
			name:    "numeric detail",
			status:  422,
			body:    `{"detail":42}`,
			wantMsg: "Status 422: 42",
		},
		{
			name:    "unstructured body",
			status:  502,
			body:    "bad gateway",
			wantMsg: "Status 502: bad gateway",
		},
		{
			name:    "JSON body without detail",
			status:  500,
			body:    `{"error":"boom"}`,
			wantMsg: `Status 500: {"error":"boom"}`,
		},
		{
			name:    "empty body",
			status:  503,
			body:    "",
			wantMsg: "Status 503: Service Unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := newAPIError(tt.status, []byte(tt.body))
			assert.Equal(t, tt.wantMsg, err.Error())
			assert.Equal(t, tt.status, err.StatusCode)
		})
	}
}

func TestAPIErrorClassification(t *testing.T) {
	assert.True(t, (&APIError{StatusCode: 404}).IsNotFound())
	assert.False(t, (&APIError{StatusCode: 403}).IsNotFound())
	assert.True(t, (&APIError{StatusCode: 401}).IsUnauthorized())
	assert.True(t, (&APIError{StatusCode: 403}).IsUnauthorized())
	assert.False(t, (&APIError{StatusCode: 500}).IsUnauthorized())
}
