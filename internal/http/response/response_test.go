package response

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_EnvelopeShape(t *testing.T) {
	resp := Error(CodeInvalid)

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"invalid"}`, string(data))
}

func TestError_Codes(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{CodeInvalid, "invalid"},
		{CodeNotFound, "not_found"},
		{CodeUnknownAction, "unknown_action"},
		{CodeUnauthorized, "unauthorized"},
		{CodeMethodNotAllowed, "method_not_allowed"},
		{CodeInternal, "internal"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Error(tt.code).Error)
	}
}
