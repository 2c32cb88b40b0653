package install

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/egsmart/smartwifi-backend/internal/http/dispatch"
)

const testCafeID = "a3f1c2d4-0000-0000-0000-000000000001"

type ServiceMock struct{ mock.Mock }

func (m *ServiceMock) GetOrCreateToken(ctx context.Context, cafeID string) (string, error) {
	args := m.Called(ctx, cafeID)
	return args.String(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestHandler_Handle(t *testing.T) {
	tests := []struct {
		name       string
		data       string
		setupMocks func(s *ServiceMock)
		wantErr    bool
	}{
		{
			name: "valid request",
			data: `{"id":"` + testCafeID + `"}`,
			setupMocks: func(s *ServiceMock) {
				s.On("GetOrCreateToken", mock.Anything, testCafeID).
					Return("ABCDEFGHJK", nil).Once()
			},
		},
		{
			name:    "malformed payload",
			data:    `not a json`,
			wantErr: true,
		},
		{
			name:    "missing id",
			data:    `{}`,
			wantErr: true,
		},
		{
			name:    "id is not uuid",
			data:    `{"id":"42"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(ServiceMock)
			if tt.setupMocks != nil {
				tt.setupMocks(service)
			}
			h := New(newNoopLogger(), service)

			got, err := h.Handle(context.Background(), nil, json.RawMessage(tt.data))

			if tt.wantErr {
				assert.ErrorIs(t, err, dispatch.ErrInvalidPayload)
				assert.Nil(t, got)
				service.AssertNotCalled(t, "GetOrCreateToken", mock.Anything, mock.Anything)
			} else {
				require.NoError(t, err)
				assert.Equal(t, map[string]any{"token": "ABCDEFGHJK"}, got)
			}
			service.AssertExpectations(t)
		})
	}
}
