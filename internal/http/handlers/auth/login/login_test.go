package login

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
	"github.com/egsmart/smartwifi-backend/internal/services/auth"
)

type ServiceMock struct{ mock.Mock }

func (m *ServiceMock) Login(ctx context.Context, username, password string) (string, error) {
	args := m.Called(ctx, username, password)
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
		wantErr    error
		wantToken  string
	}{
		{
			name: "valid login",
			data: `{"user":"admin","pass":"secret"}`,
			setupMocks: func(s *ServiceMock) {
				s.On("Login", mock.Anything, "admin", "secret").Return("tok", nil).Once()
			},
			wantToken: "tok",
		},
		{
			name:    "malformed payload",
			data:    `not a json`,
			wantErr: dispatch.ErrInvalidPayload,
		},
		{
			name:    "missing password",
			data:    `{"user":"admin"}`,
			wantErr: dispatch.ErrInvalidPayload,
		},
		{
			name:    "missing username",
			data:    `{"pass":"secret"}`,
			wantErr: dispatch.ErrInvalidPayload,
		},
		{
			name: "invalid credentials pass through",
			data: `{"user":"admin","pass":"wrong"}`,
			setupMocks: func(s *ServiceMock) {
				s.On("Login", mock.Anything, "admin", "wrong").
					Return("", auth.ErrInvalidCredentials).Once()
			},
			wantErr: auth.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(ServiceMock)
			if tt.setupMocks != nil {
				tt.setupMocks(service)
			}
			h := New(newNoopLogger(), service)

			result, err := h.Handle(context.Background(), nil, json.RawMessage(tt.data))

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, result)
			} else {
				require.NoError(t, err)
				assert.Equal(t, map[string]any{"token": tt.wantToken}, result)
			}
			service.AssertExpectations(t)
		})
	}
}
