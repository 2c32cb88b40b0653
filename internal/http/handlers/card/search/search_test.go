package search

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
	"github.com/egsmart/smartwifi-backend/internal/models"
)

const testCafeID = "a3f1c2d4-0000-0000-0000-000000000001"

type ServiceMock struct{ mock.Mock }

func (m *ServiceMock) Search(ctx context.Context, filter models.CardFilter) ([]*models.Card, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Card), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestHandler_Handle(t *testing.T) {
	cards := []*models.Card{{Code: "AAAA-BBBB", CafeID: testCafeID}}

	tests := []struct {
		name       string
		data       string
		setupMocks func(s *ServiceMock)
		wantErr    bool
		want       any
	}{
		{
			name: "filter by cafe",
			data: `{"cafeId":"` + testCafeID + `","limit":50}`,
			setupMocks: func(s *ServiceMock) {
				s.On("Search", mock.Anything, models.CardFilter{CafeID: testCafeID, Limit: 50}).
					Return(cards, nil).Once()
			},
			want: cards,
		},
		{
			name: "empty data searches everything",
			data: ``,
			setupMocks: func(s *ServiceMock) {
				s.On("Search", mock.Anything, models.CardFilter{}).Return(cards, nil).Once()
			},
			want: cards,
		},
		{
			name: "no matches returns empty slice, not null",
			data: `{"code":"NOPE"}`,
			setupMocks: func(s *ServiceMock) {
				s.On("Search", mock.Anything, models.CardFilter{Code: "NOPE"}).
					Return(nil, nil).Once()
			},
			want: []*models.Card{},
		},
		{
			name:    "malformed payload",
			data:    `not a json`,
			wantErr: true,
		},
		{
			name:    "cafe id is not uuid",
			data:    `{"cafeId":"abc"}`,
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
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			service.AssertExpectations(t)
		})
	}
}
