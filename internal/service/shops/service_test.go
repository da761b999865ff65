package shops

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
	"github.com/m04kA/SMC-ShopBooking/internal/integrations/catalog"
	"github.com/m04kA/SMC-ShopBooking/pkg/logger"
)

type mockCatalog struct {
	mock.Mock
}

func (m *mockCatalog) GetShop(ctx context.Context, shopID uuid.UUID) (*domain.Shop, error) {
	args := m.Called(ctx, shopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Shop), args.Error(1)
}

func TestService_GetHours(t *testing.T) {
	ctx := context.Background()
	shopID := uuid.New()

	tests := []struct {
		name        string
		shop        *domain.Shop
		err         error
		wantOpening string
		wantClosing string
		wantDefault bool
		wantErr     error
	}{
		{
			name:        "own hours",
			shop:        &domain.Shop{ID: shopID, OpeningTime: "10:00", ClosingTime: "20:00"},
			wantOpening: "10:00",
			wantClosing: "20:00",
		},
		{
			name:        "no hours in catalog",
			shop:        &domain.Shop{ID: shopID},
			wantOpening: "09:00",
			wantClosing: "18:00",
			wantDefault: true,
		},
		{
			name:        "only closing set",
			shop:        &domain.Shop{ID: shopID, ClosingTime: "21:00"},
			wantOpening: "09:00",
			wantClosing: "21:00",
			wantDefault: true,
		},
		{
			name:    "unknown shop",
			err:     catalog.ErrShopNotFound,
			wantErr: ErrShopNotFound,
		},
		{
			name:    "catalog failure",
			err:     catalog.ErrUnauthorized,
			wantErr: ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := new(mockCatalog)
			if tt.err != nil {
				client.On("GetShop", ctx, shopID).Return(nil, tt.err)
			} else {
				client.On("GetShop", ctx, shopID).Return(tt.shop, nil)
			}
			svc := NewService(client, domain.DefaultShopHours(), logger.NewNop())

			resp, err := svc.GetHours(ctx, shopID)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, resp)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, shopID.String(), resp.ShopID)
			assert.Equal(t, tt.wantOpening, resp.OpeningTime)
			assert.Equal(t, tt.wantClosing, resp.ClosingTime)
			assert.Equal(t, tt.wantDefault, resp.IsDefault)
		})
	}
}
