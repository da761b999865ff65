package get_shop_hours

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ShopBooking/internal/service/shops/models"
)

type ShopService interface {
	GetHours(ctx context.Context, shopID uuid.UUID) (*models.ShopHoursResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
