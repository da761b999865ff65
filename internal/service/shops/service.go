package shops

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
	"github.com/m04kA/SMC-ShopBooking/internal/integrations/catalog"
	"github.com/m04kA/SMC-ShopBooking/internal/service/shops/models"
)

// Service сервис для чтения данных магазинов, нужных для записи
type Service struct {
	catalogClient CatalogClient
	defaultHours  domain.ShopHours
	logger        Logger
}

// NewService создает новый экземпляр сервиса магазинов
func NewService(catalogClient CatalogClient, defaultHours domain.ShopHours, logger Logger) *Service {
	return &Service{
		catalogClient: catalogClient,
		defaultHours:  defaultHours,
		logger:        logger,
	}
}

// GetHours возвращает часы работы, по которым нарезаются слоты.
// Незаданные или некорректные в каталоге значения заменяются значениями по умолчанию.
func (s *Service) GetHours(ctx context.Context, shopID uuid.UUID) (*models.ShopHoursResponse, error) {
	s.logger.Info("GetHours: fetching hours for shop=%s", shopID)

	shop, err := s.catalogClient.GetShop(ctx, shopID)
	if err != nil {
		if errors.Is(err, catalog.ErrShopNotFound) {
			s.logger.Warn("GetHours: shop id=%s not found", shopID)
			return nil, ErrShopNotFound
		}
		s.logger.Error("GetHours: failed to get shop id=%s: %v", shopID, err)
		return nil, fmt.Errorf("%w: GetHours - failed to get shop: %v", ErrInternal, err)
	}

	hours := shop.Hours(s.defaultHours)
	isDefault := hours.Opening != shop.OpeningTime || hours.Closing != shop.ClosingTime

	return models.FromDomainHours(shop.ID, hours, isDefault), nil
}
