package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
	"github.com/m04kA/SMC-ShopBooking/internal/integrations/catalog"
	"github.com/m04kA/SMC-ShopBooking/pkg/slotgen"
)

// UseCase use case для получения доступных слотов для бронирования
type UseCase struct {
	bookingRepo   BookingRepository
	catalogClient CatalogClient
	rules         domain.BookingRules
	metrics       MetricsCollector
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case. metrics может быть nil.
func NewUseCase(
	bookingRepo BookingRepository,
	catalogClient CatalogClient,
	rules domain.BookingRules,
	metrics MetricsCollector,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		catalogClient: catalogClient,
		rules:         rules,
		metrics:       metrics,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	date := uc.rules.DateOnly(req.Date)
	uc.logger.Info("GetAvailableSlots: shop=%s, service=%s, date=%s",
		req.ShopID, req.ServiceID, date.Format(domain.DateFormat))

	// 2. Получаем текущее время и проверяем дату
	now := uc.timeProvider.Now()
	if err := validateDate(uc.rules, date, now); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 3. Получаем магазин
	shop, err := uc.catalogClient.GetShop(ctx, req.ShopID)
	if err != nil {
		if errors.Is(err, catalog.ErrShopNotFound) {
			uc.logger.Warn("GetAvailableSlots: shop id=%s not found", req.ShopID)
			return nil, ErrShopNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get shop id=%s: %v", req.ShopID, err)
		return nil, fmt.Errorf("%w: failed to get shop: %v", ErrInternal, err)
	}

	// 4. Получаем услугу
	service, err := uc.catalogClient.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalog.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%s not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 5. Проверяем, что записаться на услугу в этом магазине можно
	if err := validateShopService(shop, service); err != nil {
		uc.logger.Warn("GetAvailableSlots: shop=%s, service=%s rejected: %v", req.ShopID, req.ServiceID, err)
		return nil, err
	}

	// 6. Занятые времена начала на дату
	busy, err := uc.bookingRepo.GetBusyStarts(ctx, shop.ID, date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get busy starts: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 7. Генерируем слоты и убираем уже недоступные сегодня
	hours := shop.Hours(uc.rules.DefaultHours)
	slots := slotgen.Generate(hours.Opening, hours.Closing, service.DurationMinutes, busy)
	slots = uc.rules.FilterByNotice(date, now, slots)

	if uc.metrics != nil {
		uc.metrics.ObserveSlotsGenerated(len(slots))
	}

	uc.logger.Info("GetAvailableSlots: %d slots for shop=%s, service=%s, date=%s (hours %s-%s, busy=%d)",
		len(slots), shop.ID, service.ID, date.Format(domain.DateFormat), hours.Opening, hours.Closing, len(busy))

	return &Response{
		Date:            date,
		ShopID:          shop.ID,
		ServiceID:       service.ID,
		DurationMinutes: service.DurationMinutes,
		Hours:           hours,
		Slots:           slots,
	}, nil
}
