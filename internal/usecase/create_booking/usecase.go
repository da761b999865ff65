package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ShopBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ShopBooking/internal/integrations/catalog"
	"github.com/m04kA/SMC-ShopBooking/pkg/slotgen"
	"github.com/m04kA/SMC-ShopBooking/pkg/txmanager"
	"github.com/m04kA/SMC-ShopBooking/pkg/types"
)

// maxTxAttempts число попыток сериализуемой транзакции при конфликте с параллельной записью
const maxTxAttempts = 3

// Результаты для метрики bookings_created_total
const (
	resultCreated  = "created"
	resultConflict = "conflict"
	resultRejected = "rejected"
	resultError    = "error"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo   BookingRepository
	catalogClient CatalogClient
	txManager     TransactionManager
	rules         domain.BookingRules
	metrics       MetricsCollector
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case. metrics может быть nil.
func NewUseCase(
	bookingRepo BookingRepository,
	catalogClient CatalogClient,
	txManager TransactionManager,
	rules domain.BookingRules,
	metrics MetricsCollector,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		catalogClient: catalogClient,
		txManager:     txManager,
		rules:         rules,
		metrics:       metrics,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка занятости и вставка выполняются в сериализуемой транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	resp, err := uc.execute(ctx, req)
	uc.observe(err)
	return resp, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	date := uc.rules.DateOnly(req.Date)
	uc.logger.Info("CreateBooking: user=%s, shop=%s, service=%s, date=%s, time=%s",
		req.UserID, req.ShopID, req.ServiceID, date.Format(domain.DateFormat), req.StartTime)

	// 2. Получаем текущее время и проверяем дату
	now := uc.timeProvider.Now()
	if err := validateDate(uc.rules, date, now); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	// 3. Получаем магазин
	shop, err := uc.catalogClient.GetShop(ctx, req.ShopID)
	if err != nil {
		if errors.Is(err, catalog.ErrShopNotFound) {
			uc.logger.Warn("CreateBooking: shop id=%s not found", req.ShopID)
			return nil, ErrShopNotFound
		}
		uc.logger.Error("CreateBooking: failed to get shop id=%s: %v", req.ShopID, err)
		return nil, fmt.Errorf("%w: failed to get shop: %v", ErrInternal, err)
	}

	// 4. Получаем услугу
	service, err := uc.catalogClient.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalog.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%s not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 5. Проверяем магазин и услугу
	if err := validateShopService(shop, service); err != nil {
		uc.logger.Warn("CreateBooking: shop=%s, service=%s rejected: %v", req.ShopID, req.ServiceID, err)
		return nil, err
	}

	// 6. Время должно быть слотом рабочего дня и не должно быть слишком близко к текущему моменту
	hours := shop.Hours(uc.rules.DefaultHours)
	if err := validateOnGrid(hours, service.DurationMinutes, req.StartTime); err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, err
	}

	if err := validateNotice(uc.rules, date, now, req.StartTime); err != nil {
		uc.logger.Warn("CreateBooking: booking time validation failed: %v", err)
		return nil, err
	}

	endTime, err := req.StartTime.AddMinutes(service.DurationMinutes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTimeSlot, err)
	}

	var result *domain.Booking

	// 7. Проверка занятости и вставка в сериализуемой транзакции.
	// Параллельные записи на тот же день могут оборвать транзакцию с 40001, тогда она повторяется целиком.
	for attempt := 1; ; attempt++ {
		result, err = uc.book(ctx, req, shop, service, hours, date, endTime)
		if err == nil || !txmanager.IsSerializationFailure(err) || attempt == maxTxAttempts {
			break
		}
		uc.logger.Warn("CreateBooking: serialization conflict on shop=%s, date=%s, attempt %d/%d",
			shop.ID, date.Format(domain.DateFormat), attempt, maxTxAttempts)
	}

	if err != nil {
		if errors.Is(err, ErrSlotNotAvailable) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s", result.ID)

	return &Response{
		ID:              result.ID,
		UserID:          result.UserID,
		ShopID:          result.ShopID,
		ServiceID:       result.ServiceID,
		BookingDate:     result.BookingDate,
		StartTime:       result.StartTime,
		EndTime:         result.EndTime,
		DurationMinutes: service.DurationMinutes,
		Status:          string(result.Status),
		ServiceName:     service.Name,
		ServicePrice:    service.Price,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// book одна попытка: блокирует занятые времена дня, проверяет слот и сохраняет бронирование
func (uc *UseCase) book(
	ctx context.Context,
	req *Request,
	shop *domain.Shop,
	service *domain.Service,
	hours domain.ShopHours,
	date time.Time,
	endTime types.TimeString,
) (*domain.Booking, error) {
	var result *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Занятые времена начала с блокировкой (FOR UPDATE)
		busy, err := uc.bookingRepo.GetBusyStarts(txCtx, shop.ID, date)
		if err != nil {
			if txmanager.IsSerializationFailure(err) {
				return err
			}
			uc.logger.Error("CreateBooking: failed to get busy starts: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 7.2. Время должно остаться среди свободных слотов
		slots := slotgen.Generate(hours.Opening, hours.Closing, service.DurationMinutes, busy)
		if !slotgen.Contains(slots, req.StartTime) {
			uc.logger.Warn("CreateBooking: slot %s on %s is already taken", req.StartTime, date.Format(domain.DateFormat))
			return ErrSlotNotAvailable
		}

		// 7.3. Сохраняем бронирование
		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			UserID:      req.UserID,
			ShopID:      shop.ID,
			ServiceID:   service.ID,
			BookingDate: date,
			StartTime:   req.StartTime,
			EndTime:     endTime,
			Status:      domain.StatusConfirmed,
			Notes:       req.Notes,
		})
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotNotAvailable) {
				uc.logger.Warn("CreateBooking: concurrent booking took slot %s", req.StartTime)
				return ErrSlotNotAvailable
			}
			if txmanager.IsSerializationFailure(err) {
				return err
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	return result, err
}

func (uc *UseCase) observe(err error) {
	if uc.metrics == nil {
		return
	}

	switch {
	case err == nil:
		uc.metrics.IncBookingsCreated(resultCreated)
	case errors.Is(err, ErrSlotNotAvailable):
		uc.metrics.IncBookingsCreated(resultConflict)
	case errors.Is(err, ErrInternal):
		uc.metrics.IncBookingsCreated(resultError)
	default:
		uc.metrics.IncBookingsCreated(resultRejected)
	}
}
