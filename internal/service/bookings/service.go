package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ShopBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ShopBooking/internal/integrations/catalog"
	"github.com/m04kA/SMC-ShopBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-ShopBooking/pkg/ptr"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo   BookingRepository
	catalogClient CatalogClient
	txManager     TransactionManager
	rules         domain.BookingRules
	timeProvider  TimeProvider
	logger        Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	catalogClient CatalogClient,
	txManager TransactionManager,
	rules domain.BookingRules,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:   bookingRepo,
		catalogClient: catalogClient,
		txManager:     txManager,
		rules:         rules,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// GetByID получает бронирование по ID.
// Видно покупателю, который его создал, и владельцу магазина.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s for user=%s", id, userID)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if _, err := s.resolveRole(ctx, booking, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%s to booking id=%s", userID, id)
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя, новые сначала.
// Пользователь видит только свои бронирования.
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%s, status=%v", req.UserID, req.Status)

	if req.RequesterID != req.UserID {
		s.logger.Warn("GetUserBookings: user=%s requested bookings of user=%s", req.RequesterID, req.UserID)
		return nil, ErrAccessDenied
	}

	domainStatus, err := parseStatus(req.Status)
	if err != nil {
		s.logger.Warn("GetUserBookings: invalid status=%s for user=%s", *req.Status, req.UserID)
		return nil, err
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: fetched %d bookings for user=%s", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetShopBookings получает бронирования магазина. Доступно только владельцу.
// Без даты возвращает предстоящие бронирования начиная с сегодняшнего дня.
func (s *Service) GetShopBookings(ctx context.Context, req *models.GetShopBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetShopBookings: shop=%s, user=%s, date=%v, status=%v, includeInactive=%t",
		req.ShopID, req.UserID, req.Date, req.Status, req.IncludeInactive)

	if err := s.checkOwnerAccess(ctx, req.ShopID, req.UserID); err != nil {
		return nil, err
	}

	domainStatus, err := parseStatus(req.Status)
	if err != nil {
		s.logger.Warn("GetShopBookings: invalid status=%s", *req.Status)
		return nil, err
	}

	filter := domain.ShopBookingsFilter{
		ShopID:          req.ShopID,
		Status:          domainStatus,
		IncludeInactive: req.IncludeInactive,
	}
	if req.Date != nil {
		filter.Date = ptr.Ptr(s.rules.DateOnly(*req.Date))
	} else {
		filter.FromDate = ptr.Ptr(s.rules.Today(s.timeProvider.Now()))
	}

	bookings, err := s.bookingRepo.GetByShopWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetShopBookings: repository error for shop=%s: %v", req.ShopID, err)
		return nil, fmt.Errorf("%w: GetShopBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetShopBookings: fetched %d bookings for shop=%s", len(bookings), req.ShopID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет подтверждённое бронирование.
// Отменить может покупатель или владелец магазина; причина по умолчанию зависит от того, кто отменяет.
func (s *Service) Cancel(ctx context.Context, bookingID uuid.UUID, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%s by user=%s", bookingID, req.UserID)

	reason := strings.TrimSpace(req.CancellationReason)
	if utf8.RuneCountInString(reason) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: cancellation reason must be at most %d characters",
			ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	var result *domain.Booking
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.getBooking(txCtx, "Cancel", bookingID)
		if err != nil {
			return err
		}

		role, err := s.resolveRole(txCtx, booking, req.UserID)
		if err != nil {
			s.logger.Warn("Cancel: access denied for user=%s to booking id=%s", req.UserID, bookingID)
			return err
		}

		if !booking.CanBeCancelled() {
			s.logger.Warn("Cancel: booking id=%s cannot be cancelled, status=%s", bookingID, booking.Status)
			return ErrCannotCancel
		}

		if reason == "" {
			reason = role.defaultCancelReason()
		}

		if err := s.bookingRepo.Cancel(txCtx, bookingID, reason); err != nil {
			return s.mapUpdateError("Cancel", bookingID, err, ErrCannotCancel)
		}

		result, err = s.getBooking(txCtx, "Cancel", bookingID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Cancel: cancelled booking id=%s, reason=%q", bookingID, reason)
	return models.FromDomainBooking(result), nil
}

// UpdateStatus отмечает подтверждённое бронирование как completed или no_show.
// Доступно только владельцу магазина.
func (s *Service) UpdateStatus(ctx context.Context, bookingID uuid.UUID, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: updating booking id=%s to status=%s by user=%s", bookingID, req.Status, req.UserID)

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil || (newStatus != domain.StatusCompleted && newStatus != domain.StatusNoShow) {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%s", req.Status, bookingID)
		return nil, fmt.Errorf("%w: %q, expected completed or no_show", ErrInvalidStatus, req.Status)
	}

	var result *domain.Booking
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.getBooking(txCtx, "UpdateStatus", bookingID)
		if err != nil {
			return err
		}

		if err := s.checkOwnerAccess(txCtx, booking.ShopID, req.UserID); err != nil {
			if errors.Is(err, ErrShopNotFound) {
				return ErrAccessDenied
			}
			return err
		}

		if !booking.CanTransitionTo(newStatus) {
			s.logger.Warn("UpdateStatus: booking id=%s is %s, cannot become %s", bookingID, booking.Status, newStatus)
			return ErrCannotChangeStatus
		}

		if err := s.bookingRepo.UpdateStatus(txCtx, bookingID, booking.Status, newStatus); err != nil {
			return s.mapUpdateError("UpdateStatus", bookingID, err, ErrCannotChangeStatus)
		}

		result, err = s.getBooking(txCtx, "UpdateStatus", bookingID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateStatus: booking id=%s is now %s", bookingID, newStatus)
	return models.FromDomainBooking(result), nil
}

// Вспомогательные методы

type role int

const (
	roleCustomer role = iota + 1
	roleOwner
)

func (r role) defaultCancelReason() string {
	if r == roleOwner {
		return domain.CancelReasonByShop
	}
	return domain.CancelReasonByCustomer
}

func (s *Service) getBooking(ctx context.Context, op string, id uuid.UUID) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%s not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

// resolveRole определяет, кем пользователь приходится бронированию.
// Покупатель проверяется без обращения к каталогу.
func (s *Service) resolveRole(ctx context.Context, booking *domain.Booking, userID uuid.UUID) (role, error) {
	if booking.UserID == userID {
		return roleCustomer, nil
	}

	if err := s.checkOwnerAccess(ctx, booking.ShopID, userID); err != nil {
		if errors.Is(err, ErrInternal) {
			return 0, err
		}
		return 0, ErrAccessDenied
	}

	return roleOwner, nil
}

// checkOwnerAccess проверяет, что пользователь является владельцем магазина
func (s *Service) checkOwnerAccess(ctx context.Context, shopID uuid.UUID, userID uuid.UUID) error {
	shop, err := s.catalogClient.GetShop(ctx, shopID)
	if err != nil {
		if errors.Is(err, catalog.ErrShopNotFound) {
			s.logger.Warn("checkOwnerAccess: shop id=%s not found", shopID)
			return ErrShopNotFound
		}
		s.logger.Error("checkOwnerAccess: failed to get shop id=%s: %v", shopID, err)
		return fmt.Errorf("%w: checkOwnerAccess - failed to get shop: %v", ErrInternal, err)
	}

	if !shop.IsOwnedBy(userID) {
		s.logger.Warn("checkOwnerAccess: user=%s is not the owner of shop=%s", userID, shopID)
		return ErrAccessDenied
	}

	return nil
}

func (s *Service) mapUpdateError(op string, id uuid.UUID, err error, conflict error) error {
	switch {
	case errors.Is(err, bookingRepo.ErrBookingNotFound):
		return ErrBookingNotFound
	case errors.Is(err, bookingRepo.ErrStatusConflict):
		s.logger.Warn("%s: booking id=%s changed concurrently", op, id)
		return conflict
	default:
		s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
}

func parseStatus(status *string) (*domain.BookingStatus, error) {
	if status == nil || *status == "" {
		return nil, nil
	}
	parsed, err := models.ToDomainBookingStatus(*status)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, *status)
	}
	return &parsed, nil
}
