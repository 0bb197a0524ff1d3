package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/property-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/property-service/internal/property/domain"
	"go.uber.org/zap"
)

const bookingDateLayout = "2006-01-02"

// BookingUsecase books rentable properties for a date range.
type BookingUsecase struct {
	repo      domain.PropertyRepository
	cache     domain.PropertyCache
	publisher domain.NotificationPublisher
	mailer    domain.EmailSender // optional; nil disables booking mail
	logger    *logger.Logger
}

func NewBookingUsecase(
	repo domain.PropertyRepository,
	cache domain.PropertyCache,
	publisher domain.NotificationPublisher,
	mailer domain.EmailSender,
	log *logger.Logger,
) *BookingUsecase {
	return &BookingUsecase{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		mailer:    mailer,
		logger:    log.Named("BookingUsecase"),
	}
}

// BookProperty books the property for [from, to] on behalf of callerEmail.
//
// Check order: existence, then self-booking, then rentability, then the date
// conflict against the single stored interval. The final write re-evaluates
// the booking state store-side, so two racing bookings cannot both land.
func (uc *BookingUsecase) BookProperty(ctx context.Context, id string, from, to time.Time, callerEmail string) error {
	uc.logger.Info("booking property",
		zap.String("property_id", id),
		zap.String("caller", callerEmail),
		zap.Time("from", from),
		zap.Time("to", to))

	property, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if property.Owner == callerEmail {
		return fmt.Errorf("%w: owners cannot book their own properties", domain.ErrForbidden)
	}
	if !property.IsBookable() {
		return domain.ErrNotRentable
	}
	if domain.HasBookingConflict(property, from, to) {
		return domain.ErrBookingConflict
	}

	if err := uc.repo.Book(ctx, id, from, to); err != nil {
		return err
	}

	if errCache := uc.cache.Delete(ctx, id); errCache != nil {
		uc.logger.Warn("failed to invalidate cached property", zap.String("property_id", id), zap.Error(errCache))
	}

	uc.notifyOwnerByMail(ctx, property, from, to)

	return publishNotification(ctx, uc.publisher, uc.logger, id, "Property Booked!")
}

// notifyOwnerByMail sends the owner a booking confirmation. Best-effort:
// failures are logged, never surfaced.
func (uc *BookingUsecase) notifyOwnerByMail(ctx context.Context, property *domain.Property, from, to time.Time) {
	if uc.mailer == nil {
		return
	}
	subject := "Your property has been booked"
	body := fmt.Sprintf("Your property %q (%s) has been booked from %s to %s.",
		property.Title, property.ID, from.Format(bookingDateLayout), to.Format(bookingDateLayout))
	if err := uc.mailer.Send(ctx, []string{property.Owner}, subject, "", body); err != nil {
		uc.logger.Warn("failed to send booking email to owner",
			zap.String("property_id", property.ID),
			zap.String("owner", property.Owner),
			zap.Error(err))
	}
}
