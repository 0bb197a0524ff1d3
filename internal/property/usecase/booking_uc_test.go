package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Abdurahmanit/GroupProject/property-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/property-service/internal/property/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newBookingUsecaseForTest() (*BookingUsecase, *MockPropertyRepository, *MockPropertyCache, *MockNotificationPublisher, *MockEmailSender) {
	repo := new(MockPropertyRepository)
	cache := new(MockPropertyCache)
	publisher := new(MockNotificationPublisher)
	mailer := new(MockEmailSender)
	uc := NewBookingUsecase(repo, cache, publisher, mailer, logger.NewNop())
	return uc, repo, cache, publisher, mailer
}

func mustDay(t *testing.T, s string) time.Time {
	t.Helper()
	day, err := time.Parse("2006-01-02", s)
	assert.NoError(t, err)
	return day
}

func rentProperty() *domain.Property {
	return &domain.Property{
		ID:    "prop-1",
		Title: "Cottage",
		Type:  domain.TypeRent,
		Owner: "owner@example.com",
	}
}

func TestBookProperty_Success(t *testing.T) {
	uc, repo, cache, publisher, mailer := newBookingUsecaseForTest()
	ctx := context.Background()
	from, to := mustDay(t, "2024-01-10"), mustDay(t, "2024-01-20")

	repo.On("FindByID", ctx, "prop-1").Return(rentProperty(), nil).Once()
	repo.On("Book", ctx, "prop-1", from, to).Return(nil).Once()
	cache.On("Delete", ctx, "prop-1").Return(nil).Once()
	mailer.On("Send", ctx, []string{"owner@example.com"}, mock.AnythingOfType("string"), "", mock.AnythingOfType("string")).
		Return(nil).Once()
	publisher.On("Publish", ctx, "prop-1", "Property Booked!").Return(nil).Once()

	err := uc.BookProperty(ctx, "prop-1", from, to, "guest@example.com")

	assert.NoError(t, err)
	repo.AssertExpectations(t)
	publisher.AssertExpectations(t)
	mailer.AssertExpectations(t)
}

func TestBookProperty_NotFound(t *testing.T) {
	uc, repo, _, publisher, _ := newBookingUsecaseForTest()
	ctx := context.Background()
	from, to := mustDay(t, "2024-01-10"), mustDay(t, "2024-01-20")

	repo.On("FindByID", ctx, "missing").Return(nil, domain.ErrPropertyNotFound).Once()

	err := uc.BookProperty(ctx, "missing", from, to, "guest@example.com")

	assert.ErrorIs(t, err, domain.ErrPropertyNotFound)
	repo.AssertNotCalled(t, "Book", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestBookProperty_OwnerCannotBookOwnProperty(t *testing.T) {
	uc, repo, _, _, _ := newBookingUsecaseForTest()
	ctx := context.Background()
	from, to := mustDay(t, "2024-01-10"), mustDay(t, "2024-01-20")

	repo.On("FindByID", ctx, "prop-1").Return(rentProperty(), nil).Once()

	err := uc.BookProperty(ctx, "prop-1", from, to, "owner@example.com")

	assert.ErrorIs(t, err, domain.ErrForbidden)
	repo.AssertNotCalled(t, "Book", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBookProperty_SaleListingIsNotRentable(t *testing.T) {
	uc, repo, _, _, _ := newBookingUsecaseForTest()
	ctx := context.Background()
	from, to := mustDay(t, "2024-01-10"), mustDay(t, "2024-01-20")

	property := rentProperty()
	property.Type = domain.TypeSale
	repo.On("FindByID", ctx, "prop-1").Return(property, nil).Once()

	err := uc.BookProperty(ctx, "prop-1", from, to, "guest@example.com")

	assert.ErrorIs(t, err, domain.ErrNotRentable)
	repo.AssertNotCalled(t, "Book", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBookProperty_DateConflict(t *testing.T) {
	uc, repo, _, publisher, _ := newBookingUsecaseForTest()
	ctx := context.Background()

	bookedFrom, bookedTo := mustDay(t, "2024-01-10"), mustDay(t, "2024-01-20")
	property := rentProperty()
	property.IsBooked = true
	property.BookedFrom = &bookedFrom
	property.BookedTo = &bookedTo
	repo.On("FindByID", ctx, "prop-1").Return(property, nil).Once()

	err := uc.BookProperty(ctx, "prop-1", mustDay(t, "2024-01-15"), mustDay(t, "2024-01-25"), "guest@example.com")

	assert.ErrorIs(t, err, domain.ErrBookingConflict)
	repo.AssertNotCalled(t, "Book", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestBookProperty_ConcurrentBookingLosesAtStore(t *testing.T) {
	uc, repo, cache, publisher, _ := newBookingUsecaseForTest()
	ctx := context.Background()
	from, to := mustDay(t, "2024-01-10"), mustDay(t, "2024-01-20")

	// The read sees the property free, but another booking lands before the
	// conditional write.
	repo.On("FindByID", ctx, "prop-1").Return(rentProperty(), nil).Once()
	repo.On("Book", ctx, "prop-1", from, to).Return(domain.ErrBookingConflict).Once()

	err := uc.BookProperty(ctx, "prop-1", from, to, "guest@example.com")

	assert.ErrorIs(t, err, domain.ErrBookingConflict)
	cache.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestBookProperty_MailFailureIsBestEffort(t *testing.T) {
	uc, repo, cache, publisher, mailer := newBookingUsecaseForTest()
	ctx := context.Background()
	from, to := mustDay(t, "2024-01-10"), mustDay(t, "2024-01-20")

	repo.On("FindByID", ctx, "prop-1").Return(rentProperty(), nil).Once()
	repo.On("Book", ctx, "prop-1", from, to).Return(nil).Once()
	cache.On("Delete", ctx, "prop-1").Return(nil).Once()
	mailer.On("Send", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("smtp refused")).Once()
	publisher.On("Publish", ctx, "prop-1", "Property Booked!").Return(nil).Once()

	err := uc.BookProperty(ctx, "prop-1", from, to, "guest@example.com")

	assert.NoError(t, err)
}

func TestBookProperty_NilMailerIsSkipped(t *testing.T) {
	repo := new(MockPropertyRepository)
	cache := new(MockPropertyCache)
	publisher := new(MockNotificationPublisher)
	uc := NewBookingUsecase(repo, cache, publisher, nil, logger.NewNop())

	ctx := context.Background()
	from, to := mustDay(t, "2024-01-10"), mustDay(t, "2024-01-20")

	repo.On("FindByID", ctx, "prop-1").Return(rentProperty(), nil).Once()
	repo.On("Book", ctx, "prop-1", from, to).Return(nil).Once()
	cache.On("Delete", ctx, "prop-1").Return(nil).Once()
	publisher.On("Publish", ctx, "prop-1", "Property Booked!").Return(nil).Once()

	err := uc.BookProperty(ctx, "prop-1", from, to, "guest@example.com")

	assert.NoError(t, err)
}

func TestBookProperty_NotificationFailureSurfaces(t *testing.T) {
	uc, repo, cache, publisher, mailer := newBookingUsecaseForTest()
	ctx := context.Background()
	from, to := mustDay(t, "2024-01-10"), mustDay(t, "2024-01-20")

	repo.On("FindByID", ctx, "prop-1").Return(rentProperty(), nil).Once()
	repo.On("Book", ctx, "prop-1", from, to).Return(nil).Once()
	cache.On("Delete", ctx, "prop-1").Return(nil).Once()
	mailer.On("Send", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	publisher.On("Publish", ctx, "prop-1", "Property Booked!").
		Return(errors.New("nats unreachable")).Once()

	err := uc.BookProperty(ctx, "prop-1", from, to, "guest@example.com")

	// The booking itself committed; the notification failure is still reported.
	assert.ErrorIs(t, err, domain.ErrNotificationFailed)
}
