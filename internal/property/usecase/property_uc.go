package usecase

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/property-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/property-service/internal/property/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PropertyUsecase implements listing CRUD and image upload. It mediates
// between callers and the record store, blob store and notification channel;
// each operation is a linear validate → upload → mutate → notify sequence.
type PropertyUsecase struct {
	repo      domain.PropertyRepository
	cache     domain.PropertyCache
	storage   domain.BlobStorage
	publisher domain.NotificationPublisher
	keyPrefix string
	logger    *logger.Logger
}

func NewPropertyUsecase(
	repo domain.PropertyRepository,
	cache domain.PropertyCache,
	storage domain.BlobStorage,
	publisher domain.NotificationPublisher,
	keyPrefix string,
	log *logger.Logger,
) *PropertyUsecase {
	return &PropertyUsecase{
		repo:      repo,
		cache:     cache,
		storage:   storage,
		publisher: publisher,
		keyPrefix: keyPrefix,
		logger:    log.Named("PropertyUsecase"),
	}
}

// CreatePropertyInput holds the required attributes of a new listing.
type CreatePropertyInput struct {
	Title       string
	Description string
	Price       float64
	Location    string
	Type        domain.PropertyType
}

// CreateProperty uploads the listing image, writes the new record and
// publishes a creation notification. Returns the new property identifier.
//
// There is no rollback: if the record write fails after a successful image
// upload, the uploaded blob is orphaned.
func (uc *PropertyUsecase) CreateProperty(ctx context.Context, input CreatePropertyInput, image domain.ImageFile, ownerEmail string) (string, error) {
	propertyID := uuid.NewString()
	uc.logger.Info("creating property",
		zap.String("property_id", propertyID),
		zap.String("owner", ownerEmail),
		zap.String("title", input.Title))

	imageKey, err := uc.UploadImage(ctx, propertyID, image)
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	property := &domain.Property{
		ID:          propertyID,
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		Location:    input.Location,
		Type:        input.Type,
		ImageKey:    imageKey,
		Owner:       ownerEmail,
		CreatedAt:   now,
		UpdatedAt:   now,
		IsBooked:    false,
	}
	if err := uc.repo.Create(ctx, property); err != nil {
		return "", err
	}

	if errCache := uc.cache.Set(ctx, property); errCache != nil {
		uc.logger.Warn("failed to cache created property", zap.String("property_id", propertyID), zap.Error(errCache))
	}

	if err := uc.sendNotification(ctx, propertyID, "New property listed!"); err != nil {
		return "", err
	}
	return propertyID, nil
}

// UploadImage decodes the base64 payload and writes it to the blob store at
// {prefix}/{propertyId}/{originalFileName}, preserving the content type.
// Returns the store-assigned location reference.
func (uc *PropertyUsecase) UploadImage(ctx context.Context, propertyID string, image domain.ImageFile) (string, error) {
	data, err := base64.StdEncoding.DecodeString(image.Data)
	if err != nil {
		return "", fmt.Errorf("failed to decode image payload: %w", err)
	}
	objectKey := fmt.Sprintf("%s/%s/%s", uc.keyPrefix, propertyID, image.Name)
	return uc.storage.Upload(ctx, objectKey, data, image.ContentType)
}

// UpdateProperty applies a partial update on behalf of callerEmail. The
// ownership check is evaluated by the store as part of the write; a non-owner
// gets ErrForbidden and the stored record stays unchanged.
func (uc *PropertyUsecase) UpdateProperty(ctx context.Context, id string, update domain.PropertyUpdate, callerEmail string) error {
	uc.logger.Info("updating property", zap.String("property_id", id), zap.String("caller", callerEmail))

	if err := uc.repo.UpdateFields(ctx, id, callerEmail, update); err != nil {
		return err
	}
	if errCache := uc.cache.Delete(ctx, id); errCache != nil {
		uc.logger.Warn("failed to invalidate cached property", zap.String("property_id", id), zap.Error(errCache))
	}
	return uc.sendNotification(ctx, id, "Property updated!")
}

// DeleteProperty removes the record on behalf of callerEmail. The associated
// image blob is deliberately left in place.
func (uc *PropertyUsecase) DeleteProperty(ctx context.Context, id, callerEmail string) error {
	uc.logger.Info("deleting property", zap.String("property_id", id), zap.String("caller", callerEmail))

	if err := uc.repo.Delete(ctx, id, callerEmail); err != nil {
		return err
	}
	if errCache := uc.cache.Delete(ctx, id); errCache != nil {
		uc.logger.Warn("failed to invalidate cached property", zap.String("property_id", id), zap.Error(errCache))
	}
	return uc.sendNotification(ctx, id, fmt.Sprintf("Property %s deleted!", id))
}

// GetPropertyByID is a cache-first point lookup. Absent is (nil, nil) —
// callers distinguish "not found" by the return shape, not an error kind.
func (uc *PropertyUsecase) GetPropertyByID(ctx context.Context, id string) (*domain.Property, error) {
	cached, errCache := uc.cache.Get(ctx, id)
	if errCache != nil {
		uc.logger.Warn("cache lookup failed", zap.String("property_id", id), zap.Error(errCache))
	} else if cached != nil {
		return cached, nil
	}

	property, err := uc.repo.FindByID(ctx, id)
	if errors.Is(err, domain.ErrPropertyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if errCache := uc.cache.Set(ctx, property); errCache != nil {
		uc.logger.Warn("failed to cache fetched property", zap.String("property_id", id), zap.Error(errCache))
	}
	return property, nil
}

// ListProperties returns every stored property. Unbounded scan, no
// pagination, no ordering guarantee.
func (uc *PropertyUsecase) ListProperties(ctx context.Context) ([]*domain.Property, error) {
	return uc.repo.FindAll(ctx)
}

func (uc *PropertyUsecase) sendNotification(ctx context.Context, propertyID, message string) error {
	return publishNotification(ctx, uc.publisher, uc.logger, propertyID, message)
}

// publishNotification wraps publisher failures in ErrNotificationFailed. The
// failure is surfaced to the caller of the triggering operation even though
// the mutation itself already committed.
func publishNotification(ctx context.Context, publisher domain.NotificationPublisher, log *logger.Logger, propertyID, message string) error {
	if err := publisher.Publish(ctx, propertyID, message); err != nil {
		log.Error("notification publish failed",
			zap.String("property_id", propertyID),
			zap.String("message", message),
			zap.Error(err))
		return fmt.Errorf("%w: %v", domain.ErrNotificationFailed, err)
	}
	return nil
}
