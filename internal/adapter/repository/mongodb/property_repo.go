package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/property-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/property-service/internal/property/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const propertyCollectionName = "properties"

// PropertyRepository stores property records in MongoDB, keyed by the
// property identifier. The authorization and booking preconditions are part
// of the write filters, so they hold even under concurrent callers.
type PropertyRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

func NewPropertyRepository(db *mongo.Database, log *logger.Logger) *PropertyRepository {
	return &PropertyRepository{
		collection: db.Collection(propertyCollectionName),
		logger:     log.Named("PropertyRepository"),
	}
}

func (r *PropertyRepository) Create(ctx context.Context, property *domain.Property) error {
	doc := toPropertyDocument(property)
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		r.logger.Error("InsertOne failed", zap.String("property_id", property.ID), zap.Error(err))
		return fmt.Errorf("failed to create property %s: %w", property.ID, err)
	}
	return nil
}

func (r *PropertyRepository) FindByID(ctx context.Context, id string) (*domain.Property, error) {
	var doc propertyDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPropertyNotFound
		}
		r.logger.Error("FindOne failed", zap.String("property_id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get property %s: %w", id, err)
	}
	return toDomainProperty(&doc), nil
}

// FindAll is an unbounded scan of the collection. No pagination, no ordering
// guarantee — intended for small datasets only.
func (r *PropertyRepository) FindAll(ctx context.Context) ([]*domain.Property, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		r.logger.Error("Find failed", zap.Error(err))
		return nil, fmt.Errorf("failed to scan properties: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []*propertyDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode scanned properties: %w", err)
	}
	return toDomainProperties(docs), nil
}

// UpdateFields applies a partial update conditioned on ownership. The filter
// carries the owner check, so a non-owner's write never matches; a zero
// matched count is classified with a follow-up read.
func (r *PropertyRepository) UpdateFields(ctx context.Context, id, owner string, update domain.PropertyUpdate) error {
	set := bson.M{"updatedAt": time.Now().UTC()}
	for field, value := range update.Changes() {
		set[field] = value
	}

	filter := bson.M{"_id": id, "owner": owner}
	result, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		r.logger.Error("UpdateOne failed", zap.String("property_id", id), zap.Error(err))
		return fmt.Errorf("failed to update property %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return r.classifyMiss(ctx, id, owner)
	}
	return nil
}

// Delete removes the record conditioned on ownership.
func (r *PropertyRepository) Delete(ctx context.Context, id, owner string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "owner": owner})
	if err != nil {
		r.logger.Error("DeleteOne failed", zap.String("property_id", id), zap.Error(err))
		return fmt.Errorf("failed to delete property %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return r.classifyMiss(ctx, id, owner)
	}
	return nil
}

// Book sets the booking fields only while the stored state still permits the
// requested interval: either the property is unbooked, or its stored interval
// lies entirely outside [from, to]. A concurrent conflicting booking makes
// the filter miss and is reported as ErrBookingConflict.
func (r *PropertyRepository) Book(ctx context.Context, id string, from, to time.Time) error {
	filter := bson.M{
		"_id": id,
		"$or": bson.A{
			bson.M{"isBooked": false},
			bson.M{"bookedFrom": bson.M{"$gt": to}},
			bson.M{"bookedTo": bson.M{"$lt": from}},
		},
	}
	set := bson.M{
		"isBooked":   true,
		"bookedFrom": from,
		"bookedTo":   to,
		"updatedAt":  time.Now().UTC(),
	}

	result, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		r.logger.Error("UpdateOne failed", zap.String("property_id", id), zap.Error(err))
		return fmt.Errorf("failed to book property %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		err := r.collection.FindOne(ctx, bson.M{"_id": id}).Err()
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.ErrPropertyNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to classify booking miss for %s: %w", id, err)
		}
		r.logger.Warn("booking write lost to a concurrent booking", zap.String("property_id", id))
		return domain.ErrBookingConflict
	}
	return nil
}

// classifyMiss distinguishes a missing record from an ownership mismatch
// after a conditional write matched nothing.
func (r *PropertyRepository) classifyMiss(ctx context.Context, id, owner string) error {
	var doc propertyDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.ErrPropertyNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to classify write miss for %s: %w", id, err)
	}
	if doc.Owner != owner {
		return domain.ErrForbidden
	}
	// Record exists and is owned by the caller, yet the write matched nothing:
	// the document changed between the two round trips.
	return fmt.Errorf("conditional write on property %s matched nothing", id)
}
