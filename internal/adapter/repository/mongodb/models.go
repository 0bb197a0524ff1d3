package mongodb

import (
	"time"

	"github.com/Abdurahmanit/GroupProject/property-service/internal/property/domain"
)

// propertyDocument is the storage shape of a Property. The record store is
// keyed by the property identifier, so the domain ID is the document _id.
// Field names follow the record-store schema (camelCase), not snake_case.
type propertyDocument struct {
	ID          string     `bson:"_id"`
	Title       string     `bson:"title"`
	Description string     `bson:"description"`
	Price       float64    `bson:"price"`
	Location    string     `bson:"location"`
	Type        string     `bson:"type"`
	ImageKey    string     `bson:"imageKey"`
	Owner       string     `bson:"owner"`
	CreatedAt   time.Time  `bson:"createdAt"`
	UpdatedAt   time.Time  `bson:"updatedAt"`
	IsBooked    bool       `bson:"isBooked"`
	BookedFrom  *time.Time `bson:"bookedFrom"`
	BookedTo    *time.Time `bson:"bookedTo"`
}

func toPropertyDocument(p *domain.Property) *propertyDocument {
	if p == nil {
		return nil
	}
	return &propertyDocument{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Location:    p.Location,
		Type:        string(p.Type),
		ImageKey:    p.ImageKey,
		Owner:       p.Owner,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		IsBooked:    p.IsBooked,
		BookedFrom:  p.BookedFrom,
		BookedTo:    p.BookedTo,
	}
}

func toDomainProperty(d *propertyDocument) *domain.Property {
	if d == nil {
		return nil
	}
	return &domain.Property{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Price:       d.Price,
		Location:    d.Location,
		Type:        domain.PropertyType(d.Type),
		ImageKey:    d.ImageKey,
		Owner:       d.Owner,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
		IsBooked:    d.IsBooked,
		BookedFrom:  d.BookedFrom,
		BookedTo:    d.BookedTo,
	}
}

func toDomainProperties(docs []*propertyDocument) []*domain.Property {
	properties := make([]*domain.Property, 0, len(docs))
	for _, doc := range docs {
		properties = append(properties, toDomainProperty(doc))
	}
	return properties
}
