package usecase

import (
	"context"
	"time"

	"github.com/Abdurahmanit/GroupProject/property-service/internal/property/domain"
	"github.com/stretchr/testify/mock"
)

type MockPropertyRepository struct {
	mock.Mock
}

func (m *MockPropertyRepository) Create(ctx context.Context, property *domain.Property) error {
	args := m.Called(ctx, property)
	return args.Error(0)
}

func (m *MockPropertyRepository) FindByID(ctx context.Context, id string) (*domain.Property, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*domain.Property); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPropertyRepository) FindAll(ctx context.Context) ([]*domain.Property, error) {
	args := m.Called(ctx)
	if ps, ok := args.Get(0).([]*domain.Property); ok {
		return ps, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPropertyRepository) UpdateFields(ctx context.Context, id, owner string, update domain.PropertyUpdate) error {
	args := m.Called(ctx, id, owner, update)
	return args.Error(0)
}

func (m *MockPropertyRepository) Delete(ctx context.Context, id, owner string) error {
	args := m.Called(ctx, id, owner)
	return args.Error(0)
}

func (m *MockPropertyRepository) Book(ctx context.Context, id string, from, to time.Time) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}

type MockPropertyCache struct {
	mock.Mock
}

func (m *MockPropertyCache) Get(ctx context.Context, id string) (*domain.Property, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*domain.Property); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPropertyCache) Set(ctx context.Context, property *domain.Property) error {
	args := m.Called(ctx, property)
	return args.Error(0)
}

func (m *MockPropertyCache) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockBlobStorage struct {
	mock.Mock
}

func (m *MockBlobStorage) Upload(ctx context.Context, objectKey string, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, objectKey, data, contentType)
	return args.String(0), args.Error(1)
}

type MockNotificationPublisher struct {
	mock.Mock
}

func (m *MockNotificationPublisher) Publish(ctx context.Context, propertyID, message string) error {
	args := m.Called(ctx, propertyID, message)
	return args.Error(0)
}

type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) Send(ctx context.Context, to []string, subject, bodyHTML, bodyText string) error {
	args := m.Called(ctx, to, subject, bodyHTML, bodyText)
	return args.Error(0)
}
