package admin

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"rentnest/internal/domain"
	"rentnest/internal/modules/catalog"
	"rentnest/internal/repository"
)

// Service reviews pending listings before they appear in the catalog.
type Service struct {
	properties *repository.PropertyRepository
	cache      *catalog.PropertyCache
	loggerf    func(format string, args ...interface{})
}

func NewService(properties *repository.PropertyRepository, cache *catalog.PropertyCache) *Service {
	return &Service{
		properties: properties,
		cache:      cache,
		loggerf:    log.Printf,
	}
}

func (s *Service) ListPending(ctx context.Context) ([]domain.Property, error) {
	return s.properties.ListPending(ctx)
}

// Review moves one pending property to available or rejected. The status
// guard makes a second review of the same property fail cleanly.
func (s *Service) Review(ctx context.Context, propertyID int64, approve bool) (*domain.Property, error) {
	if _, err := s.properties.GetByID(ctx, propertyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	target := domain.PropertyRejected
	if approve {
		target = domain.PropertyAvailable
	}

	changed, err := s.properties.UpdateStatusFrom(ctx, propertyID, domain.PropertyPending, target)
	if err != nil {
		return nil, err
	}
	if !changed {
		return nil, ErrInvalidState
	}

	s.cache.Invalidate(ctx, propertyID)

	property, err := s.properties.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	s.loggerf("property reviewed id=%d status=%s", property.ID, property.Status)
	return property, nil
}
