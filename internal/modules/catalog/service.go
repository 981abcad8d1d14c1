package catalog

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"rentnest/internal/domain"
	"rentnest/internal/repository"
)

// CreditCost is debited for every credit-gated mutation: creating or
// editing a listing, and unlocking an owner's contact details.
const CreditCost int64 = 2

const dateLayout = "2006-01-02"

type Service struct {
	db    *gorm.DB
	cache *PropertyCache
}

func NewService(db *gorm.DB, cache *PropertyCache) *Service {
	return &Service{db: db, cache: cache}
}

// CreateListing debits the owner's credits and creates the listing in one
// transaction. New listings start pending until an admin reviews them.
func (s *Service) CreateListing(ctx context.Context, ownerID int64, in CreateListingInput) (*domain.Property, error) {
	availableFrom, err := time.Parse(dateLayout, in.AvailableFrom)
	if err != nil {
		return nil, ErrValidation
	}
	if in.Title == "" || in.Price <= 0 {
		return nil, ErrValidation
	}

	property := &domain.Property{
		OwnerID:       ownerID,
		Title:         in.Title,
		Description:   in.Description,
		Address:       in.Address,
		City:          in.City,
		Price:         in.Price,
		Status:        domain.PropertyPending,
		AvailableFrom: availableFrom,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := debitCredits(tx, ownerID, CreditCost); err != nil {
			return err
		}
		return tx.Create(property).Error
	})
	if err != nil {
		return nil, err
	}
	return property, nil
}

// UpdateListing applies partial edits, charging the same credit cost as
// listing creation.
func (s *Service) UpdateListing(ctx context.Context, ownerID, propertyID int64, in UpdateListingInput) (*domain.Property, error) {
	updates := map[string]interface{}{}
	if in.Title != nil {
		if *in.Title == "" {
			return nil, ErrValidation
		}
		updates["title"] = *in.Title
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.Address != nil {
		updates["address"] = *in.Address
	}
	if in.City != nil {
		updates["city"] = *in.City
	}
	if in.Price != nil {
		if *in.Price <= 0 {
			return nil, ErrValidation
		}
		updates["price"] = *in.Price
	}
	if in.AvailableFrom != nil {
		availableFrom, err := time.Parse(dateLayout, *in.AvailableFrom)
		if err != nil {
			return nil, ErrValidation
		}
		updates["available_from"] = availableFrom
	}
	if len(updates) == 0 {
		return nil, ErrValidation
	}

	var property domain.Property
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&property, "id = ?", propertyID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if property.OwnerID != ownerID {
			return ErrForbidden
		}
		if err := debitCredits(tx, ownerID, CreditCost); err != nil {
			return err
		}
		if err := tx.Model(&property).Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(&property, "id = ?", propertyID).Error
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, propertyID)

	return &property, nil
}

// errAlreadyUnlocked aborts the unlock transaction without charging when
// a concurrent call won the unique index race.
var errAlreadyUnlocked = errors.New("unlock already exists")

// UnlockContact charges credits once per (user, property) and returns the
// owner's contact details. Repeat calls are free.
func (s *Service) UnlockContact(ctx context.Context, userID, propertyID int64) (*domain.User, error) {
	property, err := s.getWithOwner(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if property.OwnerID == userID {
		return property.Owner, nil
	}

	var existing domain.PropertyUnlock
	err = s.db.WithContext(ctx).
		Where("user_id = ? AND property_id = ?", userID, propertyID).
		First(&existing).Error
	if err == nil {
		return property.Owner, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := debitCredits(tx, userID, CreditCost); err != nil {
			return err
		}
		unlock := domain.PropertyUnlock{UserID: userID, PropertyID: propertyID}
		if err := tx.Create(&unlock).Error; err != nil {
			if repository.IsUniqueViolation(err) {
				return errAlreadyUnlocked
			}
			return err
		}
		return nil
	})
	if err != nil && !errors.Is(err, errAlreadyUnlocked) {
		return nil, err
	}

	return property.Owner, nil
}

// GetProperty serves the public detail view through the cache.
func (s *Service) GetProperty(ctx context.Context, id int64) (*domain.Property, error) {
	if cached, ok := s.cache.Get(ctx, id); ok {
		return cached, nil
	}

	var property domain.Property
	if err := s.db.WithContext(ctx).First(&property, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if property.Status == domain.PropertyPending || property.Status == domain.PropertyRejected {
		return nil, ErrNotFound
	}

	s.cache.Set(ctx, &property)

	return &property, nil
}

func (s *Service) ListAvailable(ctx context.Context, city string, limit, offset int) ([]domain.Property, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	q := s.db.WithContext(ctx).Where("status = ?", domain.PropertyAvailable)
	if city != "" {
		q = q.Where("city = ?", city)
	}
	var out []domain.Property
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) ListMine(ctx context.Context, ownerID int64) ([]domain.Property, error) {
	var out []domain.Property
	if err := s.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// GetOwnerContact returns the owner's contact details when the caller has
// unlocked them, or is the owner.
func (s *Service) GetOwnerContact(ctx context.Context, userID, propertyID int64) (*domain.User, error) {
	property, err := s.getWithOwner(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if property.OwnerID == userID {
		return property.Owner, nil
	}

	var count int64
	if err := s.db.WithContext(ctx).
		Model(&domain.PropertyUnlock{}).
		Where("user_id = ? AND property_id = ?", userID, propertyID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrContactLocked
	}
	return property.Owner, nil
}

func (s *Service) getWithOwner(ctx context.Context, propertyID int64) (*domain.Property, error) {
	var property domain.Property
	if err := s.db.WithContext(ctx).Preload("Owner").First(&property, "id = ?", propertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &property, nil
}

func debitCredits(tx *gorm.DB, userID, amount int64) error {
	var user domain.User
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, "id = ?", userID).Error; err != nil {
		return err
	}
	if user.Credits < amount {
		return ErrInsufficientCredits
	}
	return tx.Model(&domain.User{}).
		Where("id = ?", userID).
		Update("credits", user.Credits-amount).Error
}
