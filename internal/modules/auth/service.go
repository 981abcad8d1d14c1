package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"rentnest/internal/domain"
	"rentnest/internal/pkg/jwt"
	"rentnest/internal/repository"
)

type Service struct {
	users      *repository.UserRepository
	jwtService *jwt.Service
}

func NewService(users *repository.UserRepository, jwtService *jwt.Service) *Service {
	return &Service{users: users, jwtService: jwtService}
}

// Register creates an account in the given role and returns the user
// with a signed token.
func (s *Service) Register(ctx context.Context, in RegisterInput, role domain.UserRole) (*domain.User, string, error) {
	exists, err := s.users.EmailExists(ctx, in.Email)
	if err != nil {
		return nil, "", err
	}
	if exists {
		return nil, "", ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         role,
		Name:         in.Name,
		Phone:        in.Phone,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, "", ErrEmailAlreadyExists
		}
		return nil, "", err
	}

	token, err := s.jwtService.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *Service) Login(ctx context.Context, in LoginInput) (*domain.User, string, error) {
	user, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *Service) GetMe(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile applies the partial profile edit. NID and signature are
// filled in here because receipts embed them.
func (s *Service) UpdateProfile(ctx context.Context, userID int64, in UpdateProfileInput) (*domain.User, error) {
	updates := map[string]interface{}{}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, ErrValidation
		}
		updates["name"] = *in.Name
	}
	if in.Phone != nil {
		updates["phone"] = *in.Phone
	}
	if in.Address != nil {
		updates["address"] = *in.Address
	}
	if in.City != nil {
		updates["city"] = *in.City
	}
	if in.NIDNumber != nil {
		updates["nid_number"] = *in.NIDNumber
	}
	if in.SignatureURL != nil {
		updates["signature_url"] = *in.SignatureURL
	}
	if len(updates) == 0 {
		return nil, ErrValidation
	}

	if err := s.users.UpdateProfile(ctx, userID, updates); err != nil {
		return nil, err
	}
	return s.GetMe(ctx, userID)
}
