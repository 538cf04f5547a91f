package service

import (
	"context"
	"strings"

	"reviewworld/internal/models"
	"reviewworld/internal/repository"
	"reviewworld/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// UserService handles account lifecycle and profile reads.
type UserService struct {
	userRepo   repository.UserRepository
	reviewRepo repository.ReviewRepository
}

type SignupInput struct {
	Name     string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

// Profile is a public user page: the user and a page of their reviews.
type Profile struct {
	User    *models.User     `json:"user"`
	Reviews []*models.Review `json:"reviews"`
	Total   int64            `json:"total"`
	Page    int              `json:"page"`
}

func NewUserService(userRepo repository.UserRepository, reviewRepo repository.ReviewRepository) *UserService {
	return &UserService{userRepo: userRepo, reviewRepo: reviewRepo}
}

// Signup registers a new account with a bcrypt-hashed password.
func (s *UserService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	if err := validation.ValidateDisplayName(in.Name); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash: string(hash),
		Role:         models.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials. Unknown email and wrong password produce the
// same error so the response does not leak which accounts exist.
func (s *UserService) Login(ctx context.Context, in LoginInput) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// IsAdmin reports whether the user holds the admin role. Missing users and
// lookup failures report false.
func (s *UserService) IsAdmin(ctx context.Context, userID string) (bool, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	return user.IsAdmin(), nil
}

// UpdateName changes the caller's display name.
func (s *UserService) UpdateName(ctx context.Context, userID, name string) (*models.User, error) {
	if err := validation.ValidateDisplayName(name); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	return s.userRepo.UpdateName(ctx, userID, strings.TrimSpace(name))
}

// DeleteAccount removes the account with its reviews and reports.
func (s *UserService) DeleteAccount(ctx context.Context, userID string) error {
	return s.userRepo.Delete(ctx, userID)
}

// GetProfile returns a user with a page of their reviews, newest first.
func (s *UserService) GetProfile(ctx context.Context, userID string, page, pageSize int) (*Profile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 50 {
		pageSize = 10
	}
	reviews, total, err := s.reviewRepo.ListForUser(ctx, userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	return &Profile{User: user, Reviews: reviews, Total: total, Page: page}, nil
}
