package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yeremiapane/foodiego/models"
	"github.com/yeremiapane/foodiego/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterInput struct {
	Name     string  `json:"name" validate:"required,min=2"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
}

// UserProfile is the public view of a user.
type UserProfile struct {
	ID      uint    `json:"id"`
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
	Role    string  `json:"role"`
}

// AuthService handles registration and credential checks.
type AuthService struct {
	db *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

// RegisterUser creates a USER account. Duplicate emails are rejected
// without touching the existing record.
func (s *AuthService) RegisterUser(ctx context.Context, input RegisterInput) ActionResult {
	if err := validateInput(input); err != nil {
		return failed(ErrInvalidFields, "")
	}

	db := s.db.WithContext(ctx)

	var existing int64
	if err := db.Model(&models.User{}).Where("email = ?", input.Email).Count(&existing).Error; err != nil {
		logActionError("register user", err)
		return failed(ErrSomethingWentWrong, "")
	}
	if existing > 0 {
		return failed(ErrEmailExists, "")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		logActionError("register user", err)
		return failed(ErrSomethingWentWrong, "")
	}

	user := models.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: string(hashed),
		Role:     models.RoleUser,
		Phone:    input.Phone,
		Address:  input.Address,
	}
	if err := db.Create(&user).Error; err != nil {
		logActionError("register user", err)
		return failed(ErrSomethingWentWrong, "")
	}

	utils.InfoLogger.Printf("New user registered: %s", user.Email)
	return succeeded("User created successfully")
}

// GetUserByID returns the public profile of a user.
func (s *AuthService) GetUserByID(ctx context.Context, id uint) (*UserProfile, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return &UserProfile{
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		Phone:   user.Phone,
		Address: user.Address,
		Role:    user.Role,
	}, nil
}

// Authenticate checks an email/password pair.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}
