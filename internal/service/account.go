package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/josh-kwaku/splitledger/internal/auth"
	"github.com/josh-kwaku/splitledger/internal/domain"
	"github.com/josh-kwaku/splitledger/internal/logging"
)

const minPasswordLength = 8

type RegisterRequest struct {
	Email    string
	Name     string
	Password string
}

type AccountService struct {
	users      userRepository
	jwtSecret  string
	jwtExpiry  time.Duration
	bcryptCost int
}

func NewAccountService(users userRepository, jwtSecret string, jwtExpiry time.Duration) *AccountService {
	return &AccountService{
		users:      users,
		jwtSecret:  jwtSecret,
		jwtExpiry:  jwtExpiry,
		bcryptCost: bcrypt.DefaultCost,
	}
}

// WithBcryptCost overrides the hashing cost, mainly for tests.
func (s *AccountService) WithBcryptCost(cost int) *AccountService {
	s.bcryptCost = cost
	return s
}

func (s *AccountService) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("Register: email: %w", domain.ErrInvalidRequest)
	}
	if strings.TrimSpace(req.Name) == "" || len(req.Password) < minPasswordLength {
		return nil, fmt.Errorf("Register: %w", domain.ErrInvalidRequest)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("Register: hash password: %w", err)
	}

	u := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("Register: %w", err)
	}

	logging.FromContext(ctx).Info("user registered", "user_id", u.ID)
	return u, nil
}

// Login verifies the credentials and returns the user with a signed token.
func (s *AccountService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	u, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, "", fmt.Errorf("Login: %w", domain.ErrInvalidCredentials)
		}
		return nil, "", fmt.Errorf("Login: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", fmt.Errorf("Login: %w", domain.ErrInvalidCredentials)
	}

	token, err := auth.GenerateToken(auth.Claims{UserID: u.ID, Email: u.Email, Name: u.Name}, s.jwtSecret, s.jwtExpiry)
	if err != nil {
		return nil, "", fmt.Errorf("Login: %w", err)
	}
	return u, token, nil
}

func (s *AccountService) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("GetUser: %w", err)
	}
	return u, nil
}
