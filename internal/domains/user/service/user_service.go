package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"mangable-backend/internal/domains/user"
	"mangable-backend/pkg/jwt"
)

// userService implements user.Service.
type userService struct {
	repo   user.Repository
	tokens *jwt.Manager
}

func NewUserService(repo user.Repository, tokens *jwt.Manager) user.Service {
	return &userService{
		repo:   repo,
		tokens: tokens,
	}
}

// ========================================
// AUTHENTICATION
// ========================================

// Register creates a new account. Username and email are globally unique;
// the error reports which of the two collided.
func (s *userService) Register(ctx context.Context, req user.RegisterRequest) (*user.UserDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Pre-check so the caller gets the precise conflict. The unique indexes
	// remain the authority: a concurrent insert still surfaces as a mapped
	// constraint error from the repository.
	existing, err := s.repo.FindByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil && !errors.Is(err, user.ErrUserNotFound) {
		return nil, fmt.Errorf("check uniqueness: %w", err)
	}
	if existing != nil {
		if existing.Username == req.Username {
			return nil, user.ErrUsernameAlreadyTaken
		}
		return nil, user.ErrEmailAlreadyTaken
	}

	passwordHash, err := HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	newUser := &user.User{
		ID:           uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: passwordHash,
		IsActive:     true,
		IsAdmin:      false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, newUser); err != nil {
		return nil, err
	}

	dto := newUser.ToDTO()
	return &dto, nil
}

// Login authenticates by username/password and issues a bearer token.
// Unknown username, wrong password and inactive account all collapse into
// ErrInvalidCredentials so login probing gains no signal.
func (s *userService) Login(ctx context.Context, req user.LoginRequest) (*user.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.FindActiveByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, user.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !VerifyPassword(req.Password, u.PasswordHash) {
		return nil, user.ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(u.ID)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	return &user.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        u.ToDTO(),
	}, nil
}

// GetProfile returns the public profile of the given user.
func (s *userService) GetProfile(ctx context.Context, id uuid.UUID) (*user.UserDTO, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := u.ToDTO()
	return &dto, nil
}
