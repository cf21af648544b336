// Package service implements the business logic of the stores service.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/flyosprey/Store-REST-API/internal/models"
	"github.com/flyosprey/Store-REST-API/internal/notification"
	"github.com/flyosprey/Store-REST-API/internal/repository"
	"gorm.io/gorm"
)

// dispatchTimeout bounds the post-registration enqueue.
const dispatchTimeout = 3 * time.Second

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user with that username or email already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrNotRefreshToken    = errors.New("refresh token required")
)

// RegisterRequest carries the fields needed to create an account.
type RegisterRequest struct {
	Username string
	Email    string
	Password string
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type RefreshResponse struct {
	AccessToken string `json:"access_token"`
}

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*models.User, error)
	Login(ctx context.Context, username, password string) (*LoginResponse, error)
	Refresh(ctx context.Context, claims *Claims) (*RefreshResponse, error)
	Logout(ctx context.Context, claims *Claims) error
}

type authService struct {
	userRepo   repository.UserRepository
	hasher     PasswordHasher
	jwtService JWTService
	blocklist  Blocklist
	dispatcher notification.Dispatcher
}

func NewAuthService(
	userRepo repository.UserRepository,
	hasher PasswordHasher,
	jwtService JWTService,
	blocklist Blocklist,
	dispatcher notification.Dispatcher,
) AuthService {
	return &authService{
		userRepo:   userRepo,
		hasher:     hasher,
		jwtService: jwtService,
		blocklist:  blocklist,
		dispatcher: dispatcher,
	}
}

// Register creates the user and then enqueues the welcome email. The
// enqueue is not part of the insert: its failure is logged and the
// registration still succeeds.
func (s *authService) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	exists, err := s.userRepo.ExistsByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserExists
	}

	digest, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: digest,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// A concurrent registration can win between the check and the insert.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		return nil, err
	}

	s.notifyRegistration(ctx, user)
	return user, nil
}

func (s *authService) notifyRegistration(ctx context.Context, user *models.User) {
	if s.dispatcher == nil {
		return
	}

	// Detached from the request so a client disconnect does not drop the job.
	dispatchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), dispatchTimeout)
	defer cancel()

	if err := s.dispatcher.EnqueueRegistrationEmail(dispatchCtx, user.Email, user.Username); err != nil {
		slog.WarnContext(ctx, "failed to enqueue registration email",
			"user_id", user.ID,
			"error", err,
		)
	}
}

func (s *authService) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		slog.ErrorContext(ctx, "stored password digest is unreadable", "user_id", user.ID, "error", err)
		return nil, ErrInvalidCredentials
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.jwtService.GenerateAccessToken(user.ID, true)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.jwtService.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Refresh issues a non-fresh access token for the refresh token's subject.
// The refresh token itself stays valid until it expires or is revoked.
func (s *authService) Refresh(ctx context.Context, claims *Claims) (*RefreshResponse, error) {
	if claims == nil || !claims.IsRefresh() {
		return nil, ErrNotRefreshToken
	}

	accessToken, err := s.jwtService.GenerateAccessToken(claims.UserID, false)
	if err != nil {
		return nil, err
	}

	return &RefreshResponse{AccessToken: accessToken}, nil
}

func (s *authService) Logout(ctx context.Context, claims *Claims) error {
	if claims == nil || claims.ID == "" {
		return ErrMalformedToken
	}
	s.blocklist.Revoke(claims.ID)
	return nil
}
