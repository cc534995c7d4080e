package service

import (
	"context"
	"errors"
	"time"

	"github.com/authgate/authgate-go/internal/crypto"
	"github.com/authgate/authgate-go/internal/model"
	"github.com/authgate/authgate-go/internal/repository"
)

var (
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password. Collapsing the two keeps login responses from confirming
	// which emails are registered.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNameRequired       = errors.New("name is required")
	ErrEmailRequired      = errors.New("email is required")
	ErrPasswordRequired   = errors.New("password is required")
	ErrEmailTaken         = errors.New("email already in use")
)

// AccountStore is the persistence contract the auth service depends on.
// Create must enforce email uniqueness atomically and return
// repository.ErrDuplicateEmail on collision.
type AccountStore interface {
	Create(ctx context.Context, account *model.Account) error
	GetByEmail(ctx context.Context, email string) (*model.Account, error)
	GetByID(ctx context.Context, id int64) (*model.Account, error)
}

// AuthService handles registration, login and account lookup.
type AuthService struct {
	store     AccountStore
	hashCost  int
	jwtSecret string
	tokenTTL  time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(store AccountStore, hashCost int, secret string, ttl time.Duration) *AuthService {
	return &AuthService{
		store:     store,
		hashCost:  hashCost,
		jwtSecret: secret,
		tokenTTL:  ttl,
	}
}

// Register creates a new account and returns its public view with a token.
// On any failure no account is persisted; the store's unique email index
// guarantees that concurrent registrations of the same email produce exactly
// one account.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.AuthResponse, error) {
	if req.Name == "" {
		return model.AuthResponse{}, ErrNameRequired
	}
	if req.Email == "" {
		return model.AuthResponse{}, ErrEmailRequired
	}
	if req.Password == "" {
		return model.AuthResponse{}, ErrPasswordRequired
	}

	hash, err := crypto.HashPassword(req.Password, s.hashCost)
	if err != nil {
		return model.AuthResponse{}, err
	}

	account := &model.Account{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
	}

	if err := s.store.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return model.AuthResponse{}, ErrEmailTaken
		}
		return model.AuthResponse{}, err
	}

	token, err := crypto.GenerateToken(account.ID, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return model.AuthResponse{}, err
	}

	return model.AuthResponse{
		Token: token,
		User:  account.PublicView(),
	}, nil
}

// Login authenticates an account and returns a token. Unknown email and
// wrong password both yield ErrInvalidCredentials; a corrupted stored hash
// propagates as an internal error instead.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.AuthResponse, error) {
	account, err := s.store.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return model.AuthResponse{}, ErrInvalidCredentials
		}
		return model.AuthResponse{}, err
	}

	match, err := crypto.VerifyPassword(req.Password, account.PasswordHash)
	if err != nil {
		return model.AuthResponse{}, err
	}
	if !match {
		return model.AuthResponse{}, ErrInvalidCredentials
	}

	token, err := crypto.GenerateToken(account.ID, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return model.AuthResponse{}, err
	}

	return model.AuthResponse{
		Token: token,
		User:  account.PublicView(),
	}, nil
}

// GetAccount retrieves an account by ID and returns its public view.
func (s *AuthService) GetAccount(ctx context.Context, id int64) (model.AccountResponse, error) {
	account, err := s.store.GetByID(ctx, id)
	if err != nil {
		return model.AccountResponse{}, err
	}
	return account.PublicView(), nil
}
