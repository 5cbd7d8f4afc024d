// Package service contains the business logic between the HTTP handlers and the repositories.
package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"cafehub/internal/models"
	"cafehub/internal/observability"
	"cafehub/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// AuthService registers and authenticates users.
type AuthService struct {
	userRepo   repository.UserRepository
	bcryptCost int

	dummyOnce sync.Once
	dummyHash []byte
}

// RegisterInput carries an already validated signup form. Admin is never
// taken from a request body; only trusted callers such as the development
// bootstrap set it.
type RegisterInput struct {
	Username    string
	Email       string
	FirstName   string
	LastName    string
	Description string
	Password    string
	ImageURL    string
	Admin       bool
}

func NewAuthService(userRepo repository.UserRepository, bcryptCost int) *AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{userRepo: userRepo, bcryptCost: bcryptCost}
}

// BuildCandidate hashes the password and returns an unsaved user. It does not touch storage.
func (s *AuthService) BuildCandidate(in RegisterInput) (*models.User, error) {
	if in.Username == "" {
		return nil, models.NewValidationError("Username is required")
	}
	if in.Password == "" {
		return nil, models.NewValidationError("Password is required")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, models.NewValidationError("Password must be at most 72 bytes")
		}
		return nil, models.NewInternalError(err)
	}

	imageURL := strings.TrimSpace(in.ImageURL)
	if imageURL == "" {
		imageURL = models.DefaultUserImageURL
	}

	return &models.User{
		Username:       in.Username,
		Email:          in.Email,
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Description:    in.Description,
		ImageURL:       imageURL,
		Admin:          in.Admin,
		HashedPassword: string(hashed),
	}, nil
}

// Commit persists a candidate. A taken username yields models.ErrUsernameTaken.
func (s *AuthService) Commit(ctx context.Context, user *models.User) error {
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, models.ErrUsernameTaken) {
			observability.RecordAuth("signup", "conflict")
		} else {
			observability.RecordAuth("signup", "error")
		}
		return err
	}
	observability.RecordAuth("signup", "success")
	return nil
}

// Register is BuildCandidate followed by Commit.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	user, err := s.BuildCandidate(in)
	if err != nil {
		return nil, err
	}
	if err := s.Commit(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate returns the user whose username matches exactly and whose password verifies.
// Unknown usernames and wrong passwords both return models.ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		observability.RecordAuth("login", "error")
		return nil, err
	}

	if user == nil {
		// Spend the same bcrypt time as a real comparison.
		_ = bcrypt.CompareHashAndPassword(s.dummy(), []byte(password))
		observability.RecordAuth("login", "invalid")
		return nil, models.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		observability.RecordAuth("login", "invalid")
		return nil, models.ErrInvalidCredentials
	}

	observability.RecordAuth("login", "success")
	return user, nil
}

func (s *AuthService) dummy() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("cafehub-dummy-password"), s.bcryptCost)
	})
	return s.dummyHash
}
