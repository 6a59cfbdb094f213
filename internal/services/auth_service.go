package services

import (
	"context"
	"fmt"
	"log"

	"stockpro/internal/models"
	"stockpro/internal/repositories"
	"stockpro/pkg/googleauth"

	"golang.org/x/crypto/bcrypt"
)

// AuthResult is returned by operations that establish a session.
type AuthResult struct {
	Token string             `json:"token"`
	User  models.UserSummary `json:"user"`
}

// AuthService handles registration, login and token verification against
// the credential store.
type AuthService struct {
	userRepo repositories.UserRepository
	tokens   *TokenService
	google   googleauth.Verifier
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, tokens *TokenService, google googleauth.Verifier) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		google:   google,
	}
}

// Register creates a local account with a bcrypt-hashed password and
// returns a fresh session token.
func (s *AuthService) Register(email, password, name string) (*AuthResult, error) {
	if existing, err := s.userRepo.GetByEmail(email); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: %s", ErrEmailTaken, email)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hashedPassword),
		AuthProvider: models.ProviderLocal,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	return s.session(user)
}

// Login authenticates a local account. The same error is returned whether
// the email is unknown, the account has no password, or the password is
// wrong, so callers cannot probe for registered emails.
func (s *AuthService) Login(email, password string) (*AuthResult, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if user.PasswordHash == "" {
		// OAuth-only account
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.session(user)
}

// GoogleProfile is the profile the client claims for a Google login.
type GoogleProfile struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	GoogleID string `json:"googleId"`
	Picture  string `json:"picture"`
}

// LoginWithGoogle verifies the provider access token server-side and then
// upserts the account by email. The claimed profile is only used after the
// verified profile confirms the same email.
func (s *AuthService) LoginWithGoogle(ctx context.Context, providerToken string, claimed GoogleProfile) (*AuthResult, error) {
	if claimed.Email == "" {
		return nil, fmt.Errorf("%w: missing email", ErrInvalidProfile)
	}

	verified, err := s.google.Verify(ctx, providerToken)
	if err != nil {
		log.Printf("Google token verification failed: %v", err)
		return nil, fmt.Errorf("%w: provider token rejected", ErrInvalidProfile)
	}
	if verified.Email == "" || verified.Email != claimed.Email {
		return nil, fmt.Errorf("%w: claimed email does not match provider", ErrInvalidProfile)
	}

	user, err := s.userRepo.GetByEmail(claimed.Email)
	if err != nil {
		// First Google login for this email creates the account.
		user = &models.User{
			Email:        verified.Email,
			Name:         verified.Name,
			GoogleID:     claimed.GoogleID,
			Picture:      verified.Picture,
			AuthProvider: models.ProviderGoogle,
		}
		if user.Name == "" {
			user.Name = claimed.Name
		}
		if user.GoogleID == "" {
			user.GoogleID = verified.Subject
		}
		if err := s.userRepo.Create(user); err != nil {
			return nil, fmt.Errorf("failed to create user from Google profile: %w", err)
		}
	}

	return s.session(user)
}

// VerifyToken resolves a session token to the subject user ID.
func (s *AuthService) VerifyToken(tokenString string) (string, error) {
	return s.tokens.Verify(tokenString)
}

// CurrentUser returns the public profile for a verified user ID.
func (s *AuthService) CurrentUser(userID string) (models.UserSummary, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return models.UserSummary{}, fmt.Errorf("%w: %s", ErrUserNotFound, userID)
	}
	return user.Summary(), nil
}

func (s *AuthService) session(user *models.User) (*AuthResult, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{
		Token: token,
		User:  user.Summary(),
	}, nil
}
