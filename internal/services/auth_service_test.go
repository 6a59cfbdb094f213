package services_test

import (
	"context"
	"fmt"
	"testing"

	"stockpro/internal/models"
	"stockpro/internal/services"
	"stockpro/pkg/googleauth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockGoogleVerifier is a mock implementation of googleauth.Verifier
type MockGoogleVerifier struct {
	mock.Mock
}

func (m *MockGoogleVerifier) Verify(ctx context.Context, accessToken string) (*googleauth.Profile, error) {
	args := m.Called(accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*googleauth.Profile), args.Error(1)
}

func newAuthService(repo *MockUserRepository, google *MockGoogleVerifier) *services.AuthService {
	return services.NewAuthService(repo, services.NewTokenService("test_jwt_secret"), google)
}

func TestAuthService_Register(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo, new(MockGoogleVerifier))

	// Test successful registration
	mockRepo.On("GetByEmail", "a@x.com").Return(nil, fmt.Errorf("user with email a@x.com not found")).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Run(func(args mock.Arguments) {
		user := args.Get(0).(*models.User)
		user.ID = "user-1"
		// Password must never be stored in the clear
		assert.NotEqual(t, "password123", user.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")))
		assert.Equal(t, models.ProviderLocal, user.AuthProvider)
	}).Return(nil).Once()

	result, err := authService.Register("a@x.com", "password123", "A")
	assert.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "a@x.com", result.User.Email)
	assert.Equal(t, "A", result.User.Name)
	mockRepo.AssertExpectations(t)

	// Test email already registered
	mockRepo.On("GetByEmail", "a@x.com").Return(&models.User{ID: "user-1"}, nil).Once()
	_, err = authService.Register("a@x.com", "password123", "A")
	assert.ErrorIs(t, err, services.ErrEmailTaken)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Login(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo, new(MockGoogleVerifier))

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:           "user-123",
		Email:        "test@example.com",
		Name:         "Test",
		PasswordHash: string(hashedPassword),
		AuthProvider: models.ProviderLocal,
	}

	// Test successful login
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	result, err := authService.Login("test@example.com", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, result.Token)

	// The issued token must verify back to the same user
	subjectID, err := authService.VerifyToken(result.Token)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, subjectID)
	mockRepo.AssertExpectations(t)

	// Test invalid credentials (wrong password)
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	_, err = authService.Login("test@example.com", "wrongpassword")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)

	// Test invalid credentials (user not found)
	mockRepo.On("GetByEmail", "nobody@example.com").Return(nil, fmt.Errorf("user with email nobody@example.com not found")).Once()
	_, err = authService.Login("nobody@example.com", "password123")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)

	// Test OAuth-only account has no local password
	oauthUser := &models.User{ID: "user-456", Email: "g@example.com", AuthProvider: models.ProviderGoogle}
	mockRepo.On("GetByEmail", oauthUser.Email).Return(oauthUser, nil).Once()
	_, err = authService.Login("g@example.com", "password123")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_LoginWithGoogle(t *testing.T) {
	claimed := services.GoogleProfile{
		Email:    "g@example.com",
		Name:     "G User",
		GoogleID: "google-123",
		Picture:  "https://example.com/pic.png",
	}
	verified := &googleauth.Profile{
		Subject: "google-123",
		Email:   "g@example.com",
		Name:    "G User",
		Picture: "https://example.com/pic.png",
	}

	// First login creates the account
	mockRepo := new(MockUserRepository)
	mockGoogle := new(MockGoogleVerifier)
	authService := newAuthService(mockRepo, mockGoogle)

	mockGoogle.On("Verify", "provider-token").Return(verified, nil).Once()
	mockRepo.On("GetByEmail", claimed.Email).Return(nil, fmt.Errorf("user with email g@example.com not found")).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Run(func(args mock.Arguments) {
		user := args.Get(0).(*models.User)
		user.ID = "user-789"
		assert.Equal(t, models.ProviderGoogle, user.AuthProvider)
		assert.Empty(t, user.PasswordHash)
		assert.Equal(t, "google-123", user.GoogleID)
	}).Return(nil).Once()

	result, err := authService.LoginWithGoogle(context.Background(), "provider-token", claimed)
	assert.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "g@example.com", result.User.Email)
	mockRepo.AssertExpectations(t)
	mockGoogle.AssertExpectations(t)

	// Second login reuses the existing account (upsert by email)
	existing := &models.User{ID: "user-789", Email: claimed.Email, Name: claimed.Name, AuthProvider: models.ProviderGoogle}
	mockGoogle.On("Verify", "provider-token").Return(verified, nil).Once()
	mockRepo.On("GetByEmail", claimed.Email).Return(existing, nil).Once()

	result, err = authService.LoginWithGoogle(context.Background(), "provider-token", claimed)
	assert.NoError(t, err)
	assert.Equal(t, "user-789", result.User.ID)
	mockRepo.AssertExpectations(t)
	mockGoogle.AssertExpectations(t)
}

func TestAuthService_LoginWithGoogle_InvalidProfile(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockGoogle := new(MockGoogleVerifier)
	authService := newAuthService(mockRepo, mockGoogle)

	// Missing email in the claimed profile
	_, err := authService.LoginWithGoogle(context.Background(), "provider-token", services.GoogleProfile{Name: "No Email"})
	assert.ErrorIs(t, err, services.ErrInvalidProfile)

	// Provider rejects the token
	mockGoogle.On("Verify", "bad-token").Return(nil, googleauth.ErrTokenRejected).Once()
	_, err = authService.LoginWithGoogle(context.Background(), "bad-token", services.GoogleProfile{Email: "g@example.com"})
	assert.ErrorIs(t, err, services.ErrInvalidProfile)
	mockGoogle.AssertExpectations(t)

	// Claimed email does not match what Google reports
	mockGoogle.On("Verify", "provider-token").Return(&googleauth.Profile{Email: "other@example.com"}, nil).Once()
	_, err = authService.LoginWithGoogle(context.Background(), "provider-token", services.GoogleProfile{Email: "g@example.com"})
	assert.ErrorIs(t, err, services.ErrInvalidProfile)
	mockGoogle.AssertExpectations(t)

	// The store must never be touched on a failed verification
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestAuthService_CurrentUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo, new(MockGoogleVerifier))

	user := &models.User{ID: "user-123", Email: "test@example.com", Name: "Test", Picture: "p.png"}
	mockRepo.On("GetByID", "user-123").Return(user, nil).Once()

	summary, err := authService.CurrentUser("user-123")
	assert.NoError(t, err)
	assert.Equal(t, models.UserSummary{ID: "user-123", Email: "test@example.com", Name: "Test", Picture: "p.png"}, summary)
	mockRepo.AssertExpectations(t)

	mockRepo.On("GetByID", "ghost").Return(nil, fmt.Errorf("user with ID ghost not found")).Once()
	_, err = authService.CurrentUser("ghost")
	assert.ErrorIs(t, err, services.ErrUserNotFound)
	mockRepo.AssertExpectations(t)
}
