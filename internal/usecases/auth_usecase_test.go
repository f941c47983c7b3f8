package usecases_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/Erik-List/ranked-capital/internal/domain/entities"
	domainerrors "github.com/Erik-List/ranked-capital/internal/domain/errors"
	"github.com/Erik-List/ranked-capital/internal/infrastructure/linkedin"
	"github.com/Erik-List/ranked-capital/internal/usecases"
	"github.com/Erik-List/ranked-capital/pkg/crypto"
	"github.com/Erik-List/ranked-capital/pkg/jwt"
)

type authMocks struct {
	userRepo *MockUserRepository
	provider *MockIdentityProvider
	sessions *MockSessionStore
}

func newAuthUsecase() (*usecases.AuthUsecase, *authMocks) {
	m := &authMocks{
		userRepo: new(MockUserRepository),
		provider: new(MockIdentityProvider),
		sessions: new(MockSessionStore),
	}
	jwtService := jwt.NewJWTService("test-secret", 15*time.Minute, 24*time.Hour)
	u := usecases.NewAuthUsecase(m.userRepo, m.provider, jwtService, m.sessions, 24*time.Hour)
	return u, m
}

func TestBeginLinkedInLogin(t *testing.T) {
	u, m := newAuthUsecase()
	m.provider.On("AuthorizationURL", mock.AnythingOfType("string")).
		Return("https://www.linkedin.com/oauth/v2/authorization?state=x")

	url, state, err := u.BeginLinkedInLogin(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, url)
	require.Len(t, state, 64)
}

func TestCompleteLinkedInLogin_NewFounder(t *testing.T) {
	u, m := newAuthUsecase()
	ctx := context.Background()

	m.provider.On("ExchangeCode", ctx, "the-code").
		Return(&linkedin.Token{AccessToken: "at-1", IDToken: "idt-1"}, nil)
	m.provider.On("FetchProfile", ctx, "at-1").
		Return(&linkedin.Profile{Sub: "member-42", Name: "Jane Founder"}, nil)
	m.userRepo.On("GetByExternalRef", ctx, "member-42").Return(nil, domainerrors.ErrNotFound)
	m.userRepo.On("Create", ctx, mock.MatchedBy(func(user *entities.User) bool {
		return user.ExternalRef.String == "member-42" && user.Role == entities.UserRoleFounder
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*entities.User).ID = uuid.New()
	}).Return(nil)
	m.sessions.On("CreateSession", ctx, mock.AnythingOfType("string"), mock.Anything, 24*time.Hour).Return(nil)

	resp, err := u.CompleteLinkedInLogin(ctx, "the-code")
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)
	require.NotEmpty(t, resp.SessionID)
	require.Equal(t, entities.UserRoleFounder, resp.User.Role)
	m.userRepo.AssertExpectations(t)
}

func TestCompleteLinkedInLogin_ReturningFounderIsTouched(t *testing.T) {
	u, m := newAuthUsecase()
	ctx := context.Background()
	userID := uuid.New()

	m.provider.On("ExchangeCode", ctx, "the-code").
		Return(&linkedin.Token{AccessToken: "at-1"}, nil)
	m.provider.On("FetchProfile", ctx, "at-1").
		Return(&linkedin.Profile{Sub: "member-42"}, nil)
	m.userRepo.On("GetByExternalRef", ctx, "member-42").Return(&entities.User{
		ID:          userID,
		ExternalRef: null.StringFrom("member-42"),
		Role:        entities.UserRoleFounder,
	}, nil)
	m.userRepo.On("Touch", ctx, userID).Return(nil)
	m.sessions.On("CreateSession", ctx, mock.AnythingOfType("string"), mock.Anything, 24*time.Hour).Return(nil)

	resp, err := u.CompleteLinkedInLogin(ctx, "the-code")
	require.NoError(t, err)
	require.Equal(t, userID, resp.User.ID)
	m.userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCompleteLinkedInLogin_ExchangeFailure(t *testing.T) {
	u, m := newAuthUsecase()
	ctx := context.Background()

	m.provider.On("ExchangeCode", ctx, "bad-code").Return(nil, errors.New("boom"))

	_, err := u.CompleteLinkedInLogin(ctx, "bad-code")
	require.ErrorIs(t, err, domainerrors.ErrUnauthenticated)
}

func TestCompleteLinkedInLogin_ProfileUnavailable(t *testing.T) {
	u, m := newAuthUsecase()
	ctx := context.Background()

	// no id_token to fall back on
	m.provider.On("ExchangeCode", ctx, "the-code").
		Return(&linkedin.Token{AccessToken: "at-1"}, nil)
	m.provider.On("FetchProfile", ctx, "at-1").Return(nil, errors.New("503"))

	_, err := u.CompleteLinkedInLogin(ctx, "the-code")
	require.ErrorIs(t, err, domainerrors.ErrUnauthenticated)
}

func TestCompleteLinkedInLogin_LostCreationRace(t *testing.T) {
	u, m := newAuthUsecase()
	ctx := context.Background()
	userID := uuid.New()

	m.provider.On("ExchangeCode", ctx, "the-code").
		Return(&linkedin.Token{AccessToken: "at-1"}, nil)
	m.provider.On("FetchProfile", ctx, "at-1").
		Return(&linkedin.Profile{Sub: "member-42"}, nil)
	m.userRepo.On("GetByExternalRef", ctx, "member-42").Return(nil, domainerrors.ErrNotFound).Once()
	m.userRepo.On("Create", ctx, mock.Anything).Return(domainerrors.ErrConflict)
	m.userRepo.On("GetByExternalRef", ctx, "member-42").Return(&entities.User{
		ID:   userID,
		Role: entities.UserRoleFounder,
	}, nil).Once()
	m.sessions.On("CreateSession", ctx, mock.AnythingOfType("string"), mock.Anything, 24*time.Hour).Return(nil)

	resp, err := u.CompleteLinkedInLogin(ctx, "the-code")
	require.NoError(t, err)
	require.Equal(t, userID, resp.User.ID)
}

func TestAdminLogin(t *testing.T) {
	u, m := newAuthUsecase()
	ctx := context.Background()

	hash, err := crypto.HashPassword("hunter2!")
	require.NoError(t, err)
	adminUser := &entities.User{
		ID:           uuid.New(),
		Email:        null.StringFrom("mod@ranked.capital"),
		PasswordHash: hash,
		Role:         entities.UserRoleAdmin,
	}
	m.userRepo.On("GetByEmail", ctx, "mod@ranked.capital").Return(adminUser, nil)
	m.sessions.On("CreateSession", ctx, mock.AnythingOfType("string"), mock.Anything, 24*time.Hour).Return(nil)

	resp, err := u.AdminLogin(ctx, &entities.AdminLoginInput{Email: "mod@ranked.capital", Password: "hunter2!"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)
	require.True(t, resp.User.IsAdmin())

	_, err = u.AdminLogin(ctx, &entities.AdminLoginInput{Email: "mod@ranked.capital", Password: "wrong"})
	require.ErrorIs(t, err, domainerrors.ErrCredentials)
}

func TestAdminLogin_RejectsNonAdminAndUnknown(t *testing.T) {
	u, m := newAuthUsecase()
	ctx := context.Background()

	hash, err := crypto.HashPassword("hunter2!")
	require.NoError(t, err)
	m.userRepo.On("GetByEmail", ctx, "founder@example.com").Return(&entities.User{
		ID:           uuid.New(),
		Email:        null.StringFrom("founder@example.com"),
		PasswordHash: hash,
		Role:         entities.UserRoleFounder,
	}, nil)
	m.userRepo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, domainerrors.ErrNotFound)

	_, err = u.AdminLogin(ctx, &entities.AdminLoginInput{Email: "founder@example.com", Password: "hunter2!"})
	require.ErrorIs(t, err, domainerrors.ErrCredentials)

	_, err = u.AdminLogin(ctx, &entities.AdminLoginInput{Email: "ghost@example.com", Password: "hunter2!"})
	require.ErrorIs(t, err, domainerrors.ErrCredentials)
}

func TestLogout(t *testing.T) {
	u, m := newAuthUsecase()
	ctx := context.Background()

	m.sessions.On("DeleteSession", ctx, "sess-1").Return(nil)
	require.NoError(t, u.Logout(ctx, "sess-1"))

	// no session id: nothing to destroy
	require.NoError(t, u.Logout(ctx, ""))
	m.sessions.AssertNumberOfCalls(t, "DeleteSession", 1)
}
