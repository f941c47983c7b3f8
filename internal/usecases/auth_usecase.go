package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	"github.com/Erik-List/ranked-capital/internal/domain/entities"
	domainerrors "github.com/Erik-List/ranked-capital/internal/domain/errors"
	"github.com/Erik-List/ranked-capital/internal/domain/repositories"
	"github.com/Erik-List/ranked-capital/internal/infrastructure/linkedin"
	"github.com/Erik-List/ranked-capital/pkg/crypto"
	"github.com/Erik-List/ranked-capital/pkg/jwt"
	"github.com/Erik-List/ranked-capital/pkg/redis"
)

// IdentityProvider abstracts the OIDC provider founders sign in with
type IdentityProvider interface {
	AuthorizationURL(state string) string
	ExchangeCode(ctx context.Context, code string) (*linkedin.Token, error)
	FetchProfile(ctx context.Context, accessToken string) (*linkedin.Profile, error)
}

// SessionStore abstracts the server-side session storage
type SessionStore interface {
	CreateSession(ctx context.Context, sessionID string, data *redis.SessionData, expiration time.Duration) error
	DeleteSession(ctx context.Context, sessionID string) error
}

// AuthUsecase handles authentication business logic
type AuthUsecase struct {
	userRepo   repositories.UserRepository
	provider   IdentityProvider
	jwtService *jwt.JWTService
	sessions   SessionStore
	sessionTTL time.Duration
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(
	userRepo repositories.UserRepository,
	provider IdentityProvider,
	jwtService *jwt.JWTService,
	sessions SessionStore,
	sessionTTL time.Duration,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo:   userRepo,
		provider:   provider,
		jwtService: jwtService,
		sessions:   sessions,
		sessionTTL: sessionTTL,
	}
}

// BeginLinkedInLogin returns the authorization URL and the state the handler
// must bind to the browser for the callback check.
func (u *AuthUsecase) BeginLinkedInLogin(ctx context.Context) (string, string, error) {
	_ = ctx
	state, err := linkedin.GenerateState()
	if err != nil {
		return "", "", err
	}
	return u.provider.AuthorizationURL(state), state, nil
}

// CompleteLinkedInLogin exchanges the callback code, upserts the founder by
// the provider's stable subject claim and issues a session.
func (u *AuthUsecase) CompleteLinkedInLogin(ctx context.Context, code string) (*entities.AuthResponse, error) {
	token, err := u.provider.ExchangeCode(ctx, code)
	if err != nil {
		return nil, domainerrors.Unauthenticated("authorization code exchange failed")
	}

	profile, err := u.provider.FetchProfile(ctx, token.AccessToken)
	if err != nil {
		// userinfo occasionally flakes; the id_token carries the same claims
		if token.IDToken == "" {
			return nil, domainerrors.Unauthenticated("identity provider profile unavailable")
		}
		profile, err = linkedin.ProfileFromIDToken(token.IDToken)
		if err != nil {
			return nil, domainerrors.Unauthenticated("identity provider profile unavailable")
		}
	}

	user, err := u.userRepo.GetByExternalRef(ctx, profile.Sub)
	if err != nil {
		if !errors.Is(err, domainerrors.ErrNotFound) {
			return nil, err
		}
		user = &entities.User{
			ExternalRef: null.StringFrom(profile.Sub),
			Role:        entities.UserRoleFounder,
		}
		if profile.Email != "" {
			user.Email = null.StringFrom(profile.Email)
		}
		if err := u.userRepo.Create(ctx, user); err != nil {
			// lost a race against a parallel callback for the same member
			if errors.Is(err, domainerrors.ErrConflict) {
				user, err = u.userRepo.GetByExternalRef(ctx, profile.Sub)
				if err != nil {
					return nil, err
				}
			} else {
				return nil, err
			}
		}
	} else {
		if err := u.userRepo.Touch(ctx, user.ID); err != nil {
			return nil, err
		}
	}

	return u.issueSession(ctx, user)
}

// AdminLogin authenticates a moderator by email and password
func (u *AuthUsecase) AdminLogin(ctx context.Context, input *entities.AdminLoginInput) (*entities.AuthResponse, error) {
	user, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrCredentials
		}
		return nil, err
	}

	// a founder account with a matching email must not open the admin door
	if !user.IsAdmin() {
		return nil, domainerrors.ErrCredentials
	}
	if !crypto.CheckPassword(input.Password, user.PasswordHash) {
		return nil, domainerrors.ErrCredentials
	}

	return u.issueSession(ctx, user)
}

// Logout destroys the server-side session
func (u *AuthUsecase) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return u.sessions.DeleteSession(ctx, sessionID)
}

// GetUserByID gets a user by ID
func (u *AuthUsecase) GetUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	return u.userRepo.GetByID(ctx, id)
}

func (u *AuthUsecase) issueSession(ctx context.Context, user *entities.User) (*entities.AuthResponse, error) {
	tokenPair, err := u.jwtService.GenerateTokenPair(user.ID, user.Email.String, string(user.Role))
	if err != nil {
		return nil, err
	}

	sessionID := uuid.NewString()
	err = u.sessions.CreateSession(ctx, sessionID, &redis.SessionData{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
	}, u.sessionTTL)
	if err != nil {
		return nil, err
	}

	return &entities.AuthResponse{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		SessionID:    sessionID,
		User:         user,
	}, nil
}
