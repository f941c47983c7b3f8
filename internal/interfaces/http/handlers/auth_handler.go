package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Erik-List/ranked-capital/internal/domain/entities"
	domainerrors "github.com/Erik-List/ranked-capital/internal/domain/errors"
	"github.com/Erik-List/ranked-capital/internal/interfaces/http/middleware"
	"github.com/Erik-List/ranked-capital/internal/interfaces/http/response"
)

const (
	oauthStateCookie = "oauth_state"
	// browser cookies live as long as the refresh token
	cookieMaxAge = 3600 * 24
)

type authService interface {
	BeginLinkedInLogin(ctx context.Context) (string, string, error)
	CompleteLinkedInLogin(ctx context.Context, code string) (*entities.AuthResponse, error)
	AdminLogin(ctx context.Context, input *entities.AdminLoginInput) (*entities.AuthResponse, error)
	Logout(ctx context.Context, sessionID string) error
	GetUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
}

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService authService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService authService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LinkedInLogin starts the LinkedIn sign-in flow
// GET /api/v1/auth/linkedin
func (h *AuthHandler) LinkedInLogin(c *gin.Context) {
	url, state, err := h.authService.BeginLinkedInLogin(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	// the callback must present the same state the browser left with
	c.SetCookie(oauthStateCookie, state, 600, "/", "", false, true)
	c.Redirect(http.StatusFound, url)
}

// LinkedInCallback completes the LinkedIn sign-in flow
// GET /api/v1/auth/linkedin/callback
func (h *AuthHandler) LinkedInCallback(c *gin.Context) {
	code := c.Query("code")
	state := c.Query("state")
	if code == "" || state == "" {
		response.Error(c, domainerrors.BadRequest("code and state are required"))
		return
	}

	expected, err := c.Cookie(oauthStateCookie)
	if err != nil || expected != state {
		response.Error(c, domainerrors.Unauthenticated("state mismatch"))
		return
	}
	c.SetCookie(oauthStateCookie, "", -1, "/", "", false, true)

	authResponse, err := h.authService.CompleteLinkedInLogin(c.Request.Context(), code)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.setSessionCookies(c, authResponse)
	response.Success(c, http.StatusOK, gin.H{
		"accessToken": authResponse.AccessToken,
		"sessionId":   authResponse.SessionID,
		"user":        authResponse.User,
	})
}

// AdminLogin authenticates a moderator
// POST /api/v1/auth/admin/login
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var input entities.AdminLoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	authResponse, err := h.authService.AdminLogin(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.setSessionCookies(c, authResponse)
	response.Success(c, http.StatusOK, gin.H{
		"accessToken": authResponse.AccessToken,
		"sessionId":   authResponse.SessionID,
		"user":        authResponse.User,
	})
}

// GetMe returns the authenticated user
// GET /api/v1/auth/me
func (h *AuthHandler) GetMe(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthenticated("authentication required"))
		return
	}

	user, err := h.authService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// Logout destroys the session
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID, _ := c.Cookie(middleware.SessionIDCookie)

	if err := h.authService.Logout(c.Request.Context(), sessionID); err != nil {
		response.Error(c, err)
		return
	}

	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", "", false, true)
	c.SetCookie("refresh_token", "", -1, "/", "", false, true)
	c.SetCookie(middleware.SessionIDCookie, "", -1, "/", "", false, true)
	response.Success(c, http.StatusOK, gin.H{"message": "logged out"})
}

func (h *AuthHandler) setSessionCookies(c *gin.Context, authResponse *entities.AuthResponse) {
	c.SetCookie(middleware.AccessTokenCookie, authResponse.AccessToken, cookieMaxAge, "/", "", false, true)
	c.SetCookie("refresh_token", authResponse.RefreshToken, cookieMaxAge*7, "/", "", false, true)
	c.SetCookie(middleware.SessionIDCookie, authResponse.SessionID, cookieMaxAge, "/", "", false, true)
}
