package linkedin

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-jose/go-jose/v3/jwt"
)

const (
	defaultAuthURL     = "https://www.linkedin.com/oauth/v2/authorization"
	defaultTokenURL    = "https://www.linkedin.com/oauth/v2/accessToken"
	defaultUserinfoURL = "https://api.linkedin.com/v2/userinfo"

	// OIDC scopes. "openid profile" yields a stable subject identifier
	// without requesting the member's email.
	oauthScope = "openid profile"
)

// Config holds the LinkedIn OAuth application settings
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string

	// Endpoint overrides for tests; zero values use LinkedIn's production URLs.
	AuthURL     string
	TokenURL    string
	UserinfoURL string
}

// Token is the OIDC token response from the code exchange
type Token struct {
	AccessToken string `json:"access_token"`
	IDToken     string `json:"id_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// Profile is the subset of OIDC userinfo claims the application uses.
// Sub is the provider's stable member identifier.
type Profile struct {
	Sub     string `json:"sub"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
}

// Client talks to LinkedIn's OAuth 2.0 / OIDC endpoints
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient creates a LinkedIn OIDC client
func NewClient(cfg Config) *Client {
	if cfg.AuthURL == "" {
		cfg.AuthURL = defaultAuthURL
	}
	if cfg.TokenURL == "" {
		cfg.TokenURL = defaultTokenURL
	}
	if cfg.UserinfoURL == "" {
		cfg.UserinfoURL = defaultUserinfoURL
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// GenerateState returns a random hex string binding the authorization
// round-trip against CSRF.
func GenerateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate state: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// AuthorizationURL builds the URL the founder is redirected to
func (c *Client) AuthorizationURL(state string) string {
	q := url.Values{}
	q.Set("response_type", "code")
	q.Set("client_id", c.cfg.ClientID)
	q.Set("redirect_uri", c.cfg.RedirectURI)
	q.Set("state", state)
	q.Set("scope", oauthScope)
	return c.cfg.AuthURL + "?" + q.Encode()
}

// ExchangeCode trades the authorization code for tokens
func (c *Client) ExchangeCode(ctx context.Context, code string) (*Token, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("redirect_uri", c.cfg.RedirectURI)
	form.Set("client_id", c.cfg.ClientID)
	form.Set("client_secret", c.cfg.ClientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read token response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("token exchange returned status %d: %s", resp.StatusCode, string(body))
	}

	var token Token
	if err := json.Unmarshal(body, &token); err != nil {
		return nil, fmt.Errorf("failed to parse token response: %w", err)
	}
	if token.AccessToken == "" {
		return nil, fmt.Errorf("token response missing access_token")
	}
	return &token, nil
}

// FetchProfile fetches the OIDC userinfo for the access token
func (c *Client) FetchProfile(ctx context.Context, accessToken string) (*Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.UserinfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create userinfo request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("userinfo request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read userinfo response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo returned status %d: %s", resp.StatusCode, string(body))
	}

	var profile Profile
	if err := json.Unmarshal(body, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse userinfo response: %w", err)
	}
	if profile.Sub == "" {
		return nil, fmt.Errorf("userinfo response missing sub claim")
	}
	return &profile, nil
}

// ProfileFromIDToken extracts the profile claims carried in the id_token.
// The token arrived over TLS directly from the token endpoint, so its
// signature is not re-verified here; this is a fallback when the userinfo
// endpoint is unavailable.
func ProfileFromIDToken(idToken string) (*Profile, error) {
	parsed, err := jwt.ParseSigned(idToken)
	if err != nil {
		return nil, fmt.Errorf("failed to parse id_token: %w", err)
	}

	var claims Profile
	if err := parsed.UnsafeClaimsWithoutVerification(&claims); err != nil {
		return nil, fmt.Errorf("failed to extract id_token claims: %w", err)
	}
	if claims.Sub == "" {
		return nil, fmt.Errorf("id_token missing sub claim")
	}
	return &claims, nil
}
