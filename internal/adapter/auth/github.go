package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"hosteria-web/internal/domain"

	"github.com/go-resty/resty/v2"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
)

// GitHubProvider implements domain.OAuthProvider for GitHub OAuth apps.
type GitHubProvider struct {
	oauth      oauth2.Config
	httpClient *resty.Client
}

// NewGitHubProvider creates a new GitHub OAuth provider. Empty endpoint URLs
// fall back to github.com.
func NewGitHubProvider(clientID, clientSecret, authorizeURL, tokenURL, scope string, timeout time.Duration) *GitHubProvider {
	endpoint := github.Endpoint
	if authorizeURL != "" {
		endpoint.AuthURL = authorizeURL
	}
	if tokenURL != "" {
		endpoint.TokenURL = tokenURL
	}

	var scopes []string
	if scope != "" {
		scopes = []string{scope}
	}

	client := resty.New()
	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &GitHubProvider{
		oauth: oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     endpoint,
			Scopes:       scopes,
		},
		httpClient: client,
	}
}

// Name returns "github".
func (g *GitHubProvider) Name() string {
	return domain.ProviderGitHub
}

// AuthURL returns the GitHub consent screen URL carrying client_id, scope,
// state and redirect_uri.
func (g *GitHubProvider) AuthURL(state, redirectURI string) string {
	cfg := g.oauth
	cfg.RedirectURL = redirectURI
	return cfg.AuthCodeURL(state)
}

// ExchangeCode trades an authorization code for an access token.
// A well-formed answer without access_token yields *domain.ProviderError.
func (g *GitHubProvider) ExchangeCode(ctx context.Context, code string) (*domain.TokenResult, error) {
	resp, err := g.httpClient.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetBody(map[string]string{
			"client_id":     g.oauth.ClientID,
			"client_secret": g.oauth.ClientSecret,
			"code":          code,
		}).
		Post(g.oauth.Endpoint.TokenURL)
	if err != nil {
		return nil, fmt.Errorf("github: token exchange: %w", err)
	}

	body := resp.Body()

	var tokenResp struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return nil, fmt.Errorf("github: decode token response (status %d): %w", resp.StatusCode(), err)
	}

	if tokenResp.AccessToken == "" {
		return nil, &domain.ProviderError{Payload: body}
	}

	return &domain.TokenResult{
		Token:    tokenResp.AccessToken,
		Provider: domain.ProviderGitHub,
	}, nil
}
