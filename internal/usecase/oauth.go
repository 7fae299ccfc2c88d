package usecase

import (
	"context"
	"fmt"
	"time"

	"hosteria-web/internal/domain"
	"hosteria-web/pkg/auth"
)

type oauthUsecase struct {
	provider        domain.OAuthProvider
	states          domain.OAuthStateRepository
	signer          *auth.StateSigner
	configured      bool
	exchangeTimeout time.Duration
}

// NewOAuthUsecase wires the authorization code handoff. configured reports
// whether client id and secret are present; config.Validate normally
// guarantees it, the flag keeps both endpoints on the same policy otherwise.
func NewOAuthUsecase(provider domain.OAuthProvider, states domain.OAuthStateRepository, signer *auth.StateSigner, configured bool, exchangeTimeout time.Duration) domain.OAuthUsecase {
	return &oauthUsecase{
		provider:        provider,
		states:          states,
		signer:          signer,
		configured:      configured,
		exchangeTimeout: exchangeTimeout,
	}
}

func (uc *oauthUsecase) Configured() bool {
	return uc.configured
}

// BeginAuthorization creates and persists a single-use state nonce and
// returns the provider URL the browser is redirected to.
func (uc *oauthUsecase) BeginAuthorization(ctx context.Context, redirectURI string) (*domain.AuthorizationRequest, error) {
	if !uc.configured {
		return nil, domain.ErrOAuthNotConfigured
	}

	state, err := auth.NewState()
	if err != nil {
		return nil, fmt.Errorf("generate state: %w", err)
	}

	if err := uc.states.Save(ctx, state, auth.StateTTL); err != nil {
		return nil, fmt.Errorf("save state: %w", err)
	}

	cookie, expiresAt, err := uc.signer.Sign(state, auth.StateTTL)
	if err != nil {
		return nil, err
	}

	return &domain.AuthorizationRequest{
		URL:         uc.provider.AuthURL(state, redirectURI),
		State:       state,
		StateCookie: cookie,
		ExpiresAt:   expiresAt,
	}, nil
}

// CompleteAuthorization verifies the returned state against the browser's
// signed cookie and the store, then exchanges the code. The caller is
// expected to have rejected an empty code already.
func (uc *oauthUsecase) CompleteAuthorization(ctx context.Context, code, state, stateCookie string) (*domain.TokenResult, error) {
	if !uc.configured {
		return nil, domain.ErrOAuthNotConfigured
	}

	sealed, err := uc.signer.Verify(stateCookie)
	if err != nil || state == "" || sealed != state {
		return nil, domain.ErrInvalidState
	}

	ok, err := uc.states.Consume(ctx, state)
	if err != nil {
		return nil, fmt.Errorf("consume state: %w", err)
	}
	if !ok {
		return nil, domain.ErrInvalidState
	}

	exchangeCtx := context.WithoutCancel(ctx)
	if uc.exchangeTimeout > 0 {
		var cancel context.CancelFunc
		exchangeCtx, cancel = context.WithTimeout(exchangeCtx, uc.exchangeTimeout)
		defer cancel()
	}

	result, err := uc.provider.ExchangeCode(exchangeCtx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange code: %w", err)
	}
	return result, nil
}
