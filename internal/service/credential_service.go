package service

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"

	apperrors "slotbooker/internal/errors"
	"slotbooker/internal/gcal"
)

// CredentialService loads the persisted calendar credential, refreshes it
// in place when expired, and persists every refresh. At most one refresh
// attempt is made per request.
type CredentialService struct {
	cfg   *oauth2.Config
	store *gcal.TokenStore
}

func NewCredentialService(cfg *oauth2.Config, store *gcal.TokenStore) *CredentialService {
	return &CredentialService{cfg: cfg, store: store}
}

// Client returns an authorized HTTP client for the calendar API, or an
// authorization error instructing the caller to re-authorize.
func (s *CredentialService) Client(ctx context.Context) (*http.Client, error) {
	tok, err := s.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	return s.cfg.Client(ctx, tok), nil
}

// Resolve returns a currently valid token, refreshing and persisting it
// first if it has expired and a refresh token is available.
func (s *CredentialService) Resolve(ctx context.Context) (*oauth2.Token, error) {
	stored, err := s.store.Load()
	if err != nil {
		log.Error().Err(err).Msg("failed to load calendar credential")
		return nil, apperrors.ErrUnauthorized("Google Calendar not authorized. Please authorize the app first.")
	}
	if stored == nil || stored.AccessToken == "" {
		return nil, apperrors.ErrUnauthorized("Google Calendar not authorized. Please authorize the app first.")
	}

	tok := stored.OAuthToken()
	// Expiry comparisons happen in UTC only.
	if tok.Expiry.IsZero() || !tok.Expiry.After(time.Now().UTC()) {
		if tok.RefreshToken == "" {
			return nil, apperrors.ErrUnauthorized("Google Calendar authorization expired. Please re-authorize.")
		}
		fresh, err := s.cfg.TokenSource(ctx, tok).Token()
		if err != nil {
			log.Error().Err(err).Msg("calendar token refresh failed")
			return nil, apperrors.ErrUnauthorized("Failed to refresh Google Calendar token. Please re-authorize.")
		}
		if err := s.store.Save(gcal.FromOAuthToken(fresh, s.cfg.Scopes)); err != nil {
			log.Error().Err(err).Msg("failed to persist refreshed calendar token")
			return nil, apperrors.ErrUnexpected("failed to persist refreshed credential")
		}
		log.Info().Time("expiry", fresh.Expiry.UTC()).Msg("calendar token refreshed")
		tok = fresh
	}
	return tok, nil
}
