package gcal

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"golang.org/x/oauth2"
)

// StoredToken is the credential record persisted to the token file.
type StoredToken struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	TokenType    string    `json:"token_type,omitempty"`
	Expiry       time.Time `json:"expiry"`
	Scopes       []string  `json:"scopes,omitempty"`
}

func FromOAuthToken(tok *oauth2.Token, scopes []string) *StoredToken {
	return &StoredToken{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.TokenType,
		Expiry:       tok.Expiry.UTC(),
		Scopes:       scopes,
	}
}

func (t *StoredToken) OAuthToken() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		TokenType:    t.TokenType,
		Expiry:       t.Expiry.UTC(),
	}
}

// MergeToken combines a freshly obtained token with the previously stored
// one. Non-zero fields of the new token always win; old fields survive only
// when the new token does not carry them. Scopes are always taken from the
// new token when present.
func MergeToken(old, fresh *StoredToken) *StoredToken {
	if old == nil {
		return fresh
	}
	merged := *old
	if fresh.AccessToken != "" {
		merged.AccessToken = fresh.AccessToken
	}
	if fresh.RefreshToken != "" {
		merged.RefreshToken = fresh.RefreshToken
	}
	if fresh.TokenType != "" {
		merged.TokenType = fresh.TokenType
	}
	if !fresh.Expiry.IsZero() {
		merged.Expiry = fresh.Expiry.UTC()
	}
	if len(fresh.Scopes) > 0 {
		merged.Scopes = fresh.Scopes
	}
	return &merged
}

// TokenStore persists the calendar credential as a JSON file at a single
// well-known path.
type TokenStore struct {
	Path string
}

func NewTokenStore(path string) *TokenStore {
	return &TokenStore{Path: path}
}

// Load reads the stored credential. Returns (nil, nil) when no credential
// has been saved yet.
func (s *TokenStore) Load() (*StoredToken, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read token file %s: %w", s.Path, err)
	}
	var tok StoredToken
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("failed to decode token file %s: %w", s.Path, err)
	}
	// Expiry is always compared in UTC.
	tok.Expiry = tok.Expiry.UTC()
	return &tok, nil
}

// Save merges the token with any previously stored fields and writes the
// result back, so a refresh response that omits the refresh token does not
// clobber the one obtained during the original authorization.
func (s *TokenStore) Save(tok *StoredToken) error {
	existing, err := s.Load()
	if err != nil {
		// Unreadable existing file: overwrite it with the new token.
		existing = nil
	}
	merged := MergeToken(existing, tok)
	data, err := json.MarshalIndent(merged, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}
	if err := os.WriteFile(s.Path, data, 0600); err != nil {
		return fmt.Errorf("failed to write token file %s: %w", s.Path, err)
	}
	return nil
}
