package api

import (
	"net/http"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"

	"slotbooker/internal/gcal"
)

type AuthHandler struct {
	oauthConfig *oauth2.Config
	tokenStore  *gcal.TokenStore
}

func NewAuthHandler(oauthConfig *oauth2.Config, tokenStore *gcal.TokenStore) *AuthHandler {
	return &AuthHandler{oauthConfig: oauthConfig, tokenStore: tokenStore}
}

// GoogleLogin handles GET /auth/google: redirect to the consent screen.
// Offline access is requested so a refresh token is issued.
func (h *AuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	url := h.oauthConfig.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

// GoogleCallback handles GET /auth/google/callback: exchange the code and
// persist the credential.
func (h *AuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "No code in query parameters"})
		return
	}

	token, err := h.oauthConfig.Exchange(r.Context(), code)
	if err != nil {
		log.Error().Err(err).Msg("authorization code exchange failed")
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Failed to exchange authorization code"})
		return
	}

	if err := h.tokenStore.Save(gcal.FromOAuthToken(token, h.oauthConfig.Scopes)); err != nil {
		log.Error().Err(err).Msg("failed to persist calendar credential")
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Failed to save credential"})
		return
	}

	writeJSON(w, http.StatusOK, AuthCallbackResponse{
		Message:    "Google Calendar authorization successful!",
		TokenSaved: true,
	})
}
