package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/fitcoach/apiserver/internal/auth"
	"github.com/fitcoach/apiserver/internal/services"
	"go.uber.org/zap"
)

// GoogleAuthHandler exchanges a Google ID token for a local session token,
// creating the local account on first sight.
type GoogleAuthHandler struct {
	verifier    auth.IdentityVerifier
	userService *services.UserService
	tokens      *auth.TokenIssuer
	log         *zap.Logger
}

// NewGoogleAuthHandler constructs a GoogleAuthHandler with the provided dependencies.
func NewGoogleAuthHandler(verifier auth.IdentityVerifier, userService *services.UserService, tokens *auth.TokenIssuer, log *zap.Logger) *GoogleAuthHandler {
	return &GoogleAuthHandler{
		verifier:    verifier,
		userService: userService,
		tokens:      tokens,
		log:         log,
	}
}

// GoogleLoginRequest carries the ID token obtained from Google Sign-In.
type GoogleLoginRequest struct {
	Credential string `json:"credential"`
}

// GoogleLoginResponse is the successful exchange payload.
type GoogleLoginResponse struct {
	Token string `json:"token"`
}

// Login handles POST /api/auth/google-login. Any verification failure,
// expired token, wrong audience or bad signature alike, answers 401.
func (h *GoogleAuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req GoogleLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Credential) == "" {
		writeError(w, http.StatusUnauthorized, "Authentification échouée")
		return
	}

	identity, err := h.verifier.Verify(r.Context(), req.Credential)
	if err != nil {
		h.log.Warn("google id token rejected", zap.Error(err))
		writeError(w, http.StatusUnauthorized, "Authentification échouée")
		return
	}

	user, err := h.userService.FindOrCreateByIdentity(r.Context(), identity)
	if err != nil {
		h.log.Error("google login failed", zap.Error(err))
		writeError(w, http.StatusUnauthorized, "Authentification échouée")
		return
	}

	token, err := h.tokens.Issue(user.ID, user.Email)
	if err != nil {
		h.log.Error("token signing failed", zap.Error(err))
		writeError(w, http.StatusUnauthorized, "Authentification échouée")
		return
	}

	writeJSON(w, http.StatusOK, GoogleLoginResponse{Token: token})
}
