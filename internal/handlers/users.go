package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/fitcoach/apiserver/internal/auth"
	"github.com/fitcoach/apiserver/internal/services"
	"github.com/fitcoach/apiserver/internal/store"
	"github.com/fitcoach/apiserver/types"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// UserHandler provides the registration, login and account endpoints.
type UserHandler struct {
	userService *services.UserService
	tokens      *auth.TokenIssuer
	log         *zap.Logger
}

// NewUserHandler constructs a UserHandler with the provided dependencies.
func NewUserHandler(userService *services.UserService, tokens *auth.TokenIssuer, log *zap.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		tokens:      tokens,
		log:         log,
	}
}

// SubscribeRequest is the registration payload: profile fields plus the
// plaintext password.
type SubscribeRequest struct {
	Name            string `json:"name"`
	Firstname       string `json:"firstname"`
	Address         string `json:"address"`
	Zipcode         string `json:"zipcode"`
	City            string `json:"city"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
	Usertype        string `json:"usertype"`
	LevelExperiency string `json:"levelexperiency"`
	TimeRequired    string `json:"timerequired"`
	Diet            string `json:"diet"`
	Subscription    string `json:"subscription"`
	PaymentMethod   string `json:"paymentMethod"`
	Password        string `json:"password"`
}

// LoginRequest is the password-login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the successful login payload.
type LoginResponse struct {
	Message       string `json:"message"`
	Token         string `json:"token"`
	UserID        int    `json:"userId"`
	UserFirstName string `json:"userFirstName"`
}

// ToggleFavoriteRequest carries the exercise whose favorite status flips.
// The pointer distinguishes a missing field from exercise 0.
type ToggleFavoriteRequest struct {
	ExerciseID *int `json:"exerciseId"`
}

// Subscribe handles POST /subscription: registers a new account.
func (h *UserHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req SubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeText(w, http.StatusBadRequest, "Email et mot de passe sont requis.")
		return
	}

	profile := types.User{
		Name:            req.Name,
		Firstname:       req.Firstname,
		Address:         req.Address,
		Zipcode:         req.Zipcode,
		City:            req.City,
		Phone:           req.Phone,
		Email:           req.Email,
		Usertype:        req.Usertype,
		LevelExperiency: req.LevelExperiency,
		TimeRequired:    req.TimeRequired,
		Diet:            req.Diet,
		Subscription:    req.Subscription,
		PaymentMethod:   req.PaymentMethod,
	}

	_, err := h.userService.Register(r.Context(), profile, req.Password)
	switch {
	case err == nil:
		writeText(w, http.StatusCreated, "Utilisateur créé avec succès !")
	case errors.Is(err, services.ErrMissingField):
		writeText(w, http.StatusBadRequest, "Email et mot de passe sont requis.")
	case errors.Is(err, services.ErrDuplicateEmail):
		writeText(w, http.StatusBadRequest, "Cet email est déjà utilisé.")
	default:
		h.log.Error("register failed", zap.Error(err))
		writeText(w, http.StatusInternalServerError, "Erreur lors de l'enregistrement du nouvel utilisateur.")
	}
}

// Login handles POST /connexion: verifies credentials and returns a token.
// Unknown email and wrong password answer with the same sentence so the
// response never reveals whether the account exists.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeText(w, http.StatusBadRequest, "Email et mot de passe sont requis.")
		return
	}

	user, err := h.userService.Authenticate(r.Context(), req.Email, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, store.ErrNotFound):
		writeText(w, http.StatusNotFound, "Email ou mot de passe incorrect.")
		return
	case errors.Is(err, services.ErrInvalidCredentials):
		writeText(w, http.StatusUnauthorized, "Email ou mot de passe incorrect.")
		return
	default:
		h.log.Error("login failed", zap.Error(err))
		writeText(w, http.StatusInternalServerError, "Erreur lors de la lecture des utilisateurs.")
		return
	}

	token, err := h.tokens.Issue(user.ID, user.Email)
	if err != nil {
		h.log.Error("token signing failed", zap.Error(err))
		writeText(w, http.StatusInternalServerError, "Erreur lors de la lecture des utilisateurs.")
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{
		Message:       "Connexion réussie !",
		Token:         token,
		UserID:        user.ID,
		UserFirstName: user.Firstname,
	})
}

// GetUser handles GET /api/users/{userID}.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUserID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Utilisateur non trouvé.")
		return
	}

	user, err := h.userService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Utilisateur non trouvé.")
			return
		}
		h.log.Error("get user failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Erreur lors de la lecture des utilisateurs.")
		return
	}

	writeJSON(w, http.StatusOK, user.Public())
}

// UpdateUser handles PATCH /api/users/{userID}: merges the supplied fields
// into the stored record.
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUserID(r)
	if !ok {
		writeText(w, http.StatusNotFound, "Utilisateur non trouvé.")
		return
	}

	var patch map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeText(w, http.StatusBadRequest, "Requête invalide.")
		return
	}

	err := h.userService.UpdateByID(r.Context(), id, patch)
	switch {
	case err == nil:
		writeText(w, http.StatusOK, "Modification effectuée avec succès !")
	case errors.Is(err, store.ErrNotFound):
		writeText(w, http.StatusNotFound, "Utilisateur non trouvé.")
	case errors.Is(err, store.ErrCorrupt):
		writeText(w, http.StatusInternalServerError, "Erreur lors de l'analyse du fichier JSON.")
	default:
		h.log.Error("update user failed", zap.Error(err))
		writeText(w, http.StatusInternalServerError, "Erreur lors de l'enregistrement des modifications.")
	}
}

// DeleteUser handles DELETE /api/users/{userID}.
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUserID(r)
	if !ok {
		writeText(w, http.StatusNotFound, "Utilisateur non trouvé.")
		return
	}

	err := h.userService.DeleteByID(r.Context(), id)
	switch {
	case err == nil:
		writeText(w, http.StatusOK, "Suppression effectuée avec succès !")
	case errors.Is(err, store.ErrNotFound):
		writeText(w, http.StatusNotFound, "Utilisateur non trouvé.")
	case errors.Is(err, store.ErrCorrupt):
		writeText(w, http.StatusInternalServerError, "Erreur lors de l'analyse du fichier JSON.")
	default:
		h.log.Error("delete user failed", zap.Error(err))
		writeText(w, http.StatusInternalServerError, "Erreur lors de l'enregistrement.")
	}
}

// ToggleFavorite handles PATCH /api/{userID}/favorites: adds the exercise
// to the user's favorites, or removes it when already present.
func (h *UserHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUserID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Utilisateur non trouvé.")
		return
	}

	var req ToggleFavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ExerciseID == nil {
		writeError(w, http.StatusBadRequest, "L'identifiant de l'exercice est requis.")
		return
	}

	user, err := h.userService.ToggleFavorite(r.Context(), id, *req.ExerciseID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Utilisateur non trouvé.")
			return
		}
		h.log.Error("toggle favorite failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Erreur lors de la lecture des utilisateurs.")
		return
	}

	writeJSON(w, http.StatusOK, user.Public())
}

// parseUserID reads the userID route parameter. A non-numeric id behaves
// like an unknown user rather than a malformed request.
func parseUserID(r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "userID")
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return id, true
}
