package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"adoptme/internal/api/middleware"
	"adoptme/internal/app/service"
	"adoptme/internal/common"
	"adoptme/internal/platform/config"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

type SessionHandler struct {
	authService *service.AuthService
}

func NewSessionHandler(authService *service.AuthService) *SessionHandler {
	return &SessionHandler{authService: authService}
}

func (h *SessionHandler) RegisterRoutes(r chi.Router) {
	r.Post("/register", h.register)
	r.Post("/login", h.login)
	r.With(middleware.SessionVerifier(config.AppConfig.CookieName)).Get("/current", h.current)
	r.Post("/logout", h.logout)

	// Legacy flow: second cookie, full-record token. Discouraged for
	// new integrations.
	r.Post("/unprotectedLogin", h.unprotectedLogin)
	r.With(middleware.SessionVerifier(config.AppConfig.LegacyCookieName)).Get("/unprotectedCurrent", h.current)
}

func (h *SessionHandler) register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithDomainError(w, r, common.Errorf("invalid request payload (%v): %w", err, common.ErrValidation))
		return
	}

	userID, err := h.authService.Register(r.Context(), req)
	if err != nil {
		common.RespondWithDomainError(w, r, err)
		return
	}
	common.RespondWithPayload(w, http.StatusCreated, userID)
}

func (h *SessionHandler) login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithDomainError(w, r, common.Errorf("invalid request payload (%v): %w", err, common.ErrValidation))
		return
	}

	token, err := h.authService.Login(r.Context(), req)
	if err != nil {
		common.RespondWithDomainError(w, r, err)
		return
	}
	setSessionCookie(w, config.AppConfig.CookieName, token)
	common.RespondWithMessage(w, http.StatusOK, "Logged in")
}

func (h *SessionHandler) unprotectedLogin(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithDomainError(w, r, common.Errorf("invalid request payload (%v): %w", err, common.ErrValidation))
		return
	}

	token, err := h.authService.LegacyLogin(r.Context(), req)
	if err != nil {
		common.RespondWithDomainError(w, r, err)
		return
	}
	setSessionCookie(w, config.AppConfig.LegacyCookieName, token)
	common.RespondWithMessage(w, http.StatusOK, "Unprotected Logged in")
}

// current serves both cookie variants; the SessionVerifier middleware
// on the route decides which cookie was checked.
func (h *SessionHandler) current(w http.ResponseWriter, r *http.Request) {
	token, claims, err := jwtauth.FromContext(r.Context())
	if err != nil || token == nil {
		if errors.Is(err, jwtauth.ErrNoTokenFound) {
			common.RespondWithError(w, http.StatusUnauthorized, "authentication token not found")
		} else {
			common.RespondWithError(w, http.StatusUnauthorized, "invalid or expired token")
		}
		return
	}

	payload, err := h.authService.CurrentSession(r.Context(), jwt.MapClaims(claims))
	if err != nil {
		common.RespondWithDomainError(w, r, err)
		return
	}
	common.RespondWithPayload(w, http.StatusOK, payload)
}

func (h *SessionHandler) logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(config.AppConfig.CookieName); err == nil {
		h.authService.Logout(r.Context(), cookie.Value)
	}
	clearSessionCookie(w, config.AppConfig.CookieName)
	common.RespondWithMessage(w, http.StatusOK, "Logged out successfully")
}

func setSessionCookie(w http.ResponseWriter, name, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(config.AppConfig.JWTExp.Seconds()),
		HttpOnly: true,
		Secure:   config.IsProduction(),
	})
}

func clearSessionCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   config.IsProduction(),
	})
}
