package handlers

import (
	"net/http"

	"taskgarden/internal/handlers/dto"
	"taskgarden/internal/logger"
	"taskgarden/internal/middleware"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthHandler struct {
	auth AuthService
}

func NewAuthHandler(auth AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		logger.Warn("HTTP: bad register body", zap.Error(err))
		responseWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	_, err := h.auth.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	responseWithJSON(w, http.StatusCreated, toPayload("message", MsgRegistered))
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		logger.Warn("HTTP: bad login body", zap.Error(err))
		responseWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	sess, u, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    sess.Token.String(),
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	responseWithJSON(w, http.StatusOK,
		toPayload("message", MsgLoginOK),
		toPayload("user", dto.FromUser(u)),
	)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookie); err == nil {
		if token, err := uuid.Parse(cookie.Value); err == nil {
			if err := h.auth.Logout(r.Context(), token); err != nil {
				handleServiceError(w, err)
				return
			}
		}
	}

	// expire the cookie either way
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	responseWithJSON(w, http.StatusOK, toPayload("message", MsgLoggedOut))
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	u := middleware.CurrentUser(r.Context())
	responseWithJSON(w, http.StatusOK, toPayload("user", dto.FromUser(u)))
}
