package handler

import (
	"context"
	"net/http"

	"go-rentify/internal/middleware"
	"go-rentify/internal/model"
)

type authService interface {
	Login(ctx context.Context, email string, password string) (model.LoginResult, error)
	Logout(ctx context.Context, principal model.Principal) error
	Register(ctx context.Context, req model.RegisterRequest) (model.PublicUser, error)
	Me(ctx context.Context, principal model.Principal) (model.PublicUser, error)
}

type AuthHandler struct {
	responder
	service authService
}

func NewAuthHandler(service authService, exposeDetails bool) *AuthHandler {
	return &AuthHandler{responder: responder{exposeDetails: exposeDetails}, service: service}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload model.LoginRequest
	if err := decodeJSON(r, &payload); err != nil {
		h.writeError(w, err)
		return
	}

	result, err := h.service.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, result)
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload model.RegisterRequest
	if err := decodeJSON(r, &payload); err != nil {
		h.writeError(w, err)
		return
	}

	user, err := h.service.Register(r.Context(), payload)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, model.RegisterResponse{Message: "User registered successfully", User: user})
}

// Logout revokes the session that authenticated the request.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		h.writeError(w, model.ErrMissingCredential)
		return
	}

	if err := h.service.Logout(r.Context(), principal); err != nil {
		h.writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.MessageResponse{Message: "Logout successful"})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		h.writeError(w, model.ErrMissingCredential)
		return
	}

	user, err := h.service.Me(r.Context(), principal)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, user)
}
