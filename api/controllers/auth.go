package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/rexbugcalao2025-netizen/fmh-backend/api/middleware"
	"github.com/rexbugcalao2025-netizen/fmh-backend/api/responses"
	"github.com/rexbugcalao2025-netizen/fmh-backend/api/validators"
	"github.com/rexbugcalao2025-netizen/fmh-backend/internal/users"
	pkgerrors "github.com/rexbugcalao2025-netizen/fmh-backend/pkg/errors"
	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/logger"
)

type registerBody struct {
	Email       string     `json:"email" validate:"required,email"`
	Password    string     `json:"password" validate:"required,min=8"`
	FirstName   string     `json:"first_name" validate:"required"`
	LastName    string     `json:"last_name" validate:"required"`
	Phone       *string    `json:"phone"`
	Address     *string    `json:"address"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	Gender      *string    `json:"gender"`
}

// AuthRegister opens a new account.
func AuthRegister(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body registerBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.Register(r.Context(), users.RegisterInput{
			Email:       body.Email,
			Password:    body.Password,
			FirstName:   body.FirstName,
			LastName:    body.LastName,
			Phone:       body.Phone,
			Address:     body.Address,
			DateOfBirth: body.DateOfBirth,
			Gender:      body.Gender,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteCreated(w, "account created", "user", user)
	}
}

type loginBody struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthLogin exchanges credentials for a token pair.
func AuthLogin(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body loginBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), users.LoginInput{
			Email:    body.Email,
			Password: body.Password,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "login successful", "session", result)
	}
}

type refreshBody struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// AuthRefresh rotates the refresh token and mints a fresh access token. The
// expired access token rides in the Authorization header; its jti identifies
// the session being rotated.
func AuthRefresh(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accessToken, ok := parseBearerToken(r)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing bearer token"))
			return
		}

		var body refreshBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		pair, err := svc.Refresh(r.Context(), users.RefreshInput{
			AccessToken:  accessToken,
			RefreshToken: body.RefreshToken,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "tokens refreshed", "tokens", pair)
	}
}

// AuthLogout revokes the caller's session, which invalidates every token
// minted under it.
func AuthLogout(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accessID, ok := middleware.AccessIDFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "not authenticated"))
			return
		}

		if err := svc.Logout(r.Context(), accessID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "logged out", "status", "ok")
	}
}

func parseBearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}
