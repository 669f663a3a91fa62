package handlers

import (
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/job-portal/internal/api/dto"
	"github.com/spec-kit/job-portal/internal/auth"
	"github.com/spec-kit/job-portal/internal/form"
	"github.com/spec-kit/job-portal/internal/service"
	apperrors "github.com/spec-kit/job-portal/pkg/util"
)

// MsgInvalidCredentials is shown for every rejected login.
const MsgInvalidCredentials = "Invalid Credentials"

// AuthHandler exposes login and logout.
type AuthHandler struct {
	auth         *service.AuthService
	validator    *form.Validator
	view         *View
	secureCookie bool
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, validator *form.Validator, view *View, secureCookie bool) *AuthHandler {
	return &AuthHandler{auth: authService, validator: validator, view: view, secureCookie: secureCookie}
}

// LoginPage GET /login.
func (h *AuthHandler) LoginPage(c *fiber.Ctx) error {
	return h.view.Render(c, fiber.StatusOK, "login", fiber.Map{"Title": "Login"})
}

// Login POST /login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	if err := h.validator.ValidateLogin(req.Email, req.Password); err != nil {
		var fieldErrs form.FieldErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		if WantsJSON(c) {
			return apperrors.NewValidationError("email and password required", fieldErrs.Details())
		}
		return h.renderLogin(c, fiber.StatusBadRequest, req.Email, "", fieldErrs.Details())
	}

	token, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		if !errors.Is(err, service.ErrInvalidCredentials) {
			return err
		}
		if WantsJSON(c) {
			return apperrors.NewUnauthorized(MsgInvalidCredentials)
		}
		return h.renderLogin(c, fiber.StatusUnauthorized, req.Email, MsgInvalidCredentials, nil)
	}

	auth.SetSessionCookie(c, token, h.secureCookie)
	if WantsJSON(c) {
		return c.JSON(dto.LoginResponse{Message: "Login successful", Redirect: "/job-roles"})
	}
	return c.Redirect("/job-roles", fiber.StatusFound)
}

func (h *AuthHandler) renderLogin(c *fiber.Ctx, status int, email, message string, fieldErrs map[string]any) error {
	return h.view.Render(c, status, "login", fiber.Map{
		"Title":  "Login",
		"Error":  message,
		"Errors": detailsToErrors(fieldErrs),
		"Values": url.Values{"email": {email}},
	})
}

// Logout POST /logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if token := c.Cookies(auth.SessionCookie); token != "" {
		if err := h.auth.Logout(c.UserContext(), token); err != nil {
			return err
		}
	}
	auth.ClearSessionCookie(c, h.secureCookie)
	return c.Redirect(auth.LoginPath, fiber.StatusFound)
}
