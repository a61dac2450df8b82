package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/mihabgit/auth-service/internal/auth/dto"
	"github.com/mihabgit/auth-service/internal/auth/service"
	autherror "github.com/mihabgit/auth-service/internal/errors"
)

const claimsLocal = "claims"

type AuthHandler struct {
	userService *service.UserService
}

func NewAuthHandler(userService *service.UserService) *AuthHandler {
	return &AuthHandler{userService: userService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input dto.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	out, err := h.userService.Register(c.Context(), input)
	if err != nil {
		return h.fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input dto.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	input.IPAddress = c.IP()
	input.UserAgent = string(c.Request().Header.UserAgent())

	tokenPair, err := h.userService.Login(c.Context(), input)
	if err != nil {
		return h.fail(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(tokenPair)
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var input dto.RefreshInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	input.IPAddress = c.IP()
	input.UserAgent = string(c.Request().Header.UserAgent())

	tokens, err := h.userService.Refresh(c.Context(), input)
	if err != nil {
		return h.fail(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(tokens)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var input dto.LogoutInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	input.AccessToken = bearerToken(c)

	out, err := h.userService.Logout(c.Context(), input)
	if err != nil {
		return h.fail(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(out)
}

func (h *AuthHandler) LogoutAll(c *fiber.Ctx) error {
	claims := c.Locals(claimsLocal).(*service.JWTCustomClaims)

	out, err := h.userService.LogoutAll(c.Context(), claims.Subject, bearerToken(c))
	if err != nil {
		return h.fail(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(out)
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	claims := c.Locals(claimsLocal).(*service.JWTCustomClaims)

	user, err := h.userService.GetCurrentUser(c.Context(), claims.Subject)
	if err != nil {
		return h.fail(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(user)
}

func (h *AuthHandler) Sessions(c *fiber.Ctx) error {
	claims := c.Locals(claimsLocal).(*service.JWTCustomClaims)

	sessions, err := h.userService.GetSessions(c.Context(), claims.Subject)
	if err != nil {
		return h.fail(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(sessions)
}

// RequireAuth validates the bearer token and stashes its claims for the
// downstream handler.
func (h *AuthHandler) RequireAuth(c *fiber.Ctx) error {
	token := bearerToken(c)
	if token == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing bearer token"})
	}

	claims, err := h.userService.ValidateSession(c.Context(), token)
	if err != nil {
		return h.fail(c, err)
	}

	c.Locals(claimsLocal, claims)

	return c.Next()
}

func bearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

func (h *AuthHandler) fail(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, autherror.ErrEmailAlreadyInUse),
		errors.Is(err, autherror.ErrUsernameAlreadyTaken):
		return fiber.StatusConflict
	case errors.Is(err, autherror.ErrAccountLocked):
		return fiber.StatusLocked
	case errors.Is(err, autherror.ErrInvalidCredentials),
		errors.Is(err, autherror.ErrTokenMalformed),
		errors.Is(err, autherror.ErrTokenExpired),
		errors.Is(err, autherror.ErrTokenUnsupported),
		errors.Is(err, autherror.ErrTokenInvalidClaims),
		errors.Is(err, autherror.ErrTokenInvalid),
		errors.Is(err, autherror.ErrTokenRevoked),
		errors.Is(err, autherror.ErrRefreshTokenNotFound),
		errors.Is(err, autherror.ErrRefreshTokenRevoked),
		errors.Is(err, autherror.ErrRefreshTokenExpired):
		return fiber.StatusUnauthorized
	case errors.Is(err, autherror.ErrUserNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}
