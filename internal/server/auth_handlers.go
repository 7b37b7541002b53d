// Package server contains the HTTP handlers for the movie list API.
package server

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"reelist/internal/middleware"
	"reelist/internal/models"
	"reelist/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	sessionCookieName = "session"
	sessionTTL        = 7 * 24 * time.Hour
)

// Register handles POST /register
func (s *Server) Register(c *fiber.Ctx) error {
	var req struct {
		Name     string `json:"name" form:"name"`
		Email    string `json:"email" form:"email"`
		Password string `json:"password" form:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := validation.ValidateName(req.Name); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	// Check if user already exists
	existing, err := s.userRepo.GetByEmail(c.Context(), req.Email)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if existing != nil {
		return models.RespondWithError(c, fiber.StatusConflict,
			models.NewDuplicateEmailError(req.Email))
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashedPassword),
	}

	// The unique index still guards against a concurrent signup slipping past
	// the GetByEmail check above.
	if createErr := s.userRepo.Create(c.Context(), user); createErr != nil {
		return respondRepoError(c, createErr)
	}

	if err := s.issueSession(c, user.ID); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.Redirect("/", fiber.StatusFound)
}

// Login handles POST /login
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email" form:"email"`
		Password string `json:"password" form:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userRepo.GetByEmail(c.Context(), req.Email)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	// Same message for unknown email and wrong password so the response does
	// not reveal which credential failed.
	if user == nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Please check your login details and try again"))
	}
	if cmpErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); cmpErr != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Please check your login details and try again"))
	}

	if err := s.issueSession(c, user.ID); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.Redirect("/", fiber.StatusFound)
}

// Logout handles GET /logout. It revokes the session token and clears the
// cookie. Logging out with no session is a no-op.
func (s *Server) Logout(c *fiber.Ctx) error {
	if token := c.Cookies(sessionCookieName); token != "" {
		if claims, err := s.parseSessionToken(token); err == nil {
			s.revokeSession(c.Context(), claims)
		}
	}

	c.Cookie(&fiber.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return c.Redirect("/", fiber.StatusFound)
}

// SessionRequired returns the authentication middleware. It validates the
// session cookie and stores the user ID in locals and the request context.
func (s *Server) SessionRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(sessionCookieName)
		if token == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authentication required"))
		}

		claims, err := s.parseSessionToken(token)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid or expired session"))
		}

		if s.isSessionRevoked(c.Context(), claims) {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Session has been revoked"))
		}

		userID, err := userIDFromClaims(claims)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid session claims"))
		}

		c.Locals("userID", userID)
		// Sync to UserContext for logging and downstream services
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, userID)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// optionalUserID attempts to extract the user ID from the session cookie but
// does not enforce it. Used by public pages that personalize when logged in.
func (s *Server) optionalUserID(c *fiber.Ctx) (uint, bool) {
	token := c.Cookies(sessionCookieName)
	if token == "" {
		return 0, false
	}

	claims, err := s.parseSessionToken(token)
	if err != nil {
		return 0, false
	}
	if s.isSessionRevoked(c.Context(), claims) {
		return 0, false
	}

	userID, err := userIDFromClaims(claims)
	if err != nil {
		return 0, false
	}
	return userID, true
}

// issueSession signs a session token for the user and sets it as an HttpOnly cookie.
func (s *Server) issueSession(c *fiber.Ctx, userID uint) error {
	token, err := s.generateSessionToken(userID)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Expires:  time.Now().Add(sessionTTL),
		HTTPOnly: true,
		Secure:   s.config.Env == "production",
		SameSite: "Lax",
	})
	return nil
}

// generateSessionToken creates a signed session token for the given user ID.
func (s *Server) generateSessionToken(userID uint) (string, error) {
	if s.config.SessionSecret == "" {
		return "", fmt.Errorf("session secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"iss": "reelist-api",
		"aud": "reelist-client",
		"exp": now.Add(sessionTTL).Unix(),
		"iat": now.Unix(),
		"nbf": now.Unix(),
		"jti": uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.SessionSecret))
}

// parseSessionToken validates the token signature, issuer and audience and
// returns its claims.
func (s *Server) parseSessionToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("invalid signing method")
		}
		return []byte(s.config.SessionSecret), nil
	},
		jwt.WithIssuer("reelist-api"),
		jwt.WithAudience("reelist-client"),
	)
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid session token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid session claims")
	}
	return claims, nil
}

// isSessionRevoked checks the revocation list for the token's jti.
// Without Redis there is no revocation list, so tokens stay valid until expiry.
func (s *Server) isSessionRevoked(ctx context.Context, claims jwt.MapClaims) bool {
	if s.redis == nil {
		return false
	}
	jti, _ := claims["jti"].(string)
	if jti == "" {
		return false
	}
	revoked, err := s.redis.Exists(ctx, "blacklist:"+jti).Result()
	return err == nil && revoked > 0
}

// revokeSession blacklists the token's jti until the token would expire anyway.
func (s *Server) revokeSession(ctx context.Context, claims jwt.MapClaims) {
	if s.redis == nil {
		return
	}
	jti, _ := claims["jti"].(string)
	if jti == "" {
		return
	}

	ttl := sessionTTL
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		if remaining := time.Until(exp.Time); remaining > 0 {
			ttl = remaining
		}
	}
	s.redis.Set(ctx, "blacklist:"+jti, "1", ttl)
}

func userIDFromClaims(claims jwt.MapClaims) (uint, error) {
	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, fmt.Errorf("missing subject claim")
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid user ID in token: %w", err)
	}
	return uint(userID), nil
}
