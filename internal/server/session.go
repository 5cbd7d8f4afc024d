package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"cafehub/internal/middleware"
	"cafehub/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	sessionCookieName = "session"
	tokenIssuer       = "cafehub-api"
	tokenAudience     = "cafehub-client"
	blacklistPrefix   = "blacklist:"
)

var (
	errNoToken      = errors.New("no session token")
	errInvalidToken = errors.New("invalid or expired token")
	errTokenRevoked = errors.New("token has been revoked")
)

// session is the identity carried by a valid token.
type session struct {
	UserID    uint
	JTI       string
	ExpiresAt time.Time
}

// tokenFromRequest reads the Bearer header, falling back to the session cookie.
func tokenFromRequest(c *fiber.Ctx) string {
	if authHeader := c.Get("Authorization"); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
	}
	return c.Cookies(sessionCookieName)
}

// sessionFromRequest validates the request's token and checks it was not revoked.
func (s *Server) sessionFromRequest(c *fiber.Ctx) (*session, error) {
	tokenString := tokenFromRequest(c)
	if tokenString == "" {
		return nil, errNoToken
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(s.config.JWTSecret), nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithAudience(tokenAudience),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, errInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errInvalidToken
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return nil, errInvalidToken
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil || userID == 0 {
		return nil, errInvalidToken
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, errInvalidToken
	}

	sess := &session{UserID: uint(userID), ExpiresAt: exp.Time}
	if jti, ok := claims["jti"].(string); ok {
		sess.JTI = jti
	}

	if sess.JTI != "" && s.redis != nil {
		revoked, err := s.redis.Exists(c.UserContext(), blacklistPrefix+sess.JTI).Result()
		if err == nil && revoked > 0 {
			return nil, errTokenRevoked
		}
	}
	return sess, nil
}

// AuthRequired rejects requests without a valid session and stores the user id in locals.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := s.sessionFromRequest(c)
		if err != nil {
			msg := "Authorization required"
			switch {
			case errors.Is(err, errTokenRevoked):
				msg = "Token has been revoked"
			case errors.Is(err, errInvalidToken):
				msg = "Invalid or expired token"
			}
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError(msg))
		}

		setSession(c, sess)
		return c.Next()
	}
}

func setSession(c *fiber.Ctx, sess *session) {
	c.Locals("userID", sess.UserID)
	c.Locals("session", sess)
	// Sync to UserContext for logging and downstream services
	ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, sess.UserID)
	c.SetUserContext(ctx)
}

// currentUserID returns the logged-in user id, or 0 when the request has no valid session.
func (s *Server) currentUserID(c *fiber.Ctx) uint {
	if uid, ok := c.Locals("userID").(uint); ok && uid != 0 {
		return uid
	}
	sess, err := s.sessionFromRequest(c)
	if err != nil {
		return 0
	}
	setSession(c, sess)
	return sess.UserID
}

// generateToken creates a signed session token for the user.
func (s *Server) generateToken(user *models.User) (string, time.Time, error) {
	if s.config.JWTSecret == "" {
		return "", time.Time{}, fmt.Errorf("JWT secret not configured")
	}

	ttl := time.Duration(s.config.SessionTTLHours) * time.Hour
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}

	now := time.Now()
	expiresAt := now.Add(ttl)
	claims := jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(user.ID), 10),
		"username": user.Username,
		"iss":      tokenIssuer,
		"aud":      tokenAudience,
		"exp":      expiresAt.Unix(),
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
		"jti":      uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// startSession issues a token and sets it as the session cookie.
func (s *Server) startSession(c *fiber.Ctx, user *models.User) (string, error) {
	token, expiresAt, err := s.generateToken(user)
	if err != nil {
		return "", err
	}
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HTTPOnly: true,
		Secure:   s.config.IsProduction(),
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return token, nil
}

// revokeSession blacklists the token's jti until it would have expired and clears the cookie.
func (s *Server) revokeSession(c *fiber.Ctx, sess *session) {
	c.ClearCookie(sessionCookieName)
	if sess == nil || sess.JTI == "" {
		return
	}
	if s.redis == nil {
		middleware.Logger.WarnContext(c.UserContext(), "logout without redis, token stays valid until expiry",
			slog.Uint64("user_id", uint64(sess.UserID)))
		return
	}
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return
	}
	if err := s.redis.Set(c.UserContext(), blacklistPrefix+sess.JTI, "1", ttl).Err(); err != nil {
		middleware.Logger.ErrorContext(c.UserContext(), "failed to revoke token", slog.String("error", err.Error()))
	}
}
