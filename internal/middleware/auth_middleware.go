package middleware

import (
	"errors"
	"strings"

	"github.com/fadilmartias/resume-screener/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const userIDKey = "userID"

var errNoBearer = errors.New("missing bearer token")

// Auth verifies HS256 bearer tokens and stores the subject claim as the
// caller's user id.
type Auth struct {
	secret   []byte
	audience string
}

func NewAuth(secret, audience string) *Auth {
	return &Auth{secret: []byte(secret), audience: audience}
}

// Required rejects requests without a valid token.
func (a *Auth) Required() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sub, err := a.subject(c)
		if err != nil {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusUnauthorized,
				Message: "Unauthorized",
			}, err)
		}
		c.Locals(userIDKey, sub)
		return c.Next()
	}
}

// Optional records the user id when a valid token is present and lets
// anonymous requests through. A bad token is treated as anonymous.
func (a *Auth) Optional() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if sub, err := a.subject(c); err == nil {
			c.Locals(userIDKey, sub)
		}
		return c.Next()
	}
}

func (a *Auth) subject(c *fiber.Ctx) (string, error) {
	header := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(header, "Bearer ") || len(a.secret) == 0 {
		return "", errNoBearer
	}

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if a.audience != "" {
		opts = append(opts, jwt.WithAudience(a.audience))
	}
	token, err := jwt.ParseWithClaims(header[7:], &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, opts...)
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", errors.New("invalid token")
	}

	sub, err := token.Claims.GetSubject()
	if err != nil {
		return "", err
	}
	if sub == "" {
		return "", errors.New("token has no subject")
	}
	return sub, nil
}

// UserID returns the authenticated caller, or "" for anonymous requests.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(userIDKey).(string)
	return id
}
