package serverutils

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	SessionCookieName = "threatlens_session"
	SessionLocalsKey  = "session_id"

	sessionTokenTTL = 24 * time.Hour
)

// SignSessionToken mints an HS256 token carrying the session id. The same
// token rides the cookie and the websocket handshake query param.
func SignSessionToken(secret string, sessionID uuid.UUID) (string, error) {
	claims := jwt.MapClaims{
		"session_id": sessionID.String(),
		"exp":        time.Now().Add(sessionTokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseSessionToken validates the token and returns the session id.
func ParseSessionToken(secret, tokenStr string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, fiber.ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, fiber.ErrUnauthorized
	}
	sidStr, ok := claims["session_id"].(string)
	if !ok {
		return uuid.Nil, fiber.ErrUnauthorized
	}
	sid, err := uuid.Parse(sidStr)
	if err != nil {
		return uuid.Nil, fiber.ErrUnauthorized
	}
	return sid, nil
}

// SessionMiddleware binds every request to a browser session. A missing or
// invalid cookie mints a fresh session id and sets a new signed cookie, so
// the first contact already has an identity for the websocket handshake.
func SessionMiddleware(secret string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if cookie := ctx.Cookies(SessionCookieName); cookie != "" {
			if sid, err := ParseSessionToken(secret, cookie); err == nil {
				ctx.Locals(SessionLocalsKey, sid)
				return ctx.Next()
			}
		}

		sid := uuid.New()
		tokenStr, err := SignSessionToken(secret, sid)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to issue session token")
		}

		ctx.Cookie(&fiber.Cookie{
			Name:     SessionCookieName,
			Value:    tokenStr,
			Expires:  time.Now().Add(sessionTokenTTL),
			HTTPOnly: true,
			SameSite: "Lax",
		})
		ctx.Locals(SessionLocalsKey, sid)
		return ctx.Next()
	}
}

// SessionID reads the session id bound by SessionMiddleware.
func SessionID(ctx *fiber.Ctx) uuid.UUID {
	if sid, ok := ctx.Locals(SessionLocalsKey).(uuid.UUID); ok {
		return sid
	}
	return uuid.Nil
}
