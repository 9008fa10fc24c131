package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is the validity window of issued tokens.
const TokenTTL = 7 * 24 * time.Hour

// Claims is the signed token payload.
type Claims struct {
	Username string `json:"username"`
	RoleID   string `json:"role_id"`
	jwt.RegisteredClaims
}

// TokenCodec issues and verifies signed bearer tokens. The signing secret is
// injected at construction and validated there; an empty secret is a startup
// failure, never a per-request one.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenCodec constructs a codec with the default validity window.
func NewTokenCodec(secret string) (*TokenCodec, error) {
	if secret == "" {
		return nil, errors.New("auth: signing secret must not be empty")
	}
	return &TokenCodec{secret: []byte(secret), ttl: TokenTTL, now: time.Now}, nil
}

// Issue signs a token for the given subject.
func (c *TokenCodec) Issue(subjectID, subjectName, roleID string) (string, error) {
	issued := c.now()
	claims := Claims{
		Username: subjectName,
		RoleID:   roleID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(c.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Verify checks signature and expiry. It reports absence rather than an
// error: malformed input, a bad signature and an elapsed expiry all decode to
// false, and callers treat that as "request is unauthenticated".
func (c *TokenCodec) Verify(token string) (Claims, bool) {
	if token == "" {
		return Claims{}, false
	}
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return c.secret, nil
	})
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return Claims{}, false
	}
	return claims, true
}
