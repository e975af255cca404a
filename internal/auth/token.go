// Package auth provides bearer-token authentication and resource
// authorization for ReadHaven. Tokens are stateless signed JWTs; there is
// deliberately no server-side session store and no revocation list, so a
// token stays valid until its natural expiry.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Role distinguishes ordinary identities from the admin session.
type Role string

const (
	// RoleUser is the role carried by tokens minted for registered users.
	RoleUser Role = "user"

	// RoleAdmin is the role carried by tokens minted from the fixed admin
	// credential pair. Admin tokens are never minted for stored users.
	RoleAdmin Role = "admin"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// AdminUserID is the subject carried by admin tokens. User IDs start at 1,
// so zero can never collide with a stored account.
const AdminUserID int64 = 0

// Token decoding errors.
var (
	// ErrTokenMalformed indicates the token string is not a valid JWT.
	ErrTokenMalformed = errors.New("token is malformed")

	// ErrTokenSignatureInvalid indicates the signature does not verify
	// against the server secret.
	ErrTokenSignatureInvalid = errors.New("token signature is invalid")

	// ErrTokenExpired indicates the token was valid but has expired.
	ErrTokenExpired = errors.New("token has expired")

	// ErrTokenInvalid covers any other verification failure.
	ErrTokenInvalid = errors.New("token is invalid")
)

// Claims is the verified content of a decoded token.
type Claims struct {
	// UserID is the subject identity. Zero for admin tokens, which do not
	// reference a stored user.
	UserID int64

	// Role is the session scope.
	Role Role

	// ExpiresAt is when the token stops verifying.
	ExpiresAt time.Time
}

// tokenClaims is the JWT wire representation.
type tokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Codec mints and verifies identity tokens. Verification is fully
// stateless: no store lookup is needed to authenticate a request.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// NewCodec creates a Codec signing with the given secret. Issued tokens
// expire after ttl.
func NewCodec(secret string, ttl time.Duration) *Codec {
	return &Codec{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue mints a signed HS256 token for the given identity and role.
func (c *Codec) Issue(userID int64, role Role) (string, error) {
	if !role.Valid() {
		return "", fmt.Errorf("unknown role %q", role)
	}

	now := time.Now()
	claims := tokenClaims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Decode verifies a token string and returns its claims.
// Failures are reported as ErrTokenMalformed, ErrTokenSignatureInvalid,
// ErrTokenExpired, or ErrTokenInvalid.
func (c *Codec) Decode(tokenString string) (*Claims, error) {
	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", token.Method.Alg())
		}
		return c.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrTokenSignatureInvalid
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		default:
			return nil, ErrTokenInvalid
		}
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}

	role := Role(claims.Role)
	if !role.Valid() {
		return nil, ErrTokenInvalid
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, ErrTokenInvalid
	}

	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	return &Claims{
		UserID:    userID,
		Role:      role,
		ExpiresAt: expiresAt,
	}, nil
}
