package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"

	"github.com/terraconstructs/tasklists/internal/db/models"
)

// ErrInvalidToken is returned for any token that fails verification.
var ErrInvalidToken = errors.New("invalid identity token")

const bearerPrefix = "Bearer "

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, bool) {
	if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(bearerPrefix):])
	return token, token != ""
}

// Verifier validates HS256 identity tokens.
type Verifier struct {
	secret []byte
	issuer string
}

// NewVerifier constructs a verifier for tokens signed with secret by issuer.
func NewVerifier(secret, issuer string) (*Verifier, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	return &Verifier{secret: []byte(secret), issuer: issuer}, nil
}

// Verify parses the token and decodes its identity claims.
func (v *Verifier) Verify(token string) (Identity, error) {
	parsed, err := jwt.Parse(token,
		func(*jwt.Token) (any, error) { return v.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(v.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, fmt.Errorf("%w: unexpected claims type", ErrInvalidToken)
	}
	return decodeIdentity(claims)
}

func decodeIdentity(claims jwt.MapClaims) (Identity, error) {
	var id Identity
	if err := mapstructure.Decode(map[string]any(claims), &id); err != nil {
		return Identity{}, fmt.Errorf("%w: decode claims: %v", ErrInvalidToken, err)
	}
	if id.UserID == "" {
		return Identity{}, fmt.Errorf("%w: missing sub claim", ErrInvalidToken)
	}
	if _, err := uuid.Parse(id.UserID); err != nil {
		return Identity{}, fmt.Errorf("%w: sub is not a user id", ErrInvalidToken)
	}
	switch id.Role {
	case "":
		id.Role = models.SystemRoleUser
	case models.SystemRoleUser, models.SystemRoleAdmin:
	default:
		return Identity{}, fmt.Errorf("%w: unknown role %q", ErrInvalidToken, id.Role)
	}
	return id, nil
}

// Signer mints identity tokens. The server never calls it; it backs the
// token mint command and tests.
type Signer struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewSigner constructs a signer producing tokens valid for ttl.
func NewSigner(secret, issuer string, ttl time.Duration) (*Signer, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token ttl must be positive, got %s", ttl)
	}
	return &Signer{secret: []byte(secret), issuer: issuer, ttl: ttl, now: time.Now}, nil
}

// Mint signs a token for the identity.
func (s *Signer) Mint(id Identity) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":   id.UserID,
		"email": id.Email,
		"role":  string(id.Role),
		"iss":   s.issuer,
		"iat":   now.Unix(),
		"exp":   now.Add(s.ttl).Unix(),
		"jti":   uuid.NewString(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
