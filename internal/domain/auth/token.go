package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	platformerrors "gallery-server/internal/platform/errors"
)

// DefaultTTL is the validity window for issued tokens. There is no
// refresh mechanism; callers re-authenticate after expiry.
const DefaultTTL = 12 * time.Hour

// Claims carries the verified identity attached to a request.
// ClientID and ClientName are only set for client tokens.
type Claims struct {
	Role       Role   `json:"role"`
	ClientID   uint   `json:"clientId,omitempty"`
	ClientName string `json:"clientName,omitempty"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies role-scoped bearer tokens.
// It keeps no state beyond the signing secret.
type TokenService struct {
	secretKey []byte
	ttl       time.Duration
}

// NewTokenService builds a token helper using the provided secret.
func NewTokenService(secretKey string) *TokenService {
	return &TokenService{
		secretKey: []byte(secretKey),
		ttl:       DefaultTTL,
	}
}

// WithTTL allows customising the expiration duration.
func (ts *TokenService) WithTTL(ttl time.Duration) *TokenService {
	if ttl > 0 {
		ts.ttl = ttl
	}
	return ts
}

// IssueAdmin issues a token carrying the admin role.
func (ts *TokenService) IssueAdmin() (string, error) {
	return ts.issue(Claims{Role: RoleAdmin})
}

// IssueClient issues a token scoped to a single client identity.
func (ts *TokenService) IssueClient(clientID uint, clientName string) (string, error) {
	return ts.issue(Claims{
		Role:       RoleClient,
		ClientID:   clientID,
		ClientName: clientName,
	})
}

func (ts *TokenService) issue(claims Claims) (string, error) {
	if len(ts.secretKey) == 0 {
		return "", platformerrors.New(platformerrors.KindConfig, "token.issue", "signing secret is empty")
	}

	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(ts.ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(ts.secretKey)
	if err != nil {
		return "", platformerrors.Wrap(platformerrors.KindAuth, "token.issue", "failed to sign token", err)
	}
	return signed, nil
}

// Verify validates signature and expiry and returns the embedded claims.
// Every failure mode collapses into a single auth error so callers
// cannot tell which check rejected the token.
func (ts *TokenService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return ts.secretKey, nil
	})
	if err != nil {
		return nil, platformerrors.Wrap(platformerrors.KindAuth, "token.verify", "invalid or expired token", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || !claims.Role.Valid() {
		return nil, platformerrors.New(platformerrors.KindAuth, "token.verify", "invalid or expired token")
	}
	return claims, nil
}
