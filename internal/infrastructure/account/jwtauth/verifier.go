package jwtauth

import (
	"context"
	"fmt"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/riskibarqy/fight-picks/internal/domain/user"
	"github.com/riskibarqy/fight-picks/internal/platform/logging"
	"github.com/riskibarqy/fight-picks/internal/usecase"
)

// Claims is the payload of a session token. Subject carries the user id.
type Claims struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Verifier validates HS256 session tokens signed with a shared secret.
type Verifier struct {
	secret []byte
	parser *jwt.Parser
	logger *logging.Logger
}

func NewVerifier(secret string, leeway time.Duration, logger *logging.Logger) (*Verifier, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, crerr.New("jwt secret is required")
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &Verifier{
		secret: []byte(secret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithLeeway(leeway),
		),
		logger: logger,
	}, nil
}

func (v *Verifier) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	var claims Claims
	_, err := v.parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		v.logger.DebugContext(ctx, "session token rejected", "error", err)
		return user.Principal{}, fmt.Errorf("%w: %v", usecase.ErrUnauthorized, err)
	}

	subject := strings.TrimSpace(claims.Subject)
	if subject == "" {
		return user.Principal{}, fmt.Errorf("%w: token has no subject", usecase.ErrUnauthorized)
	}

	return user.Principal{
		UserID: subject,
		Name:   strings.TrimSpace(claims.Name),
		Email:  strings.TrimSpace(claims.Email),
	}, nil
}

// Sign issues a token for a principal. Only tests and local tooling mint tokens;
// production sessions come from the identity provider.
func Sign(secret string, principal user.Principal, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Name:  principal.Name,
		Email: principal.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", crerr.Wrap(err, "sign session token")
	}
	return signed, nil
}
