package httpapi

import (
	"context"
	"strings"

	"github.com/riskibarqy/fight-picks/internal/domain/user"
)

type principalKey struct{}

func contextWithPrincipal(ctx context.Context, p user.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// callerFrom returns the verified caller stored by RequireAuth.
func callerFrom(ctx context.Context) (user.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(user.Principal)
	if !ok || strings.TrimSpace(p.UserID) == "" {
		return user.Principal{}, false
	}
	return p, true
}
