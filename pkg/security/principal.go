package security

import (
	"context"
	"strings"
)

// Sentinel role names understood by content permission checks.
const (
	RoleAnonymous     = "Anonymous"
	RoleAuthenticated = "Authenticated"
)

// Principal is the caller identity the host attaches to a request.
type Principal interface {
	IsAuthenticated() bool
	IsInRole(role string) bool
}

// User is a simple Principal implementation backed by a role list.
type User struct {
	Name          string
	Roles         []string
	Authenticated bool
}

var _ Principal = User{}

// IsAuthenticated reports whether the user signed in.
func (u User) IsAuthenticated() bool {
	return u.Authenticated
}

// IsInRole compares role names case-insensitively.
func (u User) IsInRole(role string) bool {
	role = strings.TrimSpace(role)
	if role == "" {
		return false
	}
	for _, candidate := range u.Roles {
		if strings.EqualFold(candidate, role) {
			return true
		}
	}
	return false
}

type principalKey struct{}

// WithPrincipal returns a context carrying p.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext returns the principal attached to ctx, if any.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	if ctx == nil {
		return nil, false
	}
	p, ok := ctx.Value(principalKey{}).(Principal)
	if !ok || p == nil {
		return nil, false
	}
	return p, true
}
