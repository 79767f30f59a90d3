package composables

import (
	"context"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/marinehub/fleetdesk/modules/core/domain/aggregates/principal"
	"github.com/marinehub/fleetdesk/pkg/constants"
)

var (
	ErrNoLogger    = errors.New("logger not found")
	ErrNoPrincipal = errors.New("principal not found")
)

type Params struct {
	IP            string
	UserAgent     string
	Bearer        string
	Authenticated bool
	Request       *http.Request
	Writer        http.ResponseWriter
}

// UseParams returns the request parameters from the context.
// If the parameters are not found, the second return value will be false.
func UseParams(ctx context.Context) (*Params, bool) {
	params, ok := ctx.Value(constants.ParamsKey).(*Params)
	return params, ok
}

// WithParams returns a new context with the request parameters.
func WithParams(ctx context.Context, params *Params) context.Context {
	return context.WithValue(ctx, constants.ParamsKey, params)
}

// UseLogger returns the logger from the context.
// If the logger is not found, the second return value will be false.
func UseLogger(ctx context.Context) *logrus.Entry {
	logger := ctx.Value(constants.LoggerKey)
	if logger == nil {
		panic("logger not found")
	}
	return logger.(*logrus.Entry)
}

// UseAuthenticated returns whether the caller presented a valid token.
func UseAuthenticated(ctx context.Context) bool {
	params, ok := UseParams(ctx)
	if !ok {
		return false
	}
	return params.Authenticated
}

// UseBearer returns the raw bearer token the caller presented.
// If no token was presented, the second return value will be false.
func UseBearer(ctx context.Context) (string, bool) {
	params, ok := UseParams(ctx)
	if !ok || params.Bearer == "" {
		return "", false
	}
	return params.Bearer, true
}

// UsePrincipal returns the resolved principal from the context.
func UsePrincipal(ctx context.Context) (*principal.Principal, error) {
	p, ok := ctx.Value(constants.PrincipalKey).(*principal.Principal)
	if !ok {
		return nil, ErrNoPrincipal
	}
	return p, nil
}

// WithPrincipal returns a new context carrying the resolved principal.
func WithPrincipal(ctx context.Context, p *principal.Principal) context.Context {
	return context.WithValue(ctx, constants.PrincipalKey, p)
}

// UseIP returns the IP address from the context.
// If the IP address is not found, the second return value will be false.
func UseIP(ctx context.Context) (string, bool) {
	params, ok := UseParams(ctx)
	if !ok {
		return "", false
	}
	return params.IP, true
}
