package mcp

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/atelierhq/atelier/internal/identity"
)

// authMiddleware verifies the bearer token and places the caller identity
// on the context, where the domain services expect it.
func authMiddleware(verifier *identity.Verifier) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			// Skip auth for protocol methods
			if method == "initialize" || method == "ping" || strings.HasPrefix(method, "notifications/") {
				return next(ctx, method, req)
			}

			extra := req.GetExtra()
			if extra == nil || extra.Header == nil {
				return nil, fmt.Errorf("unauthorized: missing headers")
			}

			auth := extra.Header.Get("Authorization")
			token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
			if token == "" {
				return nil, fmt.Errorf("unauthorized: missing bearer token")
			}

			id, err := verifier.Verify(token)
			if err != nil {
				return nil, fmt.Errorf("unauthorized: %w", err)
			}

			ctx = identity.WithIdentity(ctx, id)
			return next(ctx, method, req)
		}
	}
}
