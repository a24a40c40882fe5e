// Package guard is the per-request authentication pipeline and
// authorization decision point, composed as a single fiber middleware.
//
// The pipeline runs exactly once per request, before any business handler:
// it extracts the bearer token, verifies it, and attaches the principal to
// the request context on success. It NEVER rejects a request itself — a
// missing header, a garbled token, or a failed verification all leave the
// request anonymous, so genuinely public routes keep working. All reject
// decisions are centralized in the access policy evaluated right after,
// and surfaced through the two failure responders.
package guard

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/storekit/backoffice/auth"
	"github.com/storekit/backoffice/response"
)

// Messages written by the default failure responders. Signature and
// malformed failures are indistinguishable here on purpose.
const (
	MsgUnauthenticated = "missing or invalid credential"
	MsgForbidden       = "capability not permitted"
)

type Config struct {
	// Verifier validates raw tokens. Required.
	Verifier auth.TokenVerifier
	// Policy is the rule table consulted for every request. Required.
	Policy *auth.Policy

	// ContextKey is the fiber locals key the principal is stored under.
	// Defaults to "principal".
	ContextKey string
	// AuthScheme is the expected Authorization scheme prefix. Defaults to
	// "Bearer".
	AuthScheme string
	// HeaderName is the header the token is extracted from. Defaults to
	// the Authorization header.
	HeaderName string

	// UnauthenticatedHandler terminates requests to authenticated paths
	// that carry no usable credential. Defaults to the 401 envelope.
	UnauthenticatedHandler fiber.Handler
	// ForbiddenHandler terminates requests whose principal lacks the
	// required capability. It also answers 401: the source system never
	// distinguished the two on the wire, and clients depend on that.
	ForbiddenHandler fiber.Handler

	Logger auth.Logger
}

// New builds the middleware. It panics on a missing verifier or policy,
// mirroring how the rest of the stack treats configuration errors: fail at
// startup, not per request.
func New(config ...Config) fiber.Handler {
	cfg := configDefault(config...)

	return func(c *fiber.Ctx) error {
		principal := authenticate(c, cfg)

		switch cfg.Policy.Decide(principal, c.Path()) {
		case auth.RejectUnauthenticated:
			return cfg.UnauthenticatedHandler(c)
		case auth.RejectForbidden:
			return cfg.ForbiddenHandler(c)
		default:
			return c.Next()
		}
	}
}

// authenticate resolves the request's principal, or nil for anonymous.
// Verification failures terminate here; they never cross into handlers.
func authenticate(c *fiber.Ctx, cfg Config) *auth.Principal {
	raw := tokenFromHeader(c.Get(cfg.HeaderName), cfg.AuthScheme)
	if raw == "" {
		return nil
	}

	principal, err := cfg.Verifier.Verify(raw)
	if err != nil {
		// Expired vs malformed vs signature is log-only detail; the
		// request simply proceeds anonymous.
		cfg.Logger.Debug("guard: token rejected", "path", c.Path(), "error", err)
		return nil
	}

	c.Locals(cfg.ContextKey, principal)
	c.SetUserContext(auth.WithPrincipal(c.UserContext(), principal))

	return principal
}

// tokenFromHeader strips the scheme prefix. An absent header or unexpected
// scheme yields "" — no credential, not an error.
func tokenFromHeader(header, scheme string) string {
	if header == "" {
		return ""
	}
	l := len(scheme)
	if len(header) <= l+1 || !strings.EqualFold(header[:l], scheme) {
		return ""
	}
	return strings.TrimSpace(header[l+1:])
}

// PrincipalFromCtx reads the principal the middleware stored, using the
// default context key.
func PrincipalFromCtx(c *fiber.Ctx) (*auth.Principal, bool) {
	return PrincipalFromCtxKey(c, "principal")
}

// PrincipalFromCtxKey reads the principal stored under a custom key.
func PrincipalFromCtxKey(c *fiber.Ctx, key string) (*auth.Principal, bool) {
	principal, ok := c.Locals(key).(*auth.Principal)
	if !ok || principal == nil {
		return nil, false
	}
	return principal, true
}

func configDefault(config ...Config) Config {
	var cfg Config
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.Verifier == nil {
		panic("guard: middleware configuration requires a token verifier")
	}

	if cfg.Policy == nil {
		panic("guard: middleware configuration requires an access policy")
	}

	if cfg.ContextKey == "" {
		cfg.ContextKey = "principal"
	}

	if cfg.AuthScheme == "" {
		cfg.AuthScheme = "Bearer"
	}

	if cfg.HeaderName == "" {
		cfg.HeaderName = fiber.HeaderAuthorization
	}

	if cfg.UnauthenticatedHandler == nil {
		cfg.UnauthenticatedHandler = func(c *fiber.Ctx) error {
			return response.Fail(c, fiber.StatusUnauthorized, MsgUnauthenticated)
		}
	}

	if cfg.ForbiddenHandler == nil {
		cfg.ForbiddenHandler = func(c *fiber.Ctx) error {
			return response.Fail(c, fiber.StatusUnauthorized, MsgForbidden)
		}
	}

	if cfg.Logger == nil {
		cfg.Logger = auth.NopLogger()
	}

	return cfg
}
