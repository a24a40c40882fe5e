package auth

import (
	"sort"
	"strings"
)

// Verdict is the outcome of evaluating the access policy for one request.
type Verdict int

const (
	// Allow lets the request proceed to its handler.
	Allow Verdict = iota
	// RejectUnauthenticated means the path requires some authenticated
	// principal but the request is anonymous.
	RejectUnauthenticated
	// RejectForbidden means the principal's capabilities do not intersect
	// the required set.
	RejectForbidden
)

func (v Verdict) String() string {
	switch v {
	case Allow:
		return "allow"
	case RejectUnauthenticated:
		return "reject-unauthenticated"
	case RejectForbidden:
		return "reject-forbidden"
	default:
		return "unknown"
	}
}

// Rule grants or restricts access to every path under Prefix.
//
// Capabilities non-empty: the principal's tags must intersect the set.
// Authenticated true (and no capabilities): any principal will do.
// Neither: the subtree is explicitly public.
type Rule struct {
	Prefix        string
	Authenticated bool
	Capabilities  []string
}

// RequireAuthenticated builds a rule that admits any authenticated principal.
func RequireAuthenticated(prefix string) Rule {
	return Rule{Prefix: prefix, Authenticated: true}
}

// RequireCapability builds a rule that admits principals carrying at least
// one of the given tags.
func RequireCapability(prefix string, tags ...string) Rule {
	return Rule{Prefix: prefix, Authenticated: true, Capabilities: tags}
}

// Public builds a rule that explicitly opens a subtree.
func Public(prefix string) Rule {
	return Rule{Prefix: prefix}
}

// Policy is the ordered rule table evaluated once per request. It is
// resolved at construction and read-only afterward, so it is safe for
// unsynchronized concurrent use.
//
// Exactly one rule applies per request: the most specific matching prefix.
// Two rules of equal specificity resolve to the earlier-declared one.
// Paths no rule matches are PUBLIC; protected surfaces need explicit rules.
type Policy struct {
	rules []Rule
}

// NewPolicy copies and orders the rules by descending prefix length,
// keeping declaration order within equal lengths.
func NewPolicy(rules ...Rule) *Policy {
	ordered := make([]Rule, len(rules))
	copy(ordered, rules)
	for i := range ordered {
		ordered[i].Prefix = normalizePrefix(ordered[i].Prefix)
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(ordered[i].Prefix) > len(ordered[j].Prefix)
	})
	return &Policy{rules: ordered}
}

// Decide evaluates the table for the given principal (nil for anonymous)
// and request path.
func (p *Policy) Decide(principal *Principal, path string) Verdict {
	path = normalizePath(path)

	for _, rule := range p.rules {
		if !matchesPrefix(rule.Prefix, path) {
			continue
		}

		if len(rule.Capabilities) > 0 {
			if principal == nil {
				return RejectUnauthenticated
			}
			if !principal.HasAnyCapability(rule.Capabilities...) {
				return RejectForbidden
			}
			return Allow
		}

		if rule.Authenticated && principal == nil {
			return RejectUnauthenticated
		}

		return Allow
	}

	// Default fallback: public.
	return Allow
}

// matchesPrefix matches whole path segments: "/product" covers "/product"
// and "/product/1" but not "/products".
func matchesPrefix(prefix, path string) bool {
	if prefix == "/" {
		return true
	}
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	return len(path) == len(prefix) || path[len(prefix)] == '/'
}

func normalizePrefix(prefix string) string {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "/"
	}
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	if len(prefix) > 1 {
		prefix = strings.TrimRight(prefix, "/")
	}
	return prefix
}

func normalizePath(path string) string {
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	return path
}
