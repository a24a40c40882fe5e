// Package auth implements the credential issuance and request-scoped
// authorization core of the back office: signed bearer tokens, the
// per-request principal, and the path-based access policy.
//
// Tokens:
//   - TokenService issues HS256-signed tokens carrying subject, capability
//     tags, issued-at, and expiry. Validity is determined solely by the
//     signature and the expiry claim; there is no server-side registry and
//     no revocation. Verification is strict: a single wall-clock read, no
//     leeway window.
//
// Principals:
//   - A Principal is built once per login attempt (from the member store)
//     or once per authenticated request (from a verified token) and is
//     never mutated. Principals decoded from tokens carry only the subject
//     and capability tags; credential hashes never leave the login flow.
//
// Access policy:
//   - Policy is an ordered table of path-prefix rules resolved once at
//     startup. The most specific matching prefix wins, declaration order
//     breaks ties, and unmatched paths are PUBLIC by default. The
//     permissive fallback is deliberate (it mirrors the routes the back
//     office exposes) but easy to misconfigure: every protected surface
//     must have an explicit rule.
package auth
