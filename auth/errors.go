package auth

import (
	"github.com/goliatone/go-errors"
)

// Text codes let clients and log pipelines branch on failure kinds without
// parsing messages.
const (
	TextCodeTokenExpired     = "TOKEN_EXPIRED"
	TextCodeTokenMalformed   = "TOKEN_MALFORMED"
	TextCodeTokenSignature   = "TOKEN_SIGNATURE"
	TextCodeLoginFailed      = "LOGIN_FAILED"
	TextCodeIdentityNotFound = "IDENTITY_NOT_FOUND"
)

// ErrTokenExpired means the token parsed and its signature verified but the
// expiry has passed. The same token can never become valid again.
var ErrTokenExpired = errors.New("token is expired", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode(TextCodeTokenExpired)

// ErrTokenMalformed means the token string does not parse into the expected
// structure.
var ErrTokenMalformed = errors.New("token is malformed", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode(TextCodeTokenMalformed)

// ErrTokenSignature means the signature does not match the recomputed value.
// Responders must not distinguish this from ErrTokenMalformed in response
// bodies; logs may.
var ErrTokenSignature = errors.New("token signature mismatch", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode(TextCodeTokenSignature)

// ErrIdentityNotFound is the error we return for not found identities.
var ErrIdentityNotFound = errors.New("identity not found", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode(TextCodeIdentityNotFound)

// ErrLoginFailed is the single opaque error surfaced by the login flow. It
// deliberately does not say whether the identifier or the password was wrong.
var ErrLoginFailed = errors.New("identifier or password is incorrect", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode(TextCodeLoginFailed)

// ErrMismatchedHashAndPassword is returned when a password comparison fails.
var ErrMismatchedHashAndPassword = errors.New("mismatched hash and password", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized)

// ErrNoEmptyString rejects empty passwords before hashing.
var ErrNoEmptyString = errors.New("password can not be an empty string", errors.CategoryValidation).
	WithCode(errors.CodeBadRequest)

// IsTokenError reports whether err belongs to the token verification
// taxonomy (expired, malformed, or signature mismatch).
func IsTokenError(err error) bool {
	return errors.Is(err, ErrTokenExpired) ||
		errors.Is(err, ErrTokenMalformed) ||
		errors.Is(err, ErrTokenSignature)
}
