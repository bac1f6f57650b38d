package auth

import (
	"crypto/subtle"
	"errors"
	"strings"
)

const bearerPrefix = "Bearer "

// Sentinel errors for credential extraction and validation
var (
	ErrNoCredential = errors.New("no authorization provided")
	ErrBadScheme    = errors.New("invalid authorization format")
	ErrInvalidToken = errors.New("invalid token")
)

// SecretValidator compares presented bearer tokens against the shared secret
type SecretValidator struct {
	secret []byte
}

// NewSecretValidator creates a new SecretValidator
func NewSecretValidator(secret string) *SecretValidator {
	return &SecretValidator{
		secret: []byte(secret),
	}
}

// ExtractBearerToken pulls the token out of an Authorization header value.
// An empty header is a usage error (ErrNoCredential); a present header that
// is not "Bearer "-prefixed is a format error (ErrBadScheme).
func ExtractBearerToken(header string) (string, error) {
	if header == "" {
		return "", ErrNoCredential
	}
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", ErrBadScheme
	}
	return strings.Split(header, " ")[1], nil
}

// Validate checks the presented token against the shared secret.
// The comparison is constant-time; plain string equality short-circuits
// and would leak how many leading bytes matched.
func (v *SecretValidator) Validate(token string) error {
	if subtle.ConstantTimeCompare([]byte(token), v.secret) != 1 {
		return ErrInvalidToken
	}
	return nil
}
