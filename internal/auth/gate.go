// Package auth implements the admin gate: bearer-token extraction, identity
// verification against the OAuth issuer, and the static email allow-list
// every mutating request must pass.
package auth

import (
	"context"
	"net/http"
	"strings"
)

// Error is an authorization failure. Its message is returned verbatim in
// the 401 response body.
type Error struct {
	Reason string
}

func (e *Error) Error() string { return e.Reason }

var (
	ErrMissingToken  = &Error{Reason: "Missing bearer token"}
	ErrNoClientID    = &Error{Reason: "OAuth client id not configured"}
	ErrNoAllowList   = &Error{Reason: "Admin allow list not configured"}
	ErrEmailMissing  = &Error{Reason: "Email missing in token"}
	ErrNotAuthorized = &Error{Reason: "Not authorized"}
)

// Claims is the subset of verified token claims the gate needs.
type Claims struct {
	Email string
}

// TokenVerifier validates a bearer token and returns its claims. Any
// verification failure (expired, malformed, wrong audience, bad signature)
// is reported as an error; the gate collapses them all into one category.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// Gate authorizes admin requests. The allow-list is matched
// case-insensitively against the verified email claim.
type Gate struct {
	verifier TokenVerifier
	audience string
	allowed  map[string]struct{}
}

func NewGate(verifier TokenVerifier, audience string, allowEmails []string) *Gate {
	allowed := make(map[string]struct{}, len(allowEmails))
	for _, email := range allowEmails {
		email = strings.ToLower(strings.TrimSpace(email))
		if email != "" {
			allowed[email] = struct{}{}
		}
	}
	return &Gate{verifier: verifier, audience: audience, allowed: allowed}
}

// ParseAllowList splits a comma-separated email list from configuration.
func ParseAllowList(raw string) []string {
	var emails []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			emails = append(emails, part)
		}
	}
	return emails
}

// Authorize checks the request's bearer token and returns the verified
// email. Every failure is an *Error suitable for a 401 body.
func (g *Gate) Authorize(r *http.Request) (string, error) {
	token, err := TokenFromHeader(r.Header.Get("Authorization"))
	if err != nil {
		return "", err
	}
	if g.audience == "" {
		return "", ErrNoClientID
	}
	if len(g.allowed) == 0 {
		return "", ErrNoAllowList
	}

	claims, err := g.verifier.Verify(r.Context(), token)
	if err != nil {
		return "", &Error{Reason: "Invalid token: " + err.Error()}
	}

	email := strings.ToLower(strings.TrimSpace(claims.Email))
	if email == "" {
		return "", ErrEmailMissing
	}
	if _, ok := g.allowed[email]; !ok {
		return "", ErrNotAuthorized
	}
	return email, nil
}

// TokenFromHeader extracts the token from an Authorization header value.
func TokenFromHeader(header string) (string, error) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", ErrMissingToken
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", ErrMissingToken
	}
	return token, nil
}
