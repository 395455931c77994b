package auth

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

type stubVerifier struct {
	claims Claims
	err    error
}

func (v stubVerifier) Verify(context.Context, string) (Claims, error) {
	return v.claims, v.err
}

func authorize(t *testing.T, gate *Gate, header string) (string, error) {
	t.Helper()
	r := httptest.NewRequest("POST", "/content/news", nil)
	if header != "" {
		r.Header.Set("Authorization", header)
	}
	return gate.Authorize(r)
}

func TestAuthorizeMissingToken(t *testing.T) {
	gate := NewGate(stubVerifier{}, "client-id", []string{"admin@example.org"})

	for _, header := range []string{"", "Bearer", "Bearer ", "Basic dXNlcg==", "token-without-scheme"} {
		_, err := authorize(t, gate, header)
		require.ErrorIs(t, err, ErrMissingToken, "header %q", header)
	}
}

func TestAuthorizeConfigurationErrors(t *testing.T) {
	verifier := stubVerifier{claims: Claims{Email: "admin@example.org"}}

	_, err := authorize(t, NewGate(verifier, "", []string{"admin@example.org"}), "Bearer tok")
	require.ErrorIs(t, err, ErrNoClientID)

	_, err = authorize(t, NewGate(verifier, "client-id", nil), "Bearer tok")
	require.ErrorIs(t, err, ErrNoAllowList)

	// Blank entries do not count as a configured list.
	_, err = authorize(t, NewGate(verifier, "client-id", []string{" ", ""}), "Bearer tok")
	require.ErrorIs(t, err, ErrNoAllowList)
}

func TestAuthorizeInvalidToken(t *testing.T) {
	gate := NewGate(stubVerifier{err: errors.New("token expired")}, "client-id", []string{"admin@example.org"})

	_, err := authorize(t, gate, "Bearer tok")
	var authErr *Error
	require.ErrorAs(t, err, &authErr)
	require.Equal(t, "Invalid token: token expired", authErr.Reason)
}

func TestAuthorizeEmailChecks(t *testing.T) {
	_, err := authorize(t, NewGate(stubVerifier{}, "client-id", []string{"admin@example.org"}), "Bearer tok")
	require.ErrorIs(t, err, ErrEmailMissing)

	_, err = authorize(t, NewGate(stubVerifier{claims: Claims{Email: "intruder@example.org"}}, "client-id", []string{"admin@example.org"}), "Bearer tok")
	require.ErrorIs(t, err, ErrNotAuthorized)
}

func TestAuthorizeSuccessCaseInsensitive(t *testing.T) {
	verifier := stubVerifier{claims: Claims{Email: "Admin@Example.ORG"}}
	gate := NewGate(verifier, "client-id", []string{" ADMIN@example.org "})

	email, err := authorize(t, gate, "bearer tok")
	require.NoError(t, err)
	require.Equal(t, "admin@example.org", email)
}

func TestParseAllowList(t *testing.T) {
	require.Equal(t, []string{"a@x.org", "b@x.org"}, ParseAllowList(" a@x.org, ,b@x.org,"))
	require.Nil(t, ParseAllowList(""))
}
