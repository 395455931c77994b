package auth

import (
	"context"

	"google.golang.org/api/idtoken"
)

// GoogleVerifier validates Google-issued ID tokens against a fixed OAuth
// client id. Signing keys are fetched and cached by the idtoken package.
type GoogleVerifier struct {
	audience string
}

func NewGoogleVerifier(audience string) *GoogleVerifier {
	return &GoogleVerifier{audience: audience}
}

func (v *GoogleVerifier) Verify(ctx context.Context, token string) (Claims, error) {
	payload, err := idtoken.Validate(ctx, token, v.audience)
	if err != nil {
		return Claims{}, err
	}
	email, _ := payload.Claims["email"].(string)
	return Claims{Email: email}, nil
}
