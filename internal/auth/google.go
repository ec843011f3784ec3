package auth

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/api/idtoken"
)

// Identity is what the server needs from a verified Google ID token.
type Identity struct {
	Email string
	Name  string
}

// IdentityVerifier checks a third-party identity assertion and extracts the
// identity it vouches for.
type IdentityVerifier interface {
	Verify(ctx context.Context, credential string) (Identity, error)
}

// GoogleVerifier validates Google-issued ID tokens against Google's public
// signing keys and the configured OAuth client id as audience.
type GoogleVerifier struct {
	audience string
}

// NewGoogleVerifier constructs a verifier expecting tokens issued for the
// given OAuth client id.
func NewGoogleVerifier(clientID string) *GoogleVerifier {
	return &GoogleVerifier{audience: clientID}
}

// Verify validates the credential (signature, expiry, audience) and returns
// the email and display name asserted by Google.
func (v *GoogleVerifier) Verify(ctx context.Context, credential string) (Identity, error) {
	payload, err := idtoken.Validate(ctx, credential, v.audience)
	if err != nil {
		return Identity{}, err
	}

	email, _ := payload.Claims["email"].(string)
	if strings.TrimSpace(email) == "" {
		return Identity{}, errors.New("id token has no email claim")
	}
	name, _ := payload.Claims["name"].(string)

	return Identity{Email: email, Name: name}, nil
}
