// Package googleauth validates Google-issued ID tokens for a single fixed
// audience. It is the only identity integration the platform has.
package googleauth

import (
	"context"
	"errors"

	"github.com/nexgenbattles/tournament-api/internal/domain"
	"google.golang.org/api/idtoken"
)

// TokenVerifier turns a raw bearer token into a verified identity claim.
type TokenVerifier interface {
	Verify(ctx context.Context, rawToken string) (*domain.IdentityClaim, error)
}

type Verifier struct {
	clientID string
}

func NewVerifier(clientID string) *Verifier {
	return &Verifier{clientID: clientID}
}

// Verify validates the token signature, expiry and audience against Google.
// Every failure mode (malformed, expired, wrong audience, issuer
// unreachable) surfaces as an error; callers treat them all as
// unauthenticated. No retry, no caching: each request re-verifies.
func (v *Verifier) Verify(ctx context.Context, rawToken string) (*domain.IdentityClaim, error) {
	if rawToken == "" {
		return nil, errors.New("empty token")
	}

	payload, err := idtoken.Validate(ctx, rawToken, v.clientID)
	if err != nil {
		return nil, err
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return nil, errors.New("token has no email claim")
	}
	name, _ := payload.Claims["name"].(string)

	return &domain.IdentityClaim{
		Email: email,
		Name:  name,
		Sub:   payload.Subject,
	}, nil
}
