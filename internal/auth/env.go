package auth

import "context"

// EnvProvider serves tokens that were loaded from the environment.
type EnvProvider struct {
	SpartanToken   string
	ClearanceToken string
}

var _ Provider = EnvProvider{}

func (p EnvProvider) Credentials(ctx context.Context) (Credentials, error) {
	if p.SpartanToken == "" || p.ClearanceToken == "" {
		return Credentials{}, ErrMissingTokens
	}
	return Credentials{SpartanToken: p.SpartanToken, ClearanceToken: p.ClearanceToken}, nil
}
