package auth

import "context"

// Provider supplies credentials for the Halo Infinite API.
type Provider interface {
	Credentials(ctx context.Context) (Credentials, error)
}
