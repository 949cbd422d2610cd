package registry

import "context"

type BrokerInterface interface {
	// Authenticate runs the whole credential flow: token issuance, registry
	// login and the conditional pull secret update.
	Authenticate(ctx context.Context) error
}

type TokenClientInterface interface {
	FetchCredentials(ctx context.Context) (Credentials, error)
}

type AuthenticatorInterface interface {
	// Login validates the credentials against the registry and, on success,
	// records them into the auth file at authFilePath.
	Login(ctx context.Context, authFilePath string, creds Credentials) error
}
