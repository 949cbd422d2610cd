package registry

import "time"

const (
	brewRegistry = "brew.registry.redhat.io"

	tokenEndpoint = "https://employee-token-manager.registry.redhat.com/v1/tokens"
	tokenTimeout  = 2 * time.Minute

	pullSecretNamespace = "openshift-config"
	pullSecretName      = "pull-secret"

	authFilePattern = "iib-setup-auth-*.json"

	// manualTokenCommand is surfaced verbatim when the token service cannot
	// be reached, so the operator can mint a token by hand.
	manualTokenCommand = `curl --negotiate -u : -X POST -H 'Content-Type: application/json' --data '{"description":"iib-setup"}' ` + tokenEndpoint
)
