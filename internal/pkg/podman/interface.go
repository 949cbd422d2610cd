package podman

import "context"

type ValidatorInterface interface {
	// Validate checks that the podman client is installed and answers.
	Validate(ctx context.Context) error
}
