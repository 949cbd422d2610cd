package podman

import (
	"context"
	"fmt"
	"os/exec"

	clog "github.com/openshift-eng/iib-setup/internal/pkg/log"
)

const binaryName = "podman"

type Validator struct {
	Log clog.PluggableLoggerInterface
	// overridable for tests
	LookPath   func(file string) (string, error)
	RunCommand func(ctx context.Context, name string, args ...string) ([]byte, error)
}

func New(log clog.PluggableLoggerInterface) *Validator {
	return &Validator{
		Log:      log,
		LookPath: exec.LookPath,
		RunCommand: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return exec.CommandContext(ctx, name, args...).CombinedOutput()
		},
	}
}

// Validate fails fast when the container engine client is missing or not
// answering, before the run touches any remote system.
func (o *Validator) Validate(ctx context.Context) error {
	path, err := o.LookPath(binaryName)
	if err != nil {
		return fmt.Errorf("%s client not found in PATH: install it first (see https://podman.io/docs/installation) then rerun", binaryName)
	}
	o.Log.Debug("%s client found at %s", binaryName, path)

	if out, err := o.RunCommand(ctx, binaryName, "version"); err != nil {
		return fmt.Errorf("%s client found but not answering (%s version failed: %v - %s)", binaryName, binaryName, err, string(out))
	}
	return nil
}
