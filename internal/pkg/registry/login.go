package registry

import (
	"context"
	"fmt"

	"github.com/containers/image/v5/docker"
	dockerconfig "github.com/containers/image/v5/pkg/docker/config"
	"github.com/containers/image/v5/types"

	clog "github.com/openshift-eng/iib-setup/internal/pkg/log"
)

// Authenticator performs the registry login the same way podman login does:
// validate the credentials against the registry, then record them in the
// auth file. The auth file is the decoded cluster pull secret, so a
// successful login leaves it holding the merged credentials.
type Authenticator struct {
	Log      clog.PluggableLoggerInterface
	Registry string
}

func NewAuthenticator(log clog.PluggableLoggerInterface) *Authenticator {
	return &Authenticator{Log: log, Registry: brewRegistry}
}

func (o *Authenticator) Login(ctx context.Context, authFilePath string, creds Credentials) error {
	sys := &types.SystemContext{AuthFilePath: authFilePath}

	if err := docker.CheckAuth(ctx, sys, creds.Username, creds.Password, o.Registry); err != nil {
		return fmt.Errorf("login to %s failed for user %s: %w", o.Registry, creds.Username, err)
	}
	o.Log.Debug("credentials accepted by %s", o.Registry)

	if _, err := dockerconfig.SetCredentials(sys, o.Registry, creds.Username, creds.Password); err != nil {
		return fmt.Errorf("recording %s credentials in auth file: %w", o.Registry, err)
	}
	return nil
}
