package registry

import (
	"context"
	"fmt"
	"os"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"

	"github.com/openshift-eng/iib-setup/internal/pkg/emoji"
	clog "github.com/openshift-eng/iib-setup/internal/pkg/log"
)

// CredentialBroker wires the token service, the registry login and the
// cluster pull secret into one flow. The pull secret is only written back
// after the login succeeded, and the update carries the resourceVersion
// observed at read time: a concurrent mutation of the secret surfaces as a
// conflict instead of being silently overwritten.
type CredentialBroker struct {
	Log    clog.PluggableLoggerInterface
	Kube   kubernetes.Interface
	Tokens TokenClientInterface
	Auth   AuthenticatorInterface
}

func NewBroker(log clog.PluggableLoggerInterface, kube kubernetes.Interface, tokens TokenClientInterface, auth AuthenticatorInterface) *CredentialBroker {
	return &CredentialBroker{Log: log, Kube: kube, Tokens: tokens, Auth: auth}
}

func (o *CredentialBroker) Authenticate(ctx context.Context) error {
	creds, err := o.Tokens.FetchCredentials(ctx)
	if err != nil {
		return err
	}

	secret, err := o.Kube.CoreV1().Secrets(pullSecretNamespace).Get(ctx, pullSecretName, metav1.GetOptions{})
	if err != nil {
		return fmt.Errorf("reading pull secret %s/%s: %w", pullSecretNamespace, pullSecretName, err)
	}
	dockerConfig, ok := secret.Data[corev1.DockerConfigJsonKey]
	if !ok {
		return fmt.Errorf("pull secret %s/%s has no %s entry", pullSecretNamespace, pullSecretName, corev1.DockerConfigJsonKey)
	}

	authFile, err := o.writeAuthFile(dockerConfig)
	if err != nil {
		return err
	}
	defer os.Remove(authFile)

	if err := o.Auth.Login(ctx, authFile, creds); err != nil {
		// pull secret stays untouched on login failure
		return err
	}
	o.Log.Info(emoji.CheckMarkButton + " registry login succeeded")

	merged, err := os.ReadFile(authFile)
	if err != nil {
		return fmt.Errorf("reading back auth file: %w", err)
	}

	secret.Data[corev1.DockerConfigJsonKey] = merged
	if _, err := o.Kube.CoreV1().Secrets(pullSecretNamespace).Update(ctx, secret, metav1.UpdateOptions{}); err != nil {
		if apierrors.IsConflict(err) {
			return fmt.Errorf("pull secret %s/%s changed while this run was logging in, rerun to pick up the new content: %w", pullSecretNamespace, pullSecretName, err)
		}
		return fmt.Errorf("updating pull secret %s/%s: %w", pullSecretNamespace, pullSecretName, err)
	}
	o.Log.Info(emoji.CheckMarkButton+" pull secret %s/%s updated with %s credentials", pullSecretNamespace, pullSecretName, brewRegistry)
	return nil
}

func (o *CredentialBroker) writeAuthFile(dockerConfig []byte) (string, error) {
	f, err := os.CreateTemp("", authFilePattern)
	if err != nil {
		return "", fmt.Errorf("creating temporary auth file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(dockerConfig); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("writing temporary auth file: %w", err)
	}
	o.Log.Debug("pull secret staged at %s", f.Name())
	return f.Name(), nil
}
