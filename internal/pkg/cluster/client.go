package cluster

import (
	"fmt"

	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
)

// Clients bundles the typed and dynamic clients the run needs against the
// ambient cluster (KUBECONFIG / default loading rules).
type Clients struct {
	Kube    kubernetes.Interface
	Dynamic dynamic.Interface
}

func NewConfig() (*rest.Config, error) {
	loadingRules := clientcmd.NewDefaultClientConfigLoadingRules()
	cfg, err := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(loadingRules, &clientcmd.ConfigOverrides{}).ClientConfig()
	if err != nil {
		return nil, fmt.Errorf("loading kubeconfig: %w (set KUBECONFIG or log in to the cluster first)", err)
	}
	return cfg, nil
}

func NewClients() (*Clients, error) {
	cfg, err := NewConfig()
	if err != nil {
		return nil, err
	}
	kube, err := kubernetes.NewForConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating kubernetes client: %w", err)
	}
	dyn, err := dynamic.NewForConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating dynamic client: %w", err)
	}
	return &Clients{Kube: kube, Dynamic: dyn}, nil
}

// Ping verifies the API server is reachable before any mutation is
// attempted, and returns its version string.
func (c *Clients) Ping() (string, error) {
	version, err := c.Kube.Discovery().ServerVersion()
	if err != nil {
		return "", fmt.Errorf("cluster API not reachable: %w (check KUBECONFIG and cluster login)", err)
	}
	return version.GitVersion, nil
}
