package clusterresources

const (
	clusterResourcesDir string = "cluster-resources"

	brewRegistry string = "brew.registry.redhat.io"

	icspName     string = "brew-registry"
	icspFileName string = "icsp-brew-registry.yaml"

	catalogSourceName        string = "brew-test-catalog"
	catalogSourceNamespace   string = "openshift-marketplace"
	catalogSourceDisplayName string = "Brew Test Catalog"
	catalogSourcePublisher   string = "Red Hat"
	catalogSourceFileName    string = "catalogsource-" + catalogSourceName + ".yaml"

	fieldManager string = "iib-setup"
)

// brewMirrorSources are the public registry hosts whose pulls get
// redirected to the brew mirror.
var brewMirrorSources = []string{
	"registry.redhat.io",
	"registry.stage.redhat.io",
	"registry-proxy.engineering.redhat.com",
}
