package clusterresources

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	operatorv1alpha1 "github.com/openshift/api/operator/v1alpha1"
	ofv1alpha1 "github.com/operator-framework/api/pkg/operators/v1alpha1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"sigs.k8s.io/yaml"

	"github.com/openshift-eng/iib-setup/internal/pkg/emoji"
	clog "github.com/openshift-eng/iib-setup/internal/pkg/log"
)

func New(log clog.PluggableLoggerInterface, workingDir string) GeneratorInterface {
	return &ClusterResourcesGenerator{Log: log, WorkingDir: workingDir}
}

type ClusterResourcesGenerator struct {
	Log        clog.PluggableLoggerInterface
	WorkingDir string
}

func (o *ClusterResourcesGenerator) ICSPGenerator() (*unstructured.Unstructured, error) {
	o.Log.Info(emoji.PageFacingUp + " Generating ImageContentSourcePolicy file...")

	mirrors := make([]operatorv1alpha1.RepositoryDigestMirrors, 0, len(brewMirrorSources))
	for _, source := range brewMirrorSources {
		mirrors = append(mirrors, operatorv1alpha1.RepositoryDigestMirrors{
			Source:  source,
			Mirrors: []string{brewRegistry},
		})
	}

	obj := operatorv1alpha1.ImageContentSourcePolicy{
		TypeMeta: metav1.TypeMeta{
			APIVersion: operatorv1alpha1.GroupVersion.String(),
			Kind:       "ImageContentSourcePolicy",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name: icspName,
		},
		Spec: operatorv1alpha1.ImageContentSourcePolicySpec{
			RepositoryDigestMirrors: mirrors,
		},
	}

	return o.sanitizeAndWrite(&obj, icspFileName)
}

func (o *ClusterResourcesGenerator) CatalogSourceGenerator(indexImage string) (*unstructured.Unstructured, error) {
	// guard against an unresolved reference sneaking through
	if indexImage == "" || indexImage == "null" {
		return nil, fmt.Errorf("refusing to generate CatalogSource: index image reference is empty")
	}
	o.Log.Info(emoji.PageFacingUp + " Generating CatalogSource file...")

	obj := ofv1alpha1.CatalogSource{
		TypeMeta: metav1.TypeMeta{
			APIVersion: ofv1alpha1.SchemeGroupVersion.String(),
			Kind:       ofv1alpha1.CatalogSourceKind,
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      catalogSourceName,
			Namespace: catalogSourceNamespace,
		},
		Spec: ofv1alpha1.CatalogSourceSpec{
			SourceType:  ofv1alpha1.SourceTypeGrpc,
			Image:       indexImage,
			DisplayName: catalogSourceDisplayName,
			Publisher:   catalogSourcePublisher,
		},
	}

	return o.sanitizeAndWrite(&obj, catalogSourceFileName)
}

// sanitizeAndWrite converts the typed object to unstructured, strips the
// zero-valued metadata/status noise prior to marshalling, and saves the
// YAML rendition under <workingDir>/cluster-resources.
func (o *ClusterResourcesGenerator) sanitizeAndWrite(obj interface{}, fileName string) (*unstructured.Unstructured, error) {
	unstructuredObj := &unstructured.Unstructured{}
	var err error
	unstructuredObj.Object, err = runtime.DefaultUnstructuredConverter.ToUnstructured(obj)
	if err != nil {
		return nil, fmt.Errorf("error while sanitizing the object prior to marshalling: %v", err)
	}
	delete(unstructuredObj.Object["metadata"].(map[string]interface{}), "creationTimestamp")
	delete(unstructuredObj.Object, "status")

	objBytes, err := yaml.Marshal(unstructuredObj.Object)
	if err != nil {
		return nil, fmt.Errorf("unable to marshal %s yaml: %v", unstructuredObj.GetKind(), err)
	}

	filePath := filepath.Join(o.WorkingDir, clusterResourcesDir, fileName)
	if _, err := os.Stat(filePath); errors.Is(err, os.ErrNotExist) {
		o.Log.Debug("%s does not exist, creating it", filePath)
		if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
			return nil, err
		}
		o.Log.Debug("%s dir created", filepath.Dir(filePath))
	}
	objFile, err := os.Create(filePath)
	if err != nil {
		return nil, err
	}
	defer objFile.Close()

	if _, err := objFile.Write(objBytes); err != nil {
		return nil, err
	}
	o.Log.Info("%s file created", filePath)

	return unstructuredObj, nil
}
