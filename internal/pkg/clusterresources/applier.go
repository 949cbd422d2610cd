package clusterresources

import (
	"context"
	"fmt"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/client-go/dynamic"

	"github.com/openshift-eng/iib-setup/internal/pkg/emoji"
	clog "github.com/openshift-eng/iib-setup/internal/pkg/log"
)

var (
	icspGVR = schema.GroupVersionResource{
		Group:    "operator.openshift.io",
		Version:  "v1alpha1",
		Resource: "imagecontentsourcepolicies",
	}
	catalogSourceGVR = schema.GroupVersionResource{
		Group:    "operators.coreos.com",
		Version:  "v1alpha1",
		Resource: "catalogsources",
	}
)

// ResourceApplier pushes the generated resources to the cluster with
// server side apply, which keeps reruns idempotent.
type ResourceApplier struct {
	Log    clog.PluggableLoggerInterface
	Client dynamic.Interface
}

func NewApplier(log clog.PluggableLoggerInterface, client dynamic.Interface) ApplierInterface {
	return &ResourceApplier{Log: log, Client: client}
}

func (o *ResourceApplier) ApplyICSP(ctx context.Context, obj *unstructured.Unstructured) error {
	_, err := o.Client.Resource(icspGVR).Apply(ctx, obj.GetName(), obj, metav1.ApplyOptions{FieldManager: fieldManager, Force: true})
	if err != nil {
		return fmt.Errorf("applying ImageContentSourcePolicy %s: %w", obj.GetName(), err)
	}
	o.Log.Info(emoji.CheckMarkButton+" ImageContentSourcePolicy %s applied", obj.GetName())
	return nil
}

func (o *ResourceApplier) ApplyCatalogSource(ctx context.Context, obj *unstructured.Unstructured) error {
	_, err := o.Client.Resource(catalogSourceGVR).Namespace(obj.GetNamespace()).Apply(ctx, obj.GetName(), obj, metav1.ApplyOptions{FieldManager: fieldManager, Force: true})
	if err != nil {
		return fmt.Errorf("applying CatalogSource %s/%s: %w", obj.GetNamespace(), obj.GetName(), err)
	}
	o.Log.Info(emoji.CheckMarkButton+" CatalogSource %s/%s applied", obj.GetNamespace(), obj.GetName())
	return nil
}
