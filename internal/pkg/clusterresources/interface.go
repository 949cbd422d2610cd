package clusterresources

import (
	"context"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

type GeneratorInterface interface {
	// ICSPGenerator renders the static brew mirror policy to the working
	// directory and returns it ready for apply.
	ICSPGenerator() (*unstructured.Unstructured, error)
	// CatalogSourceGenerator renders the catalog source referencing the
	// resolved index image and returns it ready for apply.
	CatalogSourceGenerator(indexImage string) (*unstructured.Unstructured, error)
}

type ApplierInterface interface {
	ApplyICSP(ctx context.Context, obj *unstructured.Unstructured) error
	ApplyCatalogSource(ctx context.Context, obj *unstructured.Unstructured) error
}
