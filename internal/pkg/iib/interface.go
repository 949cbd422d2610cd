package iib

import "context"

type ResolverInterface interface {
	// Resolve returns the brew registry reference of the most recent index
	// image built for the configured bundle and OCP version.
	Resolve(ctx context.Context) (string, error)
}
