package errcode

// Exit codes returned by iib-setup. Each pipeline stage maps to its own
// code so callers (CI jobs mostly) can tell which stage aborted the run.
const (
	GenericErr = 1

	// EngineErr - local tooling or cluster connectivity check failed
	EngineErr = 2
	// ResolverErr - no matching index image could be resolved
	ResolverErr = 3
	// RegistryErr - token issuance, registry login or pull secret update failed
	RegistryErr = 4
	// ClusterResourcesErr - ICSP or CatalogSource generation/apply failed
	ClusterResourcesErr = 5
)
