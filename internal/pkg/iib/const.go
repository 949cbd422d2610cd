package iib

import "time"

const (
	searchEndpoint = "https://datagrepper.engineering.redhat.com/raw"
	searchTopic    = "/topic/VirtualTopic.eng.ci.redhat-container-image.index.built"

	// brewIIBRepository is the authenticated mirror of the internal
	// registry-proxy hosting the freshly built index images.
	brewIIBRepository = "brew.registry.redhat.io/rh-osbs/iib"

	rowsPerPage = 20
	// deltaSeconds limits the message search window (~6 months)
	deltaSeconds = 15780000

	searchTimeout = 2 * time.Minute
)
