package iib

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/openshift-eng/iib-setup/internal/pkg/emoji"
	"github.com/openshift-eng/iib-setup/internal/pkg/image"
	clog "github.com/openshift-eng/iib-setup/internal/pkg/log"
)

// searchResponse models the raw message history returned by datagrepper.
// Only the fields the resolver filters on are mapped.
type searchResponse struct {
	RawMessages []rawMessage `json:"raw_messages"`
}

type rawMessage struct {
	Msg messageBody `json:"msg"`
}

type messageBody struct {
	Index indexBuild `json:"index"`
}

type indexBuild struct {
	OCPVersion string `json:"ocp_version"`
	IndexImage string `json:"index_image"`
}

type IndexResolver struct {
	Log        clog.PluggableLoggerInterface
	Client     *http.Client
	Endpoint   string
	Bundle     string
	OCPVersion string
}

func New(log clog.PluggableLoggerInterface, bundle, ocpVersion string) *IndexResolver {
	return &IndexResolver{
		Log:        log,
		Client:     &http.Client{Timeout: searchTimeout},
		Endpoint:   searchEndpoint,
		Bundle:     bundle,
		OCPVersion: ocpVersion,
	}
}

// Resolve queries the message history for index builds containing the
// configured bundle, filters them by OCP version and rewrites the first
// matching index image onto the brew registry, keeping the build tag.
func (o *IndexResolver) Resolve(ctx context.Context) (string, error) {
	o.Log.Info(emoji.LeftPointingMagnifyingGlass+" searching index images for bundle %s (ocp version %s)", o.Bundle, o.OCPVersion)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.Endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("preparing index image search request: %w", err)
	}
	q := url.Values{}
	q.Set("topic", searchTopic)
	q.Set("contains", o.Bundle)
	q.Set("rows_per_page", strconv.Itoa(rowsPerPage))
	q.Set("delta", strconv.Itoa(deltaSeconds))
	req.URL.RawQuery = q.Encode()

	resp, err := o.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("querying index image history: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("querying index image history: unexpected status %s", resp.Status)
	}

	var res searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return "", fmt.Errorf("decoding index image history: %w", err)
	}

	indexImage := ""
	for _, msg := range res.RawMessages {
		if msg.Msg.Index.OCPVersion == o.OCPVersion {
			indexImage = msg.Msg.Index.IndexImage
			break
		}
	}
	// datagrepper can serialize an absent field to the literal "null"
	if indexImage == "" || indexImage == "null" {
		return "", NoMatchErrorf("no matching index image found for bundle %s and ocp version %s", o.Bundle, o.OCPVersion)
	}
	o.Log.Debug("index image as built: %s", indexImage)

	spec, err := image.ParseRef(indexImage)
	if err != nil {
		return "", fmt.Errorf("parsing index image %q: %w", indexImage, err)
	}
	if spec.IsImageByDigestOnly() {
		return "", fmt.Errorf("index image %q is digest pinned, it carries no build tag to rewrite", indexImage)
	}
	if spec.IsImageByDigest() {
		o.Log.Debug("dropping digest %s, only the build tag is carried over", spec.Digest)
	}
	o.Log.Debug("index build component %s tag %s", spec.ComponentName(), spec.Tag)

	resolved := brewIIBRepository + ":" + spec.Tag
	o.Log.Info(emoji.CheckMarkButton+" resolved index image %s", resolved)
	return resolved, nil
}
