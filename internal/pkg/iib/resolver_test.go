package iib

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clog "github.com/openshift-eng/iib-setup/internal/pkg/log"
)

const searchFixture = `{
  "raw_messages": [
    {
      "msg": {
        "index": {
          "ocp_version": "v4.14",
          "index_image": "registry-proxy.engineering.redhat.com/rh-osbs/iib:601234"
        }
      }
    },
    {
      "msg": {
        "index": {
          "ocp_version": "v4.13",
          "index_image": "registry-proxy.engineering.redhat.com/rh-osbs/iib:599962"
        }
      }
    },
    {
      "msg": {
        "index": {
          "ocp_version": "v4.13",
          "index_image": "registry-proxy.engineering.redhat.com/rh-osbs/iib:598100"
        }
      }
    }
  ]
}`

func newTestResolver(t *testing.T, handler http.HandlerFunc, ocpVersion string) (*IndexResolver, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	resolver := New(clog.New("error"), "openshift-gitops-operator-bundle", ocpVersion)
	resolver.Endpoint = server.URL
	resolver.Client = server.Client()
	return resolver, server
}

func TestResolver_Resolve(t *testing.T) {
	t.Run("Testing Resolve : should rewrite the first match onto the brew registry", func(t *testing.T) {
		var gotQuery map[string][]string
		resolver, _ := newTestResolver(t, func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.Query()
			w.Write([]byte(searchFixture))
		}, "v4.13")

		res, err := resolver.Resolve(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "brew.registry.redhat.io/rh-osbs/iib:599962", res)
		assert.Equal(t, []string{searchTopic}, gotQuery["topic"])
		assert.Equal(t, []string{"openshift-gitops-operator-bundle"}, gotQuery["contains"])
	})

	t.Run("Testing Resolve : no entry for the requested version should fail", func(t *testing.T) {
		resolver, _ := newTestResolver(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(searchFixture))
		}, "v4.99")

		_, err := resolver.Resolve(context.Background())
		require.Error(t, err)
		assert.True(t, errors.Is(err, &NoMatchError{}))
	})

	t.Run("Testing Resolve : literal null index image should fail", func(t *testing.T) {
		resolver, _ := newTestResolver(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"raw_messages":[{"msg":{"index":{"ocp_version":"v4.13","index_image":"null"}}}]}`))
		}, "v4.13")

		_, err := resolver.Resolve(context.Background())
		require.Error(t, err)
		assert.True(t, errors.Is(err, &NoMatchError{}))
	})

	t.Run("Testing Resolve : empty message list should fail", func(t *testing.T) {
		resolver, _ := newTestResolver(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"raw_messages":[]}`))
		}, "v4.13")

		_, err := resolver.Resolve(context.Background())
		require.Error(t, err)
		assert.True(t, errors.Is(err, &NoMatchError{}))
	})

	t.Run("Testing Resolve : digest pinned index image should fail", func(t *testing.T) {
		resolver, _ := newTestResolver(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"raw_messages":[{"msg":{"index":{"ocp_version":"v4.13","index_image":"registry-proxy.engineering.redhat.com/rh-osbs/iib@sha256:6b92ff247f0cb27e885ba5b2c9a9a2d24902056d61af2cd1f24f6279c80e3159"}}}]}`))
		}, "v4.13")

		_, err := resolver.Resolve(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "digest pinned")
	})

	t.Run("Testing Resolve : digest next to the tag should be dropped", func(t *testing.T) {
		resolver, _ := newTestResolver(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"raw_messages":[{"msg":{"index":{"ocp_version":"v4.13","index_image":"registry-proxy.engineering.redhat.com/rh-osbs/iib:599962@sha256:6b92ff247f0cb27e885ba5b2c9a9a2d24902056d61af2cd1f24f6279c80e3159"}}}]}`))
		}, "v4.13")

		res, err := resolver.Resolve(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "brew.registry.redhat.io/rh-osbs/iib:599962", res)
	})

	t.Run("Testing Resolve : http error status should fail", func(t *testing.T) {
		resolver, _ := newTestResolver(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}, "v4.13")

		_, err := resolver.Resolve(context.Background())
		require.Error(t, err)
		assert.False(t, errors.Is(err, &NoMatchError{}))
	})

	t.Run("Testing Resolve : malformed body should fail", func(t *testing.T) {
		resolver, _ := newTestResolver(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json`))
		}, "v4.13")

		_, err := resolver.Resolve(context.Background())
		require.Error(t, err)
	})
}
