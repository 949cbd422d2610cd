package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dpotapov/go-spnego"
	"github.com/google/uuid"

	"github.com/openshift-eng/iib-setup/internal/pkg/emoji"
	clog "github.com/openshift-eng/iib-setup/internal/pkg/log"
)

// Credentials is a short lived username/password pair minted by the token
// service. It only ever lives in process memory and the temporary auth file.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type token struct {
	Description string      `json:"description"`
	Credentials Credentials `json:"credentials"`
}

type tokenRequest struct {
	Description string `json:"description"`
}

// TokenClient talks to the employee token manager. The endpoint only accepts
// Negotiate (Kerberos) authenticated calls, hence the spnego transport.
type TokenClient struct {
	Log      clog.PluggableLoggerInterface
	Client   *http.Client
	Endpoint string
}

func NewTokenClient(log clog.PluggableLoggerInterface) *TokenClient {
	return &TokenClient{
		Log:      log,
		Client:   &http.Client{Transport: &spnego.Transport{}, Timeout: tokenTimeout},
		Endpoint: tokenEndpoint,
	}
}

func (o *TokenClient) FetchCredentials(ctx context.Context) (Credentials, error) {
	o.Log.Info(emoji.Key+" requesting a token from %s", o.Endpoint)

	body, err := json.Marshal(tokenRequest{Description: "iib-setup-" + uuid.NewString()})
	if err != nil {
		return Credentials{}, fmt.Errorf("encoding token request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.Endpoint, bytes.NewReader(body))
	if err != nil {
		return Credentials{}, fmt.Errorf("preparing token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.Client.Do(req)
	if err != nil {
		return Credentials{}, fmt.Errorf("requesting token: %w\nobtain one manually with:\n  %s", err, manualTokenCommand)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		// keep the service's own error text, it names the kerberos principal issue
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Credentials{}, fmt.Errorf("requesting token: unexpected status %s: %s\nobtain one manually with:\n  %s", resp.Status, strings.TrimSpace(string(body)), manualTokenCommand)
	}

	var tokens []token
	if err := json.NewDecoder(resp.Body).Decode(&tokens); err != nil {
		return Credentials{}, fmt.Errorf("decoding token response: %w", err)
	}
	if len(tokens) == 0 {
		return Credentials{}, fmt.Errorf("token service returned no tokens\nobtain one manually with:\n  %s", manualTokenCommand)
	}

	// the service returns every live token for the caller, newest last
	creds := tokens[len(tokens)-1].Credentials
	if creds.Username == "" || creds.Password == "" {
		return Credentials{}, fmt.Errorf("token response carries empty credentials")
	}
	return creds, nil
}
