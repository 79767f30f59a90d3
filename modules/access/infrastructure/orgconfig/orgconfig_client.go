package orgconfig

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/marinehub/fleetdesk/modules/access/domain/fieldconfig"
	"github.com/marinehub/fleetdesk/pkg/serrors"
)

// Client fetches per-organization field configuration from the config store.
// Absence of a configuration is not an error: the caller falls back to
// permissive defaults.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type organizationResponse struct {
	Organizations []struct {
		Name        string             `json:"name"`
		FieldConfig fieldconfig.Config `json:"fieldConfig"`
	} `json:"organizations"`
}

func (c *Client) FindByName(ctx context.Context, bearer, name string) (fieldconfig.Config, error) {
	endpoint := c.baseURL + "/organization?name=" + url.QueryEscape(name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "orgconfig: build request")
	}
	req.Header.Set("Authorization", "Bearer "+bearer)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "orgconfig: fetch organization")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusForbidden {
		return nil, serrors.ErrAuthExpired
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, serrors.WithMeta(serrors.ErrUpstream, map[string]string{
			"status": strconv.Itoa(resp.StatusCode),
			"body":   string(body),
		})
	}

	var payload organizationResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.Wrap(err, "orgconfig: decode organization")
	}
	for _, org := range payload.Organizations {
		if org.Name == name {
			return org.FieldConfig, nil
		}
	}
	// No match is a permissive default, not a failure.
	return nil, nil
}
