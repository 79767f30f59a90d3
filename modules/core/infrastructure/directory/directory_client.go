package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/marinehub/fleetdesk/modules/core/domain/aggregates/principal"
	"github.com/marinehub/fleetdesk/pkg/serrors"
)

// Client talks to the external user directory. A 403 from the directory
// means the session is no longer valid, which callers surface as a distinct
// re-login prompt.
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

type userResponse struct {
	Role          string   `json:"role"`
	Organization  string   `json:"organization"`
	Organizations []string `json:"organizations"`
}

func (c *Client) FindUser(ctx context.Context, bearer, subjectID string) (*principal.Principal, error) {
	endpoint := fmt.Sprintf("%s/user/%s", c.baseURL, url.PathEscape(subjectID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "directory: build request")
	}
	req.Header.Set("Authorization", "Bearer "+bearer)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "directory: user lookup")
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

	var payload userResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.Wrap(err, "directory: decode user")
	}
	role, err := principal.NewRole(payload.Role)
	if err != nil {
		return nil, errors.Wrapf(err, "directory: user %s", subjectID)
	}
	return &principal.Principal{
		SubjectID:           subjectID,
		Role:                role,
		PrimaryOrganization: payload.Organization,
		Organizations:       payload.Organizations,
	}, nil
}
