package backendapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/marinehub/fleetdesk/modules/finance/domain/tariff"
	"github.com/marinehub/fleetdesk/modules/review/domain/insuredobject"
	"github.com/marinehub/fleetdesk/pkg/serrors"
)

// Client wraps the insured-object backend API. The backend owns all state;
// this client never caches.
type Client struct {
	baseURL string
	http    *http.Client
	now     func() time.Time
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		now:     time.Now,
	}
}

// ListPending fetches every object still awaiting a decision. Records with
// missing fields are normalized, not rejected.
func (c *Client) ListPending(ctx context.Context, bearer string) ([]*insuredobject.PendingObject, error) {
	endpoint := c.baseURL + "/insured-object?status=" + url.QueryEscape("Pending,Rejected")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "backendapi: build list request")
	}
	req.Header.Set("Authorization", "Bearer "+bearer)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "backendapi: list insured objects")
	}
	defer func() { _ = resp.Body.Close() }()

	if err := c.checkStatus(resp); err != nil {
		return nil, err
	}

	var raws []insuredobject.RawRecord
	if err := json.NewDecoder(resp.Body).Decode(&raws); err != nil {
		return nil, errors.Wrap(err, "backendapi: decode insured objects")
	}

	now := c.now()
	objects := make([]*insuredobject.PendingObject, 0, len(raws))
	for _, raw := range raws {
		objects = append(objects, insuredobject.Normalize(raw, now))
	}
	return objects, nil
}

type overridePart struct {
	Method string  `json:"method"`
	Value  float64 `json:"value"`
}

type approveBody struct {
	Premium overridePart `json:"premium"`
	OwnRisk overridePart `json:"ownRisk"`
}

func wirePart(cfg tariff.Config) overridePart {
	part := overridePart{Method: string(cfg.Method)}
	switch cfg.Method {
	case tariff.MethodPercentage:
		part.Value = cfg.Percentage
	default:
		part.Value = cfg.FixedAmount
	}
	return part
}

// Approve submits the approval. A nil override sends no body and the
// backend applies the object's stored defaults.
func (c *Client) Approve(ctx context.Context, bearer, id string, override *insuredobject.DecisionOverride) error {
	var body io.Reader
	if override != nil {
		payload, err := json.Marshal(approveBody{
			Premium: wirePart(override.Premium),
			OwnRisk: wirePart(override.OwnRisk),
		})
		if err != nil {
			return errors.Wrap(err, "backendapi: marshal approve body")
		}
		body = bytes.NewReader(payload)
	}
	return c.put(ctx, bearer, fmt.Sprintf("/insured-object/%s/approve", url.PathEscape(id)), body)
}

func (c *Client) Decline(ctx context.Context, bearer, id, reason string) error {
	payload, err := json.Marshal(map[string]string{"reason": reason})
	if err != nil {
		return errors.Wrap(err, "backendapi: marshal decline body")
	}
	return c.put(ctx, bearer, fmt.Sprintf("/insured-object/%s/decline", url.PathEscape(id)), bytes.NewReader(payload))
}

func (c *Client) put(ctx context.Context, bearer, path string, body io.Reader) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+path, body)
	if err != nil {
		return errors.Wrap(err, "backendapi: build request")
	}
	req.Header.Set("Authorization", "Bearer "+bearer)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "backendapi: PUT %s", path)
	}
	defer func() { _ = resp.Body.Close() }()
	return c.checkStatus(resp)
}

func (c *Client) checkStatus(resp *http.Response) error {
	if resp.StatusCode == http.StatusForbidden {
		return serrors.ErrAuthExpired
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return serrors.WithMeta(serrors.ErrUpstream, map[string]string{
			"status": strconv.Itoa(resp.StatusCode),
			"body":   string(body),
		})
	}
	return nil
}
