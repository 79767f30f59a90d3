package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	accessservices "github.com/marinehub/fleetdesk/modules/access/services"
	coreservices "github.com/marinehub/fleetdesk/modules/core/services"
	"github.com/marinehub/fleetdesk/modules/finance/domain/tariff"
	"github.com/marinehub/fleetdesk/modules/review/domain/insuredobject"
	"github.com/marinehub/fleetdesk/modules/review/presentation/mappers"
	"github.com/marinehub/fleetdesk/modules/review/presentation/viewmodels"
	"github.com/marinehub/fleetdesk/modules/review/services"
	"github.com/marinehub/fleetdesk/pkg/application"
	"github.com/marinehub/fleetdesk/pkg/composables"
	"github.com/marinehub/fleetdesk/pkg/httpapi"
	"github.com/marinehub/fleetdesk/pkg/metrics"
	"github.com/marinehub/fleetdesk/pkg/middleware"
	"github.com/marinehub/fleetdesk/pkg/serrors"
)

type ReviewAPIController struct {
	app      application.Application
	review   *services.ReviewService
	identity *coreservices.IdentityService
	basePath string
}

func NewReviewAPIController(app application.Application) application.Controller {
	return &ReviewAPIController{
		app:      app,
		review:   app.Service(services.ReviewService{}).(*services.ReviewService),
		identity: app.Service(coreservices.IdentityService{}).(*coreservices.IdentityService),
		basePath: "/api/review",
	}
}

func (c *ReviewAPIController) Key() string {
	return c.basePath
}

func (c *ReviewAPIController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(middleware.Authenticate(c.identity))

	router.HandleFunc("/objects", c.List).Methods(http.MethodGet)
	router.HandleFunc("/stats", c.Stats).Methods(http.MethodGet)
	router.HandleFunc("/objects/{id}/approve", c.Approve).Methods(http.MethodPost)
	router.HandleFunc("/objects/{id}/decline", c.Decline).Methods(http.MethodPost)
	router.HandleFunc("/objects/bulk-approve", c.BulkApprove).Methods(http.MethodPost)
	router.HandleFunc("/objects/bulk-decline", c.BulkDecline).Methods(http.MethodPost)
	router.HandleFunc("/selection", c.Select).Methods(http.MethodPut)
	router.HandleFunc("/selection", c.ClearSelection).Methods(http.MethodDelete)
	router.HandleFunc("/selection/{id}", c.Deselect).Methods(http.MethodDelete)
}

// reachable returns the working set narrowed to the caller's organizations.
func (c *ReviewAPIController) reachable(r *http.Request) ([]*insuredobject.PendingObject, error) {
	p, err := composables.UsePrincipal(r.Context())
	if err != nil {
		return nil, serrors.ErrAuthExpired
	}
	objects := c.review.Objects()
	return accessservices.FilterReachable(p, objects, func(obj *insuredobject.PendingObject) string {
		return obj.Organization
	}), nil
}

func (c *ReviewAPIController) List(w http.ResponseWriter, r *http.Request) {
	bearer, _ := composables.UseBearer(r.Context())
	if r.URL.Query().Get("refresh") == "true" {
		if err := c.review.Refresh(r.Context(), bearer); err != nil {
			_ = httpapi.WriteErr(w, err)
			return
		}
	}

	objects, err := c.reachable(r)
	if err != nil {
		_ = httpapi.WriteErr(w, err)
		return
	}

	query := services.ListQuery{
		Search:       r.URL.Query().Get("search"),
		ObjectType:   insuredobject.ObjectType(r.URL.Query().Get("objectType")),
		Organization: r.URL.Query().Get("organization"),
		SortBy:       services.SortField(r.URL.Query().Get("sortBy")),
		Descending:   r.URL.Query().Get("desc") == "true",
	}
	objects = services.ApplyQuery(objects, query)

	selected := map[string]bool{}
	for _, id := range c.review.SelectedIDs() {
		selected[id] = true
	}
	items := make([]*viewmodels.InsuredObject, 0, len(objects))
	for _, obj := range objects {
		items = append(items, mappers.ObjectToViewModel(obj, selected[obj.ID]))
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, &viewmodels.ObjectList{Objects: items, Total: len(items)})
}

func (c *ReviewAPIController) Stats(w http.ResponseWriter, r *http.Request) {
	objects, err := c.reachable(r)
	if err != nil {
		_ = httpapi.WriteErr(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, services.ComputeStats(objects, time.Now()))
}

type tariffOverrideDTO struct {
	Method string  `json:"method"`
	Value  float64 `json:"value"`
}

type approveRequestDTO struct {
	Premium *tariffOverrideDTO `json:"premium"`
	OwnRisk *tariffOverrideDTO `json:"ownRisk"`
}

func (dto *tariffOverrideDTO) toConfig() (tariff.Config, error) {
	method, err := tariff.NewMethod(dto.Method)
	if err != nil {
		return tariff.Config{}, serrors.Validation("unknown tariff method %q", dto.Method)
	}
	if method == tariff.MethodPercentage {
		return tariff.Percentage(dto.Value), nil
	}
	return tariff.Fixed(dto.Value), nil
}

func decodeOverride(r *http.Request) (*insuredobject.DecisionOverride, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, serrors.Validation("unreadable request body")
	}
	if len(body) == 0 {
		return nil, nil
	}
	var dto approveRequestDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return nil, serrors.Validation("malformed approval body")
	}
	if dto.Premium == nil && dto.OwnRisk == nil {
		return nil, nil
	}
	if dto.Premium == nil || dto.OwnRisk == nil {
		return nil, serrors.Validation("override must carry both premium and own risk")
	}
	premium, err := dto.Premium.toConfig()
	if err != nil {
		return nil, err
	}
	ownRisk, err := dto.OwnRisk.toConfig()
	if err != nil {
		return nil, err
	}
	return &insuredobject.DecisionOverride{Premium: premium, OwnRisk: ownRisk}, nil
}

func (c *ReviewAPIController) Approve(w http.ResponseWriter, r *http.Request) {
	bearer, _ := composables.UseBearer(r.Context())
	id := mux.Vars(r)["id"]

	override, err := decodeOverride(r)
	if err != nil {
		_ = httpapi.WriteErr(w, err)
		return
	}
	if err := c.review.Approve(r.Context(), bearer, id, override); err != nil {
		_ = httpapi.WriteErr(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]string{"id": id, "status": string(insuredobject.StatusApproved)})
}

type declineRequestDTO struct {
	Reason string `json:"reason"`
}

func (c *ReviewAPIController) Decline(w http.ResponseWriter, r *http.Request) {
	bearer, _ := composables.UseBearer(r.Context())
	id := mux.Vars(r)["id"]

	var dto declineRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil && !errors.Is(err, io.EOF) {
		_ = httpapi.WriteErr(w, serrors.Validation("malformed decline body"))
		return
	}
	if err := c.review.Decline(r.Context(), bearer, id, dto.Reason); err != nil {
		_ = httpapi.WriteErr(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]string{"id": id, "status": string(insuredobject.StatusRejected)})
}

type bulkRequestDTO struct {
	IDs []string `json:"ids"`
}

func (c *ReviewAPIController) BulkApprove(w http.ResponseWriter, r *http.Request) {
	bearer, _ := composables.UseBearer(r.Context())

	var dto bulkRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil && !errors.Is(err, io.EOF) {
		_ = httpapi.WriteErr(w, serrors.Validation("malformed bulk body"))
		return
	}
	ids := dto.IDs
	if len(ids) == 0 {
		ids = c.review.SelectedIDs()
	}
	if len(ids) == 0 {
		_ = httpapi.WriteErr(w, serrors.Validation("no objects selected"))
		return
	}
	report, err := c.review.BulkApprove(r.Context(), bearer, ids)
	if err != nil {
		_ = httpapi.WriteErr(w, err)
		return
	}
	metrics.BulkApproveFailures.Add(float64(len(report.Failed)))
	_ = httpapi.WriteJSON(w, http.StatusOK, mappers.BulkReportToViewModel(report))
}

func (c *ReviewAPIController) BulkDecline(w http.ResponseWriter, r *http.Request) {
	_ = httpapi.WriteErr(w, c.review.BulkDecline())
}

func (c *ReviewAPIController) Select(w http.ResponseWriter, r *http.Request) {
	var dto bulkRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		_ = httpapi.WriteErr(w, serrors.Validation("malformed selection body"))
		return
	}
	c.review.Select(dto.IDs...)
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string][]string{"selected": c.review.SelectedIDs()})
}

func (c *ReviewAPIController) Deselect(w http.ResponseWriter, r *http.Request) {
	c.review.Deselect(mux.Vars(r)["id"])
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string][]string{"selected": c.review.SelectedIDs()})
}

func (c *ReviewAPIController) ClearSelection(w http.ResponseWriter, r *http.Request) {
	c.review.ClearSelection()
	_ = httpapi.WriteJSON(w, http.StatusNoContent, nil)
}
