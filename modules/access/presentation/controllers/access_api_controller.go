package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/marinehub/fleetdesk/modules/access/presentation/mappers"
	"github.com/marinehub/fleetdesk/modules/access/services"
	"github.com/marinehub/fleetdesk/modules/core/domain/aggregates/principal"
	coreservices "github.com/marinehub/fleetdesk/modules/core/services"
	"github.com/marinehub/fleetdesk/pkg/application"
	"github.com/marinehub/fleetdesk/pkg/composables"
	"github.com/marinehub/fleetdesk/pkg/httpapi"
	"github.com/marinehub/fleetdesk/pkg/middleware"
	"github.com/marinehub/fleetdesk/pkg/serrors"
)

type AccessAPIController struct {
	app      application.Application
	access   *services.AccessService
	identity *coreservices.IdentityService
	basePath string
}

func NewAccessAPIController(app application.Application) application.Controller {
	return &AccessAPIController{
		app:      app,
		access:   app.Service(services.AccessService{}).(*services.AccessService),
		identity: app.Service(coreservices.IdentityService{}).(*coreservices.IdentityService),
		basePath: "/api/access",
	}
}

func (c *AccessAPIController) Key() string {
	return c.basePath
}

func (c *AccessAPIController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(middleware.Authenticate(c.identity))

	router.HandleFunc("/field-config", c.FieldConfig).Methods(http.MethodGet)
}

func (c *AccessAPIController) FieldConfig(w http.ResponseWriter, r *http.Request) {
	p, err := composables.UsePrincipal(r.Context())
	if err != nil {
		_ = httpapi.WriteErr(w, serrors.ErrAuthExpired)
		return
	}
	bearer, _ := composables.UseBearer(r.Context())

	var selected *principal.Scope
	if scope, ok := principal.ParseScope(r.URL.Query().Get("scope")); ok {
		selected = &scope
	}

	eff, err := c.access.ResolveEffectiveFieldConfig(r.Context(), bearer, p, selected)
	if err != nil {
		_ = httpapi.WriteErr(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, mappers.FieldConfigToViewModel(eff))
}
