package access

import (
	"github.com/marinehub/fleetdesk/modules/access/infrastructure/orgconfig"
	"github.com/marinehub/fleetdesk/modules/access/presentation/controllers"
	"github.com/marinehub/fleetdesk/modules/access/services"
	"github.com/marinehub/fleetdesk/pkg/application"
	"github.com/marinehub/fleetdesk/pkg/configuration"
)

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Register(app application.Application) error {
	conf := configuration.Use()

	app.RegisterServices(
		services.NewAccessService(
			orgconfig.NewClient(conf.Backend.BaseURL, conf.Backend.Timeout),
			app.Logger(),
		),
	)

	app.RegisterControllers(
		controllers.NewAccessAPIController(app),
	)
	return nil
}

func (m *Module) Name() string {
	return "access"
}
