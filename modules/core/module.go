package core

import (
	"github.com/marinehub/fleetdesk/modules/core/infrastructure/directory"
	"github.com/marinehub/fleetdesk/modules/core/services"
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
		services.NewIdentityService(
			directory.NewClient(conf.Backend.BaseURL, conf.Backend.Timeout),
		),
	)
	return nil
}

func (m *Module) Name() string {
	return "core"
}
