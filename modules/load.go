package modules

import (
	"github.com/marinehub/fleetdesk/modules/access"
	"github.com/marinehub/fleetdesk/modules/core"
	"github.com/marinehub/fleetdesk/modules/review"
	"github.com/marinehub/fleetdesk/pkg/application"
)

var BuiltInModules = []application.Module{
	core.NewModule(),
	access.NewModule(),
	review.NewModule(),
}

func Load(app application.Application, externalModules ...application.Module) error {
	for _, module := range externalModules {
		if err := module.Register(app); err != nil {
			return err
		}
	}
	return nil
}
