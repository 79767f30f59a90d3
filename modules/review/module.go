package review

import (
	"github.com/marinehub/fleetdesk/modules/review/infrastructure/backendapi"
	"github.com/marinehub/fleetdesk/modules/review/presentation/controllers"
	"github.com/marinehub/fleetdesk/modules/review/services"
	"github.com/marinehub/fleetdesk/pkg/application"
	"github.com/marinehub/fleetdesk/pkg/configuration"
	"github.com/marinehub/fleetdesk/pkg/metrics"
)

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Register(app application.Application) error {
	conf := configuration.Use()

	app.RegisterServices(
		services.NewReviewService(
			backendapi.NewClient(conf.Backend.BaseURL, conf.Backend.Timeout),
			app.EventPublisher(),
			app.Logger(),
		),
	)

	app.RegisterControllers(
		controllers.NewReviewAPIController(app),
	)

	app.EventPublisher().Subscribe(func(event services.ObjectApproved) {
		metrics.ObjectsApproved.WithLabelValues(string(event.ObjectType)).Inc()
	})
	app.EventPublisher().Subscribe(func(event services.ObjectDeclined) {
		metrics.ObjectsDeclined.WithLabelValues(string(event.ObjectType)).Inc()
	})
	return nil
}

func (m *Module) Name() string {
	return "review"
}
