package application

import (
	"fmt"
	"reflect"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/marinehub/fleetdesk/pkg/eventbus"
)

// Controller is a HTTP unit registered on the root router.
type Controller interface {
	Key() string
	Register(r *mux.Router)
}

// Module is a self-contained feature bundle that wires its services and
// controllers into the application at startup.
type Module interface {
	Name() string
	Register(app Application) error
}

type Application interface {
	RegisterServices(services ...interface{})
	Service(service interface{}) interface{}
	RegisterControllers(controllers ...Controller)
	Controllers() []Controller
	RegisterMiddleware(middleware ...mux.MiddlewareFunc)
	Middleware() []mux.MiddlewareFunc
	EventPublisher() eventbus.EventBus
	Logger() *logrus.Logger
}

type ApplicationOptions struct {
	EventBus eventbus.EventBus
	Logger   *logrus.Logger
}

func New(opts *ApplicationOptions) Application {
	return &application{
		eventPublisher: opts.EventBus,
		logger:         opts.Logger,
		services:       map[reflect.Type]interface{}{},
		controllers:    map[string]Controller{},
	}
}

type application struct {
	eventPublisher eventbus.EventBus
	logger         *logrus.Logger
	services       map[reflect.Type]interface{}
	controllers    map[string]Controller
	middleware     []mux.MiddlewareFunc
}

// RegisterServices registers a new service in the application by its type
func (app *application) RegisterServices(services ...interface{}) {
	for _, service := range services {
		serviceType := reflect.TypeOf(service).Elem()
		app.services[serviceType] = service
	}
}

func (app *application) Service(service interface{}) interface{} {
	serviceType := reflect.TypeOf(service)
	svc, exists := app.services[serviceType]
	if !exists {
		panic(fmt.Sprintf("service %s not found", serviceType.Name()))
	}
	return svc
}

func (app *application) RegisterControllers(controllers ...Controller) {
	for _, c := range controllers {
		app.controllers[c.Key()] = c
	}
}

func (app *application) Controllers() []Controller {
	controllers := make([]Controller, 0, len(app.controllers))
	for _, c := range app.controllers {
		controllers = append(controllers, c)
	}
	return controllers
}

func (app *application) RegisterMiddleware(middleware ...mux.MiddlewareFunc) {
	app.middleware = append(app.middleware, middleware...)
}

func (app *application) Middleware() []mux.MiddlewareFunc {
	return app.middleware
}

func (app *application) EventPublisher() eventbus.EventBus {
	return app.eventPublisher
}

func (app *application) Logger() *logrus.Logger {
	return app.logger
}
