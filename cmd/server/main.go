package main

import (
	"log"
	"os"
	"runtime/debug"

	"github.com/marinehub/fleetdesk/internal/server"
	"github.com/marinehub/fleetdesk/modules"
	"github.com/marinehub/fleetdesk/pkg/application"
	"github.com/marinehub/fleetdesk/pkg/configuration"
	"github.com/marinehub/fleetdesk/pkg/eventbus"
	"github.com/marinehub/fleetdesk/pkg/metrics"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			configuration.Use().Unload()
			log.Println(r)
			debug.PrintStack()
			os.Exit(1)
		}
	}()

	conf := configuration.Use()
	logger := conf.Logger()

	app := application.New(&application.ApplicationOptions{
		EventBus: eventbus.NewEventPublisher(logger),
		Logger:   logger,
	})
	if err := modules.Load(app, modules.BuiltInModules...); err != nil {
		log.Fatalf("failed to load modules: %v", err)
	}

	if conf.Prometheus.Enabled {
		app.RegisterControllers(metrics.NewPrometheusController(conf.Prometheus.Path))
	}

	serverInstance, err := server.Default(&server.DefaultOptions{
		Logger:        logger,
		Configuration: conf,
		Application:   app,
	})
	if err != nil {
		log.Fatalf("failed to create server: %v", err)
	}
	logger.Infof("listening on %s", conf.SocketAddress)
	if err := serverInstance.Start(conf.SocketAddress); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
