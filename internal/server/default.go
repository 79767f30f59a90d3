package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/marinehub/fleetdesk/pkg/application"
	"github.com/marinehub/fleetdesk/pkg/configuration"
	"github.com/marinehub/fleetdesk/pkg/httpapi"
	"github.com/marinehub/fleetdesk/pkg/middleware"
	"github.com/marinehub/fleetdesk/pkg/server"
)

type DefaultOptions struct {
	Logger        *logrus.Logger
	Configuration *configuration.Configuration
	Application   application.Application
}

func Default(options *DefaultOptions) (*server.HTTPServer, error) {
	app := options.Application

	middlewares := []mux.MiddlewareFunc{
		middleware.WithLogger(options.Logger),
		middleware.RequestParams(),
	}
	app.RegisterMiddleware(middlewares...)

	notFound := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = httpapi.WriteError(w, http.StatusNotFound, "NOT_FOUND", "resource not found", nil)
	})
	methodNotAllowed := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = httpapi.WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed", nil)
	})

	return server.NewHTTPServer(app, notFound, methodNotAllowed), nil
}
