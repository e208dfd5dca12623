package server

import (
	"fmt"
	"net/http"

	"github.com/kuronosukeeee/todo-api-v2/internal/config"
	"github.com/kuronosukeeee/todo-api-v2/internal/database"
	"github.com/kuronosukeeee/todo-api-v2/internal/service"
)

// Server wires the todo service and database health into the HTTP layer.
// It holds no per-request state; everything mutable lives in the store.
type Server struct {
	cfg   *config.Config
	todos service.TodoService
	db    database.Service
}

func New(cfg *config.Config, todos service.TodoService, db database.Service) *Server {
	return &Server{
		cfg:   cfg,
		todos: todos,
		db:    db,
	}
}

// HTTPServer builds the http.Server with the configured address and
// timeouts, routing to RegisterRoutes.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.HTTP.Port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  s.cfg.HTTP.IdleTimeout,
		ReadTimeout:  s.cfg.HTTP.ReadTimeout,
		WriteTimeout: s.cfg.HTTP.WriteTimeout,
	}
}
