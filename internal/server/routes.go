package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/kuronosukeeee/todo-api-v2/internal/domain"
	"github.com/kuronosukeeee/todo-api-v2/internal/repository"
	"github.com/kuronosukeeee/todo-api-v2/internal/service"
)

const todoBasePath = "/api/Todo"

func (s *Server) RegisterRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Only the configured front-end origin may call the API; it is allowed
	// any method and header.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{s.cfg.CORS.AllowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH", "HEAD"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", s.helloHandler)
	r.Get("/health", s.healthHandler)

	r.Route(todoBasePath, func(r chi.Router) {
		r.Get("/", s.getAllTodosHandler)
		r.Get("/incomplete", s.getIncompleteTodosHandler)
		r.Get("/completed", s.getCompletedTodosHandler)
		r.Post("/", s.createTodoHandler)
		r.Put("/{id}", s.updateTodoHandler)
		r.Delete("/{id}", s.deleteTodoHandler)
	})

	return r
}

func (s *Server) helloHandler(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Hello from Todo API!"})
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	healthStats := s.db.Health()
	if status, ok := healthStats["status"]; ok && status == "down" {
		respondWithJSON(w, http.StatusServiceUnavailable, healthStats)
		return
	}
	respondWithJSON(w, http.StatusOK, healthStats)
}

func (s *Server) getAllTodosHandler(w http.ResponseWriter, r *http.Request) {
	todos, err := s.todos.GetAll(r.Context())
	if err != nil {
		log.Printf("Error listing todos: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve todo items")
		return
	}
	respondWithJSON(w, http.StatusOK, todoList(todos))
}

func (s *Server) getIncompleteTodosHandler(w http.ResponseWriter, r *http.Request) {
	todos, err := s.todos.GetIncomplete(r.Context())
	if err != nil {
		log.Printf("Error listing incomplete todos: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve todo items")
		return
	}
	respondWithJSON(w, http.StatusOK, todoList(todos))
}

func (s *Server) getCompletedTodosHandler(w http.ResponseWriter, r *http.Request) {
	todos, err := s.todos.GetCompleted(r.Context())
	if err != nil {
		log.Printf("Error listing completed todos: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve todo items")
		return
	}
	respondWithJSON(w, http.StatusOK, todoList(todos))
}

func (s *Server) createTodoHandler(w http.ResponseWriter, r *http.Request) {
	item, ok := decodeTodoItem(w, r)
	if !ok {
		return
	}

	created, err := s.todos.Create(r.Context(), *item)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDescriptionTooLong):
			w.WriteHeader(http.StatusBadRequest)
		case errors.Is(err, service.ErrDueDateInPast):
			respondWithError(w, http.StatusBadRequest, err.Error())
		default:
			log.Printf("Error creating todo: %v", err)
			respondWithError(w, http.StatusInternalServerError, "Failed to create todo item")
		}
		return
	}

	w.Header().Set("Location", todoBasePath)
	respondWithJSON(w, http.StatusCreated, created)
}

func (s *Server) updateTodoHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}
	item, ok := decodeTodoItem(w, r)
	if !ok {
		return
	}

	err := s.todos.Update(r.Context(), id, *item)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrIDMismatch),
			errors.Is(err, service.ErrDescriptionTooLong):
			respondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, repository.ErrNotFound):
			respondWithError(w, http.StatusNotFound, "todo item not found")
		default:
			log.Printf("Error updating todo %d: %v", id, err)
			respondWithError(w, http.StatusInternalServerError, "Failed to update todo item")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) deleteTodoHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	err := s.todos.Delete(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "todo item not found")
		} else {
			log.Printf("Error deleting todo %d: %v", id, err)
			respondWithError(w, http.StatusInternalServerError, "Failed to delete todo item")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseIDParam(w http.ResponseWriter, r *http.Request) (uint, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		respondWithError(w, http.StatusBadRequest, "Invalid todo ID provided")
		return 0, false
	}
	return uint(id), true
}

func decodeTodoItem(w http.ResponseWriter, r *http.Request) (*domain.TodoItem, bool) {
	var item domain.TodoItem

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	err := decoder.Decode(&item)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		switch {
		case errors.As(err, &syntaxError):
			msg := fmt.Sprintf("Request body contains badly-formed JSON (at position %d)", syntaxError.Offset)
			respondWithError(w, http.StatusBadRequest, msg)
		case errors.Is(err, io.ErrUnexpectedEOF):
			respondWithError(w, http.StatusBadRequest, "Request body contains badly-formed JSON")
		case errors.As(err, &unmarshalTypeError):
			msg := fmt.Sprintf("Request body contains an invalid value for the %q field (at position %d)", unmarshalTypeError.Field, unmarshalTypeError.Offset)
			respondWithError(w, http.StatusBadRequest, msg)
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			respondWithError(w, http.StatusBadRequest, fmt.Sprintf("Request body contains unknown field %s", fieldName))
		case errors.Is(err, io.EOF):
			respondWithError(w, http.StatusBadRequest, "Request body must not be empty")
		default:
			log.Printf("Error decoding todo item request: %v", err)
			respondWithError(w, http.StatusInternalServerError, "Error processing request")
		}
		return nil, false
	}
	return &item, true
}

// todoList keeps empty results marshaling as [] instead of null.
func todoList(items []domain.TodoItem) []domain.TodoItem {
	if items == nil {
		return []domain.TodoItem{}
	}
	return items
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Error marshaling JSON response: %v", err)
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"Internal server error preparing response"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}
