// Package server serves the list/task REST API locally, mirroring the
// hosted mock API closely enough for the client to run against it.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"todolist/internal/logging"
	"todolist/internal/service"
	"todolist/internal/store/sqlite"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// Store is the persistence the server needs.
type Store interface {
	Lists(ctx context.Context) ([]service.List, error)
	List(ctx context.Context, listID string) (service.List, error)
	CreateList(ctx context.Context, title string) (service.List, error)
	UpdateList(ctx context.Context, listID, title string) (service.List, error)
	DeleteList(ctx context.Context, listID string) (service.List, error)
	Tasks(ctx context.Context, listID string) ([]service.Task, error)
	Task(ctx context.Context, listID, taskID string) (service.Task, error)
	CreateTask(ctx context.Context, listID string, in service.TaskInput) (service.Task, error)
	UpdateTask(ctx context.Context, listID, taskID string, t service.Task) (service.Task, error)
	DeleteTask(ctx context.Context, listID, taskID string) (service.Task, error)
}

// Server is the HTTP handler for the API.
type Server struct {
	store   Store
	log     *log.Logger
	metrics *metrics
	handler http.Handler
}

// New builds the handler tree: API routes, /metrics, request ids, logging
// and metrics middleware.
func New(store Store, logger *log.Logger) *Server {
	s := &Server{
		store: store,
		log:   logging.OrDiscard(logger),
	}
	reg := prometheus.NewRegistry()
	s.metrics = newMetrics(reg)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /list", s.handleListLists)
	mux.HandleFunc("POST /list", s.handleCreateList)
	mux.HandleFunc("GET /list/{listID}", s.handleGetList)
	mux.HandleFunc("PUT /list/{listID}", s.handleUpdateList)
	mux.HandleFunc("DELETE /list/{listID}", s.handleDeleteList)
	mux.HandleFunc("GET /list/{listID}/tasks", s.handleListTasks)
	mux.HandleFunc("POST /list/{listID}/tasks", s.handleCreateTask)
	mux.HandleFunc("GET /list/{listID}/tasks/{taskID}", s.handleGetTask)
	mux.HandleFunc("PUT /list/{listID}/tasks/{taskID}", s.handleUpdateTask)
	mux.HandleFunc("DELETE /list/{listID}/tasks/{taskID}", s.handleDeleteTask)
	mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	s.handler = requestIDMiddleware(s.loggingMiddleware(s.metrics.middleware(mux)))
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) handleListLists(w http.ResponseWriter, r *http.Request) {
	lists, err := s.store.Lists(r.Context())
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, lists)
}

func (s *Server) handleGetList(w http.ResponseWriter, r *http.Request) {
	l, err := s.store.List(r.Context(), r.PathValue("listID"))
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

type listBody struct {
	Title string `json:"title"`
}

func (s *Server) handleCreateList(w http.ResponseWriter, r *http.Request) {
	var body listBody
	if !decodeBody(w, r, &body) {
		return
	}
	l, err := s.store.CreateList(r.Context(), body.Title)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, l)
}

func (s *Server) handleUpdateList(w http.ResponseWriter, r *http.Request) {
	var body listBody
	if !decodeBody(w, r, &body) {
		return
	}
	l, err := s.store.UpdateList(r.Context(), r.PathValue("listID"), body.Title)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (s *Server) handleDeleteList(w http.ResponseWriter, r *http.Request) {
	l, err := s.store.DeleteList(r.Context(), r.PathValue("listID"))
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

// handleListTasks answers 404 both for a missing list and for a list
// without tasks; clients treat it as "no tasks yet".
func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	listID := r.PathValue("listID")
	if _, err := s.store.List(r.Context(), listID); err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	tasks, err := s.store.Tasks(r.Context(), listID)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	if len(tasks) == 0 {
		writeNotFound(w)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	t, err := s.store.Task(r.Context(), r.PathValue("listID"), r.PathValue("taskID"))
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var in service.TaskInput
	if !decodeBody(w, r, &in) {
		return
	}
	t, err := s.store.CreateTask(r.Context(), r.PathValue("listID"), in)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	var t service.Task
	if !decodeBody(w, r, &t) {
		return
	}
	updated, err := s.store.UpdateTask(r.Context(), r.PathValue("listID"), r.PathValue("taskID"), t)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	t, err := s.store.DeleteTask(r.Context(), r.PathValue("listID"), r.PathValue("taskID"))
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, sqlite.ErrNotFound) {
		writeNotFound(w)
		return
	}
	s.log.Error("store error", "method", r.Method, "path", r.URL.Path, "request_id", RequestID(r.Context()), "err", err)
	writeJSON(w, http.StatusInternalServerError, "Internal server error")
}

// writeNotFound answers like the hosted mock API: a JSON string body.
func writeNotFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, "Not found")
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	ct := r.Header.Get("Content-Type")
	if ct != "" && !strings.HasPrefix(ct, "application/json") {
		writeJSON(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return false
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
