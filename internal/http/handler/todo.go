package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Flip451/t-rust-book-akifumi-sato/internal/domain"
	"github.com/Flip451/t-rust-book-akifumi-sato/internal/http/response"
)

// CreateTodo handles POST /todos.
func (s *Server) CreateTodo(w http.ResponseWriter, r *http.Request) {
	var req CreateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON")
		return
	}

	created, err := s.todoService.CreateTodo(r.Context(), req.Text, req.LabelIDs)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	response.Created(w, MapTodoToDTO(created))
}

// ListTodos handles GET /todos. A label_id query parameter narrows the
// result to todos carrying that label.
func (s *Server) ListTodos(w http.ResponseWriter, r *http.Request) {
	var labelID *string
	if v := r.URL.Query().Get("label_id"); v != "" {
		labelID = &v
	}

	todos, err := s.todoService.ListTodos(r.Context(), labelID)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	dtos := make([]TodoDTO, len(todos))
	for i, t := range todos {
		dtos[i] = MapTodoToDTO(t)
	}

	response.OK(w, dtos)
}

// GetTodo handles GET /todos/{todoID}.
func (s *Server) GetTodo(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "todoID")

	found, err := s.todoService.GetTodo(r.Context(), id)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	response.OK(w, MapTodoToDTO(found))
}

// UpdateTodo handles PATCH /todos/{todoID}. Only fields present in the
// body change; each is re-validated by the service.
func (s *Server) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "todoID")

	var req UpdateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON")
		return
	}

	updated, err := s.todoService.UpdateTodo(r.Context(), id, domain.UpdateTodoParams{
		Text:      req.Text,
		Completed: req.Completed,
		LabelIDs:  req.LabelIDs,
	})
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	response.OK(w, MapTodoToDTO(updated))
}

// DeleteTodo handles DELETE /todos/{todoID}.
func (s *Server) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "todoID")

	if err := s.todoService.DeleteTodo(r.Context(), id); err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	response.NoContent(w)
}
