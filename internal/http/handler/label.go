package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Flip451/t-rust-book-akifumi-sato/internal/domain"
	"github.com/Flip451/t-rust-book-akifumi-sato/internal/http/response"
)

// CreateLabel handles POST /labels.
func (s *Server) CreateLabel(w http.ResponseWriter, r *http.Request) {
	var req CreateLabelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON")
		return
	}

	created, err := s.labelService.CreateLabel(r.Context(), req.Name)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	response.Created(w, MapLabelToDTO(created))
}

// ListLabels handles GET /labels.
func (s *Server) ListLabels(w http.ResponseWriter, r *http.Request) {
	labels, err := s.labelService.ListLabels(r.Context())
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	dtos := make([]LabelDTO, len(labels))
	for i, l := range labels {
		dtos[i] = MapLabelToDTO(l)
	}

	response.OK(w, dtos)
}

// GetLabel handles GET /labels/{labelID}.
func (s *Server) GetLabel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "labelID")

	found, err := s.labelService.GetLabel(r.Context(), id)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	response.OK(w, MapLabelToDTO(found))
}

// UpdateLabel handles PATCH /labels/{labelID}.
func (s *Server) UpdateLabel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "labelID")

	var req UpdateLabelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON")
		return
	}

	updated, err := s.labelService.UpdateLabel(r.Context(), id, domain.UpdateLabelParams{
		Name: req.Name,
	})
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	response.OK(w, MapLabelToDTO(updated))
}

// DeleteLabel handles DELETE /labels/{labelID}.
func (s *Server) DeleteLabel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "labelID")

	if err := s.labelService.DeleteLabel(r.Context(), id); err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	response.NoContent(w)
}
