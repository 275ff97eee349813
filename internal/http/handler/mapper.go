package handler

import (
	"github.com/Flip451/t-rust-book-akifumi-sato/internal/domain"
)

// Wire DTOs. Handlers decode requests into these and encode domain
// entities back out through them so JSON field names stay decoupled from
// the domain structs.

// TodoDTO is the wire representation of a todo.
type TodoDTO struct {
	ID        string     `json:"id"`
	Text      string     `json:"text"`
	Completed bool       `json:"completed"`
	Labels    []LabelDTO `json:"labels"`
}

// LabelDTO is the wire representation of a label.
type LabelDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CreateTodoRequest is the POST /todos payload.
type CreateTodoRequest struct {
	Text     string   `json:"text"`
	LabelIDs []string `json:"label_ids"`
}

// UpdateTodoRequest is the PATCH /todos/{id} payload. Nil fields are
// absent from the request and leave the stored value untouched.
type UpdateTodoRequest struct {
	Text      *string   `json:"text"`
	Completed *bool     `json:"completed"`
	LabelIDs  *[]string `json:"label_ids"`
}

// CreateLabelRequest is the POST /labels payload.
type CreateLabelRequest struct {
	Name string `json:"name"`
}

// UpdateLabelRequest is the PATCH /labels/{id} payload.
type UpdateLabelRequest struct {
	Name *string `json:"name"`
}

// UserDTO is the wire representation of a user.
type UserDTO struct {
	ID   string `json:"user_id"`
	Name string `json:"user_name"`
}

// CreateUserRequest is the POST /users payload.
type CreateUserRequest struct {
	Name string `json:"user_name"`
}

// UpdateUserRequest is the PATCH /users/{id} payload.
type UpdateUserRequest struct {
	Name *string `json:"user_name"`
}

// MapTodoToDTO converts a domain todo to its wire representation.
func MapTodoToDTO(t *domain.Todo) TodoDTO {
	labels := make([]LabelDTO, len(t.Labels))
	for i, l := range t.Labels {
		labels[i] = LabelDTO{ID: l.ID, Name: l.Name}
	}
	return TodoDTO{
		ID:        t.ID,
		Text:      t.Text,
		Completed: t.Completed,
		Labels:    labels,
	}
}

// MapLabelToDTO converts a domain label to its wire representation.
func MapLabelToDTO(l *domain.Label) LabelDTO {
	return LabelDTO{ID: l.ID, Name: l.Name}
}

// MapUserToDTO converts a domain user to its wire representation.
func MapUserToDTO(u *domain.User) UserDTO {
	return UserDTO{ID: u.ID, Name: u.Name}
}
