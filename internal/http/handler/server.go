package handler

import (
	"github.com/go-chi/chi/v5"

	"github.com/Flip451/t-rust-book-akifumi-sato/internal/application/label"
	"github.com/Flip451/t-rust-book-akifumi-sato/internal/application/todo"
	"github.com/Flip451/t-rust-book-akifumi-sato/internal/application/user"
)

// Server holds the application services the HTTP handlers dispatch to.
// Services are injected at construction; handlers carry no other state.
type Server struct {
	todoService  *todo.Service
	labelService *label.Service
	userService  *user.Service
}

// NewServer creates a new HTTP handler server.
func NewServer(todoService *todo.Service, labelService *label.Service, userService *user.Service) *Server {
	return &Server{
		todoService:  todoService,
		labelService: labelService,
		userService:  userService,
	}
}

// Routes registers every API route on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Route("/todos", func(r chi.Router) {
		r.Post("/", s.CreateTodo)
		r.Get("/", s.ListTodos)
		r.Route("/{todoID}", func(r chi.Router) {
			r.Get("/", s.GetTodo)
			r.Patch("/", s.UpdateTodo)
			r.Delete("/", s.DeleteTodo)
		})
	})

	r.Route("/labels", func(r chi.Router) {
		r.Post("/", s.CreateLabel)
		r.Get("/", s.ListLabels)
		r.Route("/{labelID}", func(r chi.Router) {
			r.Get("/", s.GetLabel)
			r.Patch("/", s.UpdateLabel)
			r.Delete("/", s.DeleteLabel)
		})
	})

	r.Route("/users", func(r chi.Router) {
		r.Post("/", s.CreateUser)
		r.Get("/", s.ListUsers)
		r.Route("/{userID}", func(r chi.Router) {
			r.Get("/", s.GetUser)
			r.Patch("/", s.UpdateUser)
			r.Delete("/", s.DeleteUser)
		})
	})
}
