package domain

// UpdateTodoParams carries a partial update for a todo.
// Nil fields are left untouched; present fields replace the stored value
// after re-validation. There is no implicit merge: each attribute is
// applied on its own.
type UpdateTodoParams struct {
	Text      *string
	Completed *bool

	// LabelIDs, when present, replaces the full set of label
	// associations. An empty slice detaches every label.
	LabelIDs *[]string
}

// IsEmpty reports whether the update carries no fields at all.
func (p UpdateTodoParams) IsEmpty() bool {
	return p.Text == nil && p.Completed == nil && p.LabelIDs == nil
}

// UpdateLabelParams carries a partial update for a label.
type UpdateLabelParams struct {
	Name *string
}

// IsEmpty reports whether the update carries no fields at all.
func (p UpdateLabelParams) IsEmpty() bool {
	return p.Name == nil
}

// UpdateUserParams carries a partial update for a user.
type UpdateUserParams struct {
	Name *string
}

// IsEmpty reports whether the update carries no fields at all.
func (p UpdateUserParams) IsEmpty() bool {
	return p.Name == nil
}
