package domain

// Todo is an entity representing a single todo item.
// Identity is carried by ID alone; two todos with the same ID are the same
// entity regardless of their other fields. The ID is assigned once at
// creation and never changes.
type Todo struct {
	ID        string
	Text      string
	Completed bool

	// Labels attached to this todo. Membership is by label ID;
	// the slice carries full labels so callers can render names
	// without a second lookup.
	Labels []Label
}

// Label is an entity representing a label that can be attached to todos.
type Label struct {
	ID   string
	Name string
}

// HasLabel reports whether the todo carries the given label ID.
func (t *Todo) HasLabel(labelID string) bool {
	for _, l := range t.Labels {
		if l.ID == labelID {
			return true
		}
	}
	return false
}

// DetachLabel removes the given label from the todo if present.
func (t *Todo) DetachLabel(labelID string) {
	kept := t.Labels[:0]
	for _, l := range t.Labels {
		if l.ID != labelID {
			kept = append(kept, l)
		}
	}
	t.Labels = kept
}

// Clone returns a deep copy of the todo. Repositories hand out clones so
// internal state never escapes their synchronization boundary.
func (t *Todo) Clone() *Todo {
	c := *t
	c.Labels = make([]Label, len(t.Labels))
	copy(c.Labels, t.Labels)
	return &c
}

// Clone returns a copy of the label.
func (l *Label) Clone() *Label {
	c := *l
	return &c
}

// User is an entity representing an account that owns todos. Names are
// unique across users; uniqueness is enforced by the user service, not
// the stores.
type User struct {
	ID   string
	Name string
}

// Clone returns a copy of the user.
func (u *User) Clone() *User {
	c := *u
	return &c
}
