package domain

// Length limits for user-supplied text fields, counted in Unicode code points.
const (
	MaxTextLength = 100
	MaxNameLength = 100

	MinUserNameLength = 3
	MaxUserNameLength = 19
)

// TodoText is a validated todo text value object (1-100 characters).
// The value is stored exactly as supplied; no normalization is applied.
type TodoText struct {
	value string
}

// NewTodoText creates a new TodoText, validating the input.
func NewTodoText(s string) (TodoText, error) {
	if s == "" {
		return TodoText{}, ErrTextRequired
	}

	if len([]rune(s)) > MaxTextLength {
		return TodoText{}, ErrTextTooLong
	}

	return TodoText{value: s}, nil
}

// String returns the text value.
func (t TodoText) String() string {
	return t.value
}

// LabelName is a validated label name value object (1-100 characters).
type LabelName struct {
	value string
}

// NewLabelName creates a new LabelName, validating the input.
func NewLabelName(s string) (LabelName, error) {
	if s == "" {
		return LabelName{}, ErrNameRequired
	}

	if len([]rune(s)) > MaxNameLength {
		return LabelName{}, ErrNameTooLong
	}

	return LabelName{value: s}, nil
}

// String returns the name value.
func (n LabelName) String() string {
	return n.value
}

// UserName is a validated user name value object (3-19 characters).
type UserName struct {
	value string
}

// NewUserName creates a new UserName, validating the input.
func NewUserName(s string) (UserName, error) {
	n := len([]rune(s))

	if n < MinUserNameLength {
		return UserName{}, ErrUserNameTooShort
	}

	if n > MaxUserNameLength {
		return UserName{}, ErrUserNameTooLong
	}

	return UserName{value: s}, nil
}

// String returns the name value.
func (n UserName) String() string {
	return n.value
}
