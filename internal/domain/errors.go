package domain

import "errors"

// Domain errors returned by validation and repository implementations.

var (
	// ErrTodoNotFound indicates the specified todo does not exist.
	ErrTodoNotFound = errors.New("todo not found")

	// ErrLabelNotFound indicates the specified label does not exist.
	ErrLabelNotFound = errors.New("label not found")

	// ErrUserNotFound indicates the specified user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrTextRequired indicates a todo text was empty.
	ErrTextRequired = errors.New("todo text is required")

	// ErrTextTooLong indicates a todo text exceeded the length limit.
	ErrTextTooLong = errors.New("todo text too long")

	// ErrNameRequired indicates a label name was empty.
	ErrNameRequired = errors.New("label name is required")

	// ErrNameTooLong indicates a label name exceeded the length limit.
	ErrNameTooLong = errors.New("label name too long")

	// ErrUserNameTooShort indicates a user name was below the minimum length.
	ErrUserNameTooShort = errors.New("user name too short")

	// ErrUserNameTooLong indicates a user name exceeded the length limit.
	ErrUserNameTooLong = errors.New("user name too long")

	// ErrDuplicatedUserName indicates another user already holds the name.
	ErrDuplicatedUserName = errors.New("user name already taken")

	// ErrInvalidID indicates the provided ID format is invalid.
	ErrInvalidID = errors.New("invalid ID format")
)
