package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTodoText(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "valid", input: "buy milk", want: "buy milk"},
		{name: "preserves surrounding whitespace", input: "  buy milk  ", want: "  buy milk  "},
		{name: "single character", input: "x", want: "x"},
		{name: "whitespace only is non-empty", input: "   ", want: "   "},
		{name: "max length", input: strings.Repeat("a", 100), want: strings.Repeat("a", 100)},
		{name: "empty", input: "", wantErr: ErrTextRequired},
		{name: "too long", input: strings.Repeat("a", 101), wantErr: ErrTextTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := NewTodoText(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, text.String())
		})
	}
}

func TestNewTodoText_CountsRunes(t *testing.T) {
	// 100 multi-byte characters are within the limit even though the
	// byte length is far larger.
	text, err := NewTodoText(strings.Repeat("あ", 100))
	require.NoError(t, err)
	assert.Equal(t, 100, len([]rune(text.String())))

	_, err = NewTodoText(strings.Repeat("あ", 101))
	assert.ErrorIs(t, err, ErrTextTooLong)
}

func TestNewLabelName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "valid", input: "urgent", want: "urgent"},
		{name: "preserves surrounding whitespace", input: " urgent ", want: " urgent "},
		{name: "max length", input: strings.Repeat("n", 100), want: strings.Repeat("n", 100)},
		{name: "empty", input: "", wantErr: ErrNameRequired},
		{name: "too long", input: strings.Repeat("n", 101), wantErr: ErrNameTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, err := NewLabelName(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, name.String())
		})
	}
}

func TestNewUserName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "valid", input: "alice", want: "alice"},
		{name: "min length", input: strings.Repeat("u", 3), want: "uuu"},
		{name: "max length", input: strings.Repeat("u", 19), want: strings.Repeat("u", 19)},
		{name: "empty", input: "", wantErr: ErrUserNameTooShort},
		{name: "too short", input: "ab", wantErr: ErrUserNameTooShort},
		{name: "too long", input: strings.Repeat("u", 20), wantErr: ErrUserNameTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, err := NewUserName(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, name.String())
		})
	}
}

func TestNewUserName_CountsRunes(t *testing.T) {
	name, err := NewUserName(strings.Repeat("あ", 19))
	require.NoError(t, err)
	assert.Equal(t, 19, len([]rune(name.String())))

	_, err = NewUserName(strings.Repeat("あ", 20))
	assert.ErrorIs(t, err, ErrUserNameTooLong)
}
