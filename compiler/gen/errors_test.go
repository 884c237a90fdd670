package gen

import (
	"errors"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordError(t *testing.T) {
	pos := token.Position{Filename: "command.go", Line: 4, Column: 6}
	tests := []struct {
		name string
		err  *RecordError
		want string
	}{
		{
			name: "record",
			err:  NewRecordError("Command", "", "struct has no fields", nil),
			want: "buildergen: record Command: struct has no fields",
		},
		{
			name: "field with cause",
			err:  NewRecordError("Command", "Args", "", errors.New("function types are not supported")),
			want: "buildergen: record Command field Args: function types are not supported",
		},
		{
			name: "position",
			err:  NewRecordError("Command", "Build", "field name collides with the generated Builder method", nil).At(pos),
			want: "command.go:4:6: buildergen: record Command field Build: field name collides with the generated Builder method",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
			assert.ErrorIs(t, tt.err, ErrInvalidRecord)
			assert.True(t, IsRecordError(tt.err))
		})
	}

	t.Run("unwraps the cause", func(t *testing.T) {
		cause := errors.New("package time is not imported")
		err := NewRecordError("Command", "Timeout", "", cause)
		assert.ErrorIs(t, err, cause)
		assert.True(t, IsRecordError(errors.Join(errors.New("other"), err)))
		assert.False(t, IsRecordError(cause))
	})
}

func TestConfigError(t *testing.T) {
	err := NewConfigError("Suffix", "1x", "suffix must continue a Go identifier")
	assert.Equal(t, "buildergen: option Suffix=1x: suffix must continue a Go identifier", err.Error())
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.True(t, IsConfigError(err))

	err = NewConfigError("Logger", nil, "logger cannot be nil")
	assert.Equal(t, "buildergen: option Logger: logger cannot be nil", err.Error())
	assert.False(t, IsConfigError(errors.New("other")))
}

func TestGenerationError(t *testing.T) {
	cause := errors.New("permission denied")
	err := NewGenerationError("write", "command_builder.go", "", cause)
	assert.Equal(t, "buildergen: write command_builder.go: permission denied", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrGenerationFailed)
	assert.True(t, IsGenerationError(err))

	err = NewGenerationError("format", "command_builder.go", "unformatted source written to command_builder.go.error", nil)
	assert.Equal(t, "buildergen: format command_builder.go: unformatted source written to command_builder.go.error", err.Error())
	assert.False(t, IsGenerationError(cause))
}
