package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Is(t *testing.T) {
	err := New(CodeNotFound, "team %q not found", "owls")
	wrapped := fmt.Errorf("join: %w", err)

	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, wrapped, ErrNotFound)
	assert.NotErrorIs(t, wrapped, ErrForbidden)
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"coded", New(CodeInsufficientFunds, "broke"), CodeInsufficientFunds},
		{"wrapped coded", fmt.Errorf("buy: %w", ErrNotOwned), CodeNotOwned},
		{"plain", errors.New("disk full"), CodeUnknown},
		{"nil", nil, CodeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CodeOf(tt.err))
		})
	}
}

func TestMessageOf(t *testing.T) {
	cause := errors.New("rest 403")
	err := Wrap(CodeExternalActionFailure, cause, "could not assign role %s", "Golden Dev")

	assert.Equal(t, "could not assign role Golden Dev", MessageOf(err))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "disk full", MessageOf(errors.New("disk full")))
	assert.Equal(t, "", MessageOf(nil))
	assert.Equal(t, "EXTERNAL_ACTION_FAILURE: could not assign role Golden Dev: rest 403", err.Error())
}
