package errors

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"bootcompare/domain/core"
)

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"app error", ConfigInvalid("bad"), CodeConfigInvalid},
		{"empty sample", core.NewEmptySampleError("dist_1"), CodeInvalidInput},
		{"degenerate", core.NewDegenerateVarianceError(1, 0.5), CodeDegenerateVariance},
		{"cancelled", context.Canceled, CodeCancelled},
		{"plain", stderrors.New("boom"), CodeInternalError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetCode(tt.err))
		})
	}
}

func TestWrapKeepsClassification(t *testing.T) {
	err := Wrap(core.NewDegenerateVarianceError(1, 0.5), "comparison failed")

	assert.True(t, IsAppError(err))
	assert.Equal(t, CodeDegenerateVariance, GetCode(err))
	assert.ErrorIs(t, err, core.ErrDegenerateVariance)
	assert.Contains(t, err.Error(), "comparison failed: degenerate variance")

	assert.Nil(t, Wrap(nil, "nothing"))
	assert.Nil(t, Wrapf(nil, "nothing %d", 1))
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 2, ExitCode(InvalidInput("x")))
	assert.Equal(t, 2, ExitCode(ConfigInvalid("x")))
	assert.Equal(t, 3, ExitCode(Wrapf(core.NewDegenerateVarianceError(0, 0.5), "run %d", 1)))
	assert.Equal(t, 1, ExitCode(stderrors.New("boom")))
}
