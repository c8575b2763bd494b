package run_test

import (
	"testing"

	"paperround/internal/core/domain/model/run"
	"paperround/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Transitions(t *testing.T) {
	next, err := run.NotStarted.Start()
	require.NoError(t, err)
	assert.Equal(t, run.Active, next)

	next, err = next.Finish()
	require.NoError(t, err)
	assert.Equal(t, run.Finished, next)

	_, err = run.Finished.Start()
	assert.ErrorIs(t, err, errs.ErrPreconditionFailed)

	_, err = run.NotStarted.Finish()
	assert.ErrorIs(t, err, errs.ErrPreconditionFailed)
}

func TestStatus_Validate(t *testing.T) {
	for _, s := range []run.Status{run.NotStarted, run.Active, run.Finished} {
		assert.NoError(t, s.Validate(), s.String())
	}
	assert.ErrorIs(t, run.Unknown.Validate(), errs.ErrValueIsInvalid)
	assert.ErrorIs(t, run.Status(42).Validate(), errs.ErrValueIsInvalid)
	assert.Equal(t, "unknown", run.Status(42).String())
	assert.Equal(t, "not_started", run.NotStarted.String())
}

func TestStatus_RequireActive(t *testing.T) {
	require.NoError(t, run.Active.RequireActive("deliver"))

	err := run.Finished.RequireActive("deliver")
	require.ErrorIs(t, err, errs.ErrPreconditionFailed)
	assert.Equal(t, "precondition failed: deliver: run is finished", err.Error())
}
