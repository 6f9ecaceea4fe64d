package pipeline

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/minitt/internal/config"
	"github.com/funvibe/minitt/internal/diagnostics"
)

type recordingProcessor struct {
	name string
	log  *[]string
	fail bool
}

func (rp *recordingProcessor) Process(ctx *PipelineContext) *PipelineContext {
	*rp.log = append(*rp.log, rp.name)
	if rp.fail {
		ctx.Errors = append(ctx.Errors, diagnostics.NewFileError(diagnostics.ErrC001, ctx.FilePath, "stage %s failed", rp.name))
	}
	return ctx
}

func TestPipelineRunsStagesInOrder(t *testing.T) {
	var log []string
	p := New(
		&recordingProcessor{name: "first", log: &log},
		&recordingProcessor{name: "second", log: &log},
		&recordingProcessor{name: "third", log: &log},
	)
	ctx := p.Run(NewContext("a.mtt", "", config.DefaultLimits()))
	require.NotNil(t, ctx)
	assert.Equal(t, []string{"first", "second", "third"}, log)
	assert.False(t, ctx.HasErrors())
}

func TestPipelineContinuesPastFailures(t *testing.T) {
	var log []string
	p := New(
		&recordingProcessor{name: "first", log: &log, fail: true},
		&recordingProcessor{name: "second", log: &log},
	)
	ctx := p.Run(NewContext("a.mtt", "", config.DefaultLimits()))
	assert.Equal(t, []string{"first", "second"}, log, "a failing stage must not stop the run")
	require.True(t, ctx.HasErrors())
	assert.Equal(t, diagnostics.ErrC001, ctx.Errors[0].Code)
	assert.Equal(t, "a.mtt", ctx.Errors[0].File)
}

func TestNewContext(t *testing.T) {
	limits := config.DefaultLimits()
	a := NewContext("a.mtt", "axiom T : Type", limits)
	b := NewContext("b.mtt", "", limits)

	assert.Equal(t, "a.mtt", a.FilePath)
	assert.Equal(t, "axiom T : Type", a.SourceCode)
	assert.Equal(t, limits, a.Limits)
	assert.NotEqual(t, uuid.Nil, a.SessionID)
	assert.NotEqual(t, a.SessionID, b.SessionID, "every context gets its own session id")
	assert.False(t, a.HasErrors())
}
