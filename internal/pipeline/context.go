package pipeline

import (
	"github.com/google/uuid"

	"github.com/funvibe/minitt/internal/ast"
	"github.com/funvibe/minitt/internal/config"
	"github.com/funvibe/minitt/internal/diagnostics"
	"github.com/funvibe/minitt/internal/kernel"
	"github.com/funvibe/minitt/internal/symbols"
	"github.com/funvibe/minitt/internal/term"
	"github.com/funvibe/minitt/internal/token"
	"github.com/funvibe/minitt/internal/universe"
)

// Processor is one stage of a checking run.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// Result is the outcome of one check/infer statement, already rendered for
// display.
type Result struct {
	Line   int
	Output string
}

// PipelineContext carries one document through the stages. Stages fill in
// their artifacts and append diagnostics; nothing here is shared across
// concurrent runs.
type PipelineContext struct {
	SessionID  uuid.UUID
	FilePath   string
	SourceCode string
	Limits     config.Limits

	TokenStream []token.Token
	AstRoot     *ast.Program

	// Kernel artifacts, populated by the elaboration stage.
	Symbols *symbols.Table
	Terms   *term.Store
	Levels  *universe.Store
	Env     *kernel.Environment

	Results []Result
	Errors  []*diagnostics.DiagnosticError
}

// NewContext creates a pipeline context for one source document.
func NewContext(filePath, source string, limits config.Limits) *PipelineContext {
	return &PipelineContext{
		SessionID:  uuid.New(),
		FilePath:   filePath,
		SourceCode: source,
		Limits:     limits,
	}
}

// HasErrors reports whether any stage recorded a diagnostic.
func (ctx *PipelineContext) HasErrors() bool { return len(ctx.Errors) > 0 }
