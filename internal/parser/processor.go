package parser

import (
	"github.com/funvibe/minitt/internal/ast"
	"github.com/funvibe/minitt/internal/diagnostics"
	"github.com/funvibe/minitt/internal/lexer"
	"github.com/funvibe/minitt/internal/pipeline"
)

type ParserProcessor struct{}

func (pp *ParserProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.TokenStream == nil {
		ctx.TokenStream = lexer.Tokenize(ctx.SourceCode)
	}

	parser := New(ctx.TokenStream, ctx)
	ctx.AstRoot = parser.ParseProgram()

	if ctx.AstRoot != nil {
		ctx.AstRoot.File = ctx.FilePath
	}

	// Ensure all errors have file path set
	for _, err := range ctx.Errors {
		if err.File == "" {
			err.File = ctx.FilePath
		}
	}

	return ctx
}

// Parse is a convenience for tests and embedders: tokenize and parse source,
// returning the program and any diagnostics.
func Parse(source string) (*ast.Program, []*diagnostics.DiagnosticError) {
	ctx := &pipeline.PipelineContext{SourceCode: source}
	ctx.TokenStream = lexer.Tokenize(source)
	p := New(ctx.TokenStream, ctx)
	return p.ParseProgram(), ctx.Errors
}
