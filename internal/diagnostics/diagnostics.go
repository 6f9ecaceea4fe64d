package diagnostics

import (
	"fmt"

	"github.com/funvibe/minitt/internal/token"
)

type ErrorCode string

const (
	// Lexer
	ErrL001 ErrorCode = "L001" // illegal character
	ErrL002 ErrorCode = "L002" // malformed number

	// Parser
	ErrP001 ErrorCode = "P001" // unexpected token
	ErrP002 ErrorCode = "P002" // unterminated construct
	ErrP003 ErrorCode = "P003" // statement expected
	ErrP004 ErrorCode = "P004" // illegal token reached the parser
	ErrP005 ErrorCode = "P005" // recursion depth limit exceeded

	// Elaboration
	ErrE001 ErrorCode = "E001" // duplicate global name
	ErrE002 ErrorCode = "E002" // store capacity exhausted
	ErrE003 ErrorCode = "E003" // symbol table exhausted

	// Kernel
	ErrK001 ErrorCode = "K001" // type mismatch
	ErrK002 ErrorCode = "K002" // variable out of scope
	ErrK003 ErrorCode = "K003" // expected a function type
	ErrK004 ErrorCode = "K004" // expected a sort
	ErrK005 ErrorCode = "K005" // unknown constant
	ErrK006 ErrorCode = "K006" // typing context overflow
	ErrK007 ErrorCode = "K007" // term or level store overflow

	// CLI / session
	ErrC001 ErrorCode = "C001" // file could not be read
)

// DiagnosticError is the single error currency of the frontend and CLI.
// Kernel errors are mapped into K-coded diagnostics at the pipeline boundary.
type DiagnosticError struct {
	Code    ErrorCode
	Message string
	File    string
	Line    int
	Column  int
}

func (e *DiagnosticError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%d:%d: [%s] %s", e.File, e.Line, e.Column, e.Code, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("%d:%d: [%s] %s", e.Line, e.Column, e.Code, e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// NewError builds a diagnostic anchored at a token position.
func NewError(code ErrorCode, tok token.Token, format string, args ...interface{}) *DiagnosticError {
	return &DiagnosticError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Line:    tok.Line,
		Column:  tok.Column,
	}
}

// NewFileError builds a diagnostic with no source position.
func NewFileError(code ErrorCode, file string, format string, args ...interface{}) *DiagnosticError {
	return &DiagnosticError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		File:    file,
	}
}
