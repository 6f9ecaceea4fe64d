package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/funvibe/minitt/internal/config"
	"github.com/funvibe/minitt/internal/diagnostics"
	"github.com/funvibe/minitt/internal/elaborator"
	"github.com/funvibe/minitt/internal/lexer"
	"github.com/funvibe/minitt/internal/parser"
	"github.com/funvibe/minitt/internal/pipeline"
)

const Version = "0.1.0"

type options struct {
	limitsPath string
	noColor    bool
	files      []string
}

// Entry is the command dispatcher behind cmd/minitt. It returns the process
// exit code instead of calling os.Exit so tests can drive it.
func Entry(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return 2
	}

	switch args[0] {
	case "version", "--version", "-v":
		fmt.Fprintf(stdout, "minitt %s\n", Version)
		return 0
	case "check":
		return runCheck(args[1:], stdout, stderr)
	case "help", "--help", "-h":
		usage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command: %s\n", args[0])
		usage(stderr)
		return 2
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: minitt <command> [arguments]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  check <file...>   type-check documents")
	fmt.Fprintln(w, "  version           print the version")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Flags for check:")
	fmt.Fprintln(w, "  --limits <file>   YAML file overriding store capacities")
	fmt.Fprintln(w, "  --no-color        disable colored diagnostics")
}

func parseOptions(args []string, stderr io.Writer) (options, bool) {
	var opts options
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--no-color":
			opts.noColor = true
		case arg == "--limits":
			if i+1 >= len(args) {
				fmt.Fprintln(stderr, "--limits requires a file argument")
				return opts, false
			}
			i++
			opts.limitsPath = args[i]
		case strings.HasPrefix(arg, "--limits="):
			opts.limitsPath = strings.TrimPrefix(arg, "--limits=")
		case strings.HasPrefix(arg, "-"):
			fmt.Fprintf(stderr, "unknown flag: %s\n", arg)
			return opts, false
		default:
			opts.files = append(opts.files, arg)
		}
	}
	return opts, true
}

func isSourceFile(path string) bool {
	for _, ext := range config.SourceFileExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

func runCheck(args []string, stdout, stderr io.Writer) int {
	opts, ok := parseOptions(args, stderr)
	if !ok {
		return 2
	}
	if len(opts.files) == 0 {
		fmt.Fprintln(stderr, "check: no input files")
		return 2
	}

	limits := config.DefaultLimits()
	if opts.limitsPath != "" {
		loaded, err := config.LoadLimits(opts.limitsPath)
		if err != nil {
			fmt.Fprintf(stderr, "%s\n", err)
			return 2
		}
		limits = loaded
	}

	color := !opts.noColor && istty(stderr)

	exit := 0
	for _, file := range opts.files {
		if !isSourceFile(file) {
			fmt.Fprintf(stderr, "warning: %s does not look like a source file\n", file)
		}
		if !checkFile(file, limits, color, stdout, stderr) {
			exit = 1
		}
	}
	return exit
}

// CheckSource runs the full pipeline over one in-memory document.
func CheckSource(filePath, source string, limits config.Limits) *pipeline.PipelineContext {
	ctx := pipeline.NewContext(filePath, source, limits)
	p := pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&elaborator.ElaborationProcessor{},
	)
	return p.Run(ctx)
}

func checkFile(file string, limits config.Limits, color bool, stdout, stderr io.Writer) bool {
	data, err := os.ReadFile(file)
	if err != nil {
		reportError(stderr, color, diagnostics.NewFileError(diagnostics.ErrC001, file, "%s", err))
		return false
	}

	ctx := CheckSource(file, string(data), limits)
	for _, res := range ctx.Results {
		fmt.Fprintf(stdout, "%s:%d: %s\n", file, res.Line, res.Output)
	}
	for _, derr := range ctx.Errors {
		reportError(stderr, color, derr)
	}
	return !ctx.HasErrors()
}

func reportError(stderr io.Writer, color bool, derr *diagnostics.DiagnosticError) {
	if color {
		fmt.Fprintf(stderr, "\x1b[31m%s\x1b[0m\n", derr.Error())
		return
	}
	fmt.Fprintf(stderr, "%s\n", derr.Error())
}

func istty(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
