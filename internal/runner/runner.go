package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"

	"github.com/datalab-labs/datalab/internal/project"
	"github.com/datalab-labs/datalab/internal/registry"
	"github.com/datalab-labs/datalab/internal/scaffold"
)

// entryFunc is the shell function every module entry script must define.
const entryFunc = "run"

// ErrEntryPointMissing is reported when the entry script loads but does
// not define a run function.
var ErrEntryPointMissing = errors.New(`entry point missing: function "run" not defined`)

// Runner executes module entry scripts with an in-process shell
// interpreter. Stdout and Stderr default to the process streams. Each
// call builds a fresh interpreter, so no state is shared between runs or
// with the rest of the program.
type Runner struct {
	Stdout io.Writer
	Stderr io.Writer
}

// Result reports the outcome of one module run. Script failures are
// captured in Reason rather than surfaced as a Go error.
type Result struct {
	OK     bool
	Reason error
}

// Run loads modules/<name>/run.sh and invokes its run function.
//
// Loading executes the file's top-level statements. Any parse error,
// execution error, or non-zero exit from the script is written to Stderr
// and returned inside the Result; Run only returns a Go error for
// problems outside the script itself (module missing, interpreter
// construction).
func (r *Runner) Run(ctx context.Context, root, name string) (res *Result, err error) {
	if err := registry.ValidateName(name); err != nil {
		return nil, err
	}

	entry := filepath.Join(project.CodeDir(root, name), scaffold.EntryFile)
	src, readErr := os.ReadFile(entry)
	if readErr != nil {
		if errors.Is(readErr, fs.ErrNotExist) {
			return nil, fmt.Errorf("module %q: %w", name, registry.ErrModuleNotFound)
		}
		return nil, fmt.Errorf("reading %s: %w", entry, readErr)
	}

	stderr := r.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	stdout := r.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	// The entry script is externally authored; a crash in the
	// interpreter must not take down the host process.
	defer func() {
		if p := recover(); p != nil {
			fmt.Fprintf(stderr, "panic while running %s: %v\n%s", name, p, debug.Stack())
			res = &Result{Reason: fmt.Errorf("panic while running %s: %v", name, p)}
			err = nil
		}
	}()

	parser := syntax.NewParser()
	prog, parseErr := parser.Parse(bytes.NewReader(src), scaffold.EntryFile)
	if parseErr != nil {
		fmt.Fprintf(stderr, "%v\n", parseErr)
		return &Result{Reason: fmt.Errorf("parsing %s: %w", scaffold.EntryFile, parseErr)}, nil
	}

	sh, newErr := interp.New(
		interp.Dir(filepath.Dir(entry)),
		interp.Env(expand.ListEnviron(os.Environ()...)),
		interp.StdIO(nil, stdout, stderr),
	)
	if newErr != nil {
		return nil, fmt.Errorf("creating interpreter: %w", newErr)
	}

	if runErr := sh.Run(ctx, prog); runErr != nil {
		return &Result{Reason: r.reportScriptError(stderr, "loading", runErr)}, nil
	}

	// The entry point must exist in the interpreter after loading, not
	// in the entry file's text: sourced files may define it.
	check, parseCheckErr := parser.Parse(strings.NewReader("type "+entryFunc+" >/dev/null 2>&1\n"), "entry-check")
	if parseCheckErr != nil {
		return nil, fmt.Errorf("building entry check: %w", parseCheckErr)
	}
	if checkErr := sh.Run(ctx, check); checkErr != nil {
		fmt.Fprintf(stderr, "%v\n", ErrEntryPointMissing)
		return &Result{Reason: ErrEntryPointMissing}, nil
	}

	call, callErr := parser.Parse(strings.NewReader(entryFunc+"\n"), "entry")
	if callErr != nil {
		return nil, fmt.Errorf("building entry call: %w", callErr)
	}

	if runErr := sh.Run(ctx, call); runErr != nil {
		return &Result{Reason: r.reportScriptError(stderr, "running", runErr)}, nil
	}

	return &Result{OK: true}, nil
}

// reportScriptError writes a full diagnostic for a script failure to
// stderr and returns the condensed reason.
func (r *Runner) reportScriptError(stderr io.Writer, phase string, err error) error {
	var status interp.ExitStatus
	if errors.As(err, &status) {
		reason := fmt.Errorf("%s %s: exit status %d", phase, scaffold.EntryFile, uint8(status))
		fmt.Fprintf(stderr, "%v\n", reason)
		return reason
	}
	fmt.Fprintf(stderr, "%v\n", err)
	return fmt.Errorf("%s %s: %w", phase, scaffold.EntryFile, err)
}
