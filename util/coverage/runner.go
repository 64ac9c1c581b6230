// Package coverage runs the test suite under coverage instrumentation and
// reports the result as a console table and an HTML page.
package coverage

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/eventum/eventum/logger"

	"github.com/alessio/shellescape"
	"github.com/pkg/errors"
	"golang.org/x/tools/cover"
)

const (
	DefaultReportDir = "tmp/coverage"
	profileName      = "coverage.out"
	filteredName     = "coverage.filtered.out"
	htmlName         = "index.html"
)

// Options configures a Runner. Zero values take the defaults noted per field.
type Options struct {
	// BaseDir is the module root, default ".".
	BaseDir string
	// Packages are the package patterns to test, default ./...
	Packages []string
	// Omit overrides DefaultOmit when non-nil.
	Omit []string
	// ReportDir is relative to BaseDir unless absolute, default tmp/coverage.
	ReportDir string
	// JSONPath, when set, receives a JSON summary.
	JSONPath string
	// GoBin is the go command, default "go".
	GoBin string

	Stdout io.Writer
	Stderr io.Writer
}

// Runner executes the coverage workflow.
type Runner struct {
	opts Options

	commandContext func(ctx context.Context, name string, args ...string) *exec.Cmd
}

func NewRunner(opts Options) *Runner {
	if opts.BaseDir == "" {
		opts.BaseDir = "."
	}
	if len(opts.Packages) == 0 {
		opts.Packages = []string{"./..."}
	}
	if opts.Omit == nil {
		opts.Omit = DefaultOmit
	}
	if opts.ReportDir == "" {
		opts.ReportDir = DefaultReportDir
	}
	if !filepath.IsAbs(opts.ReportDir) {
		opts.ReportDir = filepath.Join(opts.BaseDir, opts.ReportDir)
	}
	if abs, err := filepath.Abs(opts.ReportDir); err == nil {
		opts.ReportDir = abs
	}
	if opts.GoBin == "" {
		opts.GoBin = "go"
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	return &Runner{opts: opts, commandContext: exec.CommandContext}
}

// HTMLPath is where the HTML report is written.
func (r *Runner) HTMLPath() string {
	return filepath.Join(r.opts.ReportDir, htmlName)
}

// Run tests the packages with coverage, prints the summary, writes the HTML
// (and optional JSON) report and finally erases the collected profiles.
// A failing test run is logged and does not stop the reporting.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	if err := os.MkdirAll(r.opts.ReportDir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create report dir")
	}
	profilePath := filepath.Join(r.opts.ReportDir, profileName)
	filteredPath := filepath.Join(r.opts.ReportDir, filteredName)
	defer r.erase(profilePath, filteredPath)

	if err := r.runTests(ctx, profilePath); err != nil {
		logger.Warning("test run failed, reporting coverage anyway:", err)
	}

	profiles, err := cover.ParseProfiles(profilePath)
	if err != nil {
		return nil, errors.Wrap(err, "parse coverage profile")
	}
	modulePath, err := ModulePath(r.opts.BaseDir)
	if err != nil {
		logger.Warning("module path unknown, reporting full import paths:", err)
	}
	profiles = Filter(profiles, modulePath, r.opts.Omit)
	if err := saveProfile(filteredPath, profiles); err != nil {
		return nil, err
	}

	summary := Summarize(profiles, modulePath)
	fmt.Fprint(r.opts.Stdout, "\n\nCoverage Report:\n\n")
	if err := WriteText(r.opts.Stdout, summary); err != nil {
		return nil, errors.Wrap(err, "write summary")
	}

	if err := r.run(ctx, "tool", "cover", "-html="+filteredPath, "-o", r.HTMLPath()); err != nil {
		return summary, errors.Wrap(err, "write html report")
	}
	fmt.Fprintf(r.opts.Stdout, "HTML version: %s\n", r.HTMLPath())

	if r.opts.JSONPath != "" {
		if err := writeJSONFile(r.opts.JSONPath, summary); err != nil {
			return summary, err
		}
	}
	return summary, nil
}

func (r *Runner) runTests(ctx context.Context, profilePath string) error {
	args := []string{"test", "-covermode=count", "-coverpkg=./...", "-coverprofile=" + profilePath}
	args = append(args, r.opts.Packages...)
	return r.run(ctx, args...)
}

func (r *Runner) run(ctx context.Context, args ...string) error {
	logger.Info("running:", shellescape.QuoteCommand(append([]string{r.opts.GoBin}, args...)))
	cmd := r.commandContext(ctx, r.opts.GoBin, args...)
	cmd.Dir = r.opts.BaseDir
	cmd.Stdout = r.opts.Stdout
	cmd.Stderr = r.opts.Stderr
	return cmd.Run()
}

func (r *Runner) erase(paths ...string) {
	for _, p := range paths {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			logger.Warning("erase coverage data:", err)
		}
	}
}

func saveProfile(path string, profiles []*cover.Profile) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "save filtered profile")
	}
	defer f.Close()
	return errors.Wrap(WriteProfile(f, profiles), "save filtered profile")
}

func writeJSONFile(path string, s *Summary) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "write json summary")
	}
	defer f.Close()
	return errors.Wrap(WriteJSON(f, s), "write json summary")
}
