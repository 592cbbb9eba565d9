package validation

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"bookforge/core"

	"github.com/fatih/color"
)

// StepStatus is the outcome of one startup check.
type StepStatus int

const (
	StepPending StepStatus = iota
	StepRunning
	StepPassed
	StepFailed
	StepWarning
	StepSkipped
)

var stepStatusNames = [...]string{
	StepPending: "pending",
	StepRunning: "running",
	StepPassed:  "passed",
	StepFailed:  "failed",
	StepWarning: "warning",
	StepSkipped: "skipped",
}

func (s StepStatus) String() string {
	if s < 0 || int(s) >= len(stepStatusNames) {
		return "unknown"
	}
	return stepStatusNames[s]
}

// stepStyle is how a finished step is drawn on the terminal.
type stepStyle struct {
	icon  string
	color *color.Color
}

var stepStyles = map[StepStatus]stepStyle{
	StepPassed:  {"✓", color.New(color.FgGreen)},
	StepFailed:  {"✗", color.New(color.FgRed)},
	StepWarning: {"!", color.New(color.FgYellow)},
	StepSkipped: {"○", color.New(color.FgHiBlack)},
}

// ValidationStep records one executed (or skipped) check.
type ValidationStep struct {
	Name    string
	Status  StepStatus
	Message string
	Error   error
	Latency time.Duration
}

// SuiteResult aggregates every step of a run.
type SuiteResult struct {
	Steps       []ValidationStep
	TotalSteps  int
	PassedSteps int
	FailedSteps int
	Warnings    int
	Duration    time.Duration
	Success     bool
}

// namedCheck pairs a display name with a ConfigValidator method.
type namedCheck struct {
	name string
	run  func() ValidationResult
}

// ValidationSuite runs the startup checks in order and prints coloured
// progress as it goes.
type ValidationSuite struct {
	output          io.Writer
	configValidator *ConfigValidator
	showProgress    bool
	failFast        bool
}

// NewValidationSuite creates a suite for cfg writing progress to stdout.
func NewValidationSuite(cfg *core.Config, locales []string) *ValidationSuite {
	return &ValidationSuite{
		output:          os.Stdout,
		configValidator: NewConfigValidator(cfg, locales),
		showProgress:    true,
	}
}

func (s *ValidationSuite) WithOutput(w io.Writer) *ValidationSuite {
	s.output = w
	return s
}

func (s *ValidationSuite) WithShowProgress(show bool) *ValidationSuite {
	s.showProgress = show
	return s
}

// WithFailFast skips the remaining checks after the first failure.
func (s *ValidationSuite) WithFailFast(failFast bool) *ValidationSuite {
	s.failFast = failFast
	return s
}

func (s *ValidationSuite) WithEnvPath(path string) *ValidationSuite {
	s.configValidator.WithEnvPath(path)
	return s
}

func (s *ValidationSuite) checks() []namedCheck {
	v := s.configValidator
	return []namedCheck{
		{"Environment File", v.CheckEnvFile},
		{"Listen Port", v.CheckPort},
		{"Page Sizes", v.CheckPageSizes},
		{"Default Locale", v.CheckLocale},
		{"Log Directory", v.CheckLogDir},
		{"Log Disk Space", v.CheckLogDiskSpace},
	}
}

// Validate runs every check and returns the aggregated result.
func (s *ValidationSuite) Validate() SuiteResult {
	start := time.Now()
	s.printf(color.New(color.FgCyan, color.Bold), "\n━━━ Bookforge Configuration Validation ━━━\n\n")

	checks := s.checks()
	steps := make([]ValidationStep, 0, len(checks))
	failed := false
	for _, c := range checks {
		var step ValidationStep
		if failed && s.failFast {
			step = ValidationStep{Name: c.name, Status: StepSkipped, Message: "Skipped after earlier failure"}
		} else {
			step = s.runStep(c)
			failed = failed || step.Status == StepFailed
		}
		s.printStep(step)
		steps = append(steps, step)
	}

	result := tally(steps, time.Since(start))
	s.printSummary(result)
	return result
}

func (s *ValidationSuite) runStep(c namedCheck) ValidationStep {
	if s.showProgress {
		fmt.Fprintf(s.output, "  ◌ %s...", c.name)
	}

	start := time.Now()
	r := c.run()
	step := ValidationStep{
		Name:    c.name,
		Status:  StepPassed,
		Message: r.Message,
		Error:   r.Error,
		Latency: time.Since(start),
	}
	if !r.Valid {
		step.Status = StepFailed
	} else if r.Warning {
		step.Status = StepWarning
	}
	return step
}

func tally(steps []ValidationStep, took time.Duration) SuiteResult {
	r := SuiteResult{Steps: steps, TotalSteps: len(steps), Duration: took}
	for _, step := range steps {
		switch step.Status {
		case StepPassed:
			r.PassedSteps++
		case StepFailed:
			r.FailedSteps++
		case StepWarning:
			r.Warnings++
		}
	}
	r.Success = r.FailedSteps == 0
	return r
}

func (s *ValidationSuite) printf(c *color.Color, format string, args ...any) {
	if s.showProgress {
		c.Fprintf(s.output, format, args...)
	}
}

func (s *ValidationSuite) printStep(step ValidationStep) {
	if !s.showProgress {
		return
	}
	style, ok := stepStyles[step.Status]
	if !ok {
		style = stepStyle{"?", color.New(color.FgWhite)}
	}
	dim := color.New(color.FgHiBlack)

	// \r overwrites the "running" line printed by runStep.
	fmt.Fprint(s.output, "\r")
	style.color.Fprintf(s.output, "  %s %s", style.icon, step.Name)
	if step.Message != "" {
		dim.Fprintf(s.output, " - %s", step.Message)
	}
	fmt.Fprintln(s.output)
	if step.Status == StepFailed && step.Error != nil {
		style.color.Fprintf(s.output, "    └─ %s\n", step.Error)
	}
}

func (s *ValidationSuite) printSummary(r SuiteResult) {
	if !s.showProgress {
		return
	}
	dim := color.New(color.FgHiBlack)
	banner, detail := color.New(color.FgGreen, color.Bold), fmt.Sprintf("(%d/%d checks passed in %v)",
		r.PassedSteps, r.TotalSteps, r.Duration.Round(time.Millisecond))
	word := "Passed"
	if !r.Success {
		banner = color.New(color.FgRed, color.Bold)
		detail = fmt.Sprintf("(%d passed, %d failed)", r.PassedSteps, r.FailedSteps)
		word = "Failed"
	}
	fmt.Fprintln(s.output)
	banner.Fprintf(s.output, "━━━ Validation %s ", word)
	dim.Fprint(s.output, detail)
	banner.Fprintln(s.output, " ━━━")
	fmt.Fprintln(s.output)
}

// GetErrors returns the errors of all failed steps in order.
func (r SuiteResult) GetErrors() []error {
	var errs []error
	for _, step := range r.Steps {
		if step.Error != nil {
			errs = append(errs, step.Error)
		}
	}
	return errs
}

// GetFirstError returns the first step error, or nil.
func (r SuiteResult) GetFirstError() error {
	if errs := r.GetErrors(); len(errs) > 0 {
		return errs[0]
	}
	return nil
}

// Summary renders the result on one line for the startup log.
func (r SuiteResult) Summary() string {
	outcome := "Passed"
	if !r.Success {
		outcome = "Failed"
	}
	parts := []string{fmt.Sprintf("%d/%d checks passed", r.PassedSteps, r.TotalSteps)}
	if r.FailedSteps > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", r.FailedSteps))
	}
	switch {
	case r.Warnings == 1:
		parts = append(parts, "1 warning")
	case r.Warnings > 1:
		parts = append(parts, fmt.Sprintf("%d warnings", r.Warnings))
	}
	return fmt.Sprintf("Validation %s: %s (took %v)", outcome, strings.Join(parts, ", "), r.Duration.Round(time.Millisecond))
}
