// Package linear provides a synchronous, line-oriented renderer for reports,
// status tables and step timings.
package linear

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/cagesync/internal/core/domain"
	"go.trai.ch/cagesync/internal/core/ports"
	"go.trai.ch/cagesync/internal/ui/output"
	"go.trai.ch/cagesync/internal/ui/style"
)

var _ ports.Renderer = (*Renderer)(nil)

// Renderer implements ports.Renderer. Reports and tables go to stdout; step
// timings go to stderr and are only printed in verbose mode.
type Renderer struct {
	stdout  *termenv.Output
	stderr  *termenv.Output
	verbose bool
	plain   bool

	mu    sync.Mutex
	steps map[string]*stepState // spanID -> step
}

type stepState struct {
	name      string
	startTime time.Time
	depth     int
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithVerbose enables step timing output.
func WithVerbose(verbose bool) Option {
	return func(r *Renderer) {
		r.verbose = verbose
	}
}

// WithPlain disables all styling.
func WithPlain() Option {
	return func(r *Renderer) {
		r.plain = true
	}
}

// NewRenderer creates a Renderer. Nil writers default to stdout and stderr.
func NewRenderer(stdout, stderr io.Writer, opts ...Option) *Renderer {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	r := &Renderer{steps: make(map[string]*stepState)}
	for _, opt := range opts {
		opt(r)
	}

	if r.plain {
		r.stdout, r.stderr = output.Plain(stdout), output.Plain(stderr)
	} else {
		r.stdout, r.stderr = output.New(stdout), output.New(stderr)
	}
	return r
}

// OnStepStart records a step and prints its start in verbose mode.
func (r *Renderer) OnStepStart(spanID, parentID, name string, startTime time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	depth := 0
	if parent, ok := r.steps[parentID]; ok {
		depth = parent.depth + 1
	}
	r.steps[spanID] = &stepState{name: name, startTime: startTime, depth: depth}

	if !r.verbose {
		return
	}
	prefix := r.stderr.String(fmt.Sprintf("[%s]", name)).Faint().String()
	_, _ = fmt.Fprintf(r.stderr, "%s%s Starting...\n", indent(depth), prefix)
}

// OnStepComplete prints the step duration and outcome in verbose mode.
func (r *Renderer) OnStepComplete(spanID string, endTime time.Time, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	step, ok := r.steps[spanID]
	if !ok {
		return
	}
	delete(r.steps, spanID)

	if !r.verbose {
		return
	}

	duration := endTime.Sub(step.startTime).Round(time.Millisecond)
	prefix := fmt.Sprintf("%s[%s]", indent(step.depth), step.name)
	if err != nil {
		_, _ = fmt.Fprintf(r.stderr, "%s %s Failed after %v: %v\n",
			prefix, r.paint(r.stderr, style.Cross, style.Red), duration, err)
		return
	}
	_, _ = fmt.Fprintf(r.stderr, "%s %s Completed in %v\n",
		prefix, r.paint(r.stderr, style.Check, style.Green), duration)
}

// RenderReport prints one line per action followed by a summary.
func (r *Renderer) RenderReport(report *domain.SyncReport) {
	if report == nil {
		return
	}

	header := "Sync"
	if report.PassID != "" {
		header += " " + report.PassID
	}
	if report.DryRun {
		header += " (dry run)"
	}
	if r.verbose && report.Duration > 0 {
		header += fmt.Sprintf(" in %v", report.Duration.Round(time.Millisecond))
	}
	_, _ = fmt.Fprintln(r.stdout, r.stdout.String(header).Bold().String())

	actions := report.Actions()
	if len(actions) == 0 {
		_, _ = fmt.Fprintf(r.stdout, "  %s Up to date (%d bundles)\n",
			r.paint(r.stdout, style.Check, style.Green), len(report.Entries))
		return
	}

	width := 0
	for _, e := range actions {
		width = max(width, len(e.Name))
	}

	for _, e := range actions {
		icon, color := style.Action(e)
		line := fmt.Sprintf("  %s %-*s  %-6s", r.paint(r.stdout, icon, color), width, e.Name, e.Action)
		switch {
		case e.Failed():
			line += "  failed: " + e.Err.Error()
		case e.Action != domain.ActionDelete:
			line += "  " + e.Status.String()
		}
		_, _ = fmt.Fprintln(r.stdout, strings.TrimRight(line, " "))
	}

	_, _ = fmt.Fprintln(r.stdout, summary(report))
}

// RenderStatus prints the per-bundle status table in registry order.
func (r *Renderer) RenderStatus(registry *domain.Registry) {
	if registry == nil || registry.Len() == 0 {
		_, _ = fmt.Fprintln(r.stdout, "No bundles. Run 'cagesync sync' first.")
		return
	}

	tw := tabwriter.NewWriter(r.stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "NAME\tPOINTS\tEDITS\tPEAK\tTRANSLATE\tSTATUS")
	for b := range registry.All() {
		icon, color := style.Status(b.Status)
		t := b.Params.Translate
		_, _ = fmt.Fprintf(tw, "%s\t%d\t%d\t%g\t%g,%g,%g\t%s %s\n",
			b.Name,
			b.Cage.Len(),
			b.Edits.Len(),
			b.Params.PeakDistance,
			t.X, t.Y, t.Z,
			r.paint(r.stdout, icon, color),
			b.Status,
		)
	}
	_ = tw.Flush()
}

func (r *Renderer) paint(out *termenv.Output, text string, color lipgloss.Color) string {
	return out.String(text).Foreground(out.Color(string(color))).String()
}

func summary(report *domain.SyncReport) string {
	parts := []string{
		fmt.Sprintf("%d created", report.Count(domain.ActionCreate)),
		fmt.Sprintf("%d deleted", report.Count(domain.ActionDelete)),
		fmt.Sprintf("%d flagged", report.Count(domain.ActionFlag)),
	}
	if n := report.Count(domain.ActionReset); n > 0 {
		parts = append(parts, fmt.Sprintf("%d reset", n))
	}
	if n := report.Count(domain.ActionRebuild); n > 0 {
		parts = append(parts, fmt.Sprintf("%d rebuilt", n))
	}
	if n := len(report.Failures()); n > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", n))
	}
	parts = append(parts, fmt.Sprintf("%d retained", report.Count(domain.ActionRetain)))
	return strings.Join(parts, ", ")
}

func indent(depth int) string {
	return strings.Repeat("  ", depth)
}
