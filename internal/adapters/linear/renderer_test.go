package linear_test

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cagesync/internal/adapters/linear"
	"go.trai.ch/cagesync/internal/core/domain"
	"gonum.org/v1/gonum/spatial/r3"
)

func newPlain(verbose bool) (*linear.Renderer, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	r := linear.NewRenderer(&stdout, &stderr, linear.WithPlain(), linear.WithVerbose(verbose))
	return r, &stdout, &stderr
}

func sampleReport() *domain.SyncReport {
	report := &domain.SyncReport{PassID: "pass-01test", DryRun: true, Duration: 42 * time.Millisecond}
	report.Add(domain.ReportEntry{Name: "body", Action: domain.ActionRetain, Status: domain.StatusClean})
	report.Add(domain.ReportEntry{Name: "helmet", Action: domain.ActionFlag, Status: domain.StatusNeedsInspection})
	report.Add(domain.ReportEntry{Name: "boots", Action: domain.ActionCreate, Status: domain.StatusClean})
	report.Add(domain.ReportEntry{Name: "gloves", Action: domain.ActionDelete})
	report.Add(domain.ReportEntry{Name: "belt", Action: domain.ActionCreate, Err: errors.New("boom")})
	return report
}

func TestRenderer_RenderReport(t *testing.T) {
	r, stdout, stderr := newPlain(false)

	r.RenderReport(sampleReport())

	g := goldie.New(t)
	g.Assert(t, "report", stdout.Bytes())
	assert.Empty(t, stderr.String())
}

func TestRenderer_RenderReport_VerboseShowsDuration(t *testing.T) {
	r, stdout, _ := newPlain(true)

	r.RenderReport(sampleReport())

	assert.Contains(t, stdout.String(), "Sync pass-01test (dry run) in 42ms\n")
}

func TestRenderer_RenderReport_UpToDate(t *testing.T) {
	r, stdout, _ := newPlain(false)

	report := &domain.SyncReport{PassID: "pass-01test"}
	report.Add(domain.ReportEntry{Name: "body", Action: domain.ActionRetain})
	r.RenderReport(report)
	r.RenderReport(nil)

	assert.Equal(t, "Sync pass-01test\n  ✓ Up to date (1 bundles)\n", stdout.String())
}

func TestRenderer_RenderStatus(t *testing.T) {
	r, stdout, _ := newPlain(false)

	body := domain.BakeBundle{
		Name:   "body",
		Cage:   domain.NewGeometry([]domain.Point{{Position: r3.Vec{X: 1}}}),
		Params: domain.Parameters{PeakDistance: 0.25},
		Status: domain.StatusClean,
	}
	helmet := domain.BakeBundle{
		Name:   "helmet",
		Cage:   domain.NewGeometry([]domain.Point{{Position: r3.Vec{Y: 1}}}),
		Edits:  domain.NewEditSubgraph(domain.EditOp{Kind: "push"}, domain.EditOp{Kind: "smooth"}),
		Params: domain.Parameters{PeakDistance: 0.5, Translate: r3.Vec{X: 1, Z: -2}},
		Status: domain.StatusNeedsInspection,
	}
	reg, err := domain.NewRegistry(body, helmet)
	require.NoError(t, err)

	r.RenderStatus(reg)

	g := goldie.New(t)
	g.Assert(t, "status", stdout.Bytes())
}

func TestRenderer_RenderStatus_Empty(t *testing.T) {
	r, stdout, _ := newPlain(false)

	reg, err := domain.NewRegistry()
	require.NoError(t, err)
	r.RenderStatus(reg)

	assert.Equal(t, "No bundles. Run 'cagesync sync' first.\n", stdout.String())
}

func TestRenderer_Steps(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("quiet", func(t *testing.T) {
		r, stdout, stderr := newPlain(false)
		r.OnStepStart("a", "", "Synchronizing Bundles", start)
		r.OnStepComplete("a", start.Add(time.Second), nil)

		assert.Empty(t, stdout.String())
		assert.Empty(t, stderr.String())
	})

	t.Run("verbose", func(t *testing.T) {
		r, stdout, stderr := newPlain(true)
		r.OnStepStart("a", "", "Synchronizing Bundles", start)
		r.OnStepStart("b", "a", "Generating Cage", start)
		r.OnStepComplete("b", start.Add(3*time.Millisecond), errors.New("empty reference"))
		r.OnStepComplete("a", start.Add(12*time.Millisecond), nil)
		r.OnStepComplete("unknown", start, nil)

		assert.Empty(t, stdout.String())
		assert.Equal(t,
			"[Synchronizing Bundles] Starting...\n"+
				"  [Generating Cage] Starting...\n"+
				"  [Generating Cage] ✗ Failed after 3ms: empty reference\n"+
				"[Synchronizing Bundles] ✓ Completed in 12ms\n",
			stderr.String())
	})
}
