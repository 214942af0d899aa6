package domain_test

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cagesync/internal/core/domain"
	"gonum.org/v1/gonum/spatial/r3"
)

func bundle(name string) domain.BakeBundle {
	return domain.BakeBundle{
		Name: name,
		Cage: domain.NewGeometry([]domain.Point{
			{Position: r3.Vec{X: 1}, Normal: r3.Vec{Z: 1}},
		}),
		Params:          domain.DefaultParameters(),
		LastFingerprint: domain.Fingerprint{PointCount: 1, OrderHash: 0xabc},
	}
}

func TestRegistry_PreservesCreationOrder(t *testing.T) {
	reg, err := domain.NewRegistry(bundle("zeta"), bundle("alpha"), bundle("mid"))
	require.NoError(t, err)

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, reg.Names())

	require.True(t, reg.Remove("alpha"))
	require.NoError(t, reg.Add(bundle("beta")))
	assert.Equal(t, []string{"zeta", "mid", "beta"}, reg.Names())
	assert.Equal(t, 3, reg.Len())
}

func TestRegistry_AddDuplicate(t *testing.T) {
	_, err := domain.NewRegistry(bundle("body"), bundle("body"))
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrBundleExists.Error())
}

func TestRegistry_PutUnknown(t *testing.T) {
	reg, err := domain.NewRegistry()
	require.NoError(t, err)

	err = reg.Put(bundle("ghost"))
	require.ErrorIs(t, err, domain.ErrUnknownName)

	var unknown *domain.UnknownNameError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "ghost", unknown.Name)
}

func TestRegistry_GetReturnsCopy(t *testing.T) {
	reg, err := domain.NewRegistry(bundle("body"))
	require.NoError(t, err)

	b, ok := reg.Get("body")
	require.True(t, ok)
	b.Cage.Points[0].Position.X = 99
	b.Status = domain.StatusStale

	stored, _ := reg.Get("body")
	assert.InDelta(t, 1.0, stored.Cage.Points[0].Position.X, 0)
	assert.Equal(t, domain.StatusClean, stored.Status)
}

func TestRegistry_CloneIsIndependent(t *testing.T) {
	reg, err := domain.NewRegistry(bundle("body"), bundle("helmet"))
	require.NoError(t, err)

	clone := reg.Clone()
	require.True(t, reg.Equal(clone))

	b, _ := clone.Get("body")
	b.Edits, err = b.Edits.Append(domain.EditOp{Kind: "push"})
	require.NoError(t, err)
	require.NoError(t, clone.Put(b))
	clone.Remove("helmet")

	assert.False(t, reg.Equal(clone))
	assert.Equal(t, []string{"body", "helmet"}, reg.Names())
	original, _ := reg.Get("body")
	assert.True(t, original.Edits.IsEmpty())
}

func TestEditSubgraph_AppendKeepsAnchors(t *testing.T) {
	var edits domain.EditSubgraph
	assert.Equal(t, []string{domain.EditBeginAnchor, domain.EditEndAnchor}, edits.Nodes())

	next, err := edits.Append(domain.EditOp{Kind: "smooth", Data: "0.5"})
	require.NoError(t, err)
	next, err = next.Append(domain.EditOp{Kind: "push"})
	require.NoError(t, err)

	assert.True(t, edits.IsEmpty(), "append must not modify the receiver")
	assert.Equal(t, []string{domain.EditBeginAnchor, "smooth", "push", domain.EditEndAnchor}, next.Nodes())

	_, err = next.Append(domain.EditOp{})
	require.ErrorIs(t, err, domain.ErrInvalidEditOp)
}

func TestEditSubgraph_JSON(t *testing.T) {
	edits := domain.NewEditSubgraph(domain.EditOp{Kind: "push", Data: "x"})

	data, err := json.Marshal(edits)
	require.NoError(t, err)
	assert.JSONEq(t, `{"begin":"USER_BEGIN","ops":[{"kind":"push","data":"x"}],"end":"USER_END"}`, string(data))

	var decoded domain.EditSubgraph
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, edits.Equal(decoded))

	err = json.Unmarshal([]byte(`{"begin":"USER_END","ops":[],"end":"USER_BEGIN"}`), &decoded)
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrInvalidAnchors.Error())
}

func TestStatus_TextRoundTrip(t *testing.T) {
	for _, s := range []domain.Status{domain.StatusClean, domain.StatusNeedsInspection, domain.StatusStale} {
		text, err := s.MarshalText()
		require.NoError(t, err)

		var parsed domain.Status
		require.NoError(t, parsed.UnmarshalText(text))
		assert.Equal(t, s, parsed)
	}

	_, err := domain.ParseStatus("dirty")
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrInvalidStatus.Error())
}

func TestSyncReport_ActionsExcludeRetain(t *testing.T) {
	report := &domain.SyncReport{}
	report.Add(domain.ReportEntry{Name: "body", Action: domain.ActionRetain})
	report.Add(domain.ReportEntry{Name: "helmet", Action: domain.ActionFlag, Status: domain.StatusNeedsInspection})
	report.Add(domain.ReportEntry{Name: "boots", Action: domain.ActionCreate, Err: errors.New("boom")})

	actions := report.Actions()
	require.Len(t, actions, 2)
	assert.Equal(t, "helmet", actions[0].Name)
	assert.Equal(t, 1, report.Count(domain.ActionFlag))
	assert.Equal(t, 0, report.Count(domain.ActionCreate))
	require.Len(t, report.Failures(), 1)
	require.Error(t, report.Err())

	assert.Equal(t, domain.ActionRetain, report.Entries[0].Action)
}

func TestNameMismatchError(t *testing.T) {
	mismatch := &domain.NameMismatchError{OnlyInRetopo: []string{"helmet"}}
	err := &domain.CardinalityError{RetopoCount: 2, ReferenceCount: 1, Mismatch: mismatch}

	require.ErrorIs(t, err, domain.ErrCardinality)
	require.ErrorIs(t, err, domain.ErrNameMismatch)
	assert.Contains(t, err.Error(), "helmet")
	assert.Equal(t, []string{"helmet"}, mismatch.Names())
}

func TestGenerationError(t *testing.T) {
	err := &domain.GenerationError{Name: "body", Cause: domain.ErrEmptyReference}
	require.ErrorIs(t, err, domain.ErrGeneration)
	require.ErrorIs(t, err, domain.ErrEmptyReference)
	assert.Contains(t, err.Error(), `"body"`)
}

func TestGeometry_Finite(t *testing.T) {
	g := domain.NewGeometry([]domain.Point{
		{Position: r3.Vec{X: -1, Y: 2, Z: 0}, Normal: r3.Vec{Z: 1}},
		{Position: r3.Vec{X: 3, Y: -4, Z: 5}, Normal: r3.Vec{X: 1}},
	})
	assert.True(t, g.Finite())

	g.Points[0].Position.Y = math.NaN()
	assert.False(t, g.Finite())

	g.Points[0].Position.Y = 2
	g.Points[1].Normal.Z = math.Inf(-1)
	assert.False(t, g.Finite())
}

func TestPassID(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)
	id, err := domain.NewPassID(now)
	require.NoError(t, err)
	assert.Contains(t, id, domain.PassIDPrefix)

	assert.Len(t, id, len(domain.PassIDPrefix)+26)
	assert.Equal(t, strings.ToLower(id), id)

	later, err := domain.NewPassID(now.Add(time.Second))
	require.NoError(t, err)
	assert.Less(t, id, later)
}
