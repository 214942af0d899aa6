package domain

import (
	"encoding/json"
	"slices"

	"go.trai.ch/zerr"
	"gonum.org/v1/gonum/spatial/r3"
)

// Status is the inspection state of a bake bundle.
type Status uint8

const (
	// StatusClean means the cage matches the last seen reference topology.
	StatusClean Status = iota
	// StatusNeedsInspection means the reference topology changed since the cage was produced.
	StatusNeedsInspection
	// StatusStale means the cage was produced with parameters that no longer apply.
	StatusStale
)

func (s Status) String() string {
	switch s {
	case StatusClean:
		return "clean"
	case StatusNeedsInspection:
		return "needs-inspection"
	case StatusStale:
		return "stale"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	if s > StatusStale {
		return nil, zerr.With(ErrInvalidStatus, "status", uint8(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseStatus parses the textual form produced by Status.String.
func ParseStatus(text string) (Status, error) {
	switch text {
	case "clean":
		return StatusClean, nil
	case "needs-inspection":
		return StatusNeedsInspection, nil
	case "stale":
		return StatusStale, nil
	default:
		return 0, zerr.With(ErrInvalidStatus, "status", text)
	}
}

// Visibility holds display toggles. They are stored with the bundle but never
// interpreted by the engine.
type Visibility struct {
	Retopo    bool `json:"retopo" yaml:"retopo"`
	Reference bool `json:"reference" yaml:"reference"`
	Cage      bool `json:"cage" yaml:"cage"`
}

// DefaultVisibility shows only the cage.
func DefaultVisibility() Visibility {
	return Visibility{Cage: true}
}

// Parameters are the per-bundle user-tunable settings.
type Parameters struct {
	PeakDistance float64    `json:"peakDistance"`
	Iterations   uint       `json:"iterations"`
	Translate    r3.Vec     `json:"translate"`
	Visibility   Visibility `json:"visibility"`
}

// DefaultParameters returns the parameters assigned to newly created bundles.
func DefaultParameters() Parameters {
	return Parameters{Visibility: DefaultVisibility()}
}

const (
	// EditBeginAnchor marks the start of the user edit subgraph.
	EditBeginAnchor = "USER_BEGIN"
	// EditEndAnchor marks the end of the user edit subgraph.
	EditEndAnchor = "USER_END"
)

// EditOp is a single user-authored deformation. The engine never inspects it.
type EditOp struct {
	Kind string `json:"kind"`
	Data string `json:"data,omitempty"`
}

// EditSubgraph is the ordered sequence of user edits between the fixed anchors.
// It is only ever preserved or discarded as a whole.
type EditSubgraph struct {
	ops []EditOp
}

// NewEditSubgraph returns a subgraph holding a copy of ops.
func NewEditSubgraph(ops ...EditOp) EditSubgraph {
	if len(ops) == 0 {
		return EditSubgraph{}
	}
	return EditSubgraph{ops: slices.Clone(ops)}
}

// Append returns a new subgraph with op added before the end anchor.
func (e EditSubgraph) Append(op EditOp) (EditSubgraph, error) {
	if op.Kind == "" {
		return e, ErrInvalidEditOp
	}
	ops := make([]EditOp, 0, len(e.ops)+1)
	ops = append(ops, e.ops...)
	return EditSubgraph{ops: append(ops, op)}, nil
}

// Ops returns a copy of the operations.
func (e EditSubgraph) Ops() []EditOp {
	return slices.Clone(e.ops)
}

// Len returns the number of operations between the anchors.
func (e EditSubgraph) Len() int {
	return len(e.ops)
}

// IsEmpty reports whether no operations sit between the anchors.
func (e EditSubgraph) IsEmpty() bool {
	return len(e.ops) == 0
}

// Equal reports whether both subgraphs hold the same operations in the same order.
func (e EditSubgraph) Equal(other EditSubgraph) bool {
	return slices.Equal(e.ops, other.ops)
}

// Nodes returns the full node chain including both anchors.
func (e EditSubgraph) Nodes() []string {
	nodes := make([]string, 0, len(e.ops)+2)
	nodes = append(nodes, EditBeginAnchor)
	for _, op := range e.ops {
		nodes = append(nodes, op.Kind)
	}
	return append(nodes, EditEndAnchor)
}

type editSubgraphJSON struct {
	Begin string   `json:"begin"`
	Ops   []EditOp `json:"ops"`
	End   string   `json:"end"`
}

// MarshalJSON writes the anchors around the operations.
func (e EditSubgraph) MarshalJSON() ([]byte, error) {
	ops := e.ops
	if ops == nil {
		ops = []EditOp{}
	}
	return json.Marshal(editSubgraphJSON{Begin: EditBeginAnchor, Ops: ops, End: EditEndAnchor})
}

// UnmarshalJSON rejects documents whose anchors are missing or swapped.
func (e *EditSubgraph) UnmarshalJSON(data []byte) error {
	var doc editSubgraphJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	if doc.Begin != EditBeginAnchor || doc.End != EditEndAnchor {
		return zerr.With(zerr.With(ErrInvalidAnchors, "begin", doc.Begin), "end", doc.End)
	}
	*e = NewEditSubgraph(doc.Ops...)
	return nil
}

// BakeBundle is the persistent derived state for one canonical name.
type BakeBundle struct {
	Name             string       `json:"name"`
	Cage             Geometry     `json:"cage"`
	Edits            EditSubgraph `json:"edits"`
	Params           Parameters   `json:"params"`
	CagePeakDistance float64      `json:"cagePeakDistance"`
	LastFingerprint  Fingerprint  `json:"lastFingerprint"`
	Status           Status       `json:"status"`
}

// Clone returns a deep copy of the bundle.
func (b BakeBundle) Clone() BakeBundle {
	out := b
	out.Cage = b.Cage.Clone()
	out.Edits = NewEditSubgraph(b.Edits.ops...)
	return out
}

// CageMatchesParams reports whether the cage was generated with the current peak distance.
func (b BakeBundle) CageMatchesParams() bool {
	return b.CagePeakDistance == b.Params.PeakDistance
}
