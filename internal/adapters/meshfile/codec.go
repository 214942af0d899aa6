package meshfile

import (
	"fmt"

	"go.trai.ch/cagesync/internal/core/domain"
	"go.trai.ch/zerr"
	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"
)

// DocumentVersion is written into every encoded collection file.
const DocumentVersion = "1"

// Decode parses a collection file into points, scaling positions by scale.
// Object order in the file is preserved.
func Decode(data []byte, scale float64) ([]string, []domain.Geometry, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, zerr.Wrap(err, domain.ErrSnapshotParseFailed.Error())
	}

	names := make([]string, 0, len(doc.Objects))
	geoms := make([]domain.Geometry, 0, len(doc.Objects))
	for i, obj := range doc.Objects {
		if obj.Name == "" {
			return nil, nil, zerr.With(domain.ErrSnapshotParseFailed, "object_index", i)
		}
		points := make([]domain.Point, len(obj.Points))
		for j, p := range obj.Points {
			pos, err := toVec(p.P, true)
			if err != nil {
				return nil, nil, zerr.With(zerr.With(zerr.With(err, "object", obj.Name), "point", j), "field", "p")
			}
			normal, err := toVec(p.N, false)
			if err != nil {
				return nil, nil, zerr.With(zerr.With(zerr.With(err, "object", obj.Name), "point", j), "field", "n")
			}
			points[j] = domain.Point{Position: r3.Scale(scale, pos), Normal: normal}
		}
		names = append(names, obj.Name)
		geoms = append(geoms, domain.Geometry{Points: points})
	}
	return names, geoms, nil
}

// Encode writes objects as a collection file.
func Encode(objects []ObjectDTO) ([]byte, error) {
	doc := Document{Version: DocumentVersion, Objects: objects}
	if doc.Objects == nil {
		doc.Objects = []ObjectDTO{}
	}
	data, err := yaml.Marshal(&doc)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrExportFailed.Error())
	}
	return data, nil
}

// NewObject converts geometry to its file form, transforming each position by
// translate then scale.
func NewObject(name string, g domain.Geometry, translate r3.Vec, scale float64) ObjectDTO {
	points := make([]PointDTO, len(g.Points))
	for i, p := range g.Points {
		pos := r3.Scale(scale, r3.Add(p.Position, translate))
		points[i] = PointDTO{
			P: []float64{pos.X, pos.Y, pos.Z},
			N: []float64{p.Normal.X, p.Normal.Y, p.Normal.Z},
		}
	}
	return ObjectDTO{Name: name, Points: points}
}

// toVec converts a three-component list. An omitted optional vector is the zero vector.
func toVec(v []float64, required bool) (r3.Vec, error) {
	switch len(v) {
	case 0:
		if required {
			return r3.Vec{}, zerr.With(domain.ErrInvalidVector, "components", 0)
		}
		return r3.Vec{}, nil
	case 3:
		vec := r3.Vec{X: v[0], Y: v[1], Z: v[2]}
		if !domain.FiniteVec(vec) {
			return r3.Vec{}, zerr.With(domain.ErrInvalidVector, "value", fmt.Sprint(v))
		}
		return vec, nil
	default:
		return r3.Vec{}, zerr.With(domain.ErrInvalidVector, "components", len(v))
	}
}
