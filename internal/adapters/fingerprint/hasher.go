// Package fingerprint computes topology fingerprints for captured meshes.
package fingerprint

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/cagesync/internal/core/domain"
	"go.trai.ch/cagesync/internal/core/ports"
	"gonum.org/v1/gonum/spatial/r3"
)

var _ ports.Fingerprinter = (*Hasher)(nil)

// Hasher fingerprints geometry with XXHash.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// Fingerprint returns the point count and an order-sensitive hash over every
// position and normal. Reordering points changes the hash.
func (h *Hasher) Fingerprint(g domain.Geometry) domain.Fingerprint {
	hasher := xxhash.New()
	var buf [8]byte

	for _, p := range g.Points {
		writeVec(hasher, buf[:], p.Position)
		writeVec(hasher, buf[:], p.Normal)
		_, _ = hasher.Write([]byte{0}) // Point separator
	}

	// Count
	binary.LittleEndian.PutUint64(buf[:], uint64(len(g.Points)))
	_, _ = hasher.Write(buf[:])

	return domain.Fingerprint{
		PointCount: uint64(len(g.Points)),
		OrderHash:  hasher.Sum64(),
	}
}

func writeVec(hasher *xxhash.Digest, buf []byte, v r3.Vec) {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		// Fold negative zero so that -0 and 0 hash alike.
		if c == 0 {
			c = 0
		}
		binary.LittleEndian.PutUint64(buf, math.Float64bits(c))
		_, _ = hasher.Write(buf)
	}
}
