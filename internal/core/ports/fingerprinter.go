package ports

import "go.trai.ch/cagesync/internal/core/domain"

// Fingerprinter computes topology fingerprints for captured geometry.
//
//go:generate mockgen -source=fingerprinter.go -destination=mocks/mock_fingerprinter.go -package=mocks
type Fingerprinter interface {
	// Fingerprint returns the point count and an order-sensitive hash of
	// positions and normals. Equal geometry always yields equal fingerprints.
	Fingerprint(geometry domain.Geometry) domain.Fingerprint
}
