package detector_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cagesync/internal/adapters/detector"
)

func TestDetectEnvironment_NonTerminal(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	t.Setenv("CI", "")
	assert.Equal(t, detector.ModePlain, detector.DetectEnvironment(f))
	assert.Equal(t, detector.ModePlain, detector.DetectEnvironment(nil))
}

func TestDetectEnvironment_CI(t *testing.T) {
	for _, value := range []string{"true", "1"} {
		t.Run(value, func(t *testing.T) {
			t.Setenv("CI", value)
			assert.Equal(t, detector.ModePlain, detector.DetectEnvironment(os.Stdout))
		})
	}
}

func TestResolveMode(t *testing.T) {
	tests := []struct {
		name     string
		auto     detector.ColorMode
		flag     string
		expected detector.ColorMode
	}{
		{name: "empty keeps auto", auto: detector.ModeColor, flag: "", expected: detector.ModeColor},
		{name: "auto keeps auto", auto: detector.ModePlain, flag: "auto", expected: detector.ModePlain},
		{name: "always forces color", auto: detector.ModePlain, flag: "always", expected: detector.ModeColor},
		{name: "never forces plain", auto: detector.ModeColor, flag: "never", expected: detector.ModePlain},
		{name: "unknown keeps auto", auto: detector.ModeColor, flag: "rainbow", expected: detector.ModeColor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, detector.ResolveMode(tt.auto, tt.flag))
		})
	}
}
