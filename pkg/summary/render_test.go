package summary

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/izuchukwuMcGibson/HNG-Task-2/pkg/config"
	"github.com/izuchukwuMcGibson/HNG-Task-2/pkg/country"
)

// pngMagic is the 8-byte PNG file signature.
var pngMagic = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

func newTestRenderer() *chartRenderer {
	return NewChartRenderer(&config.ImageConfig{Width: 600, Height: 400})
}

func TestRender_WritesPNG(t *testing.T) {
	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	p := &Projection{
		Total: 250,
		Top: []*country.Country{
			ranked("Bigland", 5e12),
			ranked("Midland", 3e9),
			ranked("Smallland", 8e6),
		},
		LastRefreshedAt: &ts,
	}

	path := filepath.Join(t.TempDir(), "nested", "summary.png")
	if err := newTestRenderer().Render(p, path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("image not written: %v", err)
	}
	if !bytes.HasPrefix(data, pngMagic) {
		t.Fatal("output is not a PNG file")
	}

	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatal("temp file left behind after render")
	}
}

func TestRender_EmptyProjection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.png")
	if err := newTestRenderer().Render(&Projection{}, path); err != nil {
		t.Fatalf("empty projection must still render: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("image not written: %v", err)
	}
	if !bytes.HasPrefix(data, pngMagic) {
		t.Fatal("output is not a PNG file")
	}
}

func TestRender_SkipsUnknownGDP(t *testing.T) {
	unknown := country.New("Erewhon")
	p := &Projection{
		Total: 2,
		Top:   []*country.Country{ranked("Bigland", 5e12), unknown},
	}

	path := filepath.Join(t.TempDir(), "summary.png")
	if err := newTestRenderer().Render(p, path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRender_OverwritesExistingImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.png")
	if err := os.WriteFile(path, []byte("stale"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	if err := newTestRenderer().Render(&Projection{Total: 1, Top: []*country.Country{ranked("Bigland", 1e9)}}, path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("image not written: %v", err)
	}
	if !bytes.HasPrefix(data, pngMagic) {
		t.Fatal("stale file was not replaced with a PNG")
	}
}

func TestGDPValueFormatter(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{2.5e12, "2.5T"},
		{3e9, "3.0B"},
		{8e6, "8.0M"},
		{500, "500"},
	}
	for _, tc := range cases {
		if got := gdpValueFormatter(tc.in); got != tc.want {
			t.Fatalf("gdpValueFormatter(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
	if got := gdpValueFormatter("not a float"); got != "" {
		t.Fatalf("expected empty string for non-float, got %q", got)
	}
}
