package stage

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestFileLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"hero", "hero"},
		{"  ", "frame"},
		{"about/skills 2", "about_skills_2"},
		{"v1.2-final", "v1.2-final"},
	}
	for _, tt := range tests {
		if got := fileLabel(tt.in); got != tt.want {
			t.Errorf("fileLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStraightAlpha(t *testing.T) {
	pixels := []byte{
		128, 64, 0, 128, // half-covered
		10, 20, 30, 255, // opaque
		0, 0, 0, 0, // empty
	}
	img := straightAlpha(pixels, 3, 1)
	if got := img.Pix[0:4]; got[0] != 255 || got[1] != 127 || got[2] != 0 || got[3] != 128 {
		t.Errorf("half-covered pixel = %v", got)
	}
	if got := img.Pix[4:8]; got[0] != 10 || got[1] != 20 || got[2] != 30 {
		t.Errorf("opaque pixel changed: %v", got)
	}
	if pixels[0] != 128 {
		t.Error("input buffer was modified")
	}
}

func TestWritePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	img := straightAlpha(make([]byte, 4*4*2), 4, 2)
	if err := writePNG(path, img); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 4 || cfg.Height != 2 {
		t.Errorf("decoded size = %dx%d", cfg.Width, cfg.Height)
	}
}
