package imaging

import (
	"testing"

	"github.com/ironsheep/bmp-tools-mcp/internal/bmp"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    RGBColor
		wantErr bool
	}{
		{"#FF0000", RGBColor{255, 0, 0}, false},
		{"00ff00", RGBColor{0, 255, 0}, false},
		{"#f80", RGBColor{255, 136, 0}, false},
		{"  Blue ", RGBColor{0, 0, 255}, false},
		{"gray", RGBColor{128, 128, 128}, false},
		{"", RGBColor{}, false},
		{"#xyz123", RGBColor{}, true},
		{"chartreuse-ish", RGBColor{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseColor(%q) should fail, got %+v", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseColor(%q) failed: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSampleColor(t *testing.T) {
	img := createPatternBMP(t, 10, 10)

	tests := []struct {
		name    string
		x, y    int
		wantHex string
		wantHSL HSLColor
	}{
		{"top-left red", 1, 1, "#FF0000", HSLColor{0, 100, 50}},
		{"top-right green", 8, 1, "#00FF00", HSLColor{120, 100, 50}},
		{"bottom-left blue", 1, 8, "#0000FF", HSLColor{240, 100, 50}},
		{"bottom-right white", 8, 8, "#FFFFFF", HSLColor{0, 0, 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := SampleColor(img, tt.x, tt.y)
			if err != nil {
				t.Fatalf("SampleColor failed: %v", err)
			}
			if c.Hex != tt.wantHex {
				t.Errorf("Hex: got %s, want %s", c.Hex, tt.wantHex)
			}
			if c.HSL != tt.wantHSL {
				t.Errorf("HSL: got %+v, want %+v", c.HSL, tt.wantHSL)
			}
		})
	}
}

func TestSampleColor_OutOfBounds(t *testing.T) {
	img, _ := bmp.New(5, 5)
	for _, pt := range [][2]int{{-1, 0}, {0, -1}, {5, 0}, {0, 5}} {
		if _, err := SampleColor(img, pt[0], pt[1]); err == nil {
			t.Errorf("SampleColor(%d,%d) should fail", pt[0], pt[1])
		}
	}
}

func TestCountColors(t *testing.T) {
	img := createPatternBMP(t, 10, 10)

	result := CountColors(img, 0)
	if result.Distinct != 4 || len(result.Colors) != 4 {
		t.Fatalf("expected 4 colors, got distinct=%d listed=%d", result.Distinct, len(result.Colors))
	}
	for _, c := range result.Colors {
		if c.Pixels != 25 || c.Percentage != 25 {
			t.Errorf("%s: got %d pixels (%.1f%%), want 25 (25%%)", c.Color.Hex, c.Pixels, c.Percentage)
		}
	}
	// Ties are ordered by hex.
	if result.Colors[0].Color.Hex != "#0000FF" {
		t.Errorf("first color: got %s, want #0000FF", result.Colors[0].Color.Hex)
	}

	limited := CountColors(img, 2)
	if limited.Distinct != 4 || len(limited.Colors) != 2 {
		t.Errorf("limit 2: got distinct=%d listed=%d", limited.Distinct, len(limited.Colors))
	}
}

func TestCountColors_AfterFill(t *testing.T) {
	img := createPatternBMP(t, 6, 4)
	img.Fill(18, 52, 86)

	result := CountColors(img, 5)
	if result.Distinct != 1 {
		t.Fatalf("expected 1 color after fill, got %d", result.Distinct)
	}
	if result.Colors[0].Color.Hex != "#123456" || result.Colors[0].Percentage != 100 {
		t.Errorf("unexpected color: %+v", result.Colors[0])
	}
}

func TestCountColors_Empty(t *testing.T) {
	img, _ := bmp.New(0, 0)
	result := CountColors(img, 3)
	if result.Distinct != 0 || len(result.Colors) != 0 {
		t.Errorf("empty image: got %+v", result)
	}
}
