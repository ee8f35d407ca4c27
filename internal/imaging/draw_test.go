package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"
)

var green = color.RGBA{0, 255, 0, 255}

func countColor(img *image.RGBA, c color.RGBA) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y) == c {
				n++
			}
		}
	}
	return n
}

func TestDrawLine_Horizontal(t *testing.T) {
	img := solidFrame(20, 20, color.Black)

	if !DrawLine(img, 2, 10, 17, 10, green, 2) {
		t.Fatal("DrawLine reported nothing drawn")
	}

	// Width 2 on a horizontal line covers rows 10 and 11.
	for x := 2; x <= 17; x++ {
		if img.RGBAAt(x, 10) != green || img.RGBAAt(x, 11) != green {
			t.Fatalf("pixel column %d not fully drawn", x)
		}
	}
	if got := countColor(img, green); got != 16*2 {
		t.Errorf("drawn pixels: got %d, want %d", got, 32)
	}
}

func TestDrawLine_Vertical(t *testing.T) {
	img := solidFrame(20, 20, color.Black)
	DrawLine(img, 5, 0, 5, 19, green, 2)

	for y := 0; y < 20; y++ {
		if img.RGBAAt(5, y) != green || img.RGBAAt(6, y) != green {
			t.Fatalf("row %d not fully drawn", y)
		}
	}
}

func TestDrawLine_Diagonal(t *testing.T) {
	img := solidFrame(10, 10, color.Black)
	DrawLine(img, 0, 0, 9, 9, green, 1)

	for i := 0; i < 10; i++ {
		if img.RGBAAt(i, i) != green {
			t.Errorf("diagonal pixel (%d,%d) not drawn", i, i)
		}
	}
	if got := countColor(img, green); got != 10 {
		t.Errorf("drawn pixels: got %d, want 10", got)
	}
}

func TestDrawLine_Clipped(t *testing.T) {
	img := solidFrame(10, 10, color.Black)

	if !DrawLine(img, -100, 5, 1000000, 5, green, 1) {
		t.Fatal("line crossing the image should draw")
	}
	for x := 0; x < 10; x++ {
		if img.RGBAAt(x, 5) != green {
			t.Errorf("pixel (%d,5) not drawn", x)
		}
	}
}

func TestDrawLine_Outside(t *testing.T) {
	img := solidFrame(10, 10, color.Black)

	if DrawLine(img, 20, 20, 40, 30, green, 2) {
		t.Error("line entirely outside should not draw")
	}
	if DrawLine(img, -5, -1, 5, -1, green, 1) {
		t.Error("line above the image should not draw")
	}
	if got := countColor(img, green); got != 0 {
		t.Errorf("image modified: %d pixels changed", got)
	}
}

func TestLineVisible(t *testing.T) {
	r := image.Rect(0, 0, 20, 20)
	tests := []struct {
		name           string
		x1, y1, x2, y2 int
		want           bool
	}{
		{"inside", 2, 2, 10, 10, true},
		{"crossing", -100, 5, 500, 5, true},
		{"beyond corner", 300, 300, 400, 400, false},
		{"left of frame", -10, 0, -1, 19, false},
		{"touches last column", 19, -5, 19, 30, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LineVisible(r, tt.x1, tt.y1, tt.x2, tt.y2); got != tt.want {
				t.Errorf("LineVisible: got %v, want %v", got, tt.want)
			}
		})
	}

	if LineVisible(image.Rectangle{}, 0, 0, 1, 1) {
		t.Error("empty rectangle should never be visible")
	}
}

func TestDrawLine_OffsetBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(100, 100, 110, 110))
	DrawLine(img, 0, 0, 200, 200, green, 1)

	if img.RGBAAt(105, 105) != green {
		t.Error("diagonal through offset image not drawn at (105,105)")
	}
}

func TestDrawLine_SinglePoint(t *testing.T) {
	img := solidFrame(5, 5, color.Black)
	DrawLine(img, 2, 2, 2, 2, green, 1)
	if got := countColor(img, green); got != 1 {
		t.Errorf("drawn pixels: got %d, want 1", got)
	}
}

func TestEncodePNG(t *testing.T) {
	img := solidFrame(30, 20, green)

	result, err := EncodePNG(img)
	if err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}
	if result.Width != 30 || result.Height != 20 {
		t.Errorf("dimensions: got %dx%d, want 30x20", result.Width, result.Height)
	}
	if result.MimeType != "image/png" {
		t.Errorf("MimeType: got %s, want image/png", result.MimeType)
	}

	decoded, err := base64.StdEncoding.DecodeString(result.ImageBase64)
	if err != nil {
		t.Fatalf("failed to decode base64: %v", err)
	}
	back, err := png.Decode(bytes.NewReader(decoded))
	if err != nil {
		t.Fatalf("failed to decode PNG: %v", err)
	}
	r, g, b, _ := back.At(10, 10).RGBA()
	if r != 0 || g>>8 != 255 || b != 0 {
		t.Errorf("decoded color: got (%d,%d,%d), want (0,255,0)", r>>8, g>>8, b>>8)
	}
}

func TestCloneFrame(t *testing.T) {
	src := image.NewRGBA(image.Rect(10, 10, 20, 20))
	src.Set(12, 12, green)

	clone := CloneFrame(src)
	if clone.Bounds() != image.Rect(0, 0, 10, 10) {
		t.Errorf("clone bounds: got %v, want (0,0)-(10,10)", clone.Bounds())
	}

	DrawLine(clone, 0, 0, 9, 0, color.White, 1)
	if src.RGBAAt(10, 10) == (color.RGBA{255, 255, 255, 255}) {
		t.Error("drawing on the clone modified the source")
	}
}
