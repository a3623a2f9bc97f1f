package renderer

import (
	"image"
	"image/color"
	"testing"
)

func rgba(r, g, b, a uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: a}
}

func TestNextPow2(t *testing.T) {
	cases := map[int]int{1: 1, 2: 2, 3: 4, 50: 64, 100: 128, 128: 128, 129: 256, 1000: 1024}
	for in, want := range cases {
		if got := NextPow2(in); got != want {
			t.Errorf("NextPow2(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestPadToPow2Dimensions(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 50))
	padded := PadToPow2(img)
	if padded.Rect.Dx() != 128 || padded.Rect.Dy() != 64 {
		t.Errorf("padded size = %dx%d, want 128x64", padded.Rect.Dx(), padded.Rect.Dy())
	}

	// Already power-of-two input must come back unchanged.
	sq := image.NewRGBA(image.Rect(0, 0, 64, 64))
	if PadToPow2(sq) != sq {
		t.Errorf("power-of-two image should not be copied")
	}
}

func TestPadToPow2KeepsPixels(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.Pix[0] = 200 // R of (0,0)
	img.SetRGBA(2, 1, rgba(1, 2, 3, 4))

	padded := PadToPow2(img)
	if padded.Rect.Dx() != 4 || padded.Rect.Dy() != 2 {
		t.Fatalf("padded size = %dx%d, want 4x2", padded.Rect.Dx(), padded.Rect.Dy())
	}
	if padded.Pix[0] != 200 {
		t.Errorf("pixel (0,0) not copied into padded image")
	}
	if padded.RGBAAt(2, 1) != rgba(1, 2, 3, 4) {
		t.Errorf("pixel (2,1) = %v, want %v", padded.RGBAAt(2, 1), rgba(1, 2, 3, 4))
	}
}

func TestFlipVertical(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 3))
	img.SetRGBA(0, 0, rgba(10, 0, 0, 255))
	img.SetRGBA(1, 2, rgba(0, 20, 0, 255))

	flipped := FlipVertical(img)
	if flipped.RGBAAt(0, 2) != rgba(10, 0, 0, 255) {
		t.Errorf("top-left pixel did not move to bottom-left")
	}
	if flipped.RGBAAt(1, 0) != rgba(0, 20, 0, 255) {
		t.Errorf("bottom-right pixel did not move to top-right")
	}
}

func TestMipChainLength(t *testing.T) {
	// 128x64 -> 7 halvings down to 1x1, chain length floor(log2(128))+1 = 8
	chain := MipChain(image.NewRGBA(image.Rect(0, 0, 128, 64)))
	if len(chain) != 8 {
		t.Fatalf("chain length = %d, want 8", len(chain))
	}
	wantW, wantH := 128, 64
	for i, lvl := range chain {
		if lvl.Rect.Dx() != wantW || lvl.Rect.Dy() != wantH {
			t.Errorf("level %d = %dx%d, want %dx%d", i, lvl.Rect.Dx(), lvl.Rect.Dy(), wantW, wantH)
		}
		wantW = halve(wantW)
		wantH = halve(wantH)
	}
	last := chain[len(chain)-1]
	if last.Rect.Dx() != 1 || last.Rect.Dy() != 1 {
		t.Errorf("last level = %dx%d, want 1x1", last.Rect.Dx(), last.Rect.Dy())
	}
}

func TestPrepareTextureNoSkipWithinLimit(t *testing.T) {
	// Scenario from the design notes: 100x50 source, device limit 4096.
	dev := newFakeDevice(4096)
	id, err := PrepareTexture(dev, image.NewRGBA(image.Rect(0, 0, 100, 50)))
	if err != nil {
		t.Fatalf("PrepareTexture failed: %v", err)
	}
	if id == 0 {
		t.Errorf("got zero texture handle without error")
	}
	if len(dev.created) != 1 {
		t.Fatalf("expected one texture upload, got %d", len(dev.created))
	}
	levels := dev.created[0]
	if len(levels) != 8 {
		t.Errorf("uploaded %d levels, want 8 (128x64 down to 1x1, nothing skipped)", len(levels))
	}
	if levels[0].Rect.Dx() != 128 || levels[0].Rect.Dy() != 64 {
		t.Errorf("level 0 = %dx%d, want 128x64", levels[0].Rect.Dx(), levels[0].Rect.Dy())
	}
}

func TestPrepareTextureSkipsOversizedLevels(t *testing.T) {
	// Limit 64: the 128x64 base level is too large, upload starts at 64x32.
	dev := newFakeDevice(64)
	if _, err := PrepareTexture(dev, image.NewRGBA(image.Rect(0, 0, 100, 50))); err != nil {
		t.Fatalf("PrepareTexture failed: %v", err)
	}
	levels := dev.created[0]
	if len(levels) != 7 {
		t.Errorf("uploaded %d levels, want 7", len(levels))
	}
	if levels[0].Rect.Dx() != 64 || levels[0].Rect.Dy() != 32 {
		t.Errorf("first uploaded level = %dx%d, want 64x32", levels[0].Rect.Dx(), levels[0].Rect.Dy())
	}
}

func TestPrepareTextureSurfacesFailure(t *testing.T) {
	dev := newFakeDevice(4096)
	dev.failCreate = true
	id, err := PrepareTexture(dev, image.NewRGBA(image.Rect(0, 0, 16, 16)))
	if err == nil {
		t.Fatalf("expected error from failing device, got handle %d", id)
	}
	if id != 0 {
		t.Errorf("failed preparation must not hand out a handle, got %d", id)
	}
}

func TestPrepareTextureRejectsEmptyImage(t *testing.T) {
	dev := newFakeDevice(4096)
	if _, err := PrepareTexture(dev, nil); err == nil {
		t.Errorf("expected error for nil image")
	}
	if _, err := PrepareTexture(dev, image.NewRGBA(image.Rect(0, 0, 0, 0))); err == nil {
		t.Errorf("expected error for empty image")
	}
}

func TestPadToPow2SubImage(t *testing.T) {
	// A sub-image's pixel rows start at Rect.Min, not at Pix[0].
	base := image.NewRGBA(image.Rect(0, 0, 8, 8))
	base.SetRGBA(2, 1, rgba(11, 0, 0, 255))
	base.SetRGBA(4, 2, rgba(0, 22, 0, 255))

	sub := base.SubImage(image.Rect(2, 1, 5, 3)).(*image.RGBA)
	padded := PadToPow2(sub)
	if padded.Rect.Dx() != 4 || padded.Rect.Dy() != 2 {
		t.Fatalf("padded size = %dx%d, want 4x2", padded.Rect.Dx(), padded.Rect.Dy())
	}
	if padded.RGBAAt(0, 0) != rgba(11, 0, 0, 255) {
		t.Errorf("pixel (0,0) = %v, want sub-image origin pixel", padded.RGBAAt(0, 0))
	}
	if padded.RGBAAt(2, 1) != rgba(0, 22, 0, 255) {
		t.Errorf("pixel (2,1) = %v, want sub-image pixel", padded.RGBAAt(2, 1))
	}
}

func TestFlipVerticalSubImage(t *testing.T) {
	base := image.NewRGBA(image.Rect(0, 0, 8, 8))
	base.SetRGBA(3, 2, rgba(33, 0, 0, 255))
	base.SetRGBA(4, 3, rgba(0, 44, 0, 255))

	// 2x2 window with Min at (3,2).
	sub := base.SubImage(image.Rect(3, 2, 5, 4)).(*image.RGBA)
	flipped := FlipVertical(sub)
	if flipped.RGBAAt(0, 1) != rgba(33, 0, 0, 255) {
		t.Errorf("pixel (0,1) = %v, want flipped sub-image origin pixel", flipped.RGBAAt(0, 1))
	}
	if flipped.RGBAAt(1, 0) != rgba(0, 44, 0, 255) {
		t.Errorf("pixel (1,0) = %v, want flipped sub-image pixel", flipped.RGBAAt(1, 0))
	}
}
