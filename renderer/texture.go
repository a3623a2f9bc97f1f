package renderer

import (
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"
)

// PrepareTexture turns an arbitrary-size RGBA image into a GPU texture:
// pad to power-of-two dimensions, flip vertically to match the GL bottom-up
// convention, derive the full mipmap chain down to 1x1, skip leading levels
// larger than the device limit and upload the rest. The returned handle is
// freshly allocated every call; there is no in-place update path on purpose,
// historical drivers corrupted re-uploaded textures and a new handle avoids
// the whole class of bugs.
func PrepareTexture(dev Device, img *image.RGBA) (TextureID, error) {
	if img == nil || img.Rect.Dx() == 0 || img.Rect.Dy() == 0 {
		return 0, fmt.Errorf("prepare texture: empty source image")
	}

	levels := MipChain(FlipVertical(PadToPow2(img)))

	max := dev.MaxTextureSize()
	skip := 0
	for skip < len(levels) && maxDim(levels[skip]) > max {
		skip++
	}
	if skip == len(levels) {
		return 0, fmt.Errorf("prepare texture: no mipmap level fits device limit %d", max)
	}

	id, err := dev.CreateTexture(levels[skip:])
	if err != nil {
		return 0, fmt.Errorf("prepare texture: %w", err)
	}
	return id, nil
}

// NextPow2 returns the smallest power of two >= n (minimum 1).
func NextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// PadToPow2 copies the source into the top-left corner of an image whose
// dimensions are the next powers of two. Texels outside the source stay
// zeroed; their content is not part of the contract. Already power-of-two
// images are returned as-is.
func PadToPow2(img *image.RGBA) *image.RGBA {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	pw, ph := NextPow2(w), NextPow2(h)
	if pw == w && ph == h {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, pw, ph))
	for y := 0; y < h; y++ {
		src := img.PixOffset(img.Rect.Min.X, img.Rect.Min.Y+y)
		copy(dst.Pix[y*dst.Stride:y*dst.Stride+w*4], img.Pix[src:src+w*4])
	}
	return dst
}

// FlipVertical returns a copy with the row order reversed.
func FlipVertical(img *image.RGBA) *image.RGBA {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		src := img.PixOffset(img.Rect.Min.X, img.Rect.Min.Y+y)
		copy(dst.Pix[(h-1-y)*dst.Stride:], img.Pix[src:src+w*4])
	}
	return dst
}

// MipChain builds the full mipmap chain starting with img itself, halving
// both dimensions (never below 1) until 1x1. The chain length is
// floor(log2(max(w,h))) + 1 for power-of-two input.
func MipChain(img *image.RGBA) []*image.RGBA {
	levels := []*image.RGBA{img}
	w, h := img.Rect.Dx(), img.Rect.Dy()
	for w > 1 || h > 1 {
		w = halve(w)
		h = halve(h)
		next := image.NewRGBA(image.Rect(0, 0, w, h))
		xdraw.ApproxBiLinear.Scale(next, next.Rect, levels[len(levels)-1], levels[len(levels)-1].Rect, xdraw.Src, nil)
		levels = append(levels, next)
	}
	return levels
}

func halve(n int) int {
	if n <= 1 {
		return 1
	}
	return n / 2
}

func maxDim(img *image.RGBA) int {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if w > h {
		return w
	}
	return h
}
