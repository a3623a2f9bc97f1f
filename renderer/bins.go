package renderer

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// DEPTH_BIN_COUNT is the default number of depth buckets per surface. The
// binning is an approximate sort, so raising this does not materially improve
// output and mostly costs per-frame allocation.
const DEPTH_BIN_COUNT = 10000

// BinMapping is the affine transform from perspective-divided depth to bin
// index. Far maps to bin 0, Near to the bin count, so walking bins in
// ascending index order emits geometry back to front.
type BinMapping struct {
	Far  float32
	Near float32
}

// DefaultBinMapping covers the full NDC depth range: +1 (far) lands in bin 0,
// -1 (near) in the last bin.
func DefaultBinMapping() BinMapping {
	return BinMapping{Far: 1, Near: -1}
}

// Bin computes the bucket index for a depth value. Results outside
// [0, numBins) mean the primitive is beyond the mapped range and must be
// dropped by the caller.
func (m BinMapping) Bin(depth float32, numBins int) int {
	span := m.Near - m.Far
	if span == 0 {
		return -1
	}
	return int(math32.Floor((depth - m.Far) / span * float32(numBins)))
}

// DepthBinner groups triangles into coarse depth buckets for approximate
// back-to-front emission. State lives for a single surface's draw; make a
// fresh one per surface.
type DepthBinner struct {
	bins    [][]Tri
	mapping BinMapping
	mvp     mgl32.Mat4
	dropped int
}

func NewDepthBinner(numBins int, mapping BinMapping, mvp mgl32.Mat4) *DepthBinner {
	if numBins < 1 {
		numBins = 1
	}
	return &DepthBinner{
		bins:    make([][]Tri, numBins),
		mapping: mapping,
		mvp:     mvp,
	}
}

// Insert projects the triangle's centroid through the binner's transform,
// perspective-divides and appends the triangle to the matching bucket.
// Primitives whose bin index falls outside [0, numBins) are silently
// discarded; that loss at extreme depths is part of the approximation, not
// an error.
func (b *DepthBinner) Insert(t Tri) {
	c := t.Centroid()
	clip := b.mvp.Mul4x1(c.Vec4(1))
	if clip.W() == 0 {
		b.dropped++
		return
	}
	depth := clip.Z() / clip.W()
	idx := b.mapping.Bin(depth, len(b.bins))
	if idx < 0 || idx >= len(b.bins) {
		b.dropped++
		return
	}
	b.bins[idx] = append(b.bins[idx], t)
}

// Ordered returns all binned triangles concatenated in ascending bin order,
// back to front under the default mapping. Within a bin the insertion order
// is preserved; there is no secondary sort, which is where the approximation
// comes from.
func (b *DepthBinner) Ordered() []Tri {
	n := 0
	for i := range b.bins {
		n += len(b.bins[i])
	}
	out := make([]Tri, 0, n)
	for i := range b.bins {
		out = append(out, b.bins[i]...)
	}
	return out
}

// Dropped reports how many primitives were discarded for falling outside the
// mapped depth range.
func (b *DepthBinner) Dropped() int {
	return b.dropped
}
