package streampack

import "github.com/rawbytedev/wirepack"

// GrowPacker packs into a buffer it owns and grows on demand. The zero
// value is not usable; construct with NewGrowPacker.
type GrowPacker struct {
	*wirepack.PackContext
	buf []byte
}

// NewGrowPacker returns a packer with an initial capacity of at least
// initial bytes.
func NewGrowPacker(initial int) (*GrowPacker, error) {
	if initial < 64 {
		initial = 64
	}
	g := &GrowPacker{buf: make([]byte, initial)}
	pc, err := wirepack.NewPackContext(g.buf, g.grow)
	if err != nil {
		return nil, err
	}
	g.PackContext = pc
	return g, nil
}

// grow doubles the buffer, or jumps straight to used+needed when doubling
// is not enough, and carries the packed prefix over.
func (g *GrowPacker) grow(pc *wirepack.PackContext, needed int) error {
	used := len(pc.Bytes())
	size := 2 * len(g.buf)
	if size < used+needed {
		size = used + needed
	}
	nb := make([]byte, size)
	copy(nb, g.buf[:used])
	g.buf = nb
	pc.SetRegion(nb, used)
	return nil
}
