package wirepack

import (
	"math"

	"github.com/rawbytedev/wirepack/internal/wire"
)

// Each operation reserves the exact encoded length up front, so a hook sees
// one shortfall per item at most.

func (pc *PackContext) put1(t byte) error {
	if err := pc.reserve(1); err != nil {
		return err
	}
	pc.data[pc.pos] = t
	pc.pos++
	return nil
}

func (pc *PackContext) put2(t, d byte) error {
	if err := pc.reserve(2); err != nil {
		return err
	}
	pc.data[pc.pos] = t
	pc.data[pc.pos+1] = d
	pc.pos += 2
	return nil
}

func (pc *PackContext) putTag16(t byte, d uint16) error {
	if err := pc.reserve(3); err != nil {
		return err
	}
	pc.data[pc.pos] = t
	wire.PutUint16(pc.data[pc.pos+1:], d)
	pc.pos += 3
	return nil
}

func (pc *PackContext) putTag32(t byte, d uint32) error {
	if err := pc.reserve(5); err != nil {
		return err
	}
	pc.data[pc.pos] = t
	wire.PutUint32(pc.data[pc.pos+1:], d)
	pc.pos += 5
	return nil
}

func (pc *PackContext) putTag64(t byte, d uint64) error {
	if err := pc.reserve(9); err != nil {
		return err
	}
	pc.data[pc.pos] = t
	wire.PutUint64(pc.data[pc.pos+1:], d)
	pc.pos += 9
	return nil
}

// PackUnsigned appends v in the narrowest unsigned form.
func (pc *PackContext) PackUnsigned(v uint64) error {
	if pc.err != nil {
		return ErrStopped
	}
	switch {
	case v < 0x80:
		return pc.put1(byte(v))
	case v < 0x100:
		return pc.put2(wire.TagUint8, byte(v))
	case v < 0x10000:
		return pc.putTag16(wire.TagUint16, uint16(v))
	case v < 0x100000000:
		return pc.putTag32(wire.TagUint32, uint32(v))
	default:
		return pc.putTag64(wire.TagUint64, v)
	}
}

// PackSigned appends v in the narrowest form. Non-negative values take the
// unsigned path, which recovers the most compact encoding.
func (pc *PackContext) PackSigned(v int64) error {
	if pc.err != nil {
		return ErrStopped
	}
	if v >= 0 {
		return pc.PackUnsigned(uint64(v))
	}
	switch {
	case v >= -32:
		return pc.put1(byte(v))
	case v >= math.MinInt8:
		return pc.put2(wire.TagInt8, byte(v))
	case v >= math.MinInt16:
		return pc.putTag16(wire.TagInt16, uint16(v))
	case v >= math.MinInt32:
		return pc.putTag32(wire.TagInt32, uint32(v))
	default:
		return pc.putTag64(wire.TagInt64, uint64(v))
	}
}

// PackFloat appends f as float32, bit pattern preserved.
func (pc *PackContext) PackFloat(f float32) error {
	if pc.err != nil {
		return ErrStopped
	}
	return pc.putTag32(wire.TagFloat32, math.Float32bits(f))
}

// PackDouble appends d as float64, bit pattern preserved.
func (pc *PackContext) PackDouble(d float64) error {
	if pc.err != nil {
		return ErrStopped
	}
	return pc.putTag64(wire.TagFloat64, math.Float64bits(d))
}

// PackNil appends the nil tag.
func (pc *PackContext) PackNil() error {
	if pc.err != nil {
		return ErrStopped
	}
	return pc.put1(wire.TagNil)
}

// PackBool appends a boolean tag.
func (pc *PackContext) PackBool(b bool) error {
	if pc.err != nil {
		return ErrStopped
	}
	if b {
		return pc.put1(wire.TagTrue)
	}
	return pc.put1(wire.TagFalse)
}

// PackArraySize appends an array header for n elements. The caller must
// pack the n element values afterwards; the header carries only the count.
func (pc *PackContext) PackArraySize(n uint32) error {
	if pc.err != nil {
		return ErrStopped
	}
	switch {
	case n < 16:
		return pc.put1(wire.FixArrayBase | byte(n))
	case n < 0x10000:
		return pc.putTag16(wire.TagArray16, uint16(n))
	default:
		return pc.putTag32(wire.TagArray32, n)
	}
}

// PackMapSize appends a map header for n key/value pairs. The caller must
// pack 2*n values afterwards.
func (pc *PackContext) PackMapSize(n uint32) error {
	if pc.err != nil {
		return ErrStopped
	}
	switch {
	case n < 16:
		return pc.put1(wire.FixMapBase | byte(n))
	case n < 0x10000:
		return pc.putTag16(wire.TagMap16, uint16(n))
	default:
		return pc.putTag32(wire.TagMap32, n)
	}
}

// PackString appends s with the narrowest length form. Payloads are limited
// to what a str 32 header can declare.
func (pc *PackContext) PackString(s string) error {
	if pc.err != nil {
		return ErrStopped
	}
	l := len(s)
	if uint64(l) > math.MaxUint32 {
		return pc.fail(ErrBufferOverflow)
	}
	switch {
	case l < 32:
		if err := pc.reserve(l + 1); err != nil {
			return err
		}
		pc.data[pc.pos] = wire.FixStrBase | byte(l)
		pc.pos++
	case l < 0x100:
		if err := pc.reserve(l + 2); err != nil {
			return err
		}
		pc.data[pc.pos] = wire.TagStr8
		pc.data[pc.pos+1] = byte(l)
		pc.pos += 2
	case l < 0x10000:
		if err := pc.reserve(l + 3); err != nil {
			return err
		}
		pc.data[pc.pos] = wire.TagStr16
		wire.PutUint16(pc.data[pc.pos+1:], uint16(l))
		pc.pos += 3
	default:
		if err := pc.reserve(l + 5); err != nil {
			return err
		}
		pc.data[pc.pos] = wire.TagStr32
		wire.PutUint32(pc.data[pc.pos+1:], uint32(l))
		pc.pos += 5
	}
	pc.pos += copy(pc.data[pc.pos:], s)
	return nil
}

// PackBytes appends v as a binary blob. There is no inline short form; the
// narrowest of bin 8/16/32 is chosen.
func (pc *PackContext) PackBytes(v []byte) error {
	if pc.err != nil {
		return ErrStopped
	}
	l := len(v)
	if uint64(l) > math.MaxUint32 {
		return pc.fail(ErrBufferOverflow)
	}
	switch {
	case l < 0x100:
		if err := pc.reserve(l + 2); err != nil {
			return err
		}
		pc.data[pc.pos] = wire.TagBin8
		pc.data[pc.pos+1] = byte(l)
		pc.pos += 2
	case l < 0x10000:
		if err := pc.reserve(l + 3); err != nil {
			return err
		}
		pc.data[pc.pos] = wire.TagBin16
		wire.PutUint16(pc.data[pc.pos+1:], uint16(l))
		pc.pos += 3
	default:
		if err := pc.reserve(l + 5); err != nil {
			return err
		}
		pc.data[pc.pos] = wire.TagBin32
		wire.PutUint32(pc.data[pc.pos+1:], uint32(l))
		pc.pos += 5
	}
	pc.pos += copy(pc.data[pc.pos:], v)
	return nil
}

// PackExt appends an extension item: subtype typ followed by payload v.
// Lengths of exactly 1, 2, 4, 8 or 16 take the fixext forms; anything else
// is length-prefixed.
func (pc *PackContext) PackExt(typ int8, v []byte) error {
	if pc.err != nil {
		return ErrStopped
	}
	l := len(v)
	if uint64(l) > math.MaxUint32 {
		return pc.fail(ErrBufferOverflow)
	}
	switch l {
	case 1, 2, 4, 8, 16:
		if err := pc.reserve(l + 2); err != nil {
			return err
		}
		pc.data[pc.pos] = fixExtTag(l)
		pc.pos++
	default:
		switch {
		case l < 0x100:
			if err := pc.reserve(l + 3); err != nil {
				return err
			}
			pc.data[pc.pos] = wire.TagExt8
			pc.data[pc.pos+1] = byte(l)
			pc.pos += 2
		case l < 0x10000:
			if err := pc.reserve(l + 4); err != nil {
				return err
			}
			pc.data[pc.pos] = wire.TagExt16
			wire.PutUint16(pc.data[pc.pos+1:], uint16(l))
			pc.pos += 3
		default:
			if err := pc.reserve(l + 6); err != nil {
				return err
			}
			pc.data[pc.pos] = wire.TagExt32
			wire.PutUint32(pc.data[pc.pos+1:], uint32(l))
			pc.pos += 5
		}
	}
	pc.data[pc.pos] = byte(typ)
	pc.pos++
	pc.pos += copy(pc.data[pc.pos:], v)
	return nil
}

func fixExtTag(l int) byte {
	switch l {
	case 1:
		return wire.TagFixExt1
	case 2:
		return wire.TagFixExt2
	case 4:
		return wire.TagFixExt4
	case 8:
		return wire.TagFixExt8
	default:
		return wire.TagFixExt16
	}
}
