package wirepack

import (
	"math"

	"github.com/rawbytedev/wirepack/internal/wire"
)

// Kind tags a decoded item. Positive and negative integers are one logical
// type split by sign so range dispatch stays cheap; a signed wire form
// holding a non-negative value decodes as KindPositiveInt.
type Kind uint8

const (
	KindNil Kind = iota
	KindBool
	KindPositiveInt
	KindNegativeInt
	KindFloat
	KindDouble
	KindString
	KindBinary
	KindArray
	KindMap
	KindExt
)

// Item is one decoded wire value. Exactly one payload field is active,
// selected by Kind. Bytes is a borrowed view into the source region for
// KindString, KindBinary and KindExt; it is invalidated when the region is
// refilled, reused or the cursor advances past it.
type Item struct {
	Kind    Kind
	Uint    uint64 // KindPositiveInt
	Int     int64  // KindNegativeInt, always < 0
	Bool    bool   // KindBool
	Float   float32
	Double  float64
	Size    uint32 // KindArray element count, KindMap pair count, blob byte length
	Bytes   []byte // KindString, KindBinary, KindExt
	ExtType int8   // KindExt subtype
}

func (uc *UnpackContext) load8() (uint8, error) {
	if err := uc.assertSpace(1, false); err != nil {
		return 0, err
	}
	v := uc.data[uc.pos]
	uc.pos++
	return v, nil
}

func (uc *UnpackContext) load16() (uint16, error) {
	if err := uc.assertSpace(2, false); err != nil {
		return 0, err
	}
	v := wire.Uint16(uc.data[uc.pos:])
	uc.pos += 2
	return v, nil
}

func (uc *UnpackContext) load32() (uint32, error) {
	if err := uc.assertSpace(4, false); err != nil {
		return 0, err
	}
	v := wire.Uint32(uc.data[uc.pos:])
	uc.pos += 4
	return v, nil
}

func (uc *UnpackContext) load64() (uint64, error) {
	if err := uc.assertSpace(8, false); err != nil {
		return 0, err
	}
	v := wire.Uint64(uc.data[uc.pos:])
	uc.pos += 8
	return v, nil
}

// blob records a borrowed view of length bytes at the cursor and advances
// past them. No copy is made.
func (uc *UnpackContext) blob(kind Kind, length uint32, extType int8) error {
	if err := uc.assertSpace(int(length), false); err != nil {
		return err
	}
	uc.Item = Item{
		Kind:    kind,
		Size:    length,
		Bytes:   uc.data[uc.pos : uc.pos+int(length)],
		ExtType: extType,
	}
	uc.pos += int(length)
	return nil
}

func (uc *UnpackContext) signedItem(v int64) {
	if v >= 0 {
		uc.Item = Item{Kind: KindPositiveInt, Uint: uint64(v)}
	} else {
		uc.Item = Item{Kind: KindNegativeInt, Int: v}
	}
}

// Next decodes the next item from the region into uc.Item. One tag byte is
// consumed per call plus that item's fields and payload; aggregate headers
// consume only the header, their elements arrive as subsequent items.
func (uc *UnpackContext) Next() error {
	if uc.err != nil {
		return ErrStopped
	}
	if err := uc.assertSpace(1, true); err != nil {
		return err
	}
	c := uc.data[uc.pos]
	uc.pos++

	switch {
	case c <= 0x7f: // positive fixint
		uc.Item = Item{Kind: KindPositiveInt, Uint: uint64(c)}
		return nil
	case c <= 0x8f: // fixmap
		uc.Item = Item{Kind: KindMap, Size: uint32(c & 0x0f)}
		return nil
	case c <= 0x9f: // fixarray
		uc.Item = Item{Kind: KindArray, Size: uint32(c & 0x0f)}
		return nil
	case c <= 0xbf: // fixstr
		return uc.blob(KindString, uint32(c&0x1f), 0)
	case c >= wire.NegFixIntMin: // negative fixint
		uc.Item = Item{Kind: KindNegativeInt, Int: int64(int8(c))}
		return nil
	}

	switch c {
	case wire.TagNil:
		uc.Item = Item{Kind: KindNil}
	case wire.TagFalse:
		uc.Item = Item{Kind: KindBool, Bool: false}
	case wire.TagTrue:
		uc.Item = Item{Kind: KindBool, Bool: true}

	case wire.TagBin8:
		l, err := uc.load8()
		if err != nil {
			return err
		}
		return uc.blob(KindBinary, uint32(l), 0)
	case wire.TagBin16:
		l, err := uc.load16()
		if err != nil {
			return err
		}
		return uc.blob(KindBinary, uint32(l), 0)
	case wire.TagBin32:
		l, err := uc.load32()
		if err != nil {
			return err
		}
		return uc.blob(KindBinary, l, 0)

	case wire.TagExt8:
		l, err := uc.load8()
		if err != nil {
			return err
		}
		return uc.ext(uint32(l))
	case wire.TagExt16:
		l, err := uc.load16()
		if err != nil {
			return err
		}
		return uc.ext(uint32(l))
	case wire.TagExt32:
		l, err := uc.load32()
		if err != nil {
			return err
		}
		return uc.ext(l)

	case wire.TagFloat32:
		v, err := uc.load32()
		if err != nil {
			return err
		}
		uc.Item = Item{Kind: KindFloat, Float: math.Float32frombits(v)}
	case wire.TagFloat64:
		v, err := uc.load64()
		if err != nil {
			return err
		}
		uc.Item = Item{Kind: KindDouble, Double: math.Float64frombits(v)}

	case wire.TagUint8:
		v, err := uc.load8()
		if err != nil {
			return err
		}
		uc.Item = Item{Kind: KindPositiveInt, Uint: uint64(v)}
	case wire.TagUint16:
		v, err := uc.load16()
		if err != nil {
			return err
		}
		uc.Item = Item{Kind: KindPositiveInt, Uint: uint64(v)}
	case wire.TagUint32:
		v, err := uc.load32()
		if err != nil {
			return err
		}
		uc.Item = Item{Kind: KindPositiveInt, Uint: uint64(v)}
	case wire.TagUint64:
		v, err := uc.load64()
		if err != nil {
			return err
		}
		uc.Item = Item{Kind: KindPositiveInt, Uint: v}

	case wire.TagInt8:
		v, err := uc.load8()
		if err != nil {
			return err
		}
		uc.signedItem(int64(int8(v)))
	case wire.TagInt16:
		v, err := uc.load16()
		if err != nil {
			return err
		}
		uc.signedItem(int64(int16(v)))
	case wire.TagInt32:
		v, err := uc.load32()
		if err != nil {
			return err
		}
		uc.signedItem(int64(int32(v)))
	case wire.TagInt64:
		v, err := uc.load64()
		if err != nil {
			return err
		}
		uc.signedItem(int64(v))

	case wire.TagFixExt1:
		return uc.ext(1)
	case wire.TagFixExt2:
		return uc.ext(2)
	case wire.TagFixExt4:
		return uc.ext(4)
	case wire.TagFixExt8:
		return uc.ext(8)
	case wire.TagFixExt16:
		return uc.ext(16)

	case wire.TagStr8:
		l, err := uc.load8()
		if err != nil {
			return err
		}
		return uc.blob(KindString, uint32(l), 0)
	case wire.TagStr16:
		l, err := uc.load16()
		if err != nil {
			return err
		}
		return uc.blob(KindString, uint32(l), 0)
	case wire.TagStr32:
		l, err := uc.load32()
		if err != nil {
			return err
		}
		return uc.blob(KindString, l, 0)

	case wire.TagArray16:
		n, err := uc.load16()
		if err != nil {
			return err
		}
		uc.Item = Item{Kind: KindArray, Size: uint32(n)}
	case wire.TagArray32:
		n, err := uc.load32()
		if err != nil {
			return err
		}
		uc.Item = Item{Kind: KindArray, Size: n}
	case wire.TagMap16:
		n, err := uc.load16()
		if err != nil {
			return err
		}
		uc.Item = Item{Kind: KindMap, Size: uint32(n)}
	case wire.TagMap32:
		n, err := uc.load32()
		if err != nil {
			return err
		}
		uc.Item = Item{Kind: KindMap, Size: n}

	default: // 0xc1
		return uc.fail(ErrMalformedInput)
	}
	return nil
}

// ext reads the subtype byte then the payload view.
func (uc *UnpackContext) ext(length uint32) error {
	t, err := uc.load8()
	if err != nil {
		return err
	}
	return uc.blob(KindExt, length, int8(t))
}
