package wirepack

import "github.com/rawbytedev/wirepack/internal/wire"

func (uc *UnpackContext) skipBytes(n int) error {
	if err := uc.assertSpace(n, false); err != nil {
		return err
	}
	uc.pos += n
	return nil
}

// SkipItems advances past n logical items without decoding them. Aggregate
// headers enlarge the remaining count instead of recursing, so traversal
// cost is O(items skipped) with constant auxiliary state no matter how
// deeply input nests. n is therefore also the caller's budget against
// adversarial expansion.
func (uc *UnpackContext) SkipItems(n int64) error {
	if uc.err != nil {
		return ErrStopped
	}
	for ; n > 0; n-- {
		if err := uc.assertSpace(1, true); err != nil {
			return err
		}
		c := uc.data[uc.pos]
		uc.pos++

		switch {
		case c <= 0x7f || c >= wire.NegFixIntMin: // fixint, no payload
			continue
		case c <= 0x8f: // fixmap: key and value each count as one item
			n += 2 * int64(c&0x0f)
			continue
		case c <= 0x9f: // fixarray
			n += int64(c & 0x0f)
			continue
		case c <= 0xbf: // fixstr
			if err := uc.skipBytes(int(c & 0x1f)); err != nil {
				return err
			}
			continue
		}

		switch c {
		case wire.TagNil, wire.TagFalse, wire.TagTrue:

		case wire.TagUint8, wire.TagInt8:
			if err := uc.skipBytes(1); err != nil {
				return err
			}
		case wire.TagUint16, wire.TagInt16:
			if err := uc.skipBytes(2); err != nil {
				return err
			}
		case wire.TagFloat32, wire.TagUint32, wire.TagInt32:
			if err := uc.skipBytes(4); err != nil {
				return err
			}
		case wire.TagFloat64, wire.TagUint64, wire.TagInt64:
			if err := uc.skipBytes(8); err != nil {
				return err
			}

		// fixext N carries one subtype byte plus N payload bytes.
		case wire.TagFixExt1:
			if err := uc.skipBytes(2); err != nil {
				return err
			}
		case wire.TagFixExt2:
			if err := uc.skipBytes(3); err != nil {
				return err
			}
		case wire.TagFixExt4:
			if err := uc.skipBytes(5); err != nil {
				return err
			}
		case wire.TagFixExt8:
			if err := uc.skipBytes(9); err != nil {
				return err
			}
		case wire.TagFixExt16:
			if err := uc.skipBytes(17); err != nil {
				return err
			}

		case wire.TagStr8, wire.TagBin8:
			l, err := uc.load8()
			if err != nil {
				return err
			}
			if err := uc.skipBytes(int(l)); err != nil {
				return err
			}
		case wire.TagStr16, wire.TagBin16:
			l, err := uc.load16()
			if err != nil {
				return err
			}
			if err := uc.skipBytes(int(l)); err != nil {
				return err
			}
		case wire.TagStr32, wire.TagBin32:
			l, err := uc.load32()
			if err != nil {
				return err
			}
			if err := uc.skipBytes(int(l)); err != nil {
				return err
			}

		case wire.TagExt8:
			l, err := uc.load8()
			if err != nil {
				return err
			}
			if err := uc.skipBytes(int(l) + 1); err != nil {
				return err
			}
		case wire.TagExt16:
			l, err := uc.load16()
			if err != nil {
				return err
			}
			if err := uc.skipBytes(int(l) + 1); err != nil {
				return err
			}
		case wire.TagExt32:
			l, err := uc.load32()
			if err != nil {
				return err
			}
			if err := uc.skipBytes(int(l) + 1); err != nil {
				return err
			}

		case wire.TagArray16:
			l, err := uc.load16()
			if err != nil {
				return err
			}
			n += int64(l)
		case wire.TagArray32:
			l, err := uc.load32()
			if err != nil {
				return err
			}
			n += int64(l)
		case wire.TagMap16:
			l, err := uc.load16()
			if err != nil {
				return err
			}
			n += 2 * int64(l)
		case wire.TagMap32:
			l, err := uc.load32()
			if err != nil {
				return err
			}
			n += 2 * int64(l)

		default: // 0xc1
			return uc.fail(ErrMalformedInput)
		}
	}
	return nil
}
