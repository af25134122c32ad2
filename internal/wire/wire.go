package wire

import (
	"encoding/binary"
	"unsafe"
)

// MessagePack tag bytes.
// See: https://github.com/msgpack/msgpack/blob/master/spec.md
const (
	TagNil byte = 0xc0

	TagFalse byte = 0xc2
	TagTrue  byte = 0xc3

	TagBin8  byte = 0xc4
	TagBin16 byte = 0xc5
	TagBin32 byte = 0xc6

	TagExt8  byte = 0xc7
	TagExt16 byte = 0xc8
	TagExt32 byte = 0xc9

	TagFloat32 byte = 0xca
	TagFloat64 byte = 0xcb

	TagUint8  byte = 0xcc
	TagUint16 byte = 0xcd
	TagUint32 byte = 0xce
	TagUint64 byte = 0xcf

	TagInt8  byte = 0xd0
	TagInt16 byte = 0xd1
	TagInt32 byte = 0xd2
	TagInt64 byte = 0xd3

	TagFixExt1  byte = 0xd4
	TagFixExt2  byte = 0xd5
	TagFixExt4  byte = 0xd6
	TagFixExt8  byte = 0xd7
	TagFixExt16 byte = 0xd8

	TagStr8  byte = 0xd9
	TagStr16 byte = 0xda
	TagStr32 byte = 0xdb

	TagArray16 byte = 0xdc
	TagArray32 byte = 0xdd

	TagMap16 byte = 0xde
	TagMap32 byte = 0xdf
)

// Inline short-form bases. The low bits of the tag byte carry the value:
// 4 bits of count for fixmap/fixarray, 5 bits of length for fixstr.
const (
	FixMapBase   byte = 0x80
	FixArrayBase byte = 0x90
	FixStrBase   byte = 0xa0
	NegFixIntMin byte = 0xe0
)

// Wire order is big-endian on every host; these wrappers exist so the
// engine never spells the byte order inline.

func PutUint16(b []byte, v uint16) { binary.BigEndian.PutUint16(b, v) }
func PutUint32(b []byte, v uint32) { binary.BigEndian.PutUint32(b, v) }
func PutUint64(b []byte, v uint64) { binary.BigEndian.PutUint64(b, v) }

func Uint16(b []byte) uint16 { return binary.BigEndian.Uint16(b) }
func Uint32(b []byte) uint32 { return binary.BigEndian.Uint32(b) }
func Uint64(b []byte) uint64 { return binary.BigEndian.Uint64(b) }

var (
	hostLittle      bool
	orderConclusive bool
)

// The probe reinterprets a known 32-bit pattern through memory and
// cross-checks against shift-based serialization. Both checks must agree
// on exactly one order; anything else is a toolchain/platform we do not
// understand and context initialization refuses to proceed.
func init() {
	const pattern = uint32(0x31323334)
	v := pattern
	probe := *(*[4]byte)(unsafe.Pointer(&v))

	var le, be [4]byte
	binary.LittleEndian.PutUint32(le[:], pattern)
	binary.BigEndian.PutUint32(be[:], pattern)

	switch probe {
	case le:
		hostLittle = true
		orderConclusive = probe != be
	case be:
		hostLittle = false
		orderConclusive = probe != le
	default:
		orderConclusive = false
	}
}

// ByteOrderOK reports whether the host byte-order self-test was conclusive.
func ByteOrderOK() bool { return orderConclusive }

// HostLittleEndian reports the probed host order. Only meaningful when
// ByteOrderOK is true.
func HostLittleEndian() bool { return hostLittle }
