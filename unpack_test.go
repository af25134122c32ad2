package wirepack

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUnpacker(t *testing.T, data []byte) *UnpackContext {
	t.Helper()
	uc, err := NewUnpackContext(data, nil)
	require.NoError(t, err)
	return uc
}

func TestUnpackArrayScenario(t *testing.T) {
	uc := newUnpacker(t, []byte{0x93, 0x01, 0x02, 0x03})

	require.NoError(t, uc.Next())
	assert.Equal(t, KindArray, uc.Item.Kind)
	assert.Equal(t, uint32(3), uc.Item.Size)

	for want := uint64(1); want <= 3; want++ {
		require.NoError(t, uc.Next())
		assert.Equal(t, KindPositiveInt, uc.Item.Kind)
		assert.Equal(t, want, uc.Item.Uint)
	}
	require.ErrorIs(t, uc.Next(), ErrEndOfInput)
}

func TestUnpackIntegers(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		kind Kind
		uval uint64
		ival int64
	}{
		{"fixint 0", []byte{0x00}, KindPositiveInt, 0, 0},
		{"fixint 127", []byte{0x7f}, KindPositiveInt, 127, 0},
		{"neg fixint -1", []byte{0xff}, KindNegativeInt, 0, -1},
		{"neg fixint -32", []byte{0xe0}, KindNegativeInt, 0, -32},
		{"uint8", []byte{0xcc, 0x80}, KindPositiveInt, 128, 0},
		{"uint16", []byte{0xcd, 0x01, 0x2c}, KindPositiveInt, 300, 0},
		{"uint32", []byte{0xce, 0x00, 0x01, 0x00, 0x00}, KindPositiveInt, 65536, 0},
		{"uint64", []byte{0xcf, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00}, KindPositiveInt, 1 << 32, 0},
		{"int8 negative", []byte{0xd0, 0xfb}, KindNegativeInt, 0, -5},
		{"int16 negative", []byte{0xd1, 0xff, 0x7f}, KindNegativeInt, 0, -129},
		{"int32 negative", []byte{0xd2, 0xff, 0xff, 0x7f, 0xff}, KindNegativeInt, 0, -32769},
		{"int64 negative", []byte{0xd3, 0xff, 0xff, 0xff, 0xff, 0x7f, 0xff, 0xff, 0xff}, KindNegativeInt, 0, -2147483649},
		// signed wire forms holding non-negative values come back positive
		{"int8 retag", []byte{0xd0, 0x05}, KindPositiveInt, 5, 0},
		{"int16 retag", []byte{0xd1, 0x01, 0x2c}, KindPositiveInt, 300, 0},
		{"int32 retag", []byte{0xd2, 0x00, 0x00, 0x00, 0x00}, KindPositiveInt, 0, 0},
		{"int64 retag", []byte{0xd3, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x2a}, KindPositiveInt, 42, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			uc := newUnpacker(t, c.data)
			require.NoError(t, uc.Next())
			require.Equal(t, c.kind, uc.Item.Kind)
			if c.kind == KindPositiveInt {
				assert.Equal(t, c.uval, uc.Item.Uint)
			} else {
				assert.Equal(t, c.ival, uc.Item.Int)
			}
		})
	}
}

func TestUnpackScalars(t *testing.T) {
	uc := newUnpacker(t, []byte{0xc0, 0xc2, 0xc3})
	require.NoError(t, uc.Next())
	assert.Equal(t, KindNil, uc.Item.Kind)
	require.NoError(t, uc.Next())
	assert.Equal(t, KindBool, uc.Item.Kind)
	assert.False(t, uc.Item.Bool)
	require.NoError(t, uc.Next())
	assert.Equal(t, KindBool, uc.Item.Kind)
	assert.True(t, uc.Item.Bool)

	uc = newUnpacker(t, []byte{0xca, 0x3f, 0xc0, 0x00, 0x00})
	require.NoError(t, uc.Next())
	assert.Equal(t, KindFloat, uc.Item.Kind)
	assert.Equal(t, float32(1.5), uc.Item.Float)

	uc = newUnpacker(t, []byte{0xcb, 0x3f, 0xf8, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00})
	require.NoError(t, uc.Next())
	assert.Equal(t, KindDouble, uc.Item.Kind)
	assert.Equal(t, 1.5, uc.Item.Double)
}

func TestUnpackBlobs(t *testing.T) {
	uc := newUnpacker(t, []byte{0xa2, 'a', 'b'})
	require.NoError(t, uc.Next())
	assert.Equal(t, KindString, uc.Item.Kind)
	assert.Equal(t, []byte("ab"), uc.Item.Bytes)
	assert.Equal(t, uint32(2), uc.Item.Size)

	uc = newUnpacker(t, []byte{0xd9, 0x03, 'x', 'y', 'z'})
	require.NoError(t, uc.Next())
	assert.Equal(t, KindString, uc.Item.Kind)
	assert.Equal(t, []byte("xyz"), uc.Item.Bytes)

	uc = newUnpacker(t, []byte{0xc4, 0x02, 0xde, 0xad})
	require.NoError(t, uc.Next())
	assert.Equal(t, KindBinary, uc.Item.Kind)
	assert.Equal(t, []byte{0xde, 0xad}, uc.Item.Bytes)

	// the view borrows from the source buffer, no copy
	src := []byte{0xa1, 'q'}
	uc = newUnpacker(t, src)
	require.NoError(t, uc.Next())
	src[1] = 'r'
	assert.Equal(t, []byte("r"), uc.Item.Bytes)
}

func TestUnpackExt(t *testing.T) {
	uc := newUnpacker(t, []byte{0xc7, 0x03, 0x07, 1, 2, 3})
	require.NoError(t, uc.Next())
	assert.Equal(t, KindExt, uc.Item.Kind)
	assert.Equal(t, int8(7), uc.Item.ExtType)
	assert.Equal(t, []byte{1, 2, 3}, uc.Item.Bytes)

	// negative subtype survives the byte round-trip
	uc = newUnpacker(t, []byte{0xd6, 0xff, 1, 2, 3, 4})
	require.NoError(t, uc.Next())
	assert.Equal(t, KindExt, uc.Item.Kind)
	assert.Equal(t, int8(-1), uc.Item.ExtType)
	assert.Equal(t, []byte{1, 2, 3, 4}, uc.Item.Bytes)

	uc = newUnpacker(t, []byte{0xc8, 0x00, 0x01, 0x2a, 0x00})
	require.NoError(t, uc.Next())
	assert.Equal(t, KindExt, uc.Item.Kind)
	assert.Equal(t, int8(42), uc.Item.ExtType)
	assert.Len(t, uc.Item.Bytes, 1)
}

func TestUnpackHeaders(t *testing.T) {
	uc := newUnpacker(t, []byte{0xdc, 0x00, 0x10})
	require.NoError(t, uc.Next())
	assert.Equal(t, KindArray, uc.Item.Kind)
	assert.Equal(t, uint32(16), uc.Item.Size)

	uc = newUnpacker(t, []byte{0xdd, 0x00, 0x01, 0x00, 0x00})
	require.NoError(t, uc.Next())
	assert.Equal(t, KindArray, uc.Item.Kind)
	assert.Equal(t, uint32(65536), uc.Item.Size)

	uc = newUnpacker(t, []byte{0x82})
	require.NoError(t, uc.Next())
	assert.Equal(t, KindMap, uc.Item.Kind)
	assert.Equal(t, uint32(2), uc.Item.Size)

	uc = newUnpacker(t, []byte{0xde, 0xff, 0xff})
	require.NoError(t, uc.Next())
	assert.Equal(t, KindMap, uc.Item.Kind)
	assert.Equal(t, uint32(65535), uc.Item.Size)

	uc = newUnpacker(t, []byte{0xdf, 0x00, 0x01, 0x00, 0x00})
	require.NoError(t, uc.Next())
	assert.Equal(t, KindMap, uc.Item.Kind)
	assert.Equal(t, uint32(65536), uc.Item.Size)
}

func TestUnpackMalformed(t *testing.T) {
	uc := newUnpacker(t, []byte{0xc1, 0x00})
	require.ErrorIs(t, uc.Next(), ErrMalformedInput)

	// latched: the cursor does not move again
	pos := uc.pos
	require.ErrorIs(t, uc.Next(), ErrStopped)
	assert.Equal(t, pos, uc.pos)
	assert.ErrorIs(t, uc.Err(), ErrMalformedInput)
}

func TestUnpackExhaustion(t *testing.T) {
	// clean end: region exhausted exactly at an item boundary
	uc := newUnpacker(t, nil)
	require.ErrorIs(t, uc.Next(), ErrEndOfInput)

	uc = newUnpacker(t, []byte{0x2a})
	require.NoError(t, uc.Next())
	require.ErrorIs(t, uc.Next(), ErrEndOfInput)

	// truncation: tag consumed, field missing
	uc = newUnpacker(t, []byte{0xcd, 0x01})
	require.ErrorIs(t, uc.Next(), ErrBufferUnderflow)

	// truncation inside a declared payload
	uc = newUnpacker(t, []byte{0xa2, 'a'})
	require.ErrorIs(t, uc.Next(), ErrBufferUnderflow)

	// truncation between ext length and subtype
	uc = newUnpacker(t, []byte{0xc7, 0x01})
	require.ErrorIs(t, uc.Next(), ErrBufferUnderflow)
}

func TestUnderflowHookReceivesNeeded(t *testing.T) {
	var needs []int
	var remainders []int
	uc, err := NewUnpackContext([]byte{0xcd, 0x01}, func(uc *UnpackContext, needed int) error {
		needs = append(needs, needed)
		remainders = append(remainders, len(uc.Remaining()))
		return io.EOF
	})
	require.NoError(t, err)

	require.ErrorIs(t, uc.Next(), ErrBufferUnderflow)
	require.Equal(t, []int{2}, needs) // the whole 16-bit field at the cursor
	require.Equal(t, []int{1}, remainders)
}

func TestUnderflowHookRefills(t *testing.T) {
	uc, err := NewUnpackContext([]byte{0xcd}, func(uc *UnpackContext, needed int) error {
		require.Equal(t, 2, needed)
		uc.SetRegion([]byte{0x01, 0x2c}, 0)
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, uc.Next())
	assert.Equal(t, KindPositiveInt, uc.Item.Kind)
	assert.Equal(t, uint64(300), uc.Item.Uint)
}

func TestUnderflowHookEOFAtBoundary(t *testing.T) {
	uc, err := NewUnpackContext([]byte{0x2a}, func(uc *UnpackContext, needed int) error {
		return io.EOF
	})
	require.NoError(t, err)

	require.NoError(t, uc.Next())
	require.ErrorIs(t, uc.Next(), ErrEndOfInput)
}

func TestUnderflowHookErrorLatchedVerbatim(t *testing.T) {
	uc, err := NewUnpackContext(nil, func(uc *UnpackContext, needed int) error {
		return assert.AnError
	})
	require.NoError(t, err)

	require.ErrorIs(t, uc.Next(), assert.AnError)
	assert.ErrorIs(t, uc.Err(), assert.AnError)
	require.ErrorIs(t, uc.Next(), ErrStopped)
}

func TestUnderflowHookNoProgress(t *testing.T) {
	uc, err := NewUnpackContext(nil, func(uc *UnpackContext, needed int) error {
		return nil
	})
	require.NoError(t, err)
	require.ErrorIs(t, uc.Next(), ErrEndOfInput)
}
