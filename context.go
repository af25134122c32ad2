package wirepack

import (
	"errors"
	"io"

	"github.com/rawbytedev/wirepack/internal/wire"
)

var (
	ErrStopped         = errors.New("context stopped by earlier error")
	ErrBufferOverflow  = errors.New("pack buffer overflow")
	ErrBufferUnderflow = errors.New("unpack buffer underflow")
	ErrEndOfInput      = errors.New("end of input")
	ErrMalformedInput  = errors.New("malformed input")
	ErrWrongByteOrder  = errors.New("host byte order self-test failed")
)

// PackOverflow is invoked when a pack operation needs more room than the
// region holds past the cursor. On success the hook must have made needed
// bytes available at the cursor, typically via SetRegion (flush-and-reset or
// grow-and-copy). Any returned error latches the context.
type PackOverflow func(pc *PackContext, needed int) error

// UnpackUnderflow is invoked when a decode needs more bytes than the region
// holds past the cursor. On success the hook must have made needed bytes
// readable at the cursor, typically by sliding the unconsumed tail to the
// front of its buffer, refilling, and calling SetRegion. Returning io.EOF
// signals a cleanly exhausted source; it maps to ErrEndOfInput when the
// shortfall falls on an item boundary and ErrBufferUnderflow mid-item. Any
// other error latches the context verbatim.
type UnpackUnderflow func(uc *UnpackContext, needed int) error

// PackContext appends minimal MessagePack encodings at a cursor over a
// caller-owned region.
type PackContext struct {
	data     []byte
	pos      int
	err      error
	overflow PackOverflow
}

// NewPackContext binds a pack context to buf. overflow may be nil, in which
// case running out of room is ErrBufferOverflow.
func NewPackContext(buf []byte, overflow PackOverflow) (*PackContext, error) {
	if !wire.ByteOrderOK() {
		return nil, ErrWrongByteOrder
	}
	return &PackContext{data: buf, overflow: overflow}, nil
}

// Err returns the latched terminal error, or nil while the context is live.
func (pc *PackContext) Err() error { return pc.err }

// Bytes returns the encoded region so far: everything between the start of
// the current region and the cursor.
func (pc *PackContext) Bytes() []byte { return pc.data[:pc.pos] }

// SetRegion replaces the context's byte region and cursor. Meant for
// overflow hooks; any previously returned Bytes view is invalidated.
func (pc *PackContext) SetRegion(buf []byte, pos int) {
	pc.data = buf
	pc.pos = pos
}

func (pc *PackContext) fail(err error) error {
	pc.err = err
	return err
}

// reserve ensures needed bytes of room past the cursor, invoking the
// overflow hook as required. A hook that reports success without enlarging
// the available room fails the operation instead of livelocking.
func (pc *PackContext) reserve(needed int) error {
	for needed > len(pc.data)-pc.pos {
		if pc.overflow == nil {
			return pc.fail(ErrBufferOverflow)
		}
		avail := len(pc.data) - pc.pos
		if err := pc.overflow(pc, needed); err != nil {
			return pc.fail(err)
		}
		if len(pc.data)-pc.pos <= avail {
			return pc.fail(ErrBufferOverflow)
		}
	}
	return nil
}

// UnpackContext pulls typed items from a cursor over a caller-owned region.
// After a successful Next the decoded value is in Item.
type UnpackContext struct {
	data      []byte
	pos       int
	err       error
	underflow UnpackUnderflow

	// Item holds the most recently decoded item. Overwritten by every
	// successful Next.
	Item Item
}

// NewUnpackContext binds an unpack context to buf. underflow may be nil, in
// which case exhausting the region is ErrEndOfInput at an item boundary and
// ErrBufferUnderflow mid-item.
func NewUnpackContext(buf []byte, underflow UnpackUnderflow) (*UnpackContext, error) {
	if !wire.ByteOrderOK() {
		return nil, ErrWrongByteOrder
	}
	return &UnpackContext{data: buf, underflow: underflow}, nil
}

// Err returns the latched terminal error, or nil while the context is live.
func (uc *UnpackContext) Err() error { return uc.err }

// Remaining returns the unconsumed bytes past the cursor. Meant for
// underflow hooks sliding the tail into a fresh region.
func (uc *UnpackContext) Remaining() []byte { return uc.data[uc.pos:] }

// SetRegion replaces the context's byte region and cursor. Meant for
// underflow hooks; borrowed views from earlier items are invalidated.
func (uc *UnpackContext) SetRegion(buf []byte, pos int) {
	uc.data = buf
	uc.pos = pos
}

func (uc *UnpackContext) fail(err error) error {
	uc.err = err
	return err
}

// assertSpace ensures needed bytes are readable at the cursor, invoking the
// underflow hook as required. atBoundary selects which terminal code an
// exhausted source maps to: ErrEndOfInput before an item's tag byte,
// ErrBufferUnderflow once an item is partially consumed.
func (uc *UnpackContext) assertSpace(needed int, atBoundary bool) error {
	for needed > len(uc.data)-uc.pos {
		exhausted := ErrBufferUnderflow
		if atBoundary {
			exhausted = ErrEndOfInput
		}
		if uc.underflow == nil {
			return uc.fail(exhausted)
		}
		avail := len(uc.data) - uc.pos
		if err := uc.underflow(uc, needed); err != nil {
			if errors.Is(err, io.EOF) {
				return uc.fail(exhausted)
			}
			return uc.fail(err)
		}
		if len(uc.data)-uc.pos <= avail {
			return uc.fail(exhausted)
		}
	}
	return nil
}
