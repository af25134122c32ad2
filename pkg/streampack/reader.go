package streampack

import (
	"io"

	"github.com/rawbytedev/wirepack"
)

// ReaderUnpacker unpacks from an io.Reader through a fixed buffer. On
// underflow the unconsumed tail slides to the buffer front and the rest is
// refilled from the reader; a field or payload larger than the buffer gets
// a bigger buffer. Borrowed views from earlier items do not survive a
// refill.
type ReaderUnpacker struct {
	*wirepack.UnpackContext
	r   io.Reader
	buf []byte
}

// NewReaderUnpacker returns an unpacker reading from r with an internal
// buffer of at least bufSize bytes.
func NewReaderUnpacker(r io.Reader, bufSize int) (*ReaderUnpacker, error) {
	if bufSize < 64 {
		bufSize = 64
	}
	ru := &ReaderUnpacker{r: r, buf: make([]byte, bufSize)}
	uc, err := wirepack.NewUnpackContext(ru.buf[:0], ru.refill)
	if err != nil {
		return nil, err
	}
	ru.UnpackContext = uc
	return ru, nil
}

func (ru *ReaderUnpacker) refill(uc *wirepack.UnpackContext, needed int) error {
	tail := uc.Remaining()
	if needed > len(ru.buf) {
		ru.buf = make([]byte, needed)
	}
	n := copy(ru.buf, tail)
	if n < needed {
		m, err := io.ReadAtLeast(ru.r, ru.buf[n:], needed-n)
		n += m
		if err != nil {
			// A short or empty read means the source is done; the engine
			// decides between clean end and truncation from the cursor
			// position.
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return io.EOF
			}
			return err
		}
	}
	uc.SetRegion(ru.buf[:n], 0)
	return nil
}
