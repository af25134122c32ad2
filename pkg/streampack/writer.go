package streampack

import (
	"io"

	"github.com/rawbytedev/wirepack"
)

// WriterPacker packs through a fixed buffer into an io.Writer. When the
// buffer fills, the packed prefix is flushed and the cursor reset; a single
// item larger than the buffer gets a one-off buffer of its own size. Call
// Flush when the sequence is complete.
type WriterPacker struct {
	*wirepack.PackContext
	w   io.Writer
	buf []byte
}

// NewWriterPacker returns a packer flushing to w with an internal buffer of
// at least bufSize bytes.
func NewWriterPacker(w io.Writer, bufSize int) (*WriterPacker, error) {
	if bufSize < 64 {
		bufSize = 64
	}
	wp := &WriterPacker{w: w, buf: make([]byte, bufSize)}
	pc, err := wirepack.NewPackContext(wp.buf, wp.overflow)
	if err != nil {
		return nil, err
	}
	wp.PackContext = pc
	return wp, nil
}

func (wp *WriterPacker) overflow(pc *wirepack.PackContext, needed int) error {
	if err := wp.flush(pc); err != nil {
		return err
	}
	if needed > len(wp.buf) {
		wp.buf = make([]byte, needed)
	}
	pc.SetRegion(wp.buf, 0)
	return nil
}

func (wp *WriterPacker) flush(pc *wirepack.PackContext) error {
	pending := pc.Bytes()
	if len(pending) == 0 {
		return nil
	}
	if _, err := wp.w.Write(pending); err != nil {
		return err
	}
	return nil
}

// Flush writes any packed bytes still in the buffer. The packer stays
// usable afterwards.
func (wp *WriterPacker) Flush() error {
	if err := wp.Err(); err != nil {
		return err
	}
	if err := wp.flush(wp.PackContext); err != nil {
		return err
	}
	wp.SetRegion(wp.buf, 0)
	return nil
}
