// Package streampack provides ready-made overflow/underflow hooks for
// wirepack contexts: a growable in-memory packer, a flushing packer over an
// io.Writer, and a refilling unpacker over an io.Reader. All three are built
// purely on the public hook seam; the engine itself never allocates or
// performs I/O.
package streampack
