// Package wirepack is a streaming encoder/decoder for the MessagePack wire
// format operating on caller-owned byte regions.
//
// A PackContext appends one value per call at a cursor, always choosing the
// narrowest wire form that fits. An UnpackContext pulls one typed item per
// Next call; string, binary and extension payloads are returned as borrowed
// views into the source buffer and stay valid only until the region is
// refilled, reused or advanced past them. Callers needing persistence must
// copy.
//
// Both contexts accept an optional hook invoked when the region runs out of
// room (pack) or bytes (unpack). The hook is the seam that lets the same
// engine serve fixed buffers, growable buffers and streaming sources; ready
// made hooks live in pkg/streampack.
//
// Errors latch: the first terminal error is recorded in the context and every
// later operation returns ErrStopped without touching the buffer, so a whole
// sequence of calls can be issued and Err checked once at the end.
//
// A context is single-threaded state owned by one caller; two contexts over
// independent buffers need no coordination.
package wirepack
