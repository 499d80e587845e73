// Package udphdr implements the fixed 8-byte UDP header as the simplest
// sibling of the wire-codec pattern demonstrated by wire/ipv6ext: an
// unchecked view over a borrowed slice, an explicit length check, and a
// symmetric Repr parse/emit pair — but with no variable-length payload
// field to compute, since the UDP header carries its own fixed layout.
package udphdr

import (
	"encoding/binary"

	"github.com/go-netstack/netcore/corerr"
)

const headerSize = 8

// Header is a read/write view over a UDP header buffer.
type Header struct {
	buf []byte
}

// NewUnchecked wraps buf with no validation.
func NewUnchecked(buf []byte) Header {
	return Header{buf: buf}
}

// NewChecked is NewUnchecked followed by CheckLen.
func NewChecked(buf []byte) (Header, error) {
	h := NewUnchecked(buf)
	if err := h.CheckLen(); err != nil {
		return Header{}, err
	}
	return h, nil
}

// CheckLen reports whether every accessor on h is safe to call: the buffer
// must be at least the fixed 8-byte header size.
func (h Header) CheckLen() error {
	if len(h.buf) < headerSize {
		return corerr.NewWireError("udphdr.check_len", "buffer shorter than header size")
	}
	return nil
}

func (h Header) SrcPort() uint16 {
	return binary.BigEndian.Uint16(h.buf[0:2])
}

func (h Header) DstPort() uint16 {
	return binary.BigEndian.Uint16(h.buf[2:4])
}

func (h Header) Length() uint16 {
	return binary.BigEndian.Uint16(h.buf[4:6])
}

func (h Header) Checksum() uint16 {
	return binary.BigEndian.Uint16(h.buf[6:8])
}

// Payload returns the bytes following the fixed header, per the header's
// own Length field clamped to the buffer's actual size.
func (h Header) Payload() []byte {
	end := int(h.Length())
	if end > len(h.buf) {
		end = len(h.buf)
	}
	if end < headerSize {
		return h.buf[headerSize:headerSize]
	}
	return h.buf[headerSize:end]
}

func (h Header) SetSrcPort(v uint16) {
	binary.BigEndian.PutUint16(h.buf[0:2], v)
}

func (h Header) SetDstPort(v uint16) {
	binary.BigEndian.PutUint16(h.buf[2:4], v)
}

func (h Header) SetLength(v uint16) {
	binary.BigEndian.PutUint16(h.buf[4:6], v)
}

func (h Header) SetChecksum(v uint16) {
	binary.BigEndian.PutUint16(h.buf[6:8], v)
}

// Repr is the owned, high-level representation of a UDP header.
type Repr struct {
	SrcPort  uint16
	DstPort  uint16
	Length   uint16
	Checksum uint16
}

// Parse lifts a validated Header into a Repr. Callers must have already
// called CheckLen — Parse does not re-check.
func Parse(h Header) Repr {
	return Repr{
		SrcPort:  h.SrcPort(),
		DstPort:  h.DstPort(),
		Length:   h.Length(),
		Checksum: h.Checksum(),
	}
}

// HeaderLen returns the fixed header size emitted by Emit.
func (r Repr) HeaderLen() int {
	return headerSize
}

// Emit writes every field of r into h.
func (r Repr) Emit(h Header) {
	h.SetSrcPort(r.SrcPort)
	h.SetDstPort(r.DstPort)
	h.SetLength(r.Length)
	h.SetChecksum(r.Checksum)
}
