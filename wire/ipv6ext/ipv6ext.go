// Package ipv6ext implements the IPv6 extension header wire format: an
// unchecked view over a borrowed byte slice, an explicit length check, and
// a symmetric Repr parse/emit pair. Every wire format in this module follows
// the same shape (wire/udphdr is the other one) so that callers can stay
// zero-copy: view accessors read and write straight out of the caller's
// buffer, and Repr is the only type that ever owns a borrowed payload slice
// rather than the buffer itself.
package ipv6ext

import "github.com/go-netstack/netcore/corerr"

const minHeaderSize = 8

// IPProtocol is the IPv6 "next header" field: either the upper-layer
// protocol number, or another extension header's protocol number when
// headers are chained.
type IPProtocol uint8

const (
	IPProtocolHopByHop IPProtocol = 0
	IPProtocolTCP      IPProtocol = 6
	IPProtocolUDP      IPProtocol = 17
	IPProtocolICMPv6   IPProtocol = 58
)

// payloadField returns the [start, end) byte range of the payload for a
// given header-length field value: the header length is in 8-octet units,
// excluding the first 8 octets, and the payload follows the 2-byte prefix.
func payloadField(lengthField byte) (start, end int) {
	return 2, int(lengthField)*8 + 8
}

// Header is a read/write view over an IPv6 extension header buffer. It
// never copies; every accessor reads or writes directly through buf.
type Header struct {
	buf []byte
}

// NewUnchecked wraps buf with no validation. Accessors called before
// CheckLen succeeds may read out of bounds or return nonsense.
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
// must be at least minHeaderSize bytes, and must be at least as long as the
// payload span implied by the header-length byte. Its result is invalidated
// by a subsequent SetHeaderLen call.
func (h Header) CheckLen() error {
	if len(h.buf) < minHeaderSize {
		return corerr.NewWireError("ipv6ext.check_len", "buffer shorter than minimum header size")
	}
	_, end := payloadField(h.buf[1])
	if len(h.buf) < end {
		return corerr.NewWireError("ipv6ext.check_len", "buffer shorter than declared payload")
	}
	return nil
}

// NextHeader returns the next-header field.
func (h Header) NextHeader() IPProtocol {
	return IPProtocol(h.buf[0])
}

// HeaderLen returns the raw header-length field (8-octet units, excluding
// the first 8 octets).
func (h Header) HeaderLen() byte {
	return h.buf[1]
}

// Payload returns the payload slice implied by the header-length field.
func (h Header) Payload() []byte {
	start, end := payloadField(h.buf[1])
	return h.buf[start:end]
}

// SetNextHeader sets the next-header field.
func (h Header) SetNextHeader(v IPProtocol) {
	h.buf[0] = byte(v)
}

// SetHeaderLen sets the header-length field. Invalidates any prior CheckLen
// result.
func (h Header) SetHeaderLen(v byte) {
	h.buf[1] = v
}

// PayloadMut returns a mutable payload slice implied by the header-length
// field.
func (h Header) PayloadMut() []byte {
	start, end := payloadField(h.buf[1])
	return h.buf[start:end]
}

// Repr is the owned, high-level representation of an extension header: a
// next-header tag, the raw length byte, and a borrowed payload slice.
type Repr struct {
	NextHeader IPProtocol
	Length     byte
	Data       []byte
}

// Parse lifts a validated Header into a Repr. Callers must have already
// called CheckLen (directly, or via NewChecked) — Parse does not re-check.
func Parse(h Header) Repr {
	return Repr{
		NextHeader: h.NextHeader(),
		Length:     h.HeaderLen(),
		Data:       h.Payload(),
	}
}

// HeaderLen returns the fixed 2-byte prefix size emitted by Emit. The full
// on-wire size, including payload, is 8*Length + 8.
func (r Repr) HeaderLen() int {
	return 2
}

// Emit writes NextHeader and Length into h's first two bytes. It does not
// write payload bytes; those come from whatever option encoder constructed
// r.Data and are the caller's responsibility to place in h's payload span.
func (r Repr) Emit(h Header) {
	h.SetNextHeader(r.NextHeader)
	h.SetHeaderLen(r.Length)
}
