// Command ipv6ext-dump parses an IPv6 extension header from a hex string
// and prints its fields, or builds one from flags and prints its wire
// encoding — a small, direct exercise of the wire/ipv6ext codec with no
// framework beyond the standard flag package.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"

	"github.com/go-netstack/netcore/wire/ipv6ext"
)

func main() {
	var (
		input      = flag.String("hex", "", "hex-encoded extension header to parse and dump")
		build      = flag.Bool("build", false, "build a header from -next/-len/-payload instead of parsing -hex")
		nextHeader = flag.Uint("next", uint(ipv6ext.IPProtocolTCP), "next-header value when building")
		headerLen  = flag.Uint("len", 0, "header-length field (8-octet units, excluding first 8 octets) when building")
		payloadHex = flag.String("payload", "", "hex-encoded payload bytes when building")
	)
	flag.Parse()

	if *build {
		if err := buildHeader(byte(*nextHeader), byte(*headerLen), *payloadHex); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
		return
	}

	if err := dumpHeader(*input); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func dumpHeader(input string) error {
	if input == "" {
		return fmt.Errorf("-hex is required unless -build is given")
	}
	buf, err := hex.DecodeString(input)
	if err != nil {
		return fmt.Errorf("decoding hex input: %w", err)
	}

	h, err := ipv6ext.NewChecked(buf)
	if err != nil {
		return fmt.Errorf("checking header: %w", err)
	}
	repr := ipv6ext.Parse(h)

	fmt.Printf("next_header: %d\n", repr.NextHeader)
	fmt.Printf("header_len:  %d (wire size %d bytes)\n", repr.Length, int(repr.Length)*8+8)
	fmt.Printf("payload:     %s (%d bytes)\n", hex.EncodeToString(repr.Data), len(repr.Data))
	return nil
}

func buildHeader(next, length byte, payloadHex string) error {
	payload, err := hex.DecodeString(payloadHex)
	if err != nil {
		return fmt.Errorf("decoding -payload: %w", err)
	}

	wireSize := int(length)*8 + 8
	buf := make([]byte, wireSize)
	h := ipv6ext.NewUnchecked(buf)
	repr := ipv6ext.Repr{NextHeader: ipv6ext.IPProtocol(next), Length: length, Data: payload}
	repr.Emit(h)

	n := copy(h.PayloadMut(), payload)
	if n < len(payload) {
		return fmt.Errorf("payload of %d bytes does not fit in the %d-byte span implied by -len", len(payload), wireSize-2)
	}

	fmt.Println(hex.EncodeToString(buf))
	return nil
}
