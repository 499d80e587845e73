// Command benchmark drives a phy.Device with a fixed amount of traffic and
// reports throughput, mirroring the shape of the original stack's loopback
// benchmark harness without the protocol engine it drove: frames go
// straight from Transmit to Receive, since the IP/TCP engine itself is out
// of scope for this module.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/go-netstack/netcore/netlog"
	"github.com/go-netstack/netcore/phy"
	"github.com/go-netstack/netcore/phy/capture"
	"github.com/go-netstack/netcore/phy/loopback"
	"github.com/go-netstack/netcore/ring"
	"github.com/go-netstack/netcore/stats"
)

func main() {
	var (
		totalBytes = flag.Int64("bytes", 1_000_000_000, "total bytes to push through the loopback device")
		frameSize  = flag.Int("frame", 1500, "bytes per frame")
		verbose    = flag.Bool("v", false, "verbose logging")
		trace      = flag.Bool("trace", false, "capture every frame into an in-memory ring for inspection")
	)
	flag.Parse()

	logCfg := netlog.DefaultConfig()
	if *verbose {
		logCfg.Level = netlog.LevelDebug
	}
	logger := netlog.New(logCfg)

	loop := loopback.New(loopback.DefaultConfig())

	var dev phy.Device = loop
	var tap *ring.RingBuffer[[]byte]
	obs := &stats.Ring{}
	if *trace {
		tap = ring.NewObserved(make([][]byte, 64), obs)
		dev = capture.New(loop, tap)
	}

	logger.Info("starting benchmark", "total_bytes", *totalBytes, "frame_size", *frameSize)

	start := time.Now()
	var processed int64
	for processed < *totalBytes {
		length := *frameSize
		if remaining := *totalBytes - processed; int64(length) > remaining {
			length = int(remaining)
		}

		tx, ok := dev.Transmit(time.Time{})
		if !ok {
			logger.Error("device backpressured; stopping")
			break
		}
		if err := tx.Consume(length, func(buf []byte) error {
			return nil
		}); err != nil {
			logger.Error("transmit failed", "error", err)
			os.Exit(1)
		}

		rx, _, ok := dev.Receive(time.Time{})
		if !ok {
			logger.Error("expected a frame in the loopback queue")
			os.Exit(1)
		}
		if err := rx.Consume(func(buf []byte) error {
			processed += int64(len(buf))
			return nil
		}); err != nil {
			logger.Error("receive failed", "error", err)
			os.Exit(1)
		}
	}
	elapsed := time.Since(start).Seconds()

	gbps := float64(processed) / elapsed / 1e9 * 8
	fmt.Printf("processed %d bytes in %.3fs: %.3f Gbps\n", processed, elapsed, gbps)
	if *trace {
		snap := obs.Snapshot()
		fmt.Printf("trace ring: %d frames currently held, high water mark %d\n", tap.Len(), snap.HighWaterMark)
	}
}
