// SPDX-License-Identifier: GPL-2.0-only

// lzmadump decompresses a raw LZMA, LZMA2, or XZ file to stdout or a
// file, streaming through a fixed-capacity decoder. It exists to
// exercise the library against real files; it is not part of the
// decoder core.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	lzma "github.com/go-lzma/core"
	"github.com/go-lzma/core/checksum"
)

func main() {
	app := &cli.App{
		Name:      "lzmadump",
		Usage:     "decompress raw LZMA, LZMA2, or XZ data with a bounded dictionary",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   "xz",
				Usage:   "input framing: lzma1, lzma2, or xz",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "write decompressed data to `FILE` instead of stdout",
			},
			&cli.IntFlag{
				Name:  "dict-cap",
				Value: 1 << 26,
				Usage: "dictionary capacity in bytes; streams declaring more are rejected",
			},
			&cli.IntFlag{
				Name:  "mem-limit",
				Usage: "additional cap on the declared dictionary size (0 = none)",
			},
			&cli.IntFlag{
				Name:  "read-size",
				Value: 64 << 10,
				Usage: "input read granularity in bytes",
			},
			&cli.Int64Flag{
				Name:  "expect-size",
				Value: -1,
				Usage: "expected unpacked size for raw lzma1 input without one in-band",
			},
			&cli.BoolFlag{
				Name:  "verify",
				Usage: "buffer output and verify the xz check against it",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "debug logging",
			},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		slog.Error("lzmadump failed", "err", err)
		os.Exit(1)
	}
}

func frameKind(name string) (lzma.FrameKind, error) {
	switch name {
	case "lzma1", "lzma":
		return lzma.FrameLZMA1, nil
	case "lzma2":
		return lzma.FrameLZMA2, nil
	case "xz":
		return lzma.FrameXZ, nil
	default:
		return 0, fmt.Errorf("unknown format %q", name)
	}
}

func run(c *cli.Context) error {
	level := slog.LevelInfo
	if c.Bool("verbose") {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	if c.NArg() != 1 {
		return errors.New("exactly one input file required")
	}
	kind, err := frameKind(c.String("format"))
	if err != nil {
		return err
	}

	in, err := os.Open(c.Args().First())
	if err != nil {
		return err
	}
	defer in.Close()

	var out io.Writer = os.Stdout
	if path := c.String("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	cfg := lzma.Config{
		AllowIncomplete:      true,
		MemLimit:             c.Int("mem-limit"),
		UnpackedSizeOverride: c.Int64("expect-size"),
	}
	stream, err := lzma.NewStream(kind, c.Int("dict-cap"), cfg)
	if err != nil {
		return err
	}

	var decoded []byte
	verify := c.Bool("verify")
	var written int64
	var sinkErr error
	sink := func(p []byte) int {
		n, err := out.Write(p)
		if err != nil {
			sinkErr = err
			return n
		}
		if verify {
			decoded = append(decoded, p[:n]...)
		}
		written += int64(n)
		return n
	}

	start := time.Now()
	buf := make([]byte, c.Int("read-size"))
	filled := 0
	var consumed int64
	for {
		n, rerr := in.Read(buf[filled:])
		filled += n

		cn, status, perr := stream.Process(buf[:filled], sink)
		if sinkErr != nil {
			return sinkErr
		}
		if perr != nil {
			return perr
		}
		consumed += int64(cn)
		filled = copy(buf, buf[cn:filled])
		log.Debug("processed", "consumed", consumed, "written", written, "status", status)

		if status == lzma.StatusDone {
			break
		}
		if rerr == io.EOF {
			if filled == 0 {
				// Let the stream classify a clean stop vs. truncation.
				if _, _, perr := stream.Process(nil, sink); perr != nil {
					return perr
				}
			}
			if !stream.IsDone() {
				return errors.New("input exhausted before the stream completed")
			}
			break
		}
		if rerr != nil {
			return rerr
		}
	}

	log.Info("decompressed",
		"in", consumed, "out", written, "elapsed", time.Since(start).Round(time.Millisecond))

	if verify && kind == lzma.FrameXZ {
		verdict := stream.Check()
		ok, err := checksum.Verify(verdict, decoded)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%s check mismatch", verdict.Kind)
		}
		log.Info("check verified", "kind", verdict.Kind.String())
	}
	return nil
}
