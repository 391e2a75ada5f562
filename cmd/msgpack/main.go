// Copyright (C) 2024 Msgpack Authors. All Rights Reserved.

// Command msgpack is a thin front-end over the msgpack codec: it selects
// encode or decode mode, reads textual input, and hex-formats output. It
// is deliberately an external collaborator of the core codec, not part
// of it — the core never touches the command line, JSON, or hex.
package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/creachadair/msgpack"
	"github.com/creachadair/msgpack/internal/textual"
	"github.com/creachadair/msgpack/internal/xlog"
)

func main() {
	app := &cli.App{
		Name:        "msgpack",
		Usage:       "convert between JSON and MessagePack",
		ArgsUsage:   "<data>",
		HideVersion: true,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "encode", Usage: "encode a JSON argument to hex-encoded MessagePack"},
			&cli.BoolFlag{Name: "decode", Usage: "decode a hex-encoded MessagePack argument to JSON"},
			&cli.BoolFlag{Name: "verbose", Usage: "enable verbose diagnostics on stderr"},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	log := xlog.New(c.Bool("verbose"))
	encode, decode := c.Bool("encode"), c.Bool("decode")
	if encode == decode {
		log.Errorf("exactly one of --encode or --decode is required")
		return cli.Exit("exactly one of --encode or --decode is required", 1)
	}
	if c.NArg() != 1 {
		log.Errorf("exactly one positional argument is required, got %d", c.NArg())
		return cli.Exit("exactly one positional argument is required", 1)
	}
	data := c.Args().Get(0)

	if encode {
		return runEncode(log, data)
	}
	return runDecode(log, data)
}

func runEncode(log *xlog.Logger, jsonArg string) error {
	v, err := textual.FromJSON([]byte(jsonArg))
	if err != nil {
		log.Errorf("invalid JSON: %v", err)
		return cli.Exit(fmt.Sprintf("invalid JSON: %v", err), 1)
	}
	log.Debugf("parsed value kind=%v", v.Kind())
	packed, err := msgpack.Encode(v)
	if err != nil {
		log.Errorf("encode failed: %v", err)
		return cli.Exit(fmt.Sprintf("encode failed: %v", err), 1)
	}
	fmt.Println(hex.EncodeToString(packed))
	return nil
}

func runDecode(log *xlog.Logger, hexArg string) error {
	packed, err := hex.DecodeString(hexArg)
	if err != nil {
		log.Errorf("invalid hex: %v", err)
		return cli.Exit(fmt.Sprintf("invalid hex: %v", err), 1)
	}
	log.Debugf("decoding %d bytes", len(packed))
	v, err := msgpack.Decode(packed)
	if err != nil {
		log.Errorf("decode failed: %v", err)
		return cli.Exit(fmt.Sprintf("decode failed: %v", err), 1)
	}
	js, err := textual.ToJSON(v)
	if err != nil {
		log.Errorf("rendering json failed: %v", err)
		return cli.Exit(fmt.Sprintf("rendering json failed: %v", err), 1)
	}
	fmt.Println(string(js))
	return nil
}
