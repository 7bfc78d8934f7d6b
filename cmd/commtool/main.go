// Command commtool frames and unframes binary protocol messages
// using a layer stack described by a TOML config file. It is a
// debugging aid for protocols built on the embxx package: point it at
// a stack description, feed it hex, and it shows what the stack makes
// of it.
package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/creachadair/command"
	"github.com/creachadair/flax"
	"github.com/kr/pretty"
	"github.com/rs/zerolog"

	"github.com/chris-vieira/embxx"
	"github.com/chris-vieira/embxx/wire"
)

var globalArgs struct {
	Config  string `flag:"config,Path to the stack description (TOML)"`
	Verbose bool   `flag:"v,Enable verbose diagnostics on stderr"`
}

var logger zerolog.Logger

func main() {
	root := &command.C{
		Name:     "commtool",
		Usage:    "command args...",
		SetFlags: command.Flags(flax.MustBind, &globalArgs),
		Init: func(env *command.Env) error {
			level := zerolog.WarnLevel
			if globalArgs.Verbose {
				level = zerolog.DebugLevel
			}
			logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
			return nil
		},
		Commands: []*command.C{
			{
				Name:  "decode",
				Usage: "decode <hex-frame>",
				Help:  "Decode a hex-encoded frame into a message.",
				Run:   command.Adapt(runDecode),
			},
			{
				Name:  "encode",
				Usage: "encode <id> <hex-body>",
				Help: `Encode a message into a frame.

The body bytes are framed by the configured stack and the finished
frame is printed as hex. With --append the frame is written through an
append-only sink to demonstrate the two-pass update path; the printed
frame is identical either way.`,
				SetFlags: command.Flags(flax.MustBind, &encodeArgs),
				Run:      command.Adapt(runEncode),
			},
			command.HelpCommand(nil),
		},
	}
	env := root.NewEnv(nil).MergeFlags(true)
	command.RunOrFail(env, os.Args[1:])
}

func loadStack() (*embxx.Stack, error) {
	if globalArgs.Config == "" {
		return nil, fmt.Errorf("no stack description given, use --config")
	}
	cfg, err := loadConfig(globalArgs.Config)
	if err != nil {
		return nil, err
	}
	logger.Debug().
		Str("config", globalArgs.Config).
		Int("messages", len(cfg.Messages)).
		Bool("sync", cfg.Sync != nil).
		Bool("checksum", cfg.Checksum != nil).
		Bool("size", cfg.Size != nil).
		Msg("building stack")
	return cfg.build()
}

func parseHex(s string) ([]byte, error) {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', ':', ',':
			return -1
		}
		return r
	}, s)
	clean = strings.TrimPrefix(clean, "0x")
	return hex.DecodeString(clean)
}

func runDecode(env *command.Env, hexFrame string) error {
	stack, err := loadStack()
	if err != nil {
		return err
	}
	frame, err := parseHex(hexFrame)
	if err != nil {
		return fmt.Errorf("parsing frame bytes: %w", err)
	}

	r := wire.NewReader(frame)
	var msg embxx.MsgPtr
	if err := stack.Read(&msg, r, len(frame)); err != nil {
		return fmt.Errorf("decoding frame: %w", err)
	}
	defer msg.Release()

	logger.Debug().Int("consumed", r.Position()).Int("frame", len(frame)).Msg("frame decoded")
	fmt.Printf("%# v\n", pretty.Formatter(msg.Get()))
	if rest := r.Remaining(); rest > 0 {
		fmt.Printf("%d trailing bytes not consumed\n", rest)
	}
	return nil
}

var encodeArgs struct {
	Append bool `flag:"append,Write through an append-only sink and run the update pass"`
}

func runEncode(env *command.Env, idStr, hexBody string) error {
	stack, err := loadStack()
	if err != nil {
		return err
	}
	id, err := strconv.ParseUint(idStr, 0, 64)
	if err != nil {
		return fmt.Errorf("parsing message ID: %w", err)
	}
	body, err := parseHex(hexBody)
	if err != nil {
		return fmt.Errorf("parsing body bytes: %w", err)
	}
	msg := &rawMessage{id: embxx.MsgID(id), body: body}

	const maxFrame = 1 << 16
	var frame []byte
	if encodeArgs.Append {
		var sink strings.Builder
		w := wire.NewAppendWriter(&sink, maxFrame)
		err := stack.Write(msg, w, maxFrame)
		switch {
		case err == nil:
			frame = []byte(sink.String())
		case errors.Is(err, embxx.ErrUpdateRequired):
			frame = []byte(sink.String())
			b := wire.View(frame)
			if err := stack.Update(b, len(frame)); err != nil {
				return fmt.Errorf("update pass: %w", err)
			}
			logger.Debug().Msg("reserved fields patched by update pass")
		default:
			return fmt.Errorf("encoding frame: %w", err)
		}
	} else {
		b := wire.NewBuffer(maxFrame)
		if err := stack.Write(msg, b, maxFrame); err != nil {
			return fmt.Errorf("encoding frame: %w", err)
		}
		frame = b.Bytes()
	}

	fmt.Println(hex.EncodeToString(frame))
	return nil
}
