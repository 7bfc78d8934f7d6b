package main

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/chris-vieira/embxx"
	"github.com/chris-vieira/embxx/checksum"
	"github.com/chris-vieira/embxx/wire"
)

// stackConfig describes a protocol stack in TOML. Layer tables are
// optional except [id]; present layers are composed outermost first
// as sync, checksum, size, id, data.
type stackConfig struct {
	// Endianness of every envelope field: "big" (default) or "little".
	Endianness string          `toml:"endianness"`
	Sync       *syncConfig     `toml:"sync"`
	Checksum   *checksumConfig `toml:"checksum"`
	Size       *sizeConfig     `toml:"size"`
	ID         idConfig        `toml:"id"`
	// Messages lists the accepted message IDs. Bodies are treated as
	// raw bytes.
	Messages []uint64 `toml:"messages"`
}

type syncConfig struct {
	Width int    `toml:"width"`
	Value uint64 `toml:"value"`
}

type checksumConfig struct {
	Width int `toml:"width"`
	// Algorithm is one of "bytesum", "crc32", "xxh3".
	Algorithm string `toml:"algorithm"`
	// Verify is "before" (default) or "after".
	Verify string `toml:"verify"`
}

type sizeConfig struct {
	Width int `toml:"width"`
	// Extra is added to the measured length before encoding, e.g. the
	// width of a trailing checksum the size field must cover.
	Extra int `toml:"extra"`
}

type idConfig struct {
	Width int `toml:"width"`
}

func loadConfig(path string) (*stackConfig, error) {
	var cfg stackConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *stackConfig) traits() (embxx.Traits, error) {
	t := embxx.Traits{IDFieldWidth: c.ID.Width}
	switch c.Endianness {
	case "", "big":
		t.Order = wire.BigEndian
	case "little":
		t.Order = wire.LittleEndian
	default:
		return t, fmt.Errorf("unknown endianness %q", c.Endianness)
	}
	if c.Sync != nil {
		t.SyncPrefixWidth = c.Sync.Width
	}
	if c.Size != nil {
		t.SizeFieldWidth = c.Size.Width
		t.ExtraSizeValue = c.Size.Extra
	}
	if c.Checksum != nil {
		t.ChecksumFieldWidth = c.Checksum.Width
		switch c.Checksum.Verify {
		case "", "before":
			t.Verification = embxx.VerifyBefore
		case "after":
			t.Verification = embxx.VerifyAfter
		default:
			return t, fmt.Errorf("unknown checksum verify order %q", c.Checksum.Verify)
		}
	}
	return t, nil
}

func (c *checksumConfig) calculator() (embxx.Checksum, error) {
	switch c.Algorithm {
	case "", "bytesum":
		return checksum.ByteSum(c.Width), nil
	case "crc32":
		return checksum.CRC32{}, nil
	case "xxh3":
		return checksum.XXH3{}, nil
	default:
		return nil, fmt.Errorf("unknown checksum algorithm %q", c.Algorithm)
	}
}

// build composes the configured stack around a dynamic allocator.
func (c *stackConfig) build() (*embxx.Stack, error) {
	traits, err := c.traits()
	if err != nil {
		return nil, err
	}
	if len(c.Messages) == 0 {
		return nil, fmt.Errorf("config lists no message IDs")
	}

	factories := make([]embxx.Factory, 0, len(c.Messages))
	for _, id := range c.Messages {
		id := embxx.MsgID(id)
		factories = append(factories, embxx.Factory{
			ID:  id,
			New: func() embxx.Message { return &rawMessage{id: id} },
		})
	}

	var layer embxx.Layer
	layer, err = embxx.NewMsgIdLayer(traits, embxx.DynAllocator{}, factories, embxx.NewMsgDataLayer())
	if err != nil {
		return nil, err
	}
	if c.Size != nil {
		if layer, err = embxx.NewMsgSizeLayer(traits, layer); err != nil {
			return nil, err
		}
	}
	if c.Checksum != nil {
		calc, err := c.Checksum.calculator()
		if err != nil {
			return nil, err
		}
		if layer, err = embxx.NewChecksumLayer(traits, calc, layer); err != nil {
			return nil, err
		}
	}
	if c.Sync != nil {
		if layer, err = embxx.NewSyncPrefixLayer(traits, c.Sync.Value, layer); err != nil {
			return nil, err
		}
	}
	return embxx.NewStack(layer)
}
