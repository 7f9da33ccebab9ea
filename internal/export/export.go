// Package export serializes baked models into a zstd-compressed blob that a
// renderer can load without re-baking.
//
// Layout before compression, little endian:
//
//	magic "BBQ1" | uint32 count | count x entry
//	entry: uint16 state | uint8 len | format id | uint32 words | words x uint32
package export

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sort"

	"blockbake/internal/format"
	"blockbake/internal/meshing"
	"blockbake/internal/world"

	"github.com/klauspost/compress/zstd"
)

var magic = [4]byte{'B', 'B', 'Q', '1'}

// ErrBadMagic is returned when decoded data is not a baked model blob.
var ErrBadMagic = errors.New("export: not a baked model blob")

// Encode writes models sorted by block state and compresses the result.
func Encode(models map[world.BlockState]*meshing.BakedModel) ([]byte, error) {
	states := make([]world.BlockState, 0, len(models))
	for s := range models {
		states = append(states, s)
	}
	sort.Slice(states, func(i, j int) bool { return states[i] < states[j] })

	var buf bytes.Buffer
	buf.Write(magic[:])
	binary.Write(&buf, binary.LittleEndian, uint32(len(states)))
	for _, s := range states {
		m := models[s]
		if m == nil || m.Format.Stride() == 0 {
			return nil, fmt.Errorf("export: state %d has no baked model", s)
		}
		if len(m.Quads)%m.Format.Stride() != 0 {
			return nil, fmt.Errorf("export: state %d: %d words is not a whole number of quads", s, len(m.Quads))
		}
		id := m.Format.ID()
		if len(id) > 255 {
			return nil, fmt.Errorf("export: format id %q too long", id)
		}
		binary.Write(&buf, binary.LittleEndian, uint16(s))
		buf.WriteByte(byte(len(id)))
		buf.WriteString(id)
		binary.Write(&buf, binary.LittleEndian, uint32(len(m.Quads)))
		binary.Write(&buf, binary.LittleEndian, m.Quads)
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	defer enc.Close()
	return enc.EncodeAll(buf.Bytes(), nil), nil
}

// Decode reverses Encode. Format identifiers are looked up in formats.
func Decode(data []byte, formats *format.Registry) (map[world.BlockState]*meshing.BakedModel, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	defer dec.Close()
	raw, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("export: decompress: %w", err)
	}

	r := bytes.NewReader(raw)
	var head [4]byte
	if _, err := io.ReadFull(r, head[:]); err != nil || head != magic {
		return nil, ErrBadMagic
	}
	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("export: header: %w", err)
	}

	out := make(map[world.BlockState]*meshing.BakedModel, count)
	for i := uint32(0); i < count; i++ {
		var state uint16
		if err := binary.Read(r, binary.LittleEndian, &state); err != nil {
			return nil, fmt.Errorf("export: entry %d: %w", i, err)
		}
		n, err := r.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("export: entry %d: %w", i, err)
		}
		id := make([]byte, n)
		if _, err := io.ReadFull(r, id); err != nil {
			return nil, fmt.Errorf("export: entry %d: %w", i, err)
		}
		f, ok := formats.Get(string(id))
		if !ok {
			return nil, fmt.Errorf("export: entry %d: unknown format %q", i, id)
		}
		var words uint32
		if err := binary.Read(r, binary.LittleEndian, &words); err != nil {
			return nil, fmt.Errorf("export: entry %d: %w", i, err)
		}
		if int(words)%f.Stride() != 0 {
			return nil, fmt.Errorf("export: entry %d: %d words is not a whole number of %q quads", i, words, id)
		}
		if int64(words)*4 > int64(r.Len()) {
			return nil, fmt.Errorf("export: entry %d: %d words truncated", i, words)
		}
		quads := make([]uint32, words)
		if err := binary.Read(r, binary.LittleEndian, quads); err != nil {
			return nil, fmt.Errorf("export: entry %d: %w", i, err)
		}
		out[world.BlockState(state)] = &meshing.BakedModel{Format: f, Quads: quads}
	}
	return out, nil
}
