package huffzip

import (
	"bytes"
	"encoding"
	"encoding/binary"
	"fmt"
	"io"
)

// TableEntry pairs a Symbol with its code.
type TableEntry struct {
	Symbol Symbol `json:"symbol"`
	Code   Code   `json:"code"`
}

// Container is the serialized form of a compressed input: the code table,
// the number of padding bits in the final payload byte, and the packed
// payload.
type Container struct {
	Table   []TableEntry
	Padding byte
	Payload []byte
}

// NumBits returns the number of meaningful bits in the payload.
func (c *Container) NumBits() int {
	if len(c.Payload) == 0 {
		return 0
	}
	return len(c.Payload)*8 - int(c.Padding)
}

// HeaderSize returns the number of bytes that precede the payload.
func (c *Container) HeaderSize() int {
	n := 4 + 1
	for _, entry := range c.Table {
		n += 2 + bytesForBits(int(entry.Code.Size))
	}
	return n
}

// WriteTo serializes the container to w.
func (c *Container) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.Grow(c.HeaderSize() + len(c.Payload))

	var u32 [4]byte
	binary.LittleEndian.PutUint32(u32[:], uint32(len(c.Table)))
	buf.Write(u32[:])
	for _, entry := range c.Table {
		buf.WriteByte(byte(entry.Symbol))
		buf.WriteByte(entry.Code.Size)
		buf.Write(entry.Code.Bytes())
	}
	buf.WriteByte(c.Padding)
	buf.Write(c.Payload)
	return buf.WriteTo(w)
}

// MarshalBinary returns the serialized container.
func (c *Container) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := c.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary parses a serialized container.  See ParseContainer.
func (c *Container) UnmarshalBinary(data []byte) error {
	p := containerParser{data: data}
	parsed, err := p.parse()
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseContainer parses a serialized container.  The returned Container's
// Payload aliases data.
//
// ParseContainer fails with ErrCorruptContainer if data ends in the middle
// of a field, if the table is empty, holds more than NumSymbols entries,
// holds a zero-length code, or repeats a symbol, if the padding count is
// greater than 7, or if the payload is empty.
//
func ParseContainer(data []byte) (*Container, error) {
	c := new(Container)
	if err := c.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return c, nil
}

type containerParser struct {
	data []byte
	pos  int
}

func (p *containerParser) take(n int, what string) ([]byte, error) {
	if n > len(p.data)-p.pos {
		return nil, corruptf("offset %d: truncated %s: need %d bytes, have %d", p.pos, what, n, len(p.data)-p.pos)
	}
	out := p.data[p.pos : p.pos+n]
	p.pos += n
	return out, nil
}

func (p *containerParser) parse() (Container, error) {
	raw, err := p.take(4, "table_entry_count")
	if err != nil {
		return Container{}, err
	}
	count := binary.LittleEndian.Uint32(raw)
	if count == 0 {
		return Container{}, corruptf("offset 0: empty code table")
	}
	if count > uint32(NumSymbols) {
		return Container{}, corruptf("offset 0: %d table entries, max %d", count, NumSymbols)
	}

	var seen [NumSymbols]bool
	table := make([]TableEntry, 0, count)
	for i := uint32(0); i < count; i++ {
		start := p.pos
		raw, err := p.take(2, fmt.Sprintf("table_entry[%d]", i))
		if err != nil {
			return Container{}, err
		}
		symbol, size := Symbol(raw[0]), raw[1]
		if size == 0 {
			return Container{}, corruptf("offset %d: table_entry[%d]: zero-length code for symbol %d", start, i, symbol)
		}
		if seen[symbol] {
			return Container{}, corruptf("offset %d: table_entry[%d]: duplicate symbol %d", start, i, symbol)
		}
		seen[symbol] = true

		raw, err = p.take(bytesForBits(int(size)), fmt.Sprintf("table_entry[%d] code", i))
		if err != nil {
			return Container{}, err
		}
		hc := Code{Size: size}
		copy(hc.Bits[:], raw)
		// Discard whatever follows the last valid bit.
		if rest := size % 8; rest != 0 {
			hc.Bits[size/8] &= ^byte(0xff >> rest)
		}
		table = append(table, TableEntry{Symbol: symbol, Code: hc})
	}

	raw, err = p.take(1, "padding_bit_count")
	if err != nil {
		return Container{}, err
	}
	padding := raw[0]
	if padding > 7 {
		return Container{}, corruptf("offset %d: padding of %d bits, max 7", p.pos-1, padding)
	}

	payload := p.data[p.pos:]
	if len(payload) == 0 {
		return Container{}, corruptf("offset %d: missing payload", p.pos)
	}

	return Container{Table: table, Padding: padding, Payload: payload}, nil
}

var (
	_ encoding.BinaryMarshaler   = (*Container)(nil)
	_ encoding.BinaryUnmarshaler = (*Container)(nil)
	_ io.WriterTo                = (*Container)(nil)
)
