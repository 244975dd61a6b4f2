package huffzip

import (
	"bytes"
	"errors"
	"io"

	"github.com/chronos-tachyon/assert"
	"github.com/icza/bitio"
)

// Pack groups the bits of bs into bytes, first bit in the most significant
// position, and zero-fills the final byte.  It also returns the number of
// zero bits that were appended, 0 .. 7.
func Pack(bs BitString) (data []byte, padding byte) {
	p := newPacker(bs.Len())
	for _, bit := range bs.bits {
		p.writeBit(bit)
	}
	return p.close()
}

// Unpack is the inverse of Pack: it expands every byte of data to 8 bits
// and drops the last padding bits.
//
// Unpack fails with ErrCorruptContainer if padding is greater than 7, or if
// padding is non-zero but there is no data to strip it from.
//
func Unpack(data []byte, padding byte) (BitString, error) {
	u, err := newUnpacker(data, padding)
	if err != nil {
		return BitString{}, err
	}
	bs := MakeBitString(u.remaining)
	for u.remaining != 0 {
		bit, err := u.readBit()
		if err != nil {
			return BitString{}, err
		}
		bs.AppendBit(bit)
	}
	return bs, nil
}

// packer accumulates bits into an in-memory payload.
type packer struct {
	buf     *bytes.Buffer
	w       *bitio.Writer
	numBits int
}

func newPacker(sizeHint int) *packer {
	buf := new(bytes.Buffer)
	buf.Grow(bytesForBits(sizeHint))
	return &packer{buf: buf, w: bitio.NewWriter(buf)}
}

func (p *packer) writeBit(bit bool) {
	p.w.TryWriteBool(bit)
	p.numBits++
}

func (p *packer) writeCode(hc Code) {
	whole := int(hc.Size) / 8
	for i := 0; i < whole; i++ {
		p.w.TryWriteBits(uint64(hc.Bits[i]), 8)
	}
	if rest := hc.Size % 8; rest != 0 {
		p.w.TryWriteBits(uint64(hc.Bits[whole]>>(8-rest)), rest)
	}
	p.numBits += int(hc.Size)
}

// close flushes the final partial byte, zero-filled, and returns the
// payload with its padding count.
func (p *packer) close() ([]byte, byte) {
	var padding byte
	if rest := p.numBits % 8; rest != 0 {
		padding = byte(8 - rest)
	}
	err := p.w.TryError
	if err == nil {
		err = p.w.Close()
	}
	assert.Assertf(err == nil, "bytes.Buffer write failed: %v", err)
	return p.buf.Bytes(), padding
}

// unpacker reads the meaningful bits of a payload, stopping before the
// padding.
type unpacker struct {
	r         *bitio.Reader
	pos       int
	remaining int
}

func newUnpacker(data []byte, padding byte) (*unpacker, error) {
	if padding > 7 {
		return nil, corruptf("padding of %d bits, max 7", padding)
	}
	if len(data) == 0 && padding != 0 {
		return nil, corruptf("padding of %d bits with an empty payload", padding)
	}
	return &unpacker{
		r:         bitio.NewReader(bytes.NewReader(data)),
		remaining: len(data)*8 - int(padding),
	}, nil
}

func (u *unpacker) readBit() (bool, error) {
	if u.remaining == 0 {
		return false, corruptf("payload bit %d: %v", u.pos, io.ErrUnexpectedEOF)
	}
	bit, err := u.r.ReadBool()
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return false, corruptf("payload bit %d: %v", u.pos, err)
	}
	u.pos++
	u.remaining--
	return bit, nil
}
