package consensus

import "encoding/binary"

// cursor is a forward-only reader over a byte slice used by the deserialize
// routines. Every read fails with MalformedInput on a boundary violation.
type cursor struct {
	b   []byte
	pos int
}

func newCursor(b []byte) *cursor {
	return &cursor{b: b, pos: 0}
}

func (c *cursor) remaining() int {
	if c.pos >= len(c.b) {
		return 0
	}
	return len(c.b) - c.pos
}

func (c *cursor) readExact(n int) ([]byte, error) {
	if n < 0 || c.remaining() < n {
		return nil, newErr(CodeMalformedInput, "truncated read: want %d, have %d", n, c.remaining())
	}
	start := c.pos
	c.pos += n
	return c.b[start:c.pos], nil
}

func (c *cursor) readU32LE() (uint32, error) {
	b, err := c.readExact(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (c *cursor) readU64LE() (uint64, error) {
	b, err := c.readExact(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (c *cursor) readHash256() (Hash256, error) {
	b, err := c.readExact(32)
	if err != nil {
		return Hash256{}, err
	}
	var h Hash256
	copy(h[:], b)
	return h, nil
}

func (c *cursor) readVarInt() (uint64, error) {
	v, n, err := DecodeVarInt(c.b[c.pos:])
	if err != nil {
		return 0, err
	}
	c.pos += n
	return v, nil
}

func (c *cursor) readVarBytes() ([]byte, error) {
	n, err := c.readVarInt()
	if err != nil {
		return nil, err
	}
	return c.readExact(int(n))
}
