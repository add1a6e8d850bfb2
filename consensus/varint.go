package consensus

import "encoding/binary"

// AppendVarInt encodes n as a Bitcoin-style VarInt (compact size integer)
// and appends it to dst, always using the shortest encoding.
func AppendVarInt(dst []byte, n uint64) []byte {
	switch {
	case n <= 0xFC:
		return append(dst, byte(n))
	case n <= 0xFFFF:
		dst = append(dst, 0xFD)
		return appendU16LE(dst, uint16(n))
	case n <= 0xFFFFFFFF:
		dst = append(dst, 0xFE)
		return appendU32LE(dst, uint32(n))
	default:
		dst = append(dst, 0xFF)
		return appendU64LE(dst, n)
	}
}

// EncodeVarInt encodes n as a standalone VarInt byte slice.
func EncodeVarInt(n uint64) []byte {
	return AppendVarInt(nil, n)
}

// DecodeVarInt decodes one VarInt from the front of buf, returning the value
// and the number of bytes consumed. Decoders accept any well-formed tag; no
// canonicalization check is performed.
func DecodeVarInt(buf []byte) (uint64, int, error) {
	if len(buf) < 1 {
		return 0, 0, newErr(CodeMalformedInput, "varint: empty input")
	}
	tag := buf[0]
	switch {
	case tag <= 0xFC:
		return uint64(tag), 1, nil
	case tag == 0xFD:
		if len(buf) < 3 {
			return 0, 0, newErr(CodeMalformedInput, "varint: truncated u16 tag")
		}
		return uint64(binary.LittleEndian.Uint16(buf[1:3])), 3, nil
	case tag == 0xFE:
		if len(buf) < 5 {
			return 0, 0, newErr(CodeMalformedInput, "varint: truncated u32 tag")
		}
		return uint64(binary.LittleEndian.Uint32(buf[1:5])), 5, nil
	default: // 0xFF
		if len(buf) < 9 {
			return 0, 0, newErr(CodeMalformedInput, "varint: truncated u64 tag")
		}
		return binary.LittleEndian.Uint64(buf[1:9]), 9, nil
	}
}

func appendU16LE(dst []byte, v uint16) []byte {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	return append(dst, b[:]...)
}

func appendU32LE(dst []byte, v uint32) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return append(dst, b[:]...)
}

func appendU64LE(dst []byte, v uint64) []byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	return append(dst, b[:]...)
}
