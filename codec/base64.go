// Package codec implements the SQRL wire encodings: a base64url
// variant that tolerates embedded whitespace, lowercase hex, and the
// SQRL flavor of URL-encoding (component C3).
package codec

const encodeTable = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

// decodeTable maps a byte to its 6-bit value, or -1 if the byte is not
// part of the alphabet. -1 (not 0) is the explicit "not found" sentinel
// spec.md's design notes call for: libsqrl's C implementation
// conflated decoded zero ('A') with "no legitimate character found"
// because it used 0 for both; nextBase64Value below returns
// (value, ok) instead, so 'A' and "skip this byte" are never confused.
var decodeTable = buildDecodeTable()

func buildDecodeTable() [256]int8 {
	var t [256]int8
	for i := range t {
		t[i] = -1
	}
	for i := 0; i < len(encodeTable); i++ {
		t[encodeTable[i]] = int8(i)
	}
	return t
}

// PadChar is appended to make encoded output a multiple of 4 bytes.
// SQRL's canonical single-key encoding is unpadded (see EncodeUnpadded);
// set to 0 to suppress padding entirely when using Encode.
const PadChar = '='

// Encode base64url-encodes src, padding with PadChar to a multiple of 4.
func Encode(src []byte) string {
	return encode(src, PadChar)
}

// EncodeUnpadded base64url-encodes src without trailing '=' padding.
// This is canonical for a single 32-byte key (43 characters).
func EncodeUnpadded(src []byte) string {
	return encode(src, 0)
}

func encode(src []byte, pad byte) string {
	out := make([]byte, 0, (len(src)+2)/3*4)
	i := 0
	for i < len(src) {
		var b0, b1, b2 uint32
		n := len(src) - i
		b0 = uint32(src[i])
		if n > 1 {
			b1 = uint32(src[i+1])
		}
		if n > 2 {
			b2 = uint32(src[i+2])
		}
		tmp := b0<<16 | b1<<8 | b2

		out = append(out,
			encodeTable[(tmp>>18)&0x3F],
			encodeTable[(tmp>>12)&0x3F],
			encodeTable[(tmp>>6)&0x3F],
			encodeTable[tmp&0x3F],
		)
		i += 3

		if n < 3 {
			tail := 3 - n
			if pad == 0 {
				out = out[:len(out)-tail]
			} else {
				for j := 0; j < tail; j++ {
					out[len(out)-1-j] = pad
				}
			}
		}
	}
	return string(out)
}

// nextBase64Value scans src starting at offset i for the next byte
// belonging to the base64url alphabet, skipping everything else
// (whitespace, stray punctuation — the protocol requires transmitted
// base64 with embedded whitespace to decode cleanly). It returns the
// 6-bit value, whether one was found before hitting stop, and the
// index just past the consumed byte.
func nextBase64Value(src string, i, stop int) (value byte, ok bool, next int) {
	for i < stop {
		v := decodeTable[src[i]]
		i++
		if v >= 0 {
			return byte(v), true, i
		}
	}
	return 0, false, i
}

// Decode decodes a base64url string, skipping any byte outside the
// alphabet (including '\r', '\n', spaces). Decoding stops at the first
// '=' if present.
func Decode(src string) []byte {
	stop := len(src)
	if eq := indexByte(src, '='); eq >= 0 {
		stop = eq
	}

	out := make([]byte, 0, stop/4*3+3)
	i := 0
	var group [4]byte
	count := 0

	for i < stop {
		v, ok, next := nextBase64Value(src, i, stop)
		i = next
		if !ok {
			break
		}
		group[count] = v
		count++
		if count == 4 {
			tmp := uint32(group[0])<<18 | uint32(group[1])<<12 | uint32(group[2])<<6 | uint32(group[3])
			out = append(out, byte(tmp>>16), byte(tmp>>8), byte(tmp))
			count = 0
		}
	}

	switch count {
	case 2:
		tmp := uint32(group[0])<<18 | uint32(group[1])<<12
		out = append(out, byte(tmp>>16))
	case 3:
		tmp := uint32(group[0])<<18 | uint32(group[1])<<12 | uint32(group[2])<<6
		out = append(out, byte(tmp>>16), byte(tmp>>8))
	}
	return out
}

func indexByte(s string, c byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == c {
			return i
		}
	}
	return -1
}
