package codec

import (
	"crypto/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBase64RoundTrip(t *testing.T) {
	for _, n := range []int{0, 1, 2, 3, 4, 31, 32, 33, 100} {
		buf := make([]byte, n)
		_, _ = rand.Read(buf)
		dec := Decode(EncodeUnpadded(buf))
		assert.Equalf(t, buf, dec, "round trip mismatch for len %d", n)
	}
}

func TestBase64CanonicalKeyLength(t *testing.T) {
	key := make([]byte, 32)
	require.Len(t, EncodeUnpadded(key), 43, "unpadded 32-byte key should encode to 43 chars")
}

func TestBase64DecodeSkipsWhitespace(t *testing.T) {
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}
	clean := EncodeUnpadded(key)
	var noisy strings.Builder
	for i, c := range clean {
		noisy.WriteRune(c)
		if i%5 == 0 {
			noisy.WriteString("\r\n ")
		}
	}
	assert.Equal(t, key, Decode(noisy.String()), "whitespace-tolerant decode mismatch")
}

func TestBase64EncodeNeverEmitsWhitespace(t *testing.T) {
	buf := make([]byte, 50)
	_, _ = rand.Read(buf)
	enc := Encode(buf)
	assert.NotContains(t, enc, " ")
	assert.NotContains(t, enc, "\r")
	assert.NotContains(t, enc, "\n")
	assert.NotContains(t, enc, "\t")
}

func TestHexRoundTrip(t *testing.T) {
	buf := []byte{0x00, 0x01, 0xab, 0xff}
	enc := HexEncode(buf)
	require.Equal(t, "0001abff", enc)
	assert.Equal(t, buf, HexDecode(enc))
}

func TestURLEncodeDecode(t *testing.T) {
	src := "hello world! æ"
	enc := URLEncode(src)
	require.Equal(t, "hello+world%21+%C3%A6", enc)
	assert.Equal(t, src, URLDecode(enc))
}

func TestURLDecodeAcceptsLowerAndUpperHex(t *testing.T) {
	assert.Equal(t, "+", URLDecode("%2b"))
	assert.Equal(t, "+", URLDecode("%2B"))
}

func TestRescueCodeFormatAndParse(t *testing.T) {
	digits := "123456789012345678901234"
	formatted := FormatRescueCode(digits)
	require.Equal(t, "1234-5678-9012-3456-7890-1234", formatted)
	back, ok := ParseRescueCode(formatted)
	assert.True(t, ok)
	assert.Equal(t, digits, back)
}

func TestParseRescueCodeRejectsWrongLength(t *testing.T) {
	_, ok := ParseRescueCode("123")
	assert.False(t, ok)
}
