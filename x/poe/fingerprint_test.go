package poe

import (
	"bytes"
	"strings"
	"testing"

	"github.com/iov-one/weave/errors"
	"github.com/iov-one/weave/weavetest/assert"
)

func TestFingerprint(t *testing.T) {
	key, err := Fingerprint([]byte("hello world"))
	assert.Nil(t, err)

	// sha2-256 multihash: code, length and the 32 byte digest.
	assert.Equal(t, 34, len(key))
	assert.Equal(t, byte(0x12), key[0])
	assert.Equal(t, byte(0x20), key[1])

	other, err := Fingerprint([]byte("hello world!"))
	assert.Nil(t, err)
	if bytes.Equal(key, other) {
		t.Fatal("different documents must have different fingerprints")
	}
	if len(key) > DefaultMaxContentLength {
		t.Fatal("fingerprint must be a valid content key")
	}
}

func TestContentRoundTrip(t *testing.T) {
	key, err := Fingerprint([]byte("hello world"))
	assert.Nil(t, err)

	c, err := ContentCID(key)
	assert.Nil(t, err)

	parsed, err := ParseContent(c.String())
	assert.Nil(t, err)
	assert.Equal(t, key, parsed)

	assert.Equal(t, c.String(), FormatContent(key))
}

func TestParseContent(t *testing.T) {
	cases := map[string]struct {
		Input   string
		Want    []byte
		WantErr *errors.Error
	}{
		"hex": {
			Input: "0001ff",
			Want:  []byte{0, 1, 0xff},
		},
		"hex with surrounding space": {
			Input: " 0001FF\n",
			Want:  []byte{0, 1, 0xff},
		},
		"empty": {
			Input:   "",
			WantErr: errors.ErrEmpty,
		},
		"neither hex nor cid": {
			Input:   "not a key",
			WantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := ParseContent(tc.Input)
			if !tc.WantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			assert.Equal(t, tc.Want, got)
		})
	}
}

func TestFormatContent(t *testing.T) {
	// Content that is not a multihash is rendered as hex.
	assert.Equal(t, "DEADBEEF", FormatContent([]byte{0xde, 0xad, 0xbe, 0xef}))

	_, err := ContentCID([]byte{0xde, 0xad, 0xbe, 0xef})
	assert.IsErr(t, errors.ErrInput, err)
}

func TestShortContent(t *testing.T) {
	key, err := Fingerprint([]byte("hello world"))
	assert.Nil(t, err)
	assert.Equal(t, FormatContent(key), shortContent(key))

	long := bytes.Repeat([]byte{0xab}, 4096)
	got := shortContent(long)
	if !strings.HasSuffix(got, "...(4096 bytes)") {
		t.Fatalf("unexpected long content rendering: %q", got)
	}
	if want := strings.Repeat("AB", shortContentLength); !strings.HasPrefix(got, want) {
		t.Fatalf("unexpected long content prefix: %q", got)
	}
}
