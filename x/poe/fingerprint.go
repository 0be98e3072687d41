package poe

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/iov-one/weave/errors"
	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
)

// Fingerprint returns the content key of a document. The key is the
// sha2-256 multihash of the data, so it can be rendered as a CID.
func Fingerprint(data []byte) ([]byte, error) {
	sum, err := multihash.Sum(data, multihash.SHA2_256, -1)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return sum, nil
}

// ContentCID returns the CIDv1 of a content key that was created using
// Fingerprint. It fails for any other content key.
func ContentCID(content []byte) (cid.Cid, error) {
	mh, err := multihash.Cast(content)
	if err != nil {
		return cid.Undef, errors.Wrap(errors.ErrInput, "content is not a multihash")
	}
	return cid.NewCidV1(cid.Raw, mh), nil
}

// ParseContent decodes a content key from its text representation. Both a
// CID and a hex encoded key are accepted.
func ParseContent(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.Wrap(errors.ErrEmpty, "content")
	}
	// A base16 CID has an odd length, so it is never valid hex.
	if raw, err := hex.DecodeString(s); err == nil {
		return raw, nil
	}
	c, err := cid.Decode(s)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, "content must be a CID or hex encoded")
	}
	return c.Hash(), nil
}

// FormatContent returns the CID of the content key if it is a multihash,
// or its hex representation otherwise.
func FormatContent(content []byte) string {
	if c, err := ContentCID(content); err == nil {
		return c.String()
	}
	return hexContent(content)
}

func hexContent(content []byte) string {
	return strings.ToUpper(hex.EncodeToString(content))
}

// shortContentLength is the number of bytes of a content key shown in
// errors and logs.
const shortContentLength = 64

// shortContent renders a content key for errors and logs. Keys longer than
// shortContentLength bytes are truncated.
func shortContent(content []byte) string {
	if len(content) <= shortContentLength {
		return FormatContent(content)
	}
	return fmt.Sprintf("%s...(%d bytes)", hexContent(content[:shortContentLength]), len(content))
}
