package util

import (
	"testing"

	"github.com/iov-one/poe/x/poe"
	weaveapp "github.com/iov-one/weave/app"
)

// SerializeClaims returns the key and value result sets a node responds
// with when queried for the given claims. Each claim is keyed by its
// content.
func SerializeClaims(t testing.TB, claims ...*poe.Claim) (keys []byte, values []byte) {
	t.Helper()

	var kset, vset weaveapp.ResultSet
	for _, c := range claims {
		raw, err := c.Marshal()
		if err != nil {
			t.Fatalf("cannot marshal %X claim: %s", c.Content, err)
		}
		kset.Results = append(kset.Results, c.Content)
		vset.Results = append(vset.Results, raw)
	}

	keys, err := kset.Marshal()
	if err != nil {
		t.Fatalf("cannot marshal keys: %s", err)
	}
	values, err = vset.Marshal()
	if err != nil {
		t.Fatalf("cannot marshal values: %s", err)
	}
	return keys, values
}
