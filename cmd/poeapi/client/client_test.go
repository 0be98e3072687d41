package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/iov-one/poe/cmd/poeapi/util"
	"github.com/iov-one/poe/x/poe"
	"github.com/iov-one/weave"
	"github.com/iov-one/weave/errors"
	"github.com/iov-one/weave/weavetest"
)

func newTendermintMock(t testing.TB, response interface{}) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/abci_query" {
			http.NotFound(w, r)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"jsonrpc": "2.0",
			"id":      "",
			"result":  response,
		})
	}))
}

func TestABCIKeyQuery(t *testing.T) {
	owner := weavetest.NewCondition().Address()
	claim := &poe.Claim{
		Metadata: &weave.Metadata{Schema: 1},
		Content:  []byte("document"),
		Owner:    owner,
		Height:   3,
	}
	keys, values := util.SerializeClaims(t, claim)

	tm := newTendermintMock(t, AbciQueryResponse{
		Response: AbciQueryResponseResponse{Key: keys, Value: values},
	})
	defer tm.Close()

	var got poe.Claim
	c := NewHTTPPoeClient(tm.URL)
	if err := ABCIKeyQuery(context.Background(), c, "/claims", []byte("document"), &got); err != nil {
		t.Fatalf("cannot query: %s", err)
	}
	if !got.Owner.Equals(owner) || got.Height != 3 {
		t.Fatalf("unexpected claim: %+v", got)
	}
}

func TestABCIKeyQueryNotFound(t *testing.T) {
	tm := newTendermintMock(t, AbciQueryResponse{})
	defer tm.Close()

	var got poe.Claim
	c := NewHTTPPoeClient(tm.URL)
	err := ABCIKeyQuery(context.Background(), c, "/claims", []byte("document"), &got)
	if !errors.ErrNotFound.Is(err) {
		t.Fatalf("want not found error, got %+v", err)
	}
}

func TestABCIQueryFailure(t *testing.T) {
	tm := newTendermintMock(t, AbciQueryResponse{
		Response: AbciQueryResponseResponse{Code: 3, Log: "unknown path"},
	})
	defer tm.Close()

	var got poe.Claim
	it := ABCIQuery(context.Background(), NewHTTPPoeClient(tm.URL), "/unknown", nil)
	if _, err := it.Next(&got); !errors.ErrInput.Is(err) {
		t.Fatalf("want input error, got %+v", err)
	}
}

func TestABCIQueryIterator(t *testing.T) {
	owner := weavetest.NewCondition().Address()
	keys, values := util.SerializeClaims(t,
		&poe.Claim{Metadata: &weave.Metadata{Schema: 1}, Content: []byte("a"), Owner: owner, Height: 1},
		&poe.Claim{Metadata: &weave.Metadata{Schema: 1}, Content: []byte("b"), Owner: owner, Height: 2},
	)
	tm := newTendermintMock(t, AbciQueryResponse{
		Response: AbciQueryResponseResponse{Key: keys, Value: values},
	})
	defer tm.Close()

	it := ABCIQuery(context.Background(), NewHTTPPoeClient(tm.URL), "/claims/owner", owner)

	var heights []int64
	for {
		var c poe.Claim
		_, err := it.Next(&c)
		if errors.ErrIteratorDone.Is(err) {
			break
		}
		if err != nil {
			t.Fatalf("cannot iterate: %s", err)
		}
		heights = append(heights, c.Height)
	}
	if len(heights) != 2 || heights[0] != 1 || heights[1] != 2 {
		t.Fatalf("unexpected result: %v", heights)
	}
}

func TestHTTPPoeClientError(t *testing.T) {
	tm := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer tm.Close()

	var dest AbciQueryResponse
	err := NewHTTPPoeClient(tm.URL).Get(context.Background(), "/abci_query", &dest)
	if !errors.ErrDatabase.Is(err) {
		t.Fatalf("want database error, got %+v", err)
	}
}
