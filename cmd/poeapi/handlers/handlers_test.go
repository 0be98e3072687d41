package handlers

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"testing"

	"github.com/iov-one/poe/cmd/poeapi/client"
	"github.com/iov-one/poe/cmd/poeapi/util"
	"github.com/iov-one/poe/x/poe"
	"github.com/iov-one/weave"
	"github.com/iov-one/weave/errors"
	"github.com/iov-one/weave/weavetest"
)

type poeClientMock struct {
	Results map[string]client.AbciQueryResponse
	Err     error
}

func (mock *poeClientMock) Get(ctx context.Context, path string, dest interface{}) error {
	if mock.Err != nil {
		return mock.Err
	}
	res, ok := mock.Results[path]
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "no result declared for %q", path)
	}
	// Fill destination the same way JSON decoding would.
	reflect.ValueOf(dest).Elem().Set(reflect.ValueOf(res))
	return nil
}

func queryPath(path string, data []byte) string {
	v := make(url.Values)
	v.Add("path", `"`+path+`"`)
	v.Add("data", "0x"+hex.EncodeToString(data))
	return "/abci_query?" + v.Encode()
}

func newAbciQueryResponse(t testing.TB, claims ...*poe.Claim) client.AbciQueryResponse {
	t.Helper()
	k, v := util.SerializeClaims(t, claims...)
	return client.AbciQueryResponse{
		Response: client.AbciQueryResponseResponse{
			Key:   k,
			Value: v,
		},
	}
}

func TestClaimDetail(t *testing.T) {
	owner := weavetest.NewCondition().Address()
	content, err := poe.Fingerprint([]byte("document"))
	if err != nil {
		t.Fatalf("cannot compute fingerprint: %s", err)
	}
	claim := &poe.Claim{
		Metadata: &weave.Metadata{Schema: 1},
		Content:  content,
		Owner:    owner,
		Height:   11,
	}
	mock := &poeClientMock{
		Results: map[string]client.AbciQueryResponse{
			queryPath("/claims", content): newAbciQueryResponse(t, claim),
			queryPath("/claims", []byte{0xde, 0xad}): {},
		},
	}
	app := NewApp(mock)

	cases := map[string]struct {
		Path     string
		WantCode int
	}{
		"claim by CID": {
			Path:     "/claims/" + poe.FormatContent(content),
			WantCode: http.StatusOK,
		},
		"claim by hex": {
			Path:     "/claims/" + hex.EncodeToString(content),
			WantCode: http.StatusOK,
		},
		"not claimed": {
			Path:     "/claims/DEAD",
			WantCode: http.StatusNotFound,
		},
		"invalid content": {
			Path:     "/claims/not-a-content",
			WantCode: http.StatusBadRequest,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tc.Path, nil))
			if err != nil {
				t.Fatalf("cannot send request: %s", err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != tc.WantCode {
				t.Fatalf("want %d status, got %d", tc.WantCode, resp.StatusCode)
			}
			if tc.WantCode != http.StatusOK {
				return
			}
			var got ClaimView
			if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
				t.Fatalf("cannot decode JSON response: %s", err)
			}
			if want := NewClaimView(claim); !reflect.DeepEqual(want, got) {
				t.Fatalf("want %+v, got %+v", want, got)
			}
		})
	}
}

func TestClaimsByOwner(t *testing.T) {
	owner := weavetest.NewCondition().Address()
	claims := []*poe.Claim{
		&poe.Claim{Metadata: &weave.Metadata{Schema: 1}, Content: []byte{1}, Owner: owner, Height: 1},
		&poe.Claim{Metadata: &weave.Metadata{Schema: 1}, Content: []byte{2}, Owner: owner, Height: 2},
	}
	mock := &poeClientMock{
		Results: map[string]client.AbciQueryResponse{
			queryPath("/claims/owner", owner): newAbciQueryResponse(t, claims...),
		},
	}
	app := NewApp(mock)

	resp, err := app.Test(httptest.NewRequest("GET", "/claims?owner="+owner.String(), nil))
	if err != nil {
		t.Fatalf("cannot send request: %s", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("failed response: %d", resp.StatusCode)
	}

	var payload struct {
		Objects []ClaimView `json:"objects"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("cannot decode JSON response: %s", err)
	}
	if len(payload.Objects) != 2 {
		t.Fatalf("want 2 claims, got %d", len(payload.Objects))
	}
	if payload.Objects[0].Content != "01" || payload.Objects[1].Height != 2 {
		t.Fatalf("unexpected claims: %+v", payload.Objects)
	}
}

func TestClaimsByOwnerErrors(t *testing.T) {
	cases := map[string]struct {
		Client   client.PoeClient
		Path     string
		WantCode int
	}{
		"owner is required": {
			Client:   &poeClientMock{},
			Path:     "/claims",
			WantCode: http.StatusBadRequest,
		},
		"owner must be an address": {
			Client:   &poeClientMock{},
			Path:     "/claims?owner=zzz",
			WantCode: http.StatusBadRequest,
		},
		"node failure": {
			Client:   &poeClientMock{Err: errors.Wrap(errors.ErrDatabase, "node down")},
			Path:     "/claims?owner=" + weavetest.NewCondition().Address().String(),
			WantCode: http.StatusInternalServerError,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			app := NewApp(tc.Client)
			resp, err := app.Test(httptest.NewRequest("GET", tc.Path, nil))
			if err != nil {
				t.Fatalf("cannot send request: %s", err)
			}
			resp.Body.Close()
			if resp.StatusCode != tc.WantCode {
				t.Fatalf("want %d status, got %d", tc.WantCode, resp.StatusCode)
			}
		})
	}
}

func TestInfoAndMetrics(t *testing.T) {
	app := NewApp(&poeClientMock{})

	resp, err := app.Test(httptest.NewRequest("GET", "/info", nil))
	if err != nil {
		t.Fatalf("cannot send request: %s", err)
	}
	var info struct {
		BuildHash string `json:"build_hash"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		t.Fatalf("cannot decode JSON response: %s", err)
	}
	resp.Body.Close()
	if info.BuildHash != util.BuildHash {
		t.Fatalf("unexpected build hash: %q", info.BuildHash)
	}

	resp, err = app.Test(httptest.NewRequest("GET", "/metrics", nil))
	if err != nil {
		t.Fatalf("cannot send request: %s", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("metrics not served: %d", resp.StatusCode)
	}
}
