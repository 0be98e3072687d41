package main

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/iov-one/poe/x/poe"
	"github.com/iov-one/weave"
	"github.com/iov-one/weave/app"
)

func cmdResolveClaim(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Query a node for the claim of given content. Successful result outputs a JSON
serialized representation of the claim.
`)
		fl.PrintDefaults()
	}
	var (
		tmAddrFl = fl.String("tm", env("POECLI_TM_ADDR", defaultTmAddr),
			"Tendermint node address. You can use POECLI_TM_ADDR environment variable to set it.")
		contentFl = flContent(fl, "content", "Claimed content, CID or hex encoded.")
		fileFl    = fl.String("file", "", "Path to a file which fingerprint was claimed.")
	)
	fl.Parse(args)

	content, err := contentArg(*contentFl, *fileFl)
	if err != nil {
		flagDie("%s", err)
	}

	models, err := abciQuery(*tmAddrFl, "/claims", content)
	if err != nil {
		return err
	}
	switch len(models) {
	case 0:
		return fmt.Errorf("content %s is not claimed", poe.FormatContent(content))
	case 1:
		// All good.
	default:
		return fmt.Errorf("expected one claim, got %d", len(models))
	}

	var claim poe.Claim
	if err := claim.Unmarshal(models[0].Value); err != nil {
		return fmt.Errorf("cannot unmarshal claim: %s", err)
	}
	raw, err := json.MarshalIndent(newClaimView(&claim), "", "\t")
	if err != nil {
		return fmt.Errorf("cannot json serialize claim: %s", err)
	}
	_, err = output.Write(raw)
	return err
}

func cmdListClaims(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Query a node for all claims owned by given address. Successful result outputs
a JSON serialized list of claims.
`)
		fl.PrintDefaults()
	}
	var (
		tmAddrFl = fl.String("tm", env("POECLI_TM_ADDR", defaultTmAddr),
			"Tendermint node address. You can use POECLI_TM_ADDR environment variable to set it.")
		ownerFl = flAddress(fl, "owner", "", "Address of the claims owner.")
	)
	fl.Parse(args)

	if err := ownerFl.Validate(); err != nil {
		flagDie("invalid owner address: %s", err)
	}

	models, err := abciQuery(*tmAddrFl, "/claims/owner", *ownerFl)
	if err != nil {
		return err
	}
	views := make([]claimView, 0, len(models))
	for _, m := range models {
		var claim poe.Claim
		if err := claim.Unmarshal(m.Value); err != nil {
			return fmt.Errorf("cannot unmarshal %X claim: %s", m.Key, err)
		}
		views = append(views, newClaimView(&claim))
	}
	raw, err := json.MarshalIndent(views, "", "\t")
	if err != nil {
		return fmt.Errorf("cannot json serialize claims: %s", err)
	}
	_, err = output.Write(raw)
	return err
}

type claimView struct {
	Content string        `json:"content"`
	Owner   weave.Address `json:"owner"`
	Height  int64         `json:"height"`
}

func newClaimView(c *poe.Claim) claimView {
	return claimView{
		Content: poe.FormatContent(c.Content),
		Owner:   c.Owner,
		Height:  c.Height,
	}
}

// abciQuery sends a query to the tendermint node using its URI interface and
// returns all models found.
func abciQuery(serverURL, path string, data []byte) ([]weave.Model, error) {
	q := url.Values{}
	q.Set("path", `"`+path+`"`)
	q.Set("data", "0x"+hex.EncodeToString(data))
	resp, err := http.Get(serverURL + "/abci_query?" + q.Encode())
	if err != nil {
		return nil, fmt.Errorf("cannot fetch: %s", err)
	}
	defer resp.Body.Close()

	var payload struct {
		Result struct {
			Response struct {
				Code  uint32
				Log   string
				Key   []byte
				Value []byte
			}
		}
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("cannot decode response: %s", err)
	}
	r := payload.Result.Response
	if r.Code != 0 {
		return nil, fmt.Errorf("query failed: (%d) %s", r.Code, r.Log)
	}
	if len(r.Key) == 0 {
		return nil, nil
	}
	var keys, values app.ResultSet
	if err := keys.Unmarshal(r.Key); err != nil {
		return nil, fmt.Errorf("cannot unmarshal keys: %s", err)
	}
	if err := values.Unmarshal(r.Value); err != nil {
		return nil, fmt.Errorf("cannot unmarshal values: %s", err)
	}
	models, err := app.JoinResults(&keys, &values)
	if err != nil {
		return nil, errors.New("keys and values do not match")
	}
	return models, nil
}
