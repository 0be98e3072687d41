package client

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"

	"github.com/iov-one/weave"
	weaveapp "github.com/iov-one/weave/app"
	"github.com/iov-one/weave/errors"
)

// PoeClient is implemented by any service that provides access to the
// tendermint RPC API of a poed node.
type PoeClient interface {
	Get(ctx context.Context, path string, dest interface{}) error
}

// HTTPPoeClient implements PoeClient interface and it is using HTTP transport
// to communicate with a tendermint node.
type HTTPPoeClient struct {
	apiURL string
	cli    http.Client
}

var _ PoeClient = (*HTTPPoeClient)(nil)

// NewHTTPPoeClient returns an instance of a PoeClient that is using HTTP
// transport.
func NewHTTPPoeClient(apiURL string) *HTTPPoeClient {
	return &HTTPPoeClient{
		apiURL: apiURL,
	}
}

func (c *HTTPPoeClient) Get(ctx context.Context, path string, dest interface{}) error {
	req, err := http.NewRequest("GET", c.apiURL+path, nil)
	if err != nil {
		return errors.Wrap(err, "create http request")
	}
	req = req.WithContext(ctx)

	resp, err := c.cli.Do(req)
	if err != nil {
		return errors.Wrap(err, "do request")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		b, _ := ioutil.ReadAll(io.LimitReader(resp.Body, 1e5))
		return errors.Wrapf(errors.ErrDatabase, "bad response: %d %s", resp.StatusCode, string(b))
	}

	payload := jsonrpcResponse{Result: dest}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1e6)).Decode(&payload); err != nil {
		return errors.Wrap(err, "decode response")
	}
	if payload.Error != nil {
		return payload.Error
	}
	return nil
}

type jsonrpcResponse struct {
	Error  *jsonResponseError
	Result interface{}
}

type jsonResponseError struct {
	Code    int
	Message string
	Data    string
}

func (e *jsonResponseError) Error() string {
	if len(e.Data) != 0 {
		return fmt.Sprintf("code %d, %s", e.Code, e.Data)
	}
	return fmt.Sprintf("code %d, %s", e.Code, e.Message)
}

// AbciQueryResponse is the result of the abci_query tendermint RPC call.
type AbciQueryResponse struct {
	Response AbciQueryResponseResponse
}

type AbciQueryResponseResponse struct {
	Code  uint32
	Log   string
	Key   []byte
	Value []byte
}

func abciQuery(ctx context.Context, c PoeClient, path string, data []byte) (*AbciQueryResponse, error) {
	v := make(url.Values)
	v.Add("path", `"`+path+`"`)
	v.Add("data", "0x"+hex.EncodeToString(data))
	apiPath := "/abci_query?" + v.Encode()

	var abciResponse AbciQueryResponse
	if err := c.Get(ctx, apiPath, &abciResponse); err != nil {
		return nil, errors.Wrap(err, "response")
	}
	if r := abciResponse.Response; r.Code != 0 {
		return nil, errors.Wrapf(errors.ErrInput, "query failed with code %d: %s", r.Code, r.Log)
	}
	return &abciResponse, nil
}

// ABCIKeyQuery loads a single entity stored under given key into the
// destination. ErrNotFound is returned if the entity does not exist.
func ABCIKeyQuery(ctx context.Context, c PoeClient, path string, entityKey []byte, destination weave.Persistent) error {
	abciResponse, err := abciQuery(ctx, c, path, entityKey)
	if err != nil {
		return err
	}
	if len(abciResponse.Response.Value) == 0 {
		return errors.Wrap(errors.ErrNotFound, "empty response")
	}

	var values weaveapp.ResultSet
	if err := values.Unmarshal(abciResponse.Response.Value); err != nil {
		return errors.Wrap(err, "cannot unmarshal values")
	}
	if len(values.Results) == 0 {
		return errors.Wrap(errors.ErrNotFound, "no results")
	}
	if err := destination.Unmarshal(values.Results[0]); err != nil {
		return errors.Wrap(err, "cannot unmarshal to destination")
	}
	return nil
}

// ABCIQuery returns an iterator over all entities returned by a query, for
// example all entities that match a secondary index value.
func ABCIQuery(ctx context.Context, c PoeClient, path string, data []byte) ABCIIterator {
	abciResponse, err := abciQuery(ctx, c, path, data)
	if err != nil {
		return &resultIterator{err: err}
	}
	if len(abciResponse.Response.Key) == 0 {
		return &resultIterator{}
	}

	var values weaveapp.ResultSet
	if err := values.Unmarshal(abciResponse.Response.Value); err != nil {
		return &resultIterator{err: errors.Wrap(err, "unmarshal values response")}
	}
	var keys weaveapp.ResultSet
	if err := keys.Unmarshal(abciResponse.Response.Key); err != nil {
		return &resultIterator{err: errors.Wrap(err, "unmarshal keys response")}
	}
	if len(keys.Results) != len(values.Results) {
		return &resultIterator{err: errors.Wrap(errors.ErrState, "keys and values count mismatch")}
	}

	return &resultIterator{
		keys:   keys.Results,
		values: values.Results,
	}
}

// ABCIIterator iterates over query results. ErrIteratorDone is returned when
// there are no more results.
type ABCIIterator interface {
	Next(weave.Persistent) ([]byte, error)
}

type resultIterator struct {
	err    error
	keys   [][]byte
	values [][]byte
}

func (it *resultIterator) Next(model weave.Persistent) ([]byte, error) {
	if it.err != nil {
		return nil, it.err
	}
	if len(it.keys) == 0 {
		return nil, errors.ErrIteratorDone
	}
	val := it.values[0]
	if err := model.Unmarshal(val); err != nil {
		return nil, errors.Wrap(err, "unmarshal model")
	}
	it.values = it.values[1:]
	key := it.keys[0]
	it.keys = it.keys[1:]
	return key, nil
}
