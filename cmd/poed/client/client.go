package client

import (
	"sync"

	"github.com/iov-one/weave"
	"github.com/iov-one/weave/app"
	"github.com/iov-one/weave/x/sigs"
	"github.com/pkg/errors"
	"github.com/tendermint/tendermint/rpc/client"
	ctypes "github.com/tendermint/tendermint/rpc/core/types"
	tmtypes "github.com/tendermint/tendermint/types"
)

type GenesisDoc = tmtypes.GenesisDoc

// Client is an interface to interact with a poed node.
type Client interface {
	GetUser(addr weave.Address) (*UserResponse, error)
	BroadcastTx(tx weave.Tx) BroadcastTxResponse
	AbciQuery(path string, data []byte) (AbciResponse, error)
}

// PoeClient is a tendermint client wrapped to provide simple access to the
// data structures used by the proof of existence application.
type PoeClient struct {
	conn client.Client
}

var _ Client = (*PoeClient)(nil)

// NewClient wraps a PoeClient around an existing tendermint client
// connection.
func NewClient(conn client.Client) *PoeClient {
	return &PoeClient{conn: conn}
}

// NewHTTPConnection connects to the RPC endpoint of a node, for example
// http://localhost:26657.
func NewHTTPConnection(remote string) client.Client {
	return client.NewHTTP(remote, "/websocket")
}

// Genesis will return the genesis directly from the node
func (pc *PoeClient) Genesis() (*GenesisDoc, error) {
	gen, err := pc.conn.Genesis()
	if err != nil {
		return nil, err
	}
	return gen.Genesis, nil
}

// ChainID will parse out the chainID from the genesis
func (pc *PoeClient) ChainID() (string, error) {
	gen, err := pc.Genesis()
	if err != nil {
		return "", err
	}
	return gen.ChainID, nil
}

// AbciResponse contains a query result: a (possibly empty) list of key-value
// pairs, and the height at which it queried
type AbciResponse struct {
	Models []weave.Model
	Height int64
}

// AbciQuery calls abci query on tendermint rpc, verifies if it is an error or
// empty, and if there is data pulls out the ResultSets from keys and values
// into a useful AbciResponse struct
func (pc *PoeClient) AbciQuery(path string, data []byte) (AbciResponse, error) {
	var out AbciResponse

	q, err := pc.conn.ABCIQuery(path, data)
	if err != nil {
		return out, err
	}
	resp := q.Response
	if resp.IsErr() {
		return out, errors.Errorf("(%d): %s", resp.Code, resp.Log)
	}
	out.Height = resp.Height

	if len(resp.Key) == 0 {
		return out, nil
	}

	var keys, vals app.ResultSet
	if err := keys.Unmarshal(resp.Key); err != nil {
		return out, errors.Wrap(err, "keys")
	}
	if err := vals.Unmarshal(resp.Value); err != nil {
		return out, errors.Wrap(err, "values")
	}
	out.Models, err = app.JoinResults(&keys, &vals)
	return out, err
}

// BroadcastTxResponse is the result of submitting a transaction.
type BroadcastTxResponse struct {
	Error    error                           // not-nil if there was an error sending
	Response *ctypes.ResultBroadcastTxCommit // not-nil if we got response from node
}

// IsError returns the error for failure if it failed, or nil if it
// succeeded
func (b BroadcastTxResponse) IsError() error {
	if b.Error != nil {
		return b.Error
	}
	if b.Response.CheckTx.IsErr() {
		ctx := b.Response.CheckTx
		return errors.Errorf("CheckTx error: (%d) %s", ctx.Code, ctx.Log)
	}
	if b.Response.DeliverTx.IsErr() {
		dtx := b.Response.DeliverTx
		return errors.Errorf("DeliverTx error: (%d) %s", dtx.Code, dtx.Log)
	}
	return nil
}

// BroadcastTx serializes a signed transaction and writes to the blockchain.
// It returns when the tx is committed to the blockchain.
func (pc *PoeClient) BroadcastTx(tx weave.Tx) BroadcastTxResponse {
	data, err := tx.Marshal()
	if err != nil {
		return BroadcastTxResponse{Error: err}
	}
	res, err := pc.conn.BroadcastTxCommit(data)
	return BroadcastTxResponse{
		Error:    err,
		Response: res,
	}
}

// UserResponse is a response on a query for a User
type UserResponse struct {
	Address  weave.Address
	UserData sigs.UserData
	Height   int64
}

// GetUser will return nonce and public key registered for a given address if
// it was ever used. If it returns (nil, nil), then this address never signed
// a transaction before (and can use nonce = 0)
func (pc *PoeClient) GetUser(addr weave.Address) (*UserResponse, error) {
	if err := addr.Validate(); err != nil {
		return nil, errors.WithMessage(err, "invalid address")
	}

	resp, err := pc.AbciQuery("/auth", addr)
	if err != nil {
		return nil, err
	}
	if len(resp.Models) == 0 {
		return nil, nil
	}
	model := resp.Models[0]

	// key is the address prefixed with "sigs:"
	acct := weave.Address(model.Key[5:])
	if !addr.Equals(acct) {
		return nil, errors.Errorf("mismatch, queried %s, returned %s", addr, acct)
	}
	out := UserResponse{
		Address: acct,
		Height:  resp.Height,
	}
	if err := out.UserData.Unmarshal(model.Value); err != nil {
		return nil, err
	}
	return &out, nil
}

// Nonce has a client/address pair, queries for the nonce and caches recent
// nonce locally to quickly sign
type Nonce struct {
	mutex     sync.Mutex
	client    Client
	addr      weave.Address
	nonce     int64
	fromQuery bool
}

// NewNonce creates a nonce for a client / address pair. Call Query to force
// a query, Next to use cache if possible
func NewNonce(client Client, addr weave.Address) *Nonce {
	return &Nonce{client: client, addr: addr}
}

// Query always queries the blockchain for the next nonce
func (n *Nonce) Query() (int64, error) {
	user, err := n.client.GetUser(n.addr)
	if err != nil {
		return 0, err
	}
	n.mutex.Lock()
	defer n.mutex.Unlock()
	if user != nil {
		n.nonce = user.UserData.Sequence
	} else {
		// new account starts at 0
		n.nonce = 0
	}
	n.fromQuery = true
	return n.nonce, nil
}

// Next will use a cached value if present, otherwise Query. It will always
// increment by 1, assuming last nonce was properly used.
func (n *Nonce) Next() (int64, error) {
	n.mutex.Lock()
	uninitialized := !n.fromQuery && n.nonce == 0
	n.mutex.Unlock()
	if uninitialized {
		return n.Query()
	}
	n.mutex.Lock()
	defer n.mutex.Unlock()
	n.nonce++
	n.fromQuery = false
	return n.nonce, nil
}
