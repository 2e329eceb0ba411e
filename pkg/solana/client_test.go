package solana

import (
	"crypto/ed25519"
	"encoding/json"
	"testing"
	"time"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ybbus/jsonrpc"

	"github.com/bonk-staking/go-client/pkg/retry"
	"github.com/bonk-staking/go-client/pkg/retry/backoff"
)

func TestSignatureStatus(t *testing.T) {
	zero, one := 0, 1

	testCases := []struct {
		s         SignatureStatus
		confirmed bool
		finalized bool
	}{
		{
			s: SignatureStatus{
				Slot:               10,
				ErrorResult:        nil,
				Confirmations:      &zero,
				ConfirmationStatus: "",
			},
		},
		{
			s: SignatureStatus{
				Slot:               10,
				ErrorResult:        nil,
				Confirmations:      &zero,
				ConfirmationStatus: "random",
			},
		},
		{
			s: SignatureStatus{
				Slot:               10,
				ErrorResult:        nil,
				Confirmations:      &zero,
				ConfirmationStatus: confirmationStatusProcessed,
			},
		},
		{
			s: SignatureStatus{
				Slot:               10,
				ErrorResult:        nil,
				Confirmations:      &one,
				ConfirmationStatus: "",
			},
			confirmed: true,
		},
		{
			s: SignatureStatus{
				Slot:               10,
				ErrorResult:        nil,
				Confirmations:      &zero,
				ConfirmationStatus: confirmationStatusConfirmed,
			},
			confirmed: true,
		},
		{
			s: SignatureStatus{
				Slot:               10,
				ErrorResult:        nil,
				Confirmations:      &zero,
				ConfirmationStatus: confirmationStatusFinalized,
			},
			confirmed: true,
			finalized: true,
		},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.confirmed, tc.s.Confirmed())
		assert.Equal(t, tc.finalized, tc.s.Finalized())
	}
}

// stubRPCClient serves canned results (or a canned error) for CallFor,
// which is the only jsonrpc.RPCClient method the client uses.
type stubRPCClient struct {
	calls  int
	method string
	err    error
	result interface{}
}

func (s *stubRPCClient) CallFor(out interface{}, method string, params ...interface{}) error {
	s.calls++
	s.method = method

	if s.err != nil {
		return s.err
	}

	b, err := json.Marshal(s.result)
	if err != nil {
		return err
	}

	return json.Unmarshal(b, out)
}

func (s *stubRPCClient) Call(method string, params ...interface{}) (*jsonrpc.RPCResponse, error) {
	return nil, errors.New("not implemented")
}

func (s *stubRPCClient) CallRaw(request *jsonrpc.RPCRequest) (*jsonrpc.RPCResponse, error) {
	return nil, errors.New("not implemented")
}

func (s *stubRPCClient) CallBatch(requests jsonrpc.RPCRequests) (jsonrpc.RPCResponses, error) {
	return nil, errors.New("not implemented")
}

func (s *stubRPCClient) CallBatchRaw(requests jsonrpc.RPCRequests) (jsonrpc.RPCResponses, error) {
	return nil, errors.New("not implemented")
}

func newTestClient(rpc jsonrpc.RPCClient) *client {
	return &client{
		log:    logrus.StandardLogger().WithField("type", "solana/client"),
		client: rpc,
		retrier: retry.NewRetrier(
			retry.RetriableErrors(errRateLimited, errServiceError),
			retry.Limit(3),
			retry.Backoff(backoff.Constant(time.Millisecond), time.Millisecond),
		),
	}
}

func TestHandleRPCError(t *testing.T) {
	c := newTestClient(&stubRPCClient{})

	assert.Equal(t, errRateLimited, c.handleRpcError("getBalance", &jsonrpc.RPCError{Code: 429}))
	assert.Equal(t, errServiceError, c.handleRpcError("getBalance", &jsonrpc.RPCError{Code: 500}))
	assert.Equal(t, errServiceError, c.handleRpcError("getBalance", &jsonrpc.RPCError{Code: 503}))
	assert.Equal(t, errServiceError, c.handleRpcError("getBalance", &jsonrpc.RPCError{Code: rpcNodeUnhealthyCode}))

	// Terminal RPC errors pass through untouched so callers can inspect
	// the code.
	invalidParam := &jsonrpc.RPCError{Code: invalidParamCode}
	assert.Equal(t, error(invalidParam), c.handleRpcError("getBalance", invalidParam))

	transportErr := errors.New("connection reset")
	assert.Equal(t, transportErr, c.handleRpcError("getBalance", transportErr))
}

func TestClient_RetryRateLimited(t *testing.T) {
	stub := &stubRPCClient{
		err: &jsonrpc.RPCError{Code: 429, Message: "Too many requests"},
	}
	c := newTestClient(stub)

	account := make(ed25519.PublicKey, ed25519.PublicKeySize)
	_, err := c.GetBalance(account)
	assert.ErrorIs(t, err, errRateLimited)
	assert.Equal(t, 3, stub.calls)
}

func TestClient_GetTokenAccountBalance(t *testing.T) {
	stub := &stubRPCClient{
		result: map[string]interface{}{
			"context": map[string]interface{}{"slot": 1234},
			"value":   map[string]interface{}{"amount": "49801500000", "decimals": 5},
		},
	}
	c := newTestClient(stub)

	account := make(ed25519.PublicKey, ed25519.PublicKeySize)
	balance, slot, err := c.GetTokenAccountBalance(account)
	require.NoError(t, err)
	assert.EqualValues(t, 49801500000, balance)
	assert.EqualValues(t, 1234, slot)
	assert.Equal(t, "getTokenAccountBalance", stub.method)
}

func TestClient_GetTokenAccountBalance_NoBalance(t *testing.T) {
	stub := &stubRPCClient{
		err: &jsonrpc.RPCError{Code: invalidParamCode, Message: "Invalid param: could not find account"},
	}
	c := newTestClient(stub)

	account := make(ed25519.PublicKey, ed25519.PublicKeySize)
	_, _, err := c.GetTokenAccountBalance(account)
	assert.Equal(t, ErrNoBalance, err)
	assert.Equal(t, 1, stub.calls)
}

func TestClient_GetBalance_NoBalance(t *testing.T) {
	stub := &stubRPCClient{
		err: &jsonrpc.RPCError{Code: invalidParamCode, Message: "Invalid param: could not find account"},
	}
	c := newTestClient(stub)

	account := make(ed25519.PublicKey, ed25519.PublicKeySize)
	_, err := c.GetBalance(account)
	assert.Equal(t, ErrNoBalance, err)
	assert.Equal(t, 1, stub.calls)
}

func TestClient_GetLatestBlockhashCache(t *testing.T) {
	var first Blockhash
	for i := range first {
		first[i] = byte(i + 1)
	}

	stub := &stubRPCClient{
		result: map[string]interface{}{
			"value": map[string]interface{}{"blockhash": base58.Encode(first[:])},
		},
	}
	c := newTestClient(stub)

	hash, err := c.GetLatestBlockhash()
	require.NoError(t, err)
	assert.Equal(t, first, hash)
	assert.Equal(t, 1, stub.calls)

	// Inside the refresh window the cached value is served without an
	// RPC round trip.
	hash, err = c.GetLatestBlockhash()
	require.NoError(t, err)
	assert.Equal(t, first, hash)
	assert.Equal(t, 1, stub.calls)

	var second Blockhash
	for i := range second {
		second[i] = byte(0xff - i)
	}
	stub.result = map[string]interface{}{
		"value": map[string]interface{}{"blockhash": base58.Encode(second[:])},
	}

	// Force the window to lapse; the minimum randomized window is 1.6s.
	c.blockMu.Lock()
	c.lastWrite = time.Now().Add(-4 * time.Second)
	c.blockMu.Unlock()

	hash, err = c.GetLatestBlockhash()
	require.NoError(t, err)
	assert.Equal(t, second, hash)
	assert.Equal(t, 2, stub.calls)
}

func TestClient_GetSignatureStatuses(t *testing.T) {
	stub := &stubRPCClient{
		result: map[string]interface{}{
			"context": map[string]interface{}{"slot": 100},
			"value": []interface{}{
				map[string]interface{}{
					"slot":               90,
					"confirmations":      nil,
					"confirmationStatus": confirmationStatusFinalized,
					"err":                nil,
				},
				nil,
				map[string]interface{}{
					"slot":               95,
					"confirmations":      1,
					"confirmationStatus": confirmationStatusConfirmed,
					"err": map[string]interface{}{
						"InstructionError": []interface{}{2, map[string]interface{}{"Custom": 3}},
					},
				},
			},
		},
	}
	c := newTestClient(stub)

	statuses, err := c.GetSignatureStatuses(make([]Signature, 3))
	require.NoError(t, err)
	require.Len(t, statuses, 3)

	require.NotNil(t, statuses[0])
	assert.True(t, statuses[0].Finalized())
	assert.Nil(t, statuses[0].ErrorResult)

	assert.Nil(t, statuses[1])

	require.NotNil(t, statuses[2])
	assert.True(t, statuses[2].Confirmed())
	require.NotNil(t, statuses[2].ErrorResult)
	assert.Equal(t, TransactionErrorInstructionError, statuses[2].ErrorResult.ErrorKey())
	assert.Equal(t, CustomError(3), *statuses[2].ErrorResult.InstructionError().CustomError())
}
