package reader_test

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gelatocommon "github.com/CryptYlliON/gelato-network/common"
	"github.com/CryptYlliON/gelato-network/util/reader"
)

var errDown = errors.New("node down")

type fakeNode struct {
	name      string
	err       error
	txErr     error
	isPending bool
	receipt   *types.Receipt
	logs      []types.Log
}

func (f *fakeNode) NodeName() string { return f.name }
func (f *fakeNode) NodeURL() string  { return "http://" + f.name }

func (f *fakeNode) ChainID(ctx context.Context) (*big.Int, error) {
	if f.err != nil {
		return nil, f.err
	}
	return big.NewInt(4), nil
}

func (f *fakeNode) EstimateGas(ctx context.Context, from common.Address, to *common.Address, gasPrice, value *big.Int, data []byte) (uint64, error) {
	return 21000, f.err
}

func (f *fakeNode) GetPendingNonce(ctx context.Context, address common.Address) (uint64, error) {
	return 3, f.err
}

func (f *fakeNode) SuggestedGasPrice(ctx context.Context) (*big.Int, error) {
	return big.NewInt(1), f.err
}

func (f *fakeNode) TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	if f.receipt == nil {
		return nil, ethereum.NotFound
	}
	return f.receipt, nil
}

func (f *fakeNode) TransactionByHash(ctx context.Context, txHash common.Hash) (*gelatocommon.Transaction, bool, error) {
	if f.txErr != nil {
		return nil, false, f.txErr
	}
	return &gelatocommon.Transaction{}, f.isPending, nil
}

func (f *fakeNode) HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error) {
	return &types.Header{Number: number}, f.err
}

func (f *fakeNode) LogsByBlockHash(ctx context.Context, blockHash common.Hash, addresses []common.Address) ([]types.Log, error) {
	return f.logs, f.err
}

func TestFirstSuccessfulNodeWins(t *testing.T) {
	r := reader.NewEthReaderWithNodes(&fakeNode{name: "down", err: errDown}, &fakeNode{name: "up"})
	id, err := r.ChainID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), id.Int64())

	nonce, err := r.GetPendingNonce(context.Background(), common.Address{})
	require.NoError(t, err)
	assert.Equal(t, uint64(3), nonce)
}

func TestAllNodesFail(t *testing.T) {
	r := reader.NewEthReaderWithNodes(&fakeNode{name: "a", err: errDown}, &fakeNode{name: "b", err: errDown})
	_, err := r.ChainID(context.Background())
	require.ErrorIs(t, err, errDown)
	assert.Contains(t, err.Error(), "a: node down")

	_, err = reader.NewEthReaderWithNodes().ChainID(context.Background())
	assert.ErrorIs(t, err, reader.ErrNoNodes)
}

func TestTxInfoFromHash(t *testing.T) {
	hash := common.HexToHash("0x01")
	tests := []struct {
		name    string
		node    *fakeNode
		want    string
		wantErr bool
	}{
		{"not found", &fakeNode{txErr: ethereum.NotFound}, gelatocommon.TxStatusNotFound, false},
		{"node error", &fakeNode{txErr: errDown}, gelatocommon.TxStatusError, true},
		{"pending", &fakeNode{isPending: true}, gelatocommon.TxStatusPending, false},
		{"mined without receipt yet", &fakeNode{}, gelatocommon.TxStatusPending, true},
		{"done", &fakeNode{receipt: &types.Receipt{Status: types.ReceiptStatusSuccessful}}, gelatocommon.TxStatusDone, false},
		{"reverted", &fakeNode{receipt: &types.Receipt{Status: types.ReceiptStatusFailed}}, gelatocommon.TxStatusReverted, false},
		{"pre byzantium", &fakeNode{receipt: &types.Receipt{PostState: common.Hash{1}.Bytes()}}, gelatocommon.TxStatusDone, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.node.name = "node"
			info, err := reader.NewEthReaderWithNodes(tc.node).TxInfoFromHash(context.Background(), hash)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tc.want, info.Status)
		})
	}
}

func TestLogsByBlockHash(t *testing.T) {
	want := []types.Log{{Index: 2}}
	r := reader.NewEthReaderWithNodes(&fakeNode{name: "n", logs: want})
	got, err := r.LogsByBlockHash(context.Background(), common.HexToHash("0xb1"), nil)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
