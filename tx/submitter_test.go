package tx_test

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gelatocommon "github.com/CryptYlliON/gelato-network/common"
	"github.com/CryptYlliON/gelato-network/contracts"
	"github.com/CryptYlliON/gelato-network/tx"
	"github.com/CryptYlliON/gelato-network/util/account"
)

var coreAddr = common.HexToAddress("0x1111111111111111111111111111111111111111")

type fakeReader struct {
	nonce       uint64
	gasPrice    *big.Int
	gas         uint64
	estimateErr error
	estimated   []*big.Int
}

func (f *fakeReader) ChainID(ctx context.Context) (*big.Int, error) {
	return big.NewInt(4), nil
}

func (f *fakeReader) GetPendingNonce(ctx context.Context, address common.Address) (uint64, error) {
	return f.nonce, nil
}

func (f *fakeReader) GetGasPriceWeiSuggestion(ctx context.Context) (*big.Int, error) {
	return f.gasPrice, nil
}

func (f *fakeReader) EstimateExactGas(ctx context.Context, from common.Address, to *common.Address, gasPrice, value *big.Int, data []byte) (uint64, error) {
	f.estimated = append(f.estimated, value)
	return f.gas, f.estimateErr
}

type fakeBroadcaster struct {
	sent   []*types.Transaction
	accept bool
}

func (f *fakeBroadcaster) BroadcastTx(ctx context.Context, t *types.Transaction) (string, bool, error) {
	f.sent = append(f.sent, t)
	if !f.accept {
		return t.Hash().Hex(), false, errors.New("nonce too low")
	}
	return t.Hash().Hex(), true, nil
}

type fakeWaiter struct {
	status string
	err    error
}

func (f *fakeWaiter) BlockingWait(ctx context.Context, h common.Hash) (gelatocommon.TxInfo, error) {
	if f.err != nil {
		return gelatocommon.TxInfo{Status: gelatocommon.TxStatusError}, f.err
	}
	return gelatocommon.TxInfo{
		Status:  f.status,
		Receipt: &types.Receipt{TxHash: h, BlockHash: common.HexToHash("0xb10c")},
	}, nil
}

func setup(t *testing.T) (*contracts.Contract, *account.Account) {
	t.Helper()
	a, err := contracts.NewStore("", nil).ABI("GelatoCore", coreAddr)
	require.NoError(t, err)
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	return contracts.NewContract("GelatoCore", coreAddr, a, nil), account.NewPrivateKeyAccount(key)
}

func multiProvideRequest(t *testing.T, core *contracts.Contract, from *account.Account) tx.Request {
	return tx.Request{
		From:          from,
		Contract:      core,
		Method:        "multiProvide",
		Args:          []any{common.Address{}, emptyTaskSpecs(t, core), []common.Address{}},
		Value:         big.NewInt(1e18),
		ExtraGasLimit: 50000,
	}
}

func TestSubmitDryRun(t *testing.T) {
	core, from := setup(t)
	r := &fakeReader{nonce: 7, gasPrice: big.NewInt(2e9), gas: 100000}
	b := &fakeBroadcaster{accept: true}
	s := tx.NewSubmitter(r, b, &fakeWaiter{status: gelatocommon.TxStatusDone}, time.Minute)

	req := multiProvideRequest(t, core, from)
	req.DryRun = true
	res, err := s.Submit(context.Background(), req)
	require.NoError(t, err)

	assert.Empty(t, b.sent)
	assert.False(t, res.Broadcasted)
	assert.Equal(t, uint64(7), res.Tx.Nonce())
	assert.Equal(t, uint64(150000), res.Tx.Gas())
	assert.Equal(t, big.NewInt(2e9), res.Tx.GasPrice())
	assert.Equal(t, big.NewInt(1e18), res.Tx.Value())
	assert.Equal(t, coreAddr, *res.Tx.To())

	decoded := new(types.Transaction)
	require.NoError(t, decoded.UnmarshalBinary(hexutil.MustDecode(res.RawTx)))
	assert.Equal(t, res.Hash, decoded.Hash())
	sender, err := types.Sender(types.LatestSignerForChainID(big.NewInt(4)), decoded)
	require.NoError(t, err)
	assert.Equal(t, from.Address(), sender)
}

func TestSubmitWaitsForReceipt(t *testing.T) {
	core, from := setup(t)
	r := &fakeReader{gasPrice: big.NewInt(1e9), gas: 21000}
	b := &fakeBroadcaster{accept: true}
	s := tx.NewSubmitter(r, b, &fakeWaiter{status: gelatocommon.TxStatusDone}, time.Minute)

	nonce := uint64(3)
	req := multiProvideRequest(t, core, from)
	req.Nonce = &nonce
	req.GasPrice = big.NewInt(5e9)
	req.ExtraGasPrice = big.NewInt(1e9)
	res, err := s.Submit(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, b.sent, 1)
	assert.Equal(t, uint64(3), b.sent[0].Nonce())
	assert.Equal(t, big.NewInt(6e9), b.sent[0].GasPrice())
	assert.Equal(t, []*big.Int{big.NewInt(1e18)}, r.estimated)
	assert.True(t, res.Broadcasted)
	assert.Equal(t, gelatocommon.TxStatusDone, res.Status)
	assert.Equal(t, common.HexToHash("0xb10c"), res.BlockHash)
}

func TestSubmitFailures(t *testing.T) {
	core, from := setup(t)

	t.Run("reverted", func(t *testing.T) {
		s := tx.NewSubmitter(
			&fakeReader{gasPrice: big.NewInt(1), gas: 1},
			&fakeBroadcaster{accept: true},
			&fakeWaiter{status: gelatocommon.TxStatusReverted}, 0)
		req := multiProvideRequest(t, core, from)
			res, err := s.Submit(context.Background(), req)
		assert.ErrorIs(t, err, tx.ErrTxReverted)
		require.NotNil(t, res)
		assert.Equal(t, gelatocommon.TxStatusReverted, res.Status)
	})

	t.Run("lost", func(t *testing.T) {
		s := tx.NewSubmitter(
			&fakeReader{gasPrice: big.NewInt(1), gas: 1},
			&fakeBroadcaster{accept: true},
			&fakeWaiter{status: gelatocommon.TxStatusLost}, 0)
		req := multiProvideRequest(t, core, from)
			_, err := s.Submit(context.Background(), req)
		assert.ErrorIs(t, err, tx.ErrTxLost)
	})

	t.Run("rejected by every node", func(t *testing.T) {
		b := &fakeBroadcaster{}
		s := tx.NewSubmitter(&fakeReader{gasPrice: big.NewInt(1), gas: 1}, b, &fakeWaiter{}, 0)
		req := multiProvideRequest(t, core, from)
			res, err := s.Submit(context.Background(), req)
		assert.ErrorContains(t, err, "nonce too low")
		assert.False(t, res.Broadcasted)
		assert.Len(t, b.sent, 1)
	})

	t.Run("estimate fails", func(t *testing.T) {
		b := &fakeBroadcaster{accept: true}
		s := tx.NewSubmitter(
			&fakeReader{gasPrice: big.NewInt(1), estimateErr: errors.New("execution reverted")},
			b, &fakeWaiter{}, 0)
		req := multiProvideRequest(t, core, from)
			_, err := s.Submit(context.Background(), req)
		assert.ErrorContains(t, err, "execution reverted")
		assert.Empty(t, b.sent)
	})

	t.Run("wait cancelled", func(t *testing.T) {
		s := tx.NewSubmitter(
			&fakeReader{gasPrice: big.NewInt(1), gas: 1},
			&fakeBroadcaster{accept: true},
			&fakeWaiter{err: context.DeadlineExceeded}, 0)
		req := multiProvideRequest(t, core, from)
			_, err := s.Submit(context.Background(), req)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("missing signer", func(t *testing.T) {
		s := tx.NewSubmitter(&fakeReader{}, &fakeBroadcaster{}, &fakeWaiter{}, 0)
		_, err := s.Submit(context.Background(), tx.Request{Contract: core})
		assert.ErrorIs(t, err, tx.ErrMissingSigner)
	})
}

func TestSubmitNoWait(t *testing.T) {
	core, from := setup(t)
	s := tx.NewSubmitter(
		&fakeReader{gasPrice: big.NewInt(1), gas: 1},
		&fakeBroadcaster{accept: true},
		&fakeWaiter{err: errors.New("must not wait")}, 0)
	req := multiProvideRequest(t, core, from)
	req.NoWait = true
	res, err := s.Submit(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, gelatocommon.TxStatusPending, res.Status)
}

// emptyTaskSpecs builds a zero-length TaskSpec[] of the abi's tuple type.
func emptyTaskSpecs(t *testing.T, core *contracts.Contract) any {
	t.Helper()
	m, err := core.Method("multiProvide")
	require.NoError(t, err)
	v, err := contracts.NewArgConverter(nil).Convert(m.Inputs[1].Type, []any{})
	require.NoError(t, err)
	return v
}
