package reader

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	gelatocommon "github.com/CryptYlliON/gelato-network/common"
)

var ErrNoNodes = errors.New("no nodes configured")

// EthReader asks every node it manages concurrently and returns the first
// successful answer.
type EthReader struct {
	nodes map[string]EthereumNode
}

func NewEthReaderGeneric(nodes map[string]string) *EthReader {
	ns := map[string]EthereumNode{}
	for name, url := range nodes {
		ns[name] = NewOneNodeReader(name, url)
	}
	return &EthReader{nodes: ns}
}

// NewEthReaderWithNodes builds a reader over already constructed nodes.
func NewEthReaderWithNodes(nodes ...EthereumNode) *EthReader {
	ns := map[string]EthereumNode{}
	for _, n := range nodes {
		ns[n.NodeName()] = n
	}
	return &EthReader{nodes: ns}
}

func wrapError(e error, name string) error {
	if e == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", name, e)
}

type nodeResult[T any] struct {
	value T
	err   error
}

func firstSuccess[T any](er *EthReader, call func(EthereumNode) (T, error)) (T, error) {
	var zero T
	if len(er.nodes) == 0 {
		return zero, ErrNoNodes
	}
	resCh := make(chan nodeResult[T], len(er.nodes))
	for _, n := range er.nodes {
		go func(n EthereumNode) {
			v, err := call(n)
			resCh <- nodeResult[T]{value: v, err: wrapError(err, n.NodeName())}
		}(n)
	}
	errs := []error{}
	for i := 0; i < len(er.nodes); i++ {
		result := <-resCh
		if result.err == nil {
			return result.value, nil
		}
		errs = append(errs, result.err)
	}
	return zero, fmt.Errorf("couldn't read from any nodes: %w", errors.Join(errs...))
}

func (er *EthReader) ChainID(ctx context.Context) (*big.Int, error) {
	return firstSuccess(er, func(n EthereumNode) (*big.Int, error) {
		return n.ChainID(ctx)
	})
}

func (er *EthReader) EstimateExactGas(ctx context.Context, from common.Address, to *common.Address, gasPrice, value *big.Int, data []byte) (uint64, error) {
	return firstSuccess(er, func(n EthereumNode) (uint64, error) {
		return n.EstimateGas(ctx, from, to, gasPrice, value, data)
	})
}

func (er *EthReader) GetPendingNonce(ctx context.Context, address common.Address) (uint64, error) {
	return firstSuccess(er, func(n EthereumNode) (uint64, error) {
		return n.GetPendingNonce(ctx, address)
	})
}

func (er *EthReader) GetGasPriceWeiSuggestion(ctx context.Context) (*big.Int, error) {
	return firstSuccess(er, func(n EthereumNode) (*big.Int, error) {
		return n.SuggestedGasPrice(ctx)
	})
}

func (er *EthReader) TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	return firstSuccess(er, func(n EthereumNode) (*types.Receipt, error) {
		return n.TransactionReceipt(ctx, txHash)
	})
}

type txByHash struct {
	tx        *gelatocommon.Transaction
	isPending bool
}

func (er *EthReader) TransactionByHash(ctx context.Context, txHash common.Hash) (*gelatocommon.Transaction, bool, error) {
	res, err := firstSuccess(er, func(n EthereumNode) (txByHash, error) {
		tx, isPending, err := n.TransactionByHash(ctx, txHash)
		return txByHash{tx, isPending}, err
	})
	return res.tx, res.isPending, err
}

func (er *EthReader) HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error) {
	return firstSuccess(er, func(n EthereumNode) (*types.Header, error) {
		return n.HeaderByNumber(ctx, number)
	})
}

func (er *EthReader) LogsByBlockHash(ctx context.Context, blockHash common.Hash, addresses []common.Address) ([]types.Log, error) {
	return firstSuccess(er, func(n EthereumNode) ([]types.Log, error) {
		return n.LogsByBlockHash(ctx, blockHash, addresses)
	})
}

// TxInfoFromHash classifies a tx as notfound, pending, done or reverted.
// Any node failure is reported as status error together with the error.
func (er *EthReader) TxInfoFromHash(ctx context.Context, txHash common.Hash) (gelatocommon.TxInfo, error) {
	txObj, isPending, err := er.TransactionByHash(ctx, txHash)
	if errors.Is(err, ethereum.NotFound) {
		return gelatocommon.TxInfo{Status: gelatocommon.TxStatusNotFound}, nil
	}
	if err != nil {
		return gelatocommon.TxInfo{Status: gelatocommon.TxStatusError}, err
	}
	if isPending {
		return gelatocommon.TxInfo{Status: gelatocommon.TxStatusPending, Tx: txObj}, nil
	}

	receipt, err := er.TransactionReceipt(ctx, txHash)
	if receipt == nil {
		return gelatocommon.TxInfo{Status: gelatocommon.TxStatusPending, Tx: txObj}, err
	}

	// pre-byzantium receipts carry a post state root instead of a status and
	// are considered done
	if len(receipt.PostState) == len(common.Hash{}) || receipt.Status == types.ReceiptStatusSuccessful {
		return gelatocommon.TxInfo{Status: gelatocommon.TxStatusDone, Tx: txObj, Receipt: receipt}, nil
	}
	return gelatocommon.TxInfo{Status: gelatocommon.TxStatusReverted, Tx: txObj, Receipt: receipt}, nil
}
