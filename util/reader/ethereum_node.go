package reader

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	gelatocommon "github.com/CryptYlliON/gelato-network/common"
)

// EthereumNode is one JSON-RPC endpoint.
type EthereumNode interface {
	NodeName() string
	NodeURL() string
	ChainID(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, from common.Address, to *common.Address, gasPrice, value *big.Int, data []byte) (uint64, error)
	GetPendingNonce(ctx context.Context, address common.Address) (uint64, error)
	SuggestedGasPrice(ctx context.Context) (*big.Int, error)
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	TransactionByHash(ctx context.Context, txHash common.Hash) (tx *gelatocommon.Transaction, isPending bool, err error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
	LogsByBlockHash(ctx context.Context, blockHash common.Hash, addresses []common.Address) ([]types.Log, error)
}
