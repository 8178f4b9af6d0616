package reader

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"

	gelatocommon "github.com/CryptYlliON/gelato-network/common"
)

const TIMEOUT time.Duration = 4 * time.Second

// OneNodeReader dials its node lazily on first use.
type OneNodeReader struct {
	nodeName  string
	nodeURL   string
	mu        sync.Mutex
	client    *rpc.Client
	ethClient *ethclient.Client
}

func NewOneNodeReader(name, url string) *OneNodeReader {
	return &OneNodeReader{
		nodeName: name,
		nodeURL:  url,
	}
}

func (onr *OneNodeReader) NodeName() string {
	return onr.nodeName
}

func (onr *OneNodeReader) NodeURL() string {
	return onr.nodeURL
}

func (onr *OneNodeReader) clients() (*rpc.Client, *ethclient.Client, error) {
	onr.mu.Lock()
	defer onr.mu.Unlock()
	if onr.client != nil {
		return onr.client, onr.ethClient, nil
	}
	client, err := rpc.Dial(onr.nodeURL)
	if err != nil {
		return nil, nil, fmt.Errorf("couldn't connect to %s: %w", onr.nodeName, err)
	}
	onr.client = client
	onr.ethClient = ethclient.NewClient(client)
	return onr.client, onr.ethClient, nil
}

func (onr *OneNodeReader) EthClient() (*ethclient.Client, error) {
	_, ethcli, err := onr.clients()
	return ethcli, err
}

func (onr *OneNodeReader) ChainID(ctx context.Context) (*big.Int, error) {
	ethcli, err := onr.EthClient()
	if err != nil {
		return nil, err
	}
	timeout, cancel := context.WithTimeout(ctx, TIMEOUT)
	defer cancel()
	return ethcli.ChainID(timeout)
}

func (onr *OneNodeReader) EstimateGas(ctx context.Context, from common.Address, to *common.Address, gasPrice, value *big.Int, data []byte) (uint64, error) {
	ethcli, err := onr.EthClient()
	if err != nil {
		return 0, err
	}
	timeout, cancel := context.WithTimeout(ctx, TIMEOUT)
	defer cancel()
	return ethcli.EstimateGas(timeout, ethereum.CallMsg{
		From:     from,
		To:       to,
		GasPrice: gasPrice,
		Value:    value,
		Data:     data,
	})
}

func (onr *OneNodeReader) GetPendingNonce(ctx context.Context, address common.Address) (uint64, error) {
	ethcli, err := onr.EthClient()
	if err != nil {
		return 0, err
	}
	timeout, cancel := context.WithTimeout(ctx, TIMEOUT)
	defer cancel()
	return ethcli.PendingNonceAt(timeout, address)
}

func (onr *OneNodeReader) SuggestedGasPrice(ctx context.Context) (*big.Int, error) {
	ethcli, err := onr.EthClient()
	if err != nil {
		return nil, err
	}
	timeout, cancel := context.WithTimeout(ctx, TIMEOUT)
	defer cancel()
	return ethcli.SuggestGasPrice(timeout)
}

func (onr *OneNodeReader) TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	ethcli, err := onr.EthClient()
	if err != nil {
		return nil, err
	}
	timeout, cancel := context.WithTimeout(ctx, TIMEOUT)
	defer cancel()
	return ethcli.TransactionReceipt(timeout, txHash)
}

// TransactionByHash calls eth_getTransactionByHash directly so the block
// fields the node returns are kept in Extra.
func (onr *OneNodeReader) TransactionByHash(ctx context.Context, txHash common.Hash) (*gelatocommon.Transaction, bool, error) {
	client, _, err := onr.clients()
	if err != nil {
		return nil, false, err
	}
	timeout, cancel := context.WithTimeout(ctx, TIMEOUT)
	defer cancel()

	var json *gelatocommon.Transaction
	if err := client.CallContext(timeout, &json, "eth_getTransactionByHash", txHash); err != nil {
		return nil, false, err
	}
	if json == nil {
		return nil, false, ethereum.NotFound
	}
	if _, r, _ := json.RawSignatureValues(); r == nil {
		return nil, false, fmt.Errorf("server returned transaction without signature")
	}
	return json, json.Extra.BlockNumber == nil, nil
}

func (onr *OneNodeReader) HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error) {
	ethcli, err := onr.EthClient()
	if err != nil {
		return nil, err
	}
	timeout, cancel := context.WithTimeout(ctx, TIMEOUT)
	defer cancel()
	return ethcli.HeaderByNumber(timeout, number)
}

func (onr *OneNodeReader) LogsByBlockHash(ctx context.Context, blockHash common.Hash, addresses []common.Address) ([]types.Log, error) {
	ethcli, err := onr.EthClient()
	if err != nil {
		return nil, err
	}
	timeout, cancel := context.WithTimeout(ctx, TIMEOUT)
	defer cancel()
	return ethcli.FilterLogs(timeout, ethereum.FilterQuery{
		BlockHash: &blockHash,
		Addresses: addresses,
	})
}
