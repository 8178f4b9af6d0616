package tx

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/sirupsen/logrus"

	gelatocommon "github.com/CryptYlliON/gelato-network/common"
	"github.com/CryptYlliON/gelato-network/contracts"
)

var (
	ErrTxReverted      = errors.New("tx reverted")
	ErrTxLost          = errors.New("tx lost, it never showed up on the nodes")
	ErrNotBroadcasted  = errors.New("no node accepted the tx")
	ErrMissingSigner   = errors.New("tx has no signer")
	ErrMissingContract = errors.New("tx has no target contract")
)

type ChainReader interface {
	ChainID(ctx context.Context) (*big.Int, error)
	GetPendingNonce(ctx context.Context, address common.Address) (uint64, error)
	GetGasPriceWeiSuggestion(ctx context.Context) (*big.Int, error)
	EstimateExactGas(ctx context.Context, from common.Address, to *common.Address, gasPrice, value *big.Int, data []byte) (uint64, error)
}

type Broadcaster interface {
	BroadcastTx(ctx context.Context, tx *types.Transaction) (string, bool, error)
}

type Waiter interface {
	BlockingWait(ctx context.Context, txHash common.Hash) (gelatocommon.TxInfo, error)
}

type Signer interface {
	Address() common.Address
	SignTx(tx *types.Transaction, chainID *big.Int) (*types.Transaction, error)
}

// Request describes one contract call to send. Zero values of the gas
// fields and a nil Nonce mean "ask the node".
type Request struct {
	From     Signer
	Contract *contracts.Contract
	Method   string
	Args     []any
	Value    *big.Int

	GasPrice      *big.Int
	ExtraGasPrice *big.Int
	GasLimit      uint64
	ExtraGasLimit uint64
	Nonce         *uint64

	DryRun bool
	NoWait bool
}

type Result struct {
	Hash        common.Hash
	Tx          *types.Transaction
	RawTx       string
	Broadcasted bool
	Status      string
	Receipt     *types.Receipt
	BlockHash   common.Hash
}

// Submitter sends contract calls and waits for them to be mined. It never
// retries; every failure is returned to the caller.
type Submitter struct {
	reader      ChainReader
	broadcaster Broadcaster
	waiter      Waiter
	timeout     time.Duration
}

func NewSubmitter(r ChainReader, b Broadcaster, w Waiter, timeout time.Duration) *Submitter {
	return &Submitter{reader: r, broadcaster: b, waiter: w, timeout: timeout}
}

func (s *Submitter) Submit(ctx context.Context, req Request) (*Result, error) {
	if req.From == nil {
		return nil, ErrMissingSigner
	}
	if req.Contract == nil {
		return nil, ErrMissingContract
	}
	logger := logrus.WithFields(logrus.Fields{
		"contract": req.Contract.Name,
		"method":   req.Method,
		"from":     req.From.Address().Hex(),
	})

	data, err := req.Contract.Pack(req.Method, req.Args...)
	if err != nil {
		return nil, err
	}

	tx, err := s.build(ctx, req, data)
	if err != nil {
		return nil, err
	}

	chainID, err := s.reader.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("couldn't get chain id: %w", err)
	}
	signed, err := req.From.SignTx(tx, chainID)
	if err != nil {
		return nil, err
	}
	raw, err := signed.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("couldn't encode the signed tx: %w", err)
	}
	result := &Result{
		Hash:  signed.Hash(),
		Tx:    signed,
		RawTx: hexutil.Encode(raw),
	}
	logger = logger.WithField("tx", result.Hash.Hex())

	if req.DryRun {
		logger.Info("dry run, tx signed but not broadcasted")
		return result, nil
	}

	_, broadcasted, err := s.broadcaster.BroadcastTx(ctx, signed)
	result.Broadcasted = broadcasted
	if !broadcasted {
		if err == nil {
			err = ErrNotBroadcasted
		}
		return result, fmt.Errorf("broadcasting %s: %w", result.Hash.Hex(), err)
	}
	logger.Info("tx broadcasted")

	if req.NoWait {
		result.Status = gelatocommon.TxStatusPending
		return result, nil
	}
	return result, s.wait(ctx, result, logger)
}

func (s *Submitter) build(ctx context.Context, req Request, data []byte) (*types.Transaction, error) {
	from := req.From.Address()
	to := req.Contract.Address
	value := req.Value
	if value == nil {
		value = big.NewInt(0)
	}

	var nonce uint64
	if req.Nonce != nil {
		nonce = *req.Nonce
	} else {
		var err error
		nonce, err = s.reader.GetPendingNonce(ctx, from)
		if err != nil {
			return nil, fmt.Errorf("couldn't get nonce of %s: %w", from.Hex(), err)
		}
	}

	gasPrice := req.GasPrice
	if gasPrice == nil || gasPrice.Sign() == 0 {
		var err error
		gasPrice, err = s.reader.GetGasPriceWeiSuggestion(ctx)
		if err != nil {
			return nil, fmt.Errorf("couldn't get gas price: %w", err)
		}
	}
	if req.ExtraGasPrice != nil {
		gasPrice = new(big.Int).Add(gasPrice, req.ExtraGasPrice)
	}

	gasLimit := req.GasLimit
	if gasLimit == 0 {
		var err error
		gasLimit, err = s.reader.EstimateExactGas(ctx, from, &to, gasPrice, value, data)
		if err != nil {
			return nil, fmt.Errorf("couldn't estimate gas limit: %w", err)
		}
	}

	return gelatocommon.BuildExactTx(nonce, to, value, gasLimit+req.ExtraGasLimit, gasPrice, data), nil
}

func (s *Submitter) wait(ctx context.Context, result *Result, logger *logrus.Entry) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	info, err := s.waiter.BlockingWait(ctx, result.Hash)
	result.Status = info.Status
	if err != nil {
		return fmt.Errorf("waiting for %s: %w", result.Hash.Hex(), err)
	}
	result.Receipt = info.Receipt
	if info.Receipt != nil {
		result.BlockHash = info.Receipt.BlockHash
	}

	switch info.Status {
	case gelatocommon.TxStatusDone:
		logger.WithField("block", result.BlockHash.Hex()).Info("tx mined")
		return nil
	case gelatocommon.TxStatusReverted:
		return fmt.Errorf("%s: %w", result.Hash.Hex(), ErrTxReverted)
	case gelatocommon.TxStatusLost:
		return fmt.Errorf("%s: %w", result.Hash.Hex(), ErrTxLost)
	}
	return fmt.Errorf("%s ended with unexpected status %q", result.Hash.Hex(), info.Status)
}
