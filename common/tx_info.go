package common

import (
	"encoding/json"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

const (
	TxStatusError    = "error"
	TxStatusNotFound = "notfound"
	TxStatusPending  = "pending"
	TxStatusDone     = "done"
	TxStatusReverted = "reverted"
	TxStatusLost     = "lost"
)

type TxInfo struct {
	Status      string
	Tx          *Transaction
	Receipt     *types.Receipt
	BlockHeader *types.Header
}

func (ti *TxInfo) GasCost() *big.Int {
	if ti.Receipt == nil || ti.Tx == nil {
		return big.NewInt(0)
	}
	return big.NewInt(0).Mul(
		big.NewInt(int64(ti.Receipt.GasUsed)),
		ti.Tx.GasPrice(),
	)
}

// Transaction is a node-returned tx together with the fields
// eth_getTransactionByHash adds on top of the signed payload.
type Transaction struct {
	*types.Transaction
	Extra TxExtraInfo `json:"extra"`
}

type TxExtraInfo struct {
	BlockNumber *string         `json:"blockNumber,omitempty"`
	BlockHash   *common.Hash    `json:"blockHash,omitempty"`
	From        *common.Address `json:"from,omitempty"`
}

func (tx *Transaction) UnmarshalJSON(msg []byte) error {
	if err := json.Unmarshal(msg, &tx.Transaction); err != nil {
		return err
	}
	return json.Unmarshal(msg, &tx.Extra)
}
