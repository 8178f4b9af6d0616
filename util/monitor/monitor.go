package monitor

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"

	gelatocommon "github.com/CryptYlliON/gelato-network/common"
)

const (
	DefaultInterval    = 5 * time.Second
	DefaultLostTimeout = 3 * time.Minute
)

// TxStatusReader is the part of the reader the monitor needs.
type TxStatusReader interface {
	TxInfoFromHash(ctx context.Context, txHash common.Hash) (gelatocommon.TxInfo, error)
}

// TxMonitor polls a tx until it is mined.
type TxMonitor struct {
	reader      TxStatusReader
	interval    time.Duration
	lostTimeout time.Duration
}

func NewGenericTxMonitor(r TxStatusReader) *TxMonitor {
	return NewTxMonitorWithInterval(r, DefaultInterval, DefaultLostTimeout)
}

func NewTxMonitorWithInterval(r TxStatusReader, interval, lostTimeout time.Duration) *TxMonitor {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if lostTimeout <= 0 {
		lostTimeout = DefaultLostTimeout
	}
	return &TxMonitor{reader: r, interval: interval, lostTimeout: lostTimeout}
}

func (tm *TxMonitor) periodicCheck(ctx context.Context, txHash common.Hash, info chan<- gelatocommon.TxInfo) {
	defer close(info)
	ticker := time.NewTicker(tm.interval)
	defer ticker.Stop()
	startTime := time.Now()
	isOnNode := false
	logger := logrus.WithField("tx", txHash.Hex())

	for {
		select {
		case <-ctx.Done():
			return
		case t := <-ticker.C:
			txinfo, err := tm.reader.TxInfoFromHash(ctx, txHash)
			switch txinfo.Status {
			case gelatocommon.TxStatusError:
				logger.WithError(err).Debug("couldn't get tx status")
			case gelatocommon.TxStatusNotFound:
				if t.Sub(startTime) > tm.lostTimeout && !isOnNode {
					info <- gelatocommon.TxInfo{Status: gelatocommon.TxStatusLost}
					return
				}
			case gelatocommon.TxStatusPending:
				isOnNode = true
			case gelatocommon.TxStatusDone, gelatocommon.TxStatusReverted:
				info <- txinfo
				return
			}
		}
	}
}

func (tm *TxMonitor) MakeWaitChannel(ctx context.Context, txHash common.Hash) <-chan gelatocommon.TxInfo {
	result := make(chan gelatocommon.TxInfo, 1)
	go tm.periodicCheck(ctx, txHash, result)
	return result
}

// BlockingWait waits until the tx is done, reverted or lost. It returns
// ctx.Err() when ctx ends first.
func (tm *TxMonitor) BlockingWait(ctx context.Context, txHash common.Hash) (gelatocommon.TxInfo, error) {
	info, ok := <-tm.MakeWaitChannel(ctx, txHash)
	if !ok {
		return gelatocommon.TxInfo{Status: gelatocommon.TxStatusError}, ctx.Err()
	}
	return info, nil
}
