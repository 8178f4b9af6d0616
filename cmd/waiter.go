package cmd

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	gelatocommon "github.com/CryptYlliON/gelato-network/common"
	"github.com/CryptYlliON/gelato-network/ui"
	"github.com/CryptYlliON/gelato-network/util/monitor"
)

// spinningWaiter shows a spinner while the monitor waits for the receipt.
type spinningWaiter struct {
	monitor *monitor.TxMonitor
	ui      ui.UI
}

func (w *spinningWaiter) BlockingWait(ctx context.Context, txHash common.Hash) (gelatocommon.TxInfo, error) {
	stop := w.ui.Spinner("waiting for " + txHash.Hex() + " to be mined")
	defer stop()
	return w.monitor.BlockingWait(ctx, txHash)
}
