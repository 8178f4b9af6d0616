package cmd

import (
	"github.com/spf13/cobra"

	gelatocommon "github.com/CryptYlliON/gelato-network/common"
	"github.com/CryptYlliON/gelato-network/config"
	"github.com/CryptYlliON/gelato-network/tx"
)

func AddCommonFlagsToTransactionalCmds(c *cobra.Command) {
	c.PersistentFlags().
		Float64VarP(&config.GasPrice, "gasprice", "p", 0, "Gas price in gwei. If default value is used, we will use the node's suggestion. The gas price to be used in the tx is gas price + extra gas price")
	c.PersistentFlags().
		Float64VarP(&config.ExtraGasPrice, "extraprice", "P", 0, "Extra gas price in gwei. The gas price to be used in the tx is gas price + extra gas price")
	c.PersistentFlags().
		Uint64VarP(&config.GasLimit, "gas", "g", 0, "Base gas limit for the tx. If default value is used, we will use ethereum nodes to estimate the gas limit. The gas limit to be used in the tx is gas limit + extra gas limit")
	c.PersistentFlags().
		Uint64VarP(&config.ExtraGasLimit, "extragas", "G", 250000, "Extra gas limit for the tx. The gas limit to be used in the tx is gas limit + extra gas limit")
	c.PersistentFlags().
		Uint64VarP(&config.Nonce, "nonce", "n", 0, "Nonce of the from account. If not set, we will use the next available nonce of from account")
	c.PersistentFlags().
		BoolVarP(&config.DontBroadcast, "dry", "d", false, "Will not broadcast the tx, only show signed tx.")
	c.PersistentFlags().
		BoolVarP(&config.DontWaitToBeMined, "no-wait", "F", false, "Will not wait the tx to be mined.")
}

// txRequestFromFlags turns the transactional flags into the gas and
// broadcast settings of a request.
func txRequestFromFlags(c *cobra.Command) tx.Request {
	req := tx.Request{
		GasLimit:      config.GasLimit,
		ExtraGasLimit: config.ExtraGasLimit,
		DryRun:        config.DontBroadcast,
		NoWait:        config.DontWaitToBeMined,
	}
	if config.GasPrice > 0 {
		req.GasPrice = gelatocommon.GweiToWei(config.GasPrice)
	}
	if config.ExtraGasPrice > 0 {
		req.ExtraGasPrice = gelatocommon.GweiToWei(config.ExtraGasPrice)
	}
	if c.Flags().Changed("nonce") {
		nonce := config.Nonce
		req.Nonce = &nonce
	}
	return req
}
