package cmd

import (
	"github.com/spf13/cobra"

	"github.com/CryptYlliON/gelato-network/tasks"
)

var eventsConfig tasks.EventsConfig

var eventsCmd = &cobra.Command{
	Use:   tasks.EventsTaskName,
	Short: "Prints the parsed logs of all events of a contract in a block",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ac, err := AppContextFrom(cmd)
		if err != nil {
			return err
		}
		env, err := ac.TaskEnv(true)
		if err != nil {
			return err
		}
		cfg := eventsConfig
		cfg.Log = true
		_, err = tasks.GetParsedLogsAllEvents(cmd.Context(), env, cfg)
		return err
	},
}

func init() {
	f := eventsCmd.Flags()
	f.StringVar(&eventsConfig.ContractName, "contractname", "", "Name of the contract, as listed for the network")
	f.StringVar(&eventsConfig.ContractAddress, "contractaddress", "", "Address of the contract, if not in bre-config")
	f.StringVar(&eventsConfig.BlockHash, "blockhash", "", "Hash of the block to read the logs of")
	f.StringVar(&eventsConfig.TxHash, "txhash", "", "Only show the logs of this tx")
	_ = eventsCmd.MarkFlagRequired("contractname")
	_ = eventsCmd.MarkFlagRequired("blockhash")
	rootCmd.AddCommand(eventsCmd)
}
