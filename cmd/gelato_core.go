package cmd

import (
	"github.com/spf13/cobra"

	"github.com/CryptYlliON/gelato-network/config"
	"github.com/CryptYlliON/gelato-network/tasks"
)

var multiProvideConfig = tasks.DefaultMultiProvideConfig()

var multiProvideCmd = &cobra.Command{
	Use:   tasks.MultiProvideTaskName,
	Short: "Sends tx and --funds to GelatoCore.multiProvide() on [--network]",
	Long: `Sends GelatoCore.multiProvide(executor, taskSpecs, modules) from the provider
account, the signer at --providerindex, with --funds ETH as value. Prints the
tx hash; with --events also every GelatoCore event the tx emitted.

--taskspecs is a JSON array of task specs:
	[{"conditions": ["0x..."], "actions": [{"addr": "0x...", "operation": 1, "dataFlow": 0, "value": false, "termsOkCheck": true}], "gasPriceCeil": "50000000000"}]`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ac, err := AppContextFrom(cmd)
		if err != nil {
			return err
		}
		env, err := ac.TaskEnv(true)
		if err != nil {
			return err
		}
		req := txRequestFromFlags(cmd)
		hash, err := tasks.MultiProvide(cmd.Context(), env, multiProvideConfig, req)
		if err != nil {
			return err
		}
		if config.DontBroadcast {
			ac.UI.Info("dry run, tx %s was not broadcasted", hash.Hex())
			return nil
		}
		ac.UI.Success("%s", hash.Hex())
		return nil
	},
}

func init() {
	f := multiProvideCmd.Flags()
	f.StringVar(&multiProvideConfig.Funds, "funds", multiProvideConfig.Funds, "The amount of ETH funds to provide")
	f.StringVar(&multiProvideConfig.GelatoExecutor, "gelatoexecutor", multiProvideConfig.GelatoExecutor, "The provider's assigned gelatoExecutor")
	f.StringVar(&multiProvideConfig.TaskSpecs, "taskspecs", multiProvideConfig.TaskSpecs, "Already created TaskSpecs, as JSON")
	f.StringVar(&multiProvideConfig.Modules, "modules", multiProvideConfig.Modules, "Gelato Provider Modules, as a JSON array of addresses")
	f.IntVar(&multiProvideConfig.ProviderIndex, "providerindex", multiProvideConfig.ProviderIndex, "index of user account generated by mnemonic to fetch provider address")
	f.StringVar(&multiProvideConfig.GelatoCoreAddress, "gelatocoreaddress", "", "Provide this if not in bre-config")
	f.BoolVar(&multiProvideConfig.Events, "events", false, "Logs parsed Event Logs to stdout")
	f.BoolVar(&multiProvideConfig.Log, "log", false, "Logs return values to stdout")

	AddCommonFlagsToTransactionalCmds(multiProvideCmd)
	rootCmd.AddCommand(multiProvideCmd)
}
