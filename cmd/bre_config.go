package cmd

import (
	"github.com/spf13/cobra"

	"github.com/CryptYlliON/gelato-network/tasks"
)

var breConfig tasks.BreConfigConfig

var breConfigCmd = &cobra.Command{
	Use:   tasks.BreConfigTaskName,
	Short: "Shows the contracts, deployments or address book of [--network]",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ac, err := AppContextFrom(cmd)
		if err != nil {
			return err
		}
		env, err := ac.TaskEnv(false)
		if err != nil {
			return err
		}
		cfg := breConfig
		cfg.Log = true
		_, err = tasks.BreConfig(env, cfg)
		return err
	},
}

func init() {
	f := breConfigCmd.Flags()
	f.BoolVar(&breConfig.AddressBook, "addressbook", false, "Show the whole address book")
	f.StringVar(&breConfig.AddressBookCategory, "addressbookcategory", "", "Show one address book category")
	f.StringVar(&breConfig.AddressBookEntry, "addressbookentry", "", "Show one entry of --addressbookcategory")
	f.StringVar(&breConfig.ContractName, "contractname", "", "Show the deployed address of a contract")
	f.BoolVar(&breConfig.Contracts, "contracts", false, "Show the contracts of the network")
	f.BoolVar(&breConfig.Deployments, "deployments", false, "Show the known deployed addresses")
	rootCmd.AddCommand(breConfigCmd)
}
