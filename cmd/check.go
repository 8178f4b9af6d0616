package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/CryptYlliON/gelato-network/deployments"
	"github.com/CryptYlliON/gelato-network/tasks"
)

var checkAllNetworks bool

var checkCmd = &cobra.Command{
	Use:   tasks.CheckTaskName,
	Short: "Checks that the network tables hold what every task reads",
	Long: `Checks that every contract a task instantiates is listed for the network
and every address book entry a task reads exists. With --all every network
with a deployment table is checked.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ac, err := AppContextFrom(cmd)
		if err != nil {
			return err
		}
		names := []string{ac.Network.GetName()}
		if checkAllNetworks {
			names = deployments.Networks()
		}
		results := tasks.CheckAll(names, ac.Settings.DataDir)

		failed := 0
		for _, name := range names {
			if err := results[name]; err != nil {
				failed++
				ac.UI.Error("%s: %s", name, err)
				continue
			}
			ac.UI.Success("%s: ok", name)
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d networks failed the check", failed, len(names))
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().BoolVar(&checkAllNetworks, "all", false, "Check every network with a deployment table")
	rootCmd.AddCommand(checkCmd)
}
