package cmd

import (
	"github.com/spf13/cobra"
)

const (
	VERSION string = "0.1.0"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show gelato version",
	Long:  ``,
	RunE: func(cmd *cobra.Command, args []string) error {
		ac, err := AppContextFrom(cmd)
		if err != nil {
			return err
		}
		ac.UI.Info("Version: %s", VERSION)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
