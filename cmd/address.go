package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var addressCmd = &cobra.Command{
	Use:   "addr",
	Short: "Address book of the selected network",
	Long:  ``,
}

var findAddressCmd = &cobra.Command{
	Use:   "find <hint>",
	Short: "Find at max 10 matching address book entries",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ac, err := AppContextFrom(cmd)
		if err != nil {
			return err
		}
		d, err := ac.Deployment()
		if err != nil {
			return err
		}
		matches := d.AddressBook().Search(strings.Join(args, " "))
		if len(matches) == 0 {
			ac.UI.Warn("no address book entry matches %q", strings.Join(args, " "))
			return nil
		}
		if len(matches) > 10 {
			matches = matches[:10]
		}
		rows := [][]string{}
		for _, m := range matches {
			rows = append(rows, []string{fmt.Sprintf("%d", m.Score), m.Key.String(), m.Address.Hex()})
		}
		ac.UI.Table([]string{"Score", "Entry", "Address"}, rows)
		return nil
	},
}

func init() {
	addressCmd.AddCommand(findAddressCmd)
	rootCmd.AddCommand(addressCmd)
}
