package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/CryptYlliON/gelato-network/deployments"
	"github.com/CryptYlliON/gelato-network/networks"
)

var (
	NetworkFile  string
	NetworkForce bool
)

var addNetworkCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new network to the supported networks list locally",
	Long: `--file takes a network config json filepath OR a json string. The json should be in the following format:
	{
		"name": "network_name",
		"alternative_names": ["alternative_name_1"],
		"chain_id": 1,
		"native_token_symbol": "ETH",
		"native_token_decimal": 18,
		"block_time": 15,
		"node_variable_name": "GELATO_NODE_NETWORK_NAME",
		"default_nodes": {
			"node_name_1": "node_url_1"
		},
		"block_explorer_api_key_variable_name": "GELATO_ETHERSCAN_API_KEY",
		"block_explorer_api_url": "https://api.etherscan.io/api"
	}`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ac, err := AppContextFrom(cmd)
		if err != nil {
			return err
		}
		content := []byte(strings.TrimSpace(NetworkFile))
		if len(content) == 0 {
			return fmt.Errorf("--file is required")
		}
		if content[0] != '{' {
			content, err = os.ReadFile(NetworkFile)
			if err != nil {
				return fmt.Errorf("couldn't read the network config file: %w", err)
			}
		}
		newNetwork, err := networks.NewNetworkFromJSON(content)
		if err != nil {
			return err
		}

		names := append([]string{newNetwork.GetName()}, newNetwork.GetAlternativeNames()...)
		for _, name := range names {
			if _, err := networks.GetNetwork(name); err == nil {
				if !NetworkForce {
					return fmt.Errorf("network with name %s already exists, use --force to replace it", name)
				}
				ac.UI.Warn("Network with name %s already exists. It will be replaced.", name)
			}
		}
		if err := networks.AddNetwork(newNetwork, ac.Settings.DataDir); err != nil {
			return err
		}
		ac.UI.Success("Network %s with chain ID %d added and saved to %s/networks/.",
			newNetwork.GetName(), newNetwork.GetChainID(), ac.Settings.DataDir)
		return nil
	},
}

var listNetworkCmd = &cobra.Command{
	Use:   "list",
	Short: "Show all of supported networks",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ac, err := AppContextFrom(cmd)
		if err != nil {
			return err
		}
		deployed := map[string]bool{}
		for _, name := range deployments.Networks() {
			deployed[name] = true
		}

		rows := [][]string{}
		for _, n := range networks.GetSupportedNetworks() {
			nodes := networks.GetNodes(n, ac.Settings.NodesFor(n.GetName()))
			names := make([]string, 0, len(nodes))
			for name := range nodes {
				names = append(names, name)
			}
			sort.Strings(names)
			gelato := "no"
			if deployed[n.GetName()] {
				gelato = "yes"
			}
			rows = append(rows, []string{
				n.GetName(),
				fmt.Sprintf("%d", n.GetChainID()),
				gelato,
				strings.Join(names, ", "),
			})
		}
		ac.UI.Table([]string{"Name", "Chain ID", "Deployments", "RPC nodes"}, rows)
		ac.UI.Info("To add more networks: gelato network add --file <json>")
		return nil
	},
}

var networkCmd = &cobra.Command{
	Use:   "network",
	Short: "Manage all networks that gelato supports",
	Long:  ``,
}

func init() {
	addNetworkCmd.Flags().StringVarP(&NetworkFile, "file", "f", "", "Path to the network config json file, or the json itself")
	addNetworkCmd.Flags().BoolVar(&NetworkForce, "force", false, "Replace the network if it already exists")

	networkCmd.AddCommand(listNetworkCmd)
	networkCmd.AddCommand(addNetworkCmd)
	rootCmd.AddCommand(networkCmd)
}
