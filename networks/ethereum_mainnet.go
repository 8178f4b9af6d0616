package networks

var EthereumMainnet Network = NewGenericEtherscanNetwork(GenericEtherscanNetworkConfig{
	Name:               "mainnet",
	AlternativeNames:   []string{"ethereum", "homestead"},
	ChainID:            1,
	NativeTokenSymbol:  "ETH",
	NativeTokenDecimal: 18,
	BlockTime:          14,
	NodeVariableName:   "ETHEREUM_MAINNET_NODE",
	DefaultNodes: map[string]string{
		"mainnet-infura": "https://mainnet.infura.io/v3/247128ae36b6444d944d4c3793c8e3f5",
	},
	BlockExplorerAPIKeyVariableName: "ETHERSCAN_API_KEY",
	BlockExplorerAPIURL:             "https://api.etherscan.io",
})
