package networks

var Rinkeby Network = NewGenericEtherscanNetwork(GenericEtherscanNetworkConfig{
	Name:               "rinkeby",
	AlternativeNames:   []string{},
	ChainID:            4,
	NativeTokenSymbol:  "ETH",
	NativeTokenDecimal: 18,
	BlockTime:          15,
	NodeVariableName:   "ETHEREUM_RINKEBY_NODE",
	DefaultNodes: map[string]string{
		"rinkeby-infura": "https://rinkeby.infura.io/v3/247128ae36b6444d944d4c3793c8e3f5",
	},
	BlockExplorerAPIKeyVariableName: "ETHERSCAN_API_KEY",
	BlockExplorerAPIURL:             "https://api-rinkeby.etherscan.io",
})
