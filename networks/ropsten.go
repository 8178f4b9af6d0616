package networks

var Ropsten Network = NewGenericEtherscanNetwork(GenericEtherscanNetworkConfig{
	Name:               "ropsten",
	AlternativeNames:   []string{},
	ChainID:            3,
	NativeTokenSymbol:  "ETH",
	NativeTokenDecimal: 18,
	BlockTime:          15,
	NodeVariableName:   "ETHEREUM_ROPSTEN_NODE",
	DefaultNodes: map[string]string{
		"ropsten-infura": "https://ropsten.infura.io/v3/247128ae36b6444d944d4c3793c8e3f5",
	},
	BlockExplorerAPIKeyVariableName: "ETHERSCAN_API_KEY",
	BlockExplorerAPIURL:             "https://api-ropsten.etherscan.io",
})
