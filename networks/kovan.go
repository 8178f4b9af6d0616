package networks

var Kovan Network = NewGenericEtherscanNetwork(GenericEtherscanNetworkConfig{
	Name:               "kovan",
	AlternativeNames:   []string{},
	ChainID:            42,
	NativeTokenSymbol:  "ETH",
	NativeTokenDecimal: 18,
	BlockTime:          4,
	NodeVariableName:   "ETHEREUM_KOVAN_NODE",
	DefaultNodes: map[string]string{
		"kovan-infura": "https://kovan.infura.io/v3/247128ae36b6444d944d4c3793c8e3f5",
	},
	BlockExplorerAPIKeyVariableName: "ETHERSCAN_API_KEY",
	BlockExplorerAPIURL:             "https://api-kovan.etherscan.io",
})
