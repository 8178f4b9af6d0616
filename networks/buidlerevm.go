package networks

// BuidlerEVM is a local development node. It has no block explorer.
var BuidlerEVM Network = NewGenericEtherscanNetwork(GenericEtherscanNetworkConfig{
	Name:               "buidlerevm",
	AlternativeNames:   []string{"localhost", "local"},
	ChainID:            31337,
	NativeTokenSymbol:  "ETH",
	NativeTokenDecimal: 18,
	BlockTime:          1,
	NodeVariableName:   "BUIDLEREVM_NODE",
	DefaultNodes: map[string]string{
		"localhost": "http://127.0.0.1:8545",
	},
})
