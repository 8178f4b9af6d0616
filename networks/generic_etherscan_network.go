package networks

import (
	"encoding/json"
	"os"
	"strings"
	"time"
)

type GenericEtherscanNetworkConfig struct {
	Name                            string            `json:"name"`
	AlternativeNames                []string          `json:"alternative_names"`
	ChainID                         uint64            `json:"chain_id"`
	NativeTokenSymbol               string            `json:"native_token_symbol"`
	NativeTokenDecimal              uint64            `json:"native_token_decimal"`
	BlockTime                       uint64            `json:"block_time"`
	NodeVariableName                string            `json:"node_variable_name"`
	DefaultNodes                    map[string]string `json:"default_nodes"`
	BlockExplorerAPIKeyVariableName string            `json:"block_explorer_api_key_variable_name"`
	BlockExplorerAPIURL             string            `json:"block_explorer_api_url"`
}

// GenericEtherscanNetwork is a network whose explorer speaks the etherscan
// API. Built-in networks and custom networks loaded from json are both of
// this kind.
type GenericEtherscanNetwork struct {
	*EtherscanLikeExplorer
	config GenericEtherscanNetworkConfig
}

func NewGenericEtherscanNetwork(config GenericEtherscanNetworkConfig) *GenericEtherscanNetwork {
	result := &GenericEtherscanNetwork{
		EtherscanLikeExplorer: NewEtherscanLikeExplorer(config.BlockExplorerAPIURL, ""),
		config:                config,
	}
	if config.BlockExplorerAPIKeyVariableName != "" {
		result.EtherscanLikeExplorer.APIKey = strings.TrimSpace(os.Getenv(config.BlockExplorerAPIKeyVariableName))
	}
	return result
}

func (gn *GenericEtherscanNetwork) GetName() string {
	return gn.config.Name
}

func (gn *GenericEtherscanNetwork) GetChainID() uint64 {
	return gn.config.ChainID
}

func (gn *GenericEtherscanNetwork) GetAlternativeNames() []string {
	return gn.config.AlternativeNames
}

func (gn *GenericEtherscanNetwork) GetNativeTokenSymbol() string {
	return gn.config.NativeTokenSymbol
}

func (gn *GenericEtherscanNetwork) GetNativeTokenDecimal() uint64 {
	return gn.config.NativeTokenDecimal
}

func (gn *GenericEtherscanNetwork) GetBlockTime() time.Duration {
	return time.Duration(gn.config.BlockTime) * time.Second
}

func (gn *GenericEtherscanNetwork) GetNodeVariableName() string {
	return gn.config.NodeVariableName
}

func (gn *GenericEtherscanNetwork) GetDefaultNodes() map[string]string {
	return gn.config.DefaultNodes
}

func (gn *GenericEtherscanNetwork) GetBlockExplorerAPIKeyVariableName() string {
	return gn.config.BlockExplorerAPIKeyVariableName
}

func (gn *GenericEtherscanNetwork) GetBlockExplorerAPIURL() string {
	return gn.config.BlockExplorerAPIURL
}

// SetBlockExplorerAPIKey overrides the key read from the environment.
func (gn *GenericEtherscanNetwork) SetBlockExplorerAPIKey(key string) {
	gn.EtherscanLikeExplorer.APIKey = key
}

func (gn *GenericEtherscanNetwork) MarshalJSON() ([]byte, error) {
	return json.MarshalIndent(gn.config, "", "  ")
}
