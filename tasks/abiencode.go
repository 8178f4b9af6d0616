package tasks

import (
	"github.com/ethereum/go-ethereum/common"
)

const AbiEncodeTaskName = "abi-encode-withselector"

var AbiEncodeDescriptor = &Descriptor{
	Name:        AbiEncodeTaskName,
	Description: "Returns the abi encoded calldata, selector included, of a contract function call",
}

type AbiEncodeConfig struct {
	ContractName    string
	ContractAddress string
	FunctionName    string
	Inputs          []any
	Log             bool
}

// AbiEncodeWithSelector needs no deployed address: the contract only has
// to be listed for the network.
func AbiEncodeWithSelector(env *Env, cfg AbiEncodeConfig) ([]byte, error) {
	address := cfg.ContractAddress
	if address == "" {
		if deployed, err := env.Deployment.ContractAddress(cfg.ContractName); err == nil {
			address = deployed.Hex()
		} else {
			address = common.Address{}.Hex()
		}
	}
	contract, err := env.instantiate(cfg.ContractName, address)
	if err != nil {
		return nil, err
	}
	data, err := contract.EncodeWithSelector(cfg.FunctionName, cfg.Inputs)
	if err != nil {
		return nil, err
	}
	if cfg.Log {
		env.UI.Info("%s.%s payload with selector:", cfg.ContractName, cfg.FunctionName)
		env.UI.Critical("%s", payloadHex(data))
	}
	return data, nil
}
