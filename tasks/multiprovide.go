package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/k0kubun/pp/v3"

	gelatocommon "github.com/CryptYlliON/gelato-network/common"
	"github.com/CryptYlliON/gelato-network/tx"
	"github.com/CryptYlliON/gelato-network/util/account"
)

const (
	MultiProvideTaskName = "gc-multiprovide"
	GelatoCoreName       = "GelatoCore"

	DefaultProviderIndex = 2
)

var MultiProvideDescriptor = &Descriptor{
	Name:        MultiProvideTaskName,
	Description: "Sends tx and --funds to GelatoCore.multiProvide() on [--network]",
	Contracts:   []string{GelatoCoreName},
}

// Action mirrors the GelatoCore Action struct.
type Action struct {
	Addr         common.Address `json:"addr" abi:"addr"`
	Operation    uint8          `json:"operation" abi:"operation"`
	DataFlow     uint8          `json:"dataFlow" abi:"dataFlow"`
	Value        bool           `json:"value" abi:"value"`
	TermsOkCheck bool           `json:"termsOkCheck" abi:"termsOkCheck"`
}

// TaskSpec is the JSON form of a GelatoCore TaskSpec. gasPriceCeil may
// be a decimal or 0x prefixed number.
type TaskSpec struct {
	Conditions   []common.Address      `json:"conditions"`
	Actions      []Action              `json:"actions"`
	GasPriceCeil *math.HexOrDecimal256 `json:"gasPriceCeil"`
}

type abiTaskSpec struct {
	Conditions   []common.Address `abi:"conditions"`
	Actions      []Action         `abi:"actions"`
	GasPriceCeil *big.Int         `abi:"gasPriceCeil"`
}

func (ts TaskSpec) toABI() abiTaskSpec {
	ceil := big.NewInt(0)
	if ts.GasPriceCeil != nil {
		ceil = (*big.Int)(ts.GasPriceCeil)
	}
	conditions := ts.Conditions
	if conditions == nil {
		conditions = []common.Address{}
	}
	actions := ts.Actions
	if actions == nil {
		actions = []Action{}
	}
	return abiTaskSpec{Conditions: conditions, Actions: actions, GasPriceCeil: ceil}
}

func ParseTaskSpecs(data string) ([]TaskSpec, error) {
	specs := []TaskSpec{}
	if strings.TrimSpace(data) == "" {
		return specs, nil
	}
	if err := json.Unmarshal([]byte(data), &specs); err != nil {
		return nil, fmt.Errorf("taskspecs must be a JSON array of TaskSpec: %w", err)
	}
	return specs, nil
}

func ParseModules(data string) ([]common.Address, error) {
	raw := []string{}
	if strings.TrimSpace(data) != "" {
		if err := json.Unmarshal([]byte(data), &raw); err != nil {
			return nil, fmt.Errorf("modules must be a JSON array of addresses: %w", err)
		}
	}
	modules := make([]common.Address, 0, len(raw))
	for _, m := range raw {
		if !common.IsHexAddress(m) {
			return nil, fmt.Errorf("invalid module address %q", m)
		}
		modules = append(modules, common.HexToAddress(m))
	}
	return modules, nil
}

type MultiProvideConfig struct {
	Funds             string `json:"funds"`
	GelatoExecutor    string `json:"gelatoexecutor"`
	TaskSpecs         string `json:"taskspecs"`
	Modules           string `json:"modules"`
	ProviderIndex     int    `json:"providerindex"`
	GelatoCoreAddress string `json:"gelatocoreaddress"`
	Events            bool   `json:"events"`
	Log               bool   `json:"log"`
}

func DefaultMultiProvideConfig() MultiProvideConfig {
	return MultiProvideConfig{
		Funds:          "0",
		GelatoExecutor: common.Address{}.Hex(),
		TaskSpecs:      "[]",
		Modules:        "[]",
		ProviderIndex:  DefaultProviderIndex,
	}
}

func (c *MultiProvideConfig) Validate() error {
	if !common.IsHexAddress(c.GelatoExecutor) {
		return fmt.Errorf("gelatoexecutor %q is not an address", c.GelatoExecutor)
	}
	if c.ProviderIndex < 0 {
		return fmt.Errorf("providerindex must not be negative")
	}
	if c.GelatoCoreAddress != "" && !common.IsHexAddress(c.GelatoCoreAddress) {
		return fmt.Errorf("gelatocoreaddress %q is not an address", c.GelatoCoreAddress)
	}
	return nil
}

// MultiProvide sends GelatoCore.multiProvide(executor, taskSpecs, modules)
// with the funds as value from the provider account and returns the tx
// hash.
func MultiProvide(ctx context.Context, env *Env, cfg MultiProvideConfig, req tx.Request) (common.Hash, error) {
	if err := cfg.Validate(); err != nil {
		return common.Hash{}, err
	}
	funds, err := gelatocommon.ParseEther(cfg.Funds)
	if err != nil {
		return common.Hash{}, fmt.Errorf("invalid funds %q: %w", cfg.Funds, err)
	}
	specs, err := ParseTaskSpecs(cfg.TaskSpecs)
	if err != nil {
		return common.Hash{}, err
	}
	modules, err := ParseModules(cfg.Modules)
	if err != nil {
		return common.Hash{}, err
	}

	signers, err := env.Signers()
	if err != nil {
		return common.Hash{}, err
	}
	provider, err := account.SignerAt(signers, cfg.ProviderIndex)
	if err != nil {
		return common.Hash{}, fmt.Errorf("gelato provider: %w", err)
	}

	if cfg.Log {
		env.UI.Info("%s TaskArgs:", MultiProvideTaskName)
		pp.Fprintln(env.UI.Writer(), cfg)
	}

	gelatoCore, err := env.instantiate(GelatoCoreName, cfg.GelatoCoreAddress)
	if err != nil {
		return common.Hash{}, err
	}

	abiSpecs := make([]abiTaskSpec, 0, len(specs))
	for _, s := range specs {
		abiSpecs = append(abiSpecs, s.toABI())
	}
	req.From = provider
	req.Contract = gelatoCore
	req.Method = "multiProvide"
	req.Args = []any{common.HexToAddress(cfg.GelatoExecutor), abiSpecs, modules}
	req.Value = funds

	env.logger().WithField("provider", provider.AddressHex()).WithField("funds", cfg.Funds).Debug("sending multiProvide")
	result, err := env.Submitter.Submit(ctx, req)
	if err != nil {
		return common.Hash{}, err
	}
	if req.DryRun {
		env.UI.Critical("Signed tx: %s", result.RawTx)
		return result.Hash, nil
	}
	if cfg.Log {
		env.UI.Critical("txHash multiProvide: %s", result.Hash.Hex())
	}

	if cfg.Events && result.Receipt != nil {
		_, err := GetParsedLogsAllEvents(ctx, env, EventsConfig{
			ContractName:    GelatoCoreName,
			ContractAddress: gelatoCore.Address.Hex(),
			BlockHash:       result.BlockHash.Hex(),
			TxHash:          result.Hash.Hex(),
			Log:             true,
		})
		if err != nil {
			return result.Hash, err
		}
	}
	return result.Hash, nil
}
