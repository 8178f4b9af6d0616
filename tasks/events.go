package tasks

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"

	gelatocommon "github.com/CryptYlliON/gelato-network/common"
	"github.com/CryptYlliON/gelato-network/contracts"
)

const EventsTaskName = "event-getparsedlogsallevents"

var EventsDescriptor = &Descriptor{
	Name:        EventsTaskName,
	Description: "Returns the parsed logs of all events of a contract in a block, optionally of one tx only",
}

var (
	ErrNoChainAccess = errors.New("task needs a connection to the network")
	ErrInvalidHash   = errors.New("invalid hash, expected 0x followed by 64 hex digits")
)

func parseHash(kind, s string) (common.Hash, error) {
	b, err := hexutil.Decode(s)
	if err != nil {
		return common.Hash{}, fmt.Errorf("%s %q: %w: %s", kind, s, ErrInvalidHash, err)
	}
	if len(b) != common.HashLength {
		return common.Hash{}, fmt.Errorf("%s %q is %d bytes: %w", kind, s, len(b), ErrInvalidHash)
	}
	return common.BytesToHash(b), nil
}

type EventsConfig struct {
	ContractName    string
	ContractAddress string
	BlockHash       string
	TxHash          string
	Log             bool
}

func GetParsedLogsAllEvents(ctx context.Context, env *Env, cfg EventsConfig) ([]contracts.ParsedLog, error) {
	if env.Logs == nil {
		return nil, ErrNoChainAccess
	}
	blockHash, err := parseHash("block hash", cfg.BlockHash)
	if err != nil {
		return nil, err
	}
	var txHash *common.Hash
	if cfg.TxHash != "" {
		h, err := parseHash("tx hash", cfg.TxHash)
		if err != nil {
			return nil, err
		}
		txHash = &h
	}
	contract, err := env.instantiate(cfg.ContractName, cfg.ContractAddress)
	if err != nil {
		return nil, err
	}

	logs, err := env.Logs.LogsByBlockHash(ctx, blockHash, []common.Address{contract.Address})
	if err != nil {
		return nil, fmt.Errorf("getting logs of block %s: %w", cfg.BlockHash, err)
	}
	selected := []*types.Log{}
	for i := range logs {
		if txHash != nil && logs[i].TxHash != *txHash {
			continue
		}
		selected = append(selected, &logs[i])
	}

	parsed, err := contract.ParseLogs(selected)
	if err != nil {
		return nil, err
	}
	if cfg.Log {
		printLogs(env, contract.Name, parsed)
	}
	return parsed, nil
}

func printLogs(env *Env, contractName string, parsed []contracts.ParsedLog) {
	if len(parsed) == 0 {
		env.UI.Warn("no %s event logs found", contractName)
		return
	}
	resolver := env.Deployment.AddressBook()
	groups := [][][]string{}
	for _, pl := range parsed {
		r := pl.Result(resolver)
		group := [][]string{{fmt.Sprintf("#%d %s", r.Index, r.Name), "", ""}}
		for _, arg := range r.Args {
			group = append(group, []string{"", fmt.Sprintf("%s (%s)", arg.Name, arg.Type), argValue(arg)})
		}
		groups = append(groups, group)
	}
	env.UI.Section(fmt.Sprintf("%s events", contractName))
	env.UI.TableWithGroups([]string{"Event", "Argument", "Value"}, groups)
}

func argValue(arg gelatocommon.LogArg) string {
	if arg.Address != nil {
		return fmt.Sprintf("%s (%s)", arg.Value, arg.Address.Desc)
	}
	return arg.Value
}
