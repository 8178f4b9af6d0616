package contracts

import (
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	gelatocommon "github.com/CryptYlliON/gelato-network/common"
	"github.com/CryptYlliON/gelato-network/util/addrbook"
)

type LogArg struct {
	Name    string
	Type    abi.Type
	Indexed bool
	Value   any
}

// ParsedLog is a log of the contract decoded against its ABI.
type ParsedLog struct {
	Event     string
	Address   common.Address
	TxHash    common.Hash
	BlockHash common.Hash
	Index     uint
	Args      []LogArg
}

// Arg returns the value of the named argument.
func (pl ParsedLog) Arg(name string) (any, bool) {
	for _, a := range pl.Args {
		if a.Name == name {
			return a.Value, true
		}
	}
	return nil, false
}

// Result renders the log for display, naming addresses through resolver.
func (pl ParsedLog) Result(resolver addrbook.AddressResolver) gelatocommon.LogResult {
	result := gelatocommon.LogResult{
		Name:     pl.Event,
		Contract: resolver.Resolve(pl.Address.Hex()),
		Index:    pl.Index,
	}
	for _, a := range pl.Args {
		arg := gelatocommon.LogArg{
			Name:    a.Name,
			Type:    a.Type.String(),
			Indexed: a.Indexed,
			Value:   FormatValue(a.Type, a.Value),
		}
		if addr, ok := a.Value.(common.Address); ok {
			resolved := resolver.Resolve(addr.Hex())
			arg.Address = &resolved
		}
		result.Args = append(result.Args, arg)
	}
	return result
}

func (c *Contract) findEvent(topic common.Hash) (*abi.Event, bool) {
	for _, event := range c.ABI.Events {
		if event.ID == topic {
			e := event
			return &e, true
		}
	}
	return nil, false
}

// ParseLogs decodes the logs emitted by the contract. Logs of other
// addresses, anonymous logs and logs matching no event are skipped.
func (c *Contract) ParseLogs(logs []*types.Log) ([]ParsedLog, error) {
	result := []ParsedLog{}
	for _, l := range logs {
		if l.Address != c.Address || len(l.Topics) == 0 {
			continue
		}
		event, found := c.findEvent(l.Topics[0])
		if !found {
			continue
		}
		parsed, err := decodeLog(event, l)
		if err != nil {
			return nil, fmt.Errorf("decoding %s log %d: %w", event.Name, l.Index, err)
		}
		result = append(result, parsed)
	}
	return result, nil
}

func decodeLog(event *abi.Event, l *types.Log) (ParsedLog, error) {
	parsed := ParsedLog{
		Event:     event.Name,
		Address:   l.Address,
		TxHash:    l.TxHash,
		BlockHash: l.BlockHash,
		Index:     l.Index,
	}

	values, err := event.Inputs.NonIndexed().UnpackValues(l.Data)
	if err != nil {
		return parsed, err
	}

	topics := l.Topics[1:]
	topicIndex, valueIndex := 0, 0
	for i, input := range event.Inputs {
		name := input.Name
		if name == "" {
			name = fmt.Sprintf("arg%d", i)
		}
		arg := LogArg{Name: name, Type: input.Type, Indexed: input.Indexed}
		if input.Indexed {
			if topicIndex >= len(topics) {
				return parsed, fmt.Errorf("missing topic for %s", name)
			}
			arg.Value, err = topicValue(input, topics[topicIndex])
			if err != nil {
				return parsed, err
			}
			topicIndex++
		} else {
			arg.Value = values[valueIndex]
			valueIndex++
		}
		parsed.Args = append(parsed.Args, arg)
	}
	return parsed, nil
}

// topicValue decodes a static indexed argument. Dynamic ones only keep
// their hash in the topic, so the hash is returned.
func topicValue(input abi.Argument, topic common.Hash) (any, error) {
	switch input.Type.T {
	case abi.TupleTy, abi.StringTy, abi.BytesTy, abi.SliceTy, abi.ArrayTy:
		return topic, nil
	}
	out := map[string]any{}
	field := abi.Argument{Name: "v", Type: input.Type, Indexed: true}
	if err := abi.ParseTopicsIntoMap(out, abi.Arguments{field}, []common.Hash{topic}); err != nil {
		return nil, err
	}
	return out["v"], nil
}
