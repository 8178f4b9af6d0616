package tasks

import (
	"fmt"
	"sort"

	"github.com/ethereum/go-ethereum/common/hexutil"

	gelatocommon "github.com/CryptYlliON/gelato-network/common"
	"github.com/CryptYlliON/gelato-network/util/addrbook"
)

const DefaultPayloadTaskPrefix = "gc-mint:defaultpayload:"

// DefaultPayload builds the hard-coded actionPayloadWithSelector of one
// action contract.
type DefaultPayload struct {
	*Descriptor
	Action   string
	Function string
	// Inputs returns the function inputs, resolving book entries.
	Inputs func(book *addrbook.Book) ([]any, error)
}

var defaultPayloads = map[string]*DefaultPayload{}

func registerDefaultPayload(p *DefaultPayload) {
	if _, found := defaultPayloads[p.Action]; found {
		panic(fmt.Sprintf("default payload of %s registered twice", p.Action))
	}
	defaultPayloads[p.Action] = p
}

func init() {
	keys := []addrbook.Key{
		{Category: addrbook.CategoryEOA, Name: "luis"},
		{Category: addrbook.CategoryUserProxy, Name: "luis"},
		{Category: addrbook.CategoryERC20, Name: "DAI"},
		{Category: addrbook.CategoryERC20, Name: "dLETH2x"},
	}
	registerDefaultPayload(&DefaultPayload{
		Descriptor: &Descriptor{
			Name:        DefaultPayloadTaskPrefix + "ActionBzxPtokenMintWithToken",
			Description: "Returns a hardcoded actionPayloadWithSelector of ActionBzxPtokenMintWithToken",
			Contracts:   []string{"ActionBzxPtokenMintWithToken"},
			AddressKeys: keys,
		},
		Action:   "ActionBzxPtokenMintWithToken",
		Function: "action",
		Inputs: func(book *addrbook.Book) ([]any, error) {
			resolved := []any{}
			for _, k := range keys {
				addr, err := book.LookupKey(k)
				if err != nil {
					return nil, err
				}
				resolved = append(resolved, addr)
			}
			depositAmount, err := gelatocommon.ParseUnits("10", 18)
			if err != nil {
				return nil, err
			}
			// action(_user, _userProxy, _depositToken, _depositAmount, _pToken)
			return []any{resolved[0], resolved[1], resolved[2], depositAmount, resolved[3]}, nil
		},
	})
}

// DefaultPayloadActions lists the actions with a default payload.
func DefaultPayloadActions() []string {
	actions := make([]string, 0, len(defaultPayloads))
	for name := range defaultPayloads {
		actions = append(actions, name)
	}
	sort.Strings(actions)
	return actions
}

func GetDefaultPayload(action string) (*DefaultPayload, error) {
	p, found := defaultPayloads[action]
	if !found {
		return nil, fmt.Errorf("%w: %s%s", ErrTaskNotFound, DefaultPayloadTaskPrefix, action)
	}
	return p, nil
}

// DefaultPayloadWithSelector returns the encoded default payload of action.
func DefaultPayloadWithSelector(env *Env, action string, log bool) ([]byte, error) {
	p, err := GetDefaultPayload(action)
	if err != nil {
		return nil, err
	}
	inputs, err := p.Inputs(env.Deployment.AddressBook())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.Name, err)
	}
	return AbiEncodeWithSelector(env, AbiEncodeConfig{
		ContractName: p.Action,
		FunctionName: p.Function,
		Inputs:       inputs,
		Log:          log,
	})
}

func payloadHex(data []byte) string {
	return hexutil.Encode(data)
}
