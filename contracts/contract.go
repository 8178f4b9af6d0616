package contracts

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/CryptYlliON/gelato-network/deployments"
	"github.com/CryptYlliON/gelato-network/util/addrbook"
)

var ErrMethodNotFound = errors.New("method not found in abi")

// Contract is a handle on a named contract of the selected network.
type Contract struct {
	Name    string
	Address common.Address
	ABI     *abi.ABI

	book *addrbook.Book
}

func NewContract(name string, address common.Address, a *abi.ABI, book *addrbook.Book) *Contract {
	return &Contract{Name: name, Address: address, ABI: a, book: book}
}

// Instantiate builds the handle of a contract listed for d's network.
// explicitAddress, when not empty, takes precedence over the deployment
// table.
func Instantiate(d *deployments.Deployment, store *Store, name, explicitAddress string) (*Contract, error) {
	if !d.HasContract(name) {
		return nil, fmt.Errorf("%w: %s on %s", deployments.ErrContractNotListed, name, d.Network())
	}

	var address common.Address
	if explicitAddress != "" {
		if !common.IsHexAddress(explicitAddress) {
			return nil, fmt.Errorf("invalid address for %s: %q", name, explicitAddress)
		}
		address = common.HexToAddress(explicitAddress)
	} else {
		var err error
		address, err = d.ContractAddress(name)
		if err != nil {
			return nil, err
		}
	}

	a, err := store.ABI(name, address)
	if err != nil {
		return nil, err
	}
	return NewContract(name, address, a, d.AddressBook()), nil
}

func (c *Contract) Method(name string) (abi.Method, error) {
	m, found := c.ABI.Methods[name]
	if !found {
		return abi.Method{}, fmt.Errorf("%w: %s.%s", ErrMethodNotFound, c.Name, name)
	}
	return m, nil
}

// Pack encodes a call with args already in their abi Go types.
func (c *Contract) Pack(method string, args ...any) ([]byte, error) {
	if _, err := c.Method(method); err != nil {
		return nil, err
	}
	data, err := c.ABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("encoding %s.%s: %w", c.Name, method, err)
	}
	return data, nil
}

// EncodeWithSelector converts loosely typed inputs to the method's
// argument types and returns selector ++ abi.encode(inputs).
func (c *Contract) EncodeWithSelector(method string, inputs []any) ([]byte, error) {
	m, err := c.Method(method)
	if err != nil {
		return nil, err
	}
	args, err := NewArgConverter(c.book).ConvertArgs(m.Inputs, inputs)
	if err != nil {
		return nil, fmt.Errorf("%s.%s: %w", c.Name, method, err)
	}
	return c.Pack(method, args...)
}
