package tasks

import (
	"errors"
	"sort"

	"github.com/samber/lo"
)

const BreConfigTaskName = "bre-config"

var BreConfigDescriptor = &Descriptor{
	Name:        BreConfigTaskName,
	Description: "Returns the contracts, deployments or address book entries of [--network]",
}

var ErrNothingSelected = errors.New("select contracts, deployments, a contract name or an address book category")

type BreConfigConfig struct {
	AddressBook         bool
	AddressBookCategory string
	AddressBookEntry    string
	ContractName        string
	Contracts           bool
	Deployments         bool
	Log                 bool
}

// BreConfig looks up one piece of the network configuration. The result
// is a []string, a map of addresses or a single address.
func BreConfig(env *Env, cfg BreConfigConfig) (any, error) {
	d := env.Deployment
	book := d.AddressBook()

	switch {
	case cfg.AddressBookCategory != "" && cfg.AddressBookEntry != "":
		addr, err := book.Lookup(cfg.AddressBookCategory, cfg.AddressBookEntry)
		if err != nil {
			return nil, err
		}
		if cfg.Log {
			env.UI.KeyValue([][2]string{{cfg.AddressBookCategory + "." + cfg.AddressBookEntry, addr.Hex()}})
		}
		return addr, nil

	case cfg.AddressBookCategory != "":
		entries, err := book.Category(cfg.AddressBookCategory)
		if err != nil {
			return nil, err
		}
		if cfg.Log {
			names := lo.Keys(entries)
			sort.Strings(names)
			rows := make([][2]string, 0, len(names))
			for _, name := range names {
				rows = append(rows, [2]string{name, entries[name].Hex()})
			}
			env.UI.Section(cfg.AddressBookCategory)
			env.UI.KeyValue(rows)
		}
		return entries, nil

	case cfg.AddressBook:
		if cfg.Log {
			rows := [][]string{}
			for _, k := range book.Keys() {
				addr, _ := book.LookupKey(k)
				rows = append(rows, []string{k.Category, k.Name, addr.Hex()})
			}
			env.UI.Table([]string{"Category", "Name", "Address"}, rows)
		}
		return book.Categories(), nil

	case cfg.ContractName != "":
		addr, err := d.ContractAddress(cfg.ContractName)
		if err != nil {
			return nil, err
		}
		if cfg.Log {
			env.UI.KeyValue([][2]string{{cfg.ContractName, addr.Hex()}})
		}
		return addr, nil

	case cfg.Contracts:
		contracts := d.Contracts()
		if cfg.Log {
			env.UI.Section(d.Network() + " contracts")
			for _, name := range contracts {
				env.UI.Info("%s", name)
			}
		}
		return contracts, nil

	case cfg.Deployments:
		deployed := d.Deployed()
		if cfg.Log {
			names := lo.Keys(deployed)
			sort.Strings(names)
			rows := make([][2]string, 0, len(names))
			for _, name := range names {
				rows = append(rows, [2]string{name, deployed[name].Hex()})
			}
			if len(rows) == 0 {
				env.UI.Warn("no deployed addresses known for %s", d.Network())
			}
			env.UI.KeyValue(rows)
		}
		return deployed, nil
	}
	return nil, ErrNothingSelected
}
