// Package deployments holds the per-network deployment tables: which Gelato
// contracts exist on a network, where they are deployed and the network's
// address book.
//
// Built-in tables are embedded YAML documents under data/. A document of the
// same shape at <data_dir>/deployments/<network>.yaml is merged on top: its
// contract names are appended, its deployed addresses and address book
// entries override the built-in ones.
package deployments

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/hashicorp/go-multierror"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/CryptYlliON/gelato-network/util/addrbook"
)

//go:embed data/*.yaml
var builtin embed.FS

var (
	ErrNetworkNotConfigured = errors.New("network has no deployment table")
	ErrContractNotListed    = errors.New("contract is not listed for network")
	ErrContractNotDeployed  = errors.New("contract has no known deployment address")
	ErrNetworkMismatch      = errors.New("deployment table is for another network")
)

// Table is the YAML shape of one network's deployment data.
type Table struct {
	Network     string                       `yaml:"network"`
	Contracts   []string                     `yaml:"contracts"`
	Deployments map[string]string            `yaml:"deployments"`
	AddressBook map[string]map[string]string `yaml:"addressBook"`
}

func ParseTable(data []byte) (*Table, error) {
	t := &Table{}
	if err := yaml.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("couldn't parse deployment table: %w", err)
	}
	if t.Deployments == nil {
		t.Deployments = map[string]string{}
	}
	if t.AddressBook == nil {
		t.AddressBook = map[string]map[string]string{}
	}
	return t, nil
}

// merge applies overlay on top of t.
func (t *Table) merge(overlay *Table) {
	t.Contracts = append(t.Contracts, overlay.Contracts...)
	for name, addr := range overlay.Deployments {
		t.Deployments[name] = addr
	}
	for category, entries := range overlay.AddressBook {
		if t.AddressBook[category] == nil {
			t.AddressBook[category] = map[string]string{}
		}
		for name, addr := range entries {
			t.AddressBook[category][name] = addr
		}
	}
}

// Validate reports every violation of the table invariants at once.
func (t *Table) Validate() error {
	var result *multierror.Error
	if t.Network == "" {
		result = multierror.Append(result, fmt.Errorf("network name is empty"))
	}
	for _, dup := range lo.FindDuplicates(t.Contracts) {
		result = multierror.Append(result, fmt.Errorf("%s: contract %s is listed more than once", t.Network, dup))
	}
	for _, name := range t.Contracts {
		if strings.TrimSpace(name) == "" {
			result = multierror.Append(result, fmt.Errorf("%s: empty contract name", t.Network))
		}
	}
	for _, name := range sortedKeys(t.Deployments) {
		if !lo.Contains(t.Contracts, name) {
			result = multierror.Append(result, fmt.Errorf("%s: deployment %s: %w", t.Network, name, ErrContractNotListed))
		}
		if !common.IsHexAddress(t.Deployments[name]) {
			result = multierror.Append(result, fmt.Errorf("%s: deployment %s: %q is not an address", t.Network, name, t.Deployments[name]))
		}
	}
	return result.ErrorOrNil()
}

// Deployment is the validated, read-only view of a network's table.
type Deployment struct {
	network   string
	contracts []string
	addresses map[string]common.Address
	book      *addrbook.Book
}

func newDeployment(t *Table) (*Deployment, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	book, err := addrbook.NewBook(t.Network, t.AddressBook)
	if err != nil {
		return nil, err
	}
	addresses := make(map[string]common.Address, len(t.Deployments))
	for name, hex := range t.Deployments {
		addresses[name] = common.HexToAddress(hex)
	}
	return &Deployment{
		network:   t.Network,
		contracts: append([]string{}, t.Contracts...),
		addresses: addresses,
		book:      book,
	}, nil
}

func (d *Deployment) Network() string {
	return d.network
}

// Contracts returns the contract names in table order.
func (d *Deployment) Contracts() []string {
	return append([]string{}, d.contracts...)
}

func (d *Deployment) HasContract(name string) bool {
	return lo.Contains(d.contracts, name)
}

func (d *Deployment) ContractAddress(name string) (common.Address, error) {
	if !d.HasContract(name) {
		return common.Address{}, fmt.Errorf("%s on %s: %w", name, d.network, ErrContractNotListed)
	}
	addr, found := d.addresses[name]
	if !found {
		return common.Address{}, fmt.Errorf("%s on %s: %w", name, d.network, ErrContractNotDeployed)
	}
	return addr, nil
}

// Deployed returns a copy of the known deployment addresses.
func (d *Deployment) Deployed() map[string]common.Address {
	res := make(map[string]common.Address, len(d.addresses))
	for name, addr := range d.addresses {
		res[name] = addr
	}
	return res
}

func (d *Deployment) AddressBook() *addrbook.Book {
	return d.book
}

// Networks returns the names of the networks with a built-in table.
func Networks() []string {
	entries, err := builtin.ReadDir("data")
	if err != nil {
		return nil
	}
	res := []string{}
	for _, e := range entries {
		res = append(res, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(res)
	return res
}

// Load returns the deployment of network, merging the overlay found in
// dataDir when there is one. dataDir may be empty.
func Load(network, dataDir string) (*Deployment, error) {
	var table *Table

	data, err := builtin.ReadFile(path.Join("data", network+".yaml"))
	if err == nil {
		table, err = ParseTable(data)
		if err != nil {
			return nil, fmt.Errorf("built-in %s table: %w", network, err)
		}
	}

	overlay, err := loadOverlay(network, dataDir)
	if err != nil {
		return nil, err
	}
	if overlay != nil && overlay.Network != "" && overlay.Network != network {
		return nil, fmt.Errorf("overlay for %s declares network %q: %w", network, overlay.Network, ErrNetworkMismatch)
	}

	switch {
	case table == nil && overlay == nil:
		return nil, fmt.Errorf("%s: %w", network, ErrNetworkNotConfigured)
	case table == nil:
		table = overlay
	case overlay != nil:
		table.merge(overlay)
	}
	if table.Network == "" {
		table.Network = network
	}
	if table.Network != network {
		return nil, fmt.Errorf("deployment table for %s declares network %q: %w", network, table.Network, ErrNetworkMismatch)
	}
	return newDeployment(table)
}

func loadOverlay(network, dataDir string) (*Table, error) {
	if dataDir == "" {
		return nil, nil
	}
	file := filepath.Join(dataDir, "deployments", network+".yaml")
	data, err := os.ReadFile(file)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("couldn't read %s: %w", file, err)
	}
	t, err := ParseTable(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return t, nil
}

func sortedKeys(m map[string]string) []string {
	keys := lo.Keys(m)
	sort.Strings(keys)
	return keys
}
