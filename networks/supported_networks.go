package networks

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// DefaultNetwork is used when --network is not given.
const DefaultNetwork = "rinkeby"

// Insert more Network implementations here to support more chains.
var supportedNetworks = []Network{
	EthereumMainnet,
	Ropsten,
	Rinkeby,
	Kovan,
	BuidlerEVM,
}

var ErrNetworkNotFound = fmt.Errorf("network not found")

var globalSupportedNetworks = newSupportedNetworks()

type networks struct {
	mu           sync.RWMutex
	networks     map[string]Network
	networksByID map[uint64]Network
}

func newSupportedNetworks() *networks {
	result := &networks{
		networks:     map[string]Network{},
		networksByID: map[uint64]Network{},
	}
	for _, n := range supportedNetworks {
		if err := result.add(n, false); err != nil {
			panic(err)
		}
	}
	return result
}

// add registers n under its name and alternative names. When replace is
// false any name clash is an error.
func (n *networks) add(network Network, replace bool) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	names := append([]string{network.GetName()}, network.GetAlternativeNames()...)
	if !replace {
		for _, name := range names {
			if _, found := n.networks[name]; found {
				return fmt.Errorf("network with name or alternative name of '%s' already exists", name)
			}
		}
	}
	for _, name := range names {
		n.networks[name] = network
	}
	n.networksByID[network.GetChainID()] = network
	return nil
}

func (n *networks) getNetwork(name string) (Network, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	res, found := n.networks[name]
	if !found {
		return nil, fmt.Errorf("network name '%s': %w", name, ErrNetworkNotFound)
	}
	return res, nil
}

func (n *networks) getNetworkByID(id uint64) (Network, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	res, found := n.networksByID[id]
	if !found {
		return nil, fmt.Errorf("network id %d: %w", id, ErrNetworkNotFound)
	}
	return res, nil
}

func (n *networks) unique() []Network {
	n.mu.RLock()
	defer n.mu.RUnlock()
	seen := map[string]Network{}
	for _, network := range n.networks {
		seen[network.GetName()] = network
	}
	res := make([]Network, 0, len(seen))
	for _, network := range seen {
		res = append(res, network)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].GetName() < res[j].GetName() })
	return res
}

func NewNetworkFromJSON(content []byte) (Network, error) {
	networkConfig := GenericEtherscanNetworkConfig{}
	if err := json.Unmarshal(content, &networkConfig); err != nil {
		return nil, fmt.Errorf("failed to unmarshal network config: %w", err)
	}
	if networkConfig.Name == "" {
		return nil, fmt.Errorf("network config has no name")
	}
	if networkConfig.ChainID == 0 {
		return nil, fmt.Errorf("network config %s has no chain id", networkConfig.Name)
	}
	return NewGenericEtherscanNetwork(networkConfig), nil
}

// LoadCustomNetworks registers every <dir>/networks/*.json, replacing
// built-in networks of the same name. Unparsable files are skipped with a
// warning.
func LoadCustomNetworks(dir string) error {
	if dir == "" {
		return nil
	}
	files, err := filepath.Glob(filepath.Join(dir, "networks", "*.json"))
	if err != nil {
		return fmt.Errorf("failed to glob custom networks: %w", err)
	}
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", file, err)
		}
		network, err := NewNetworkFromJSON(content)
		if err != nil {
			logrus.WithField("file", file).WithError(err).Warn("ignoring custom network")
			continue
		}
		if _, err := GetNetwork(network.GetName()); err == nil {
			logrus.WithField("network", network.GetName()).Debug("custom network replaces built-in one")
		}
		if err := globalSupportedNetworks.add(network, true); err != nil {
			return err
		}
	}
	return nil
}

// AddNetwork registers network and stores it to <dir>/networks/.
func AddNetwork(network Network, dir string) error {
	if err := globalSupportedNetworks.add(network, true); err != nil {
		return err
	}

	customNetworksDir := filepath.Join(dir, "networks")
	if err := os.MkdirAll(customNetworksDir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", customNetworksDir, err)
	}
	content, err := network.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal network: %w", err)
	}
	file := filepath.Join(customNetworksDir, fmt.Sprintf("%s.json", network.GetName()))
	if err := os.WriteFile(file, content, 0o644); err != nil {
		return fmt.Errorf("failed to write the new network to file: %w", err)
	}
	return nil
}

func GetSupportedNetworks() []Network {
	return globalSupportedNetworks.unique()
}

func GetNetwork(name string) (Network, error) {
	return globalSupportedNetworks.getNetwork(name)
}

func GetNetworkByID(id uint64) (Network, error) {
	return globalSupportedNetworks.getNetworkByID(id)
}

func GetSupportedNetworkNames() []string {
	res := []string{}
	for _, n := range GetSupportedNetworks() {
		res = append(res, n.GetName())
		res = append(res, n.GetAlternativeNames()...)
	}
	return res
}

// GetNodes returns the RPC nodes of network: its defaults, the node in its
// env variable and the given extra nodes (from the settings file), later
// sources overriding earlier ones by name.
func GetNodes(network Network, extra map[string]string) map[string]string {
	nodes := map[string]string{}
	for name, url := range network.GetDefaultNodes() {
		nodes[name] = url
	}
	if custom := strings.TrimSpace(os.Getenv(network.GetNodeVariableName())); custom != "" {
		nodes["custom-node"] = custom
	}
	for name, url := range extra {
		nodes[name] = url
	}
	return nodes
}
