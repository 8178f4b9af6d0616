package contracts

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"
)

//go:embed abis/*.json
var embedded embed.FS

var ErrABINotFound = errors.New("abi not found")

// ABISource fetches a verified ABI for a deployed address, usually from
// the network's block explorer.
type ABISource interface {
	GetABIString(address string) (string, error)
}

// Store resolves contract ABIs by name. Lookup order is the build
// artifact in the artifacts dir, then the ABIs shipped with the binary,
// then the ABI source for the contract address.
type Store struct {
	artifactsDir string
	source       ABISource

	mu     sync.Mutex
	loaded map[string]*abi.ABI
}

func NewStore(artifactsDir string, source ABISource) *Store {
	return &Store{
		artifactsDir: artifactsDir,
		source:       source,
		loaded:       map[string]*abi.ABI{},
	}
}

// EmbeddedNames lists the contracts whose ABI ships with the binary.
func EmbeddedNames() []string {
	entries, err := embedded.ReadDir("abis")
	if err != nil {
		return nil
	}
	names := []string{}
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	return names
}

func (s *Store) ABI(name string, address common.Address) (*abi.ABI, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, found := s.loaded[name]; found {
		return a, nil
	}
	a, err := s.resolve(name, address)
	if err != nil {
		return nil, err
	}
	s.loaded[name] = a
	return a, nil
}

func (s *Store) resolve(name string, address common.Address) (*abi.ABI, error) {
	logger := logrus.WithField("contract", name)

	if s.artifactsDir != "" {
		a, err := readArtifact(filepath.Join(s.artifactsDir, name+".json"))
		if err == nil {
			logger.Debug("abi loaded from build artifact")
			return a, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading artifact of %s: %w", name, err)
		}
	}

	if data, err := embedded.ReadFile(path.Join("abis", name+".json")); err == nil {
		return parseABI(data)
	}

	if s.source != nil && address != (common.Address{}) {
		abiStr, err := s.source.GetABIString(address.Hex())
		if err != nil {
			return nil, fmt.Errorf("getting abi of %s (%s) from explorer: %w", name, address.Hex(), err)
		}
		logger.Debug("abi loaded from block explorer")
		return parseABI([]byte(abiStr))
	}
	return nil, fmt.Errorf("%w: %s", ErrABINotFound, name)
}

// readArtifact accepts a compiler artifact with an "abi" field or a bare
// ABI array.
func readArtifact(file string) (*abi.ABI, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		return parseABI(data)
	}
	var artifact struct {
		ABI json.RawMessage `json:"abi"`
	}
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, err
	}
	if len(artifact.ABI) == 0 {
		return nil, fmt.Errorf("artifact %s has no abi field", file)
	}
	return parseABI(artifact.ABI)
}

func parseABI(data []byte) (*abi.ABI, error) {
	result, err := abi.JSON(strings.NewReader(string(data)))
	if err != nil {
		return nil, err
	}
	return &result, nil
}
