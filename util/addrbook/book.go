package addrbook

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sahilm/fuzzy"

	gelatocommon "github.com/CryptYlliON/gelato-network/common"
)

// Well known categories.
const (
	CategoryEOA                  = "EOA"
	CategoryERC20                = "erc20"
	CategoryUserProxy            = "userProxy"
	CategoryGelatoExecutor       = "gelatoExecutor"
	CategoryGelatoGasPriceOracle = "gelatoGasPriceOracle"
	CategoryGelatoProvider       = "gelatoProvider"
)

var (
	ErrCategoryNotFound = errors.New("address book category not found")
	ErrEntryNotFound    = errors.New("address book entry not found")
)

// Key names one entry of a Book.
type Key struct {
	Category string
	Name     string
}

func (k Key) String() string {
	return k.Category + "." + k.Name
}

// ParseKey parses "category.name".
func ParseKey(s string) (Key, error) {
	category, name, ok := strings.Cut(s, ".")
	if !ok || category == "" || name == "" {
		return Key{}, fmt.Errorf("invalid address book key %q, expected category.name", s)
	}
	return Key{Category: category, Name: name}, nil
}

// Book is a read-only category -> name -> address table.
type Book struct {
	network string
	entries map[string]map[string]common.Address
	reverse map[common.Address]Key
}

// NewBook validates raw and builds a Book. Every value must be a hex
// address.
func NewBook(network string, raw map[string]map[string]string) (*Book, error) {
	b := &Book{
		network: network,
		entries: map[string]map[string]common.Address{},
		reverse: map[common.Address]Key{},
	}
	for category, names := range raw {
		if category == "" {
			return nil, fmt.Errorf("%s address book: empty category name", network)
		}
		entries := make(map[string]common.Address, len(names))
		for name, hex := range names {
			if !common.IsHexAddress(hex) {
				return nil, fmt.Errorf("%s address book: %s.%s: %q is not an address", network, category, name, hex)
			}
			addr := common.HexToAddress(hex)
			entries[name] = addr
			// first key in sorted order wins so reverse lookups are stable
			k := Key{Category: category, Name: name}
			if prev, found := b.reverse[addr]; !found || k.String() < prev.String() {
				b.reverse[addr] = k
			}
		}
		b.entries[category] = entries
	}
	return b, nil
}

func (b *Book) Network() string {
	return b.network
}

// Categories returns the category names in sorted order.
func (b *Book) Categories() []string {
	res := make([]string, 0, len(b.entries))
	for c := range b.entries {
		res = append(res, c)
	}
	sort.Strings(res)
	return res
}

// Category returns a copy of all entries of category.
func (b *Book) Category(category string) (map[string]common.Address, error) {
	entries, found := b.entries[category]
	if !found {
		return nil, fmt.Errorf("%s: category %q: %w", b.network, category, ErrCategoryNotFound)
	}
	res := make(map[string]common.Address, len(entries))
	for name, addr := range entries {
		res[name] = addr
	}
	return res, nil
}

func (b *Book) Lookup(category, name string) (common.Address, error) {
	entries, found := b.entries[category]
	if !found {
		return common.Address{}, fmt.Errorf("%s: category %q: %w", b.network, category, ErrCategoryNotFound)
	}
	addr, found := entries[name]
	if !found {
		return common.Address{}, fmt.Errorf("%s: %s.%s: %w", b.network, category, name, ErrEntryNotFound)
	}
	return addr, nil
}

func (b *Book) LookupKey(k Key) (common.Address, error) {
	return b.Lookup(k.Category, k.Name)
}

func (b *Book) Has(k Key) bool {
	_, err := b.LookupKey(k)
	return err == nil
}

// Keys returns every key of the book sorted by "category.name".
func (b *Book) Keys() []Key {
	res := []Key{}
	for category, entries := range b.entries {
		for name := range entries {
			res = append(res, Key{Category: category, Name: name})
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].String() < res[j].String() })
	return res
}

func (b *Book) Resolve(addr string) gelatocommon.Address {
	if common.IsHexAddress(addr) {
		if k, found := b.reverse[common.HexToAddress(addr)]; found {
			return gelatocommon.Address{Address: addr, Desc: k.String()}
		}
	}
	return gelatocommon.Address{Address: addr, Desc: "unknown"}
}

// Match is one Search result.
type Match struct {
	Key     Key
	Address common.Address
	Score   int
}

// Search fuzzy matches hint against every "category.name" key, best match
// first.
func (b *Book) Search(hint string) []Match {
	keys := b.Keys()
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.String()
	}
	res := []Match{}
	for _, m := range fuzzy.Find(hint, names) {
		k := keys[m.Index]
		res = append(res, Match{
			Key:     k,
			Address: b.entries[k.Category][k.Name],
			Score:   m.Score,
		})
	}
	return res
}
