// Package addrbook holds the per-network address book: symbolic names of
// EOAs, tokens, protocol contracts and user proxies grouped by category.
//
// A Book answers forward lookups (category + name -> address) for task
// arguments and reverse lookups (address -> "category.name") through the
// AddressResolver interface, which is what the event printer uses to
// annotate addresses. Tests inject Map instead.
package addrbook

import (
	gelatocommon "github.com/CryptYlliON/gelato-network/common"
)

// AddressResolver maps a raw hex address to a described address.
//
// Contract: if the address is not known, Desc must be set to "unknown".
type AddressResolver interface {
	Resolve(addr string) gelatocommon.Address
}
