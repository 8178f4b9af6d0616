package addrbook

import (
	"strings"

	gelatocommon "github.com/CryptYlliON/gelato-network/common"
)

// Map is a lightweight AddressResolver for tests. It maps lower-cased
// addresses to names; anything else resolves to "unknown".
type Map map[string]string

func (m Map) Resolve(addr string) gelatocommon.Address {
	if desc, ok := m[strings.ToLower(addr)]; ok {
		return gelatocommon.Address{Address: addr, Desc: desc}
	}
	return gelatocommon.Address{Address: addr, Desc: "unknown"}
}
