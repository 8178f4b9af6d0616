package common

// Address is a hex address paired with what the address book knows about it.
type Address struct {
	Address string
	Desc    string
}

// LogArg is one decoded event argument.
type LogArg struct {
	Name    string
	Type    string
	Indexed bool
	Value   string
	Address *Address
}

// LogResult is a decoded event log ready for display.
type LogResult struct {
	Name     string
	Contract Address
	Index    uint
	Args     []LogArg
}

// TxResult summarizes a submitted transaction.
type TxResult struct {
	Hash      string
	Network   string
	Status    string
	From      Address
	To        Address
	Value     string
	Nonce     uint64
	GasPrice  string
	GasLimit  uint64
	GasUsed   uint64
	BlockHash string
	Method    string
	Logs      []LogResult
}
