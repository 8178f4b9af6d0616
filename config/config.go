package config

// Values bound to command line flags. They are set once per process by cobra.
var (
	Network    string
	ConfigFile string
	LogLevel   string
	LogFormat  string
)

// Flags shared by every command that sends a transaction.
var (
	GasPrice          float64
	ExtraGasPrice     float64
	GasLimit          uint64
	ExtraGasLimit     uint64
	Nonce             uint64
	DontBroadcast     bool
	DontWaitToBeMined bool
)
