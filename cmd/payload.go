package cmd

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"

	"github.com/CryptYlliON/gelato-network/contracts"
	"github.com/CryptYlliON/gelato-network/tasks"
)

var payloadLog bool

func newDefaultPayloadCmd(action string) *cobra.Command {
	p, _ := tasks.GetDefaultPayload(action)
	return &cobra.Command{
		Use:   p.Name,
		Short: p.Description,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ac, err := AppContextFrom(cmd)
			if err != nil {
				return err
			}
			env, err := ac.TaskEnv(false)
			if err != nil {
				return err
			}
			payload, err := tasks.DefaultPayloadWithSelector(env, action, payloadLog)
			if err != nil {
				return err
			}
			if !payloadLog {
				ac.UI.Critical("%s", hexutil.Encode(payload))
			}
			return nil
		},
	}
}

var abiEncodeConfig tasks.AbiEncodeConfig
var abiEncodeInputs string

var abiEncodeCmd = &cobra.Command{
	Use:   tasks.AbiEncodeTaskName,
	Short: "Encodes a function call of a contract, selector included",
	Long: `Encodes <contractname>.<functionname>(inputs) with the contract's ABI.
--inputs is a JSON array. Addresses can be given as address book keys,
e.g. "erc20.DAI", tuples as objects or arrays.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ac, err := AppContextFrom(cmd)
		if err != nil {
			return err
		}
		env, err := ac.TaskEnv(false)
		if err != nil {
			return err
		}
		cfg := abiEncodeConfig
		cfg.Inputs, err = contracts.DecodeJSONInputs(abiEncodeInputs)
		if err != nil {
			return err
		}
		data, err := tasks.AbiEncodeWithSelector(env, cfg)
		if err != nil {
			return err
		}
		if !cfg.Log {
			ac.UI.Critical("%s", hexutil.Encode(data))
		}
		return nil
	},
}

func init() {
	for _, action := range tasks.DefaultPayloadActions() {
		c := newDefaultPayloadCmd(action)
		c.Flags().BoolVar(&payloadLog, "log", false, "Logs return values to stdout")
		rootCmd.AddCommand(c)
	}

	f := abiEncodeCmd.Flags()
	f.StringVar(&abiEncodeConfig.ContractName, "contractname", "", "Name of the contract, as listed for the network")
	f.StringVar(&abiEncodeConfig.ContractAddress, "contractaddress", "", "Address of the contract, only needed when the ABI comes from the block explorer")
	f.StringVar(&abiEncodeConfig.FunctionName, "functionname", "", "Name of the function to encode")
	f.StringVar(&abiEncodeInputs, "inputs", "[]", "Function inputs, as a JSON array")
	f.BoolVar(&abiEncodeConfig.Log, "log", false, "Logs return values to stdout")
	_ = abiEncodeCmd.MarkFlagRequired("contractname")
	_ = abiEncodeCmd.MarkFlagRequired("functionname")
	rootCmd.AddCommand(abiEncodeCmd)
}
