package tasks_test

import (
	"context"
	"errors"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CryptYlliON/gelato-network/contracts"
	"github.com/CryptYlliON/gelato-network/deployments"
	"github.com/CryptYlliON/gelato-network/tasks"
	"github.com/CryptYlliON/gelato-network/tx"
	"github.com/CryptYlliON/gelato-network/ui"
	"github.com/CryptYlliON/gelato-network/util/account"
	"github.com/CryptYlliON/gelato-network/util/addrbook"
)

const testMnemonic = "test test test test test test test test test test test junk"

var (
	coreAddr      = common.HexToAddress("0x1111111111111111111111111111111111111111")
	providerAddr  = common.HexToAddress("0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC")
	minedTxHash   = common.HexToHash("0x7a")
	minedBlockHex = "0x00000000000000000000000000000000000000000000000000000000000000b1"
)

type fakeSubmitter struct {
	requests []tx.Request
	err      error
}

func (f *fakeSubmitter) Submit(ctx context.Context, req tx.Request) (*tx.Result, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return &tx.Result{
		Hash:      minedTxHash,
		Status:    "done",
		Receipt:   &types.Receipt{TxHash: minedTxHash},
		BlockHash: common.HexToHash(minedBlockHex),
	}, nil
}

type fakeLogs struct {
	logs  []types.Log
	asked []common.Hash
}

func (f *fakeLogs) LogsByBlockHash(ctx context.Context, blockHash common.Hash, addresses []common.Address) ([]types.Log, error) {
	f.asked = append(f.asked, blockHash)
	return f.logs, nil
}

func newEnv(t *testing.T, dataDir string) (*tasks.Env, *ui.RecordingUI, *fakeSubmitter) {
	t.Helper()
	d, err := deployments.Load("rinkeby", dataDir)
	require.NoError(t, err)
	rec := ui.NewRecordingUI()
	sub := &fakeSubmitter{}
	return &tasks.Env{
		Deployment: d,
		ABIs:       contracts.NewStore("", nil),
		UI:         rec,
		Submitter:  sub,
		Signers: func() ([]*account.Account, error) {
			return account.Signers(testMnemonic, "m/44'/60'/0'/0", 3)
		},
	}, rec, sub
}

func writeOverlay(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "deployments"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "deployments", "rinkeby.yaml"), []byte(content), 0o644))
	return dir
}

// userBook holds the user specific entries rinkeby does not ship.
const userBook = `addressBook:
  EOA: {luis: "0x00000000000000000000000000000000000000e1"}
  userProxy: {luis: "0x00000000000000000000000000000000000000e2"}
  erc20: {DAI: "0x00000000000000000000000000000000000000d1", dLETH2x: "0x00000000000000000000000000000000000000d2"}
`

func TestMultiProvideDefaults(t *testing.T) {
	cfg := tasks.DefaultMultiProvideConfig()
	assert.Equal(t, "0", cfg.Funds)
	assert.Equal(t, "0x0000000000000000000000000000000000000000", cfg.GelatoExecutor)
	assert.Equal(t, "[]", cfg.TaskSpecs)
	assert.Equal(t, "[]", cfg.Modules)
	assert.Equal(t, 2, cfg.ProviderIndex)
	assert.Empty(t, cfg.GelatoCoreAddress)
	assert.False(t, cfg.Events)
	assert.False(t, cfg.Log)
	assert.NoError(t, cfg.Validate())
}

func TestMultiProvide(t *testing.T) {
	env, rec, sub := newEnv(t, t.TempDir())
	logs := &fakeLogs{}
	env.Logs = logs

	a, err := env.ABIs.ABI("GelatoCore", coreAddr)
	require.NoError(t, err)
	event := a.Events["LogProvideFunds"]
	data, err := event.Inputs.NonIndexed().Pack(big.NewInt(15e17), big.NewInt(15e17))
	require.NoError(t, err)
	logs.logs = []types.Log{
		{Address: coreAddr, TxHash: minedTxHash, Topics: []common.Hash{event.ID, common.BytesToHash(providerAddr.Bytes())}, Data: data},
		{Address: coreAddr, TxHash: common.HexToHash("0x99"), Topics: []common.Hash{event.ID, common.BytesToHash(providerAddr.Bytes())}, Data: data},
	}

	cfg := tasks.DefaultMultiProvideConfig()
	cfg.Funds = "1.5"
	cfg.GelatoCoreAddress = coreAddr.Hex()
	cfg.GelatoExecutor = "0xa5A98a6AD379C7B578bD85E35A3eC28AD72A336b"
	cfg.TaskSpecs = `[{"conditions": [], "actions": [{"addr": "0x2222222222222222222222222222222222222222", "operation": 1, "dataFlow": 0, "value": false, "termsOkCheck": true}], "gasPriceCeil": "0xba43b7400"}]`
	cfg.Modules = `["0x4444444444444444444444444444444444444444"]`
	cfg.Events = true
	cfg.Log = true

	hash, err := tasks.MultiProvide(context.Background(), env, cfg, tx.Request{ExtraGasLimit: 1000})
	require.NoError(t, err)
	assert.Equal(t, minedTxHash, hash)

	require.Len(t, sub.requests, 1)
	req := sub.requests[0]
	assert.Equal(t, providerAddr, req.From.Address())
	assert.Equal(t, coreAddr, req.Contract.Address)
	assert.Equal(t, "multiProvide", req.Method)
	assert.Equal(t, "1500000000000000000", req.Value.String())
	assert.Equal(t, uint64(1000), req.ExtraGasLimit)

	calldata, err := req.Contract.Pack(req.Method, req.Args...)
	require.NoError(t, err)
	inputs, err := contracts.DecodeJSONInputs(`["0xa5A98a6AD379C7B578bD85E35A3eC28AD72A336b",
		[{"conditions": [], "actions": [{"addr": "0x2222222222222222222222222222222222222222", "operation": 1, "dataFlow": 0, "value": false, "termsOkCheck": true}], "gasPriceCeil": "50000000000"}],
		["0x4444444444444444444444444444444444444444"]]`)
	require.NoError(t, err)
	expected, err := req.Contract.EncodeWithSelector("multiProvide", inputs)
	require.NoError(t, err)
	assert.Equal(t, expected, calldata)

	assert.Equal(t, []common.Hash{common.HexToHash(minedBlockHex)}, logs.asked)
	assert.Contains(t, rec.Messages("Critical"), "txHash multiProvide: "+minedTxHash.Hex())
	assert.Contains(t, rec.Messages("Table"), "#0 LogProvideFunds |  | ")
	assert.Len(t, rec.Messages("Table"), 4)
	assert.NotEmpty(t, rec.Output())
}

func TestMultiProvideErrors(t *testing.T) {
	t.Run("provider index out of range", func(t *testing.T) {
		env, _, sub := newEnv(t, t.TempDir())
		cfg := tasks.DefaultMultiProvideConfig()
		cfg.GelatoCoreAddress = coreAddr.Hex()
		cfg.ProviderIndex = 3
		_, err := tasks.MultiProvide(context.Background(), env, cfg, tx.Request{})
		assert.ErrorIs(t, err, account.ErrSignerNotFound)
		assert.Empty(t, sub.requests)
	})

	t.Run("gelato core not deployed", func(t *testing.T) {
		env, _, _ := newEnv(t, t.TempDir())
		_, err := tasks.MultiProvide(context.Background(), env, tasks.DefaultMultiProvideConfig(), tx.Request{})
		assert.ErrorIs(t, err, deployments.ErrContractNotDeployed)
	})

	t.Run("bad funds", func(t *testing.T) {
		env, _, _ := newEnv(t, t.TempDir())
		cfg := tasks.DefaultMultiProvideConfig()
		cfg.Funds = "one"
		_, err := tasks.MultiProvide(context.Background(), env, cfg, tx.Request{})
		assert.Error(t, err)
	})

	t.Run("bad task specs", func(t *testing.T) {
		env, _, _ := newEnv(t, t.TempDir())
		cfg := tasks.DefaultMultiProvideConfig()
		cfg.TaskSpecs = `{"conditions": []}`
		_, err := tasks.MultiProvide(context.Background(), env, cfg, tx.Request{})
		assert.ErrorContains(t, err, "taskspecs")
	})

	t.Run("submit fails", func(t *testing.T) {
		env, _, sub := newEnv(t, t.TempDir())
		sub.err = tx.ErrTxReverted
		cfg := tasks.DefaultMultiProvideConfig()
		cfg.GelatoCoreAddress = coreAddr.Hex()
		_, err := tasks.MultiProvide(context.Background(), env, cfg, tx.Request{})
		assert.ErrorIs(t, err, tx.ErrTxReverted)
	})
}

func TestMultiProvideUsesDeployedAddress(t *testing.T) {
	dir := writeOverlay(t, "network: rinkeby\ndeployments:\n  GelatoCore: \""+coreAddr.Hex()+"\"\n")
	env, _, sub := newEnv(t, dir)
	_, err := tasks.MultiProvide(context.Background(), env, tasks.DefaultMultiProvideConfig(), tx.Request{})
	require.NoError(t, err)
	require.Len(t, sub.requests, 1)
	assert.Equal(t, coreAddr, sub.requests[0].Contract.Address)
	assert.Equal(t, int64(0), sub.requests[0].Value.Int64())
}

func TestDefaultPayload(t *testing.T) {
	env, rec, _ := newEnv(t, writeOverlay(t, userBook))
	assert.Equal(t, []string{"ActionBzxPtokenMintWithToken"}, tasks.DefaultPayloadActions())

	payload, err := tasks.DefaultPayloadWithSelector(env, "ActionBzxPtokenMintWithToken", true)
	require.NoError(t, err)

	book := env.Deployment.AddressBook()
	get := func(cat, name string) common.Address {
		addr, err := book.Lookup(cat, name)
		require.NoError(t, err)
		return addr
	}
	a, err := env.ABIs.ABI("ActionBzxPtokenMintWithToken", common.Address{})
	require.NoError(t, err)
	method := a.Methods["action"]
	amount, _ := new(big.Int).SetString("10000000000000000000", 10)
	packed, err := method.Inputs.Pack(get("EOA", "luis"), get("userProxy", "luis"), get("erc20", "DAI"), amount, get("erc20", "dLETH2x"))
	require.NoError(t, err)
	assert.Equal(t, append(append([]byte{}, method.ID...), packed...), payload)
	assert.Len(t, rec.Messages("Critical"), 1)

	_, err = tasks.DefaultPayloadWithSelector(env, "ActionUnknown", false)
	assert.ErrorIs(t, err, tasks.ErrTaskNotFound)
}

func TestAbiEncodeWithSelector(t *testing.T) {
	env, _, _ := newEnv(t, writeOverlay(t, userBook))
	data, err := tasks.AbiEncodeWithSelector(env, tasks.AbiEncodeConfig{
		ContractName: "ActionBzxPtokenMintWithToken",
		FunctionName: "action",
		Inputs:       []any{"EOA.luis", "userProxy.luis", "erc20.DAI", "10000000000000000000", "erc20.dLETH2x"},
	})
	require.NoError(t, err)
	payload, err := tasks.DefaultPayloadWithSelector(env, "ActionBzxPtokenMintWithToken", false)
	require.NoError(t, err)
	assert.Equal(t, payload, data)

	_, err = tasks.AbiEncodeWithSelector(env, tasks.AbiEncodeConfig{ContractName: "Unlisted", FunctionName: "action"})
	assert.ErrorIs(t, err, deployments.ErrContractNotListed)
}

func TestEventsNeedChainAccess(t *testing.T) {
	env, _, _ := newEnv(t, t.TempDir())
	_, err := tasks.GetParsedLogsAllEvents(context.Background(), env, tasks.EventsConfig{
		ContractName: "GelatoCore", ContractAddress: coreAddr.Hex(), BlockHash: minedBlockHex,
	})
	assert.ErrorIs(t, err, tasks.ErrNoChainAccess)
}

func TestEventsRejectsMalformedHashes(t *testing.T) {
	env, _, _ := newEnv(t, t.TempDir())
	logs := &fakeLogs{}
	env.Logs = logs
	bad := []tasks.EventsConfig{
		{BlockHash: "0x" + strings.Repeat("ZZ", 32)},
		{BlockHash: "nothex"},
		{BlockHash: "0x1234"},
		{BlockHash: minedBlockHex, TxHash: "nothex"},
		{BlockHash: minedBlockHex, TxHash: "0x7a"},
	}
	for _, cfg := range bad {
		cfg.ContractName = "GelatoCore"
		cfg.ContractAddress = coreAddr.Hex()
		_, err := tasks.GetParsedLogsAllEvents(context.Background(), env, cfg)
		assert.ErrorIs(t, err, tasks.ErrInvalidHash, "%+v", cfg)
	}
	assert.Empty(t, logs.asked)
}

func TestEventsWithoutTxFilter(t *testing.T) {
	env, rec, _ := newEnv(t, t.TempDir())
	a, err := env.ABIs.ABI("GelatoCore", coreAddr)
	require.NoError(t, err)
	event := a.Events["LogAddProviderModule"]
	module := common.HexToAddress("0x4444444444444444444444444444444444444444")
	env.Logs = &fakeLogs{logs: []types.Log{
		{Address: coreAddr, TxHash: common.HexToHash("0x1"), Index: 1, Topics: []common.Hash{event.ID, common.BytesToHash(providerAddr.Bytes()), common.BytesToHash(module.Bytes())}},
		{Address: coreAddr, TxHash: common.HexToHash("0x2"), Index: 2, Topics: []common.Hash{event.ID, common.BytesToHash(providerAddr.Bytes()), common.BytesToHash(module.Bytes())}},
	}}

	parsed, err := tasks.GetParsedLogsAllEvents(context.Background(), env, tasks.EventsConfig{
		ContractName: "GelatoCore", ContractAddress: coreAddr.Hex(), BlockHash: minedBlockHex, Log: true,
	})
	require.NoError(t, err)
	require.Len(t, parsed, 2)
	m, _ := parsed[1].Arg("module")
	assert.Equal(t, module, m)
	assert.Contains(t, rec.Messages("Section"), "GelatoCore events")
}

func TestDefaultPayloadNeedsUserBook(t *testing.T) {
	env, _, _ := newEnv(t, t.TempDir())
	_, err := tasks.DefaultPayloadWithSelector(env, "ActionBzxPtokenMintWithToken", false)
	assert.ErrorIs(t, err, addrbook.ErrCategoryNotFound)
}

func TestBreConfig(t *testing.T) {
	env, rec, _ := newEnv(t, writeOverlay(t, userBook))

	v, err := tasks.BreConfig(env, tasks.BreConfigConfig{AddressBookCategory: "erc20", Log: true})
	require.NoError(t, err)
	erc20 := v.(map[string]common.Address)
	assert.Equal(t, common.HexToAddress("0x00000000000000000000000000000000000000d1"), erc20["DAI"])
	assert.Contains(t, rec.Messages("KeyValue"), "DAI="+common.HexToAddress("0x00000000000000000000000000000000000000d1").Hex())

	v, err = tasks.BreConfig(env, tasks.BreConfigConfig{AddressBookCategory: "EOA", AddressBookEntry: "luis"})
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress("0x00000000000000000000000000000000000000e1"), v)

	_, err = tasks.BreConfig(env, tasks.BreConfigConfig{AddressBookCategory: "EOA", AddressBookEntry: "nobody"})
	assert.ErrorIs(t, err, addrbook.ErrEntryNotFound)

	_, err = tasks.BreConfig(env, tasks.BreConfigConfig{AddressBookCategory: "nope"})
	assert.ErrorIs(t, err, addrbook.ErrCategoryNotFound)

	v, err = tasks.BreConfig(env, tasks.BreConfigConfig{Contracts: true})
	require.NoError(t, err)
	assert.Contains(t, v, "GelatoCore")

	_, err = tasks.BreConfig(env, tasks.BreConfigConfig{ContractName: "GelatoCore"})
	assert.ErrorIs(t, err, deployments.ErrContractNotDeployed)

	_, err = tasks.BreConfig(env, tasks.BreConfigConfig{})
	assert.ErrorIs(t, err, tasks.ErrNothingSelected)
}

func TestDescriptors(t *testing.T) {
	names := []string{}
	for _, d := range tasks.Descriptors() {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{
		"abi-encode-withselector",
		"bre-config",
		"event-getparsedlogsallevents",
		"gc-mint:defaultpayload:ActionBzxPtokenMintWithToken",
		"gc-multiprovide",
	}, names)

	d, err := tasks.GetDescriptor("gc-multiprovide")
	require.NoError(t, err)
	assert.Equal(t, []string{"GelatoCore"}, d.Contracts)

	_, err = tasks.GetDescriptor("gc-unknown")
	assert.ErrorIs(t, err, tasks.ErrTaskNotFound)
}

func TestCheckEveryNetwork(t *testing.T) {
	results := tasks.CheckAll(deployments.Networks(), t.TempDir())
	require.Contains(t, results, "rinkeby")
	require.Contains(t, results, "kovan")

	// neither network ships the user specific entries of the default
	// payload: EOA.luis, userProxy.luis, erc20.DAI, erc20.dLETH2x
	for _, network := range []string{"rinkeby", "kovan"} {
		var merr *multierror.Error
		require.True(t, errors.As(results[network], &merr), network)
		assert.Len(t, merr.Errors, 4, network)
		for _, e := range merr.Errors {
			assert.ErrorIs(t, e, addrbook.ErrCategoryNotFound)
		}
	}
}

func TestCheckPassesWithUserBook(t *testing.T) {
	assert.NoError(t, tasks.CheckNetwork("rinkeby", writeOverlay(t, userBook)))
}

func TestCheckReportsMissingContract(t *testing.T) {
	d, err := deployments.Load("rinkeby", t.TempDir())
	require.NoError(t, err)
	err = tasks.CheckDeployment(d, []*tasks.Descriptor{{
		Name:        "fake",
		Contracts:   []string{"GelatoCore", "NotThere"},
		AddressKeys: []addrbook.Key{{Category: "gelatoExecutor", Name: "default"}, {Category: "gelatoExecutor", Name: "other"}},
	}})
	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))
	require.Len(t, merr.Errors, 2)
	assert.ErrorIs(t, merr.Errors[0], deployments.ErrContractNotListed)
	assert.ErrorIs(t, merr.Errors[1], addrbook.ErrEntryNotFound)
}
