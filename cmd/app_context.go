package cmd

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/CryptYlliON/gelato-network/config"
	"github.com/CryptYlliON/gelato-network/contracts"
	"github.com/CryptYlliON/gelato-network/deployments"
	"github.com/CryptYlliON/gelato-network/networks"
	"github.com/CryptYlliON/gelato-network/tasks"
	"github.com/CryptYlliON/gelato-network/tx"
	"github.com/CryptYlliON/gelato-network/ui"
	"github.com/CryptYlliON/gelato-network/util/account"
	"github.com/CryptYlliON/gelato-network/util/broadcaster"
	"github.com/CryptYlliON/gelato-network/util/monitor"
	"github.com/CryptYlliON/gelato-network/util/reader"
)

// newUI builds the output of the commands. Tests replace it with a
// recording UI.
var newUI = func() ui.UI { return ui.NewTerminalUI() }

// AppContext holds everything resolved once per run by the root pre-run
// hook. Commands read it with AppContextFrom instead of the config globals.
type AppContext struct {
	Settings *config.Settings
	Network  networks.Network
	UI       ui.UI
	Logger   *logrus.Entry

	deployment *deployments.Deployment
	reader     *reader.EthReader
}

type appContextKey struct{}

func WithAppContext(ctx context.Context, ac *AppContext) context.Context {
	return context.WithValue(ctx, appContextKey{}, ac)
}

func AppContextFrom(cmd *cobra.Command) (*AppContext, error) {
	ac, ok := cmd.Context().Value(appContextKey{}).(*AppContext)
	if !ok {
		return nil, fmt.Errorf("command %s ran without app context", cmd.Name())
	}
	return ac, nil
}

func prepareAppContext(cmd *cobra.Command, args []string) error {
	logger, err := setupLogging(config.LogLevel, config.LogFormat)
	if err != nil {
		return err
	}
	settings, err := config.LoadSettings(config.ConfigFile)
	if err != nil {
		return err
	}
	if err := networks.LoadCustomNetworks(settings.DataDir); err != nil {
		return err
	}
	network, err := networks.GetNetwork(config.Network)
	if err != nil {
		return fmt.Errorf("%s: %w", config.Network, err)
	}
	if key, found := settings.ExplorerAPIKeys[network.GetName()]; found {
		if n, ok := network.(interface{ SetBlockExplorerAPIKey(string) }); ok {
			n.SetBlockExplorerAPIKey(key)
		}
	}

	ac := &AppContext{
		Settings: settings,
		Network:  network,
		UI:       newUI(),
		Logger:   logger.WithField("network", network.GetName()),
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(WithAppContext(ctx, ac))
	return nil
}

func (ac *AppContext) Deployment() (*deployments.Deployment, error) {
	if ac.deployment == nil {
		d, err := deployments.Load(ac.Network.GetName(), ac.Settings.DataDir)
		if err != nil {
			return nil, err
		}
		ac.deployment = d
	}
	return ac.deployment, nil
}

func (ac *AppContext) Nodes() map[string]string {
	return networks.GetNodes(ac.Network, ac.Settings.NodesFor(ac.Network.GetName()))
}

func (ac *AppContext) Reader() *reader.EthReader {
	if ac.reader == nil {
		ac.reader = reader.NewEthReaderGeneric(ac.Nodes())
	}
	return ac.reader
}

func (ac *AppContext) Submitter() *tx.Submitter {
	r := ac.Reader()
	b := broadcaster.NewGenericBroadcaster(ac.Nodes())
	m := monitor.NewTxMonitorWithInterval(r, ac.Settings.PollInterval, monitor.DefaultLostTimeout)
	return tx.NewSubmitter(r, b, &spinningWaiter{monitor: m, ui: ac.UI}, ac.Settings.TxTimeout)
}

// Signers derives the configured accounts. A keystore, when set, is the
// only signer.
func (ac *AppContext) Signers() ([]*account.Account, error) {
	s := ac.Settings
	switch {
	case s.Keystore != "":
		acc, err := account.NewKeystoreAccount(s.Keystore, s.KeystorePassword)
		if err != nil {
			return nil, err
		}
		return []*account.Account{acc}, nil
	case s.Mnemonic != "":
		return account.Signers(s.Mnemonic, s.HDPath, s.AccountCount)
	}
	return nil, fmt.Errorf("no mnemonic or keystore configured, set %s: %w", config.EnvMnemonic, account.ErrSignerNotFound)
}

// TaskEnv wires the task bodies. Chain access is only set up when online
// is true.
func (ac *AppContext) TaskEnv(online bool) (*tasks.Env, error) {
	d, err := ac.Deployment()
	if err != nil {
		return nil, err
	}
	env := &tasks.Env{
		Deployment: d,
		ABIs:       contracts.NewStore(ac.Settings.ArtifactsDir, ac.Network),
		UI:         ac.UI,
		Logger:     ac.Logger,
		Signers:    ac.Signers,
	}
	if online {
		env.Submitter = ac.Submitter()
		env.Logs = ac.Reader()
	}
	return env, nil
}
