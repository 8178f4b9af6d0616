// Copyright © 2018 Victor Tran
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/CryptYlliON/gelato-network/config"
	"github.com/CryptYlliON/gelato-network/networks"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gelato",
	Short: "Run gelato network tasks against the gelato contracts",
	Long: fmt.Sprintf(`gelato bundles the deployment configuration of the gelato contracts
(contract lists and address books per network) with tasks that call into them:
provide funds and task specs to GelatoCore, encode action payloads and read the
events a transaction emitted.

Settings are read from %s (override with --config). The signer
accounts are derived from the mnemonic in the settings file or in %s.
Deployed contract addresses can be added to <data_dir>/deployments/<network>.yaml.

Every network has default nodes; add your own in the settings file or through the
network's node env var, e.g. %s for rinkeby.`,
		config.DefaultSettingsFile(),
		config.EnvMnemonic,
		networks.Rinkeby.GetNodeVariableName(),
	),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: prepareAppContext,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		logrus.WithError(err).Error("gelato failed")
		os.Exit(1)
	}
}

func setupLogging(level, format string) (*logrus.Entry, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	logrus.SetLevel(lvl)
	switch strings.ToLower(format) {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	case "text", "":
		logrus.SetFormatter(&logrus.TextFormatter{})
	default:
		return nil, fmt.Errorf("unknown log format %q, valid values are text and json", format)
	}
	logrus.SetOutput(os.Stderr)
	return logrus.WithField("run", uuid.NewString()), nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&config.Network, "network", "k", networks.DefaultNetwork, "gelato network. Run \"gelato network list\" for the valid values.")
	rootCmd.PersistentFlags().StringVar(&config.ConfigFile, "config", "", "settings file (default is ~/.gelato/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&config.LogLevel, "log-level", "info", "log level: panic, fatal, error, warn, info, debug or trace")
	rootCmd.PersistentFlags().StringVar(&config.LogFormat, "log-format", "text", "log format. Valid values are 'text', 'json'")
}
