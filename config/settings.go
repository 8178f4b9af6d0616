package config

import (
	"errors"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	DefaultHDPath       = "m/44'/60'/0'/0"
	DefaultTxTimeout    = 10 * time.Minute
	DefaultPollInterval = 5 * time.Second
	DefaultAccountCount = 10

	EnvMnemonic         = "GELATO_MNEMONIC"
	EnvKeystorePassword = "GELATO_KEYSTORE_PASSWORD"
	EnvDataDir          = "GELATO_DATA_DIR"
	EnvArtifactsDir     = "GELATO_ARTIFACTS_DIR"
)

// Settings is the content of the settings file, ~/.gelato/config.yaml by
// default.
type Settings struct {
	// Mnemonic derives the signer accounts, like the accounts of a buidler
	// network config.
	Mnemonic string `yaml:"mnemonic"`
	HDPath   string `yaml:"hd_path" validate:"required,startswith=m/"`
	// AccountCount is how many accounts are derived from Mnemonic.
	AccountCount int `yaml:"account_count" validate:"min=1,max=100"`

	// Keystore is used instead of the mnemonic when set. The password is
	// read from GELATO_KEYSTORE_PASSWORD.
	Keystore         string `yaml:"keystore"`
	KeystorePassword string `yaml:"-"`

	DataDir      string `yaml:"data_dir" validate:"required"`
	ArtifactsDir string `yaml:"artifacts_dir"`

	// Nodes are extra RPC nodes per network name.
	Nodes map[string]map[string]string `yaml:"nodes" validate:"dive,dive,url"`
	// ExplorerAPIKeys override the block explorer key per network name.
	ExplorerAPIKeys map[string]string `yaml:"explorer_api_keys"`

	TxTimeout    time.Duration `yaml:"tx_timeout" validate:"min=0"`
	PollInterval time.Duration `yaml:"poll_interval" validate:"min=0"`
}

func DefaultSettings() Settings {
	return Settings{
		HDPath:          DefaultHDPath,
		AccountCount:    DefaultAccountCount,
		DataDir:         defaultDataDir(),
		ArtifactsDir:    "artifacts",
		Nodes:           map[string]map[string]string{},
		ExplorerAPIKeys: map[string]string{},
		TxTimeout:       DefaultTxTimeout,
		PollInterval:    DefaultPollInterval,
	}
}

func defaultDataDir() string {
	usr, err := user.Current()
	if err != nil {
		return ".gelato"
	}
	return filepath.Join(usr.HomeDir, ".gelato")
}

// DefaultSettingsFile is where LoadSettings looks when no file is given.
func DefaultSettingsFile() string {
	return filepath.Join(defaultDataDir(), "config.yaml")
}

// LoadSettings reads file on top of the defaults, applies the environment
// overrides and validates the result. A missing file is only an error when
// it was asked for explicitly.
func LoadSettings(file string) (*Settings, error) {
	s := DefaultSettings()

	explicit := file != ""
	if !explicit {
		file = DefaultSettingsFile()
	}
	data, err := os.ReadFile(file)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("couldn't parse settings file %s: %w", file, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("couldn't read settings file %s: %w", file, err)
	}

	s.applyEnv()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Settings) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvMnemonic)); v != "" {
		s.Mnemonic = v
	}
	if v := os.Getenv(EnvKeystorePassword); v != "" {
		s.KeystorePassword = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvDataDir)); v != "" {
		s.DataDir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvArtifactsDir)); v != "" {
		s.ArtifactsDir = v
	}
}

var validate = validator.New()

func (s *Settings) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	return nil
}

// NodesFor returns the extra nodes configured for network.
func (s *Settings) NodesFor(network string) map[string]string {
	return s.Nodes[network]
}
