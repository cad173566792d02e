// Package config resolves the CLI's API credentials from flags, the
// environment (including .env files) and the OS keyring.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/99designs/keyring"

	"github.com/bodrovis/taxjar/client"
	"github.com/bodrovis/taxjar/utils"
)

const (
	serviceName    = "taxjar-cli"
	credentialsKey = "default"

	EnvToken   = "TAXJAR_API_TOKEN"
	EnvAPIURL  = "TAXJAR_API_URL"
	EnvSandbox = "TAXJAR_SANDBOX"
	EnvTimeout = "TAXJAR_TIMEOUT"

	envKeyringBackend  = "TAXJAR_KEYRING_BACKEND"
	envKeyringPassword = "TAXJAR_KEYRING_PASSWORD"
	envCredentialsDir  = "TAXJAR_CREDENTIALS_DIR"
)

// ErrNotConfigured is returned when no token is available from any source.
var ErrNotConfigured = errors.New("taxjar not configured - pass --token, set " + EnvToken + " or run 'taxjar auth login'")

// openKeyring can be replaced in tests.
var openKeyring = func(cfg keyring.Config) (keyring.Keyring, error) {
	return keyring.Open(cfg)
}

var stdinHasTTY = func() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}

// SetOpenKeyring replaces the keyring opener and returns a restore func.
func SetOpenKeyring(fn func(keyring.Config) (keyring.Keyring, error)) func() {
	original := openKeyring
	openKeyring = fn
	return func() { openKeyring = original }
}

// Credentials is what `auth login` stores in the keyring.
type Credentials struct {
	Token   string `json:"token"`
	APIURL  string `json:"api_url,omitempty"`
	Sandbox bool   `json:"sandbox,omitempty"`
}

// Source names where the token came from.
type Source string

const (
	SourceFlag    Source = "flag"
	SourceEnv     Source = "env"
	SourceKeyring Source = "keyring"
)

// Overrides are the values given on the command line. Zero values mean "not set".
type Overrides struct {
	Token   string
	APIURL  string
	Sandbox bool
	Timeout time.Duration
}

// Settings are the fully resolved client settings.
type Settings struct {
	Token       string
	TokenSource Source
	APIURL      string
	Sandbox     bool
	Timeout     time.Duration
}

// Resolve merges flags, environment and keyring, flags winning.
func Resolve(o Overrides) (Settings, error) {
	_ = utils.LoadDotEnv()

	s := Settings{
		APIURL:  utils.GetEnv(EnvAPIURL, ""),
		Sandbox: utils.GetEnvBool(EnvSandbox, false),
		Timeout: utils.GetEnvDuration(EnvTimeout, client.DefaultTimeout),
	}

	switch {
	case strings.TrimSpace(o.Token) != "":
		s.Token, s.TokenSource = strings.TrimSpace(o.Token), SourceFlag
	case utils.GetEnv(EnvToken, "") != "":
		s.Token, s.TokenSource = utils.GetEnv(EnvToken, ""), SourceEnv
	default:
		creds, err := LoadCredentials()
		if err != nil {
			return Settings{}, err
		}
		s.Token, s.TokenSource = creds.Token, SourceKeyring
		if s.APIURL == "" {
			s.APIURL = creds.APIURL
		}
		s.Sandbox = s.Sandbox || creds.Sandbox
	}

	if o.APIURL != "" {
		s.APIURL = o.APIURL
	}
	if o.Sandbox {
		s.Sandbox = true
	}
	if o.Timeout > 0 {
		s.Timeout = o.Timeout
	}
	return s, nil
}

// ClientOptions turns the settings into client options. An explicit API URL
// beats the sandbox switch.
func (s Settings) ClientOptions() []client.Option {
	opts := []client.Option{client.WithTimeout(s.Timeout)}
	switch {
	case s.APIURL != "":
		opts = append(opts, client.WithAPIURL(s.APIURL))
	case s.Sandbox:
		opts = append(opts, client.WithSandbox())
	}
	return opts
}

// SaveCredentials stores creds in the OS keyring.
func SaveCredentials(creds Credentials) error {
	if strings.TrimSpace(creds.Token) == "" {
		return errors.New("token is empty")
	}
	ring, err := openKeyring(keyringConfig())
	if err != nil {
		return fmt.Errorf("failed to open keyring: %w", err)
	}
	data, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}
	if err := ring.Set(keyring.Item{Key: credentialsKey, Data: data, Label: "TaxJar API token"}); err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}
	return nil
}

// LoadCredentials reads the stored credentials; ErrNotConfigured when there are none.
func LoadCredentials() (Credentials, error) {
	ring, err := openKeyring(keyringConfig())
	if err != nil {
		return Credentials{}, fmt.Errorf("failed to open keyring: %w", err)
	}
	item, err := ring.Get(credentialsKey)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return Credentials{}, ErrNotConfigured
		}
		return Credentials{}, fmt.Errorf("failed to get credentials: %w", err)
	}
	var creds Credentials
	if err := json.Unmarshal(item.Data, &creds); err != nil {
		return Credentials{}, fmt.Errorf("failed to unmarshal credentials: %w", err)
	}
	if strings.TrimSpace(creds.Token) == "" {
		return Credentials{}, ErrNotConfigured
	}
	return creds, nil
}

// DeleteCredentials removes stored credentials. Removing nothing is not an error.
func DeleteCredentials() error {
	ring, err := openKeyring(keyringConfig())
	if err != nil {
		return fmt.Errorf("failed to open keyring: %w", err)
	}
	if err := ring.Remove(credentialsKey); err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return fmt.Errorf("failed to remove credentials: %w", err)
	}
	return nil
}

func keyringConfig() keyring.Config {
	cfg := keyring.Config{ServiceName: serviceName}

	backend := strings.ToLower(utils.GetEnv(envKeyringBackend, "auto"))
	if backend == "system" {
		return cfg
	}
	cfg.FileDir = keyringFileDir()
	cfg.FilePasswordFunc = keyringFilePassword

	// Headless Linux has no secret service to talk to.
	if backend == "file" || (runtime.GOOS == "linux" && os.Getenv("DBUS_SESSION_BUS_ADDRESS") == "") {
		cfg.AllowedBackends = []keyring.BackendType{keyring.FileBackend}
	}
	return cfg
}

func keyringFileDir() string {
	if dir := utils.GetEnv(envCredentialsDir, ""); dir != "" {
		return filepath.Join(dir, "keyring")
	}
	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		return filepath.Join(dir, serviceName, "keyring")
	}
	return filepath.Join(os.TempDir(), serviceName, "keyring")
}

func keyringFilePassword(prompt string) (string, error) {
	if password, ok := os.LookupEnv(envKeyringPassword); ok && strings.TrimSpace(password) != "" {
		return password, nil
	}
	if !stdinHasTTY() {
		return "", fmt.Errorf("set %s when using file keyring in non-interactive environments", envKeyringPassword)
	}
	return keyring.TerminalPrompt(prompt)
}
