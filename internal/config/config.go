// Package config stores shop credentials in the OS keychain, with an
// encrypted file fallback for headless environments.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/99designs/keyring"
)

const (
	serviceName    = "shopctl"
	shopKey        = "default"
	defaultProfile = "default"
	profilePrefix  = "profile:"

	envShop    = "SHOPCTL_SHOP"
	envToken   = "SHOPCTL_TOKEN"
	envVersion = "SHOPCTL_API_VERSION"
	envHost    = "SHOPCTL_HOST"
	envProfile = "SHOPCTL_PROFILE"

	envKeyringBackend  = "SHOPCTL_KEYRING_BACKEND"
	envKeyringPassword = "SHOPCTL_KEYRING_PASSWORD"
	envCredentialsDir  = "SHOPCTL_CREDENTIALS_DIR"

	keyringBackendAuto   = "auto"
	keyringBackendFile   = "file"
	keyringBackendSystem = "system"
)

// openKeyring is a package-level function for opening keyrings.
// It can be replaced in tests to use a mock keyring.
var openKeyring = func(cfg keyring.Config) (keyring.Keyring, error) {
	return keyring.Open(cfg)
}

var userConfigDir = os.UserConfigDir

var stdinHasTTY = func() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}

// SetOpenKeyring allows replacing the keyring opener for testing.
// Returns a cleanup function that restores the original.
func SetOpenKeyring(fn func(keyring.Config) (keyring.Keyring, error)) func() {
	original := openKeyring
	openKeyring = fn
	return func() { openKeyring = original }
}

// Shop holds one shop's connection details.
type Shop struct {
	// Domain is the myshopify domain, e.g. "example.myshopify.com".
	Domain string `json:"domain"`
	// AccessToken is the Admin API access token.
	AccessToken string `json:"access_token"`
	// APIVersion pins the Admin API version; empty uses the client default.
	APIVersion string `json:"api_version,omitempty"`
	// HostOverride routes calls through a proxy host.
	HostOverride string `json:"host_override,omitempty"`
}

// ErrNotConfigured is returned when no shop is configured.
var ErrNotConfigured = errors.New("shopctl not configured - run 'shopctl auth login' first")

func keyringConfig() keyring.Config {
	cfg := keyring.Config{
		ServiceName: serviceName,
	}

	backend := keyringBackendMode()
	if backend == keyringBackendSystem {
		return cfg
	}

	// Always configure file backend details in auto mode so keyring.Open
	// can fall through to encrypted file storage when native backends are
	// missing.
	cfg.FileDir = keyringFileDir()
	cfg.FilePasswordFunc = keyringFilePassword

	// Headless Linux should bypass other backends and use encrypted file
	// storage.
	if shouldForceFileBackend(runtime.GOOS, backend, os.Getenv("DBUS_SESSION_BUS_ADDRESS")) {
		cfg.AllowedBackends = []keyring.BackendType{keyring.FileBackend}
	}

	return cfg
}

func keyringBackendMode() string {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(envKeyringBackend))) {
	case "", keyringBackendAuto:
		return keyringBackendAuto
	case keyringBackendFile:
		return keyringBackendFile
	case keyringBackendSystem, "os", "native":
		return keyringBackendSystem
	default:
		return keyringBackendAuto
	}
}

func shouldForceFileBackend(goos, backend, dbusAddr string) bool {
	if backend == keyringBackendFile {
		return true
	}
	if backend != keyringBackendAuto {
		return false
	}
	return goos == "linux" && strings.TrimSpace(dbusAddr) == ""
}

func keyringFileDir() string {
	base := strings.TrimSpace(os.Getenv(envCredentialsDir))
	if base == "" {
		if dir, err := userConfigDir(); err == nil && strings.TrimSpace(dir) != "" {
			base = filepath.Join(dir, serviceName)
		}
	}
	if base == "" {
		if home, err := os.UserHomeDir(); err == nil && strings.TrimSpace(home) != "" {
			base = filepath.Join(home, ".config", serviceName)
		}
	}
	if base == "" {
		base = filepath.Join(os.TempDir(), serviceName)
	}
	return filepath.Join(base, "keyring")
}

func keyringFilePassword(prompt string) (string, error) {
	if password := os.Getenv(envKeyringPassword); strings.TrimSpace(password) != "" {
		return password, nil
	}
	if !stdinHasTTY() {
		return "", fmt.Errorf("set %s when using file keyring in non-interactive environments", envKeyringPassword)
	}
	return keyring.TerminalPrompt(prompt)
}

func profileKey(name string) string {
	if name == "" || name == defaultProfile {
		return shopKey
	}
	return profilePrefix + name
}

// SaveShop stores the shop credentials under the default profile.
func SaveShop(shop Shop) error {
	return SaveProfile(defaultProfile, shop)
}

// SaveProfile stores the shop credentials under a named profile.
func SaveProfile(profile string, shop Shop) error {
	ring, err := openKeyring(keyringConfig())
	if err != nil {
		return fmt.Errorf("failed to open keyring: %w", err)
	}

	data, err := json.Marshal(shop)
	if err != nil {
		return fmt.Errorf("failed to marshal shop: %w", err)
	}

	if err := ring.Set(keyring.Item{
		Key:  profileKey(profile),
		Data: data,
	}); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// LoadShop resolves the active shop configuration. Environment
// variables win over the keyring, so CI and scripts never need a
// keychain; SHOPCTL_PROFILE selects a named profile otherwise.
func LoadShop() (Shop, error) {
	if domain := strings.TrimSpace(os.Getenv(envShop)); domain != "" {
		token := strings.TrimSpace(os.Getenv(envToken))
		if token == "" {
			return Shop{}, fmt.Errorf("environment variables %s and %s must both be set", envShop, envToken)
		}
		return Shop{
			Domain:       normalizeDomain(domain),
			AccessToken:  token,
			APIVersion:   strings.TrimSpace(os.Getenv(envVersion)),
			HostOverride: strings.TrimSpace(os.Getenv(envHost)),
		}, nil
	}

	return LoadProfile(strings.TrimSpace(os.Getenv(envProfile)))
}

// LoadProfile retrieves credentials for a named profile.
func LoadProfile(profile string) (Shop, error) {
	ring, err := openKeyring(keyringConfig())
	if err != nil {
		return Shop{}, fmt.Errorf("failed to open keyring: %w", err)
	}

	item, err := ring.Get(profileKey(profile))
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return Shop{}, ErrNotConfigured
		}
		return Shop{}, fmt.Errorf("failed to load profile: %w", err)
	}

	var shop Shop
	if err := json.Unmarshal(item.Data, &shop); err != nil {
		return Shop{}, fmt.Errorf("failed to unmarshal shop: %w", err)
	}
	return shop, nil
}

// DeleteProfile removes a stored profile. Deleting a profile that does
// not exist is not an error.
func DeleteProfile(profile string) error {
	ring, err := openKeyring(keyringConfig())
	if err != nil {
		return fmt.Errorf("failed to open keyring: %w", err)
	}
	if err := ring.Remove(profileKey(profile)); err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	return nil
}

// normalizeDomain strips a scheme and trailing slash so both
// "example.myshopify.com" and "https://example.myshopify.com/" work.
func normalizeDomain(domain string) string {
	domain = strings.TrimSpace(domain)
	domain = strings.TrimPrefix(domain, "https://")
	domain = strings.TrimPrefix(domain, "http://")
	return strings.TrimSuffix(domain, "/")
}
