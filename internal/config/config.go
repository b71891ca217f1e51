// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Networks accepted in the network setting.
const (
	NetworkDevnet  = "devnet"
	NetworkTestnet = "testnet"
	NetworkMainnet = "mainnet-beta"
)

// privateKeyPlaceholder is the value shipped in example env files.
const privateKeyPlaceholder = "your_private_key_here"

// MaxRecipientsPerTx is the largest batch that fits a transaction.
const MaxRecipientsPerTx = 10

const largeRunWarning = 50_000

// EnvFiles are loaded in order; a variable set by an earlier file or by the
// process environment is never overridden.
var EnvFiles = []string{"script.env", ".env"}

type Config struct {
	Network            string
	RPCURL             string
	PrivateKey         string
	TotalRecipients    int
	TokensPerRecipient decimal.Decimal
	RecipientsPerTx    int
	ComputeUnitLimit   uint32
	ComputeUnitPrice   uint64
	BatchDelay         time.Duration
	ConfirmTimeout     time.Duration
	RentPerAccount     decimal.Decimal
	BaseFee            decimal.Decimal
	PriorityFee        decimal.Decimal
	SOLBuffer          decimal.Decimal
	Debug              bool
}

const (
	DefaultNetwork            = NetworkDevnet
	DefaultRPCURL             = "https://api.devnet.solana.com"
	DefaultTotalRecipients    = 5000
	DefaultTokensPerRecipient = "0.8"
	DefaultRecipientsPerTx    = 10
	DefaultComputeUnitLimit   = 300_000
	DefaultComputeUnitPrice   = 50_000
	DefaultBatchDelayMs       = 500
	DefaultConfirmTimeoutMs   = 60_000
	DefaultRentPerAccount     = "0.00203928"
	DefaultBaseFee            = "0.000005"
	DefaultPriorityFee        = "0.00005"
	DefaultSOLBuffer          = "1.1"
)

// ValidationError reports one invalid setting.
type ValidationError struct {
	Key    string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Key, e.Reason)
}

func invalid(key, format string, args ...interface{}) error {
	return &ValidationError{Key: key, Reason: fmt.Sprintf(format, args...)}
}

// Load reads env files, the process environment and, when path is not empty,
// a config file of any format viper understands. Environment wins over the
// file.
func Load(path string) (*Config, error) {
	if err := loadEnvFiles(EnvFiles...); err != nil {
		return nil, err
	}

	v := viper.New()
	defaults := map[string]interface{}{
		"network":              DefaultNetwork,
		"rpc_url":              DefaultRPCURL,
		"private_key":          "",
		"total_recipients":     DefaultTotalRecipients,
		"tokens_per_recipient": DefaultTokensPerRecipient,
		"recipients_per_tx":    DefaultRecipientsPerTx,
		"compute_unit_limit":   DefaultComputeUnitLimit,
		"compute_unit_price":   DefaultComputeUnitPrice,
		"batch_delay_ms":       DefaultBatchDelayMs,
		"confirm_timeout_ms":   DefaultConfirmTimeoutMs,
		"rent_per_account":     DefaultRentPerAccount,
		"base_fee":             DefaultBaseFee,
		"priority_fee":         DefaultPriorityFee,
		"sol_buffer":           DefaultSOLBuffer,
		"debug":                false,
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	return fromViper(v)
}

func loadEnvFiles(files ...string) error {
	for _, file := range files {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", file, err)
		}
	}
	return nil
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Network:          strings.TrimSpace(v.GetString("network")),
		RPCURL:           strings.TrimSpace(v.GetString("rpc_url")),
		PrivateKey:       strings.TrimSpace(v.GetString("private_key")),
		TotalRecipients:  v.GetInt("total_recipients"),
		RecipientsPerTx:  v.GetInt("recipients_per_tx"),
		ComputeUnitLimit: v.GetUint32("compute_unit_limit"),
		ComputeUnitPrice: v.GetUint64("compute_unit_price"),
		BatchDelay:       time.Duration(v.GetInt64("batch_delay_ms")) * time.Millisecond,
		ConfirmTimeout:   time.Duration(v.GetInt64("confirm_timeout_ms")) * time.Millisecond,
		Debug:            v.GetBool("debug"),
	}
	if cfg.PrivateKey == privateKeyPlaceholder {
		cfg.PrivateKey = ""
	}

	decimals := []struct {
		key string
		dst *decimal.Decimal
	}{
		{"tokens_per_recipient", &cfg.TokensPerRecipient},
		{"rent_per_account", &cfg.RentPerAccount},
		{"base_fee", &cfg.BaseFee},
		{"priority_fee", &cfg.PriorityFee},
		{"sol_buffer", &cfg.SOLBuffer},
	}
	for _, d := range decimals {
		value, err := decimal.NewFromString(strings.TrimSpace(v.GetString(d.key)))
		if err != nil {
			return nil, invalid(d.key, "not a number")
		}
		*d.dst = value
	}

	return cfg, nil
}

// HasPrivateKey reports whether a payer key was configured.
func (c *Config) HasPrivateKey() bool {
	return c.PrivateKey != ""
}

// IsDevnet reports whether test wallets and test tokens may be created.
func (c *Config) IsDevnet() bool {
	return c.Network == NetworkDevnet
}

// Validate checks every setting. An unattended run additionally requires a
// private key outside devnet.
func (c *Config) Validate(unattended bool) error {
	switch c.Network {
	case NetworkDevnet, NetworkTestnet, NetworkMainnet:
	default:
		return invalid("network", "%q is not one of %s, %s, %s", c.Network, NetworkDevnet, NetworkTestnet, NetworkMainnet)
	}
	if err := validateURL(c.RPCURL); err != nil {
		return invalid("rpc_url", "%v", err)
	}
	if unattended && !c.HasPrivateKey() && !c.IsDevnet() {
		return invalid("private_key", "required on %s", c.Network)
	}

	if c.TotalRecipients <= 0 {
		return invalid("total_recipients", "must be positive")
	}
	if !c.TokensPerRecipient.IsPositive() {
		return invalid("tokens_per_recipient", "must be positive")
	}
	if c.RecipientsPerTx <= 0 {
		return invalid("recipients_per_tx", "must be positive")
	}
	if c.ComputeUnitLimit == 0 {
		return invalid("compute_unit_limit", "must be positive")
	}
	if c.BatchDelay < 0 {
		return invalid("batch_delay_ms", "must not be negative")
	}
	if c.ConfirmTimeout <= 0 {
		return invalid("confirm_timeout_ms", "must be positive")
	}
	for key, fee := range map[string]decimal.Decimal{
		"rent_per_account": c.RentPerAccount,
		"base_fee":         c.BaseFee,
		"priority_fee":     c.PriorityFee,
	} {
		if fee.IsNegative() {
			return invalid(key, "must not be negative")
		}
	}
	if c.SOLBuffer.LessThan(decimal.NewFromInt(1)) {
		return invalid("sol_buffer", "must be at least 1")
	}
	return nil
}

func validateURL(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return errors.New("invalid URL format")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return errors.New("invalid URL protocol")
	}
	if parsed.Host == "" {
		return errors.New("missing host")
	}
	return nil
}

// Warnings lists settings that are accepted but worth a second look.
func (c *Config) Warnings() []string {
	var warnings []string
	if !c.HasPrivateKey() {
		if c.IsDevnet() {
			warnings = append(warnings, "PRIVATE_KEY not set, a devnet test wallet will be created")
		} else {
			warnings = append(warnings, fmt.Sprintf("PRIVATE_KEY not set, nothing can be sent on %s", c.Network))
		}
	}
	if c.RecipientsPerTx > MaxRecipientsPerTx {
		warnings = append(warnings, fmt.Sprintf("RECIPIENTS_PER_TX > %d may exceed the transaction size limit", MaxRecipientsPerTx))
	}
	if c.TotalRecipients > largeRunWarning {
		warnings = append(warnings, fmt.Sprintf("TOTAL_RECIPIENTS > %d makes for a long and expensive run", largeRunWarning))
	}
	return warnings
}

// ExplorerURL returns a block explorer link for a transaction signature.
func (c *Config) ExplorerURL(signature string) string {
	link := "https://solscan.io/tx/" + signature
	if c.Network != NetworkMainnet {
		link += "?cluster=" + c.Network
	}
	return link
}
