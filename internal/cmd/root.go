package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/shopctl/shopctl/internal/api"
	"github.com/shopctl/shopctl/internal/debug"
	"github.com/shopctl/shopctl/internal/validation"
)

// rootFlags holds global CLI flags
type rootFlags struct {
	Output       string
	Debug        bool
	Quiet        bool
	NoInput      bool
	Yes          bool
	JSON         bool
	AllowPrivate bool
	JQ           string
	Compact      bool
	Timeout      time.Duration
	Retries      int
	RetryWait    time.Duration

	RetriesSet   bool
	RetryWaitSet bool
}

// flags holds the global command flags. This is package-level mutable state
// that MUST be reset at the start of every Execute() call. Tests depend on
// this reset to get clean state; any code that reads flags outside of a
// command's RunE is reading stale data from the previous Execute() call.
var flags = rootFlags{
	Output:  defaultOutput(),
	Timeout: api.DefaultTimeout,
}

func defaultOutput() string {
	value := strings.TrimSpace(os.Getenv("SHOPCTL_OUTPUT"))
	if value != "" {
		return value
	}
	return "text"
}

func parseBoolEnv(key string) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return false
	}
	switch strings.ToLower(value) {
	case "1", "true", "yes", "y", "on":
		return true
	default:
		return false
	}
}

// loadShopctlEnv loads environment variables from ~/.shopctl/.env if the file
// exists. Variables already set in the environment are not overwritten, so
// explicit exports always take precedence.
func loadShopctlEnv() {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	path := filepath.Join(home, ".shopctl", ".env")
	if _, err := os.Stat(path); err != nil {
		return
	}
	_ = godotenv.Load(path)
}

// Execute runs the root command
func Execute(ctx context.Context, args []string) error {
	// Auto-load credentials from ~/.shopctl/.env when present. This runs
	// before the flag-default reset so that SHOPCTL_OUTPUT and other
	// env-driven defaults pick up the values.
	loadShopctlEnv()

	// Reset flags to defaults for each execution. This is critical for test
	// isolation; see the invariant comment on the flags declaration above.
	flags = rootFlags{
		Output:       defaultOutput(),
		AllowPrivate: parseBoolEnv("SHOPCTL_ALLOW_PRIVATE"),
		Timeout:      api.DefaultTimeout,
	}

	root := &cobra.Command{
		Use:           "shopctl",
		Short:         "CLI for the Shopify Admin API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			// -y/--yes implies non-interactive mode and should satisfy
			// confirmation requirements.
			if flags.Yes {
				flags.NoInput = true
			}

			if flags.JSON {
				if cmd.Flags().Changed("output") && flags.Output != "json" {
					return fmt.Errorf("--json conflicts with --output %s", flags.Output)
				}
				flags.Output = "json"
			}
			if flags.Output != "text" && flags.Output != "json" {
				return fmt.Errorf("invalid --output %q: expected text or json", flags.Output)
			}
			if flags.JQ != "" && flags.Output != "json" {
				if cmd.Flags().Changed("output") {
					return fmt.Errorf("--jq requires --output json (or --json)")
				}
				flags.Output = "json"
			}

			allowPrivate := parseBoolEnv("SHOPCTL_ALLOW_PRIVATE") || flags.AllowPrivate
			validation.SetAllowPrivate(allowPrivate)
			if allowPrivate && !flags.Quiet {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Warning: allowing private/localhost URLs (use only with trusted targets).")
			}

			// Set up debug logging
			debug.ConfigureLogger(flags.Debug)
			ctx = debug.Attach(ctx, flags.Debug)

			flags.RetriesSet = cmd.Flags().Changed("retries")
			flags.RetryWaitSet = cmd.Flags().Changed("retry-wait")
			if flags.RetriesSet && flags.Retries < 1 {
				return fmt.Errorf("--retries must be >= 1")
			}
			if flags.RetryWaitSet && flags.RetryWait < 0 {
				return fmt.Errorf("--retry-wait must be >= 0")
			}

			cmd.SetContext(ctx)
			return nil
		},
	}

	root.SetContext(ctx)
	root.SetArgs(args)

	root.PersistentFlags().StringVarP(&flags.Output, "output", "o", flags.Output, "Output format: text|json (env SHOPCTL_OUTPUT)")
	root.PersistentFlags().BoolVarP(&flags.JSON, "json", "j", false, "Shorthand for --output json")
	root.PersistentFlags().StringVar(&flags.JQ, "jq", "", "JQ expression to filter JSON output")
	root.PersistentFlags().BoolVar(&flags.Compact, "compact-json", false, "Compact JSON output (no indentation)")
	root.PersistentFlags().BoolVar(&flags.Debug, "debug", false, "Enable debug logging")
	root.PersistentFlags().BoolVarP(&flags.Quiet, "quiet", "Q", false, "Suppress non-essential output")
	root.PersistentFlags().BoolVar(&flags.NoInput, "no-input", false, "Disable interactive prompts")
	root.PersistentFlags().BoolVarP(&flags.Yes, "yes", "y", false, "Skip confirmation prompts")
	root.PersistentFlags().BoolVar(&flags.AllowPrivate, "allow-private", flags.AllowPrivate, "Allow private/localhost hosts (unsafe)")
	root.PersistentFlags().DurationVar(&flags.Timeout, "timeout", flags.Timeout, "HTTP request timeout (e.g., 30s, 2m)")
	root.PersistentFlags().IntVar(&flags.Retries, "retries", 0, "Attempt budget for rate-limited and 500 responses (overrides per-command defaults)")
	root.PersistentFlags().DurationVar(&flags.RetryWait, "retry-wait", 0, "Fixed delay between retry attempts (overrides env SHOPCTL_RETRY_WAIT)")

	root.AddCommand(newAuthCmd())
	root.AddCommand(newProductsCmd())
	root.AddCommand(newOrdersCmd())
	root.AddCommand(newVariantsCmd())
	root.AddCommand(newMetafieldsCmd())
	root.AddCommand(newGraphQLCmd())
	root.AddCommand(newAPICmd())
	root.AddCommand(newOpenCmd())
	root.AddCommand(newSchemaCmd())
	root.AddCommand(newCacheCmd())
	root.AddCommand(newVersionCmd())

	if err := root.Execute(); err != nil {
		if !errors.Is(err, errAlreadyHandled) {
			_, _ = fmt.Fprintln(root.ErrOrStderr(), err)
		}
		return err
	}
	return nil
}
