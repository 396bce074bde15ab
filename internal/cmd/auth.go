package cmd

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/shopctl/shopctl/internal/config"
	"github.com/shopctl/shopctl/internal/validation"
)

// newAuthCmd returns the auth command with subcommands
func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage authentication credentials",
		Long:  "Configure and manage Admin API credentials stored securely in your OS keychain.",
	}

	cmd.AddCommand(newAuthLoginCmd())
	cmd.AddCommand(newAuthStatusCmd())
	cmd.AddCommand(newAuthLogoutCmd())

	return cmd
}

func newAuthLoginCmd() *cobra.Command {
	var (
		shopDomain string
		token      string
		apiVersion string
		host       string
		profile    string
		envFile    string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Save Admin API credentials",
		Long: strings.TrimSpace(`
Save Admin API credentials securely to your OS keychain.

You'll need:
- Shop domain: your *.myshopify.com domain (e.g. example.myshopify.com)
- Access token: an Admin API access token from a custom app

Optional:
- Profile: save multiple shops and switch between them
- API version: pin a specific Admin API version
`),
		Example: strings.TrimSpace(`
  # Login with flags
  shopctl auth login --shop example.myshopify.com --token shpat_xxx

  # Save to a named profile with a pinned API version
  shopctl auth login --shop example.myshopify.com --token shpat_xxx --profile staging --api-version 2024-07

  # Load credentials from a .env file
  shopctl auth login --env-file .env
`),
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			if envFile != "" {
				envVars, err := godotenv.Read(envFile)
				if err != nil {
					return fmt.Errorf("failed to read --env-file %q: %w", envFile, err)
				}
				if shopDomain == "" {
					shopDomain = strings.TrimSpace(envVars["SHOPCTL_SHOP"])
				}
				if token == "" {
					token = strings.TrimSpace(envVars["SHOPCTL_TOKEN"])
				}
				if apiVersion == "" {
					apiVersion = strings.TrimSpace(envVars["SHOPCTL_API_VERSION"])
				}
				if host == "" {
					host = strings.TrimSpace(envVars["SHOPCTL_HOST"])
				}
				if !cmd.Flags().Changed("profile") {
					if envProfile := strings.TrimSpace(envVars["SHOPCTL_PROFILE"]); envProfile != "" {
						profile = envProfile
					}
				}
			}

			if shopDomain == "" {
				return fmt.Errorf("--shop is required")
			}
			if token == "" {
				return fmt.Errorf("--token is required")
			}

			if err := validation.ValidateShopDomain(shopDomain); err != nil {
				return err
			}
			if host != "" {
				hostURL := host
				if !strings.Contains(hostURL, "://") {
					hostURL = "https://" + hostURL
				}
				if err := validation.ValidateShopURL(hostURL); err != nil {
					return fmt.Errorf("invalid --host: %w", err)
				}
			}

			shop := config.Shop{
				Domain:       shopDomain,
				AccessToken:  token,
				APIVersion:   apiVersion,
				HostOverride: host,
			}

			if err := config.SaveProfile(profile, shop); err != nil {
				return fmt.Errorf("failed to save credentials: %w", err)
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(out, "Credentials saved successfully!")
			_, _ = fmt.Fprintf(out, "  Shop: %s\n", shopDomain)
			if apiVersion != "" {
				_, _ = fmt.Fprintf(out, "  API version: %s\n", apiVersion)
			}
			if profile != "" && profile != "default" {
				_, _ = fmt.Fprintf(out, "  Profile: %s\n", profile)
			}
			return nil
		}),
	}

	cmd.Flags().StringVar(&shopDomain, "shop", "", "Shop domain (e.g. example.myshopify.com)")
	cmd.Flags().StringVar(&token, "token", "", "Admin API access token")
	cmd.Flags().StringVar(&apiVersion, "api-version", "", "Admin API version to pin (e.g. 2024-07)")
	cmd.Flags().StringVar(&host, "host", "", "Host override for proxied setups (optional)")
	cmd.Flags().StringVar(&profile, "profile", "default", "Profile name to save credentials under")
	cmd.Flags().StringVar(&envFile, "env-file", "", "Load SHOPCTL_* values from a .env file")

	return cmd
}

func newAuthStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show authentication status",
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			shop, err := config.LoadShop()
			if err != nil {
				return err
			}

			if isJSON() {
				return printJSON(cmd, map[string]any{
					"shop":        shop.Domain,
					"api_version": shop.APIVersion,
					"configured":  true,
				})
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "Logged in to %s\n", shop.Domain)
			if shop.APIVersion != "" {
				_, _ = fmt.Fprintf(out, "  API version: %s\n", shop.APIVersion)
			}
			if shop.HostOverride != "" {
				_, _ = fmt.Fprintf(out, "  Host override: %s\n", shop.HostOverride)
			}
			return nil
		}),
	}
}

func newAuthLogoutCmd() *cobra.Command {
	var profile string

	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Remove stored credentials",
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			if err := config.DeleteProfile(profile); err != nil {
				return fmt.Errorf("failed to remove credentials: %w", err)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		}),
	}

	cmd.Flags().StringVar(&profile, "profile", "default", "Profile to remove")
	return cmd
}
