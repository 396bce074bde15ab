package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shopctl/shopctl/internal/api"
	"github.com/shopctl/shopctl/internal/cache"
	"github.com/shopctl/shopctl/internal/filter"
	"github.com/shopctl/shopctl/internal/resolve"
	"github.com/shopctl/shopctl/internal/validation"
)

// parseID parses a positional resource ID argument.
func parseID(s, fieldName string) (int64, error) {
	return validation.ParsePositiveID(s, fieldName)
}

// getClient creates an API client from stored credentials
func getClient() (*api.Client, error) {
	return newClientFactory().client()
}

func isJSON() bool {
	return flags.Output == "json"
}

// newTabWriter creates a tabwriter for text output
func newTabWriter(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
}

// printJSON outputs data as JSON with optional --jq filtering
func printJSON(cmd *cobra.Command, v any) error {
	out := cmd.OutOrStdout()

	if flags.JQ != "" {
		// Round-trip through JSON so gojq sees plain maps and slices.
		raw, err := json.Marshal(v)
		if err != nil {
			return err
		}
		var data any
		if err := json.Unmarshal(raw, &data); err != nil {
			return err
		}
		v, err = filter.Apply(data, flags.JQ)
		if err != nil {
			return err
		}
	}

	var encoded []byte
	var err error
	if flags.Compact {
		encoded, err = json.Marshal(v)
	} else {
		encoded, err = json.MarshalIndent(v, "", "  ")
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(encoded))
	return err
}

// requestTries returns the per-request attempt budget from --retries,
// or 0 to let the engine default apply.
func requestTries() int {
	if flags.RetriesSet {
		return flags.Retries
	}
	return 0
}

// confirmAction prompts for confirmation unless --yes was given. In
// non-interactive mode without --yes the action is refused.
func confirmAction(cmd *cobra.Command, prompt string) error {
	if flags.Yes {
		return nil
	}
	if flags.NoInput {
		return fmt.Errorf("confirmation required: re-run with --yes to proceed")
	}
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "%s [y/N]: ", prompt)
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read confirmation: %w", err)
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	if answer != "y" && answer != "yes" {
		return fmt.Errorf("aborted")
	}
	return nil
}

// resolveProductID finds a product ID by fuzzy-matching the query against
// product titles. The title list is cached per shop to avoid refetching on
// every resolution.
func resolveProductID(ctx context.Context, client *api.Client, query string) (int64, error) {
	var items []resolve.Named

	dir, err := cache.DefaultDir()
	var store cache.Store
	if err == nil {
		store = cache.NewStore(dir, "product_titles", client.ShopDomain)
	}
	if store == nil || !store.Get(ctx, &items) {
		products, _, err := client.Products().List(ctx, api.ListProductsParams{Limit: 250})
		if err != nil {
			return 0, err
		}
		items = make([]resolve.Named, 0, len(products))
		for _, p := range products {
			items = append(items, resolve.Named{ID: p.ID, Title: p.Title})
		}
		if store != nil {
			store.Put(ctx, items)
		}
	}

	return resolve.FuzzyMatch(query, items)
}

// productIDFromArgs resolves a positional product reference: a numeric ID is
// used as-is, anything else is fuzzy-matched against product titles.
func productIDFromArgs(ctx context.Context, client *api.Client, ref string) (int64, error) {
	if id, err := parseID(ref, "product ID"); err == nil {
		return id, nil
	}
	return resolveProductID(ctx, client, ref)
}

// errAlreadyHandled is a sentinel error indicating the error was already
// printed to stderr. Commands using RunE return this to signal Cobra that an
// error occurred (for exit code) without Cobra printing it again (since
// SilenceErrors is true on the root command).
var errAlreadyHandled = errors.New("error already handled")

type handledError struct {
	err      error
	exitCode int
}

func (e *handledError) Error() string {
	return e.err.Error()
}

func (e *handledError) Unwrap() error {
	return errAlreadyHandled
}

func (e *handledError) ExitCode() int {
	return e.exitCode
}

// RunE wraps a command function with enhanced error handling
func RunE(fn func(cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := fn(cmd, args)
		if err != nil {
			var handled *handledError
			if errors.As(err, &handled) {
				return err
			}
			if isJSON() {
				_ = printJSONErr(cmd, api.Structure(err))
			} else {
				_, _ = fmt.Fprint(cmd.ErrOrStderr(), formatError(err))
			}
			return &handledError{err: err, exitCode: ExitCode(err)}
		}
		return nil
	}
}

// printJSONErr writes a JSON value to stderr.
func printJSONErr(cmd *cobra.Command, v any) error {
	encoded, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.ErrOrStderr(), string(encoded))
	return err
}

// formatError renders an error for text output, appending the suggestion
// for classified API errors.
func formatError(err error) string {
	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "Error: %s\n", err.Error())

	structured := api.Structure(err)
	if structured != nil && structured.Suggestion != "" {
		_, _ = fmt.Fprintf(&b, "%s\n", structured.Suggestion)
	}
	return b.String()
}
