package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newGraphQLCmd() *cobra.Command {
	var (
		file      string
		variables []string
	)

	cmd := &cobra.Command{
		Use:     "graphql [query]",
		Aliases: []string{"gql"},
		Short:   "Run a GraphQL query against the Admin API",
		Long: "Run a GraphQL query. The document comes from the argument,\n" +
			"from --file, or from stdin when the argument is \"-\".",
		Example: strings.TrimSpace(`
  # Inline query
  shopctl graphql '{ shop { name } }'

  # Query from a file with variables
  shopctl graphql --file query.graphql --var id=632910392

  # Query from stdin
  echo '{ shop { name } }' | shopctl graphql -
`),
		Args: cobra.MaximumNArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			document, err := readGraphQLDocument(cmd, args, file)
			if err != nil {
				return err
			}

			vars, err := parseVariables(variables)
			if err != nil {
				return err
			}

			client, err := getClient()
			if err != nil {
				return err
			}

			resp, err := client.GraphQL().Query(cmd.Context(), document, vars, requestTries())
			if err != nil {
				return err
			}
			if err := resp.Err(); err != nil {
				return err
			}

			var data any
			if len(resp.Data) > 0 {
				if err := json.Unmarshal(resp.Data, &data); err != nil {
					return fmt.Errorf("decoding response data: %w", err)
				}
			}
			return printJSON(cmd, data)
		}),
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Read the query from a file")
	cmd.Flags().StringArrayVar(&variables, "var", nil, "Query variable as key=value (JSON parsed)")

	return cmd
}

func readGraphQLDocument(cmd *cobra.Command, args []string, file string) (string, error) {
	if file != "" {
		if len(args) > 0 {
			return "", fmt.Errorf("cannot combine --file with a query argument")
		}
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading query file: %w", err)
		}
		return string(data), nil
	}

	if len(args) == 0 {
		return "", fmt.Errorf("a query argument, --file, or \"-\" for stdin is required")
	}

	if args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("reading query from stdin: %w", err)
		}
		return string(data), nil
	}

	return args[0], nil
}

// parseVariables turns key=value pairs into GraphQL variables. Values
// that parse as JSON keep their type; anything else is a string.
func parseVariables(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	vars := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid variable %q, expected key=value", pair)
		}
		var value any
		if err := json.Unmarshal([]byte(raw), &value); err != nil {
			value = raw
		}
		vars[key] = value
	}
	return vars, nil
}
