package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shopctl/shopctl/internal/api"
	"github.com/shopctl/shopctl/internal/validation"
)

func newAPICmd() *cobra.Command {
	var (
		method         string
		fields         []string
		rawFields      []string
		inputFile      string
		jsonBody       string
		query          []string
		silent         bool
		includeHeaders bool
	)

	cmd := &cobra.Command{
		Use:   "api <endpoint>",
		Short: "Make raw Admin API requests",
		Long: `Make raw requests against any Admin API endpoint.

The endpoint path is relative to the versioned API base path:
  /admin/api/{version}<endpoint>

For example, "/products/123.json" becomes:
  /admin/api/2024-07/products/123.json`,
		Example: strings.TrimSpace(`
  # GET request (default)
  shopctl api /products/632910392.json

  # POST with fields
  shopctl api /products.json -X POST -F 'product={"title":"Classic Tee"}'

  # Inline JSON body
  shopctl api /products/632910392.json -X PUT -d '{"product":{"status":"draft"}}'

  # Body from file or stdin
  shopctl api /products.json -X POST -i body.json
  echo '{"product":{"title":"Tee"}}' | shopctl api /products.json -X POST -i -

  # Query parameters
  shopctl api /products.json -q limit=5 -q status=active

  # Show response headers
  shopctl api /shop.json --include
`),
		Args: cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			endpoint := args[0]

			validMethods := map[string]bool{
				"GET": true, "POST": true, "PUT": true, "DELETE": true,
			}
			method = strings.ToUpper(method)
			if !validMethods[method] {
				return fmt.Errorf("invalid HTTP method %q: must be one of GET, POST, PUT, DELETE", method)
			}

			if jsonBody != "" && inputFile != "" {
				return fmt.Errorf("cannot use both --body and --input flags")
			}
			if jsonBody != "" {
				if err := validation.ValidateJSONPayload(jsonBody); err != nil {
					return err
				}
			}

			body, err := buildRequestBody(cmd, fields, rawFields, inputFile, jsonBody)
			if err != nil {
				return err
			}

			queryParams, err := parseQueryParams(query)
			if err != nil {
				return err
			}

			client, err := getClient()
			if err != nil {
				return err
			}

			req := &api.Request{
				Method: method,
				Path:   endpoint,
				Query:  queryParams,
				Tries:  requestTries(),
			}
			if body != nil {
				req.Body = body
				req.BodyType = api.BodyJSON
			}

			resp, err := client.Execute(cmd.Context(), req)
			if err != nil {
				return err
			}

			if silent {
				return nil
			}

			if isJSON() {
				return printJSON(cmd, rawJSONPayload(resp, includeHeaders))
			}

			out := cmd.OutOrStdout()
			if includeHeaders {
				_, _ = fmt.Fprintf(out, "HTTP %d\n", resp.Code)
				keys := make([]string, 0, len(resp.Headers))
				for k := range resp.Headers {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				for _, k := range keys {
					for _, v := range resp.Headers[k] {
						_, _ = fmt.Fprintf(out, "%s: %s\n", k, v)
					}
				}
				_, _ = fmt.Fprintln(out)
			}

			if len(resp.Body) > 0 {
				pretty, err := json.MarshalIndent(resp.Body, "", "  ")
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(out, string(pretty))
			}
			return nil
		}),
	}

	cmd.Flags().StringVarP(&method, "method", "X", "GET", "HTTP method (GET, POST, PUT, DELETE)")
	cmd.Flags().StringArrayVarP(&fields, "field", "f", nil, "Request body field as key=value (string)")
	cmd.Flags().StringArrayVarP(&rawFields, "raw-field", "F", nil, "Request body field as key=value (JSON parsed)")
	cmd.Flags().StringVarP(&inputFile, "input", "i", "", "Read request body from file (use - for stdin)")
	cmd.Flags().StringVarP(&jsonBody, "body", "d", "", "Request body as inline JSON string")
	cmd.Flags().StringArrayVarP(&query, "query", "q", nil, "Query parameter as key=value")
	cmd.Flags().BoolVarP(&silent, "silent", "s", false, "Suppress output")
	cmd.Flags().BoolVar(&includeHeaders, "include", false, "Include response status and headers in output")

	return cmd
}

func rawJSONPayload(resp *api.Response, includeHeaders bool) any {
	if !includeHeaders {
		return resp.Body
	}
	payload := map[string]any{
		"status":  resp.Code,
		"headers": resp.Headers,
		"body":    resp.Body,
	}
	if resp.Limit != nil {
		payload["call_limit"] = fmt.Sprintf("%d/%d", resp.Limit.Used, resp.Limit.Bucket)
	}
	return payload
}

// buildRequestBody merges inline JSON, file input, and field flags into
// one body map. Fields override body keys; raw fields are JSON typed.
func buildRequestBody(cmd *cobra.Command, fields, rawFields []string, inputFile, jsonBody string) (map[string]any, error) {
	body := make(map[string]any)

	if jsonBody != "" {
		if err := json.Unmarshal([]byte(jsonBody), &body); err != nil {
			return nil, fmt.Errorf("failed to parse --body JSON: %w", err)
		}
	}

	if inputFile != "" {
		var inputData []byte
		var err error

		if inputFile == "-" {
			inputData, err = io.ReadAll(cmd.InOrStdin())
		} else {
			inputData, err = os.ReadFile(inputFile)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read input: %w", err)
		}

		if err := json.Unmarshal(inputData, &body); err != nil {
			return nil, fmt.Errorf("failed to parse input JSON: %w", err)
		}
	}

	for _, field := range fields {
		key, value, err := parseField(field)
		if err != nil {
			return nil, err
		}
		body[key] = value
	}

	for _, field := range rawFields {
		key, value, err := parseRawField(field)
		if err != nil {
			return nil, err
		}
		body[key] = value
	}

	if len(body) == 0 {
		return nil, nil
	}
	return body, nil
}

func parseQueryParams(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	params := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid query parameter %q: must be key=value", pair)
		}
		params[key] = value
	}
	return params, nil
}

// parseField parses a key=value field where value stays a string.
func parseField(field string) (string, string, error) {
	key, value, ok := strings.Cut(field, "=")
	if !ok {
		return "", "", fmt.Errorf("invalid field format %q: must be key=value", field)
	}
	return key, value, nil
}

// parseRawField parses a key=value field where value is JSON.
func parseRawField(field string) (string, any, error) {
	key, valueStr, ok := strings.Cut(field, "=")
	if !ok {
		return "", nil, fmt.Errorf("invalid raw field format %q: must be key=value", field)
	}

	var value any
	if err := json.Unmarshal([]byte(valueStr), &value); err != nil {
		return "", nil, fmt.Errorf("invalid JSON in raw field %q: %w", key, err)
	}
	return key, value, nil
}
