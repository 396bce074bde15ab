package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// graphqlPath is the Admin GraphQL endpoint, relative to the versioned
// base path.
const graphqlPath = "/graphql.json"

// GraphQLResponse is the decoded body of a GraphQL reply. Transport and
// HTTP errors surface through the usual error family; GraphQL-level
// errors live in Errors with a 200 status.
type GraphQLResponse struct {
	Data       json.RawMessage  `json:"data"`
	Errors     []GraphQLError   `json:"errors,omitempty"`
	Extensions map[string]any   `json:"extensions,omitempty"`
	Envelope   *Response        `json:"-"`
}

// GraphQLError is one entry of a GraphQL errors array.
type GraphQLError struct {
	Message    string         `json:"message"`
	Path       []any          `json:"path,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

// Err folds the errors array into a single error, nil when empty.
func (g *GraphQLResponse) Err() error {
	if len(g.Errors) == 0 {
		return nil
	}
	if len(g.Errors) == 1 {
		return fmt.Errorf("graphql: %s", g.Errors[0].Message)
	}
	return fmt.Errorf("graphql: %s (and %d more errors)", g.Errors[0].Message, len(g.Errors)-1)
}

// Query executes a GraphQL document with optional variables. Documents
// without variables go over the wire as application/graphql; documents
// with variables are wrapped in the JSON {query, variables} form.
func (s GraphQLService) Query(ctx context.Context, document string, variables map[string]any, tries int) (*GraphQLResponse, error) {
	req := &Request{
		Method: http.MethodPost,
		Path:   graphqlPath,
		Tries:  tries,
	}
	if len(variables) == 0 {
		req.Body = document
		req.BodyType = BodyGraphQL
	} else {
		req.Body = map[string]any{"query": document, "variables": variables}
		req.BodyType = BodyJSON
	}

	resp, err := s.Execute(ctx, req)
	if err != nil {
		return nil, err
	}
	var result GraphQLResponse
	if err := resp.Decode(&result); err != nil {
		return nil, err
	}
	result.Envelope = resp
	return &result, nil
}

// QueryInto runs a query and decodes the data payload into result,
// folding GraphQL-level errors into the returned error.
func (s GraphQLService) QueryInto(ctx context.Context, document string, variables map[string]any, result any) error {
	resp, err := s.Query(ctx, document, variables, 1)
	if err != nil {
		return err
	}
	if err := resp.Err(); err != nil {
		return err
	}
	if result != nil && len(resp.Data) > 0 {
		if err := json.Unmarshal(resp.Data, result); err != nil {
			return fmt.Errorf("unexpected GraphQL response format: %w", err)
		}
	}
	return nil
}
