// Package graphql carries the transport plumbing for the GraphQL
// endpoint: schema construction plus a plain HTTP POST handler. The
// domain schema itself lives with the application code.
package graphql

import (
	"encoding/json"
	"net/http"

	"github.com/graphql-go/graphql"

	"github.com/ecotrackhq/ecotrack/pkg/response"
)

// NewSchema builds a query-only schema from a root object.
func NewSchema(query *graphql.Object) (graphql.Schema, error) {
	return graphql.NewSchema(graphql.SchemaConfig{
		Query: query,
	})
}

type request struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

// Handler serves POST requests for schema in the standard GraphQL JSON
// shape: {"query": ..., "variables": ...} in, {"data": ..., "errors":
// ...} out. Execution errors stay inside the GraphQL result; only an
// unreadable body turns into an HTTP error.
func Handler(schema graphql.Schema) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "invalid GraphQL request body")
			return
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			Context:        r.Context(),
		})

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result) //nolint:errcheck
	}
}
