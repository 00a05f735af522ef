package http_test

import (
	"testing"

	api "shipflow/internal/adapters/in/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOpenAPI(t *testing.T) {
	doc, err := api.LoadOpenAPI(t.Context())
	require.NoError(t, err)

	for path, methods := range map[string][]string{
		"/api/v1/admin/registrations": {"GET"},
		"/api/v1/batches":             {"GET", "POST"},
		"/api/v1/shipments/{id}":      {"GET", "PATCH", "DELETE"},
		"/api/v1/items/import":        {"POST"},
	} {
		item := doc.Paths.Find(path)
		require.NotNil(t, item, path)
		for _, method := range methods {
			op := item.GetOperation(method)
			require.NotNil(t, op, "%s %s", method, path)
			assert.NotEmpty(t, op.Responses.Map(), "%s %s", method, path)
		}
	}
}
