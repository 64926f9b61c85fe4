package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

type swaggerDoc struct {
	BasePath    string                                       `json:"basePath"`
	Paths       map[string]map[string]map[string]interface{} `json:"paths"`
	Definitions map[string]interface{}                       `json:"definitions"`
}

func TestSwaggerDoc_DescribesRoutes(t *testing.T) {
	raw, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc swaggerDoc
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	assert.Equal(t, "/api", doc.BasePath)
	assert.NotEmpty(t, doc.Paths)

	for path, method := range map[string]string{
		"/auth/login":             "post",
		"/lots/barcode/{barcode}": "get",
		"/vials/move":             "post",
		"/storage/units/{id}":     "patch",
		"/dashboard/summary":      "get",
		"/audit":                  "get",
	} {
		ops, ok := doc.Paths[path]
		require.True(t, ok, path)
		assert.Contains(t, ops, method, path)
	}

	for _, name := range []string{"domain.APIError", "domain.MoveVialsRequest", "domain.DashboardSummaryDTO"} {
		assert.Contains(t, doc.Definitions, name)
	}
}
