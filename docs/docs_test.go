package docs_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"

	"github.com/jhoicas/cajas-api/docs"
)

func TestReadDoc_DocumentaLasRutasDeLaAPI(t *testing.T) {
	raw, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc struct {
		Swagger string                    `json:"swagger"`
		Paths   map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	assert.Equal(t, "2.0", doc.Swagger)
	for _, path := range []string{
		"/api/tipos-cajas", "/api/clientes", "/api/movimientos", "/api/movimientos/resumen",
		"/api/saldos", "/api/saldos/reporte", "/api/saldos/recalcular", "/api/health",
	} {
		assert.Contains(t, doc.Paths, path)
	}
	assert.Contains(t, doc.Paths["/api/movimientos"], "post")
}
