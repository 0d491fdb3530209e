package pdf

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/cajas-api/internal/application/ports"
)

func types(n int) []ports.ReportCrateType {
	out := make([]ports.ReportCrateType, n)
	for i := range out {
		id := fmt.Sprintf("t%d", i)
		out[i] = ports.ReportCrateType{ID: id, Code: id}
	}
	return out
}

func TestLayoutColumns_SumaDoce(t *testing.T) {
	for _, n := range []int{0, 1, 3, 7, 8, 9, 15} {
		l := layoutColumns(types(n))
		assert.Equal(t, 12, l.clientSize+len(l.types)+1, "n=%d", n)
		assert.GreaterOrEqual(t, l.clientSize, 3, "n=%d", n)

		total := 0
		for _, c := range l.types {
			total += len(c.ids)
		}
		assert.Equal(t, n, total, "todos los tipos quedan en alguna columna (n=%d)", n)
	}
}

func TestLayoutColumns_AgrupaEnOtros(t *testing.T) {
	l := layoutColumns(types(10))
	assert.Len(t, l.types, maxTypeColumns)
	last := l.types[len(l.types)-1]
	assert.Equal(t, "Otros", last.label)
	assert.Len(t, last.ids, 3)
	assert.Equal(t, 7, last.sum(map[string]int{"t7": 1, "t8": 2, "t9": 4, "t0": 100}))
}
