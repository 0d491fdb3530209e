package ledger

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/cajas-api/internal/application/ports"
	"github.com/jhoicas/cajas-api/internal/domain/repository"
)

// ReportUseCase arma el reporte de saldos por cliente y lo entrega al generador PDF.
type ReportUseCase struct {
	repos     repository.Repos
	generator ports.BalanceReportGenerator
	now       func() time.Time
}

// NewReportUseCase construye el caso de uso. clock nil = time.Now.
func NewReportUseCase(repos repository.Repos, generator ports.BalanceReportGenerator, clock func() time.Time) *ReportUseCase {
	if clock == nil {
		clock = time.Now
	}
	return &ReportUseCase{repos: repos, generator: generator, now: clock}
}

// Build arma los datos del reporte: una columna por tipo de caja activo o con saldo,
// una fila por cliente con saldo, ordenadas por nombre.
func (uc *ReportUseCase) Build(ctx context.Context) (*ports.BalanceReport, error) {
	idx, err := loadCatalog(ctx, uc.repos)
	if err != nil {
		return nil, err
	}
	balances, err := uc.repos.Balances.List(ctx)
	if err != nil {
		return nil, err
	}

	rows := map[string]*ports.ReportRow{}
	typeUsed := map[string]bool{}
	for _, b := range balances {
		if b.Quantity == 0 {
			continue
		}
		row := rows[b.ClientID]
		if row == nil {
			name := b.ClientID
			if c := idx.clients[b.ClientID]; c != nil {
				name = c.Name
			}
			row = &ports.ReportRow{ClientName: name, Quantities: map[string]int{}}
			rows[b.ClientID] = row
		}
		row.Quantities[b.CrateTypeID] += b.Quantity
		typeUsed[b.CrateTypeID] = true
	}

	report := &ports.BalanceReport{GeneratedAt: uc.now()}
	for _, t := range idx.typeOrder {
		if t.Active || typeUsed[t.ID] {
			report.CrateTypes = append(report.CrateTypes, ports.ReportCrateType{ID: t.ID, Code: t.Code, Name: t.Name})
		}
	}
	for _, row := range rows {
		report.Rows = append(report.Rows, *row)
	}
	sort.Slice(report.Rows, func(i, j int) bool { return report.Rows[i].ClientName < report.Rows[j].ClientName })
	return report, nil
}

// Generate devuelve el PDF del reporte de saldos.
func (uc *ReportUseCase) Generate(ctx context.Context) ([]byte, error) {
	report, err := uc.Build(ctx)
	if err != nil {
		return nil, err
	}
	return uc.generator.GenerateBalanceReport(report)
}
