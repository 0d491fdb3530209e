package ports

import (
	"context"
	"time"
)

// MovementEvent evento publicado después de confirmar un movimiento.
type MovementEvent struct {
	ID            string    `json:"id"`
	Type          string    `json:"tipo"`
	ClientID      string    `json:"cliente_id"`
	CrateTypeID   string    `json:"tipo_caja_id"`
	Quantity      int       `json:"cantidad"`
	BalanceBefore int       `json:"saldo_anterior"`
	BalanceAfter  int       `json:"saldo_nuevo"`
	Date          string    `json:"fecha"`
	Time          string    `json:"hora"`
	OccurredAt    time.Time `json:"registrado_en"`
}

// EventPublisher define el puerto de salida para notificar movimientos a otros sistemas.
// Se invoca fuera de la transacción: un error no revierte el movimiento.
type EventPublisher interface {
	PublishMovement(ctx context.Context, ev MovementEvent) error
	Close() error
}

// NoopPublisher descarta los eventos (sin brokers configurados).
type NoopPublisher struct{}

func (NoopPublisher) PublishMovement(context.Context, MovementEvent) error { return nil }
func (NoopPublisher) Close() error                                         { return nil }

// BalanceReportGenerator genera el reporte de saldos en PDF.
type BalanceReportGenerator interface {
	GenerateBalanceReport(report *BalanceReport) ([]byte, error)
}

// BalanceReport datos del reporte de saldos, ya unidos con nombres de cliente y tipo de caja.
type BalanceReport struct {
	GeneratedAt time.Time
	CrateTypes  []ReportCrateType
	Rows        []ReportRow
}

// ReportCrateType columna del reporte.
type ReportCrateType struct {
	ID   string
	Code string
	Name string
}

// ReportRow fila por cliente; Quantities indexado por ID de tipo de caja.
type ReportRow struct {
	ClientName string
	Quantities map[string]int
}

// Total suma de cajas del cliente.
func (r ReportRow) Total() int {
	n := 0
	for _, q := range r.Quantities {
		n += q
	}
	return n
}
