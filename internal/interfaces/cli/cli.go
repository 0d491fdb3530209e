// Package cli implementa los subcomandos de administración de cajasctl.
package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"

	"github.com/jhoicas/cajas-api/internal/application/catalog"
	"github.com/jhoicas/cajas-api/internal/application/ledger"
	"github.com/jhoicas/cajas-api/internal/application/ports"
	"github.com/jhoicas/cajas-api/internal/infrastructure/storage"
	"github.com/jhoicas/cajas-api/pkg/ids"
)

// Env dependencias compartidas por los subcomandos.
type Env struct {
	Backend   *storage.Backend
	Generator ports.BalanceReportGenerator
	IDs       ids.Generator
	Clock     func() time.Time
	Log       zerolog.Logger
	Out       io.Writer
	Err       io.Writer
}

func (e *Env) crateTypes() *catalog.CrateTypeUseCase {
	return catalog.NewCrateTypeUseCase(e.Backend.Repos.CrateTypes, e.Backend.Runner, e.IDs, e.Clock)
}

func (e *Env) queries() *ledger.QueryUseCase {
	return ledger.NewQueryUseCase(e.Backend.Repos)
}

func (e *Env) rebuild() *ledger.RebuildUseCase {
	return ledger.NewRebuildUseCase(e.Backend.Runner, e.Log)
}

func (e *Env) report() *ledger.ReportUseCase {
	return ledger.NewReportUseCase(e.Backend.Repos, e.Generator, e.Clock)
}

func (e *Env) fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(e.Err, "Error: %v\n", err)
	return subcommands.ExitFailure
}

// Register registra los subcomandos en el commander.
func Register(c *subcommands.Commander, env *Env) {
	c.Register(&seedCmd{env: env}, "catálogo")

	c.Register(&balancesCmd{env: env}, "saldos")
	c.Register(&reportCmd{env: env}, "saldos")
	c.Register(&rebuildCmd{env: env}, "saldos")
	c.Register(&verifyCmd{env: env}, "saldos")
}

// printMarkdown escribe md tal cual (raw) o renderizado para terminal.
func (e *Env) printMarkdown(md string, raw bool) {
	if !raw {
		r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
		if err == nil {
			if out, err := r.Render(md); err == nil {
				md = out
			}
		}
	}
	fmt.Fprint(e.Out, md)
}
