package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/jhoicas/cajas-api/internal/application/dto"
)

type rebuildCmd struct {
	env    *Env
	dryRun bool
}

func (*rebuildCmd) Name() string     { return "rebuild" }
func (*rebuildCmd) Synopsis() string { return "recalcula los saldos desde el historial de movimientos" }
func (*rebuildCmd) Usage() string {
	return `cajasctl rebuild [-dry-run]

  Recalcula el saldo de cada par cliente / tipo de caja plegando su historial
  y corrige los que difieran.
`
}

func (c *rebuildCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.dryRun, "dry-run", false, "Solo informar, sin corregir")
}

func (c *rebuildCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	run := c.env.rebuild().Rebuild
	if c.dryRun {
		run = c.env.rebuild().Verify
	}
	res, err := run(ctx)
	if err != nil {
		return c.env.fail(err)
	}
	printDrift(c.env, res)
	return subcommands.ExitSuccess
}

type verifyCmd struct {
	env *Env
}

func (*verifyCmd) Name() string     { return "verify" }
func (*verifyCmd) Synopsis() string { return "verifica que los saldos coincidan con el historial" }
func (*verifyCmd) Usage() string {
	return `cajasctl verify

  Sale con código 1 si algún saldo guardado difiere del recalculado.
`
}

func (*verifyCmd) SetFlags(*flag.FlagSet) {}

func (c *verifyCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	res, err := c.env.rebuild().Verify(ctx)
	if err != nil {
		return c.env.fail(err)
	}
	printDrift(c.env, res)
	if len(res.Corregidos) > 0 {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func printDrift(env *Env, res *dto.RebuildResponse) {
	fmt.Fprintf(env.Out, "pares: %d  movimientos: %d  desviados: %d\n", res.Pares, res.Movimientos, len(res.Corregidos))
	for _, d := range res.Corregidos {
		fmt.Fprintf(env.Out, "  %s / %s: guardado %d, calculado %d\n", d.ClienteID, d.TipoCajaID, d.Guardado, d.Calculado)
	}
}
