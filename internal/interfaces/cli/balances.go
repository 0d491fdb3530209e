package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/google/subcommands"

	"github.com/jhoicas/cajas-api/internal/application/dto"
)

type balancesCmd struct {
	env      *Env
	clientID string
	raw      bool
}

func (*balancesCmd) Name() string     { return "saldos" }
func (*balancesCmd) Synopsis() string { return "muestra los saldos de cajas por cliente" }
func (*balancesCmd) Usage() string {
	return `cajasctl saldos [-cliente <id>] [-raw]

  Lista los saldos en préstamo como tabla markdown.
`
}

func (c *balancesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.clientID, "cliente", "", "Solo los saldos de este cliente")
	f.BoolVar(&c.raw, "raw", false, "Imprimir markdown sin renderizar")
}

func (c *balancesCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var (
		list []dto.BalanceResponse
		err  error
	)
	if c.clientID != "" {
		list, err = c.env.queries().ListClientBalances(ctx, c.clientID)
	} else {
		list, err = c.env.queries().ListBalances(ctx)
	}
	if err != nil {
		return c.env.fail(err)
	}
	c.env.printMarkdown(balancesMarkdown(list), c.raw)
	return subcommands.ExitSuccess
}

func balancesMarkdown(list []dto.BalanceResponse) string {
	var b strings.Builder
	b.WriteString("| Cliente | Tipo | Cantidad |\n|---|---|---:|\n")
	total := 0
	for _, s := range list {
		if s.Cantidad == 0 {
			continue
		}
		fmt.Fprintf(&b, "| %s | %s | %d |\n", s.ClienteNombre, s.TipoCajaCodigo, s.Cantidad)
		total += s.Cantidad
	}
	fmt.Fprintf(&b, "| **Total** | | **%d** |\n", total)
	return b.String()
}
