package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type reportCmd struct {
	env    *Env
	output string
}

func (*reportCmd) Name() string     { return "reporte" }
func (*reportCmd) Synopsis() string { return "genera el reporte PDF de saldos por cliente" }
func (*reportCmd) Usage() string {
	return `cajasctl reporte [-o <archivo.pdf>]
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "saldos-cajas.pdf", "Archivo de salida")
}

func (c *reportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	pdf, err := c.env.report().Generate(ctx)
	if err != nil {
		return c.env.fail(err)
	}
	if err := os.WriteFile(c.output, pdf, 0o644); err != nil {
		return c.env.fail(err)
	}
	fmt.Fprintf(c.env.Out, "reporte escrito en %s (%d bytes)\n", c.output, len(pdf))
	return subcommands.ExitSuccess
}
