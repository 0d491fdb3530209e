package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type seedCmd struct {
	env *Env
}

func (*seedCmd) Name() string     { return "seed" }
func (*seedCmd) Synopsis() string { return "crea los tipos de caja por defecto que falten" }
func (*seedCmd) Usage() string {
	return `cajasctl seed

  Crea NEG, VER y ORU si no existen. Es idempotente.
`
}

func (*seedCmd) SetFlags(*flag.FlagSet) {}

func (c *seedCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	seeded, err := c.env.crateTypes().Seed(ctx)
	if err != nil {
		return c.env.fail(err)
	}
	for _, t := range seeded {
		fmt.Fprintf(c.env.Out, "%s\t%s\t%s\n", t.Codigo, t.Nombre, t.ID)
	}
	return subcommands.ExitSuccess
}
