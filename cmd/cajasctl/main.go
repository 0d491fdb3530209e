package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"

	infrapdf "github.com/jhoicas/cajas-api/internal/infrastructure/pdf"
	"github.com/jhoicas/cajas-api/internal/infrastructure/storage"
	"github.com/jhoicas/cajas-api/internal/interfaces/cli"
	"github.com/jhoicas/cajas-api/pkg/config"
	"github.com/jhoicas/cajas-api/pkg/ids"
	"github.com/jhoicas/cajas-api/pkg/logger"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "cajasctl", Output: os.Stderr})

	ctx := context.Background()
	backend, err := storage.Open(ctx, cfg, log.Component("storage"))
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}

	cli.Register(commander, &cli.Env{
		Backend:   backend,
		Generator: infrapdf.NewMarotoPDFGenerator(),
		IDs:       ids.UUIDv7{},
		Log:       log.Component("cli"),
		Out:       os.Stdout,
		Err:       os.Stderr,
	})

	flag.Parse()
	status := commander.Execute(ctx)
	backend.Close()
	os.Exit(int(status))
}
