package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v3"

	configcmd "github.com/bingdu748/gitblog/internal/commands/config"
	"github.com/bingdu748/gitblog/internal/commands/generate"
	"github.com/bingdu748/gitblog/internal/commands/registry"
	cfg "github.com/bingdu748/gitblog/internal/config"
	"github.com/bingdu748/gitblog/internal/i18n"
	"github.com/bingdu748/gitblog/internal/logger"
	"github.com/bingdu748/gitblog/internal/version"
)

func main() {
	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Error starting the cli: %v", err)
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		os.Exit(1)
	}
}

func initializeApp() (*cli.Command, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("could not determine the user home directory: %w", err)
	}

	cfgApp, err := cfg.LoadConfig(homeDir)
	if err != nil {
		return nil, err
	}

	translations, err := i18n.NewTranslations(cfgApp.Language, "")
	if err != nil {
		return nil, fmt.Errorf("could not load translations: %w", err)
	}

	registerCommand := registry.NewRegistry(cfgApp, translations)

	if err := registerCommand.Register("generate", generate.NewCommandFactory()); err != nil {
		return nil, fmt.Errorf("could not register the 'generate' command: %w", err)
	}

	if err := registerCommand.Register("config", configcmd.NewCommandFactory()); err != nil {
		return nil, fmt.Errorf("could not register the 'config' command: %w", err)
	}

	commands := registerCommand.CreateCommands()

	helpCommand := &cli.Command{
		Name:    "help",
		Aliases: []string{"h"},
		Usage:   translations.GetMessage("help_command_usage", 0, nil),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
	}
	commands = append(commands, helpCommand)

	return &cli.Command{
		Name:        "gitblog",
		Usage:       translations.GetMessage("app_usage", 0, nil),
		Version:     version.Version,
		Description: translations.GetMessage("app_description", 0, nil),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "enable info logging",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logger.Initialize(cmd.Bool("debug"), cmd.Bool("verbose"))
			return ctx, nil
		},
		Commands:              commands,
		EnableShellCompletion: true,
	}, nil
}
