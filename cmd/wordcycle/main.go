package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"codeberg.org/snonux/wordcycle/internal/cli"
	"codeberg.org/snonux/wordcycle/internal/gui"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, flags)
	}

	// Execute command
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, flags *cli.Flags) error {
	cli.ApplyConfig(cmd, flags)

	logger, err := cli.NewLogger(flags.Verbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	if flags.HasAction() {
		return cli.RunActions(flags, logger, os.Stdout)
	}

	// No headless action requested - launch GUI mode by default
	logger.Debug("starting gui", zap.String("dataDir", flags.DataDir))
	app, err := gui.New(&gui.Config{
		DataDir:  flags.DataDir,
		WordFile: flags.WordFile,
		DeckName: flags.DeckName,
		Logger:   logger,
	})
	if err != nil {
		return err
	}
	app.Run()
	return nil
}
