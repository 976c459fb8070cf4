package main

import (
	"context"
	"fmt"
	"github.com/spf13/cobra"
	"go.etcd.io/bbolt"
	"go.uber.org/zap"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	os.Exit(HandleExitError(os.Stderr, NewRootCommand().ExecuteContext(context.Background())))
}

func NewRootCommand() *cobra.Command {
	rootCommand := &cobra.Command{
		Use:           "sheetcalc",
		Short:         "Spreadsheet formula engine with HTTP API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}

	rootCommand.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run HTTP API (default)",
			Args:  cobra.NoArgs,
			RunE:  runServe,
		},
		newEvalCommand(),
	)

	return rootCommand
}

func runServe(cmd *cobra.Command, _ []string) error {
	config, err := LoadConfig()
	if err != nil {
		return err
	}

	logger, err := NewLogger(config.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return RunApp(ctx, config, logger)
}

func newEvalCommand() *cobra.Command {
	var sheetId string

	command := &cobra.Command{
		Use:   "eval <formula>",
		Short: "Evaluate a formula against a sheet without saving it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := LoadConfig()
			if err != nil {
				return err
			}

			db, err := bbolt.Open(config.DatabaseFilepath, 0600, &bbolt.Options{ReadOnly: true, Timeout: DatabaseOpenTimeout})
			if err != nil {
				return err
			}
			defer db.Close()

			canonicalizer := NewCanonicalizer()
			repository := NewSheetRepository(
				db, NewFormulaTokenizer(canonicalizer), canonicalizer, NewCellBinarySerializer(),
				NewFormulaEvaluatorFactory(), nil, nil, zap.NewNop(),
			)

			cell, err := repository.EvaluateFormula(sheetId, args[0])
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), cell.Display)
			return err
		},
	}

	command.Flags().StringVarP(&sheetId, "sheet", "s", "sheet1", "sheet to resolve cell references in")

	return command
}
