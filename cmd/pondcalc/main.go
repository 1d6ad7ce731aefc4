package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Meshed/PondDiggingCalculator-sub003/internal/cli"
	"github.com/Meshed/PondDiggingCalculator-sub003/internal/config"
	"github.com/Meshed/PondDiggingCalculator-sub003/pkg/log"
)

func main() {
	// a missing .env is fine; the environment and flags still apply
	_ = godotenv.Load()

	cfg, err := config.New()
	if err != nil {
		_, _ = os.Stderr.WriteString("reading configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger := log.InitLog(log.ParseLevel(cfg.Service.LogLevel))
	defer func() { _ = logger.Sync() }()

	undo := zap.ReplaceGlobals(logger)
	defer undo()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	command := NewPondCalcCommand()
	if err := command.ExecuteContext(ctx); err != nil {
		cancel()
		os.Exit(1)
	}
}

func NewPondCalcCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pondcalc [flags] [options]",
		Short: "pondcalc estimates pond excavation timelines from equipment and site dimensions.",
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
			os.Exit(1)
		},
	}
	cmd.AddCommand(cli.NewCmdEstimate())
	cmd.AddCommand(cli.NewCmdWatch())
	cmd.AddCommand(cli.NewCmdRules())
	cmd.AddCommand(cli.NewCmdVersion())

	return cmd
}
