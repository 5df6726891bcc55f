package cmd

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hireloop/matchwise/internal/discovery"
	"github.com/hireloop/matchwise/internal/logger"
)

var matchCmd = &cobra.Command{
	Use:   "match <candidate-id> <job-id>",
	Short: "Score a single candidate/job pair",
	Args:  cobra.ExactArgs(2),
	Run: func(_ *cobra.Command, args []string) {
		match(args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)
}

func match(candidateID, jobID string) {
	ctx := context.Background()
	app, cleanup := mustApplication(ctx)
	defer cleanup()

	outcome, err := app.service.SingleMatch(ctx, candidateID, jobID)

	var notEligible *discovery.NotEligibleError
	if errors.As(err, &notEligible) {
		app.logger.Info("pair is not eligible",
			append(logger.PairFields(candidateID, jobID),
				zap.Strings("reasons", notEligible.Reasons),
				zap.Float64("shortfall", notEligible.Shortfall),
			)...,
		)
		return
	}
	if err != nil {
		app.logger.Fatal("matching pair", zap.Error(err))
	}

	if status, ok, err := app.service.ApplicationStatus(ctx, candidateID, jobID); err != nil {
		app.logger.Warn("looking up application", zap.Error(err))
	} else if ok {
		app.logger.Info("candidate already applied", zap.String("status", status))
	}

	printPage(app.logger, outcome)
}
