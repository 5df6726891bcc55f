package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/hireloop/matchwise/internal/domain"
	"github.com/hireloop/matchwise/internal/logger"
)

const (
	PromptNextPage = "Next page"
	PromptQuit     = "Quit"
)

var pagePrompt = promptui.Select{
	Label: "Continue?",
	Items: []string{PromptNextPage, PromptQuit},
}

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Discover matches for a candidate or a job",
}

var discoverJobsCmd = &cobra.Command{
	Use:   "jobs <candidate-id>",
	Short: "Rank active jobs for a candidate",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		discoverJobs(cmd, args[0])
	},
}

var discoverCandidatesCmd = &cobra.Command{
	Use:   "candidates <job-id>",
	Short: "Rank candidates for one of your jobs, applicants first",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		discoverCandidates(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(discoverCmd)
	discoverCmd.AddCommand(discoverJobsCmd)
	discoverCmd.AddCommand(discoverCandidatesCmd)

	discoverCmd.PersistentFlags().Int("page", 0, "zero-based page to fetch")
	discoverCmd.PersistentFlags().Int("size", 0, "page size (default from config)")
	discoverCmd.PersistentFlags().Bool("no-input", false, "print a single page and exit instead of paging interactively")

	discoverCandidatesCmd.Flags().String("recruiter", "", "acting recruiter id (required)")
	discoverCandidatesCmd.Flags().String("org", "", "acting recruiter's organization id")
	if err := discoverCandidatesCmd.MarkFlagRequired("recruiter"); err != nil {
		log.Fatalf("marking recruiter flag required: %v", err)
	}
}

func discoverJobs(cmd *cobra.Command, candidateID string) {
	ctx := context.Background()
	app, cleanup := mustApplication(ctx)
	defer cleanup()

	page, size, interactive := pagingFlags(cmd, app.logger)

	for {
		result, err := app.service.DiscoverJobsForCandidate(ctx, candidateID, page, size)
		if err != nil {
			app.logger.Fatal("discovering jobs", zap.String(logger.FieldSubject, candidateID), zap.Error(err))
		}

		printPage(app.logger, result)

		if !interactive || page >= result.TotalPages-1 {
			return
		}
		if !nextPage(app.logger) {
			return
		}
		page++
	}
}

func discoverCandidates(cmd *cobra.Command, jobID string) {
	ctx := context.Background()
	app, cleanup := mustApplication(ctx)
	defer cleanup()

	actor := domain.Actor{
		ID:             cmd.Flag("recruiter").Value.String(),
		Role:           domain.RoleRecruiter,
		OrganizationID: cmd.Flag("org").Value.String(),
	}

	page, size, interactive := pagingFlags(cmd, app.logger)

	for {
		result, err := app.service.DiscoverCandidatesForJob(ctx, actor, jobID, page, size)
		if err != nil {
			app.logger.Fatal("discovering candidates", zap.String(logger.FieldTarget, jobID), zap.Error(err))
		}

		printPage(app.logger, result)

		if !interactive || page >= result.TotalPages-1 {
			return
		}
		if !nextPage(app.logger) {
			return
		}
		page++
	}
}

// mustApplication builds the logger, loads the config and wires the
// application, exiting on any failure.
func mustApplication(ctx context.Context) (*application, func()) {
	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		zlog.Fatal("getting a config", zap.Error(err))
	}

	app, err := newApplication(ctx, config, zlog)
	if err != nil {
		zlog.Fatal("wiring the application", zap.Error(err))
	}

	return app, app.Close
}

func pagingFlags(cmd *cobra.Command, zlog *zap.Logger) (page, size int, interactive bool) {
	page, err := cmd.Flags().GetInt("page")
	if err != nil {
		zlog.Fatal("reading page flag", zap.Error(err))
	}
	size, err = cmd.Flags().GetInt("size")
	if err != nil {
		zlog.Fatal("reading size flag", zap.Error(err))
	}
	noInput, err := cmd.Flags().GetBool("no-input")
	if err != nil {
		zlog.Fatal("reading no-input flag", zap.Error(err))
	}

	if size == 0 {
		if config, err := getConfig(); err == nil && config != nil && config.Matching != nil {
			size = config.Matching.PageSize
		}
	}

	return page, size, !noInput
}

func printPage(zlog *zap.Logger, page any) {
	pretty, err := json.MarshalIndent(page, "", "  ")
	if err != nil {
		zlog.Fatal("encoding page", zap.Error(err))
	}
	fmt.Println(string(pretty))
}

func nextPage(zlog *zap.Logger) bool {
	_, action, err := pagePrompt.Run()
	if err != nil {
		zlog.Fatal("exiting", zap.Error(err))
	}
	return action == PromptNextPage
}
