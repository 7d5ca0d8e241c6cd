package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded training runs",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		listHistory(cmd)
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntP("limit", "l", 10, "maximum number of runs to show, 0 for all")
}

func listHistory(cmd *cobra.Command) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	config, logger := setup()
	defer logger.Sync()

	if config.History == nil || config.History.Path == "" {
		logger.Fatal("training history is disabled", zap.String("hint", "set history.path in the configuration file"))
	}

	db, err := history.Open(ctx, config.History.Path)
	if err != nil {
		logger.Fatal("opening the training history", zap.Error(err))
	}
	defer db.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := db.List(ctx, limit)
	if err != nil {
		logger.Fatal("listing training runs", zap.Error(err))
	}

	if len(runs) == 0 {
		logger.Info("no training runs recorded yet")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TRAINED AT\tRUN ID\tACCURACY\tMACRO F1\tROWS\tLABELS\tDATASET")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%.2f%%\t%.3f\t%d/%d\t%s\t%s\n",
			run.TrainedAt.Local().Format("2006-01-02 15:04"),
			run.RunID,
			run.Accuracy,
			run.MacroF1,
			run.TrainRows,
			run.TestRows,
			strings.Join(run.Labels, ", "),
			run.Dataset,
		)
	}
	if err := w.Flush(); err != nil {
		logger.Fatal("printing training runs", zap.Error(err))
	}
}
