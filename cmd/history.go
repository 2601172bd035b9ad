package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/hr-screener/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded screening runs and shortlisted candidates",
	Run: func(cmd *cobra.Command, _ []string) {
		showHistory(cmd)
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntP("limit", "n", 10, "how many recent runs to show, 0 shows all")
	historyCmd.Flags().BoolP("shortlisted", "s", false, "list shortlisted candidates instead of runs")
	historyCmd.Flags().StringSlice("forget", nil, "remove candidates from the shortlist so they can be shortlisted again")
}

func showHistory(cmd *cobra.Command) {
	logger := newLogger()

	path := strings.TrimSpace(viper.GetString("shortlist.history-file"))
	if path == "" {
		logger.Fatal("history file is not configured", zap.String("key", "shortlist.history-file"))
	}

	store, err := history.Open(path)
	if err != nil {
		logger.Fatal("opening history", zap.Error(err))
	}
	defer store.Close()

	out := cmd.OutOrStdout()

	forget, _ := cmd.Flags().GetStringSlice("forget")
	if len(forget) > 0 {
		if err := store.Forget(forget...); err != nil {
			logger.Fatal("forgetting candidates", zap.Error(err))
		}
		logger.Info("removed from shortlist", zap.Strings("candidates", forget))
		return
	}

	if shortlisted, _ := cmd.Flags().GetBool("shortlisted"); shortlisted {
		entries, err := store.Shortlisted()
		if err != nil {
			logger.Fatal("reading shortlist", zap.Error(err))
		}
		writeEntries(out, entries)
		return
	}

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.Runs(limit)
	if err != nil {
		logger.Fatal("reading runs", zap.Error(err))
	}
	writeRuns(out, runs)
}

func writeRuns(w io.Writer, runs []history.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "no runs recorded")
		return
	}

	table := newHistoryTable(w, []string{"ID", "At", "Keywords", "Source", "Top", "Shortlisted"})
	for _, run := range runs {
		top := ""
		if len(run.Ranking) > 0 {
			top = fmt.Sprintf("%s (%d%%)", run.Ranking[0], run.Scores[run.Ranking[0]])
		}
		table.Append([]string{
			strconv.FormatUint(run.ID, 10),
			run.At.Local().Format(time.DateTime),
			strings.Join(run.Keywords, ", "),
			run.Source,
			top,
			strings.Join(run.Shortlisted, ", "),
		})
	}
	table.Render()
}

func writeEntries(w io.Writer, entries []history.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "nobody shortlisted yet")
		return
	}

	table := newHistoryTable(w, []string{"Candidate", "Shortlisted at", "Query"})
	for _, e := range entries {
		table.Append([]string{e.Name, e.At.Local().Format(time.DateTime), e.Query})
	}
	table.Render()
}

func newHistoryTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	return table
}
