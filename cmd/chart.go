package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/hr-screener/internal/charts"
	"github.com/spigell/hr-screener/internal/render"
)

var chartCmd = &cobra.Command{
	Use:       "chart [line|bar|pie]",
	Short:     "Show the demo business charts",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: chartTypeNames(),
	Run: func(cmd *cobra.Command, args []string) {
		logger := newLogger()

		name := ""
		if len(args) == 1 {
			name = args[0]
		}

		if err := chart(cmd.Context(), cmd, name); err != nil {
			logger.Fatal("drawing a chart", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(chartCmd)
}

func chart(ctx context.Context, cmd *cobra.Command, name string) error {
	t, err := charts.ParseType(name)
	if err != nil {
		return err
	}

	c, err := charts.Build(t, charts.SampleData())
	if err != nil {
		return err
	}

	renderer, err := render.New(viper.GetString("screen.output"), cmd.OutOrStdout())
	if err != nil {
		return err
	}

	if err := renderer.RenderChart(ctx, c); err != nil {
		return fmt.Errorf("render %s chart: %w", t, err)
	}
	return nil
}

func chartTypeNames() []string {
	types := charts.Types()
	names := make([]string, 0, len(types))
	for _, t := range types {
		names = append(names, strings.ToLower(string(t)))
	}
	return names
}
