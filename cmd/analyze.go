package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sells-group/voicelead/internal/model"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <url>",
	Short: "Run a single website analysis from the terminal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Pipeline.RequestTimeout())
		defer cancel()

		orch := buildOrchestrator(cfg)
		summary, err := orch.Run(ctx, model.AnalysisRequest{URL: args[0]})
		if err != nil {
			return err
		}

		fmt.Println(summary)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}
