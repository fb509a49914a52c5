package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"crossval/adapters/excel"
	"crossval/adapters/models"
	"crossval/adapters/scoring"
	"crossval/domain/dataset"
	"crossval/domain/fold"
	"crossval/internal/report"
	"crossval/internal/runner"
	"crossval/internal/testkit"
	"crossval/ports"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "crossval",
		Short: "K-fold cross-validation for pluggable models and metrics",
	}

	rootCmd.AddCommand(
		newRunCmd(),
		newPartitionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRunCmd() *cobra.Command {
	var file string
	var hasHeader bool
	var folds int
	var seed int64
	var model string
	var metric string
	var parallelism int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run k-fold cross-validation over a CSV/XLSX dataset",
		Long: `Run k-fold cross-validation. The last column of the data file is the
label, every other column is a feature. Without --file a synthetic
regression dataset is used.

Example: crossval run --file data.csv --folds 5 --seed 42 --model least_squares --metric mse`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := loadDataset(file, hasHeader, seed)
			if err != nil {
				return err
			}

			factory, err := resolveModel(model)
			if err != nil {
				return err
			}
			scorer, err := scoring.ByName(metric)
			if err != nil {
				return err
			}

			partitioner := fold.NewPartitioner()
			if cmd.Flags().Changed("seed") {
				partitioner = fold.NewPartitionerWithSeed(seed)
			}

			run := runner.New(partitioner, runner.WithParallelism(parallelism))
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
			defer cancel()

			rep, err := run.Run(ctx, ds, folds, factory, scorer)
			if err != nil {
				return err
			}

			if asJSON {
				out, err := json.MarshalIndent(map[string]interface{}{
					"report":  rep,
					"summary": report.Summarize(rep),
				}, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(out))
				return nil
			}

			fmt.Print(report.RenderMarkdown(rep))
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "CSV or XLSX dataset (last column = label)")
	cmd.Flags().BoolVar(&hasHeader, "header", true, "data file has a header row")
	cmd.Flags().IntVar(&folds, "folds", 5, "number of folds (k >= 2)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "shuffle seed for reproducible folds")
	cmd.Flags().StringVar(&model, "model", "least_squares", "model: least_squares or majority_class")
	cmd.Flags().StringVar(&metric, "metric", "mse", "metric: accuracy, mse, rmse or r2")
	cmd.Flags().IntVar(&parallelism, "parallelism", 1, "max folds evaluated concurrently")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit JSON instead of markdown")

	return cmd
}

func newPartitionCmd() *cobra.Command {
	var seed int64

	cmd := &cobra.Command{
		Use:   "partition [n] [k]",
		Short: "Preview the fold assignment for n samples and k folds",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var n, k int
			if _, err := fmt.Sscanf(args[0], "%d", &n); err != nil {
				return fmt.Errorf("invalid n %q", args[0])
			}
			if _, err := fmt.Sscanf(args[1], "%d", &k); err != nil {
				return fmt.Errorf("invalid k %q", args[1])
			}

			partitioner := fold.NewPartitioner()
			if cmd.Flags().Changed("seed") {
				partitioner = fold.NewPartitionerWithSeed(seed)
			}

			assignment, err := partitioner.Partition(n, k)
			if err != nil {
				return err
			}

			fmt.Printf("n=%d k=%d seed=%d\n", assignment.N, assignment.K, assignment.Seed)
			for _, f := range assignment.Folds {
				fmt.Printf("fold %d: size=%d test=%v\n", f.Index, f.Size, assignment.Test(f.Index))
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", 0, "shuffle seed")
	return cmd
}

func loadDataset(file string, hasHeader bool, seed int64) (dataset.Dataset, error) {
	if file != "" {
		return excel.NewDataReader(file, hasHeader).ReadDataset()
	}
	// Demo fallback: y = 3x + 2 with light noise
	return testkit.SyntheticRegression(200, 3.0, 2.0, 0.5, seed), nil
}

func resolveModel(name string) (ports.ModelFactory, error) {
	switch name {
	case "least_squares":
		return models.LeastSquaresFactory(), nil
	case "majority_class":
		return models.MajorityFactory(), nil
	default:
		return nil, fmt.Errorf("unknown model %q (want least_squares or majority_class)", name)
	}
}
