package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"hrdash/adapters/excel"
	"hrdash/domain/employee"
	"hrdash/internal"
	"hrdash/internal/analysis"
	"hrdash/internal/testkit"

	"github.com/joho/godotenv"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func main() {
	loadDotEnv()

	rootCmd := &cobra.Command{
		Use:   "hrdash-cli",
		Short: "HR attrition dashboard CLI for computing views and generating datasets",
	}

	rootCmd.AddCommand(
		newViewsCmd(),
		newViewCmd(),
		newGenerateCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newViewsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "views",
		Short: "List the available dashboard views",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, view := range analysis.NewService(nil, nil).Views() {
				fmt.Fprintln(cmd.OutOrStdout(), view.Name)
			}
			return nil
		},
	}
}

// loadDotEnv reads ./.env when present. Stdout carries view JSON, so a
// missing file is not reported.
func loadDotEnv() {
	_ = godotenv.Load()
}

func newViewCmd() *cobra.Command {
	var (
		dataPath string
		criteria employee.Criteria
	)

	cmd := &cobra.Command{
		Use:   "view <name>",
		Short: "Compute one dashboard view from a CSV or XLSX file and print it as JSON",
		Long: `Compute one dashboard view exactly as GET /api/<name> would.

Example: hrdash-cli view attrition-by-department --data data.csv --gender Female`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := internal.NewLoggerTo(cmd.ErrOrStderr(), internal.ParseLogLevel(os.Getenv("LOG_LEVEL")))
			source := excel.NewFileSource(excel.DefaultReaderConfig(dataPath), logger)
			service := analysis.NewService(source, logger)

			view, ok := service.View(args[0])
			if !ok {
				names := lo.Map(service.Views(), func(v analysis.View, _ int) string { return v.Name })
				return fmt.Errorf("unknown view %q (available: %s)", args[0], strings.Join(names, ", "))
			}

			payload, err := view.Run(cmd.Context(), criteria)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(payload)
		},
	}

	cmd.Flags().StringVar(&dataPath, "data", "data.csv", "Dataset file (.csv, .xlsx)")
	cmd.Flags().StringVar(&criteria.Gender, "gender", "", "Filter by exact Gender")
	cmd.Flags().StringVar(&criteria.JobRole, "job-role", "", "Filter by exact JobRole")
	cmd.Flags().StringVar(&criteria.Education, "education", "", "Filter by Education code (1-5)")
	cmd.Flags().StringVar(&criteria.Department, "department", "", "Filter by exact Department")

	return cmd
}

func newGenerateCmd() *cobra.Command {
	config := testkit.DefaultEmployeeConfig()
	var out string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a synthetic employee dataset as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if config.Rows < 0 {
				return fmt.Errorf("--rows must not be negative")
			}
			rows := testkit.NewEmployeeGenerator(config).Generate()

			if out == "" || out == "-" {
				return testkit.WriteCSV(cmd.OutOrStdout(), testkit.Headers, rows)
			}
			if err := testkit.WriteCSVFile(out, rows); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d employees to %s\n", len(rows), out)
			return nil
		},
	}

	cmd.Flags().IntVar(&config.Rows, "rows", config.Rows, "Number of employees")
	cmd.Flags().Int64Var(&config.Seed, "seed", config.Seed, "Random seed for deterministic output")
	cmd.Flags().Float64Var(&config.AttritionBase, "attrition", config.AttritionBase, "Baseline attrition probability")
	cmd.Flags().StringVar(&out, "out", "data.csv", "Output file, or - for stdout")

	return cmd
}
