package main

import (
	"fmt"
	"os"
	"time"

	"customers-api/internal/config"
	"customers-api/internal/db"
	"customers-api/internal/importer"
	"customers-api/internal/logging"
	customerrepo "customers-api/internal/repository/customer"
	customersvc "customers-api/internal/service/customer"
	"github.com/spf13/cobra"
)

func main() {
	var (
		filePath    string
		skipInvalid bool
	)

	rootCmd := &cobra.Command{
		Use:   "importer",
		Short: "Import customers from a CSV file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.FromEnv()
			logger := logging.New(cfg.LogLevel, cfg.LogFormat)
			ctx := cmd.Context()

			pool, err := db.Connect(ctx, cfg.DBConnString, cfg.DBConnectTimeout, logger)
			if err != nil {
				return fmt.Errorf("connect db: %w", err)
			}
			defer pool.Close()

			f, err := os.Open(filePath)
			if err != nil {
				return fmt.Errorf("open file: %w", err)
			}
			defer f.Close()

			svc := customersvc.New(customerrepo.NewPostgres(pool, logger), logger)
			imp := importer.NewCSVImporter(f, svc, logger)
			imp.SkipInvalid = skipInvalid

			start := time.Now()
			count, err := imp.Run(ctx)
			if err != nil {
				return fmt.Errorf("import failed after %d customers: %w", count, err)
			}

			fmt.Printf("Imported %d customers in %s\n", count, time.Since(start).Truncate(time.Millisecond))
			return nil
		},
	}
	rootCmd.Flags().StringVarP(&filePath, "file", "f", "", "Path to customer CSV file")
	rootCmd.Flags().BoolVar(&skipInvalid, "skip-invalid", false, "Skip rows with invalid customer data")
	_ = rootCmd.MarkFlagRequired("file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
