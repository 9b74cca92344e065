// Package ingest implements the CLI command that loads usage data from a
// CSV file into the store.
package ingest

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"netwatch/internal/application/ingestion/usecases"
	"netwatch/internal/infrastructure/config"
	"netwatch/internal/infrastructure/database"
	"netwatch/internal/infrastructure/repository"
	"netwatch/internal/shared/logger"
)

var (
	env       string
	csvPath   string
	batchSize int
	noClear   bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Load usage sessions from a CSV file",
		Long:  `Parse a CSV file of usage sessions and load it into the database in batches.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().StringVar(&csvPath, "csv", "", "Path to the CSV file (required)")
	cmd.Flags().IntVar(&batchSize, "batch-size", 0, "Rows per insert batch (default from config)")
	cmd.Flags().BoolVar(&noClear, "no-clear", false, "Append to existing data instead of replacing it")
	cmd.MarkFlagRequired("csv")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log := logger.NewLogger()

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	file, err := os.Open(csvPath)
	if err != nil {
		return fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	if batchSize == 0 {
		batchSize = cfg.Ingest.BatchSize
	}

	sessionRepo := repository.NewSessionRepository(database.Get(), log)
	ingestUC := usecases.NewIngestCSVUseCase(sessionRepo, log)

	result, err := ingestUC.Execute(cmd.Context(), usecases.IngestCSVCommand{
		Reader:        file,
		ClearExisting: !noClear,
		BatchSize:     batchSize,
	})
	if err != nil {
		log.Errorw("ingestion failed", "csv", csvPath, "error", err)
		return fmt.Errorf("ingestion failed: %w", err)
	}

	fmt.Printf("Ingested %d records from %s\n", result.RecordsIngested, csvPath)
	return nil
}
