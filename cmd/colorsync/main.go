// Package main provides the CLI entry point for colorsync.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/ukaji3/colorsync-go/pkg/colorsync"
	"github.com/ukaji3/colorsync-go/pkg/colorsync/store"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	driver      string
	dsn         string
	onFileError string
	verbose     bool
)

func main() {
	if err := loadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "colorsync: %v\n", err)
		os.Exit(1)
	}

	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "colorsync [dir]",
		Short: "Annotate product descriptions with colors from Excel sheets",
		Long: `colorsync scans every *.xls* workbook in a directory, extracts item name,
SKU and color from each sheet, and prepends "<p>Color: ...</p>" to the
matching product description when the sheet has exactly one color.`,
		Args:         cobra.MaximumNArgs(1),
		RunE:         run,
		SilenceUsage: true,
	}

	rootCmd.Flags().StringVar(&driver, "driver", envOrDefault("COLORSYNC_DRIVER", "sqlserver"), "Database driver: sqlserver, postgres, or sqlite")
	rootCmd.Flags().StringVar(&dsn, "dsn", os.Getenv("COLORSYNC_DSN"), "Database connection string (default: $COLORSYNC_DSN)")
	rootCmd.Flags().StringVar(&onFileError, "on-file-error", string(colorsync.FilePolicySkip), "What to do with unreadable workbooks: skip or abort")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	return rootCmd
}

func run(cmd *cobra.Command, args []string) error {
	dir := envOrDefault("COLORSYNC_DIR", "")
	if len(args) == 1 {
		dir = args[0]
	}
	if dir == "" {
		return fmt.Errorf("no input directory (pass [dir] or set COLORSYNC_DIR)")
	}
	if dsn == "" {
		return fmt.Errorf("no database connection string (pass --dsn or set COLORSYNC_DSN)")
	}

	// Parse policy
	var policy colorsync.FilePolicy
	switch onFileError {
	case "skip":
		policy = colorsync.FilePolicySkip
	case "abort":
		policy = colorsync.FilePolicyAbort
	default:
		return fmt.Errorf("invalid on-file-error: %s (must be skip or abort)", onFileError)
	}

	logger, err := newLogger(verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	logger = logger.With(zap.String("run_id", uuid.NewString()))

	products, err := store.Open(driver, dsn)
	if err != nil {
		logger.Error("Database unavailable", zap.String("driver", driver), zap.Error(err))
		return err
	}
	defer products.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	walker := colorsync.NewWalker(dir, products, colorsync.Options{
		OnFileError: policy,
		Pattern:     colorsync.DefaultPattern,
		Logger:      logger,
	})

	summary, err := walker.Run(ctx)
	logger.Info("Run finished",
		zap.String("dir", dir),
		zap.Int("files", summary.Files),
		zap.Int("files_failed", summary.FilesFailed),
		zap.Int("sheets", summary.Sheets),
		zap.Int("updated", summary.Updated),
		zap.Int("updated_on_retry", summary.UpdatedOnRetry),
		zap.Int("multiple_colors", summary.MultipleColors),
		zap.Int("no_color", summary.NoColor))
	if err != nil {
		logger.Error("Run aborted", zap.Error(err))
		return err
	}

	return nil
}

func newLogger(debug bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Encoding = "console"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if debug {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return config.Build()
}

// loadEnv loads .env (or the given files) into the environment. A missing
// file is fine; the environment may already be set.
func loadEnv(filenames ...string) error {
	if err := godotenv.Load(filenames...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
