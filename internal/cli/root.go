package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vvka-141/msgcat/internal/db"
	"github.com/vvka-141/msgcat/internal/files/filesystem"
	"github.com/vvka-141/msgcat/internal/logging"
	"github.com/vvka-141/msgcat/internal/services"
	"github.com/vvka-141/msgcat/pkg/msgcat"
)

// usageText is printed when the pipeline is not given exactly three paths.
const usageText = `Please provide the filepaths of the messages and categories datasets as the first and second argument respectively, as well as the filepath of the database to save the cleaned data to as the third argument. 

Example: msgcat disaster_messages.csv disaster_categories.csv DisasterResponse.db`

type rootFlagValues struct {
	table      string
	coerce     string
	batchSize  int
	configPath string
	verify     bool
}

func newRootCmd() *cobra.Command {
	var flags rootFlagValues

	cmd := &cobra.Command{
		Use:   "msgcat <messages.csv> <categories.csv> <database>",
		Short: "Clean disaster messages and store them with one column per category",
		Long: `msgcat loads a messages CSV and a categories CSV, joins them on id,
splits the encoded category string into one column per category, drops
duplicate rows and replaces a table in a SQLite file or PostgreSQL database.

The database argument is a SQLite file path (optionally sqlite:///path)
or a postgres:// connection URI.

Configuration precedence: defaults < msgcat.yaml < environment
(MSGCAT_TABLE, MSGCAT_COERCE, also read from .env) < flags.

Exit Codes:
  0  - Success (or usage hint printed)
  1  - General error
  2  - CLI usage error (invalid flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration
  11 - Input file missing or malformed
  12 - Category decoding failed
  13 - Destination store could not be written`,
		Version:           versionLine(),
		Args:              cobra.ArbitraryArgs,
		ValidArgsFunction: completePipelineArgs,
		SilenceUsage:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd, args, &flags)
		},
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output on stderr")
	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "",
		"Path to a YAML config file (default: ./"+configFileHint+" if present)")

	cmd.Flags().StringVar(&flags.table, "table", msgcat.DefaultTableName,
		"Destination table name\n"+
			"Precedence: --table > $MSGCAT_TABLE > msgcat.yaml > "+msgcat.DefaultTableName)
	cmd.Flags().StringVar(&flags.coerce, "coerce", string(msgcat.CoerceLast),
		"Category columns converted to numbers: last|all\n"+
			"Precedence: --coerce > $MSGCAT_COERCE > msgcat.yaml > last")
	cmd.Flags().IntVar(&flags.batchSize, "batch-size", msgcat.DefaultBatchSize,
		"Rows per insert batch (SQLite only)")
	cmd.Flags().BoolVar(&flags.verify, "verify", false,
		"Read the table back after writing and compare fingerprints")

	_ = cmd.RegisterFlagCompletionFunc("coerce", completeCoercionModes)
	// -v is taken by --verbose, so cobra registers only the long --version flag
	cmd.SetVersionTemplate("{{.Version}}\n")

	cmd.AddCommand(newCategoriesCmd())
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// Execute runs the root command
func Execute() error {
	return newRootCmd().Execute()
}

func runPipeline(cmd *cobra.Command, args []string, flags *rootFlagValues) error {
	if !hasPipelineArgs(args) {
		fmt.Fprintln(cmd.OutOrStdout(), usageText)
		return nil
	}
	verbose := getVerboseFlag(cmd)

	config, err := buildPipelineConfig(cmd, args, flags, verbose)
	if err != nil {
		return err
	}

	logger := logging.NewWriterLogger(cmd.ErrOrStderr(), verbose)
	pipeline := services.NewPipeline(filesystem.NewOSFileSystem(), db.Open, logger, cmd.OutOrStdout())

	ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return pipeline.Run(ctx, config)
}

// buildPipelineConfig resolves defaults, the config file, the environment and
// flags, in that order, into a PipelineConfig.
func buildPipelineConfig(cmd *cobra.Command, args []string, flags *rootFlagValues, verbose bool) (msgcat.PipelineConfig, error) {
	_ = godotenv.Load()

	config, err := resolveBaseConfig(flags.configPath)
	if err != nil {
		return msgcat.PipelineConfig{}, err
	}

	if cmd.Flags().Changed("table") {
		config.TableName = flags.table
	}
	if cmd.Flags().Changed("coerce") {
		mode, err := msgcat.ParseCoercionMode(flags.coerce)
		if err != nil {
			return msgcat.PipelineConfig{}, err
		}
		config.Decode.Coercion = mode
	}
	if cmd.Flags().Changed("batch-size") {
		config.BatchSize = flags.batchSize
	}

	config.MessagesPath = args[0]
	config.CategoriesPath = args[1]
	config.Destination = args[2]
	config.Verify = flags.verify
	config.Verbose = verbose
	return config, nil
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
