package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/vvka-141/msgcat/internal/categories"
	"github.com/vvka-141/msgcat/internal/checksum"
	"github.com/vvka-141/msgcat/internal/db"
	"github.com/vvka-141/msgcat/internal/files/filesystem"
	"github.com/vvka-141/msgcat/internal/files/reader"
	"github.com/vvka-141/msgcat/internal/frame"
	"github.com/vvka-141/msgcat/pkg/msgcat"
)

// runTagger is implemented by loggers that can prefix lines with a run id.
type runTagger interface {
	WithRunID(id string) msgcat.Logger
}

// Pipeline implements msgcat.Runner: load, clean and save one dataset pair.
// Thread-Safety: NOT safe for concurrent Run() calls on the same instance.
type Pipeline struct {
	reader    *reader.Reader
	openStore msgcat.StoreOpener
	logger    msgcat.Logger
	calc      checksum.Calculator
	out       io.Writer
}

// NewPipeline creates a Pipeline with all dependencies injected.
// Progress lines go to out; diagnostics go to logger.
// Panics on nil dependencies.
func NewPipeline(
	fsProvider filesystem.FileSystemProvider,
	openStore msgcat.StoreOpener,
	logger msgcat.Logger,
	out io.Writer,
) *Pipeline {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if openStore == nil {
		panic("openStore cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	if out == nil {
		panic("out cannot be nil")
	}

	return &Pipeline{
		reader:    reader.New(fsProvider),
		openStore: openStore,
		logger:    logger,
		calc:      checksum.New(),
		out:       out,
	}
}

// Run validates config and executes Load, Transform and Persist in order.
// The first failing step aborts the run; nothing is retried.
func (p *Pipeline) Run(ctx context.Context, config msgcat.PipelineConfig) error {
	if err := config.Validate(); err != nil {
		return err
	}

	runID := uuid.NewString()
	log := p.logger
	if t, ok := log.(runTagger); ok {
		log = t.WithRunID(runID)
	}
	log.Verbose("run %s started", runID)

	joined, err := p.load(ctx, config, log)
	if err != nil {
		return err
	}

	result, err := p.transform(ctx, config, joined, log)
	if err != nil {
		return err
	}

	if err := p.persist(ctx, config, result.Table, log); err != nil {
		return err
	}

	fmt.Fprintln(p.out, "Cleaned data saved to database!")
	log.Verbose("run %s finished", runID)
	return nil
}

// Load reads both CSV files and inner-joins them on config.IDColumn.
func (p *Pipeline) Load(ctx context.Context, config msgcat.PipelineConfig) (*msgcat.Table, error) {
	return p.load(ctx, config, p.logger)
}

func (p *Pipeline) load(ctx context.Context, config msgcat.PipelineConfig, log msgcat.Logger) (*msgcat.Table, error) {
	fmt.Fprintf(p.out, "Loading data...\n    MESSAGES: %s\n    CATEGORIES: %s\n", config.MessagesPath, config.CategoriesPath)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	messages, err := p.reader.ReadCSV(config.MessagesPath)
	if err != nil {
		return nil, fmt.Errorf("load messages: %w", err)
	}
	log.Verbose("messages: %d rows, columns %s", messages.Len(), strings.Join(messages.ColumnNames(), ", "))

	cats, err := p.reader.ReadCSV(config.CategoriesPath)
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	log.Verbose("categories: %d rows, columns %s", cats.Len(), strings.Join(cats.ColumnNames(), ", "))

	joined, err := frame.InnerJoin(messages, cats, config.IDColumn)
	if err != nil {
		return nil, fmt.Errorf("join on %q: %w", config.IDColumn, err)
	}
	log.Verbose("joined: %d rows", joined.Len())
	return joined, nil
}

// Transform decodes the category column of joined and removes duplicate rows.
func (p *Pipeline) Transform(ctx context.Context, config msgcat.PipelineConfig, joined *msgcat.Table) (*categories.Result, error) {
	return p.transform(ctx, config, joined, p.logger)
}

func (p *Pipeline) transform(ctx context.Context, config msgcat.PipelineConfig, joined *msgcat.Table, log msgcat.Logger) (*categories.Result, error) {
	fmt.Fprintln(p.out, "Cleaning data...")
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := categories.NewTransformer(config.Decode, p.calc).Transform(joined)
	if err != nil {
		return nil, fmt.Errorf("clean data: %w", err)
	}
	log.Verbose("categories: %s", strings.Join(result.Schema.Names, ", "))
	log.Verbose("cleaned: %d rows (%d duplicates dropped)", result.Table.Len(), result.Duplicates)
	return result, nil
}

// Persist replaces config.TableName in config.Destination with table.
func (p *Pipeline) Persist(ctx context.Context, config msgcat.PipelineConfig, table *msgcat.Table) error {
	return p.persist(ctx, config, table, p.logger)
}

func (p *Pipeline) persist(ctx context.Context, config msgcat.PipelineConfig, table *msgcat.Table, log msgcat.Logger) error {
	fmt.Fprintf(p.out, "Saving data...\n    DATABASE: %s\n", config.Destination)
	if err := ctx.Err(); err != nil {
		return err
	}

	store, err := p.openStore(ctx, config.Destination, config.BatchSize)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			log.Error("close store: %v", cerr)
		}
	}()

	if err := store.Replace(ctx, config.TableName, table); err != nil {
		return err
	}

	log.Verbose("wrote %d rows to %q", table.Len(), config.TableName)

	// the fingerprint is only read by verbose output and verification
	if !config.Verbose && !config.Verify {
		return nil
	}
	fingerprint := p.calc.CalculateTable(table)
	log.Verbose("fingerprint %s", fingerprint)

	if !config.Verify {
		return nil
	}
	snap, ok := store.(db.Snapshotter)
	if !ok {
		log.Info("store does not support read-back; skipping verification")
		return nil
	}
	stored, err := snap.Snapshot(ctx, config.TableName)
	if err != nil {
		return err
	}
	if got := p.calc.CalculateTable(stored); got != fingerprint {
		return fmt.Errorf("table %q read back with fingerprint %s, want %s: %w", config.TableName, got, fingerprint, msgcat.ErrStoreFailed)
	}
	log.Verbose("verified %q", config.TableName)
	return nil
}

var _ msgcat.Runner = (*Pipeline)(nil)
