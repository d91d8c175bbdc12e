package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vvka-141/msgcat/pkg/msgcat"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// ConfigFileName is looked up in the working directory when no --config is given.
const ConfigFileName = "msgcat.yaml"

// Environment variables that override file settings.
const (
	EnvTable  = "MSGCAT_TABLE"
	EnvCoerce = "MSGCAT_COERCE"
)

type CategoriesConfig struct {
	Column         string `yaml:"column,omitempty"`
	ItemSeparator  string `yaml:"item_separator,omitempty"`
	ValueSeparator string `yaml:"value_separator,omitempty"`
	Coerce         string `yaml:"coerce,omitempty"`
}

type FileConfig struct {
	Table      string           `yaml:"table,omitempty"`
	IDColumn   string           `yaml:"id_column,omitempty"`
	BatchSize  int              `yaml:"batch_size,omitempty"`
	Categories CategoriesConfig `yaml:"categories,omitempty"`
}

func Load(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %v: %w", path, err, msgcat.ErrInvalidConfig)
	}
	return &cfg, nil
}

// Apply overlays the non-empty file settings onto cfg.
func (f *FileConfig) Apply(cfg *msgcat.PipelineConfig) error {
	if f.Table != "" {
		cfg.TableName = f.Table
	}
	if f.IDColumn != "" {
		cfg.IDColumn = f.IDColumn
	}
	if f.BatchSize != 0 {
		cfg.BatchSize = f.BatchSize
	}
	if f.Categories.Column != "" {
		cfg.Decode.Column = f.Categories.Column
	}
	if f.Categories.ItemSeparator != "" {
		cfg.Decode.ItemSeparator = f.Categories.ItemSeparator
	}
	if f.Categories.ValueSeparator != "" {
		cfg.Decode.ValueSeparator = f.Categories.ValueSeparator
	}
	if f.Categories.Coerce != "" {
		mode, err := msgcat.ParseCoercionMode(f.Categories.Coerce)
		if err != nil {
			return err
		}
		cfg.Decode.Coercion = mode
	}
	return nil
}

// ApplyEnv overlays MSGCAT_TABLE and MSGCAT_COERCE from lookup onto cfg.
func ApplyEnv(cfg *msgcat.PipelineConfig, lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvTable); ok && v != "" {
		cfg.TableName = v
	}
	if v, ok := lookup(EnvCoerce); ok && v != "" {
		mode, err := msgcat.ParseCoercionMode(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvCoerce, err)
		}
		cfg.Decode.Coercion = mode
	}
	return nil
}

// Defaults returns a PipelineConfig carrying every default except the paths.
func Defaults() msgcat.PipelineConfig {
	return msgcat.PipelineConfig{
		TableName: msgcat.DefaultTableName,
		IDColumn:  msgcat.DefaultIDColumn,
		Decode:    msgcat.DefaultDecodeOptions(),
		BatchSize: msgcat.DefaultBatchSize,
	}
}
