// Package config loads solver settings from YAML or TOML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"qapSolver/internal/ga"
)

var (
	ErrUnsupportedFormat = errors.New("config: unsupported file format")
	ErrInvalidFile       = errors.New("config: invalid settings")
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	_ = validate.RegisterValidation("seed", validateSeed)
}

// validateSeed accepts every UUID form ga.ParseSeed accepts.
func validateSeed(fl validator.FieldLevel) bool {
	_, err := ga.ParseSeed(fl.Field().String())
	return err == nil
}

// GA mirrors ga.Config with string labels for file formats.
type GA struct {
	Variant             string  `yaml:"variant" toml:"variant"`
	PopulationSize      int     `yaml:"population_size" toml:"population_size" validate:"gte=0"`
	Generations         int     `yaml:"generations" toml:"generations" validate:"gt=0"`
	MutationProbability float64 `yaml:"mutation_probability" toml:"mutation_probability" validate:"gte=0,lte=1"`
	CrossProbability    float64 `yaml:"cross_probability" toml:"cross_probability" validate:"gte=0,lte=1"`
	GeneMutations       int     `yaml:"gene_mutations" toml:"gene_mutations" validate:"gt=0"`
	EliteRatio          float64 `yaml:"elite_ratio" toml:"elite_ratio" validate:"gt=0,lte=1"`
	Seed                string  `yaml:"seed" toml:"seed" validate:"omitempty,seed"`
}

type Log struct {
	Level string `yaml:"level" toml:"level" validate:"omitempty,oneof=debug info warn error"`
}

type Metrics struct {
	Out string `yaml:"out" toml:"out"`
}

type File struct {
	Instance string  `yaml:"instance" toml:"instance"`
	Polish   bool    `yaml:"polish" toml:"polish"`
	GA       GA      `yaml:"ga" toml:"ga"`
	Log      Log     `yaml:"log" toml:"log"`
	Metrics  Metrics `yaml:"metrics" toml:"metrics"`
}

// Default returns the settings used when a key is absent from the file.
func Default() File {
	d := ga.DefaultConfig()
	return File{
		GA: GA{
			Variant:             d.Variant.String(),
			PopulationSize:      d.PopulationSize,
			Generations:         d.Generations,
			MutationProbability: d.MutationProbability,
			CrossProbability:    d.CrossProbability,
			GeneMutations:       d.GeneMutations,
			EliteRatio:          d.EliteRatio,
		},
		Log: Log{Level: "info"},
	}
}

// Load reads path (.yaml, .yml or .toml) over Default and validates the result.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, err
	}
	f, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes data in the format named by ext.
func Parse(data []byte, ext string) (File, error) {
	f := Default()
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return File{}, fmt.Errorf("parse yaml: %w", err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), &f); err != nil {
			return File{}, fmt.Errorf("parse toml: %w", err)
		}
	default:
		return File{}, fmt.Errorf("%w %q", ErrUnsupportedFormat, ext)
	}
	if err := f.Validate(); err != nil {
		return File{}, err
	}
	return f, nil
}

func (f File) Validate() error {
	if err := validate.Struct(f); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}
	return nil
}

// ToGA converts the GA section. An unknown variant label is not an error:
// it maps to ga.Regular and recognized is false.
func (f File) ToGA() (cfg ga.Config, recognized bool) {
	v, ok := ga.ParseVariant(f.GA.Variant)
	return ga.Config{
		Variant:             v,
		PopulationSize:      f.GA.PopulationSize,
		Generations:         f.GA.Generations,
		MutationProbability: f.GA.MutationProbability,
		CrossProbability:    f.GA.CrossProbability,
		GeneMutations:       f.GA.GeneMutations,
		EliteRatio:          f.GA.EliteRatio,
		Seed:                f.GA.Seed,
	}, ok
}
