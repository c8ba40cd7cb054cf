package router

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/starlane/forest"
	"github.com/katalvlaran/starlane/landmark"
)

// Config controls landmark selection, search variants and batch execution.
//
// All fields have defaults via DefaultConfig(). LoadConfig layers a YAML file
// and STARLANE_* environment variables on top.
type Config struct {
	// Epsilon is the forest approximation slack; 0 gives exact labels.
	Epsilon float64 `yaml:"epsilon" validate:"gte=0,lte=10"`

	// MaxLandmarks caps landmarks per component.
	MaxLandmarks int `yaml:"max_landmarks" validate:"gte=1,lte=64"`

	// ForestKind selects the forest layout: "trees" or "packed".
	ForestKind string `yaml:"forest_kind" validate:"oneof=trees packed"`

	// Workers is the size of the pool used for each batch phase.
	Workers int `yaml:"workers" validate:"gte=1,lte=256"`

	// ImmediateBatch is how many top-priority queries are solved inline.
	ImmediateBatch int `yaml:"immediate_batch" validate:"gte=0"`

	// RouteReuse damps reinforcement: each use closes 1/RouteReuse of the gap
	// between a jump's weight and its distance.
	RouteReuse float64 `yaml:"route_reuse" validate:"gte=1"`

	// PollInterval bounds each wait of a worker on its queue.
	PollInterval time.Duration `yaml:"poll_interval" validate:"gt=0"`

	// BatchTimeout bounds a whole RouteAll call; 0 disables it.
	BatchTimeout time.Duration `yaml:"batch_timeout" validate:"gte=0"`

	BulkExpansion bool `yaml:"bulk_expansion"`
	CostFloors    bool `yaml:"cost_floors"`

	// StrictChecks turns consistency warnings into ErrInconsistentRoute.
	StrictChecks bool `yaml:"strict_checks"`

	// TrafficThreshold is the minimum query priority counted by the traffic
	// landmark candidate.
	TrafficThreshold float64 `yaml:"traffic_threshold" validate:"gte=0"`
}

var configValidate = validator.New()

// DefaultConfig returns the settings used when no file or environment
// override is given.
func DefaultConfig() Config {
	return Config{
		Epsilon:          0.2,
		MaxLandmarks:     landmark.DefaultMaxSlots,
		ForestKind:       forest.KindPacked.String(),
		Workers:          4,
		ImmediateBatch:   16,
		RouteReuse:       10,
		PollInterval:     2 * time.Second,
		BatchTimeout:     10 * time.Minute,
		BulkExpansion:    true,
		CostFloors:       true,
		StrictChecks:     false,
		TrafficThreshold: 0,
	}
}

// Validate checks field ranges. Every failure wraps ErrInvalidConfig.
func (c Config) Validate() error {
	if err := configValidate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return nil
}

// Kind returns the parsed forest kind.
func (c Config) Kind() forest.Kind {
	k, err := forest.ParseKind(c.ForestKind)
	if err != nil {
		return forest.KindPacked
	}

	return k
}

// LoadConfig starts from DefaultConfig, overlays the YAML file at path (if
// path is non-empty), applies environment overrides and validates.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("%w: parse %s: %v", ErrInvalidConfig, path, err)
		}
	}

	if err := loadConfigFromEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// loadConfigFromEnv applies STARLANE_* overrides. Unparsable values are
// reported rather than ignored.
func loadConfigFromEnv(cfg *Config) error {
	floats := map[string]*float64{
		"STARLANE_EPSILON":           &cfg.Epsilon,
		"STARLANE_ROUTE_REUSE":       &cfg.RouteReuse,
		"STARLANE_TRAFFIC_THRESHOLD": &cfg.TrafficThreshold,
	}
	ints := map[string]*int{
		"STARLANE_MAX_LANDMARKS":   &cfg.MaxLandmarks,
		"STARLANE_WORKERS":         &cfg.Workers,
		"STARLANE_IMMEDIATE_BATCH": &cfg.ImmediateBatch,
	}
	durations := map[string]*time.Duration{
		"STARLANE_POLL_INTERVAL": &cfg.PollInterval,
		"STARLANE_BATCH_TIMEOUT": &cfg.BatchTimeout,
	}
	bools := map[string]*bool{
		"STARLANE_BULK_EXPANSION": &cfg.BulkExpansion,
		"STARLANE_COST_FLOORS":    &cfg.CostFloors,
		"STARLANE_STRICT_CHECKS":  &cfg.StrictChecks,
	}

	for key, dst := range floats {
		if v := os.Getenv(key); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("%w: %s=%q", ErrInvalidConfig, key, v)
			}
			*dst = f
		}
	}
	for key, dst := range ints {
		if v := os.Getenv(key); v != "" {
			i, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%w: %s=%q", ErrInvalidConfig, key, v)
			}
			*dst = i
		}
	}
	for key, dst := range durations {
		if v := os.Getenv(key); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("%w: %s=%q", ErrInvalidConfig, key, v)
			}
			*dst = d
		}
	}
	for key, dst := range bools {
		if v := os.Getenv(key); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%w: %s=%q", ErrInvalidConfig, key, v)
			}
			*dst = b
		}
	}
	if v := os.Getenv("STARLANE_FOREST_KIND"); v != "" {
		cfg.ForestKind = v
	}

	return nil
}
