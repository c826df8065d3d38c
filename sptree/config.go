package sptree

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strconv"

	"github.com/npillmayer/schuko"
)

const (
	// DefaultEpsilon is the default coincidence tolerance.
	DefaultEpsilon = 1e-13
	// DefaultSampleSize is the number of splitter candidates drawn per node.
	DefaultSampleSize = 5
)

// Configuration keys read by ConfigFromSettings.
const (
	KeyEpsilon    = "sptree.epsilon"
	KeySampleSize = "sptree.samples"
	KeySeed       = "sptree.seed"
)

// Config configures tree construction.
//
// The zero value is a valid configuration: it uses DefaultEpsilon,
// DefaultSampleSize and a random source seeded with 0, which makes builds
// reproducible.
type Config struct {
	// Epsilon is the distance below which a point counts as lying on a
	// splitting plane.
	Epsilon float64
	// SampleSize is the number of items sampled when selecting a splitter.
	SampleSize int
	// Seed seeds the random source for splitter sampling if Rand is nil.
	Seed uint64
	// Rand, if set, is used for splitter sampling instead of a source derived
	// from Seed. It is not safe to share one Rand between concurrent builds.
	Rand *rand.Rand
}

func (cfg Config) normalized() Config {
	if cfg.Epsilon == 0 {
		cfg.Epsilon = DefaultEpsilon
	}
	if cfg.SampleSize == 0 {
		cfg.SampleSize = DefaultSampleSize
	}
	return cfg
}

func (cfg Config) validate() error {
	cfg = cfg.normalized()
	if math.IsNaN(cfg.Epsilon) || math.IsInf(cfg.Epsilon, 0) || cfg.Epsilon < 0 {
		return fmt.Errorf("%w: epsilon must be a non-negative number, is %g", ErrInvalidConfig, cfg.Epsilon)
	}
	if cfg.SampleSize < 1 {
		return fmt.Errorf("%w: sample size must be positive, is %d", ErrInvalidConfig, cfg.SampleSize)
	}
	return nil
}

func (cfg Config) random() *rand.Rand {
	if cfg.Rand != nil {
		return cfg.Rand
	}
	return rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
}

// ConfigFromSettings creates a configuration from an application
// configuration. Keys which are not set keep their defaults.
//
//	sptree.epsilon   coincidence tolerance (float)
//	sptree.samples   splitter sample size (int)
//	sptree.seed      seed for splitter sampling (uint64)
func ConfigFromSettings(conf schuko.Configuration) (Config, error) {
	var cfg Config
	if conf == nil {
		return cfg.normalized(), nil
	}
	if conf.IsSet(KeyEpsilon) {
		eps, err := strconv.ParseFloat(conf.GetString(KeyEpsilon), 64)
		if err != nil {
			return cfg, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, KeyEpsilon, err)
		}
		cfg.Epsilon = eps
	}
	if conf.IsSet(KeySampleSize) {
		cfg.SampleSize = conf.GetInt(KeySampleSize)
		if cfg.SampleSize == 0 {
			return cfg, fmt.Errorf("%w: %s must be a positive integer", ErrInvalidConfig, KeySampleSize)
		}
	}
	if conf.IsSet(KeySeed) {
		seed, err := strconv.ParseUint(conf.GetString(KeySeed), 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, KeySeed, err)
		}
		cfg.Seed = seed
	}
	cfg = cfg.normalized()
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	tracer().Debugf("sptree config: epsilon=%g, samples=%d, seed=%d", cfg.Epsilon, cfg.SampleSize, cfg.Seed)
	return cfg, nil
}
