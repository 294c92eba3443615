package composer

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/schollz/accompany/ai"
	"github.com/schollz/accompany/harmony"
	"github.com/schollz/accompany/metrics"
	"github.com/schollz/accompany/music"
	log "github.com/sirupsen/logrus"
)

// Config is everything a composition depends on.
type Config struct {
	// PopulationSize is the number of accompaniments per generation (even, >= 2)
	PopulationSize int
	// Generations is the number of breeding rounds
	Generations int
	// MutationProbability and CrossoverProbability are in [0,1]
	MutationProbability  float64
	CrossoverProbability float64
	// Workers evaluates fitness in parallel
	Workers int

	// MelodyLength is how many notes to generate
	MelodyLength int
	// Root is the key's pitch class, Mode its quality
	Root int
	Mode harmony.Mode

	// Velocity and BPM are only used when writing the result
	Velocity int
	BPM      int

	// Seed fixes the random stream. Zero picks one from the clock.
	Seed int64
}

// DefaultConfig composes 200 notes in C major.
func DefaultConfig() Config {
	ga := harmony.DefaultConfig()
	return Config{
		PopulationSize:       ga.PopulationSize,
		Generations:          ga.Generations,
		MutationProbability:  ga.MutationProbability,
		CrossoverProbability: ga.CrossoverProbability,
		Workers:              ga.Workers,
		MelodyLength:         200,
		Root:                 0,
		Mode:                 harmony.Major,
		Velocity:             100,
		BPM:                  120,
	}
}

func (c Config) optimizer() harmony.Config {
	return harmony.Config{
		PopulationSize:       c.PopulationSize,
		Generations:          c.Generations,
		MutationProbability:  c.MutationProbability,
		CrossoverProbability: c.CrossoverProbability,
		Workers:              c.Workers,
	}
}

// Validate reports the first out of range parameter.
func (c Config) Validate() error {
	if err := c.optimizer().Validate(); err != nil {
		return err
	}
	switch {
	case c.MelodyLength < 2:
		return fmt.Errorf("melody length %d is below 2: %w", c.MelodyLength, music.ErrInvalidConfiguration)
	case c.Root < 0 || c.Root > 11:
		return fmt.Errorf("root %d outside [0,12): %w", c.Root, music.ErrInvalidConfiguration)
	case c.Mode != harmony.Major && c.Mode != harmony.Minor:
		return fmt.Errorf("unknown mode %d: %w", c.Mode, music.ErrInvalidConfiguration)
	case c.Velocity < 1 || c.Velocity > 127:
		return fmt.Errorf("velocity %d outside [1,127]: %w", c.Velocity, music.ErrInvalidConfiguration)
	case c.BPM <= 0:
		return fmt.Errorf("bpm %d must be positive: %w", c.BPM, music.ErrInvalidConfiguration)
	}
	return nil
}

// Composer turns a source melody into a new melody with chords.
type Composer struct {
	Config
	// Metrics receives one record per Compose call
	Metrics *metrics.Recorder

	rng *rand.Rand
}

// New validates the configuration and seeds the random stream.
func New(cfg Config) (c *Composer, err error) {
	logger := log.WithFields(log.Fields{
		"function": "Composer.New",
	})
	if err = cfg.Validate(); err != nil {
		return
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger.Debugf("seed %d", cfg.Seed)
	c = &Composer{
		Config:  cfg,
		Metrics: metrics.NewRecorder(),
		rng:     rand.New(rand.NewSource(cfg.Seed)),
	}
	return
}

// Compose learns from source, generates a melody and finds its
// accompaniment. A melody shorter than requested is not an error;
// Piece.Truncated reports it.
func (c *Composer) Compose(ctx context.Context, source music.Melody) (p *Piece, err error) {
	logger := log.WithFields(log.Fields{
		"function": "Composer.Compose",
	})
	start := time.Now()
	defer func() {
		notes, fitness := 0, 0
		if p != nil {
			notes, fitness = len(p.Melody), p.Fitness
		}
		c.Metrics.RecordCompose(ctx, time.Since(start), notes, c.Generations, fitness, err)
	}()

	logger.Infof("Learning from %d notes", len(source))
	model := ai.New(source)
	generated, err := model.Generate(c.rng, c.MelodyLength)
	if err != nil {
		return nil, fmt.Errorf("generating melody: %w", err)
	}
	if generated.Truncated {
		logger.Warnf("Melody stopped at %d of %d notes", len(generated.Melody), c.MelodyLength)
	}

	vocabulary, err := harmony.Vocabulary(c.Root, c.Mode)
	if err != nil {
		return nil, fmt.Errorf("building chords: %w", err)
	}

	result, err := harmony.NewOptimizer(c.optimizer(), vocabulary, c.rng).Run(generated.Melody)
	if err != nil {
		return nil, fmt.Errorf("finding accompaniment: %w", err)
	}

	p = &Piece{
		ID:        harmony.PieceFingerprint(generated.Melody, result.Best),
		Melody:    generated.Melody,
		Chords:    result.Best,
		Fitness:   result.Fitness,
		Requested: c.MelodyLength,
		Truncated: generated.Truncated,
		Root:      c.Root,
		Mode:      c.Mode.String(),
		Seed:      c.Seed,
		Velocity:  c.Velocity,
		BPM:       c.BPM,
		History:   result.History,
	}
	logger.Infof("Composed %s: %d notes, %d chords, fitness %d", p.ID, len(p.Melody), len(p.Chords), p.Fitness)
	return
}
