package harmony

import (
	"fmt"
	"sync"

	"github.com/schollz/accompany/music"
	log "github.com/sirupsen/logrus"
)

// Rand is the source of randomness for the optimizer. *rand.Rand
// satisfies it.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// Config holds the knobs of the genetic search.
type Config struct {
	// PopulationSize must be even and at least 2
	PopulationSize int
	// Generations is how many rounds of breeding to run
	Generations int
	// MutationProbability is the chance each offspring gets one chord replaced
	MutationProbability float64
	// CrossoverProbability is the chance a pair of parents swap tails
	CrossoverProbability float64
	// Workers evaluates fitness on this many goroutines (0 or 1 is serial)
	Workers int
}

// DefaultConfig returns a population of 50 bred for 100 generations.
func DefaultConfig() Config {
	return Config{
		PopulationSize:       50,
		Generations:          100,
		MutationProbability:  0.05,
		CrossoverProbability: 0.8,
		Workers:              1,
	}
}

// Validate reports the first out of range parameter.
func (c Config) Validate() error {
	switch {
	case c.PopulationSize < 2 || c.PopulationSize%2 != 0:
		return fmt.Errorf("population size %d must be even and at least 2: %w", c.PopulationSize, music.ErrInvalidConfiguration)
	case c.Generations < 0:
		return fmt.Errorf("generations %d is negative: %w", c.Generations, music.ErrInvalidConfiguration)
	case c.MutationProbability < 0 || c.MutationProbability > 1:
		return fmt.Errorf("mutation probability %v outside [0,1]: %w", c.MutationProbability, music.ErrInvalidConfiguration)
	case c.CrossoverProbability < 0 || c.CrossoverProbability > 1:
		return fmt.Errorf("crossover probability %v outside [0,1]: %w", c.CrossoverProbability, music.ErrInvalidConfiguration)
	case c.Workers < 0:
		return fmt.Errorf("workers %d is negative: %w", c.Workers, music.ErrInvalidConfiguration)
	}
	return nil
}

// Population is one generation of candidates. A Population is never
// modified once the next one has been bred from it.
type Population []Individual

// GenerationStats summarizes the fitness of one generation.
type GenerationStats struct {
	Generation int     `json:"generation"`
	Best       int     `json:"best"`
	Worst      int     `json:"worst"`
	Mean       float64 `json:"mean"`
}

// Result is the outcome of a search.
type Result struct {
	Best    Individual
	Fitness int
	// Population is the final generation
	Population Population
	// History has one entry per evaluated generation, starting with the
	// initial population and ending with the final one.
	History []GenerationStats
}

// Optimizer searches for the chord sequence that best fits a melody.
type Optimizer struct {
	Config
	vocabulary []music.Chord
	rng        Rand
}

// NewOptimizer returns an optimizer drawing chords from vocabulary.
func NewOptimizer(cfg Config, vocabulary []music.Chord, rng Rand) *Optimizer {
	return &Optimizer{
		Config:     cfg,
		vocabulary: vocabulary,
		rng:        rng,
	}
}

// Run evolves accompaniments of len(melody)/4 chords and returns the
// fittest member of the last generation. Ties go to the earliest.
func (o *Optimizer) Run(melody music.Melody) (r Result, err error) {
	logger := log.WithFields(log.Fields{
		"function": "Optimizer.Run",
	})
	if err = o.Validate(); err != nil {
		return
	}
	if len(o.vocabulary) == 0 {
		err = fmt.Errorf("empty chord vocabulary: %w", music.ErrInvalidConfiguration)
		return
	}
	length := len(melody) / 4
	if length < 1 {
		err = fmt.Errorf("melody of %d notes is too short for one chord: %w", len(melody), music.ErrInvalidInput)
		return
	}
	classes := melody.PitchClasses()

	logger.Infof("Evolving %d individuals of %d chords for %d generations", o.PopulationSize, length, o.Generations)
	current := o.initialize(length)
	for generation := 0; generation < o.Generations; generation++ {
		scores := o.evaluate(current, classes)
		stats := summarize(generation, scores)
		r.History = append(r.History, stats)
		logger.WithFields(log.Fields{
			"best":  stats.Best,
			"worst": stats.Worst,
		}).Debugf("generation %d, mean %2.2f", generation, stats.Mean)
		current = o.breed(current, scores)
	}

	scores := o.evaluate(current, classes)
	r.History = append(r.History, summarize(o.Generations, scores))
	best := 0
	for i := range scores {
		if scores[i] > scores[best] {
			best = i
		}
	}
	r.Best = current[best].Copy()
	r.Fitness = scores[best]
	r.Population = current
	logger.Infof("Best accompaniment %s has fitness %d", Fingerprint(r.Best), r.Fitness)
	return
}

func (o *Optimizer) initialize(length int) Population {
	pop := make(Population, o.PopulationSize)
	for i := range pop {
		ind := make(Individual, length)
		for j := range ind {
			ind[j] = o.vocabulary[o.rng.Intn(len(o.vocabulary))]
		}
		pop[i] = ind
	}
	return pop
}

// evaluate scores every individual, index-aligned with pop. It never
// touches the random source, so the worker count cannot change results.
func (o *Optimizer) evaluate(pop Population, classes [12]bool) []int {
	scores := make([]int, len(pop))
	if o.Workers <= 1 {
		for i, ind := range pop {
			scores[i] = fitness(ind, classes)
		}
		return scores
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < o.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				scores[i] = fitness(pop[i], classes)
			}
		}()
	}
	for i := range pop {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return scores
}

// breed builds the next generation from current. Every member of the
// result is a fresh copy, so mutating it leaves current untouched.
func (o *Optimizer) breed(current Population, scores []int) Population {
	next := make(Population, 0, o.PopulationSize)
	for i := 0; i < o.PopulationSize; i += 2 {
		parent1 := current[Select(o.rng, scores)]
		parent2 := current[Select(o.rng, scores)]
		if o.rng.Float64() < o.CrossoverProbability {
			child1, child2 := Crossover(o.rng, parent1, parent2)
			next = append(next, child1, child2)
		} else {
			next = append(next, parent1.Copy(), parent2.Copy())
		}
	}
	for _, ind := range next {
		if o.rng.Float64() < o.MutationProbability {
			Mutate(o.rng, ind, o.vocabulary)
		}
	}
	return next
}

// Select spins a roulette wheel weighted by fitness and returns the
// chosen index. When the total fitness is not positive every index
// is equally likely.
func Select(rng Rand, scores []int) int {
	total := 0
	for _, s := range scores {
		total += s
	}
	if total <= 0 {
		return rng.Intn(len(scores))
	}
	wheel := rng.Intn(total)
	cumulative := 0
	for i, s := range scores {
		cumulative += s
		if cumulative >= wheel {
			return i
		}
	}
	return 0
}

// Crossover swaps the tails of two parents at a random point in
// [1, len-1). Parents too short to cut are copied unchanged.
func Crossover(rng Rand, parent1, parent2 Individual) (child1, child2 Individual) {
	n := len(parent1)
	if len(parent2) < n {
		n = len(parent2)
	}
	if n < 2 {
		return parent1.Copy(), parent2.Copy()
	}
	point := 1
	if n > 2 {
		point = 1 + rng.Intn(n-2)
	}
	child1 = append(append(make(Individual, 0, len(parent2)), parent1[:point]...), parent2[point:]...)
	child2 = append(append(make(Individual, 0, len(parent1)), parent2[:point]...), parent1[point:]...)
	return
}

// Mutate replaces one random chord of ind, in place.
func Mutate(rng Rand, ind Individual, vocabulary []music.Chord) {
	if len(ind) == 0 || len(vocabulary) == 0 {
		return
	}
	index := rng.Intn(len(ind))
	ind[index] = vocabulary[rng.Intn(len(vocabulary))]
}

func summarize(generation int, scores []int) (s GenerationStats) {
	s.Generation = generation
	if len(scores) == 0 {
		return
	}
	s.Best, s.Worst = scores[0], scores[0]
	total := 0
	for _, score := range scores {
		if score > s.Best {
			s.Best = score
		}
		if score < s.Worst {
			s.Worst = score
		}
		total += score
	}
	s.Mean = float64(total) / float64(len(scores))
	return
}
