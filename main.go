package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	"github.com/schollz/accompany/composer"
	"github.com/schollz/accompany/harmony"
	"github.com/schollz/accompany/midifile"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

var version string

func main() {
	// .env is optional
	_ = godotenv.Load()

	defaults := composer.DefaultConfig()

	app := cli.NewApp()
	app.Version = version
	app.Compiled = time.Now()
	app.Name = "accompany"
	app.Usage = "generate a melody from a MIDI file and evolve chords to go with it"
	app.UsageText = `accompany --in gravity.mid --out combined.mid --key "A minor"`
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   "in,i",
			Value:  "gravity.mid",
			Usage:  "MIDI file (or .json note history) to learn the melody from",
			EnvVar: "ACCOMPANY_IN",
		},
		cli.StringFlag{
			Name:   "out,o",
			Value:  "output_combined.mid",
			Usage:  "MIDI file to write",
			EnvVar: "ACCOMPANY_OUT",
		},
		cli.StringFlag{
			Name:  "record",
			Usage: "JSON store to save the generated piece in",
		},
		cli.StringFlag{
			Name:   "key,k",
			Value:  "C major",
			Usage:  "key for the chord vocabulary",
			EnvVar: "ACCOMPANY_KEY",
		},
		cli.IntFlag{
			Name:  "length,n",
			Value: defaults.MelodyLength,
			Usage: "number of notes to generate",
		},
		cli.IntFlag{
			Name:  "population",
			Value: defaults.PopulationSize,
			Usage: "accompaniments per generation (even)",
		},
		cli.IntFlag{
			Name:  "generations",
			Value: defaults.Generations,
			Usage: "generations to evolve",
		},
		cli.Float64Flag{
			Name:  "mutation",
			Value: defaults.MutationProbability,
			Usage: "mutation probability",
		},
		cli.Float64Flag{
			Name:  "crossover",
			Value: defaults.CrossoverProbability,
			Usage: "crossover probability",
		},
		cli.IntFlag{
			Name:  "workers",
			Value: defaults.Workers,
			Usage: "goroutines used to score each generation",
		},
		cli.IntFlag{
			Name:  "velocity",
			Value: defaults.Velocity,
			Usage: "velocity of every written note",
		},
		cli.IntFlag{
			Name:  "bpm",
			Value: defaults.BPM,
			Usage: "BPM to use",
		},
		cli.Int64Flag{
			Name:  "seed",
			Usage: "random seed (0 uses the clock)",
		},
		cli.StringFlag{
			Name:   "sentry-dsn",
			Usage:  "report runs to Sentry",
			EnvVar: "SENTRY_DSN",
		},
		cli.BoolFlag{
			Name:  "debug",
			Usage: "debug logging",
		},
	}

	app.Action = func(c *cli.Context) (err error) {
		if c.Bool("debug") {
			log.SetLevel(log.DebugLevel)
		} else {
			log.SetLevel(log.InfoLevel)
		}
		logger := log.WithFields(log.Fields{
			"function": "main",
		})

		if dsn := c.String("sentry-dsn"); dsn != "" {
			err = sentry.Init(sentry.ClientOptions{
				Dsn:              dsn,
				Release:          version,
				TracesSampleRate: 1.0,
			})
			if err != nil {
				logger.Warnf("sentry disabled: %s", err.Error())
			} else {
				defer sentry.Flush(2 * time.Second)
			}
		}

		cfg := composer.DefaultConfig()
		cfg.Root, cfg.Mode, err = harmony.ParseKey(c.String("key"))
		if err != nil {
			return
		}
		cfg.MelodyLength = c.Int("length")
		cfg.PopulationSize = c.Int("population")
		cfg.Generations = c.Int("generations")
		cfg.MutationProbability = c.Float64("mutation")
		cfg.CrossoverProbability = c.Float64("crossover")
		cfg.Workers = c.Int("workers")
		cfg.Velocity = c.Int("velocity")
		cfg.BPM = c.Int("bpm")
		cfg.Seed = c.Int64("seed")

		comp, err := composer.New(cfg)
		if err != nil {
			return
		}

		source, err := midifile.ReadMelody(c.String("in"))
		if err != nil {
			return
		}

		piece, err := comp.Compose(context.Background(), source)
		if err != nil {
			return
		}

		if err = piece.WriteMIDI(c.String("out")); err != nil {
			return
		}
		if record := c.String("record"); record != "" {
			if err = piece.Save(record); err != nil {
				return
			}
		}
		fmt.Printf("%s: %d notes, %d chords, fitness %d (seed %d)\n", piece.ID, len(piece.Melody), len(piece.Chords), piece.Fitness, piece.Seed)
		return nil
	}

	err := app.Run(os.Args)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
