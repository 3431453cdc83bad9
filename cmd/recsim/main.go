package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/boristopalov/recsim/pkg/config"
	"github.com/boristopalov/recsim/pkg/core"
	"github.com/boristopalov/recsim/pkg/environment"
	"github.com/boristopalov/recsim/pkg/experiment"
	"github.com/boristopalov/recsim/pkg/policy"
	"github.com/boristopalov/recsim/pkg/providers"
)

var (
	flagConfig   string
	flagEpisodes int
	flagPolicy   string
	flagSeed     int64
	flagOut      string
	flagModel    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "recsim",
		Short: "Recsim simulates a population of learners responding to recommended courses, for generating interaction trajectories and reward signals.",
	}

	rolloutCmd := &cobra.Command{
		Use:   "rollout",
		Short: "Roll a recommendation policy out against the simulated population",
		RunE:  runRollout,
	}
	rolloutCmd.Flags().StringVar(&flagConfig, "config", "", "path to a YAML experiment config")
	rolloutCmd.Flags().IntVar(&flagEpisodes, "episodes", 0, "episodes to run (overrides config)")
	rolloutCmd.Flags().StringVar(&flagPolicy, "policy", "", "policy to drive the environment: random, greedy, llm")
	rolloutCmd.Flags().Int64Var(&flagSeed, "seed", 0, "environment seed (0 derives one from the wall clock)")
	rolloutCmd.Flags().StringVar(&flagOut, "out", "", "write per-step trajectories to this CSV file")
	rolloutCmd.Flags().StringVar(&flagModel, "model", "gpt-4o-mini", "completion model for the llm policy")

	for _, envFile := range []string{
		".env",
		"../../.env",
		"../../../.env",
	} {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	rootCmd.AddCommand(rolloutCmd)
	rootCmd.Execute()
}

func runRollout(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if flagConfig != "" {
		loaded, err := config.LoadConfig(flagConfig)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if flagEpisodes > 0 {
		cfg.Episodes = flagEpisodes
	}
	if flagPolicy != "" {
		cfg.Policy = flagPolicy
	}
	if flagSeed != 0 {
		cfg.Environment.Seed = flagSeed
	}
	if cfg.Environment.Seed == 0 {
		cfg.Environment.Seed = time.Now().UnixNano()
	}

	logger, cleanup := config.SetupLogger(cfg.Logging)
	defer cleanup()

	env, err := environment.New(cfg.ToEnv())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	go func() {
		<-sigChan
		cancel()
	}()

	pol, err := buildPolicy(ctx, cfg.Policy, cfg.Environment.Seed)
	if err != nil {
		return err
	}

	opts := []experiment.Option{experiment.WithLogger(logger)}
	if flagOut != "" {
		rec, err := experiment.NewCSVFileRecorder(flagOut)
		if err != nil {
			return err
		}
		defer rec.Close()
		opts = append(opts, experiment.WithRecorder(rec))
	}

	rollout := experiment.NewRollout(cfg.Name, env, pol, cfg.Episodes, opts...)
	return rollout.Run(ctx)
}

func buildPolicy(ctx context.Context, name string, seed int64) (core.Policy, error) {
	switch name {
	case "random":
		return policy.NewRandom(seed), nil
	case "greedy":
		return policy.NewEpsilonGreedy(seed, 0.1), nil
	case "llm":
		return policy.NewLLM(providers.OpenAi(ctx), flagModel), nil
	default:
		return nil, fmt.Errorf("unknown policy %q (want random, greedy, or llm)", name)
	}
}
