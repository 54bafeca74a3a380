package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Gelembjuk/ai-group-chats/internal/adapters/reason"
	"github.com/Gelembjuk/ai-group-chats/internal/adapters/render"
	"github.com/Gelembjuk/ai-group-chats/internal/adapters/scenario"
	"github.com/Gelembjuk/ai-group-chats/internal/config"
	"github.com/Gelembjuk/ai-group-chats/internal/domain"
	"github.com/Gelembjuk/ai-group-chats/internal/observability"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "roomchat",
		Short:         "Replay multi-room group chats through a privacy-aware AI agent",
		Long:          "roomchat runs a single AI agent through several scripted group conversations with different participant sets, deciding per message whether to speak without leaking information across room boundaries.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.AddCommand(
		newRunCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the roomchat version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "roomchat", version)
		},
	}
}

func newRunCmd() *cobra.Command {
	var (
		showThoughts bool
		logFile      string
		modelName    string
		useScripted  bool
		timeout      time.Duration
	)

	runCmd := &cobra.Command{
		Use:   "run <scenario.json>",
		Short: "Run the agent through the conversations in a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if cmd.Flags().Changed("show-thoughts") {
				cfg.ShowThoughts = showThoughts
			}
			if cmd.Flags().Changed("log-file") {
				cfg.LogFile = logFile
			}
			if cmd.Flags().Changed("model") {
				cfg.ModelName = modelName
			}
			if cmd.Flags().Changed("mock") {
				cfg.UseScripted = useScripted
			}
			if cmd.Flags().Changed("timeout") {
				cfg.DeliberationTimeout = timeout
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			return run(cmd.Context(), cfg, args[0])
		},
	}

	runCmd.Flags().BoolVarP(&showThoughts, "show-thoughts", "t", false, "show the agent's internal reasoning")
	runCmd.Flags().StringVarP(&logFile, "log-file", "l", "", "save a markdown transcript to this path")
	runCmd.Flags().StringVarP(&modelName, "model", "m", "", "model name for the gcp reasoning backend")
	runCmd.Flags().BoolVar(&useScripted, "mock", false, "use the offline scripted deliberator instead of a model")
	runCmd.Flags().DurationVar(&timeout, "timeout", 0, "per-deliberation timeout (0 = none)")

	return runCmd
}

func run(ctx context.Context, cfg *config.Config, scenarioPath string) error {
	ctx = observability.WithRunID(ctx, uuid.NewString())
	log := observability.LoggerFromContext(ctx)

	sc, err := scenario.Load(scenarioPath)
	if err != nil {
		return err
	}
	log.Info("scenario loaded",
		"path", scenarioPath,
		"agent", sc.AgentName,
		"conversations", len(sc.Conversations))

	deliberator, err := buildDeliberator(ctx, cfg, domain.Person(sc.AgentName))
	if err != nil {
		return err
	}

	reporters := render.Multi{render.NewConsole(os.Stdout)}
	if cfg.LogFile != "" {
		f, err := os.Create(cfg.LogFile)
		if err != nil {
			return fmt.Errorf("creating transcript file: %w", err)
		}
		defer f.Close()
		reporters = append(reporters, render.NewMarkdown(f))
		log.Info("writing transcript", "path", cfg.LogFile)
	}

	runner := scenario.NewRunner(deliberator, reporters)
	runner.ShowThoughts = cfg.ShowThoughts
	runner.DeliberationTimeout = cfg.DeliberationTimeout

	return runner.Run(ctx, sc)
}

func buildDeliberator(ctx context.Context, cfg *config.Config, identity domain.Person) (domain.Deliberator, error) {
	if cfg.UseScripted {
		observability.LoggerFromContext(ctx).Info("using scripted deliberator")
		// Offline default: react only when addressed by name, stay quiet
		// otherwise. Good enough to exercise scenarios without a model.
		return reason.NewScriptedDeliberator(reason.Rule{
			WhenContains: string(identity),
			Respond:      "I'd rather not get into that here.",
			Rationale:    "I was addressed directly, but without a model I default to a careful non-answer.",
		}), nil
	}

	observability.LoggerFromContext(ctx).Info("using gemini deliberator", "model", cfg.ModelName)
	return reason.NewGeminiDeliberator(ctx, reason.GeminiConfig{
		ProjectID: cfg.GCPProjectID,
		Location:  cfg.GCPLocation,
		ModelName: cfg.ModelName,
	}, identity)
}
