// Command picks runs a one-shot generation pass and prints the ranked slate.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/diamond-edge/internal/config"
	"github.com/yourusername/diamond-edge/internal/database"
	"github.com/yourusername/diamond-edge/internal/datasource"
	"github.com/yourusername/diamond-edge/internal/logger"
	"github.com/yourusername/diamond-edge/internal/models"
	"github.com/yourusername/diamond-edge/internal/repository"
	"github.com/yourusername/diamond-edge/internal/service"
	"github.com/yourusername/diamond-edge/internal/stats"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
)

var (
	configFile string
	noDB       bool
	appLog     *logrus.Logger
	cfg        *config.Config
	db         *database.DB
	repos      *repository.Repositories
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.PersistentFlags().BoolVar(&noDB, "no-db", false, "Skip persistence")
	rootCmd.AddCommand(generateCmd, latestCmd, versionCmd)
}

var rootCmd = &cobra.Command{
	Use:   "picks",
	Short: "Generate and inspect daily edge picks",
	Long:  `Runs the edge scoring pipeline against today's MLB slate and prints the ranked picks.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" {
			return nil
		}
		if err := loadConfig(); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		return setupDependencies(cmd.Context())
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if db != nil {
			db.Close()
		}
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Run one scoring pass over today's slate",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd.Context())
	},
}

var latestCmd = &cobra.Command{
	Use:   "latest",
	Short: "Print the most recently stored pick snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		if repos == nil {
			return fmt.Errorf("latest requires a database connection")
		}
		snapshot, err := repos.Picks.GetLatest(cmd.Context())
		if err != nil {
			return fmt.Errorf("load latest snapshot: %w", err)
		}
		printSnapshot(snapshot)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("picks %s (%s)\n", Version, GitCommit)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func loadConfig() error {
	var err error
	cfg, err = config.LoadWithDefaults(configFile)
	if err != nil {
		return err
	}
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		if err := config.LoadSecretsFromAWS(cfg, os.Getenv("AWS_REGION"), os.Getenv("AWS_SECRET_NAME")); err != nil {
			return fmt.Errorf("load secrets: %w", err)
		}
	}
	return config.Validate(cfg)
}

func setupDependencies(ctx context.Context) error {
	appLog = logger.NewLogger(cfg.App.LogLevel)
	if noDB {
		return nil
	}
	var err error
	db, err = database.NewDB(ctx, &cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	repos = repository.NewRepositories(db)
	return nil
}

func runGenerate(ctx context.Context) error {
	feedLog := log.New(os.Stdout, "feeds: ", log.LstdFlags)
	client := datasource.NewRateLimitedHTTPClient(datasource.DefaultHTTPClientConfig(), feedLog)
	defer client.Close()

	scoreboard := datasource.NewESPNScoreboard(cfg.Scoreboard.BaseURL, client)
	oddsFeed := datasource.NewTheOddsAPI(cfg.OddsAPI.BaseURL, cfg.OddsAPI.APIKey,
		cfg.OddsAPI.SportKey, cfg.OddsAPI.Regions, client)

	statsCache := stats.NewCache(time.Duration(cfg.Cache.TTLMinutes) * time.Minute)
	builder := service.NewSlateBuilder(statsCache, nil, appLog)
	gen := service.NewPicksGenerator(scoreboard, oddsFeed, builder, repos, nil, appLog)

	snapshot, warnings, err := gen.Generate(ctx)
	if err != nil {
		return fmt.Errorf("generate picks: %w", err)
	}

	printSnapshot(snapshot)
	if len(warnings) > 0 {
		fmt.Printf("\n%d matchups skipped:\n", len(warnings))
		for _, w := range warnings {
			fmt.Printf("  [%d] %s: %s\n", w.Index, w.Match, w.Reason)
		}
	}
	return nil
}

func printSnapshot(snapshot *models.PickSnapshot) {
	fmt.Printf("Picks for %s (generated %s)\n\n",
		snapshot.Date, snapshot.GeneratedAt.Format(time.RFC3339))
	fmt.Printf("%-24s %-28s %8s %8s\n", "MATCH", "PICK", "WIN%", "EDGE%")
	for _, r := range snapshot.Results {
		fmt.Printf("%-24s %-28s %7.1f%% %+7.1f%%\n",
			r.Match, r.Pick, r.Probability*100, r.EdgePct)
	}
}
