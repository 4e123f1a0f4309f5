package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"duosload/config"
	"duosload/ingest"
	"duosload/store"
)

func main() {
	logging, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logging.Sync()

	if err := newRootCmd(logging).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(logging *zap.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "duosload",
		Short:         "Utility for loading the data for the DUOS research study",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.AddCommand(newCreateCmd(logging))
	cmd.AddCommand(newDestroyCmd(logging))
	cmd.AddCommand(newUploadCmd(logging))
	cmd.AddCommand(newInfoCmd(logging))
	return cmd
}

// connect lädt die Konfiguration und öffnet das geteilte Store-Handle.
func connect(logging *zap.Logger) (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		logging.Error("Config load error", zap.Error(err))
		return nil, nil, err
	}
	db, err := store.Open(cfg)
	if err != nil {
		logging.Error("Failed to connect to duos database", zap.Error(err))
		return nil, nil, err
	}
	return cfg, db, nil
}

func newCreateCmd(logging *zap.Logger) *cobra.Command {
	var fromScratch bool
	cmd := &cobra.Command{
		Use:   "create",
		Short: "create duos database schema in target db",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := connect(logging)
			if err != nil {
				return err
			}

			if fromScratch {
				fmt.Println("⬇  dropping every table...")
				if err := store.Drop(db); err != nil {
					return err
				}
			}

			if n := store.ExistingTableCount(db); n > 0 {
				fmt.Printf("🚫  %d tables already exist.\n", n)
				fmt.Println("consider destroying first or using '--from-scratch'")
				return nil
			}

			fmt.Println("✨  creating tables...")
			if err := store.Migrate(db); err != nil {
				return err
			}
			fmt.Println("🙌  created!")
			return nil
		},
	}
	cmd.Flags().BoolVar(&fromScratch, "from-scratch", false, "drop and recreate the entire database")
	return cmd
}

func newDestroyCmd(logging *zap.Logger) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "destroy",
		Short: "drop every table in duos database",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := connect(logging)
			if err != nil {
				return err
			}

			if !yes {
				fmt.Print("are you sure you wanna completely destroy the database?\nThis can not be undone. [y/N]: ")
				line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if strings.ToLower(strings.TrimSpace(line)) != "y" {
					fmt.Println("aborted.")
					return nil
				}
			}

			fmt.Println("⬇  dropping every table...")
			if err := store.Drop(db); err != nil {
				return err
			}
			fmt.Println("😈  destroyed!")
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "skip the confirmation prompt")
	return cmd
}

func newInfoCmd(logging *zap.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "list basic info about duos db",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := connect(logging)
			if err != nil {
				return err
			}
			names, err := store.TableNames(db)
			if err != nil {
				return err
			}
			fmt.Printf("💻  There are %d tables in the DUOS database:\n", len(names))
			for _, name := range names {
				fmt.Printf("\t%s\n", name)
			}
			return nil
		},
	}
}

func newUploadCmd(logging *zap.Logger) *cobra.Command {
	var (
		dir          string
		failFast     bool
		cronSpec     string
		serveMetrics bool
	)
	cmd := &cobra.Command{
		Use:   "upload",
		Short: "commit records from local csv to the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := connect(logging)
			if err != nil {
				return err
			}
			if dir != "" {
				cfg.UploadDir = dir
			}
			if failFast {
				cfg.FailFast = true
			}

			if serveMetrics {
				go serveMetricsEndpoint(cfg, logging)
			}

			if cronSpec != "" {
				if cronSpec == "config" {
					cronSpec = cfg.CronSchedule
				}
				scheduler := cron.New()
				if _, err := scheduler.AddFunc(cronSpec, func() {
					logging.Info("Running scheduled upload...")
					if err := runUpload(cmd.Context(), cfg, db, logging); err != nil {
						logging.Error("Scheduled upload finished with failures", zap.Error(err))
					}
				}); err != nil {
					return fmt.Errorf("invalid cron schedule %q: %w", cronSpec, err)
				}
				scheduler.Start()
				logging.Info("Upload scheduler started", zap.String("schedule", cronSpec))
				select {}
			}

			return runUpload(cmd.Context(), cfg, db, logging)
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "directory containing the csv extracts (default from UPLOAD_DIR)")
	cmd.Flags().BoolVar(&failFast, "fail-fast", false, "abort the run on the first failed record")
	cmd.Flags().StringVar(&cronSpec, "cron", "", "run repeatedly on a cron schedule ('config' uses CRON_SCHEDULE)")
	cmd.Flags().BoolVar(&serveMetrics, "serve-metrics", false, "expose prometheus metrics on HTTP_PORT")
	return cmd
}

// runUpload führt genau einen Batch-Lauf aus und protokolliert ihn in der
// session-Tabelle. Rückgabefehler != nil bedeutet Exit-Code != 0.
func runUpload(ctx context.Context, cfg *config.Config, db *gorm.DB, logging *zap.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	fmt.Println("💬  Working...")

	orchestrator := ingest.NewOrchestrator(cfg, db, logging)
	report, err := orchestrator.Run(ctx)
	if err != nil && report == nil {
		return err
	}

	summary := report.String()
	fmt.Print(summary)

	if sessionID, recErr := store.RecordSession(db, summary); recErr != nil {
		logging.Warn("Failed to record upload session", zap.Error(recErr))
	} else {
		logging.Info("Upload session recorded", zap.String("session_id", sessionID))
	}

	if err != nil {
		return err
	}
	if failed := report.FailureCount(); failed > 0 {
		return fmt.Errorf("%d records or files failed, see summary above", failed)
	}
	fmt.Println("🙌  done!")
	return nil
}

// serveMetricsEndpoint stellt die Prometheus-Zähler über gin bereit.
func serveMetricsEndpoint(cfg *config.Config, logging *zap.Logger) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	logging.Info("Serving metrics", zap.String("port", cfg.HTTPPort))
	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logging.Error("Metrics server stopped", zap.Error(err))
	}
}
