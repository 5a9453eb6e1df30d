package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vuhoang/autocal/config"
	"github.com/vuhoang/autocal/engine"
	"github.com/vuhoang/autocal/journal"
	"github.com/vuhoang/autocal/notify"
	"github.com/vuhoang/autocal/report"
	"github.com/vuhoang/autocal/store"
)

var rootCmd = &cobra.Command{
	Use:   "autocal",
	Short: "Leveraged-futures position calculator and trade journal",
	Long: `Autocal sizes leveraged futures positions and journals their outcomes.

Given your account margin, loss tolerance, leverage and entry price it
derives position size and stop-loss/take-profit levels. Each trade is
opened, then settled as a win or a loss; the running balance and the
today/week/month performance reports follow from the journal.`,
}

var cfgFile string

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	// Telegram token may live in a local .env; a missing file is fine.
	_ = godotenv.Load()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (YAML or JSON)")
}

func loadConfig() (*config.Config, error) {
	if cfgFile == "" {
		return config.Default(), nil
	}
	return config.LoadFromFile(cfgFile)
}

// openEngine wires the configured store, journal, notifier and engine.
// The returned closer shuts down backends that hold connections.
func openEngine() (*engine.Engine, *journal.Log, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}

	st, closeStore, err := openStore(cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	log := journal.New(st)
	e := engine.New(log, st, newNotifier(cfg), reportOptions(cfg))
	return e, log, closeStore, nil
}

func openStore(cfg *config.Config) (store.Store, func(), error) {
	switch cfg.Storage.Type {
	case "memory":
		return store.NewMemory(), func() {}, nil
	case "file":
		return store.NewFile(cfg.Storage.Path), func() {}, nil
	case "sqlite":
		s, err := store.NewSQLite(cfg.Storage.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return s, func() { _ = s.Close() }, nil
	case "redis":
		s := store.NewRedis(cfg.Storage.RedisAddr, cfg.Storage.RedisPassword, cfg.Storage.RedisDB)
		return s, func() { _ = s.Close() }, nil
	}
	return nil, nil, fmt.Errorf("unknown storage type: %q", cfg.Storage.Type)
}

func newNotifier(cfg *config.Config) notify.Notifier {
	token := cfg.Telegram.Token
	if env := os.Getenv("TELEGRAM_BOT_TOKEN"); env != "" {
		token = env
	}
	if token == "" || cfg.Telegram.ChatID == "" {
		return notify.Nop{}
	}
	return notify.NewTelegram(token, cfg.Telegram.ChatID)
}

func reportOptions(cfg *config.Config) report.Options {
	opts := report.DefaultOptions()
	if d, err := cfg.Report.WeekStartDay(); err == nil {
		opts.WeekStart = d
	}
	if cfg.Report.TitleToday != "" {
		opts.TitleToday = cfg.Report.TitleToday
	}
	if cfg.Report.TitleWeek != "" {
		opts.TitleWeek = cfg.Report.TitleWeek
	}
	if cfg.Report.TitleMonth != "" {
		opts.TitleMonth = cfg.Report.TitleMonth
	}
	return opts
}
