// Command validator runs a read-only smoke test against a live Skyclerk
// API using real credentials. It exercises login, the health ping and the
// main list endpoints, and reports a pass/fail summary.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/skyclerk/skyclerk-go/pkg/skyclerk"
	"go.uber.org/zap"
)

type config struct {
	BaseURL  string
	Email    string
	Password string
	ClientID string
	Verbose  bool
}

func main() {
	// Credentials come from flags, the environment, or a local .env file.
	_ = godotenv.Load()

	cfg := parseFlags()

	logger, err := newLogger(cfg.Verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.sugar.Sync() //nolint:errcheck

	client, err := skyclerk.NewClient(&skyclerk.ClientOptions{
		BaseURL:  cfg.BaseURL,
		ClientID: cfg.ClientID,
		Logger:   logger,
	})
	if err != nil {
		logger.Error("Failed to create client", "error", err)
		os.Exit(1)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	steps := []struct {
		name string
		run  func(context.Context) error
	}{
		{"login", func(ctx context.Context) error {
			return client.Auth.Login(ctx, cfg.Email, cfg.Password)
		}},
		{"ping", func(ctx context.Context) error {
			resp, err := client.Ping.Ping(ctx)
			if err != nil {
				return err
			}
			logger.Info("Subscription status", "status", resp.Status)
			return nil
		}},
		{"profile", func(ctx context.Context) error {
			user, err := client.Profile.Me(ctx)
			if err != nil {
				return err
			}
			logger.Info("Profile", "email", user.Email, "accounts", len(user.Accounts))
			return nil
		}},
		{"categories", func(ctx context.Context) error {
			categories, err := client.Categories.List(ctx)
			if err != nil {
				return err
			}
			logger.Info("Categories", "count", len(categories))
			return nil
		}},
		{"labels", func(ctx context.Context) error {
			labels, err := client.Labels.List(ctx)
			if err != nil {
				return err
			}
			logger.Info("Labels", "count", len(labels))
			return nil
		}},
		{"ledger", func(ctx context.Context) error {
			list, err := client.Ledger.List(ctx, &skyclerk.LedgerListOptions{Page: 1})
			if err != nil {
				return err
			}
			logger.Info("Ledger page 1", "entries", len(list.Entries), "lastPage", list.LastPage)
			return nil
		}},
		{"snapclerk", func(ctx context.Context) error {
			list, err := client.SnapClerk.List(ctx, 1)
			if err != nil {
				return err
			}
			logger.Info("SnapClerk page 1", "receipts", len(list.Receipts))
			return nil
		}},
		{"billing", func(ctx context.Context) error {
			billing, err := client.Account.Billing(ctx)
			if err != nil {
				return err
			}
			logger.Info("Billing", "status", billing.Status, "plan", billing.Plan)
			return nil
		}},
		{"report", func(ctx context.Context) error {
			report, err := client.Reports.ProfitLossCurrentYear(ctx)
			if err != nil {
				return err
			}
			logger.Info("P&L", "year", report.Year, "value", report.Value)
			return nil
		}},
	}

	failed := 0
	for _, step := range steps {
		start := time.Now()
		if err := step.run(ctx); err != nil {
			logger.Error("FAIL", "step", step.name, "error", err, "duration", time.Since(start))
			failed++
			continue
		}
		logger.Info("PASS", "step", step.name, "duration", time.Since(start))
	}

	fmt.Printf("\n%d/%d steps passed\n", len(steps)-failed, len(steps))
	if failed > 0 {
		os.Exit(1)
	}
}

func parseFlags() *config {
	cfg := &config{}

	flag.StringVar(&cfg.BaseURL, "base-url", os.Getenv("SKYCLERK_BASE_URL"), "API base URL (default production)")
	flag.StringVar(&cfg.Email, "email", os.Getenv("SKYCLERK_EMAIL"), "Account email")
	flag.StringVar(&cfg.Password, "password", os.Getenv("SKYCLERK_PASSWORD"), "Account password")
	flag.StringVar(&cfg.ClientID, "client-id", os.Getenv("SKYCLERK_CLIENT_ID"), "OAuth client id")
	flag.BoolVar(&cfg.Verbose, "verbose", false, "Debug logging")
	flag.Parse()

	if cfg.Email == "" || cfg.Password == "" || cfg.ClientID == "" {
		fmt.Fprintln(os.Stderr, "email, password and client-id are required (flags or SKYCLERK_* env)")
		os.Exit(2)
	}

	return cfg
}

// zapLogger adapts zap to the client's Logger interface.
type zapLogger struct {
	sugar *zap.SugaredLogger
}

func newLogger(verbose bool) (*zapLogger, error) {
	var logger *zap.Logger
	var err error
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	return &zapLogger{sugar: logger.Sugar()}, nil
}

func (l *zapLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.sugar.Debugw(msg, keysAndValues...)
}

func (l *zapLogger) Info(msg string, keysAndValues ...interface{}) {
	l.sugar.Infow(msg, keysAndValues...)
}

func (l *zapLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.sugar.Warnw(msg, keysAndValues...)
}

func (l *zapLogger) Error(msg string, keysAndValues ...interface{}) {
	l.sugar.Errorw(msg, keysAndValues...)
}
