package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/alexandrejdoliveira-gif/smart-grocery-inventory/constants"
	"github.com/alexandrejdoliveira-gif/smart-grocery-inventory/internal/common"
	"github.com/alexandrejdoliveira-gif/smart-grocery-inventory/internal/confidence"
	"github.com/alexandrejdoliveira-gif/smart-grocery-inventory/internal/entity"
	"github.com/alexandrejdoliveira-gif/smart-grocery-inventory/internal/parser"
	"github.com/alexandrejdoliveira-gif/smart-grocery-inventory/internal/repository"
)

func main() {
	root := &cobra.Command{
		Use:          "pantryctl",
		Short:        "Inspect and debug the grocery pipeline from the command line",
		SilenceUsage: true,
	}
	root.AddCommand(newParseCmd(), newFingerprintCmd(), newScoreCmd(), newDBCheckCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse raw OCR text from a file and print the structured receipt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}
			parsed := parser.ParseReceiptText(string(raw))
			out := struct {
				Fingerprint string               `json:"fingerprint"`
				Receipt     entity.ParsedReceipt `json:"receipt"`
			}{
				Fingerprint: parser.Fingerprint(parsed.Store, parsed.Date, parsed.Total),
				Receipt:     parsed,
			}
			return printJSON(cmd, out)
		},
	}
}

func newFingerprintCmd() *cobra.Command {
	var store, date, total string
	cmd := &cobra.Command{
		Use:   "fingerprint",
		Short: "Compute the dedup fingerprint for a store, date and total",
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(total)
			if err != nil {
				return fmt.Errorf("invalid total %q: %w", total, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), parser.Fingerprint(store, date, amount))
			return nil
		},
	}
	cmd.Flags().StringVar(&store, "store", "", "store name")
	cmd.Flags().StringVar(&date, "date", "", "transaction date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&total, "total", "0", "receipt total")
	cobra.CheckErr(cmd.MarkFlagRequired("store"))
	cobra.CheckErr(cmd.MarkFlagRequired("date"))
	return cmd
}

func newScoreCmd() *cobra.Command {
	var (
		name, store, date, price, source, historyPath string
		quantity                                      int
	)
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score one item against a purchase history JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(price)
			if err != nil {
				return fmt.Errorf("invalid price %q: %w", price, err)
			}
			src := constants.SourceType(source)
			if !constants.IsValidSource(string(src)) {
				return fmt.Errorf("invalid source %q, one of %v", source, constants.SourceTypes())
			}

			var history []entity.PurchaseRecord
			if historyPath != "" {
				raw, err := os.ReadFile(historyPath)
				if err != nil {
					return fmt.Errorf("reading %s: %w", historyPath, err)
				}
				if err := json.Unmarshal(raw, &history); err != nil {
					return fmt.Errorf("decoding history: %w", err)
				}
			}

			score := confidence.Score(confidence.Observation{
				Name:     name,
				Store:    store,
				Date:     date,
				Price:    amount,
				Quantity: quantity,
			}, history, src)

			badge := confidence.BadgeFor(score)
			return printJSON(cmd, map[string]any{
				"score":    score,
				"decision": confidence.Decide(score),
				"badge":    badge,
				"label":    badge.Label(),
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "item name as printed on the receipt")
	cmd.Flags().StringVar(&store, "store", "", "store name")
	cmd.Flags().StringVar(&date, "date", time.Now().Format("2006-01-02"), "purchase date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&price, "price", "0", "unit price")
	cmd.Flags().IntVar(&quantity, "qty", 1, "quantity")
	cmd.Flags().StringVar(&source, "source", string(constants.SourceValidatedReceipt), "data source tag")
	cmd.Flags().StringVar(&historyPath, "history", "", "JSON file with purchase history, most recent first")
	cobra.CheckErr(cmd.MarkFlagRequired("name"))
	return cmd
}

func newDBCheckCmd() *cobra.Command {
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "db-check",
		Short: "Open the configured database and run a connectivity check",
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()
			cfg := common.LoadConfig()
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			db, err := repository.Open(ctx, repository.Config{
				Driver:          cfg.Database.Driver,
				DSN:             cfg.Database.DSN,
				MaxOpenConns:    cfg.Database.MaxOpenConns,
				MaxIdleConns:    cfg.Database.MaxIdleConns,
				ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
				DialTimeout:     cfg.Database.DialTimeout,
			}, logger)
			if err != nil {
				return err
			}
			defer repository.Close(db, logger)

			if err := repository.HealthCheck(ctx, db, 0); err != nil {
				return fmt.Errorf("health check: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "database OK")
			return nil
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "overall check timeout")
	return cmd
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
