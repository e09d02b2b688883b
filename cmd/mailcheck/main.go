// Command mailcheck renders a sample order confirmation and sends it through
// the configured SMTP relay.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/umaru-jpg/luvyn/internal/adapter/mailer"
	"github.com/umaru-jpg/luvyn/internal/config"
	"github.com/umaru-jpg/luvyn/internal/domain/model"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	to        string
	storeName string
	dryRun    bool
	timeout   time.Duration
}

func rootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "mailcheck",
		Short: "Send a sample order confirmation email",
		Long: `Render a sample order confirmation and deliver it through the SMTP relay
configured by SMTP_HOST, SMTP_PORT, EMAIL_USER, EMAIL_PASS and EMAIL_FROM.

Examples:
  mailcheck --to alice@example.com
  mailcheck --dry-run              # print the message instead of sending it
`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()
			mailCfg, err := config.LoadMail()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, cmd.OutOrStdout(), mailCfg, opts)
		},
	}

	cmd.Flags().StringVar(&opts.to, "to", "", "Recipient address (defaults to EMAIL_USER)")
	cmd.Flags().StringVar(&opts.storeName, "store", envOr("STORE_NAME", "Luvyn"), "Store name used in the subject and body")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Print the rendered message instead of sending it")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "SMTP delivery timeout")

	return cmd
}

func run(ctx context.Context, out io.Writer, mailCfg config.MailConfig, opts options) error {
	to := opts.to
	if to == "" {
		to = mailCfg.User
	}
	if to == "" && !opts.dryRun {
		return errors.New("no recipient: pass --to or set EMAIL_USER")
	}
	if to == "" {
		to = "test@example.com"
	}
	if !opts.dryRun && !mailCfg.Enabled() {
		return errors.New("SMTP_HOST is not set")
	}

	m, err := mailer.New(mailer.Options{
		Host:      mailCfg.Host,
		Port:      mailCfg.Port,
		Username:  mailCfg.User,
		Password:  mailCfg.Password,
		From:      mailCfg.From,
		StoreName: opts.storeName,
	})
	if err != nil {
		return err
	}

	msg, err := m.Render(sampleConfirmation(to, time.Now()))
	if err != nil {
		return err
	}

	if opts.dryRun {
		raw, err := msg.Bytes(time.Now())
		if err != nil {
			return err
		}
		_, err = out.Write(raw)
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, opts.timeout)
	defer cancel()
	if err := m.Deliver(ctx, msg); err != nil {
		return fmt.Errorf("deliver sample confirmation: %w", err)
	}
	fmt.Fprintf(out, "sample confirmation sent to %s via %s\n", to, mailCfg.Addr())
	return nil
}

func sampleConfirmation(to string, now time.Time) model.OrderConfirmation {
	return model.OrderConfirmation{
		Order: model.Order{
			ID:     "TEST-ORDER-123",
			UserID: "test-user",
			Products: []model.LineItem{
				{ProductID: "p-1", Name: "Product 1", Quantity: 2, Price: decimal.NewFromInt(100000)},
				{ProductID: "p-2", Name: "Product 2", Quantity: 1, Price: decimal.NewFromInt(250000)},
			},
			TotalAmount: decimal.NewFromInt(450000),
			Status:      model.OrderStatusConfirmed,
			ShippingAddress: &model.Address{
				FullName:   "Test Customer",
				Address:    "Jl. Test No. 123",
				City:       "Jakarta",
				PostalCode: "12345",
				Country:    "Indonesia",
			},
			PaymentMethod: "Credit Card",
			TransactionID: "txn_test_123",
			OrderDate:     now,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		Customer: model.UserContact{
			ID:       "test-user",
			Username: "testuser",
			Email:    to,
			FullName: "Test Customer",
		},
	}
}

func envOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}
