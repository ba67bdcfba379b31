package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/paymentkit/alfabank-gateway/internal/adapters/alfabank"
	"github.com/paymentkit/alfabank-gateway/internal/config"
	"github.com/paymentkit/alfabank-gateway/internal/domain"
	"github.com/paymentkit/alfabank-gateway/pkg/httpclient"
)

var (
	orderNumber string
	description string
	amount      int64
)

var rootCmd = &cobra.Command{
	Use:   "alfabank",
	Short: "Issue payment operations against the AlfaBank gateway",
	Long: `Command-line client for the AlfaBank payment gateway adapter.
Credentials and gateway options are read from the environment
(ALFABANK_LOGIN, ALFABANK_PASSWORD, ALFABANK_BASE_URL, ...).`,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new order and print its payment URL",
	RunE: func(cmd *cobra.Command, args []string) error {
		adapter, logger, err := buildAdapter()
		if err != nil {
			return err
		}
		defer logger.Sync()

		if orderNumber == "" {
			orderNumber = uuid.NewString()
		}

		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		transaction, err := adapter.CreateTransaction(ctx, orderNumber, description, amount)
		if err != nil {
			return err
		}

		printTransaction(transaction)
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status <transaction-id>",
	Short: "Query the extended status of an order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		adapter, logger, err := buildAdapter()
		if err != nil {
			return err
		}
		defer logger.Sync()

		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		transaction, err := adapter.GetTransactionByID(ctx, args[0])
		if err != nil {
			if domain.IsTransactionNotFound(err) {
				fmt.Fprintf(os.Stderr, "transaction %s not found\n", args[0])
				os.Exit(1)
			}
			return err
		}

		printTransaction(transaction)
		return nil
	},
}

func buildAdapter() (*alfabank.Adapter, *zap.Logger, error) {
	// Local development reads a .env file when present
	_ = godotenv.Load()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, nil, err
	}

	logger := initLogger(cfg.Logger)

	client := httpclient.New(httpclient.GatewayConfig(), time.Duration(cfg.Gateway.Timeout)*time.Second)

	adapter, err := alfabank.New(alfabank.Config{
		Login:     cfg.Gateway.Login,
		Password:  cfg.Gateway.Password,
		BaseURL:   cfg.Gateway.BaseURL,
		ReturnURL: cfg.Gateway.ReturnURL,
		Codes: alfabank.StatusCodes{
			Success: cfg.Gateway.SuccessCode,
			Created: cfg.Gateway.CreatedCodes,
		},
	}, client, logger)
	if err != nil {
		return nil, nil, err
	}

	return adapter, logger, nil
}

func initLogger(cfg config.LoggerConfig) *zap.Logger {
	if cfg.Development {
		logger, _ := zap.NewDevelopment()
		return logger
	}

	zapCfg := zap.NewProductionConfig()
	if level, err := zapcore.ParseLevel(cfg.Level); err == nil {
		zapCfg.Level = zap.NewAtomicLevelAt(level)
	}
	logger, _ := zapCfg.Build()
	return logger
}

func printTransaction(t *domain.Transaction) {
	fmt.Printf("transaction id: %s\n", t.TransactionID)
	fmt.Printf("order number:   %s\n", t.OrderNumber)
	if t.Description != "" {
		fmt.Printf("description:    %s\n", t.Description)
	}
	fmt.Printf("amount:         %s\n", t.Amount().StringFixed(2))
	fmt.Printf("created at:     %s\n", t.CreatedAt.Format(time.RFC3339))
	if t.URL != "" {
		fmt.Printf("payment url:    %s\n", t.URL)
	}
	if t.IP != "" {
		fmt.Printf("payer ip:       %s\n", t.IP)
	}
	if t.Card != nil {
		fmt.Printf("card:           %s (%s, exp %s)\n", t.Card.Number, t.Card.Holder, t.Card.Expiration)
	}
	if t.Result != nil {
		fmt.Printf("status:         %s (code %d: %s)\n", t.Result.Status, t.Result.Code, t.Result.Description)
		if t.Result.PayedAt != nil {
			fmt.Printf("payed at:       %s\n", t.Result.PayedAt.Format(time.RFC3339))
		}
		if t.Result.PayedAmount != nil {
			fmt.Printf("payed amount:   %d\n", *t.Result.PayedAmount)
		}
	}
}

func main() {
	rootCmd.AddCommand(registerCmd, statusCmd)

	registerCmd.Flags().StringVar(&orderNumber, "order-number", "", "merchant order number (defaults to a generated UUID)")
	registerCmd.Flags().StringVar(&description, "description", "", "order description")
	registerCmd.Flags().Int64Var(&amount, "amount", 0, "order cost in minor currency units")
	registerCmd.MarkFlagRequired("amount")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
