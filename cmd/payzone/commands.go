package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/Vantage-Payment-Systems/payzone-prestashop/connect2pay"
	"github.com/Vantage-Payment-Systems/payzone-prestashop/currency"
	"github.com/Vantage-Payment-Systems/payzone-prestashop/merchant"
)

func newPrepareCmd() *cobra.Command {
	var (
		orderID      string
		currencyCode string
		amount       int64
		shipping     string
		description  string
		callbackURL  string
		redirectURL  string
	)

	cmd := &cobra.Command{
		Use:   "prepare",
		Short: "Prepare a payment and print the shopper redirect URL",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			tx := connect2pay.NewTransaction().
				SetOrderID(orderID).
				SetOrderDescription(description).
				SetCurrency(currencyCode).
				SetAmount(amount).
				SetShippingType(shipping).
				SetPaymentMode(connect2pay.PaymentModeSingle).
				SetCtrlCallbackURL(callbackURL).
				SetCtrlRedirectURL(redirectURL)

			result, err := client.PreparePayment(cmd.Context(), tx)
			if err != nil {
				return err
			}
			if !result.Succeeded() {
				return fmt.Errorf("refused: code %s: %s", result.Code, result.Message)
			}

			return printJSON(map[string]string{
				"merchantToken": result.MerchantToken,
				"customerToken": result.CustomerToken,
				"redirectURL":   client.CustomerRedirectURL(result.CustomerToken),
			})
		},
	}

	cmd.Flags().StringVar(&orderID, "order", "", "order id")
	cmd.Flags().StringVar(&currencyCode, "currency", "MAD", "ISO 4217 alphabetic currency code")
	cmd.Flags().Int64Var(&amount, "amount", 0, "amount in minor currency units")
	cmd.Flags().StringVar(&shipping, "shipping", connect2pay.ShippingTypeVirtual, "shipping type (Physical, Virtual, Access)")
	cmd.Flags().StringVar(&description, "description", "", "order description")
	cmd.Flags().StringVar(&callbackURL, "callback-url", "", "server callback URL")
	cmd.Flags().StringVar(&redirectURL, "redirect-url", "", "shopper redirect URL")
	cmd.MarkFlagRequired("order")
	cmd.MarkFlagRequired("amount")

	return cmd
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status [merchant-token]",
		Short: "Fetch the status of a payment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			status, err := client.PaymentStatus(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return printJSON(status)
		},
	}
}

func newRefundCmd() *cobra.Command {
	var amount int64

	cmd := &cobra.Command{
		Use:   "refund [transaction-id]",
		Short: "Refund a captured transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			result, err := client.RefundTransaction(cmd.Context(), args[0], amount)
			if err != nil {
				return err
			}

			return printJSON(result)
		},
	}

	cmd.Flags().Int64Var(&amount, "amount", 0, "amount to refund in minor currency units")
	cmd.MarkFlagRequired("amount")

	return cmd
}

func newCancelSubCmd() *cobra.Command {
	var reason int

	cmd := &cobra.Command{
		Use:   "cancel-sub [subscription-id]",
		Short: "Cancel a subscription",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			subscriptionID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid subscription id %q", args[0])
			}

			result, err := client.CancelSubscription(cmd.Context(), subscriptionID, connect2pay.CancelReason(reason))
			if err != nil {
				return err
			}

			return printJSON(result)
		},
	}

	cmd.Flags().IntVar(&reason, "reason", int(connect2pay.CancelUndetermined), "cancellation reason code")

	return cmd
}

func newRateCmd() *cobra.Command {
	var (
		from       string
		to         string
		amount     string
		rateURL    string
		minorUnits bool
	)

	cmd := &cobra.Command{
		Use:   "rate",
		Short: "Fetch an exchange rate, optionally converting an amount",
		RunE: func(cmd *cobra.Command, args []string) error {
			helper := currency.NewHelper(
				currency.WithServiceURL(rateURL),
				currency.WithLogger(newLogger()),
			)

			rate, err := helper.GetRate(cmd.Context(), from, to, flagOriginator, flagPassword)
			if err != nil {
				return err
			}

			out := map[string]string{"from": from, "to": to, "rate": rate.String()}

			if amount != "" {
				value, err := decimal.NewFromString(amount)
				if err != nil {
					return fmt.Errorf("invalid amount %q", amount)
				}
				converted, err := helper.Convert(cmd.Context(), value, from, to, flagOriginator, flagPassword, minorUnits)
				if err != nil {
					return err
				}
				out["converted"] = converted.String()
			}

			return printJSON(out)
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "source currency code")
	cmd.Flags().StringVar(&to, "to", "MAD", "target currency code")
	cmd.Flags().StringVar(&amount, "amount", "", "amount to convert")
	cmd.Flags().StringVar(&rateURL, "rate-url", "", "rate service URL override")
	cmd.Flags().BoolVar(&minorUnits, "minor-units", false, "treat the amount as minor currency units")
	cmd.MarkFlagRequired("from")

	return cmd
}

func newServeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the merchant callback server",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()

			config, err := merchant.LoadConfig(configPath)
			if err != nil {
				return err
			}

			app := merchant.NewApp(logger, config, merchant.NewMemoryOrderSystem())
			if err := app.Start(); err != nil {
				return err
			}

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
			<-stop

			app.Shutdown()
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "payzone.yaml", "path to the YAML config file")

	return cmd
}
