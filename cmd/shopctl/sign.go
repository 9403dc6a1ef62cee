package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Skotchmaster/shop_checkout/pkg/signature"
)

type secretFlags struct {
	keySecret     string
	webhookSecret string
}

func (f *secretFlags) bind(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&f.keySecret, "key-secret", os.Getenv("GATEWAY_KEY_SECRET"), "gateway key secret")
	cmd.PersistentFlags().StringVar(&f.webhookSecret, "webhook-secret", os.Getenv("GATEWAY_WEBHOOK_SECRET"), "webhook secret, defaults to the key secret")
}

func (f *secretFlags) verifier() (*signature.Verifier, error) {
	if f.keySecret == "" && f.webhookSecret == "" {
		return nil, errors.New("secret required (--key-secret or GATEWAY_KEY_SECRET)")
	}
	return signature.NewVerifier(f.keySecret, f.webhookSecret), nil
}

func signCmd() *cobra.Command {
	var secrets secretFlags

	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Compute gateway signatures for local testing",
	}
	secrets.bind(cmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "payment <gateway-order-id> <gateway-payment-id>",
		Short: "Signature the checkout widget returns to the client",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := secrets.verifier()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), v.SignPayment(args[0], args[1]))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "webhook [file]",
		Short: "Signature header for a webhook body read from file or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := secrets.verifier()
			if err != nil {
				return err
			}
			body, err := readBody(cmd, args)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), v.SignWebhook(body))
			return nil
		},
	})

	return cmd
}

func verifyCmd() *cobra.Command {
	var secrets secretFlags

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check a gateway signature",
	}
	secrets.bind(cmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "payment <gateway-order-id> <gateway-payment-id> <signature>",
		Short: "Check a checkout signature",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := secrets.verifier()
			if err != nil {
				return err
			}
			return report(cmd, v.VerifyPayment(args[0], args[1], args[2]))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "webhook <signature> [file]",
		Short: "Check a webhook signature against a body read from file or stdin",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := secrets.verifier()
			if err != nil {
				return err
			}
			body, err := readBody(cmd, args[1:])
			if err != nil {
				return err
			}
			return report(cmd, v.VerifyWebhook(body, args[0]))
		},
	})

	return cmd
}

var errSignatureMismatch = errors.New("signature mismatch")

func report(cmd *cobra.Command, ok bool) error {
	if !ok {
		return errSignatureMismatch
	}
	fmt.Fprintln(cmd.OutOrStdout(), "ok")
	return nil
}

func readBody(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(args[0])
}
