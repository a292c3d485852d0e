package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sigandsys.dev/internal/newsletter"
)

var validateKeyCmd = &cobra.Command{
	Use:   "validate-key",
	Short: "Check the SendGrid API key and its marketing permissions",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}

		client := newsletter.NewClient(newsletter.ClientConfig{
			APIKey:  cfg.Mail.APIKey,
			Host:    cfg.Mail.Host,
			Timeout: cfg.Mail.Timeout,
		}, nil, logger)

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Validating SendGrid API key...")

		profile, err := client.Validate(cmd.Context())
		if err != nil {
			fmt.Fprintf(out, "Key check failed: %v\n", err)
			return err
		}

		fmt.Fprintln(out, "API key is valid")
		fmt.Fprintf(out, "  Account: %s\n", profile.Email)
		if profile.Company != "" {
			fmt.Fprintf(out, "  Company: %s\n", profile.Company)
		}
		if profile.MarketingAccess {
			fmt.Fprintln(out, "  Marketing contacts: accessible")
		} else {
			fmt.Fprintln(out, "  Marketing contacts: limited access; the key may lack marketing permissions")
		}
		return nil
	},
}
