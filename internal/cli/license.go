package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tokenfold/tokenfold/internal/config"
	"github.com/tokenfold/tokenfold/internal/errors"
	"github.com/tokenfold/tokenfold/internal/license"
)

// NewLicenseCmd creates the license command group.
func NewLicenseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "license",
		Short: "Verify and manage the license key",
	}

	cmd.AddCommand(newLicenseVerifyCmd())
	cmd.AddCommand(newLicenseSetCmd())

	return cmd
}

func newLicenseVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify [key]",
		Short: "Check a license key",
		Long: `Checks a license key's format, signature, and expiry. With no
argument, verifies the key stored in the config file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var key string
			if len(args) == 1 {
				key = args[0]
			} else {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				if cfg.License == "" {
					printInfo("Plan", "free (no license configured)")
					return nil
				}
				key = cfg.License
			}

			v := license.Verify(key, time.Now())
			if !v.Valid {
				return errors.LicenseInvalid(v.Reason)
			}

			printSuccess("License is valid")
			printInfo("Plan", string(v.Plan))
			printInfo("Expires", v.Expiry.Format("2006-01-02"))
			printInfo("Days remaining", fmt.Sprintf("%d", v.DaysRemaining))
			return nil
		},
	}
}

func newLicenseSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key>",
		Short: "Verify a license key and store it in the config",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			v := license.Verify(key, time.Now())
			if !v.Valid {
				return errors.LicenseInvalid(v.Reason)
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			cfg.License = key
			if err := config.Save(cfg); err != nil {
				return err
			}

			printSuccess("License saved (%s, expires %s)", v.Plan, v.Expiry.Format("2006-01-02"))
			if v.DaysRemaining <= 7 {
				printWarning("License expires in %d days", v.DaysRemaining)
			}
			return nil
		},
	}
}
