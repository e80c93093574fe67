package main

import (
	"fmt"

	"github.com/api-sage/intl-payments-portal/src/internal/adapter/http/models"
	"github.com/api-sage/intl-payments-portal/src/internal/config"
	"github.com/api-sage/intl-payments-portal/src/internal/logger"
	"github.com/spf13/cobra"
)

const (
	defaultEmployeeAccount  = "9000000001"
	defaultEmployeeName     = "Bank Employee"
	defaultEmployeeIDNumber = "0000000000000"
)

func seedEmployeeCmd() *cobra.Command {
	var req models.RegisterRequest

	cmd := &cobra.Command{
		Use:   "seed-employee",
		Short: "Create the employee account used to review payments",
		Long: `Create an employee account if it does not already exist.

The password falls back to SEED_EMPLOYEE_PASSWORD.

Examples:
  intl-payments-portal seed-employee --password 'S3cure!Pass'
  intl-payments-portal seed-employee --account 9000000002 --name "Second Reviewer" --id-number 0000000000001`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.StorageDriver == config.StorageDriverMemory {
				return fmt.Errorf("seed-employee needs a persistent STORAGE_DRIVER")
			}
			if req.Password == "" {
				req.Password = cfg.SeedEmployeePassword
			}

			store, err := openStorage(cmd.Context(), cfg, false)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			employee, created, err := newAuthService(cfg, store.customers).EnsureEmployee(cmd.Context(), req)
			if err != nil {
				return err
			}

			logger.Info("seed employee finished", logger.Fields{
				"accountNumber": employee.AccountNumber,
				"created":       created,
			})
			return nil
		},
	}

	cmd.Flags().StringVar(&req.AccountNumber, "account", defaultEmployeeAccount, "employee account number")
	cmd.Flags().StringVar(&req.Password, "password", "", "employee password")
	cmd.Flags().StringVar(&req.FullName, "name", defaultEmployeeName, "employee full name")
	cmd.Flags().StringVar(&req.IDNumber, "id-number", defaultEmployeeIDNumber, "employee national id number")
	return cmd
}
