package main

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sangkips/laundromart-api/internal/infrastructure/database"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	migrateAdminID    string
	migrateAdminEmail string
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create tables and seed the laundry catalog",
	Long: `Run auto-migrations and seed the default laundry services.

Pass --admin with an auth provider user id to grant that user the admin role;
running it again for the same user is a no-op.`,
	RunE: runMigrate,
}

func init() {
	migrateCmd.Flags().StringVar(&migrateAdminID, "admin", "", "User id to grant the admin role")
	migrateCmd.Flags().StringVar(&migrateAdminEmail, "admin-email", "", "Email recorded with the admin grant")
}

func runMigrate(_ *cobra.Command, _ []string) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	var adminID uuid.UUID
	if migrateAdminID != "" {
		if adminID, err = uuid.Parse(migrateAdminID); err != nil {
			return errors.Wrap(err, "--admin")
		}
	}

	db, err := database.Open(&cfg.Database, cfg.App.Debug)
	if err != nil {
		return err
	}
	defer func() { _ = database.Close(db) }()

	if err := database.AutoMigrate(db); err != nil {
		return errors.Wrap(err, "migrate")
	}
	if err := database.SeedDefaultData(db); err != nil {
		return errors.Wrap(err, "seed")
	}
	log.Info("database migrated", zap.String("driver", cfg.Database.Driver))

	if adminID != uuid.Nil {
		if err := database.GrantAdmin(db, adminID, migrateAdminEmail); err != nil {
			return errors.Wrap(err, "grant admin")
		}
		log.Info("admin role granted", zap.String("user_id", adminID.String()))
	}
	return nil
}
