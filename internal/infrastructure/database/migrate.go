package database

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sangkips/laundromart-api/internal/domain/entity"
	"github.com/sangkips/laundromart-api/internal/domain/enum"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	zap.L().Info("running database migrations")

	err := db.AutoMigrate(
		// Catalog
		&entity.Customer{},
		&entity.Merchandise{},
		&entity.LaundryService{},

		// Sales
		&entity.Order{},
		&entity.OrderItem{},
		&entity.Receipt{},

		// Ledgers
		&entity.CustomerLoan{},
		&entity.CustomerLoanPayment{},
		&entity.BusinessLoan{},
		&entity.BusinessLoanPayment{},
		&entity.CustomerCredit{},
		&entity.Expense{},
		&entity.CashToBank{},

		// System
		&entity.UserRole{},
		&entity.IdempotencyKey{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	zap.L().Info("database migrations completed")
	return nil
}

// DefaultLaundryCatalog is seeded on first migration.
func DefaultLaundryCatalog() []entity.LaundryService {
	return []entity.LaundryService{
		{Name: "Wash & Fold", PricePerUnit: 1500, UnitType: "kg"},
		{Name: "Wash & Iron", PricePerUnit: 2500, UnitType: "kg"},
		{Name: "Dry Cleaning - Suit", PricePerUnit: 12000, UnitType: "item"},
		{Name: "Ironing Only", PricePerUnit: 500, UnitType: "item"},
		{Name: "Duvet / Blanket", PricePerUnit: 8000, UnitType: "item"},
	}
}

// SeedDefaultData seeds the laundry catalog when it is empty.
func SeedDefaultData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entity.LaundryService{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	catalog := DefaultLaundryCatalog()
	if err := db.Create(&catalog).Error; err != nil {
		return fmt.Errorf("failed to seed laundry catalog: %w", err)
	}
	zap.L().Info("seeded laundry catalog", zap.Int("services", len(catalog)))
	return nil
}

// GrantAdmin gives a user the admin role unless they already hold it.
func GrantAdmin(db *gorm.DB, userID uuid.UUID, email string) error {
	var existing entity.UserRole
	err := db.Where("user_id = ? AND role = ?", userID, enum.AppRoleAdmin).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	role := &entity.UserRole{UserID: userID, Role: enum.AppRoleAdmin}
	if email != "" {
		role.Email = &email
	}
	if err := db.Create(role).Error; err != nil {
		return err
	}
	zap.L().Info("granted admin role", zap.String("user_id", userID.String()))
	return nil
}
