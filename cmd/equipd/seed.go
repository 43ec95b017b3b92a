package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"equipment-tracker-backend/internal/db"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the configured equipment types",
	Long:  `Migrates the schema and inserts every name under seed.equipment_types. Existing names are left untouched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		gormDB, err := db.Init(&cfg.Database, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		if sqlDB, err := gormDB.DB(); err == nil {
			defer sqlDB.Close()
		}
		return seedTypes(cmd.Context(), gormDB)
	},
}

func seedTypes(ctx context.Context, gormDB *gorm.DB) error {
	inserted, err := db.SeedEquipmentTypes(ctx, gormDB, cfg.Seed.EquipmentTypes)
	if err != nil {
		return fmt.Errorf("failed to seed equipment types: %w", err)
	}
	logger.Info("equipment types seeded", "configured", len(cfg.Seed.EquipmentTypes), "inserted", inserted)
	return nil
}
