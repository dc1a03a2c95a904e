package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/mroshb/shooty_game/internal/catalog"
	"github.com/mroshb/shooty_game/internal/config"
	"github.com/mroshb/shooty_game/internal/database"
	"github.com/mroshb/shooty_game/pkg/logger"
)

func main() {
	path := flag.String("file", "weapons.xlsx", "xlsx workbook with the weapon catalog")
	sheet := flag.String("sheet", "", "sheet name (defaults to the first sheet)")
	dryRun := flag.Bool("dry-run", false, "parse and print rows without writing to the database")
	flag.Parse()

	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	rows, rowErrors, err := catalog.OpenWorkbook(*path, *sheet)
	if err != nil {
		log.Fatal(err)
	}
	for _, rowErr := range rowErrors {
		fmt.Printf("Skipping %v\n", rowErr)
	}

	if *dryRun {
		for _, row := range rows {
			fmt.Printf("%d: [%s/slot %d] %s price=%d reload=%d mag=%d rate=%d mode=%s\n",
				row.Line, row.TypeName, row.EquipmentSlot, row.Name, row.Price,
				row.ReloadSpeed, row.MagSize, row.FireRate, row.FireMode)
		}
		fmt.Printf("Parsed %d weapons (%d rows skipped).\n", len(rows), len(rowErrors))
		return
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger.Init(cfg.LogLevel, cfg.AppEnv)
	defer logger.Sync()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal("failed to connect database:", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	result, err := catalog.Import(context.Background(), db, rows)
	if err != nil {
		log.Fatal("import failed:", err)
	}

	fmt.Printf("Imported %d weapons: %d created, %d updated, %d new weapon types.\n",
		len(rows), result.WeaponsCreated, result.WeaponsUpdated, result.TypesCreated)
}
