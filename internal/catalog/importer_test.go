package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/mroshb/shooty_game/internal/config"
	"github.com/mroshb/shooty_game/internal/database"
	"github.com/mroshb/shooty_game/internal/models"
	"github.com/mroshb/shooty_game/internal/repositories"
	"github.com/xuri/excelize/v2"
)

func newWorkbook(t *testing.T, rows [][]interface{}) *excelize.File {
	t.Helper()

	f := excelize.NewFile()
	t.Cleanup(func() { f.Close() })

	header := make([]interface{}, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow("Sheet1", "A1", &header); err != nil {
		t.Fatalf("SetSheetRow(header) error = %v", err)
	}
	for i, row := range rows {
		row := row
		if err := f.SetSheetRow("Sheet1", fmt.Sprintf("A%d", i+2), &row); err != nil {
			t.Fatalf("SetSheetRow(%d) error = %v", i+2, err)
		}
	}
	return f
}

func TestParseWeaponSheet(t *testing.T) {
	f := newWorkbook(t, [][]interface{}{
		{"Rifle", 1, "M4A1", 0, 2, 30, 800, "auto"},
		{"Pistol", 2, "Glock 17", "۱,۲۰۰", 1, 17, 400},
		{"Rifle", "one", "Broken", 0, 2, 30, 800, "auto"},
		{"Rifle", 1, "Laser", 0, 2, 30, 800, "plasma"},
		{},
	})

	rows, rowErrors, err := ParseWeaponSheet(f, "")
	if err != nil {
		t.Fatalf("ParseWeaponSheet() error = %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("ParseWeaponSheet() returned %d rows, want 2", len(rows))
	}
	if rows[0].Name != "M4A1" || rows[0].FireMode != models.FireModeAuto || rows[0].MagSize != 30 || rows[0].Line != 2 {
		t.Errorf("rows[0] = %+v", rows[0])
	}
	if rows[1].Price != 1200 {
		t.Errorf("rows[1].Price = %d, want 1200 from a localized cell", rows[1].Price)
	}
	if rows[1].FireMode != models.FireModeSingle {
		t.Errorf("rows[1].FireMode = %s, want single when the column is empty", rows[1].FireMode)
	}

	if len(rowErrors) != 2 {
		t.Fatalf("row errors = %v, want 2", rowErrors)
	}
	if rowErrors[0].Line != 4 || rowErrors[1].Line != 5 {
		t.Errorf("row error lines = %d, %d, want 4, 5", rowErrors[0].Line, rowErrors[1].Line)
	}
}

func TestImport_Upserts(t *testing.T) {
	cfg := &config.Config{
		DBDriver: config.DriverSQLite,
		DBPath:   fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
		AppEnv:   "test",
	}
	db, err := database.Connect(cfg)
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate() error = %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	ctx := context.Background()

	first := []WeaponRow{
		{Line: 2, TypeName: "Rifle", EquipmentSlot: 1, Name: "M4A1", Price: 0, ReloadSpeed: 2, MagSize: 30, FireRate: 800, FireMode: models.FireModeAuto},
		{Line: 3, TypeName: "Rifle", EquipmentSlot: 1, Name: "AK-47", Price: 2700, ReloadSpeed: 3, MagSize: 30, FireRate: 600, FireMode: models.FireModeAuto},
	}
	result, err := Import(ctx, db, first)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if result != (Result{TypesCreated: 1, WeaponsCreated: 2}) {
		t.Errorf("Import() = %+v, want 1 type and 2 weapons created", result)
	}

	second := []WeaponRow{
		{Line: 2, TypeName: "Rifle", EquipmentSlot: 1, Name: "AK-47", Price: 2500, ReloadSpeed: 3, MagSize: 30, FireRate: 600, FireMode: models.FireModeBurst},
	}
	result, err = Import(ctx, db, second)
	if err != nil {
		t.Fatalf("second Import() error = %v", err)
	}
	if result != (Result{WeaponsUpdated: 1}) {
		t.Errorf("second Import() = %+v, want 1 weapon updated", result)
	}

	ak, err := repositories.NewWeaponRepository(db).GetWeaponByName(ctx, "AK-47")
	if err != nil {
		t.Fatalf("GetWeaponByName() error = %v", err)
	}
	if ak.Price != 2500 || ak.FireMode != models.FireModeBurst {
		t.Errorf("AK-47 = (%d, %s), want (2500, burst)", ak.Price, ak.FireMode)
	}

	bad := []WeaponRow{
		{Line: 2, TypeName: "Pistol", EquipmentSlot: 2, Name: "Deagle", Price: 700, ReloadSpeed: 2, MagSize: 7, FireRate: 300, FireMode: models.FireModeSingle},
		{Line: 3, TypeName: "Pistol", EquipmentSlot: 2, Name: "Broken", Price: -1, ReloadSpeed: 2, MagSize: 7, FireRate: 300, FireMode: models.FireModeSingle},
	}
	if _, err := Import(ctx, db, bad); err == nil {
		t.Fatal("Import() with a negative price succeeded, want error")
	}
	if _, err := repositories.NewWeaponRepository(db).GetWeaponByName(ctx, "Deagle"); err == nil {
		t.Error("failed import left Deagle behind, want rollback")
	}
}

func TestOpenWorkbook(t *testing.T) {
	f := newWorkbook(t, [][]interface{}{
		{"Sniper", 1, "AWP", 4750, 4, 5, 40, "single"},
	})
	path := filepath.Join(t.TempDir(), "weapons.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs() error = %v", err)
	}

	rows, rowErrors, err := OpenWorkbook(path, "Sheet1")
	if err != nil {
		t.Fatalf("OpenWorkbook() error = %v", err)
	}
	if len(rows) != 1 || len(rowErrors) != 0 || rows[0].Price != 4750 {
		t.Errorf("OpenWorkbook() = %+v, %v", rows, rowErrors)
	}
}
