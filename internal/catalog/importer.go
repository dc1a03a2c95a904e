// Package catalog imports the weapon catalog from an xlsx workbook.
//
// The first row of the sheet is a header. Each following row holds:
// type name, equipment slot, weapon name, price, reload speed, mag size,
// fire rate, fire mode.
package catalog

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mroshb/shooty_game/internal/database"
	"github.com/mroshb/shooty_game/internal/models"
	"github.com/mroshb/shooty_game/internal/repositories"
	"github.com/mroshb/shooty_game/pkg/errors"
	"github.com/mroshb/shooty_game/pkg/logger"
	"github.com/mroshb/shooty_game/pkg/utils"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

const columnCount = 8

// Header is the expected first row of a weapon sheet.
var Header = []string{"Type", "Slot", "Name", "Price", "ReloadSpeed", "MagSize", "FireRate", "FireMode"}

type WeaponRow struct {
	Line          int
	TypeName      string
	EquipmentSlot int
	Name          string
	Price         int64
	ReloadSpeed   int
	MagSize       int
	FireRate      int
	FireMode      models.FireMode
}

// RowError describes a row that could not be parsed.
type RowError struct {
	Line int
	Err  error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Line, e.Err)
}

type Result struct {
	TypesCreated   int
	WeaponsCreated int
	WeaponsUpdated int
}

// OpenWorkbook reads the first sheet of the workbook at path, or sheet when it is set.
func OpenWorkbook(path, sheet string) ([]WeaponRow, []RowError, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	return ParseWeaponSheet(f, sheet)
}

// ParseWeaponSheet reads weapon rows from sheet. Bad rows are reported and skipped.
func ParseWeaponSheet(f *excelize.File, sheet string) ([]WeaponRow, []RowError, error) {
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	var parsed []WeaponRow
	var rowErrors []RowError
	for i, row := range rows {
		line := i + 1
		if i == 0 || isBlank(row) {
			continue
		}

		weapon, err := parseRow(row)
		if err != nil {
			rowErrors = append(rowErrors, RowError{Line: line, Err: err})
			continue
		}
		weapon.Line = line
		parsed = append(parsed, weapon)
	}

	return parsed, rowErrors, nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func parseRow(row []string) (WeaponRow, error) {
	if len(row) < columnCount-1 {
		return WeaponRow{}, fmt.Errorf("expected %d columns, got %d", columnCount, len(row))
	}
	cell := func(i int) string {
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	number := func(i int) string {
		return utils.NormalizeNumber(cell(i))
	}

	var w WeaponRow
	var err error

	w.TypeName = cell(0)
	w.Name = cell(2)
	if w.TypeName == "" || w.Name == "" {
		return WeaponRow{}, fmt.Errorf("type and weapon name are required")
	}

	if w.EquipmentSlot, err = strconv.Atoi(number(1)); err != nil {
		return WeaponRow{}, fmt.Errorf("invalid slot %q", cell(1))
	}
	if w.Price, err = strconv.ParseInt(number(3), 10, 64); err != nil {
		return WeaponRow{}, fmt.Errorf("invalid price %q", cell(3))
	}
	if w.ReloadSpeed, err = strconv.Atoi(number(4)); err != nil {
		return WeaponRow{}, fmt.Errorf("invalid reload speed %q", cell(4))
	}
	if w.MagSize, err = strconv.Atoi(number(5)); err != nil {
		return WeaponRow{}, fmt.Errorf("invalid mag size %q", cell(5))
	}
	if w.FireRate, err = strconv.Atoi(number(6)); err != nil {
		return WeaponRow{}, fmt.Errorf("invalid fire rate %q", cell(6))
	}

	// An empty fire mode column means single.
	w.FireMode = models.FireModeSingle
	if raw := cell(7); raw != "" {
		mode, ok := models.ParseFireMode(raw)
		if !ok {
			return WeaponRow{}, fmt.Errorf("invalid fire mode %q", raw)
		}
		w.FireMode = mode
	}

	return w, nil
}

// Import upserts rows by name in a single transaction. Weapon types are
// created on first use; existing weapons take the sheet's stats.
func Import(ctx context.Context, db *gorm.DB, rows []WeaponRow) (Result, error) {
	var result Result

	err := database.WithTx(ctx, db, func(tx *gorm.DB) error {
		repo := repositories.NewWeaponRepository(tx)
		types := map[string]*models.WeaponType{}

		for _, row := range rows {
			weaponType, ok := types[row.TypeName]
			if !ok {
				var err error
				weaponType, err = repo.GetWeaponTypeByName(ctx, row.TypeName)
				if errors.HasCode(err, errors.ErrCodeNotFound) {
					weaponType = &models.WeaponType{Name: row.TypeName, EquipmentSlot: row.EquipmentSlot}
					err = repo.CreateWeaponType(ctx, weaponType)
					result.TypesCreated++
				}
				if err != nil {
					return fmt.Errorf("row %d: %w", row.Line, err)
				}
				types[row.TypeName] = weaponType
			}

			weapon, err := repo.GetWeaponByName(ctx, row.Name)
			switch {
			case errors.HasCode(err, errors.ErrCodeNotFound):
				weapon = &models.Weapon{Name: row.Name}
				applyRow(weapon, weaponType.ID, row)
				if err := repo.CreateWeapon(ctx, weapon); err != nil {
					return fmt.Errorf("row %d: %w", row.Line, err)
				}
				result.WeaponsCreated++
			case err != nil:
				return fmt.Errorf("row %d: %w", row.Line, err)
			default:
				applyRow(weapon, weaponType.ID, row)
				if err := repo.UpdateWeapon(ctx, weapon); err != nil {
					return fmt.Errorf("row %d: %w", row.Line, err)
				}
				result.WeaponsUpdated++
			}
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	logger.Info("Weapon catalog imported",
		"types_created", result.TypesCreated,
		"weapons_created", result.WeaponsCreated,
		"weapons_updated", result.WeaponsUpdated)
	return result, nil
}

func applyRow(weapon *models.Weapon, typeID uint, row WeaponRow) {
	weapon.WeaponTypeID = typeID
	weapon.Price = row.Price
	weapon.ReloadSpeed = row.ReloadSpeed
	weapon.MagSize = row.MagSize
	weapon.FireRate = row.FireRate
	weapon.FireMode = row.FireMode
}
