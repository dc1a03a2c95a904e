package services

import (
	"context"
	"testing"

	"github.com/mroshb/shooty_game/internal/models"
	"github.com/mroshb/shooty_game/pkg/errors"
)

func TestCatalogService_WeaponTypes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	catalog := NewCatalogService(env.weapons)

	rifle, err := catalog.CreateWeaponType(ctx, WeaponTypeInput{Name: " Rifle ", EquipmentSlot: 1})
	if err != nil {
		t.Fatalf("CreateWeaponType() error = %v", err)
	}
	if rifle.Name != "Rifle" {
		t.Errorf("Name = %q, want trimmed", rifle.Name)
	}
	if _, err := catalog.CreateWeaponType(ctx, WeaponTypeInput{Name: "Pistol", EquipmentSlot: 2}); err != nil {
		t.Fatalf("CreateWeaponType() error = %v", err)
	}

	tests := []struct {
		name     string
		in       WeaponTypeInput
		wantCode string
	}{
		{"Duplicate name", WeaponTypeInput{Name: "Rifle", EquipmentSlot: 3}, errors.ErrCodeAlreadyExists},
		{"Empty name", WeaponTypeInput{Name: "  "}, errors.ErrCodeValidation},
		{"Negative slot", WeaponTypeInput{Name: "Knife", EquipmentSlot: -1}, errors.ErrCodeValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := catalog.CreateWeaponType(ctx, tt.in)
			if !errors.HasCode(err, tt.wantCode) {
				t.Errorf("CreateWeaponType() error = %v, want %s", err, tt.wantCode)
			}
		})
	}

	types, err := catalog.ListWeaponTypes(ctx)
	if err != nil {
		t.Fatalf("ListWeaponTypes() error = %v", err)
	}
	if len(types) != 2 || types[0].Name != "Rifle" {
		t.Errorf("ListWeaponTypes() = %+v, want Rifle then Pistol", types)
	}

	updated, err := catalog.UpdateWeaponType(ctx, rifle.ID, WeaponTypeInput{Name: "Assault Rifle", EquipmentSlot: 1})
	if err != nil {
		t.Fatalf("UpdateWeaponType() error = %v", err)
	}
	if updated.Name != "Assault Rifle" {
		t.Errorf("UpdateWeaponType() name = %q", updated.Name)
	}
	if _, err := catalog.UpdateWeaponType(ctx, 999, WeaponTypeInput{Name: "Ghost"}); !errors.HasCode(err, errors.ErrCodeNotFound) {
		t.Errorf("UpdateWeaponType(999) error = %v, want %s", err, errors.ErrCodeNotFound)
	}

	if err := catalog.DeleteWeaponType(ctx, rifle.ID); err != nil {
		t.Fatalf("DeleteWeaponType() error = %v", err)
	}
	if _, err := catalog.GetWeaponType(ctx, rifle.ID); !errors.HasCode(err, errors.ErrCodeNotFound) {
		t.Errorf("GetWeaponType() after delete error = %v, want %s", err, errors.ErrCodeNotFound)
	}
}

func TestCatalogService_Weapons(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	catalog := NewCatalogService(env.weapons)

	rifle, _ := catalog.CreateWeaponType(ctx, WeaponTypeInput{Name: "Rifle", EquipmentSlot: 1})
	pistol, _ := catalog.CreateWeaponType(ctx, WeaponTypeInput{Name: "Pistol", EquipmentSlot: 2})

	m4, err := catalog.CreateWeapon(ctx, WeaponInput{WeaponTypeID: rifle.ID, Name: "M4A1", MagSize: 30, FireRate: 800, FireMode: "AUTO"})
	if err != nil {
		t.Fatalf("CreateWeapon() error = %v", err)
	}
	if m4.FireMode != models.FireModeAuto || m4.WeaponType.Name != "Rifle" {
		t.Errorf("CreateWeapon() = %+v, want auto with its type loaded", m4)
	}

	glock, err := catalog.CreateWeapon(ctx, WeaponInput{WeaponTypeID: pistol.ID, Name: "Glock 17", MagSize: 17})
	if err != nil {
		t.Fatalf("CreateWeapon() error = %v", err)
	}
	if glock.FireMode != models.FireModeSingle {
		t.Errorf("default FireMode = %s, want single", glock.FireMode)
	}

	tests := []struct {
		name     string
		in       WeaponInput
		wantCode string
	}{
		{"Unknown type", WeaponInput{WeaponTypeID: 999, Name: "Ghost"}, errors.ErrCodeNotFound},
		{"Duplicate name", WeaponInput{WeaponTypeID: rifle.ID, Name: "M4A1"}, errors.ErrCodeAlreadyExists},
		{"Negative price", WeaponInput{WeaponTypeID: rifle.ID, Name: "Cheap", Price: -5}, errors.ErrCodeValidation},
		{"Bad fire mode", WeaponInput{WeaponTypeID: rifle.ID, Name: "Laser", FireMode: "plasma"}, errors.ErrCodeValidation},
		{"Missing name", WeaponInput{WeaponTypeID: rifle.ID}, errors.ErrCodeValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := catalog.CreateWeapon(ctx, tt.in)
			if !errors.HasCode(err, tt.wantCode) {
				t.Errorf("CreateWeapon() error = %v, want %s", err, tt.wantCode)
			}
		})
	}

	rifles, err := catalog.ListWeapons(ctx, rifle.ID)
	if err != nil {
		t.Fatalf("ListWeapons() error = %v", err)
	}
	if len(rifles) != 1 || rifles[0].ID != m4.ID {
		t.Errorf("ListWeapons(rifle) = %+v, want only M4A1", rifles)
	}
	all, _ := catalog.ListWeapons(ctx, 0)
	if len(all) != 2 {
		t.Errorf("ListWeapons(0) returned %d, want 2", len(all))
	}

	moved, err := catalog.UpdateWeapon(ctx, glock.ID, WeaponInput{WeaponTypeID: rifle.ID, Name: "Glock 18", MagSize: 33, FireMode: "burst"})
	if err != nil {
		t.Fatalf("UpdateWeapon() error = %v", err)
	}
	if moved.Name != "Glock 18" || moved.WeaponType.ID != rifle.ID || moved.FireMode != models.FireModeBurst {
		t.Errorf("UpdateWeapon() = %+v", moved)
	}

	if err := catalog.DeleteWeapon(ctx, m4.ID); err != nil {
		t.Fatalf("DeleteWeapon() error = %v", err)
	}
	if err := catalog.DeleteWeapon(ctx, m4.ID); !errors.HasCode(err, errors.ErrCodeNotFound) {
		t.Errorf("second DeleteWeapon() error = %v, want %s", err, errors.ErrCodeNotFound)
	}
}
