package models

import (
	"testing"
)

func TestUser_BeforeCreate(t *testing.T) {
	tests := []struct {
		name     string
		user     User
		wantErr  bool
		wantRole Role
	}{
		{
			name:     "Valid user defaults to user role",
			user:     User{UserName: "alice", Email: "alice@example.com", PlayerTag: "alice#0a1b2c3d", Money: 1000},
			wantErr:  false,
			wantRole: RoleUser,
		},
		{
			name:     "Valid admin",
			user:     User{UserName: "root", Email: "root@example.com", PlayerTag: "root#ffffffff", Role: RoleAdmin},
			wantErr:  false,
			wantRole: RoleAdmin,
		},
		{
			name:    "Empty user name",
			user:    User{UserName: "  ", Email: "a@example.com", PlayerTag: "x#00000000"},
			wantErr: true,
		},
		{
			name:    "Email without at sign",
			user:    User{UserName: "bob", Email: "bob.example.com", PlayerTag: "bob#00000000"},
			wantErr: true,
		},
		{
			name:    "Missing player tag",
			user:    User{UserName: "bob", Email: "bob@example.com"},
			wantErr: true,
		},
		{
			name:    "Unknown role",
			user:    User{UserName: "bob", Email: "bob@example.com", PlayerTag: "bob#00000000", Role: "moderator"},
			wantErr: true,
		},
		{
			name:    "Negative money",
			user:    User{UserName: "bob", Email: "bob@example.com", PlayerTag: "bob#00000000", Money: -1},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := tt.user
			err := user.BeforeCreate(nil)
			if (err != nil) != tt.wantErr {
				t.Errorf("BeforeCreate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && user.Role != tt.wantRole {
				t.Errorf("BeforeCreate() role = %v, want %v", user.Role, tt.wantRole)
			}
		})
	}
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		input  string
		want   Role
		wantOK bool
	}{
		{"admin", RoleAdmin, true},
		{"Admin", RoleAdmin, true},
		{" USER ", RoleUser, true},
		{"root", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseRole(tt.input)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseRole(%q) = (%v, %v), want (%v, %v)", tt.input, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestUser_Summary(t *testing.T) {
	user := &User{ID: 7, UserName: "alice", Email: "alice@example.com", PlayerTag: "alice#0a1b2c3d", Money: 50}
	got := user.Summary()
	want := UserSummary{UserID: 7, UserName: "alice", PlayerTag: "alice#0a1b2c3d"}
	if got != want {
		t.Errorf("Summary() = %+v, want %+v", got, want)
	}
}
