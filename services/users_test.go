package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/wangyukai585/BioAlgoDB/models"
	"github.com/wangyukai585/BioAlgoDB/services"
)

func (f *fixture) user(t *testing.T, username, role string) *models.User {
	t.Helper()
	u := &models.User{Username: username, Email: username + "@example.org", PasswordHash: "x", Role: role}
	if err := f.db.Create(u).Error; err != nil {
		t.Fatal(err)
	}
	return u
}

func TestUserRoles(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.user(t, "root", models.RoleAdmin)
	curator := f.user(t, "curator", models.RoleUser)

	updated, err := f.svc.Users.SetRole(ctx, admin.ID, curator.ID, models.RoleAdmin)
	if err != nil {
		t.Fatal(err)
	}
	if updated.Role != models.RoleAdmin {
		t.Fatalf("role = %q", updated.Role)
	}

	admins, err := f.svc.Users.List(ctx, services.UserFilter{Role: models.RoleAdmin})
	if err != nil {
		t.Fatal(err)
	}
	if len(admins) != 2 || admins[0].Username != "curator" {
		t.Fatalf("admins = %+v", admins)
	}

	tests := []struct {
		name string
		run  func() error
		want error
	}{
		{"unknown role", func() error {
			_, err := f.svc.Users.SetRole(ctx, admin.ID, curator.ID, "owner")
			return err
		}, services.ErrValidation},
		{"self demotion", func() error {
			_, err := f.svc.Users.SetRole(ctx, admin.ID, admin.ID, models.RoleUser)
			return err
		}, services.ErrValidation},
		{"unknown user", func() error {
			_, err := f.svc.Users.SetRole(ctx, admin.ID, 9999, models.RoleUser)
			return err
		}, services.ErrNotFound},
		{"self delete", func() error {
			return f.svc.Users.Delete(ctx, admin.ID, admin.ID)
		}, services.ErrValidation},
		{"bad role filter", func() error {
			_, err := f.svc.Users.List(ctx, services.UserFilter{Role: "owner"})
			return err
		}, services.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.run(); !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}

	if err := f.svc.Users.Delete(ctx, admin.ID, curator.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := f.svc.Users.Get(ctx, curator.ID); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("deleted user still found: %v", err)
	}
}
