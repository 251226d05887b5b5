package service

import (
	"context"
	"testing"
	"time"

	"github.com/mypaws/adoption-service/internal/domain"
)

func TestAdminSetUserStatus(t *testing.T) {
	t.Parallel()
	store := newFakeStore()
	svc := NewAdminService(&fakeUsers{store}, &fakeUsages{store})

	target := &domain.User{Name: "Ravi", Email: "ravi@example.com", Status: domain.UserStatusActive}
	if err := (&fakeUsers{store}).Create(context.Background(), target); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	updated, err := svc.SetUserStatus(context.Background(), "admin-1", target.ID, domain.UserStatusSuspended)
	if err != nil {
		t.Fatalf("suspend: %v", err)
	}
	if updated.Status != domain.UserStatusSuspended {
		t.Fatalf("status = %s, want suspended", updated.Status)
	}

	// Reinstate.
	updated, err = svc.SetUserStatus(context.Background(), "admin-1", target.ID, domain.UserStatusActive)
	if err != nil {
		t.Fatalf("reinstate: %v", err)
	}
	if updated.Status != domain.UserStatusActive {
		t.Fatalf("status = %s, want active", updated.Status)
	}

	_, err = svc.SetUserStatus(context.Background(), "admin-1", target.ID, domain.UserStatusDeleted)
	if code := domainErrCode(t, err); code != "validation_failed" {
		t.Fatalf("error code = %s, want validation_failed", code)
	}

	_, err = svc.SetUserStatus(context.Background(), target.ID, target.ID, domain.UserStatusBanned)
	if code := domainErrCode(t, err); code != "validation_failed" {
		t.Fatalf("self-moderation error code = %s, want validation_failed", code)
	}

	_, err = svc.SetUserStatus(context.Background(), "admin-1", "user-missing", domain.UserStatusBanned)
	if code := domainErrCode(t, err); code != "user_not_found" {
		t.Fatalf("error code = %s, want user_not_found", code)
	}
}

func TestAdminDeleteUser(t *testing.T) {
	t.Parallel()
	store := newFakeStore()
	svc := NewAdminService(&fakeUsers{store}, &fakeUsages{store})

	target := &domain.User{Name: "Ravi", Email: "ravi@example.com", Status: domain.UserStatusActive}
	if err := (&fakeUsers{store}).Create(context.Background(), target); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	if err := svc.DeleteUser(context.Background(), "admin-1", target.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := (&fakeUsers{store}).GetByID(context.Background(), target.ID); err == nil {
		t.Fatal("deleted user must not resolve")
	}

	err := svc.DeleteUser(context.Background(), "admin-1", "admin-1")
	if code := domainErrCode(t, err); code != "validation_failed" {
		t.Fatalf("self-delete error code = %s, want validation_failed", code)
	}
	err = svc.DeleteUser(context.Background(), "admin-1", "user-missing")
	if code := domainErrCode(t, err); code != "user_not_found" {
		t.Fatalf("error code = %s, want user_not_found", code)
	}
}

func TestAdminExpireUsages(t *testing.T) {
	t.Parallel()
	store := newFakeStore()
	svc := NewAdminService(&fakeUsers{store}, &fakeUsages{store})

	now := time.Now()
	usages := &fakeUsages{store}
	expired := &domain.ListingUsage{
		UserID:      "user-1",
		ListingType: domain.ListingTypeAdoption,
		ListingID:   "adoption-1",
		PricingTier: domain.TierStandard,
		Status:      domain.UsageStatusActive,
		ValidFrom:   now.Add(-91 * 24 * time.Hour),
		ValidUntil:  now.Add(-24 * time.Hour),
	}
	current := &domain.ListingUsage{
		UserID:      "user-1",
		ListingType: domain.ListingTypeBreeder,
		ListingID:   "sale-1",
		PricingTier: domain.TierStandard,
		Status:      domain.UsageStatusActive,
		ValidFrom:   now,
		ValidUntil:  now.Add(30 * 24 * time.Hour),
	}
	for _, usage := range []*domain.ListingUsage{expired, current} {
		if err := usages.Create(context.Background(), usage); err != nil {
			t.Fatalf("seed usage: %v", err)
		}
	}

	count, err := svc.ExpireUsages(context.Background())
	if err != nil {
		t.Fatalf("expire: %v", err)
	}
	if count != 1 {
		t.Fatalf("expired = %d, want 1", count)
	}

	remaining, _ := usages.ListByUser(context.Background(), "user-1")
	for _, usage := range remaining {
		if usage.ListingID == "adoption-1" && usage.Status != domain.UsageStatusExpired {
			t.Fatalf("stale usage status = %s, want expired", usage.Status)
		}
		if usage.ListingID == "sale-1" && usage.Status != domain.UsageStatusActive {
			t.Fatalf("current usage status = %s, want active", usage.Status)
		}
	}
}
