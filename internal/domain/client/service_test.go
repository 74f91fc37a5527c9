package client

import (
	"context"
	"fmt"
	"regexp"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	platformerrors "gallery-server/internal/platform/errors"
	"gallery-server/internal/platform/storage"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:client-test-%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := storage.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestCreateGeneratesURLSafeKeys(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newTestDB(t))

	keyPattern := regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	seen := make(map[string]bool)

	for i := 0; i < 20; i++ {
		record, err := svc.Create(ctx, fmt.Sprintf("Client %d", i))
		if err != nil {
			t.Fatalf("Create error: %v", err)
		}
		if !keyPattern.MatchString(record.ClientKey) {
			t.Errorf("key %q is not URL-safe base64", record.ClientKey)
		}
		if seen[record.ClientKey] {
			t.Fatalf("duplicate access key generated: %q", record.ClientKey)
		}
		seen[record.ClientKey] = true
	}
}

func TestCreateRejectsEmptyName(t *testing.T) {
	svc := NewService(newTestDB(t))

	for _, name := range []string{"", "   "} {
		_, err := svc.Create(context.Background(), name)
		if !platformerrors.IsKind(err, platformerrors.KindValidation) {
			t.Errorf("Create(%q) error = %v, expected validation kind", name, err)
		}
	}
}

func TestListNewestFirst(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc := NewService(db)

	// Backdate rows explicitly; creation inside one test run can land
	// on the same timestamp.
	older := storage.Client{Name: "Older", ClientKey: "key-older", CreatedAt: time.Now().Add(-time.Hour)}
	newer := storage.Client{Name: "Newer", ClientKey: "key-newer", CreatedAt: time.Now()}
	if err := db.Create(&older).Error; err != nil {
		t.Fatalf("seed older: %v", err)
	}
	if err := db.Create(&newer).Error; err != nil {
		t.Fatalf("seed newer: %v", err)
	}

	clients, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(clients) != 2 {
		t.Fatalf("len = %d, expected 2", len(clients))
	}
	if clients[0].Name != "Newer" || clients[1].Name != "Older" {
		t.Errorf("ordering = [%s, %s], expected newest first", clients[0].Name, clients[1].Name)
	}
}

func TestAuthenticateByKey(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newTestDB(t))

	record, err := svc.Create(ctx, "Alice")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	found, err := svc.AuthenticateByKey(ctx, record.ClientKey)
	if err != nil {
		t.Fatalf("AuthenticateByKey error: %v", err)
	}
	if found.ID != record.ID {
		t.Errorf("authenticated id = %d, expected %d", found.ID, record.ID)
	}

	_, err = svc.AuthenticateByKey(ctx, "never-issued-key")
	if !platformerrors.IsKind(err, platformerrors.KindAuth) {
		t.Errorf("unknown key error = %v, expected auth kind", err)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newTestDB(t))

	record, err := svc.Create(ctx, "Temp")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if err := svc.Delete(ctx, record.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if err := svc.Delete(ctx, record.ID); err != nil {
		t.Fatalf("second Delete should succeed silently, got %v", err)
	}
	if err := svc.Delete(ctx, 9999); err != nil {
		t.Fatalf("Delete of unknown id should succeed silently, got %v", err)
	}

	if _, err := svc.Get(ctx, record.ID); !platformerrors.IsKind(err, platformerrors.KindNotFound) {
		t.Errorf("Get after delete error = %v, expected notfound kind", err)
	}
}
