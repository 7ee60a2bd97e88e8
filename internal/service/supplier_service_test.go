package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"game-center/internal/domain"
	"game-center/internal/repository"
	"game-center/internal/storage"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

func newSupplierFixture(t *testing.T) (SupplierService, *mockSupplierRepository, storage.FileStore, uuid.UUID) {
	t.Helper()

	suppliers := newMockSupplierRepository()
	files := storage.NewFileStore(afero.NewMemMapFs(), "uploads")
	svc := NewSupplierService(suppliers, files)

	userID := uuid.New()
	supplier := &domain.Supplier{
		ID:          uuid.New(),
		UserID:      userID,
		CompanyName: "Juegos del Sur",
		CreatedAt:   time.Now(),
	}
	if err := suppliers.Create(context.Background(), supplier); err != nil {
		t.Fatalf("failed to seed supplier: %v", err)
	}

	return svc, suppliers, files, userID
}

func TestSupplierService_SubmitContactStoresFile(t *testing.T) {
	svc, _, files, userID := newSupplierFixture(t)
	ctx := context.Background()

	content := "new winter catalog"
	contact, err := svc.SubmitContact(ctx, userID, "catalog update", "catalog.pdf", strings.NewReader(content))
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if contact.Description != "catalog update" {
		t.Fatalf("unexpected description %q", contact.Description)
	}
	if !strings.HasPrefix(contact.FileRef, "supplier_contacts/") {
		t.Fatalf("expected file ref under supplier_contacts/, got %q", contact.FileRef)
	}
	if !strings.HasSuffix(contact.FileRef, "_catalog.pdf") {
		t.Fatalf("expected sanitized original name in ref, got %q", contact.FileRef)
	}

	// The reference resolves to the stored bytes.
	f, err := files.Open(contact.FileRef)
	if err != nil {
		t.Fatalf("failed to open stored file: %v", err)
	}
	defer f.Close()
	buf := make([]byte, len(content))
	if _, err := f.Read(buf); err != nil {
		t.Fatalf("failed to read stored file: %v", err)
	}
	if string(buf) != content {
		t.Fatalf("stored content mismatch: %q", string(buf))
	}
}

func TestSupplierService_SubmitContactRequiresSupplier(t *testing.T) {
	svc, _, _, _ := newSupplierFixture(t)

	_, err := svc.SubmitContact(context.Background(), uuid.New(), "hello", "file.txt", strings.NewReader("x"))
	if !errors.Is(err, repository.ErrSupplierNotFound) {
		t.Fatalf("expected ErrSupplierNotFound for non-supplier user, got %v", err)
	}
}

func TestSupplierService_SubmitContactRequiresDescriptionAndFile(t *testing.T) {
	svc, suppliers, _, userID := newSupplierFixture(t)
	ctx := context.Background()

	cases := []struct {
		name        string
		description string
		filename    string
		hasFile     bool
	}{
		{"blank description", "   ", "file.txt", true},
		{"missing file", "a description", "file.txt", false},
		{"empty filename", "a description", "", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var reader *strings.Reader
			if tc.hasFile {
				reader = strings.NewReader("payload")
			}
			var err error
			if reader == nil {
				_, err = svc.SubmitContact(ctx, userID, tc.description, tc.filename, nil)
			} else {
				_, err = svc.SubmitContact(ctx, userID, tc.description, tc.filename, reader)
			}
			if !errors.Is(err, ErrContactIncomplete) {
				t.Fatalf("expected ErrContactIncomplete, got %v", err)
			}
		})
	}

	if len(suppliers.contacts) != 0 {
		t.Fatalf("expected no contacts recorded after rejected submissions")
	}
}

func TestSupplierService_ListContactsIsScopedToCaller(t *testing.T) {
	svc, suppliers, _, userID := newSupplierFixture(t)
	ctx := context.Background()

	// A second supplier with its own contact.
	otherUser := uuid.New()
	other := &domain.Supplier{ID: uuid.New(), UserID: otherUser, CompanyName: "Otra SA", CreatedAt: time.Now()}
	if err := suppliers.Create(ctx, other); err != nil {
		t.Fatalf("failed to seed supplier: %v", err)
	}
	if _, err := svc.SubmitContact(ctx, otherUser, "their update", "theirs.txt", strings.NewReader("x")); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if _, err := svc.SubmitContact(ctx, userID, "our update", "ours.txt", strings.NewReader("y")); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	contacts, err := svc.ListContacts(ctx, userID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(contacts) != 1 {
		t.Fatalf("expected 1 contact for caller, got %d", len(contacts))
	}
	if contacts[0].Description != "our update" {
		t.Fatalf("listed a foreign contact: %q", contacts[0].Description)
	}
}
