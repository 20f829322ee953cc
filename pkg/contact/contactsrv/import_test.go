package contactsrv_test

import (
	"strings"
	"testing"

	"github.com/postwave/postwave/pkg/contact/contactsrv"
)

func TestParseImportCSV(t *testing.T) {
	csv := "email,name\nalice@example.com,Alice\nbob@example.com,\nnot-an-email,Broken\n"
	got, err := contactsrv.ParseImport("contacts.csv", strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ParseImport() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("parsed %d contacts, want 2: %v", len(got), got)
	}
	if got[0].Name != "Alice" || got[0].Email != "alice@example.com" {
		t.Errorf("first = %+v", got[0])
	}
	// Missing name falls back to the local part.
	if got[1].Name != "bob" {
		t.Errorf("second name = %q, want local part fallback", got[1].Name)
	}
}

func TestParseImportCSVHeaderOrderFree(t *testing.T) {
	csv := "Name,Email\nAlice,alice@example.com\n"
	got, err := contactsrv.ParseImport("upper.CSV", strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ParseImport() error = %v", err)
	}
	if len(got) != 1 || got[0].Email != "alice@example.com" {
		t.Fatalf("parsed = %v", got)
	}
}

func TestParseImportCSVRequiresEmailColumn(t *testing.T) {
	if _, err := contactsrv.ParseImport("bad.csv", strings.NewReader("name,phone\nAlice,123\n")); err == nil {
		t.Fatal("ParseImport() expected error for missing email column")
	}
}

func TestParseImportTXT(t *testing.T) {
	txt := "alice@example.com\r\n\nnot an email\nbob@example.com\n"
	got, err := contactsrv.ParseImport("list.txt", strings.NewReader(txt))
	if err != nil {
		t.Fatalf("ParseImport() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("parsed %d contacts, want 2: %v", len(got), got)
	}
	if got[0].Email != "alice@example.com" || got[0].Name != "alice" {
		t.Errorf("first = %+v", got[0])
	}
}

func TestParseImportRejectsUnknownExtension(t *testing.T) {
	if _, err := contactsrv.ParseImport("contacts.xlsx", strings.NewReader("")); err == nil {
		t.Fatal("ParseImport() expected error for unsupported extension")
	}
}
