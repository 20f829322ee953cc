package contactsrv

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/postwave/postwave/pkg/contact"
)

// ParsedContact is one row extracted from an import file. Nothing is
// persisted at parse time; the caller reviews the rows and submits them
// through BulkCreate.
type ParsedContact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ParseImport extracts contacts from an uploaded file. CSV files need a
// name,email header (column order free); TXT files carry one address per
// line, with the name defaulting to the address local part.
func ParseImport(filename string, r io.Reader) ([]ParsedContact, error) {
	switch {
	case strings.HasSuffix(strings.ToLower(filename), ".csv"):
		return parseCSV(r)
	case strings.HasSuffix(strings.ToLower(filename), ".txt"):
		return parseTXT(r)
	default:
		return nil, contact.NewInvalidImportError("unsupported file type, expected .csv or .txt")
	}
}

func parseCSV(r io.Reader) ([]ParsedContact, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, contact.NewInvalidImportError("empty or unreadable CSV")
	}

	nameCol, emailCol := -1, -1
	for i, col := range header {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "name":
			nameCol = i
		case "email":
			emailCol = i
		}
	}
	if emailCol == -1 {
		return nil, contact.NewInvalidImportError("CSV header must contain an email column")
	}

	var out []ParsedContact
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, contact.NewInvalidImportError("malformed CSV row")
		}
		if emailCol >= len(record) {
			continue
		}
		email := strings.TrimSpace(record[emailCol])
		if !isPlausibleEmail(email) {
			continue
		}
		name := ""
		if nameCol >= 0 && nameCol < len(record) {
			name = strings.TrimSpace(record[nameCol])
		}
		if name == "" {
			name = localPart(email)
		}
		out = append(out, ParsedContact{Name: name, Email: email})
	}
	return out, nil
}

func parseTXT(r io.Reader) ([]ParsedContact, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, contact.NewInvalidImportError("unreadable file")
	}

	var out []ParsedContact
	for line := range strings.SplitSeq(string(data), "\n") {
		email := strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if !isPlausibleEmail(email) {
			continue
		}
		out = append(out, ParsedContact{Name: localPart(email), Email: email})
	}
	return out, nil
}

func isPlausibleEmail(s string) bool {
	at := strings.Index(s, "@")
	return at > 0 && at < len(s)-1 && !strings.ContainsAny(s, " \t")
}

func localPart(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
