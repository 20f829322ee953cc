package dispatch

import "strings"

// Slot is a named injection point inside an HTML body. Injection targets
// the slot's marker comment when present, falls back to just before the
// closing body tag, and finally appends raw when neither exists.
type Slot struct {
	Name   string
	Marker string
}

var (
	// SlotUnsubscribe receives the per-recipient unsubscribe notice.
	SlotUnsubscribe = Slot{Name: "unsubscribe", Marker: "<!-- UNSUBSCRIBE_PLACEHOLDER -->"}

	// SlotImages receives appended inline-image display blocks.
	SlotImages = Slot{Name: "images", Marker: "<!-- IMAGES_PLACEHOLDER -->"}
)

const closingBodyTag = "</body>"

// Inject places html into the slot's position inside body.
func (s Slot) Inject(body, html string) string {
	if idx := strings.Index(body, s.Marker); idx >= 0 {
		return body[:idx] + html + body[idx+len(s.Marker):]
	}
	if idx := lastIndexFold(body, closingBodyTag); idx >= 0 {
		return body[:idx] + html + body[idx:]
	}
	return body + html
}

// lastIndexFold is strings.LastIndex with case folding, so </BODY> and
// </Body> are found too.
func lastIndexFold(s, substr string) int {
	for i := len(s) - len(substr); i >= 0; i-- {
		if strings.EqualFold(s[i:i+len(substr)], substr) {
			return i
		}
	}
	return -1
}
