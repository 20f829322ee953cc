package dispatch_test

import (
	"strings"
	"testing"

	"github.com/postwave/postwave/pkg/dispatch"
)

func TestSlotInjectAtMarker(t *testing.T) {
	body := "<html><body><p>Hi</p><!-- UNSUBSCRIBE_PLACEHOLDER --><p>Bye</p></body></html>"
	got := dispatch.SlotUnsubscribe.Inject(body, "<footer/>")
	want := "<html><body><p>Hi</p><footer/><p>Bye</p></body></html>"
	if got != want {
		t.Fatalf("Inject() = %q, want %q", got, want)
	}
}

func TestSlotInjectFallsBackToClosingBody(t *testing.T) {
	for _, closing := range []string{"</body>", "</BODY>", "</Body>"} {
		body := "<html><body><p>Hi</p>" + closing + "</html>"
		got := dispatch.SlotUnsubscribe.Inject(body, "<footer/>")
		if !strings.Contains(got, "<footer/>"+closing) {
			t.Errorf("Inject() with %s = %q, footer not before closing tag", closing, got)
		}
	}
}

func TestSlotInjectAppendsWhenNoAnchor(t *testing.T) {
	got := dispatch.SlotImages.Inject("<p>Hi</p>", "<img/>")
	if got != "<p>Hi</p><img/>" {
		t.Fatalf("Inject() = %q", got)
	}
}
