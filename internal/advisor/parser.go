package advisor

import (
	"strings"

	"larder/internal/models"
)

// Section markers shared by the prompt builder and the parser. The plan
// prompt asks the model for these exact strings and ParseSections extracts
// by them, so they must only ever change together.
const (
	MarkerWeekMenu     = "[WEEK_MENU]"
	MarkerPurchaseList = "[PURCHASE_LIST]"
	MarkerReminders    = "[REMINDERS]"
)

var sectionMarkers = []string{MarkerWeekMenu, MarkerPurchaseList, MarkerReminders}

// ParseSections splits generated guidance text into its three named
// sections. Markers may appear in any order; a missing marker yields an
// empty section, which is not an error since the model's adherence to the
// requested format is not guaranteed.
func ParseSections(text string) models.AdvisorySections {
	return models.AdvisorySections{
		WeekMenu:     extractSection(text, MarkerWeekMenu),
		PurchaseList: extractSection(text, MarkerPurchaseList),
		Reminders:    extractSection(text, MarkerReminders),
	}
}

// extractSection returns the trimmed substring between the marker and the
// next occurrence of any full marker string, or end of text
func extractSection(text, marker string) string {
	idx := strings.Index(text, marker)
	if idx < 0 {
		return ""
	}

	start := idx + len(marker)
	end := len(text)
	for _, m := range sectionMarkers {
		if next := strings.Index(text[start:], m); next >= 0 && start+next < end {
			end = start + next
		}
	}

	return strings.TrimSpace(text[start:end])
}
