package advisor

import (
	"fmt"
	"strings"

	"larder/internal/models"
)

// Defaults substituted into the plan prompt when the caller left the
// fields blank
const (
	DefaultPlanGoal = "balanced varied menu"
	DefaultCapacity = "unknown"
)

// BuildAdvicePrompt renders the instruction for a general cooking-advice
// question. Byte-for-byte deterministic for identical inputs.
func BuildAdvicePrompt(question string, items []models.InventoryItem) string {
	var b strings.Builder

	b.WriteString("You are a practical home-cooking advisor for a household pantry.\n")
	b.WriteString("Answer the question below directly with itemized cooking suggestions.\n")
	b.WriteString("Do not ask the user any clarifying questions.\n")
	b.WriteString("Prioritize items that are low on remaining stock or close to spoiling.\n\n")

	b.WriteString("Pantry snapshot:\n")
	for _, item := range items {
		b.WriteString(adviceSnapshotLine(item))
	}

	b.WriteString("\nQuestion: ")
	b.WriteString(question)
	b.WriteString("\n")

	return b.String()
}

// BuildPlanPrompt renders the instruction for a weekly meal plan. The
// response format it demands is the marker contract ParseSections reads.
func BuildPlanPrompt(goal, capacity string, items []models.InventoryItem) string {
	if goal == "" {
		goal = DefaultPlanGoal
	}
	if capacity == "" {
		capacity = DefaultCapacity
	}

	var b strings.Builder

	b.WriteString("You are a practical home-cooking advisor planning a week of meals from a household pantry.\n")
	fmt.Fprintf(&b, "Planning goal: %s\n", goal)
	fmt.Fprintf(&b, "Fridge capacity: %s\n\n", capacity)

	b.WriteString("Pantry snapshot:\n")
	for _, item := range items {
		b.WriteString(planSnapshotLine(item))
	}

	b.WriteString("\nRespond with exactly three sections, in this order, each starting with its marker on its own line:\n")
	fmt.Fprintf(&b, "%s\nA 7-day menu table with a lunch and a dinner for every day.\n", MarkerWeekMenu)
	fmt.Fprintf(&b, "%s\nItems to buy this week, with quantities and units.\n", MarkerPurchaseList)
	fmt.Fprintf(&b, "%s\nAt most three lines of storage or cooking reminders.\n", MarkerReminders)
	b.WriteString("Use items close to spoiling first. Do not add any sections or commentary beyond the three above.\n")

	return b.String()
}

// adviceSnapshotLine carries name, remaining, shelf life, expiry and price
func adviceSnapshotLine(item models.InventoryItem) string {
	expiry := "no expiry date"
	if item.Expiry != "" {
		expiry = "expires " + item.Expiry
	}
	return fmt.Sprintf("- %s: %.0f%% remaining, %.0f day(s) shelf life, %s, $%.2f\n",
		item.Name, item.Remaining, item.ShelfLife, expiry, item.Price)
}

// planSnapshotLine carries name, remaining, shelf life and price
func planSnapshotLine(item models.InventoryItem) string {
	return fmt.Sprintf("- %s: %.0f%% remaining, %.0f day(s) shelf life, $%.2f\n",
		item.Name, item.Remaining, item.ShelfLife, item.Price)
}
