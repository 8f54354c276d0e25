package models

// InventoryItem represents a single pantry item in its canonical advisory
// shape, derived from a raw stored row at request time
type InventoryItem struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Weight      string  `json:"weight"`
	Expiry      string  `json:"expiry,omitempty"`
	Remaining   float64 `json:"remaining"`
	AverageDays float64 `json:"averageDays"`
	ShelfLife   float64 `json:"shelfLife"`
}

// Metrics holds the aggregates derived from an inventory snapshot.
// Recomputed on every request, never persisted.
type Metrics struct {
	Urgent     []InventoryItem `json:"urgent"`
	AvgDays    int             `json:"avgDays"`
	TotalValue float64         `json:"totalValue"`
}

// AdvisorySections holds the three named text blocks extracted from
// generated guidance text. A section is the empty string when its marker
// was absent from the text.
type AdvisorySections struct {
	WeekMenu     string `json:"weekMenu"`
	PurchaseList string `json:"purchaseList"`
	Reminders    string `json:"reminders"`
}

// AdviceRequest is a general cooking-advice question
type AdviceRequest struct {
	Question string `json:"question"`
}

// AdviceResponse carries the advisory text for a general question
type AdviceResponse struct {
	Answer string `json:"answer"`
}

// PlanRequest asks for a weekly menu plan. Both fields are optional.
type PlanRequest struct {
	Goal     string `json:"goal"`
	Capacity string `json:"capacity"`
}

// PlanResponse carries the weekly plan together with the metrics computed
// from the inventory snapshot the plan was built from
type PlanResponse struct {
	Answer       string          `json:"answer"`
	WeekMenu     string          `json:"weekMenu"`
	PurchaseList string          `json:"purchaseList"`
	Reminders    string          `json:"reminders"`
	Urgent       []InventoryItem `json:"urgent"`
	TotalValue   float64         `json:"totalValue"`
	AvgDays      int             `json:"avgDays"`
}
