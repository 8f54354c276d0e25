package advisor

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"larder/internal/models"
	"larder/internal/monitoring"
	"larder/internal/pantry"
)

// RowStore is the slice of the row store contract the advisory core
// consumes. Write paths live on the transport layer.
type RowStore interface {
	ReadAllRows(ctx context.Context) ([]pantry.Row, error)
}

// Terminal tiers an advisory request can end in, used as metric labels
const (
	TierModelSucceeded      = "model_succeeded"
	TierModelFailed         = "model_failed"
	TierNoModelConfigured   = "no_model_configured"
	TierInventoryLoadFailed = "inventory_load_failed"
)

// Request kinds
const (
	kindAdvice = "advice"
	kindPlan   = "plan"
)

// Static texts for the degraded-service tiers
const (
	inventoryApology   = "Sorry, the pantry inventory could not be read right now. Please try again in a moment."
	generationFallback = "The cooking advisor is temporarily unavailable. Use up items that are running low or close to expiry first."
	cannedPlanAdvice   = "No meal plan could be generated without the advisor model. Cook from the items with the shortest shelf life first and restock staples that are running low."
)

// DefaultModelTimeout bounds the model invocation, which is uncontrolled
// external I/O
const DefaultModelTimeout = 45 * time.Second

// Advisor sequences normalize, metrics, prompt, model call and parse for
// one advisory request, applying the fallback ladder on the way. It is
// stateless across requests apart from the long-lived generator handle.
type Advisor struct {
	// Timeout bounds each model invocation
	Timeout time.Duration

	// Now supplies the request timestamp; tests inject a fixed clock
	Now func() time.Time

	store   RowStore
	gen     TextGenerator
	monitor *monitoring.Monitor
}

// New creates an advisor over the given collaborators. The generator may
// be nil or unconfigured; requests then degrade to canned responses.
func New(store RowStore, gen TextGenerator, monitor *monitoring.Monitor) *Advisor {
	return &Advisor{
		Timeout: DefaultModelTimeout,
		Now:     time.Now,
		store:   store,
		gen:     gen,
		monitor: monitor,
	}
}

// GeneralAdvice answers a free-text cooking question against the current
// inventory snapshot. It always returns a usable response; failures are
// classified into a fallback tier and logged, never propagated.
func (a *Advisor) GeneralAdvice(ctx context.Context, question string) *models.AdviceResponse {
	started := a.Now()

	items, err := a.loadInventory(ctx)
	if err != nil {
		log.Printf("pantry read failed: %v", err)
		a.record(kindAdvice, TierInventoryLoadFailed, started)
		return &models.AdviceResponse{Answer: inventoryApology}
	}

	now := a.Now()
	items = Refresh(items, now)
	a.recordSnapshot(ComputeMetrics(items, now), len(items))

	if a.gen == nil || !a.gen.Configured() {
		a.record(kindAdvice, TierNoModelConfigured, started)
		return &models.AdviceResponse{Answer: cannedAdviceSummary(items)}
	}

	text, err := a.generate(ctx, BuildAdvicePrompt(question, items))
	if err != nil {
		log.Printf("advice generation failed: %v", err)
		a.record(kindAdvice, TierModelFailed, started)
		return &models.AdviceResponse{Answer: generationFallback}
	}

	a.record(kindAdvice, TierModelSucceeded, started)
	return &models.AdviceResponse{Answer: text}
}

// WeeklyPlan produces a weekly menu plan with parsed sections and the
// metrics computed from the snapshot. Like GeneralAdvice it always
// reaches a terminal state and returns a well-formed response.
func (a *Advisor) WeeklyPlan(ctx context.Context, goal, capacity string) *models.PlanResponse {
	started := a.Now()

	items, err := a.loadInventory(ctx)
	if err != nil {
		log.Printf("pantry read failed: %v", err)
		a.record(kindPlan, TierInventoryLoadFailed, started)
		return &models.PlanResponse{
			Answer: inventoryApology,
			Urgent: []models.InventoryItem{},
		}
	}

	now := a.Now()
	items = Refresh(items, now)
	metrics := ComputeMetrics(items, now)
	a.recordSnapshot(metrics, len(items))

	resp := &models.PlanResponse{
		Urgent:     metrics.Urgent,
		TotalValue: metrics.TotalValue,
		AvgDays:    metrics.AvgDays,
	}

	if a.gen == nil || !a.gen.Configured() {
		a.record(kindPlan, TierNoModelConfigured, started)
		resp.Answer = cannedPlanAdvice
		return resp
	}

	text, err := a.generate(ctx, BuildPlanPrompt(goal, capacity, items))
	if err != nil {
		log.Printf("plan generation failed: %v", err)
		a.record(kindPlan, TierModelFailed, started)
		resp.Answer = generationFallback
		return resp
	}

	sections := ParseSections(text)
	resp.Answer = text
	resp.WeekMenu = sections.WeekMenu
	resp.PurchaseList = sections.PurchaseList
	resp.Reminders = sections.Reminders

	a.record(kindPlan, TierModelSucceeded, started)
	return resp
}

// loadInventory reads and normalizes the current pantry rows
func (a *Advisor) loadInventory(ctx context.Context) ([]models.InventoryItem, error) {
	rows, err := a.store.ReadAllRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("read pantry rows: %w", err)
	}
	return pantry.Normalize(rows), nil
}

// generate runs one bounded model invocation. No retries; a failure moves
// the request straight to its fallback tier to keep latency bounded.
func (a *Advisor) generate(ctx context.Context, prompt string) (string, error) {
	timeout := a.Timeout
	if timeout <= 0 {
		timeout = DefaultModelTimeout
	}

	genCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return a.gen.Generate(genCtx, prompt)
}

// cannedAdviceSummary synthesizes the no-model answer directly from the
// snapshot: each item name with its remaining percent
func cannedAdviceSummary(items []models.InventoryItem) string {
	var b strings.Builder
	b.WriteString("The cooking advisor is not configured, but here is what you have on hand:\n")
	for _, item := range items {
		fmt.Fprintf(&b, "- %s: %.0f%% remaining\n", item.Name, item.Remaining)
	}
	b.WriteString("Start with whatever is lowest or closest to its expiry date.")
	return b.String()
}

// recordSnapshot publishes the aggregates of the snapshot the request ran
// against, so the metrics endpoint reflects them in every terminal tier
// that got as far as computing them
func (a *Advisor) recordSnapshot(m models.Metrics, count int) {
	if a.monitor == nil {
		return
	}
	a.monitor.RecordMetric("inventory_items", count)
	a.monitor.RecordMetric("inventory_urgent_items", len(m.Urgent))
	a.monitor.RecordMetric("inventory_total_value", m.TotalValue)
}

func (a *Advisor) record(kind, tier string, started time.Time) {
	if a.monitor == nil {
		return
	}
	a.monitor.RecordAdvisory(kind, tier, a.Now().Sub(started))
}
