package advisor

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"larder/internal/pantry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockGenerator is a mock implementation of the TextGenerator contract
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Configured() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

// stubStore serves a fixed set of rows, or fails
type stubStore struct {
	rows []pantry.Row
	err  error
}

func (s *stubStore) ReadAllRows(ctx context.Context) ([]pantry.Row, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.rows, nil
}

func fixedClock() func() time.Time {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return now }
}

func newTestAdvisor(store RowStore, gen TextGenerator) *Advisor {
	adv := New(store, gen, nil)
	adv.Now = fixedClock()
	return adv
}

func TestGeneralAdviceWithoutModel(t *testing.T) {
	store := &stubStore{rows: []pantry.Row{
		{"name": "Milk", "remaining": "20"},
		{"name": "Eggs", "remaining": "80"},
	}}
	gen := new(MockGenerator)
	gen.On("Configured").Return(false)

	resp := newTestAdvisor(store, gen).GeneralAdvice(context.Background(), "dinner ideas?")

	assert.Contains(t, resp.Answer, "Milk: 20% remaining")
	assert.Contains(t, resp.Answer, "Eggs: 80% remaining")
	gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestGeneralAdviceWithNilGenerator(t *testing.T) {
	store := &stubStore{rows: []pantry.Row{{"name": "Milk", "remaining": "20"}}}

	resp := newTestAdvisor(store, nil).GeneralAdvice(context.Background(), "dinner ideas?")

	assert.Contains(t, resp.Answer, "Milk: 20% remaining")
}

func TestGeneralAdviceReturnsModelTextVerbatim(t *testing.T) {
	store := &stubStore{rows: []pantry.Row{{"name": "Milk", "remaining": "20"}}}
	gen := new(MockGenerator)
	gen.On("Configured").Return(true)
	gen.On("Generate", mock.Anything, mock.MatchedBy(func(prompt string) bool {
		return strings.Contains(prompt, "Question: dinner ideas?") &&
			strings.Contains(prompt, "- Milk: 20% remaining")
	})).Return("Make a milk-based soup tonight.", nil)

	resp := newTestAdvisor(store, gen).GeneralAdvice(context.Background(), "dinner ideas?")

	assert.Equal(t, "Make a milk-based soup tonight.", resp.Answer)
	gen.AssertExpectations(t)
}

func TestGeneralAdviceInventoryLoadFailure(t *testing.T) {
	store := &stubStore{err: errors.New("sheet unreachable")}
	gen := new(MockGenerator)

	resp := newTestAdvisor(store, gen).GeneralAdvice(context.Background(), "anything?")

	assert.Equal(t, inventoryApology, resp.Answer)
	gen.AssertNotCalled(t, "Configured")
	gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestWeeklyPlanGenerationFailure(t *testing.T) {
	store := &stubStore{rows: []pantry.Row{
		{"name": "Milk", "remaining": "20", "price": "4.50", "averageDays": "2"},
		{"name": "Eggs", "remaining": "80", "price": "3.00", "averageDays": "4"},
	}}
	gen := new(MockGenerator)
	gen.On("Configured").Return(true)
	gen.On("Generate", mock.Anything, mock.Anything).Return("", errors.New("provider down"))

	resp := newTestAdvisor(store, gen).WeeklyPlan(context.Background(), "", "")

	// Static fallback text, empty sections, but real metrics
	assert.Equal(t, generationFallback, resp.Answer)
	assert.Empty(t, resp.WeekMenu)
	assert.Empty(t, resp.PurchaseList)
	assert.Empty(t, resp.Reminders)
	assert.Len(t, resp.Urgent, 1)
	assert.Equal(t, "Milk", resp.Urgent[0].Name)
	assert.Equal(t, 7.5, resp.TotalValue)
	assert.Equal(t, 3, resp.AvgDays)
}

func TestWeeklyPlanParsesSections(t *testing.T) {
	store := &stubStore{rows: []pantry.Row{{"name": "Rice", "remaining": "90"}}}
	gen := new(MockGenerator)
	gen.On("Configured").Return(true)
	gen.On("Generate", mock.Anything, mock.Anything).Return(
		MarkerWeekMenu+"\nMon: congee\n"+MarkerPurchaseList+"\n1 kg rice\n"+MarkerReminders+"\nKeep rice dry.", nil)

	resp := newTestAdvisor(store, gen).WeeklyPlan(context.Background(), "cheap", "small")

	assert.Equal(t, "Mon: congee", resp.WeekMenu)
	assert.Equal(t, "1 kg rice", resp.PurchaseList)
	assert.Equal(t, "Keep rice dry.", resp.Reminders)
	assert.Contains(t, resp.Answer, MarkerWeekMenu)
}

func TestWeeklyPlanPartialModelOutput(t *testing.T) {
	store := &stubStore{rows: []pantry.Row{{"name": "Rice", "remaining": "90"}}}
	gen := new(MockGenerator)
	gen.On("Configured").Return(true)
	gen.On("Generate", mock.Anything, mock.Anything).Return(
		"some chatter\n"+MarkerPurchaseList+"\n2 l milk\n1 kg flour", nil)

	resp := newTestAdvisor(store, gen).WeeklyPlan(context.Background(), "", "")

	assert.Empty(t, resp.WeekMenu)
	assert.Equal(t, "2 l milk\n1 kg flour", resp.PurchaseList)
	assert.Empty(t, resp.Reminders)
}

func TestWeeklyPlanWithoutModel(t *testing.T) {
	store := &stubStore{rows: []pantry.Row{{"name": "Rice", "remaining": "90", "price": "2"}}}
	gen := new(MockGenerator)
	gen.On("Configured").Return(false)

	resp := newTestAdvisor(store, gen).WeeklyPlan(context.Background(), "", "")

	assert.Equal(t, cannedPlanAdvice, resp.Answer)
	assert.Empty(t, resp.WeekMenu)
	assert.Equal(t, 2.0, resp.TotalValue)
	gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestWeeklyPlanInventoryLoadFailure(t *testing.T) {
	store := &stubStore{err: errors.New("disk gone")}

	resp := newTestAdvisor(store, nil).WeeklyPlan(context.Background(), "", "")

	assert.Equal(t, inventoryApology, resp.Answer)
	assert.NotNil(t, resp.Urgent)
	assert.Empty(t, resp.Urgent)
	assert.Zero(t, resp.TotalValue)
	assert.Zero(t, resp.AvgDays)
}
