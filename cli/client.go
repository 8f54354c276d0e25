package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"
)

// ApiClient handles API requests to the Larder advisory API
type ApiClient struct {
	httpClient *http.Client
	BaseURL    string
	UseMock    bool
}

// NewApiClient creates a new API client
func NewApiClient() *ApiClient {
	baseURL := os.Getenv("LARDER_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	client := &ApiClient{
		httpClient: &http.Client{
			Timeout: time.Second * 60,
		},
		BaseURL: baseURL,
		UseMock: false, // Default to trying the real server first
	}

	// Verify connectivity - if server is not available, use mock data
	if !client.ping() {
		fmt.Printf("Warning: API server at %s is not available. Using mock data.\n", baseURL)
		client.UseMock = true
	}

	return client
}

// ping checks if the API server is available
func (c *ApiClient) ping() bool {
	resp, err := c.httpClient.Get(c.BaseURL + "/health")
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// AdviceResponse carries the advisory text for a general question
type AdviceResponse struct {
	Answer string `json:"answer"`
}

// PlanResponse carries the weekly plan and its inventory metrics
type PlanResponse struct {
	Answer       string       `json:"answer"`
	WeekMenu     string       `json:"weekMenu"`
	PurchaseList string       `json:"purchaseList"`
	Reminders    string       `json:"reminders"`
	Urgent       []PantryItem `json:"urgent"`
	TotalValue   float64      `json:"totalValue"`
	AvgDays      int          `json:"avgDays"`
}

// PantryItem is one inventory item as the API reports it
type PantryItem struct {
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Remaining float64 `json:"remaining"`
	ShelfLife float64 `json:"shelfLife"`
}

// Ask sends a general cooking question to the advisor
func (c *ApiClient) Ask(question string) (*AdviceResponse, error) {
	if c.UseMock {
		return &AdviceResponse{Answer: "Mock advice: cook the items that expire first."}, nil
	}

	data, err := json.Marshal(map[string]string{"question": question})
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(c.BaseURL+"/api/v1/advice", "application/json", bytes.NewBuffer(data))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("advice request failed with status code: %d", resp.StatusCode)
	}

	var advice AdviceResponse
	if err := json.NewDecoder(resp.Body).Decode(&advice); err != nil {
		return nil, err
	}
	return &advice, nil
}

// Plan requests a weekly meal plan
func (c *ApiClient) Plan(goal, capacity string) (*PlanResponse, error) {
	if c.UseMock {
		return &PlanResponse{
			Answer:   "Mock plan",
			WeekMenu: "Mon: soup / pasta",
			Urgent:   []PantryItem{{Name: "Milk", Remaining: 20, ShelfLife: 3}},
		}, nil
	}

	data, err := json.Marshal(map[string]string{"goal": goal, "capacity": capacity})
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(c.BaseURL+"/api/v1/plan", "application/json", bytes.NewBuffer(data))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("plan request failed with status code: %d", resp.StatusCode)
	}

	var plan PlanResponse
	if err := json.NewDecoder(resp.Body).Decode(&plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// GetPantry retrieves the raw pantry rows
func (c *ApiClient) GetPantry() ([]map[string]string, error) {
	if c.UseMock {
		return []map[string]string{
			{"name": "Milk", "remaining": "20", "price": "4.50"},
			{"name": "Eggs", "remaining": "80", "price": "3.00"},
			{"name": "Rice", "remaining": "95", "price": "2.00"},
		}, nil
	}

	resp, err := c.httpClient.Get(c.BaseURL + "/api/v1/pantry")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pantry request failed with status code: %d", resp.StatusCode)
	}

	var rows []map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, err
	}
	return rows, nil
}
