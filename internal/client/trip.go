package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// TripClient is the driver-service's outbound client to the trip service,
// used to record the final bill when a trip completes.
type TripClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewTripClient creates a new TripClient.
func NewTripClient(baseURL string) *TripClient {
	return &TripClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// CompletedTrip is the trip document returned by the trip service after a
// completion update.
type CompletedTrip struct {
	TripID              string `json:"trip_id"`
	CustomerID          string `json:"customer_id"`
	DriverID            string `json:"driver_id"`
	PickupDistrict      string `json:"pickup_district"`
	PickupCity          string `json:"pickup_city"`
	DestinationDistrict string `json:"destination_district"`
	DestinationCity     string `json:"destination_city"`
	Status              string `json:"status"`
	Bill                int64  `json:"bill"`
}

type completeTripRequest struct {
	TripID string `json:"trip_id"`
	Bill   int64  `json:"bill"`
}

type completeTripResponse struct {
	Success bool          `json:"success"`
	Trip    CompletedTrip `json:"trip"`
}

// CompleteTrip records the bill on the trip service and moves the trip to
// completed. Unlike identity validation this call is not best-effort: the
// caller surfaces its failure.
func (c *TripClient) CompleteTrip(ctx context.Context, tripID string, bill int64) (*CompletedTrip, error) {
	body, err := json.Marshal(completeTripRequest{TripID: tripID, Bill: bill})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, c.baseURL+"/update/completeTrip", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrTripNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("trip service returned status %d", resp.StatusCode)
	}

	var envelope completeTripResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, err
	}

	return &envelope.Trip, nil
}
