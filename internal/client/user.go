// Package client holds the outbound HTTP clients for service-to-service
// calls. Every call carries the shared internal-service token and a bounded
// timeout; a failed call is a validation failure for the caller, never a
// crash.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"uitgo/internal/domain"
)

// InternalTokenHeader authenticates service-to-service calls.
const InternalTokenHeader = "X-Internal-Service-Token"

// validationTimeout bounds every outbound identity call. A timeout counts as
// a validation failure; there are no retries.
const validationTimeout = 5 * time.Second

// UserClient talks to the user service to validate customers and drivers and
// to fetch driver profile enrichment.
type UserClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewUserClient creates a new UserClient.
func NewUserClient(baseURL, internalToken string) *UserClient {
	return &UserClient{
		baseURL: baseURL,
		token:   internalToken,
		httpClient: &http.Client{
			Timeout: validationTimeout,
		},
	}
}

type successEnvelope struct {
	Success bool `json:"success"`
}

type driverProfileEnvelope struct {
	Success bool `json:"success"`
	Data    struct {
		DriverProfile struct {
			User struct {
				FullName string `json:"full_name"`
				Phone    string `json:"phone"`
			} `json:"user"`
			VehicleType    string `json:"vehicle_type"`
			VehicleBrand   string `json:"vehicle_brand"`
			VehicleModel   string `json:"vehicle_model"`
			LicensePlate   string `json:"license_plate"`
			ApprovalStatus string `json:"approval_status"`
			IsOnline       bool   `json:"is_online"`
		} `json:"driver_profile"`
	} `json:"data"`
}

// ValidateCustomer reports whether the customer exists in the user service.
// Timeout, non-2xx responses, and malformed bodies all report false.
func (c *UserClient) ValidateCustomer(ctx context.Context, customerID string) bool {
	var envelope successEnvelope
	if err := c.get(ctx, fmt.Sprintf("%s/api/auth/%s/", c.baseURL, customerID), &envelope); err != nil {
		log.Printf("customer validation failed for %s: %v", customerID, err)
		return false
	}

	return envelope.Success
}

// ValidateDriver reports whether the driver exists in the user service.
func (c *UserClient) ValidateDriver(ctx context.Context, driverID string) bool {
	return c.GetDriverProfile(ctx, driverID) != nil
}

// GetDriverProfile fetches the driver's profile from the user service. A nil
// result means the profile is unavailable; callers treat that as degraded
// enrichment, not an error.
func (c *UserClient) GetDriverProfile(ctx context.Context, driverID string) *domain.DriverProfile {
	var envelope driverProfileEnvelope
	if err := c.get(ctx, fmt.Sprintf("%s/api/drivers/%s/profile/", c.baseURL, driverID), &envelope); err != nil {
		log.Printf("driver profile lookup failed for %s: %v", driverID, err)
		return nil
	}

	if !envelope.Success {
		return nil
	}

	p := envelope.Data.DriverProfile
	return &domain.DriverProfile{
		FullName:       p.User.FullName,
		Phone:          p.User.Phone,
		VehicleType:    p.VehicleType,
		VehicleBrand:   p.VehicleBrand,
		VehicleModel:   p.VehicleModel,
		LicensePlate:   p.LicensePlate,
		ApprovalStatus: p.ApprovalStatus,
		IsOnline:       p.IsOnline,
	}
}

func (c *UserClient) get(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set(InternalTokenHeader, c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("user service returned status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
