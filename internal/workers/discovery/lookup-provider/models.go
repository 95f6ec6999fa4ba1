// internal/workers/discovery/lookup-provider/models.go
package lookupprovider

import "github.com/ThanushaGali/CaConnect/internal/models"

type Input struct {
	ProviderID string `json:"providerId"`
	ServiceID  string `json:"serviceId,omitempty"`
}

type Output struct {
	Provider *models.Provider `json:"provider"`
	// Service is set when the job asked for a preselected service.
	Service *models.Service `json:"service,omitempty"`
}
