// pkg/registry/schema.go
package registry

type ActivityRegistry struct {
	Version     string     `json:"version"`
	LastUpdated string     `json:"lastUpdated"`
	Activities  []Activity `json:"activities"`
}

type Activity struct {
	ID                   string                 `json:"id"`
	DisplayName          string                 `json:"displayName"`
	Description          string                 `json:"description"`
	Category             string                 `json:"category"`
	Version              string                 `json:"version"`
	TaskType             string                 `json:"taskType"`
	ImplementationStatus string                 `json:"implementationStatus"`
	InputSchema          map[string]interface{} `json:"inputSchema"`
	OutputSchema         map[string]interface{} `json:"outputSchema"`
	ErrorCodes           []string               `json:"errorCodes"`
	Timeout              string                 `json:"timeout"`
	Retries              int                    `json:"retries"`
	Workflows            []string               `json:"workflows"`
	Tags                 []string               `json:"tags"`
}

// Implementation states an activity moves through.
const (
	StatusPlanned    = "planned"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
	StatusVerified   = "verified"
)

// Task types served by the discovery workers.
const (
	TaskParseBrowseFilters = "parse-browse-filters"
	TaskBrowseProviders    = "browse-providers"
	TaskLookupProvider     = "lookup-provider"
)

const CategoryDiscovery = "discovery"

const discoveryWorkflow = "ca-discovery"

var sortKeys = []interface{}{"rating", "experience", "projects", "price-low", "price-high"}

func str() map[string]interface{} { return map[string]interface{}{"type": "string"} }

func num() map[string]interface{} { return map[string]interface{}{"type": "number"} }

func object(required []interface{}, props map[string]interface{}) map[string]interface{} {
	s := map[string]interface{}{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

func filterStateSchema() map[string]interface{} {
	return object(nil, map[string]interface{}{
		"query":         str(),
		"domain":        str(),
		"location":      str(),
		"minExperience": map[string]interface{}{"type": "integer"},
		"minRating":     num(),
	})
}

func parseBrowseFiltersActivity() Activity {
	return Activity{
		ID:                   TaskParseBrowseFilters,
		DisplayName:          "Parse Browse Filters",
		Description:          "Normalizes raw filter panel input into a filter state, sort key and view mode",
		Category:             CategoryDiscovery,
		Version:              "1.0.0",
		TaskType:             TaskParseBrowseFilters,
		ImplementationStatus: StatusCompleted,
		InputSchema: object([]interface{}{"rawFilters"}, map[string]interface{}{
			"rawFilters": object(nil, map[string]interface{}{
				"query":         str(),
				"domain":        str(),
				"location":      str(),
				"minExperience": num(),
				"minRating":     num(),
				"sortBy":        map[string]interface{}{"type": "string", "enum": sortKeys},
				"viewMode":      map[string]interface{}{"type": "string", "enum": []interface{}{"list", "grid"}},
			}),
		}),
		OutputSchema: object(nil, map[string]interface{}{
			"filters":  filterStateSchema(),
			"sortBy":   str(),
			"viewMode": str(),
		}),
		ErrorCodes: []string{"INVALID_FILTER_FORMAT"},
		Timeout:    "10s",
		Retries:    0,
		Workflows:  []string{discoveryWorkflow},
		Tags:       []string{"discovery", "filters", "validation"},
	}
}

func browseProvidersActivity() Activity {
	return Activity{
		ID:                   TaskBrowseProviders,
		DisplayName:          "Browse Providers",
		Description:          "Filters and ranks the provider catalog and projects the active filter chips",
		Category:             CategoryDiscovery,
		Version:              "1.0.0",
		TaskType:             TaskBrowseProviders,
		ImplementationStatus: StatusCompleted,
		InputSchema: object([]interface{}{"filters"}, map[string]interface{}{
			"filters":  filterStateSchema(),
			"sortBy":   map[string]interface{}{"type": "string", "enum": sortKeys},
			"viewMode": str(),
		}),
		OutputSchema: object(nil, map[string]interface{}{
			"requestId":     str(),
			"total":         map[string]interface{}{"type": "integer"},
			"empty":         map[string]interface{}{"type": "boolean"},
			"canClear":      map[string]interface{}{"type": "boolean"},
			"activeFilters": map[string]interface{}{"type": "array"},
			"providers":     map[string]interface{}{"type": "array"},
		}),
		ErrorCodes: []string{"INVALID_FILTER_FORMAT", "CATALOG_LOAD_FAILED"},
		Timeout:    "10s",
		Retries:    3,
		Workflows:  []string{discoveryWorkflow},
		Tags:       []string{"discovery", "ranking"},
	}
}

func lookupProviderActivity() Activity {
	return Activity{
		ID:                   TaskLookupProvider,
		DisplayName:          "Lookup Provider",
		Description:          "Returns one provider's profile and optionally a preselected service",
		Category:             CategoryDiscovery,
		Version:              "1.0.0",
		TaskType:             TaskLookupProvider,
		ImplementationStatus: StatusCompleted,
		InputSchema: object([]interface{}{"providerId"}, map[string]interface{}{
			"providerId": map[string]interface{}{"type": "string", "minLength": 1},
			"serviceId":  str(),
		}),
		OutputSchema: object(nil, map[string]interface{}{
			"provider": map[string]interface{}{"type": "object"},
			"service":  map[string]interface{}{"type": "object"},
		}),
		ErrorCodes: []string{"PROVIDER_NOT_FOUND", "SERVICE_NOT_FOUND"},
		Timeout:    "5s",
		Retries:    0,
		Workflows:  []string{discoveryWorkflow},
		Tags:       []string{"discovery", "profile"},
	}
}
