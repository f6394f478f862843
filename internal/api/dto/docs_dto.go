package dto

// EndpointDoc describes one route for GET /api/docs.
type EndpointDoc struct {
	Method       string `json:"method"`
	Path         string `json:"path"`
	RequiresAuth bool   `json:"requiresAuth"`
	Description  string `json:"description"`
	Example      string `json:"example,omitempty"`
	Response     any    `json:"response,omitempty"`
}

// DocsResponse is the service self-description.
type DocsResponse struct {
	Version   string        `json:"version"`
	Endpoints []EndpointDoc `json:"endpoints"`
	Config    DocsConfig    `json:"config"`
}

// DocsConfig exposes which collaborators the service talks to.
type DocsConfig struct {
	Factory string `json:"factory"`
	DB      string `json:"db"`
}
