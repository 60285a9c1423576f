package config

import (
	"fmt"

	"github.com/torrust/tracker-deployer/internal/valueobject"
)

// HTTPSConfig, when present, fronts the tracker's HTTP services with a
// TLS-terminating reverse proxy (internal/project.TLSProxyProject). At
// least one TLS domain is required; enforced both here and, redundantly,
// at Environment construction. The domain set is not compared with
// TrackerConfig.TLSDomains.
type HTTPSConfig struct {
	ContactEmail string                   `json:"contact_email"`
	Domains      []valueobject.DomainName `json:"domains"`
}

// NewHTTPSConfig validates that contactEmail is non-empty and domains is
// non-empty.
func NewHTTPSConfig(contactEmail string, domains []valueobject.DomainName) (HTTPSConfig, error) {
	if contactEmail == "" {
		return HTTPSConfig{}, fmt.Errorf("https config: contact_email must not be empty")
	}
	if len(domains) == 0 {
		return HTTPSConfig{}, fmt.Errorf("https config: at least one TLS domain is required")
	}
	return HTTPSConfig{ContactEmail: contactEmail, Domains: domains}, nil
}
