package context

import (
	"fmt"

	"github.com/torrust/tracker-deployer/internal/domain/config"
	"github.com/torrust/tracker-deployer/internal/valueobject"
)

// CaddyContext feeds the Caddy-style reverse-proxy config: the TLS domains
// to terminate, the contact email for ACME, and the upstream port each
// domain proxies to.
type CaddyContext struct {
	contactEmail string
	domains      []valueobject.DomainName
	upstreamPort valueobject.Port
}

func (c CaddyContext) ToMap() (map[string]any, error) {
	domains := make([]string, len(c.domains))
	for i, d := range c.domains {
		domains[i] = d.String()
	}
	return map[string]any{
		"contact_email": c.contactEmail,
		"domains":       domains,
		"upstream_port": c.upstreamPort.Uint16(),
	}, nil
}

// CaddyContextBuilder builds a CaddyContext.
type CaddyContextBuilder struct {
	https        *config.HTTPSConfig
	upstreamPort *valueobject.Port
}

func NewCaddyContextBuilder() *CaddyContextBuilder { return &CaddyContextBuilder{} }

func (b *CaddyContextBuilder) WithHTTPSConfig(h config.HTTPSConfig) *CaddyContextBuilder {
	b.https = &h
	return b
}

func (b *CaddyContextBuilder) WithUpstreamPort(p valueobject.Port) *CaddyContextBuilder {
	b.upstreamPort = &p
	return b
}

func (b *CaddyContextBuilder) Build() (CaddyContext, error) {
	if b.https == nil {
		return CaddyContext{}, fmt.Errorf("caddy context: missing https config")
	}
	if len(b.https.Domains) == 0 {
		return CaddyContext{}, fmt.Errorf("caddy context: at least one TLS domain is required")
	}
	if b.upstreamPort == nil {
		return CaddyContext{}, fmt.Errorf("caddy context: missing upstream_port")
	}
	return CaddyContext{
		contactEmail: b.https.ContactEmail,
		domains:      b.https.Domains,
		upstreamPort: *b.upstreamPort,
	}, nil
}
