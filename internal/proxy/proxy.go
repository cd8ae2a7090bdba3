package proxy

import (
	"fmt"
	"math/rand/v2"
	"net/http"
	"net/url"

	"github.com/williampepple1/cricket-scorecard-scraper/internal/config"
)

// Manager picks an outbound proxy for the source-site transport
type Manager struct {
	cfg  config.ProxyConfig
	intn func(n int) int
}

// NewManager creates a new proxy manager
func NewManager(cfg config.ProxyConfig) *Manager {
	return &Manager{cfg: cfg, intn: rand.IntN}
}

// Enabled reports whether a proxy should be applied at all
func (m *Manager) Enabled() bool {
	return m.cfg.Enabled && len(m.cfg.List) > 0
}

// Pick returns the proxy to use, or nil when proxies are disabled
func (m *Manager) Pick() (*url.URL, error) {
	if !m.Enabled() {
		return nil, nil
	}

	raw := m.cfg.List[0]
	if m.cfg.Rotate && len(m.cfg.List) > 1 {
		raw = m.cfg.List[m.intn(len(m.cfg.List))]
	}

	proxyURL, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse proxy %q: %w", raw, err)
	}
	if m.cfg.Auth.Username != "" && m.cfg.Auth.Password != "" {
		proxyURL.User = url.UserPassword(m.cfg.Auth.Username, m.cfg.Auth.Password)
	}
	return proxyURL, nil
}

// Apply sets the picked proxy on the transport and returns it without credentials
func (m *Manager) Apply(transport *http.Transport) (string, error) {
	proxyURL, err := m.Pick()
	if err != nil {
		return "", err
	}
	if proxyURL == nil {
		return "", nil
	}

	transport.Proxy = http.ProxyURL(proxyURL)
	return proxyURL.Redacted(), nil
}
