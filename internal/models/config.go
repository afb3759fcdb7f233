package models

import "time"

// ClientConfig contains runtime options for the HTTP transport.
type ClientConfig struct {
	Proxies    []string
	Timeout    time.Duration
	UserAgents []string
}
