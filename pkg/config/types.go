package config

import (
	"encoding/json"
	"fmt"
	"time"
)

type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		// parse numeric as nanoseconds
		*d = Duration(time.Duration(value))
		return nil
	case string:
		dur, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration: %w", err)
		}

		*d = Duration(dur)

		return nil
	default:
		return errInvalidDuration
	}
}

// ServerConfig represents the configuration for the hubview server.
type ServerConfig struct {
	ListenAddr      string   `json:"listen_addr"`       // e.g., :8080
	HealthAddr      string   `json:"health_addr"`       // e.g., :50052
	DBPath          string   `json:"db_path"`           // e.g., /var/lib/hubview/hubview.db
	APIToken        string   `json:"api_token"`         // bearer token for the REST API
	CollectInterval Duration `json:"collect_interval"`  // how often the collector polls the hub
	StatusInterval  Duration `json:"status_interval"`   // how often hub health is checked
	EventBacklog    int      `json:"event_backlog"`     // per-subscriber envelope backlog
}

var (
	errListenAddrRequired = fmt.Errorf("listen_addr is required")
	errDBPathRequired     = fmt.Errorf("db_path is required")
)

const (
	defaultCollectInterval = 30 * time.Second
	defaultStatusInterval  = 15 * time.Second
	defaultEventBacklog    = 64
)

// Validate implements the Validator interface and applies defaults.
func (c *ServerConfig) Validate() error {
	if c.ListenAddr == "" {
		return errListenAddrRequired
	}

	if c.DBPath == "" {
		return errDBPathRequired
	}

	if time.Duration(c.CollectInterval) == 0 {
		c.CollectInterval = Duration(defaultCollectInterval)
	}

	if time.Duration(c.StatusInterval) == 0 {
		c.StatusInterval = Duration(defaultStatusInterval)
	}

	if c.EventBacklog <= 0 {
		c.EventBacklog = defaultEventBacklog
	}

	return nil
}
