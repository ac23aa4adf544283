package simplex

import "fmt"

// Config tunes the branch and bound search.
type Config struct {
	// Tolerance is used by the LP relaxation and to decide integrality.
	Tolerance float64 `json:"tolerance"`
	// MaxNodes bounds the number of relaxations solved. When reached the best
	// incumbent is returned with a feasible status.
	MaxNodes int `json:"max_nodes"`
}

// SetDefaults fills zero fields.
func (c *Config) SetDefaults() {
	if c.Tolerance == 0 {
		c.Tolerance = 1e-7
	}
	if c.MaxNodes == 0 {
		c.MaxNodes = 10000
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Tolerance <= 0 || c.Tolerance >= 0.5 {
		return fmt.Errorf("simplex: tolerance must be in (0, 0.5), got %v", c.Tolerance)
	}
	if c.MaxNodes < 0 {
		return fmt.Errorf("simplex: max_nodes must be positive, got %d", c.MaxNodes)
	}
	return nil
}
