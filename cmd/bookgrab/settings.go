package main

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

// Run executes the settings command.
func (c *SettingsCmd) Run(deps *Dependencies) error {
	data, err := toml.Marshal(deps.Settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	fmt.Fprintf(deps.Stdout, "# %s\n\n%s", deps.SettingsPath, data)
	return nil
}
