package handlers

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/YassineBouzid/phsyckatre-clinick/internal/config"
)

// ConfigHandler prints the effective configuration.
type ConfigHandler struct {
	cfg *config.Config
}

// NewConfigHandler creates a new ConfigHandler.
func NewConfigHandler(cfg *config.Config) *ConfigHandler {
	return &ConfigHandler{cfg: cfg}
}

// RegisterCommands adds the config command group to root and returns it.
func (h *ConfigHandler) RegisterCommands(root *cobra.Command) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration",
	}
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Long: `Print the effective configuration as YAML.

Values come from defaults, clinic.yaml (or the file named by CLINIC_CONFIG)
and CLINIC_* environment variables. The bootstrap password is never printed.`,
		Args: cobra.NoArgs,
		RunE: h.HandleShow,
	}
	configCmd.AddCommand(showCmd)
	root.AddCommand(configCmd)
	return configCmd
}

// HandleShow prints the configuration.
func (h *ConfigHandler) HandleShow(cmd *cobra.Command, args []string) error {
	out, err := yaml.Marshal(h.cfg)
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}
