package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/recera/vexc/cmd/vexc/internal/config"
	"github.com/recera/vexc/cmd/vexc/internal/ui"
)

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the vexc project configuration",
	}

	cmd.AddCommand(newConfigInitCommand())
	cmd.AddCommand(newConfigShowCommand())

	return cmd
}

func newConfigInitCommand() *cobra.Command {
	var force, interactive bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default vexc.yaml",
		RunE: func(cmd *cobra.Command, args []string) error {
			project, _ := cmd.Flags().GetString("project")
			path := filepath.Join(project, config.FileName+".yaml")

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			cfg := config.DefaultConfig()
			if interactive {
				edited, err := runWizard(cmd, cfg)
				if err != nil {
					return err
				}
				if edited == nil {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
					return nil
				}
				cfg = edited
			}

			if err := config.Save(cfg, project); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✅ Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing config file")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Edit the settings in an interactive wizard")

	return cmd
}

// runWizard edits cfg interactively. It returns nil when the user quits
// without confirming.
func runWizard(cmd *cobra.Command, cfg *config.Config) (*config.Config, error) {
	p := tea.NewProgram(ui.NewWizard(cfg),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}
	wizard, ok := final.(ui.Wizard)
	if !ok || !wizard.Confirmed() {
		return nil, nil
	}
	return wizard.Config(), nil
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			project, _ := cmd.Flags().GetString("project")
			cfg, err := config.Load(project)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}
