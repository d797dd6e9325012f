package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/contactscan/contactscan/internal/config"
	"github.com/spf13/cobra"
)

//go:embed templates/contactscan.yaml
var configTemplate embed.FS

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new contactscan filter file",
		Long: `Initialize creates a new .contactscan filter file in the current
directory.

The generated file includes:
- Commented examples for extending the junk-email blocklists
- Documentation for all available options

Examples:
  # Create .contactscan in current directory
  contactscan init

  # Create the file at a specific path
  contactscan init -o myfilters.yaml

  # Force overwrite existing file
  contactscan init -f`,
		Args: cobra.NoArgs,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultConfigFile,
		"Output file path for the filter file")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing filter file")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	// Check if file already exists
	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("filter file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	// Read template from embedded filesystem
	content, err := configTemplate.ReadFile("templates/contactscan.yaml")
	if err != nil {
		return fmt.Errorf("failed to read config template: %w", err)
	}

	// Create parent directories if needed
	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	// Write the filter file
	if err := os.WriteFile(outputPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write filter file: %w", err)
	}

	fmt.Printf("Created filter file: %s\n", outputPath)
	fmt.Println("\nEdit this file to extend the junk-email blocklists with:")
	fmt.Println("  - Extra domains to reject")
	fmt.Println("  - Extra local parts to reject")

	return nil
}
