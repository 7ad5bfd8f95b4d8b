// ABOUTME: Export command for backing up notes.
// ABOUTME: Supports JSON and YAML export formats.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/harper/notes/internal/models"
	"github.com/harper/notes/internal/ui"
)

type ExportData struct {
	ExportedAt time.Time      `json:"exported_at" yaml:"exported_at"`
	Version    string         `json:"version" yaml:"version"`
	Notes      []*models.Note `json:"notes" yaml:"notes"`
}

var exportCmd = &cobra.Command{
	Use:         "export",
	Short:       "Export notes",
	Long:        `Export the note list to JSON or YAML. Images are referenced by key, not embedded.`,
	Annotations: map[string]string{annotationRefresh: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		outputPath, _ := cmd.Flags().GetString("output")

		if err := app.requireNotes(); err != nil {
			return err
		}

		export := ExportData{
			ExportedAt: time.Now(),
			Version:    "1.0",
			Notes:      app.ctrl.Notes(),
		}

		data, err := encodeExport(export, format)
		if err != nil {
			return err
		}

		if outputPath == "" || outputPath == "-" {
			_, err := io.WriteString(cmd.OutOrStdout(), string(data))
			return err
		}

		if err := os.WriteFile(outputPath, data, 0644); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("Exported %d notes to %s", len(export.Notes), outputPath)))
		return nil
	},
}

func encodeExport(export ExportData, format string) ([]byte, error) {
	switch format {
	case "json":
		data, err := json.MarshalIndent(export, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case "yaml":
		return yaml.Marshal(export)
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}

func init() {
	exportCmd.Flags().String("format", "json", "export format: json or yaml")
	exportCmd.Flags().StringP("output", "o", "", "output file (default: stdout)")
	rootCmd.AddCommand(exportCmd)
}
