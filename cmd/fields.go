// =============================================================================
// EFT Viewer - Fields Command
// =============================================================================
//
// This file defines the 'fields' command, which prints the display label of
// field ids.
//
// COMMAND USAGE:
//   eftview fields [id...]
//
// Ids are "type.number" with any number padding: "14.13" and "14.013" name
// the same field. Without ids every labelled field is listed.
//
// =============================================================================

package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ginjaninja78/eft-viewer/internal/fieldnames"
	"github.com/ginjaninja78/eft-viewer/internal/xlsx"
	"github.com/spf13/cobra"
)

var fieldsCmd = &cobra.Command{
	Use:   "fields [id...]",
	Short: "Print field labels",
	Long: `The fields command prints "Label (id)" for each field id, or the id alone
when it has no label. The labels_file from the configuration, or --labels,
overrides the built-in labels.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		path := mainConfig.LabelsFile
		if labelsFile != "" {
			path = labelsFile
		}
		names, err := loadDictionary(path)
		if err != nil {
			return err
		}

		ids, err := fieldIDs(names, args)
		if err != nil {
			return err
		}
		for _, id := range ids {
			fmt.Fprintln(cmd.OutOrStdout(), names.DisplayText(id))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fieldsCmd)

	fieldsCmd.Flags().StringVar(&labelsFile, "labels", "", "YAML or XLSX file overriding field labels")
}

// fieldIDs normalizes args, or lists every labelled id when args is empty.
func fieldIDs(names *fieldnames.Dictionary, args []string) ([]string, error) {
	if len(args) == 0 {
		return names.IDs(), nil
	}

	ids := make([]string, 0, len(args))
	for _, arg := range args {
		id, ok := fieldnames.NormalizeID(arg)
		if !ok {
			return nil, fmt.Errorf("invalid field id %q, expected type.number", arg)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// loadDictionary returns the built-in labels with the overrides in path
// applied. An empty path means no overrides.
//
// SUPPORTED FILES:
//   - .xlsx: a label workbook (field id column, label column)
//   - anything else: a YAML "id: label" map
func loadDictionary(path string) (*fieldnames.Dictionary, error) {
	if path == "" {
		return fieldnames.Default(), nil
	}

	var overrides map[string]string
	var err error
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		overrides, err = xlsx.LoadLabels(path)
	} else {
		overrides, err = fieldnames.LoadYAML(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load labels: %w", err)
	}

	names, err := fieldnames.Default().With(overrides)
	if err != nil {
		return nil, fmt.Errorf("failed to load labels: %w", err)
	}
	return names, nil
}
