package main

import (
	"fmt"

	"github.com/jsvensson/colorspaces/internal/export"
	"github.com/jsvensson/colorspaces/internal/parser"
	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	var (
		file       string
		formatName string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the resolved palette and gradient stops as JSON, YAML or TOML",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := export.ParseFormat(formatName)
			if err != nil {
				return err
			}
			doc, err := parser.Parse(file)
			if err != nil {
				return fmt.Errorf("loading gradients: %w", err)
			}
			return export.Write(cmd.OutOrStdout(), doc, format)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "gradients.grad", "path to gradient file")
	cmd.Flags().StringVar(&formatName, "format", "json", "output format (json, yaml, toml)")
	return cmd
}
