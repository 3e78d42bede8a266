package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/jsvensson/colorspaces/internal/format"
	"github.com/spf13/cobra"
)

var (
	errUnformatted = errors.New("some files are not formatted")
	errFormatting  = errors.New("some files could not be formatted")
)

func newFmtCmd() *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "fmt [files...]",
		Short: "Format gradient files",
		Long:  "Format one or more gradient files in-place. Prints the name of each file that was modified.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hasErrors := false
			needsFormatting := false

			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "Error reading %s: %v\n", path, err)
					hasErrors = true
					continue
				}

				content := string(data)
				formatted, err := format.Format(content)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "Error formatting %s: %v\n", path, err)
					hasErrors = true
					continue
				}

				if formatted == content {
					continue
				}

				fmt.Fprintln(cmd.OutOrStdout(), path)
				needsFormatting = true

				if !check {
					if err := os.WriteFile(path, []byte(formatted), 0o644); err != nil {
						fmt.Fprintf(cmd.ErrOrStderr(), "Error writing %s: %v\n", path, err)
						hasErrors = true
					}
				}
			}

			if hasErrors {
				return errFormatting
			}
			if check && needsFormatting {
				return errUnformatted
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&check, "check", "c", false, "check if files are formatted (do not write changes)")
	return cmd
}
