package main

import (
	"fmt"
	"io"

	"github.com/jsvensson/colorspaces/internal/color"
	"github.com/jsvensson/colorspaces/internal/gradient"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

// describe renders c in the given space.
func describe(c color.RGB, space gradient.Space) string {
	switch space {
	case gradient.SpaceRGB:
		return c.String()
	case gradient.SpaceXYZ:
		return c.XYZ().String()
	case gradient.SpaceLAB:
		return c.LAB().String()
	default:
		return c.LCH().String()
	}
}

// swatch writes a block of c's color when w is a color terminal.
func swatch(w io.Writer, c color.RGB) {
	out := termenv.NewOutput(w)
	block := out.String("        ").Background(out.Color(c.Hex()))
	fmt.Fprintln(w, block)
}

func newConvertCmd() *cobra.Command {
	var (
		spaceName  string
		showSwatch bool
	)

	cmd := &cobra.Command{
		Use:   "convert <color>",
		Short: "Print a hex color in every color space",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := color.ParseHex(args[0])
			if err != nil {
				return fmt.Errorf("parsing color: %w", err)
			}
			w := cmd.OutOrStdout()

			if showSwatch {
				swatch(w, c)
			}

			if spaceName != "" {
				space, err := gradient.ParseSpace(spaceName)
				if err != nil {
					return err
				}
				fmt.Fprintln(w, describe(c, space))
				return nil
			}

			fmt.Fprintf(w, "hex  %s\n", c.HexAlpha())
			for _, space := range []gradient.Space{gradient.SpaceRGB, gradient.SpaceXYZ, gradient.SpaceLAB, gradient.SpaceLCH} {
				fmt.Fprintf(w, "%-4s %s\n", space, describe(c, space))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&spaceName, "space", "s", "", "only print this space (rgb, xyz, lab, lch)")
	cmd.Flags().BoolVar(&showSwatch, "swatch", false, "print a color swatch")
	return cmd
}

func newLerpCmd() *cobra.Command {
	var (
		t         float64
		spaceName string
	)

	cmd := &cobra.Command{
		Use:   "lerp <from> <to>",
		Short: "Interpolate between two hex colors",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := color.ParseHex(args[0])
			if err != nil {
				return fmt.Errorf("parsing from color: %w", err)
			}
			to, err := color.ParseHex(args[1])
			if err != nil {
				return fmt.Errorf("parsing to color: %w", err)
			}
			space, err := gradient.ParseSpace(spaceName)
			if err != nil {
				return err
			}

			mixed := gradient.Mix(from, to, t, space)
			log.Debugf("mixed %s and %s at %g in %s", args[0], args[1], t, space)

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, mixed.HexAlpha())
			fmt.Fprintln(w, describe(mixed, space))
			return nil
		},
	}

	cmd.Flags().Float64VarP(&t, "t", "t", 0.5, "interpolation factor, 0 is from and 1 is to")
	cmd.Flags().StringVarP(&spaceName, "space", "s", "lch", "color space to interpolate in (lch, lab, xyz, rgb)")
	return cmd
}
