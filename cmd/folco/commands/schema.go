package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/esimov/folco"
	"github.com/esimov/folco/render"
)

func schemaCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of the profile document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := folco.ProfileSchema()
			if err != nil {
				return err
			}
			fmt.Fprintln(a.stdout, s)
			return nil
		},
	}
}

func colorsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "colors",
		Short: "List the named folder colours",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, c := range folco.FolderColors() {
				m := c.HSLMutation()
				swatch := render.BaseColor.Shift(m).NRGBA(0xff)
				fmt.Fprintf(a.stdout, "%-8s #%02x%02x%02x  hue %+6.1f  saturation %+.2f  lightness %+.2f\n",
					c, swatch.R, swatch.G, swatch.B,
					m.HueShift, m.SaturationShift, m.LightnessShift)
			}
			return nil
		},
	}
}
