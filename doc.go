/*
Package folco customizes the icon of filesystem directories. A folder icon is
composed from a base folder shape, an optional colour mutation, a centered
decal and a positioned overlay (vector art or emoji). The composite is rendered
once and then installed as the custom icon of every directory in a batch.

The package provides a command line interface, supporting subcommands for
customizing and resetting directories. To check the supported commands type:

	$ folco --help

In case you wish to integrate the API in a self constructed environment here is a simple example:

	package main

	import (
		"context"
		"fmt"

		"github.com/esimov/folco"
		"github.com/esimov/folco/install"
		"github.com/esimov/folco/render"
	)

	func main() {
		decal, err := folco.ResolveDecalSource("<svg ...>")
		if err != nil {
			panic(err)
		}
		settings, err := folco.NewDecalSettings(decal, 0.7)
		if err != nil {
			panic(err)
		}
		profile := folco.NewProfile().
			WithHSLMutation(folco.Red.HSLMutation()).
			WithDecal(settings)

		c := &folco.Customizer{
			Renderer:  render.New(),
			Installer: install.New(nil),
		}
		for ev := range c.CustomizeAsync(context.Background(), []string{"./photos"}, profile) {
			fmt.Println(ev)
		}
	}
*/
package folco
