package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/inkplot/inkplot/pkg/config"
)

// presetsCommand creates the presets command group.
func (c *CLI) presetsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List and inspect artwork presets",
	}

	cmd.AddCommand(c.presetsListCommand())
	cmd.AddCommand(c.presetsShowCommand())

	return cmd
}

// presetsListCommand creates the "presets list" subcommand.
func (c *CLI) presetsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			presets, err := config.Load()
			if err != nil {
				return err
			}
			for _, p := range presets.List() {
				fmt.Printf("%s %s\n",
					StyleHighlight.Render(fmt.Sprintf("%-16s", p.Name)),
					StyleDim.Render(fmt.Sprintf("%s · %s", p.Algorithm, p.Description)))
			}
			dir, err := config.UserDir()
			if err == nil {
				fmt.Println()
				printDetail("Add your own in %s/presets.toml", dir)
			}
			return nil
		},
	}
}

// presetsShowCommand creates the "presets show" subcommand.
func (c *CLI) presetsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [name]",
		Short: "Show a preset's full configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets, err := config.Load()
			if err != nil {
				return err
			}
			p, err := presets.Get(args[0])
			if err != nil {
				return err
			}

			fmt.Println(StyleTitle.Render(p.Name))
			if p.Description != "" {
				printDetail("%s", p.Description)
			}
			fmt.Println()
			printKeyValue("algorithm", p.Algorithm)
			printKeyValue("scheme", p.Scheme)

			params := p.Params
			params.SetDefaults()
			printKeyValue("size", fmt.Sprintf("%d", params.Size))
			printKeyValue("steps", fmt.Sprintf("%d", params.Steps))
			printKeyValue("seed", fmt.Sprintf("%d", params.Seed))
			printKeyValue("margin", fmt.Sprintf("%g", params.Margin))
			printKeyValue("stroke_width", fmt.Sprintf("%g", params.StrokeWidth))

			keys := make([]string, 0, len(params.Extra))
			for k := range params.Extra {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				printKeyValue(k, fmt.Sprintf("%g", params.Extra[k]))
			}

			fmt.Println()
			printNextStep("Generate it", fmt.Sprintf("inkplot generate --preset %s", p.Name))
			return nil
		},
	}
}
