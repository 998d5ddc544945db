package main

import (
	"fmt"

	"ilanver/pkg/types"

	"github.com/k0kubun/pp/v3"
	"github.com/urfave/cli/v2"
)

var categoriesCommand = &cli.Command{
	Name:  "categories",
	Usage: "Print the field vocabulary of each property category",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "category",
			Aliases: []string{"c"},
			Usage:   "Only print this category (name or Turkish alias)",
		},
	},
	Action: func(c *cli.Context) error {
		categories := types.Categories
		if name := c.String("category"); name != "" {
			category, err := types.ParseCategory(name)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			categories = []types.Category{category}
		}

		for _, category := range categories {
			fmt.Printf("%s (%s) -> /search/%s\n", category.Label(), category.Alias(), category.Endpoint())
			pp.Println(types.SchemaFor(category))
		}
		return nil
	},
}
