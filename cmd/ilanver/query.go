package main

import (
	"fmt"
	"strings"

	"ilanver/internal/search"
	"ilanver/pkg/types"

	"github.com/urfave/cli/v2"
)

var queryCommand = &cli.Command{
	Name:      "query",
	Usage:     "Build a search query the way the search form does and print it",
	ArgsUsage: "[name=value ...]",
	Description: "Positional arguments are category fields: netAreaMin=500 sets a range bound,\n" +
		"rooms=3+1 selects a list option (repeat for more) and pool=true checks a feature.",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "category", Aliases: []string{"c"}, Usage: "Category, alias or subtype"},
		&cli.StringFlag{Name: "subtype", Usage: "Subtype code"},
		&cli.StringFlag{Name: "listing-type", Usage: "SALE or RENT"},
		&cli.StringFlag{Name: "city"},
		&cli.StringSliceFlag{Name: "district"},
		&cli.StringFlag{Name: "min-price"},
		&cli.StringFlag{Name: "max-price"},
	},
	Action: func(c *cli.Context) error {
		filters := types.SearchFilters{
			Category:      c.String("category"),
			Subtype:       c.String("subtype"),
			ListingType:   types.ListingIntent(strings.ToUpper(c.String("listing-type"))),
			DistrictNames: c.StringSlice("district"),
			Price: types.PriceRange{
				Min: c.String("min-price"),
				Max: c.String("max-price"),
			},
		}
		if city := c.String("city"); city != "" {
			filters.CityNames = []string{city}
		}

		category := types.ClassifyCategory(firstNonEmpty(filters.Category, filters.Subtype))
		record := types.DetailRecord{
			Category: category,
			Values:   map[string]string{},
			Lists:    map[string][]string{},
			Features: map[string]bool{},
		}

		if filters.Subtype != "" {
			if err := category.CheckSubtype(filters.Subtype); err != nil {
				return err
			}
		}

		schema := types.SchemaFor(category)
		for _, arg := range c.Args().Slice() {
			name, value, ok := strings.Cut(arg, "=")
			if !ok {
				return fmt.Errorf("argument %q is not name=value", arg)
			}

			switch {
			case schema.HasFeature(name):
				record.Features[name] = value == "true"
			case isChoice(schema, name):
				record.Lists[name] = append(record.Lists[name], value)
			default:
				record.Values[name] = value
			}
		}

		q := search.Build(filters, types.CategoryDetails{category: record}, filters.Category)

		fmt.Println("category:", q.Category)
		fmt.Println("endpoint:", q.Endpoint)
		fmt.Println("path:    ", q.Path())
		return nil
	},
}

func isChoice(schema types.CategorySchema, name string) bool {
	_, ok := schema.Choice(name)
	return ok
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
