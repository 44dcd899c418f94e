package command

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"takosu/internal/widget/carousel"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the home page carousels",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()
		width, _ := cmd.Flags().GetInt("width")

		catalog, err := getOptionalClient(ctx).Categories(ctx)
		if err != nil {
			return err
		}

		// a partially visible slide still counts as shown
		shown := int(math.Ceil(carousel.PerView(width)))
		for _, id := range catalog.IDs() {
			cat, _ := catalog.Category(id)
			name := cat.Name
			if name == "" {
				name = id
			}
			fmt.Fprintf(out, "%s %s\n", titleColor.Sprint(name), dateColor.Sprintf("[%s] %d animes", id, len(cat.Animes)))
			for i, a := range cat.Animes {
				if i == shown {
					fmt.Fprintln(out, "  …")
					break
				}
				fmt.Fprintf(out, "  %s\n", a.Title)
			}
		}
		return nil
	},
}

var randomCmd = &cobra.Command{
	Use:   "random <category-id>",
	Short: "Open a random anime of a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		httpClient := getOptionalClient(ctx)

		catalog, err := httpClient.Categories(ctx)
		if err != nil {
			return err
		}

		picker := carousel.NewPicker(catalog, nil, navigator{out: cmd.OutOrStdout(), base: httpClient.BaseURL()})
		if _, ok := picker.PickFromCategory(args[0]); !ok {
			fmt.Fprintf(cmd.ErrOrStderr(), "category %q has no anime; see `takosu categories`\n", args[0])
		}
		return nil
	},
}

var surpriseCmd = &cobra.Command{
	Use:   "surprise",
	Short: "Let the slot machine pick an anime",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		httpClient := getOptionalClient(ctx)

		catalog, err := httpClient.Categories(ctx)
		if err != nil {
			return err
		}

		reveal := carousel.NewReveal(catalog, nil, nil, panelPrinter{out: cmd.OutOrStdout(), base: httpClient.BaseURL()})
		_, err = reveal.Run(ctx)
		return err
	},
}

func init() {
	categoriesCmd.Flags().Int("width", 1280, "viewport width used to size each carousel page")
}
