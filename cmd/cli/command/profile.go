package command

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show your profile and favorite anime",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		httpClient, err := GetAuthenticatedClient(ctx)
		if err != nil {
			return err
		}
		profile, err := httpClient.Profile(ctx)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "%s %s\n", titleColor.Sprint(profile.Username), dateColor.Sprint(profile.Email))
		fmt.Fprintf(out, "Icono: %s\n\n", linkColor.Sprint(mediaLink(httpClient.BaseURL(), profile.Icon)))
		if len(profile.Favorites) == 0 {
			fmt.Fprintln(out, "Aún no tienes animes favoritos")
			return nil
		}
		fmt.Fprintln(out, "Favoritos:")
		return gridPrinter{out: out, base: httpClient.BaseURL()}.ShowResults(profile.Favorites)
	},
}

var profileIconCmd = &cobra.Command{
	Use:   "icon <image-file>",
	Short: "Replace your profile icon (PNG, JPEG, GIF or WebP, up to 2 MB)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		httpClient, err := GetAuthenticatedClient(ctx)
		if err != nil {
			return err
		}
		icon, err := httpClient.UploadIcon(ctx, args[0], f)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Icono actualizado: %s\n", linkColor.Sprint(mediaLink(httpClient.BaseURL(), icon)))
		return nil
	},
}

var favoriteCmd = &cobra.Command{
	Use:   "favorite <anime>",
	Short: "Add an anime to your favorites, or remove it if it already is one",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		title := strings.Join(args, " ")

		httpClient, err := GetAuthenticatedClient(ctx)
		if err != nil {
			return err
		}
		result, err := httpClient.ToggleFavorite(ctx, title)
		if err != nil {
			return err
		}
		if result.Favorite {
			fmt.Fprintf(cmd.OutOrStdout(), "★ %s añadido a favoritos\n", result.Title)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "☆ %s quitado de favoritos\n", result.Title)
		}
		return nil
	},
}

func init() {
	profileCmd.AddCommand(profileIconCmd)
}
