package command

// render.go prints widget output to the terminal.

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"takosu/cmd/cli/dto"
	"takosu/internal/shared"
	"takosu/internal/widget/view"
)

var (
	ownColor    = color.New(color.FgGreen, color.Bold)
	senderColor = color.New(color.FgCyan, color.Bold)
	dateColor   = color.New(color.FgHiBlack)
	titleColor  = color.New(color.FgYellow, color.Bold)
	linkColor   = color.New(color.FgBlue, color.Underline)
)

func indent(text string) string {
	return "  " + strings.ReplaceAll(text, "\n", "\n  ")
}

// messagePrinter is the chat log: the viewer's own messages are labelled
// "Tú", everyone else's carry the sender name.
type messagePrinter struct {
	out io.Writer
}

func (p messagePrinter) Render(m shared.MessageRecord) error {
	who := ownColor.Sprint("Tú")
	if !m.IsUser {
		who = senderColor.Sprint(m.Sender)
	}
	_, err := fmt.Fprintf(p.out, "%s %s\n%s\n", who, dateColor.Sprint(m.CreatedAt), indent(m.Message))
	return err
}

type commentPrinter struct {
	out io.Writer
}

func (p commentPrinter) Render(c shared.CommentRecord) error {
	_, err := fmt.Fprintf(p.out, "%s %s\n%s\n", senderColor.Sprint(c.User), dateColor.Sprint(c.CreatedAt), indent(c.Comment))
	return err
}

// gridPrinter shows search results as text cards.
type gridPrinter struct {
	out  io.Writer
	base string
}

func (g gridPrinter) ShowResults(items []shared.AnimeSummary) error {
	for _, a := range items {
		if _, err := fmt.Fprintf(g.out, "%s  %s\n", titleColor.Sprint(a.Title), dateColor.Sprintf("%d episodios", a.TotalEpisodes)); err != nil {
			return err
		}
		if a.Description != "" {
			fmt.Fprintln(g.out, indent(view.Truncate(a.Description, view.DescriptionLimit)))
		}
		fmt.Fprintln(g.out, "  "+linkColor.Sprint(g.base+a.URL))
	}
	return nil
}

func (g gridPrinter) ShowEmpty(query string) error {
	_, err := fmt.Fprintf(g.out, "No se encontraron resultados\nNo hay animes que coincidan con %q\nVolver a ver todos: %s\n",
		query, linkColor.Sprint(g.base+"/anime/"))
	return err
}

func (g gridPrinter) Clear() {
	fmt.Fprintln(g.out, dateColor.Sprint("──"))
}

// panelPrinter animates the surprise panel on one terminal line.
type panelPrinter struct {
	out  io.Writer
	base string
}

func (p panelPrinter) ShowFrame(a shared.AnimeSummary) {
	fmt.Fprintf(p.out, "\r\033[K🎲 %s", a.Title)
}

func (p panelPrinter) Reveal(a shared.AnimeSummary) {
	fmt.Fprintf(p.out, "\r\033[K✨ %s\n  %s\n", titleColor.Sprint(a.Title), linkColor.Sprint(p.base+a.URL))
}

// navigator prints the page a pick leads to.
type navigator struct {
	out  io.Writer
	base string
}

func (n navigator) Navigate(path string) {
	fmt.Fprintf(n.out, "→ %s\n", linkColor.Sprint(n.base+path))
}

var profileItems = []string{"Mi perfil", "Ayuda", "Cerrar sesión"}

func printMenu(out io.Writer, visible bool) {
	if !visible {
		return
	}
	for _, item := range profileItems {
		fmt.Fprintf(out, "  • %s\n", item)
	}
}

// printSuggestions lists the suggestion box newest first, as the server sends it.
func printSuggestions(out io.Writer, list []dto.SuggestionResponse) {
	if len(list) == 0 {
		fmt.Fprintln(out, "No hay sugerencias todavía")
		return
	}
	for _, s := range list {
		fmt.Fprintf(out, "%s %s\n", titleColor.Sprint(s.Subject), dateColor.Sprintf("%s · %s", s.Username, s.CreatedAt))
		fmt.Fprintln(out, indent(s.Message))
	}
}

// mediaLink makes a server media path clickable from the terminal.
func mediaLink(base, u string) string {
	if strings.HasPrefix(u, "/") {
		return base + u
	}
	return u
}
