package command

import (
	"bytes"
	"strings"
	"testing"

	"takosu/cmd/cli/dto"
	"takosu/internal/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessagePrinter(t *testing.T) {
	var out bytes.Buffer
	p := messagePrinter{out: &out}

	require.NoError(t, p.Render(shared.MessageRecord{Sender: "soporte", Message: "hola\n¿en qué te ayudo?", CreatedAt: "5 de octubre de 2025 a las 14:30"}))
	require.NoError(t, p.Render(shared.MessageRecord{Sender: "ana", Message: "gracias", IsUser: true}))

	assert.Equal(t, "soporte 5 de octubre de 2025 a las 14:30\n  hola\n  ¿en qué te ayudo?\nTú \n  gracias\n", out.String())
}

func TestGridPrinter(t *testing.T) {
	var out bytes.Buffer
	g := gridPrinter{out: &out, base: "http://localhost:8080"}

	require.NoError(t, g.ShowResults([]shared.AnimeSummary{
		{Title: "Naruto", URL: "/anime/Naruto/", TotalEpisodes: 220, Description: strings.Repeat("a", 200)},
	}))
	text := out.String()
	assert.Contains(t, text, "Naruto  220 episodios")
	assert.Contains(t, text, strings.Repeat("a", 150)+"…")
	assert.NotContains(t, text, strings.Repeat("a", 151))
	assert.Contains(t, text, "http://localhost:8080/anime/Naruto/")

	out.Reset()
	require.NoError(t, g.ShowEmpty("zzz"))
	assert.Contains(t, out.String(), `No hay animes que coincidan con "zzz"`)
	assert.Contains(t, out.String(), "http://localhost:8080/anime/")
}

func TestPanelPrinter(t *testing.T) {
	var out bytes.Buffer
	p := panelPrinter{out: &out, base: "http://x"}
	p.ShowFrame(shared.AnimeSummary{Title: "Bleach"})
	p.Reveal(shared.AnimeSummary{Title: "Naruto", URL: "/anime/Naruto/"})

	assert.Contains(t, out.String(), "🎲 Bleach")
	assert.True(t, strings.HasSuffix(out.String(), "✨ Naruto\n  http://x/anime/Naruto/\n"))
}

func TestPrintSuggestions(t *testing.T) {
	var out bytes.Buffer
	printSuggestions(&out, []dto.SuggestionResponse{
		{Username: "ana", Subject: "Modo oscuro", Message: "porfa\ngracias", CreatedAt: "hoy"},
	})
	assert.Equal(t, "Modo oscuro ana · hoy\n  porfa\n  gracias\n", out.String())

	out.Reset()
	printSuggestions(&out, nil)
	assert.Equal(t, "No hay sugerencias todavía\n", out.String())
}

func TestMediaLink(t *testing.T) {
	assert.Equal(t, "http://localhost:8080/media/a.png", mediaLink("http://localhost:8080", "/media/a.png"))
	assert.Equal(t, "https://cdn.example.com/a.png", mediaLink("http://localhost:8080", "https://cdn.example.com/a.png"))
}
