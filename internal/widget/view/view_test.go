package view

import (
	"html/template"
	"strings"
	"testing"

	"takosu/internal/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "corto", Truncate("corto", 10))
	assert.Equal(t, "exacto", Truncate("exacto", 6))
	assert.Equal(t, "abc…", Truncate("abcdef", 3))
	assert.Equal(t, "añó…", Truncate("añóxyz", 3))
}

func TestRenderMessage_Alignment(t *testing.T) {
	own, err := RenderMessage(shared.MessageRecord{Sender: "yo", Message: "hola", IsUser: true, Icon: "/media/u.png"})
	require.NoError(t, err)
	assert.Contains(t, string(own), "justify-end")
	assert.NotContains(t, string(own), "<strong>")

	other, err := RenderMessage(shared.MessageRecord{Sender: "soporte", Message: "¿en qué te ayudo?", CreatedAt: "1 de enero de 2025 a las 10:00"})
	require.NoError(t, err)
	assert.Contains(t, string(other), "justify-start")
	assert.Contains(t, string(other), "<strong>soporte</strong>:")
	assert.Contains(t, string(other), "1 de enero de 2025 a las 10:00")
}

func TestRenderMessage_EscapesBody(t *testing.T) {
	frag, err := RenderMessage(shared.MessageRecord{Sender: "x", Message: "<script>alert(1)</script>"})
	require.NoError(t, err)
	assert.NotContains(t, string(frag), "<script>")
	assert.Contains(t, string(frag), "&lt;script&gt;")
}

func TestMessageLog_AppendsAndScrolls(t *testing.T) {
	box := NewContainer()
	log := NewMessageLog(box)

	require.NoError(t, log.Render(shared.MessageRecord{Timestamp: 1, Message: "a"}))
	require.NoError(t, log.Render(shared.MessageRecord{Timestamp: 2, Message: "b"}))

	assert.Equal(t, 2, box.Len())
	assert.True(t, box.AtBottom())
	assert.True(t, strings.Index(string(box.HTML()), " a<br>") < strings.Index(string(box.HTML()), " b<br>"))
}

func TestCommentLog_Render(t *testing.T) {
	box := NewContainer()
	require.NoError(t, NewCommentLog(box).Render(shared.CommentRecord{User: "ana", Comment: "¡Qué capítulo!"}))

	children := box.Children()
	require.Len(t, children, 1)
	assert.Contains(t, string(children[0]), ">ana</span>")
	assert.Contains(t, string(children[0]), "¡Qué capítulo!")
}

func TestGrid_EmptyStateQuotesEscapedQuery(t *testing.T) {
	box := NewContainer()
	grid := NewGrid(box)
	require.NoError(t, grid.ShowResults([]shared.AnimeSummary{{Title: "Naruto"}}))

	require.NoError(t, grid.ShowEmpty(`<b>"zz"</b>`))

	children := box.Children()
	require.Len(t, children, 1)
	html := string(children[0])
	assert.Contains(t, html, "&lt;b&gt;&#34;zz&#34;&lt;/b&gt;")
	assert.Contains(t, html, `href="/anime/"`)
}

func TestGrid_CardsTruncateDescription(t *testing.T) {
	box := NewContainer()
	long := strings.Repeat("x", 200)

	require.NoError(t, NewGrid(box).ShowResults([]shared.AnimeSummary{
		{Title: "One Piece", URL: "/anime/One%20Piece/", Image: "/media/op.jpg", Description: long, TotalEpisodes: 1100},
		{Title: "Bleach", URL: "/anime/Bleach/", Description: "corto"},
	}))

	children := box.Children()
	require.Len(t, children, 2)
	assert.Contains(t, string(children[0]), strings.Repeat("x", 150)+"…")
	assert.NotContains(t, string(children[0]), strings.Repeat("x", 151))
	assert.Contains(t, string(children[0]), "1100 Episodios")
	assert.Contains(t, string(children[0]), `href="/anime/One%20Piece/"`)
}

func TestRenderPage(t *testing.T) {
	var b strings.Builder
	err := RenderPage(&b, Page{
		Title:       "Chat <ayuda>",
		ContainerID: "chat-box",
		Body:        template.HTML(`<div class="msg">hola</div>`),
		Scripts: []Script{
			{ID: "conversationId", Value: 12},
			{ID: "categories-data", Value: []shared.CategoryData{{ID: "accion", Name: "Acción"}}},
		},
	})

	require.NoError(t, err)
	html := b.String()
	assert.Contains(t, html, `<title>Chat &lt;ayuda&gt; | TakosuAnime</title>`)
	assert.Contains(t, html, `<main id="chat-box"><div class="msg">hola</div></main>`)
	assert.Regexp(t, `<script id="conversationId" type="application/json">\s*12\s*</script>`, html)
	assert.Contains(t, html, `"id":"accion"`)
}

func TestRenderCategories(t *testing.T) {
	frag, err := RenderCategories([]shared.CategoryData{
		{ID: "accion", Name: "Acción", Animes: []shared.AnimeSummary{{Title: "Bleach", URL: "/anime/Bleach/", Image: "/b.jpg"}}},
		{ID: "romance", Name: "Romance"},
	})

	require.NoError(t, err)
	assert.Contains(t, string(frag), `<h2 class="category-title text-white text-2xl font-bold" data-category="accion">Acción</h2>`)
	assert.Contains(t, string(frag), `data-category="romance"`)
	assert.Contains(t, string(frag), `href="/anime/Bleach/"`)
}

func TestRenderSuggestion_EscapesText(t *testing.T) {
	frag, err := RenderSuggestion(SuggestionItem{
		Author: "ana", Subject: "<b>Más</b>", Message: "línea 1\nlínea 2", CreatedAt: "5 de octubre de 2025 a las 14:30",
	})

	require.NoError(t, err)
	assert.Contains(t, string(frag), "&lt;b&gt;Más&lt;/b&gt;")
	assert.Contains(t, string(frag), "ana · 5 de octubre de 2025 a las 14:30")
	assert.Contains(t, string(frag), "línea 1\nlínea 2")
}

func TestRenderProfileHeader(t *testing.T) {
	frag, err := RenderProfileHeader(ProfileHeader{Username: "kenji", Icon: "/media/users/kenji/a.png"})

	require.NoError(t, err)
	assert.Contains(t, string(frag), `src="/media/users/kenji/a.png"`)
	assert.Contains(t, string(frag), `enctype="multipart/form-data"`)
	assert.Contains(t, string(frag), `name="icon"`)
}
