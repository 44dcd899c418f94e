package view

import (
	"html/template"
	"io"
	"strings"

	"takosu/internal/shared"
)

// Script is a JSON data block embedded in a page, read by the page's widgets.
type Script struct {
	ID    string
	Value any
}

// Page is a full server-rendered document around one widget container.
type Page struct {
	Title       string
	ContainerID string
	Body        template.HTML
	Scripts     []Script
}

var pages = template.Must(template.New("pages").Parse(`
{{define "page"}}<!DOCTYPE html>
<html lang="es">
<head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>{{.Title}} | TakosuAnime</title></head>
<body class="bg-[#0B0B16]">
<main id="{{.ContainerID}}">{{.Body}}</main>
{{range .Scripts}}<script id="{{.ID}}" type="application/json">{{.Value}}</script>
{{end}}</body>
</html>{{end}}

{{define "categories"}}{{range .}}<section class="mb-8"><h2 class="category-title text-white text-2xl font-bold" data-category="{{.ID}}">{{.Name}}</h2><div class="swiper" data-category="{{.ID}}"><div class="swiper-wrapper">{{range .Animes}}<div class="swiper-slide"><a href="{{.URL}}"><img src="{{.Image}}" alt="{{.Title}}" class="rounded-sm"></a></div>{{end}}</div></div></section>{{end}}{{end}}
`))

// RenderPage writes a complete HTML document.
func RenderPage(w io.Writer, p Page) error {
	return pages.ExecuteTemplate(w, "page", p)
}

// RenderCategories renders the carousel sections of the home page. Each
// heading carries the same id as its categories payload entry.
func RenderCategories(cats []shared.CategoryData) (template.HTML, error) {
	var b strings.Builder
	if err := pages.ExecuteTemplate(&b, "categories", cats); err != nil {
		return "", err
	}
	return template.HTML(b.String()), nil
}
