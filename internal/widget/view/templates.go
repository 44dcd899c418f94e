package view

import (
	"html/template"
	"strings"

	"takosu/internal/shared"
)

// DescriptionLimit is how many characters of a description a search card shows.
const DescriptionLimit = 150

var fragments = template.Must(template.New("fragments").Funcs(template.FuncMap{
	"truncate": Truncate,
}).Parse(`
{{define "message"}}<div class="flex {{if .IsUser}}justify-end{{else}}justify-start{{end}}"><div class="flex items-end gap-2 max-w-[70%]">{{if not .IsUser}}<img src="{{.Icon}}" class="w-8 h-8 rounded-full object-cover">{{end}}<div class="{{if .IsUser}}[background-color:#FFBC0E] text-black rounded-br-none{{else}}bg-gray-800 text-white rounded-bl-none{{end}} p-3 rounded-lg">{{if not .IsUser}}<strong>{{.Sender}}</strong>:{{end}} {{.Message}}<br><small class="text-xs">{{.CreatedAt}}</small></div>{{if .IsUser}}<img src="{{.Icon}}" class="w-8 h-8 rounded-full object-cover">{{end}}</div></div>{{end}}

{{define "comment"}}<div class="bg-[#11111F] p-4 rounded shadow-sm"><div class="flex items-center mb-2"><span class="text-[#FFBC0E] font-bold mr-2">{{.User}}</span><span class="text-gray-400 text-sm">{{.CreatedAt}}</span></div><p class="text-white">{{.Comment}}</p></div>{{end}}

{{define "card"}}<a href="{{.URL}}"><div class="hover-card shadow-md overflow-hidden"><img src="{{.Image}}" alt="{{.Title}}" class="h-[350px] object-cover rounded-sm"><div class="p-2"><h2 class="text-md font-bold text-center text-white">{{.Title}}</h2></div><div class="hover-overlay"><h2 class="text-sm font-bold text-white">{{.Title}}</h2><p class="text-sm font-semibold text-gray-400 pt-3">{{.TotalEpisodes}} Episodios</p><p class="text-sm pt-2 text-white">{{truncate .Description 150}}</p></div></div></a>{{end}}

{{define "empty"}}<div class="col-span-full items-center justify-center text-center mt-8"><h2 class="text-white text-xl font-semibold mb-2">No se encontraron resultados</h2><p class="text-gray-400">No hay animes que coincidan con "<strong>{{.}}</strong>"</p><img src="/static/images/not_found.gif" alt="No results" class="mx-auto mt-4 w-22"><a href="/anime/" class="inline-block mt-4 text-yellow-400 hover:underline">Volver a ver todos</a></div>{{end}}

{{define "suggestion"}}<article class="bg-[#11111F] p-4 rounded shadow-sm"><header class="flex items-center justify-between mb-2"><h3 class="text-white font-bold">{{.Subject}}</h3><span class="text-gray-400 text-sm">{{.Author}} · {{.CreatedAt}}</span></header><p class="text-white whitespace-pre-line">{{.Message}}</p></article>{{end}}

{{define "profile"}}<div class="flex items-center gap-4 mb-6"><img src="{{.Icon}}" alt="{{.Username}}" class="w-24 h-24 rounded-full object-cover"><h1 class="text-white text-2xl font-bold">{{.Username}}</h1></div><form method="post" action="/profile/" enctype="multipart/form-data" class="mb-8"><input type="file" name="icon" accept="image/png,image/jpeg,image/gif,image/webp"><button type="submit" class="[background-color:#FFBC0E] text-black px-4 py-2 rounded">Actualizar</button></form>{{end}}
`))

func render(name string, data any) (template.HTML, error) {
	var b strings.Builder
	if err := fragments.ExecuteTemplate(&b, name, data); err != nil {
		return "", err
	}
	return template.HTML(b.String()), nil
}

// RenderMessage renders a chat bubble, right aligned for the user's own messages.
func RenderMessage(m shared.MessageRecord) (template.HTML, error) {
	return render("message", m)
}

func RenderComment(c shared.CommentRecord) (template.HTML, error) {
	return render("comment", c)
}

// RenderCard renders one search result card.
func RenderCard(a shared.AnimeSummary) (template.HTML, error) {
	return render("card", a)
}

// RenderEmptyState renders the "no results" block quoting the query.
func RenderEmptyState(query string) (template.HTML, error) {
	return render("empty", query)
}

// Truncate cuts s to n characters and appends an ellipsis when it was longer.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
