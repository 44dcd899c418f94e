package view

import "html/template"

// SuggestionItem is one suggestion as admins read it.
type SuggestionItem struct {
	Author    string
	Subject   string
	Message   string
	CreatedAt string
}

// ProfileHeader is the icon, name and icon upload form of the profile page.
type ProfileHeader struct {
	Username string
	Icon     string
}

func RenderSuggestion(s SuggestionItem) (template.HTML, error) {
	return render("suggestion", s)
}

func RenderProfileHeader(p ProfileHeader) (template.HTML, error) {
	return render("profile", p)
}
