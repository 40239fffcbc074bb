package tui

import "strings"

// RenderBanner renders the welcome box shown before the first question.
func RenderBanner(legacy bool) string {
	title := "Welcome to the Drupal composer.json generator"
	if legacy {
		title += " (Drupal 7)"
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render(title))
	b.WriteString("\n\n")
	b.WriteString("This command will guide you through creating your composer.json config.")

	return BorderStyle.Render(b.String())
}
