// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package prompt provides the fixed prompt-template catalog and the
// composer that turns a template (or free-form text) into the system and
// user instructions sent to the AI provider. Everything in this package
// is pure string work with no I/O.
package prompt

import "strings"

// Template is one entry in the prompt catalog. Templates are defined at
// compile time and never created or modified at runtime. The Body contains
// bracketed placeholders like [topic] that users fill in.
type Template struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Body        string `json:"template"`
}

// catalog is the fixed set of built-in templates.
var catalog = []Template{
	{
		ID:          "content-writer",
		Name:        "Content Writer",
		Description: "Create engaging blog posts and articles",
		Category:    "Writing",
		Body:        "Write a [type of content] about [topic] that is [tone/style] and targets [audience]. Include [specific elements] and make it [length/format].",
	},
	{
		ID:          "code-assistant",
		Name:        "Code Assistant",
		Description: "Get help with programming and debugging",
		Category:    "Programming",
		Body:        "I need help with [programming language] to [specific task]. My current code is [paste code here]. Please explain [what you need help with] and provide a solution.",
	},
	{
		ID:          "creative-storyteller",
		Name:        "Creative Storyteller",
		Description: "Generate creative stories and narratives",
		Category:    "Creative",
		Body:        "Write a [genre] story about [main character] who [main conflict/plot]. The story should be [length] and include [specific elements]. Make it [tone/style].",
	},
	{
		ID:          "business-analyst",
		Name:        "Business Analyst",
		Description: "Analyze business problems and provide insights",
		Category:    "Business",
		Body:        "Analyze [business problem/opportunity] for [company/industry]. Consider [specific factors] and provide [type of analysis] with actionable recommendations.",
	},
	{
		ID:          "learning-tutor",
		Name:        "Learning Tutor",
		Description: "Get educational explanations and tutorials",
		Category:    "Education",
		Body:        "Explain [concept/topic] to someone who is [knowledge level]. Use [teaching style] and include [specific examples/analogies] to make it clear and engaging.",
	},
	{
		ID:          "problem-solver",
		Name:        "Problem Solver",
		Description: "Break down complex problems into solutions",
		Category:    "Problem Solving",
		Body:        "I have a problem with [describe problem]. The context is [background information]. Please help me [specific goal] by [approach you want].",
	},
}

// Catalog returns a copy of the built-in template catalog so callers
// cannot mutate the shared definitions.
func Catalog() []Template {
	out := make([]Template, len(catalog))
	copy(out, catalog)
	return out
}

// Find looks up a template by its ID.
func Find(id string) (Template, bool) {
	for _, t := range catalog {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}

// Placeholders extracts the bracketed placeholder names from a template
// body, in order of appearance. Unclosed brackets are ignored.
func Placeholders(body string) []string {
	var names []string
	for {
		open := strings.IndexByte(body, '[')
		if open == -1 {
			return names
		}
		close := strings.IndexByte(body[open:], ']')
		if close == -1 {
			return names
		}
		if close > 1 {
			names = append(names, body[open+1:open+close])
		}
		body = body[open+close+1:]
	}
}
