package markdown

import (
	"fmt"
	"strings"

	"notecraft-be/internal/entity"
)

// Renderer converts pages to Markdown.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render writes the page title as a top level heading followed by its blocks.
// Consecutive items of the same list kind stay in one list; every other
// block is separated by a blank line.
func (r *Renderer) Render(page *entity.Page) string {
	if page == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("# " + page.Title)

	var prev entity.BlockType
	number := 0
	for _, block := range page.Blocks {
		if block.Type == entity.BlockTypeText && strings.TrimSpace(block.Content) == "" {
			continue
		}

		if isListType(block.Type) && block.Type == prev {
			sb.WriteString("\n")
		} else {
			sb.WriteString("\n\n")
			number = 0
		}
		if block.Type == entity.BlockTypeNumberedList {
			number++
		}

		r.writeBlock(&sb, block, number)
		prev = block.Type
	}

	sb.WriteString("\n")
	return sb.String()
}

func isListType(t entity.BlockType) bool {
	switch t {
	case entity.BlockTypeBulletList, entity.BlockTypeNumberedList, entity.BlockTypeTodo:
		return true
	}
	return false
}

func (r *Renderer) writeBlock(sb *strings.Builder, block entity.Block, number int) {
	content := block.Content

	switch block.Type {
	case entity.BlockTypeHeading1:
		sb.WriteString("# " + singleLine(content))
	case entity.BlockTypeHeading2:
		sb.WriteString("## " + singleLine(content))
	case entity.BlockTypeHeading3:
		sb.WriteString("### " + singleLine(content))
	case entity.BlockTypeBulletList:
		sb.WriteString("- " + singleLine(content))
	case entity.BlockTypeNumberedList:
		sb.WriteString(fmt.Sprintf("%d. %s", number, singleLine(content)))
	case entity.BlockTypeTodo:
		if block.Checked() {
			sb.WriteString("- [x] " + singleLine(content))
		} else {
			sb.WriteString("- [ ] " + singleLine(content))
		}
	case entity.BlockTypeQuote:
		sb.WriteString(quoteLines(content))
	case entity.BlockTypeCallout:
		kind := entity.CalloutInfo
		if p, ok := block.Props.(entity.CalloutProps); ok && p.Kind.Valid() {
			kind = p.Kind
		}
		sb.WriteString(quoteLines(fmt.Sprintf("**%s:** %s", calloutLabel(kind), content)))
	case entity.BlockTypeCode:
		lang := ""
		if p, ok := block.Props.(entity.CodeProps); ok {
			lang = p.Language
		}
		fence := codeFence(content)
		sb.WriteString(fence + lang + "\n")
		if content != "" {
			sb.WriteString(content + "\n")
		}
		sb.WriteString(fence)
	case entity.BlockTypeDivider:
		sb.WriteString("---")
	case entity.BlockTypeImage:
		url, caption := "", content
		if p, ok := block.Props.(entity.ImageProps); ok {
			url = p.URL
			if p.Caption != "" {
				caption = p.Caption
			}
		}
		sb.WriteString(fmt.Sprintf("![%s](%s)", singleLine(caption), url))
	default:
		sb.WriteString(content)
	}
}

// codeFence is one backtick longer than the longest backtick run in
// content, and never shorter than three.
func codeFence(content string) string {
	longest, run := 0, 0
	for _, r := range content {
		if r != '`' {
			run = 0
			continue
		}
		run++
		if run > longest {
			longest = run
		}
	}
	if longest < 3 {
		return "```"
	}
	return strings.Repeat("`", longest+1)
}

func singleLine(s string) string {
	return strings.ReplaceAll(s, "\n", " ")
}

func quoteLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = "> " + line
	}
	return strings.Join(lines, "\n")
}

var calloutLabels = map[entity.CalloutKind]string{
	entity.CalloutInfo:    "Info",
	entity.CalloutWarning: "Warning",
	entity.CalloutError:   "Error",
	entity.CalloutSuccess: "Success",
}

func calloutLabel(kind entity.CalloutKind) string {
	return calloutLabels[kind]
}

// calloutKind maps a "Warning:" style label back to its kind.
func calloutKind(label string) (entity.CalloutKind, bool) {
	label = strings.TrimSuffix(strings.TrimSpace(label), ":")
	for kind, l := range calloutLabels {
		if strings.EqualFold(l, label) {
			return kind, true
		}
	}
	return "", false
}
