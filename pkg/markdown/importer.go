package markdown

import (
	"bytes"
	"strings"

	"notecraft-be/internal/entity"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// Document is the result of an import. Blocks carry no ids yet; the store
// assigns them when the page is created.
type Document struct {
	Title  string
	Blocks []entity.Block
}

// Importer converts Markdown into blocks using goldmark's AST.
type Importer struct {
	md goldmark.Markdown
}

func NewImporter() *Importer {
	return &Importer{
		md: goldmark.New(goldmark.WithExtensions(extension.TaskList)),
	}
}

// Import maps every top level Markdown construct onto one or more blocks.
// When title is empty the first level one heading becomes the title.
func (im *Importer) Import(title, source string) *Document {
	src := []byte(source)
	doc := im.md.Parser().Parse(text.NewReader(src))

	out := &Document{Title: strings.TrimSpace(title)}
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if h, ok := n.(*ast.Heading); ok && h.Level == 1 && out.Title == "" {
			out.Title = inlineText(h, src)
			continue
		}
		out.Blocks = append(out.Blocks, im.blocks(n, src)...)
	}
	return out
}

func (im *Importer) blocks(n ast.Node, src []byte) []entity.Block {
	switch node := n.(type) {
	case *ast.Heading:
		t := entity.BlockTypeHeading3
		switch node.Level {
		case 1:
			t = entity.BlockTypeHeading1
		case 2:
			t = entity.BlockTypeHeading2
		}
		return []entity.Block{{Type: t, Content: inlineText(node, src)}}

	case *ast.Paragraph:
		if img := soleImage(node, src); img != nil {
			return []entity.Block{{
				Type:  entity.BlockTypeImage,
				Props: entity.ImageProps{URL: string(img.Destination), Caption: inlineText(img, src)},
			}}
		}
		return []entity.Block{{Type: entity.BlockTypeText, Content: inlineText(node, src)}}

	case *ast.List:
		var out []entity.Block
		listItems(node, src, &out)
		return out

	case *ast.Blockquote:
		return []entity.Block{quote(node, src)}

	case *ast.FencedCodeBlock:
		lang := string(node.Language(src))
		return []entity.Block{{
			Type:    entity.BlockTypeCode,
			Content: rawLines(node, src),
			Props:   entity.CodeProps{Language: lang},
		}}

	case *ast.CodeBlock:
		return []entity.Block{{Type: entity.BlockTypeCode, Content: rawLines(node, src), Props: entity.CodeProps{}}}

	case *ast.ThematicBreak:
		return []entity.Block{{Type: entity.BlockTypeDivider}}

	case *ast.HTMLBlock:
		return []entity.Block{{Type: entity.BlockTypeText, Content: rawLines(node, src)}}
	}
	return nil
}

// listItems flattens a list, nested items follow their parent item.
func listItems(list *ast.List, src []byte, out *[]entity.Block) {
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		block := entity.Block{Type: entity.BlockTypeBulletList}
		if list.IsOrdered() {
			block.Type = entity.BlockTypeNumberedList
		}

		var parts []string
		var nested []*ast.List
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			switch child := c.(type) {
			case *ast.List:
				nested = append(nested, child)
			case *ast.TextBlock, *ast.Paragraph:
				if box, ok := child.FirstChild().(*extast.TaskCheckBox); ok {
					block.Type = entity.BlockTypeTodo
					block.Props = entity.TodoProps{Checked: box.IsChecked}
				}
				parts = append(parts, inlineText(child, src))
			default:
				parts = append(parts, rawLines(child, src))
			}
		}
		block.Content = strings.TrimSpace(strings.Join(parts, "\n"))
		*out = append(*out, block)

		for _, l := range nested {
			listItems(l, src, out)
		}
	}
}

// quote turns "> **Warning:** text" into a callout and anything else into
// a quote block.
func quote(bq *ast.Blockquote, src []byte) entity.Block {
	var paragraphs []string
	block := entity.Block{Type: entity.BlockTypeQuote}

	for c := bq.FirstChild(); c != nil; c = c.NextSibling() {
		para, ok := c.(*ast.Paragraph)
		if !ok {
			paragraphs = append(paragraphs, rawLines(c, src))
			continue
		}
		if c == bq.FirstChild() {
			if em, ok := para.FirstChild().(*ast.Emphasis); ok && em.Level == 2 {
				if kind, ok := calloutKind(inlineText(em, src)); ok {
					block.Type = entity.BlockTypeCallout
					block.Props = entity.CalloutProps{Kind: kind}
					var buf bytes.Buffer
					for s := em.NextSibling(); s != nil; s = s.NextSibling() {
						writeInlineNode(&buf, s, src)
					}
					paragraphs = append(paragraphs, strings.TrimSpace(buf.String()))
					continue
				}
			}
		}
		paragraphs = append(paragraphs, inlineText(para, src))
	}

	block.Content = strings.Join(paragraphs, "\n")
	return block
}

func soleImage(para *ast.Paragraph, src []byte) *ast.Image {
	var img *ast.Image
	for c := para.FirstChild(); c != nil; c = c.NextSibling() {
		switch node := c.(type) {
		case *ast.Image:
			if img != nil {
				return nil
			}
			img = node
		case *ast.Text:
			if strings.TrimSpace(string(node.Segment.Value(src))) != "" {
				return nil
			}
		default:
			return nil
		}
	}
	return img
}

func rawLines(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		buf.Write(line.Value(src))
	}
	return strings.TrimRight(buf.String(), "\n")
}

func inlineText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		writeInlineNode(&buf, c, src)
	}
	return strings.TrimSpace(buf.String())
}

func writeInlineNode(buf *bytes.Buffer, n ast.Node, src []byte) {
	switch node := n.(type) {
	case *ast.Text:
		buf.Write(node.Segment.Value(src))
		if node.HardLineBreak() || node.SoftLineBreak() {
			buf.WriteByte('\n')
		}
	case *ast.String:
		buf.Write(node.Value)
	case *ast.AutoLink:
		buf.Write(node.URL(src))
	case *extast.TaskCheckBox:
	default:
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			writeInlineNode(buf, c, src)
		}
	}
}
