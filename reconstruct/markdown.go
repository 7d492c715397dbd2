package reconstruct

import (
	"fmt"
	"strings"
)

// Markdown renders reconstructed items as a markdown document. Items are
// separated by blank lines; table rows use pipe syntax with a separator
// row after the header.
func Markdown(items []Item) string {
	var parts []string
	for _, item := range items {
		if s := renderItem(item); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n\n")
}

func renderItem(item Item) string {
	switch item.Type {
	case ItemParagraph:
		return renderParagraph(item)
	case ItemList:
		return renderList(item)
	case ItemTable:
		return renderTable(item.Rows)
	case ItemImage:
		if item.Src == "" {
			return ""
		}
		return fmt.Sprintf("![%s](%s)", item.Alt, item.Src)
	case ItemLink:
		if item.Text == "" || item.Href == "" {
			return ""
		}
		return fmt.Sprintf("[%s](%s)", item.Text, item.Href)
	}
	return ""
}

func renderParagraph(item Item) string {
	if item.Code {
		return "```\n" + item.Text + "\n```"
	}
	if item.Heading > 0 {
		return strings.Repeat("#", item.Heading) + " " + item.Text
	}
	if item.Bold {
		return "**" + item.Text + "**"
	}
	return item.Text
}

func renderList(item Item) string {
	prefix := item.Prefix
	if prefix == "" {
		prefix = "-"
	}
	lines := make([]string, 0, len(item.Items))
	for i, entry := range item.Items {
		if prefix == "1." {
			lines = append(lines, fmt.Sprintf("%d. %s", i+1, entry))
			continue
		}
		lines = append(lines, prefix+" "+entry)
	}
	return strings.Join(lines, "\n")
}

func renderTable(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}
	width := 0
	for _, row := range rows {
		width = max(width, len(row))
	}
	if width == 0 {
		return ""
	}

	var b strings.Builder
	writeRow := func(cells []string) {
		b.WriteString("|")
		for i := 0; i < width; i++ {
			cell := ""
			if i < len(cells) {
				cell = strings.ReplaceAll(cells[i], "|", "\\|")
			}
			b.WriteString(" " + cell + " |")
		}
		b.WriteString("\n")
	}

	writeRow(rows[0])
	b.WriteString("|")
	for i := 0; i < width; i++ {
		b.WriteString(" --- |")
	}
	b.WriteString("\n")
	for _, row := range rows[1:] {
		writeRow(row)
	}
	return strings.TrimRight(b.String(), "\n")
}
