package fetch

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// articleContainers are the markup containers news sites commonly wrap
// article bodies in, tried before falling back to the whole document.
const articleContainers = "article, div.article-body, div.content-body, div.story-content"

// ExtractArticleText pulls readable paragraph text out of raw HTML. Returns
// "" when the input is not parseable HTML or holds no substantial paragraphs.
func ExtractArticleText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	paragraphs := collectParagraphs(doc.Find(articleContainers))
	if len(paragraphs) == 0 {
		paragraphs = collectParagraphs(doc.Find("body"))
	}
	return strings.Join(paragraphs, "\n\n")
}

func collectParagraphs(sel *goquery.Selection) []string {
	paragraphs := []string{}
	sel.Find("p").Each(func(_ int, p *goquery.Selection) {
		text := strings.TrimSpace(p.Text())
		if text != "" && len(text) > 20 {
			paragraphs = append(paragraphs, text)
		}
	})
	return paragraphs
}
