package report

import (
	"fmt"
	"io"

	"github.com/pbaille/catkw/internal/taxonomy"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const stylesheet = `
body { font-family: sans-serif; }
ul { list-style: none; padding-left: 1.2em; }
.keyword > .label { font-weight: bold; color: #b00; }
.blacklisted > .label { text-decoration: line-through; }
.count { color: #777; margin-left: .4em; }
`

// WriteHTML renders the category tree as a static nested list.
// Blacklisted leaves are checked and selected keywords highlighted.
func WriteHTML(w io.Writer, t *taxonomy.Tree, bl taxonomy.Blacklist, r *taxonomy.Report) error {
	keywords := taxonomy.NewPathSet(r.Keywords...)

	body := element(atom.Body)
	body.AppendChild(textElement(atom.H1, "Category blacklist"))
	body.AppendChild(textElement(atom.P, fmt.Sprintf("%d keywords, %d blacklisted leaves", len(r.Keywords), bl.Len())))

	root := element(atom.Ul, "class", "tree-root")
	for _, id := range t.TopLevel() {
		root.AppendChild(renderNode(t, bl, keywords, id))
	}
	body.AppendChild(root)

	head := element(atom.Head)
	head.AppendChild(element(atom.Meta, "charset", "utf-8"))
	head.AppendChild(textElement(atom.Title, "Category blacklist"))
	head.AppendChild(textElement(atom.Style, stylesheet))

	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	page := element(atom.Html, "lang", "it")
	page.AppendChild(head)
	page.AppendChild(body)
	doc.AppendChild(page)

	if err := html.Render(w, doc); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}

func renderNode(t *taxonomy.Tree, bl taxonomy.Blacklist, keywords taxonomy.PathSet, id taxonomy.NodeID) *html.Node {
	n := t.Node(id)

	class := fmt.Sprintf("node depth-%d", n.Depth)
	if keywords.Has(n.Path) {
		class += " keyword"
	}
	leaf := t.IsLeaf(id)
	if leaf && bl.Has(n.Path) {
		class += " blacklisted"
	}

	li := element(atom.Li, "class", class, "title", n.Path)
	box := element(atom.Input, "type", "checkbox", "disabled", "")
	if leaf && bl.Has(n.Path) {
		box.Attr = append(box.Attr, html.Attribute{Key: "checked"})
	}
	li.AppendChild(box)
	li.AppendChild(textElement(atom.Span, n.Name, "class", "label"))

	if !leaf {
		li.AppendChild(textElement(atom.Span, fmt.Sprintf("(%d)", len(t.Leaves(id))), "class", "count"))
		ul := element(atom.Ul, "class", "children")
		for _, c := range n.Children {
			ul.AppendChild(renderNode(t, bl, keywords, c))
		}
		li.AppendChild(ul)
	}
	return li
}

// element builds an element node from alternating attribute keys and values
func element(a atom.Atom, attrs ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

func textElement(a atom.Atom, text string, attrs ...string) *html.Node {
	n := element(a, attrs...)
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return n
}
