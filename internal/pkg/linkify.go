package pkg

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// linkPattern 裸 URL（http/https/www.）或邮箱
var linkPattern = regexp.MustCompile(`(?i)\b(?:https?://|www\.)[^\s<>"']+|[a-z0-9._%+\-]+@[a-z0-9\-]+(?:\.[a-z0-9\-]+)*\.[a-z]{2,}`)

// 这些元素内部的文本不做自动链接
var linkifySkip = map[atom.Atom]bool{
	atom.A:    true,
	atom.Code: true,
	atom.Pre:  true,
}

// linkify 把 HTML 片段文本节点中的 URL 和邮箱包成 a 标签
func linkify(fragment string) string {
	if !linkPattern.MatchString(fragment) {
		return fragment
	}
	ctx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), ctx)
	if err != nil {
		return fragment
	}
	root := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	linkifyChildren(root)

	var buf strings.Builder
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if err = html.Render(&buf, c); err != nil {
			return fragment
		}
	}
	return buf.String()
}

func linkifyChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		switch {
		case c.Type == html.TextNode:
			linkifyText(n, c)
		case c.Type == html.ElementNode && !linkifySkip[c.DataAtom]:
			linkifyChildren(c)
		}
		c = next
	}
}

// linkifyText 按匹配切分文本节点，原节点替换为 文本/a/文本 序列
func linkifyText(parent, text *html.Node) {
	s := text.Data
	locs := linkPattern.FindAllStringIndex(s, -1)
	if locs == nil {
		return
	}
	last := 0
	for _, loc := range locs {
		// 句末标点不算在链接里
		m := strings.TrimRight(s[loc[0]:loc[1]], ".,;:!?)")
		if linkPattern.FindString(m) != m {
			continue
		}
		if loc[0] > last {
			parent.InsertBefore(&html.Node{Type: html.TextNode, Data: s[last:loc[0]]}, text)
		}
		a := &html.Node{
			Type:     html.ElementNode,
			Data:     "a",
			DataAtom: atom.A,
			Attr:     []html.Attribute{{Key: "href", Val: linkHref(m)}},
		}
		a.AppendChild(&html.Node{Type: html.TextNode, Data: m})
		parent.InsertBefore(a, text)
		last = loc[0] + len(m)
	}
	if last == 0 {
		return
	}
	if last < len(s) {
		parent.InsertBefore(&html.Node{Type: html.TextNode, Data: s[last:]}, text)
	}
	parent.RemoveChild(text)
}

func linkHref(m string) string {
	lower := strings.ToLower(m)
	switch {
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		return m
	case strings.HasPrefix(lower, "www."):
		return "http://" + m
	default:
		return "mailto:" + m
	}
}
