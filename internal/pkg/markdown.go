package pkg

import (
	"bytes"
	"html/template"
	"slices"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	// PostTags 文章正文允许保留的标签
	PostTags = []string{
		"a", "abbr", "acronym", "b", "blockquote", "code", "em", "i",
		"li", "ol", "pre", "strong", "ul", "h1", "h2", "h3", "p",
	}
	// CommentTags 评论只保留行内标签
	CommentTags = []string{"a", "abbr", "acronym", "b", "code", "em", "i", "strong"}
)

// 原始 HTML 交给 bluemonday 按白名单剥离，因此这里打开 WithUnsafe
var markdown = goldmark.New(
	goldmark.WithRendererOptions(html.WithUnsafe()),
)

var (
	postSanitizer    = newSanitizer(PostTags)
	commentSanitizer = newSanitizer(CommentTags)
)

// sanitizer 白名单策略，anchors 表示白名单含 a，需要自动链接
type sanitizer struct {
	policy  *bluemonday.Policy
	anchors bool
}

func newSanitizer(tags []string) sanitizer {
	return sanitizer{policy: NewPolicy(tags), anchors: slices.Contains(tags, "a")}
}

// NewPolicy 按标签白名单构建清洗策略，a 只保留 href/title，链接统一 nofollow
func NewPolicy(tags []string) *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(tags...)
	if slices.Contains(tags, "a") {
		p.AllowAttrs("href", "title").OnElements("a")
		p.AllowURLSchemes("http", "https", "mailto")
		p.RequireParseableURLs(true)
		p.AllowRelativeURLs(true)
		p.RequireNoFollowOnLinks(true)
	}
	// AllowAttrs 会隐式放行元素，只给白名单内的元素加 title
	for _, el := range []string{"abbr", "acronym"} {
		if slices.Contains(tags, el) {
			p.AllowAttrs("title").OnElements(el)
		}
	}
	return p
}

// Render markdown -> HTML -> 白名单清洗 -> 剩余文本中的裸 URL/邮箱自动转链接
func Render(src string, tags []string) string {
	return newSanitizer(tags).render(src)
}

func RenderPost(src string) string {
	return postSanitizer.render(src)
}

func RenderComment(src string) string {
	return commentSanitizer.render(src)
}

func (s sanitizer) render(src string) string {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		// 写 bytes.Buffer 不会失败，兜底按纯文本处理
		buf.Reset()
		buf.WriteString(template.HTMLEscapeString(src))
	}
	out := s.policy.Sanitize(buf.String())
	if !s.anchors {
		return out
	}
	// 链接化之后再过一遍策略，补上 nofollow 并校验 href
	return s.policy.Sanitize(linkify(out))
}
