package content

import (
	"html"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

var (
	structuralTag = regexp.MustCompile(`(?i)<\s*(p|h[1-6]|ul|ol|li|img|figure|figcaption|video|source|iframe|blockquote|pre|table|thead|tbody|tr|td|th)\b`)

	headingLine   = regexp.MustCompile(`^(#+)\s+(.+)$`)
	imageLine     = regexp.MustCompile(`^!\[([^\]]*)\]\(([^)\s]+)\)$`)
	bareURLLine   = regexp.MustCompile(`^https?://\S+$`)
	videoFileExt  = regexp.MustCompile(`(?i)\.(mp4|webm|ogg)(?:[?#]\S*)?$`)
	youTubeID     = regexp.MustCompile(`(?:v=|\.be/)([A-Za-z0-9_-]{6,})`)
	unorderedItem = regexp.MustCompile(`^\s*[-*+]\s+(.*)$`)
	orderedItem   = regexp.MustCompile(`^\s*\d+[.)]\s+(.*)$`)
)

var youTubeHosts = map[string]bool{
	"youtube.com":     true,
	"www.youtube.com": true,
	"m.youtube.com":   true,
	"youtu.be":        true,
}

// Normalize converts a raw post body into HTML. It never fails: lines it does
// not recognize become paragraph text.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}
	if structuralTag.MatchString(raw) {
		return raw
	}

	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "\r", "\n")

	var w blockWriter
	for _, line := range strings.Split(raw, "\n") {
		w.line(strings.TrimSpace(line))
	}
	w.finish()
	return w.out.String()
}

type listKind int

const (
	noList listKind = iota
	unorderedList
	orderedList
)

// blockWriter holds the single-pass state: the open list, if any, and the
// paragraph lines not yet emitted.
type blockWriter struct {
	out       strings.Builder
	open      listKind
	paragraph []string
}

func (w *blockWriter) line(line string) {
	if line == "" {
		w.breakBlock()
		return
	}

	if m := headingLine.FindStringSubmatch(line); m != nil {
		w.breakBlock()
		level := min(len(m[1]), 6)
		tag := "h" + strconv.Itoa(level)
		w.out.WriteString("<" + tag + ">" + linkify(strings.TrimSpace(m[2])) + "</" + tag + ">")
		return
	}

	if m := imageLine.FindStringSubmatch(line); m != nil {
		w.breakBlock()
		w.out.WriteString(`<img src="` + attr(m[2]) + `" alt="` + attr(m[1]) + `" loading="lazy">`)
		return
	}

	if video, ok := videoEmbed(line); ok {
		w.breakBlock()
		w.out.WriteString(video)
		return
	}

	if m := unorderedItem.FindStringSubmatch(line); m != nil {
		w.item(unorderedList, m[1])
		return
	}
	if m := orderedItem.FindStringSubmatch(line); m != nil {
		w.item(orderedList, m[1])
		return
	}

	w.paragraph = append(w.paragraph, linkify(line))
}

func (w *blockWriter) item(kind listKind, text string) {
	w.flushParagraph()
	if w.open != kind {
		w.closeList()
		if kind == unorderedList {
			w.out.WriteString("<ul>")
		} else {
			w.out.WriteString("<ol>")
		}
		w.open = kind
	}
	w.out.WriteString("<li>" + linkify(strings.TrimSpace(text)) + "</li>")
}

func (w *blockWriter) breakBlock() {
	w.flushParagraph()
	w.closeList()
}

func (w *blockWriter) flushParagraph() {
	if len(w.paragraph) == 0 {
		return
	}
	joined := strings.Join(w.paragraph, "<br>")
	w.paragraph = w.paragraph[:0]
	if joined != "" {
		w.out.WriteString("<p>" + joined + "</p>")
	}
}

func (w *blockWriter) closeList() {
	switch w.open {
	case unorderedList:
		w.out.WriteString("</ul>")
	case orderedList:
		w.out.WriteString("</ol>")
	}
	w.open = noList
}

func (w *blockWriter) finish() {
	w.breakBlock()
}

// videoEmbed renders a line consisting solely of a video URL. ok is false when
// the line is not a recognized video resource.
func videoEmbed(line string) (string, bool) {
	if !bareURLLine.MatchString(line) {
		return "", false
	}

	if m := videoFileExt.FindStringSubmatch(line); m != nil {
		mime := "video/" + strings.ToLower(m[1])
		return `<video controls preload="metadata"><source src="` + attr(line) + `" type="` + mime + `"></video>`, true
	}

	u, err := url.Parse(line)
	if err != nil || !youTubeHosts[strings.ToLower(u.Hostname())] {
		return "", false
	}
	if m := youTubeID.FindStringSubmatch(line); m != nil {
		src := "https://www.youtube.com/embed/" + m[1]
		return `<div class="video-embed"><iframe src="` + attr(src) + `" title="YouTube video" ` +
			`allow="accelerometer; clipboard-write; encrypted-media; gyroscope; picture-in-picture" ` +
			`allowfullscreen loading="lazy"></iframe></div>`, true
	}
	return "<p>" + anchor(line, html.EscapeString(line)) + "</p>", true
}

func attr(s string) string {
	return html.EscapeString(s)
}
