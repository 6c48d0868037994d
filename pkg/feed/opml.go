package feed

import (
	"crypto/md5" //nolint:gosec // used for short stable ids, not security
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"time"
)

var wechatFeedRe = regexp.MustCompile(`/feed/(\d+)\.xml`)

type opmlOutline struct {
	Text     string        `xml:"text,attr"`
	Title    string        `xml:"title,attr,omitempty"`
	Type     string        `xml:"type,attr,omitempty"`
	XMLURL   string        `xml:"xmlUrl,attr,omitempty"`
	HTMLURL  string        `xml:"htmlUrl,attr,omitempty"`
	Outlines []opmlOutline `xml:"outline"`
}

type opmlDoc struct {
	XMLName xml.Name `xml:"opml"`
	Version string   `xml:"version,attr"`
	Head    struct {
		Title       string `xml:"title"`
		DateCreated string `xml:"dateCreated,omitempty"`
	} `xml:"head"`
	Body struct {
		Outlines []opmlOutline `xml:"outline"`
	} `xml:"body"`
}

// ParseOPML reads an OPML subscription list and returns every rss outline having
// both a feed URL and a text, at any nesting level
func ParseOPML(r io.Reader) ([]Source, error) {
	var doc opmlDoc
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode opml: %w", err)
	}

	var res []Source
	var walk func([]opmlOutline)
	walk = func(outlines []opmlOutline) {
		for _, o := range outlines {
			if o.Type == "rss" && o.XMLURL != "" && o.Text != "" {
				res = append(res, Source{ID: SourceID(o.XMLURL), Name: o.Text, URL: o.XMLURL})
			}
			walk(o.Outlines)
		}
	}
	walk(doc.Body.Outlines)
	return res, nil
}

// SourceID derives a stable feed id from its URL. Wechat2RSS style urls (/feed/<n>.xml)
// give "wx-<n>", anything else "feed-" and the first 8 hex chars of the url's md5.
func SourceID(url string) string {
	if m := wechatFeedRe.FindStringSubmatch(url); m != nil {
		return "wx-" + m[1]
	}
	sum := md5.Sum([]byte(url)) //nolint:gosec // not used for security
	return "feed-" + hex.EncodeToString(sum[:])[:8]
}

// GenerateOPML creates an OPML document listing the sources
func GenerateOPML(title string, sources []Source) (string, error) {
	doc := opmlDoc{Version: "2.0"}
	doc.Head.Title = title
	doc.Head.DateCreated = time.Now().Format(time.RFC1123Z)
	for _, src := range sources {
		doc.Body.Outlines = append(doc.Body.Outlines, opmlOutline{
			Text:   src.Name,
			Title:  src.Name,
			Type:   "rss",
			XMLURL: src.URL,
		})
	}

	output, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal OPML: %w", err)
	}
	return xml.Header + string(output), nil
}
