package feed

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOPML(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<opml version="2.0">
	<head><title>subs</title></head>
	<body>
		<outline text="Tech" title="Tech">
			<outline text="Wechat Account" type="rss" xmlUrl="https://wechat2rss.example.com/feed/12345.xml"/>
			<outline text="Blog" type="rss" xmlUrl="https://blog.example.com/rss"/>
		</outline>
		<outline text="No url" type="rss"/>
		<outline text="" type="rss" xmlUrl="https://noname.example.com/rss"/>
		<outline text="Not rss" type="link" xmlUrl="https://example.com/page"/>
	</body>
</opml>`

	res, err := ParseOPML(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, res, 2)

	assert.Equal(t, Source{ID: "wx-12345", Name: "Wechat Account", URL: "https://wechat2rss.example.com/feed/12345.xml"}, res[0])
	assert.Equal(t, "Blog", res[1].Name)
	assert.Equal(t, SourceID("https://blog.example.com/rss"), res[1].ID)
}

func TestParseOPML_Invalid(t *testing.T) {
	_, err := ParseOPML(strings.NewReader("<opml><body>"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode opml")
}

func TestSourceID(t *testing.T) {
	assert.Equal(t, "wx-42", SourceID("https://host/feed/42.xml"))
	assert.Equal(t, "feed-acbd18db", SourceID("foo"), "md5(foo) prefix")
	id := SourceID("https://blog.example.com/rss")
	assert.Len(t, id, len("feed-")+8)
	assert.Equal(t, id, SourceID("https://blog.example.com/rss"), "stable")
}

func TestGenerateOPML(t *testing.T) {
	sources := []Source{
		{ID: "a", Name: "Feed A & co", URL: "https://a.example.com/rss"},
		{ID: "wx-7", Name: "Feed B", URL: "https://b.example.com/feed/7.xml"},
	}
	out, err := GenerateOPML("My feeds", sources)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "<?xml"))
	assert.Contains(t, out, "<title>My feeds</title>")
	assert.Contains(t, out, `xmlUrl="https://a.example.com/rss"`)
	assert.Contains(t, out, "Feed A &amp; co")

	back, err := ParseOPML(strings.NewReader(out))
	require.NoError(t, err)
	require.Len(t, back, 2)
	assert.Equal(t, "Feed A & co", back[0].Name)
	assert.Equal(t, "wx-7", back[1].ID)
}
