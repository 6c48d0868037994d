package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWord(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		text        string
		isRegex     bool
		displayName string
	}{
		{name: "plain word", raw: "  golang ", text: "golang"},
		{name: "word with alias", raw: "golang => Go Language", text: "golang", displayName: "Go Language"},
		{name: "alias without spaces", raw: "rust=>Rust", text: "rust", displayName: "Rust"},
		{name: "empty alias", raw: "rust =>   ", text: "rust"},
		{name: "regex", raw: "/gpt-\\d+/", text: "gpt-\\d+", isRegex: true},
		{name: "regex with flags", raw: "/open ?ai/gi", text: "open ?ai", isRegex: true},
		{name: "regex with alias", raw: "/^apple/ => Apple", text: "^apple", isRegex: true, displayName: "Apple"},
		{name: "invalid regex degrades", raw: "/[/", text: "/[/"},
		{name: "invalid regex with alias", raw: "/(abc/ => Broken", text: "/(abc/", displayName: "Broken"},
		{name: "uppercase flags are not flags", raw: "/abc/I", text: "/abc/I"},
		{name: "single slash is literal", raw: "/", text: "/"},
		{name: "empty regex body is literal", raw: "//", text: "//"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := ParseWord(tt.raw)
			assert.Equal(t, tt.text, tok.Text)
			assert.Equal(t, tt.isRegex, tok.IsRegex)
			assert.Equal(t, tt.displayName, tok.DisplayName)
			if tt.isRegex {
				require.NotNil(t, tok.Pattern)
			} else {
				assert.Nil(t, tok.Pattern)
			}
		})
	}
}

func TestParseWord_RegexIsCaseInsensitive(t *testing.T) {
	tok := ParseWord("/open ?ai/")
	require.True(t, tok.IsRegex)
	assert.True(t, tok.Pattern.MatchString("OpenAI releases"))
	assert.True(t, tok.Pattern.MatchString("news about OPEN AI"))
	assert.False(t, tok.Pattern.MatchString("opening"))
}

func TestWordToken_Label(t *testing.T) {
	assert.Equal(t, "Alias", WordToken{Text: "word", DisplayName: "Alias"}.Label())
	assert.Equal(t, "word", WordToken{Text: "word"}.Label())
}
