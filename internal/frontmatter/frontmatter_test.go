package frontmatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		fm      string
		body    string
		had     bool
		wantErr bool
	}{
		{name: "no frontmatter", in: "# Title\n", body: "# Title\n"},
		{name: "simple", in: "---\ntitle: Hi\n---\nBody\n", fm: "title: Hi\n", body: "Body\n", had: true},
		{name: "empty", in: "---\n---\nBody", fm: "", body: "Body", had: true},
		{name: "crlf", in: "---\r\ntitle: Hi\r\n---\r\nBody", fm: "title: Hi\r\n", body: "Body", had: true},
		{name: "closing at eof", in: "---\ntitle: Hi\n---", fm: "title: Hi\n", body: "", had: true},
		{name: "unterminated", in: "---\ntitle: Hi\nBody\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fm, body, had, err := Split([]byte(tt.in))
			if tt.wantErr {
				require.ErrorIs(t, err, ErrMissingClosingDelimiter)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.had, had)
			assert.Equal(t, tt.fm, string(fm))
			assert.Equal(t, tt.body, string(body))
		})
	}
}

func TestParse(t *testing.T) {
	p, err := Parse([]byte("title: Getting Started\nlayout: doc\nextra: 1\n"))
	require.NoError(t, err)
	assert.Equal(t, Page{Title: "Getting Started", Layout: "doc"}, p)

	p, err = Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Page{}, p)

	_, err = Parse([]byte("title: [unclosed"))
	assert.Error(t, err)
}
