package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	body := []byte(`
		<!DOCTYPE html>
		<html>
		<head><title>Test Page</title></head>
		<body>
			<a href="/">Home</a>
			<a href="/about">About</a>
			<a href="https://example.com/contact">Contact</a>
			<a href="mailto:foo@bar.com">Email</a>
			<a href="#top">Top</a>
			<a>No href</a>
			<a href="">Empty</a>
		</body>
		</html>
	`)

	hrefs, err := Extract(body)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"/",
		"/about",
		"https://example.com/contact",
		"mailto:foo@bar.com",
		"#top",
		"",
	}, hrefs)
}

func TestExtractNestedAnchors(t *testing.T) {
	body := []byte(`
		<html><body>
			<nav><ul>
				<li><a href="/one">One</a></li>
				<li><a href="/two"><img src="/two.png"></a></li>
			</ul></nav>
			<div><p>Text with an <a href="/three">inline</a> link.</p></div>
		</body></html>
	`)

	hrefs, err := Extract(body)
	require.NoError(t, err)
	assert.Equal(t, []string{"/one", "/two", "/three"}, hrefs)
}

func TestExtractBrokenMarkup(t *testing.T) {
	// net/html repairs what it can; the anchor should still come out
	body := []byte(`<html><body><div><a href="/still-here">oops`)

	hrefs, err := Extract(body)
	require.NoError(t, err)
	assert.Equal(t, []string{"/still-here"}, hrefs)
}

func TestExtractNoAnchors(t *testing.T) {
	hrefs, err := Extract([]byte(`<html><body><p>nothing to see</p></body></html>`))
	require.NoError(t, err)
	assert.Empty(t, hrefs)
}

func TestExtractTrimsWhitespace(t *testing.T) {
	hrefs, err := Extract([]byte(`<a href="  /padded  ">x</a>`))
	require.NoError(t, err)
	assert.Equal(t, []string{"/padded"}, hrefs)
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Test Page", Title([]byte(`<html><head><title> Test Page </title></head></html>`)))
	assert.Equal(t, "", Title([]byte(`<html><head></head><body></body></html>`)))
}
