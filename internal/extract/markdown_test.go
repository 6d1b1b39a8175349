package extract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codepathfinder/depgraph/internal/graphmodel"
	"github.com/codepathfinder/depgraph/internal/lang"
)

func parseMarkdown(t *testing.T, path, src string) Tree {
	t.Helper()
	adapter := lang.NewMarkdownAdapter()
	result := adapter.Parse(context.Background(), path, []byte(src))
	return Tree{Path: path, Project: "proj", Language: lang.Markdown, Content: []byte(src), Root: result.Tree}
}

func TestMarkdownLinkExtractor_HeadingsAndLinks(t *testing.T) {
	src := "# Intro\n\nSee [docs](https://example.com/docs) and ![diagram](./diagram.png).\n\n## Details\n"
	tree := parseMarkdown(t, "README.md", src)
	result, err := NewMarkdownLinkExtractor().Extract(tree)
	require.NoError(t, err)

	var headingCount, linkCount, imageCount int
	for _, n := range result.Nodes {
		if n.Kind == graphmodel.NodeHeadingSymbol {
			headingCount++
		}
	}
	for _, e := range result.Edges {
		switch e.Kind {
		case "md-link":
			linkCount++
		case "md-image":
			imageCount++
		}
	}
	assert.Equal(t, 2, headingCount)
	assert.Equal(t, 1, linkCount)
	assert.Equal(t, 1, imageCount)
}

func TestMarkdownLinkExtractor_Hashtag(t *testing.T) {
	src := "Tagged with #urgent and #needs-review today.\n"
	tree := parseMarkdown(t, "notes.md", src)
	result, err := NewMarkdownLinkExtractor().Extract(tree)
	require.NoError(t, err)

	var hashtags int
	for _, e := range result.Edges {
		if e.Kind == "md-hashtag" {
			hashtags++
		}
	}
	assert.Equal(t, 2, hashtags)
}

func TestMarkdownLinkExtractor_Supports(t *testing.T) {
	e := NewMarkdownLinkExtractor()
	assert.True(t, e.Supports(lang.Markdown))
	assert.False(t, e.Supports(lang.Go))
}
