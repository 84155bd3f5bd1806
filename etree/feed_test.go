package etree_test

import (
	"html"
	"testing"

	"github.com/fwojciec/modelcat"
	"github.com/fwojciec/modelcat/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const feedXML = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
<title>Models</title>
<item>
<title><![CDATA[Google: Gemini 3 Flash Preview (google/gemini-3-flash-preview)]]></title>
<description><![CDATA[<p>Fast <b>multimodal</b> model.</p>]]></description>
<link>https://openrouter.ai/google/gemini-3-flash-preview</link>
<guid>google/gemini-3-flash-preview-20250301</guid>
<pubDate>Sat, 01 Mar 2025 00:00:00 GMT</pubDate>
</item>
<item>
<title>Llama 4 Scout (meta-llama/llama-4-scout)</title>
<link>https://openrouter.ai/meta-llama/llama-4-scout</link>
</item>
<item>
<title>Mystery Model</title>
<link>https://openrouter.ai/mystery/model-x</link>
</item>
<item>
<title>Guid Only</title>
<guid>acme/model-20250101</guid>
</item>
</channel>
</rss>`

func TestFeedExtractor_ExtractAll(t *testing.T) {
	t.Parallel()

	records, err := etree.NewFeedExtractor().ExtractAll(feedXML)
	require.NoError(t, err)
	require.Len(t, records, 4)

	t.Run("provider title pattern", func(t *testing.T) {
		t.Parallel()

		r := records[0]
		assert.Equal(t, "google/gemini-3-flash-preview", r.ID)
		assert.Equal(t, "Gemini 3 Flash Preview", r.Name)
		assert.Equal(t, "Google", r.Provider)
		assert.Equal(t, "Fast multimodal model.", r.Description)
		assert.Equal(t, "https://openrouter.ai/google/gemini-3-flash-preview", r.Link)
		assert.Equal(t, "Sat, 01 Mar 2025 00:00:00 GMT", r.PubDate)
	})

	t.Run("name-only title pattern", func(t *testing.T) {
		t.Parallel()

		r := records[1]
		assert.Equal(t, "meta-llama/llama-4-scout", r.ID)
		assert.Equal(t, "Llama 4 Scout", r.Name)
		assert.Empty(t, r.Provider)
	})

	t.Run("plain title falls back to the link for the id", func(t *testing.T) {
		t.Parallel()

		r := records[2]
		assert.Equal(t, "Mystery Model", r.Name)
		assert.Equal(t, "mystery/model-x", r.ID)
	})

	t.Run("guid is the last identifier fallback", func(t *testing.T) {
		t.Parallel()

		r := records[3]
		assert.Equal(t, "Guid Only", r.Name)
		assert.Equal(t, "acme/model", r.ID)
	})
}

func TestFeedExtractor_UnwrapsRenderedPage(t *testing.T) {
	t.Parallel()

	page := "<html><body><pre>" + html.EscapeString(feedXML) + "</pre></body></html>"

	records, err := etree.NewFeedExtractor().ExtractAll(page)
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, "google/gemini-3-flash-preview", records[0].ID)
}

func TestFeedExtractor_XMLEmbeddedInPage(t *testing.T) {
	t.Parallel()

	page := "<html><body>" + feedXML + "</body></html>"

	records, err := etree.NewFeedExtractor().ExtractAll(page)
	require.NoError(t, err)
	require.Len(t, records, 4)
}

func TestFeedExtractor_EmptyChannel(t *testing.T) {
	t.Parallel()

	records, err := etree.NewFeedExtractor().ExtractAll(
		`<?xml version="1.0"?><rss version="2.0"><channel></channel></rss>`)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestFeedExtractor_MalformedFeed(t *testing.T) {
	t.Parallel()

	_, err := etree.NewFeedExtractor().ExtractAll("not xml at all <<<")
	assert.Equal(t, modelcat.EINVALID, modelcat.ErrorCode(err))
}

func TestFeedExtractor_DedupAcrossItems(t *testing.T) {
	t.Parallel()

	xml := `<?xml version="1.0"?><rss version="2.0"><channel>
<item><title>A (acme/a)</title></item>
<item><title>A again (ACME/A)</title></item>
</channel></rss>`

	records, err := etree.NewFeedExtractor().ExtractAll(xml)
	require.NoError(t, err)

	kept := modelcat.NewDeduper().Dedupe(records)
	require.Len(t, kept, 1)
	assert.Equal(t, "A", kept[0].Name)
}
