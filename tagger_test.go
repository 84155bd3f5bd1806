package modelcat_test

import (
	"testing"

	"github.com/fwojciec/modelcat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVocabulary_Validate(t *testing.T) {
	t.Parallel()

	t.Run("accepts longest-first ordering", func(t *testing.T) {
		t.Parallel()

		v := modelcat.Vocabulary{"文本生成图片", "文本生成", "图像描述"}
		assert.NoError(t, v.Validate())
	})

	t.Run("rejects a superstring after its substring", func(t *testing.T) {
		t.Parallel()

		v := modelcat.Vocabulary{"文本生成", "文本生成图片"}
		err := v.Validate()
		assert.Equal(t, modelcat.EINVALID, modelcat.ErrorCode(err))
	})

	t.Run("rejects empty phrases", func(t *testing.T) {
		t.Parallel()

		v := modelcat.Vocabulary{"文本生成", "  "}
		err := v.Validate()
		assert.Equal(t, modelcat.EINVALID, modelcat.ErrorCode(err))
	})

	t.Run("rejects duplicate phrases", func(t *testing.T) {
		t.Parallel()

		v := modelcat.Vocabulary{"文本生成", "文本生成"}
		err := v.Validate()
		assert.Equal(t, modelcat.EINVALID, modelcat.ErrorCode(err))
	})
}

func TestNewTagger_MalformedVocabulary(t *testing.T) {
	t.Parallel()

	_, err := modelcat.NewTagger(modelcat.Vocabulary{"文本生成", "文本生成图片"})
	assert.Equal(t, modelcat.EINVALID, modelcat.ErrorCode(err))
}

func TestTagger_Tag(t *testing.T) {
	t.Parallel()

	vocab := modelcat.Vocabulary{"文本生成图片", "视觉多模态理解", "文本生成", "图像描述"}
	tagger, err := modelcat.NewTagger(vocab)
	require.NoError(t, err)

	t.Run("longest phrase wins over its own substring", func(t *testing.T) {
		t.Parallel()

		// "文本生成" appears both inside and right after "文本生成图片"
		// with no separator; only the long phrase counts.
		assert.Equal(t, "文本生成图片", tagger.Tag("文本生成图片文本生成"))
	})

	t.Run("single label even for multiple distinct phrases", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "文本生成图片", tagger.Tag("文本生成图片 图像描述"))
	})

	t.Run("priority order decides among unrelated phrases", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "视觉多模态理解", tagger.Tag("图像描述 视觉多模态理解"))
	})

	t.Run("returns empty when nothing matches", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, tagger.Tag("some latin-only model card text"))
	})

	t.Run("CJK neighbors are valid boundaries", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "图像描述", tagger.Tag("模型图像描述能力"))
	})

	t.Run("punctuation is a valid boundary", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "文本生成", tagger.Tag("支持：文本生成，速度快"))
	})
}

func TestTagger_Tag_LatinBoundaries(t *testing.T) {
	t.Parallel()

	tagger, err := modelcat.NewTagger(modelcat.Vocabulary{"AB"})
	require.NoError(t, err)

	t.Run("rejects phrase embedded in a latin word", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, tagger.Tag("XABY"))
	})

	t.Run("accepts phrase separated by whitespace", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "AB", tagger.Tag("X AB Y"))
	})
}

func TestTagger_Spans(t *testing.T) {
	t.Parallel()

	vocab := modelcat.Vocabulary{"文本生成图片", "文本生成"}
	tagger, err := modelcat.NewTagger(vocab)
	require.NoError(t, err)

	t.Run("rejects the adjacent fragment of a longer phrase", func(t *testing.T) {
		t.Parallel()

		spans := tagger.Spans("文本生成图片文本生成")
		require.Len(t, spans, 1)
		assert.Equal(t, modelcat.Span{Start: 0, End: 6, Phrase: "文本生成图片"}, spans[0])
	})

	t.Run("separator in the gap rescues the shorter phrase", func(t *testing.T) {
		t.Parallel()

		spans := tagger.Spans("文本生成图片 文本生成")
		require.Len(t, spans, 2)
		assert.Equal(t, modelcat.Span{Start: 0, End: 6, Phrase: "文本生成图片"}, spans[0])
		assert.Equal(t, modelcat.Span{Start: 7, End: 11, Phrase: "文本生成"}, spans[1])
	})

	t.Run("punctuation in the gap rescues the shorter phrase", func(t *testing.T) {
		t.Parallel()

		spans := tagger.Spans("文本生成图片、文本生成")
		require.Len(t, spans, 2)
	})

	t.Run("occurrence inside an accepted span is skipped", func(t *testing.T) {
		t.Parallel()

		// The only "文本生成" occurrences lie inside the long match.
		spans := tagger.Spans("文本生成图片")
		require.Len(t, spans, 1)
		assert.Equal(t, "文本生成图片", spans[0].Phrase)
	})

	t.Run("distant occurrences of both phrases are kept", func(t *testing.T) {
		t.Parallel()

		spans := tagger.Spans("文本生成图片，支持文本生成任务")
		require.Len(t, spans, 2)
		assert.Equal(t, "文本生成图片", spans[0].Phrase)
		assert.Equal(t, "文本生成", spans[1].Phrase)
	})
}
