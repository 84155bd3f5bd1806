package main

import "github.com/fwojciec/modelcat"

// blockSeparator delimits pre-split card dumps saved by the capture
// helper. Full-page HTML falls back to pattern splitting.
const blockSeparator = "<!-- ===== MODEL BLOCK SEPARATOR ===== -->"

// taskVocabulary is the category vocabulary for ModelScope listing cards,
// most specific phrase first so compound categories win over their parts.
var taskVocabulary = modelcat.Vocabulary{
	"文字生成图片", "文本生成图片", "文字生成视频", "文本生成视频",
	"视觉多模态理解", "统一多模态", "文本到图像", "图像到文本",
	"文字生成", "文本生成", "图像描述", "语音合成",
	"图像分类", "目标检测", "视频生成", "音频生成", "多模态理解",
}

// DefaultSources returns the built-in source list, used when no config
// file is given.
func DefaultSources() []modelcat.Source {
	return []modelcat.Source{
		{
			Name:         "modelscope",
			Kind:         modelcat.KindCards,
			URL:          "https://modelscope.cn/models?filter=inference_type&sort=downloads&tabKey=task",
			Pages:        5,
			Browser:      true,
			WaitSelector: `a[data-autolog*="c3=modelCard"]`,
			BaseURL:      "https://modelscope.cn",
			PathPrefix:   "/models/",
			Separator:    blockSeparator,
			Vocabulary:   taskVocabulary,
			ModelsPage:   "https://modelscope.cn/models",
			APIKeyPage:   "https://modelscope.cn/my/myaccesstoken",
		},
		{
			Name:       "openrouter",
			Kind:       modelcat.KindFeed,
			URL:        "https://openrouter.ai/api/v1/models?use_rss=true",
			Browser:    true,
			ModelsPage: "https://openrouter.ai/models",
			APIKeyPage: "https://openrouter.ai/settings/keys",
		},
		{
			Name:         "cerebras",
			Kind:         modelcat.KindTable,
			URL:          "https://inference-docs.cerebras.ai/models/overview",
			Browser:      true,
			WaitSelector: "table tbody tr",
			HeaderMarker: "Hugging Face Link",
			ModelsPage:   "https://inference-docs.cerebras.ai/models/overview",
			APIKeyPage:   "https://cloud.cerebras.ai/platform",
		},
	}
}
