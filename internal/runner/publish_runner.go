package runner

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-dataset-kit/internal/config"
	"github.com/shouni/go-dataset-kit/pkg/domain"
	"github.com/shouni/go-dataset-kit/pkg/publisher"

	imagedom "github.com/shouni/gemini-image-kit/pkg/domain"
)

// PublishRunner は生成結果の永続化とギャラリー変換を担当するのだ。
type PublishRunner struct {
	pub  *publisher.DatasetPublisher
	opts config.GenerateOptions
}

// NewPublishRunner は PublishRunner の新しいインスタンスを生成して返すのだ。
func NewPublishRunner(pub *publisher.DatasetPublisher, opts config.GenerateOptions) *PublishRunner {
	return &PublishRunner{pub: pub, opts: opts}
}

// Run はレコードと画像を対にして保存処理へ渡すのだ。images は records と
// 同じ長さか nil（プロンプトのみの出力）を許容するのだ。
func (pr *PublishRunner) Run(ctx context.Context, records []domain.PromptRecord, images []*imagedom.ImageResponse) (publisher.PublishResult, error) {
	items := make([]publisher.Item, len(records))
	for i, record := range records {
		items[i] = publisher.Item{Record: record}
		if i < len(images) {
			items[i].Image = images[i]
		}
	}

	outputDir := pr.opts.OutputDir
	if outputDir == "" {
		outputDir = config.DefaultOutputDir
	}

	result, err := pr.pub.Publish(ctx, pr.opts.Object, items, publisher.Options{
		OutputDir: outputDir,
	})
	if err != nil {
		return result, fmt.Errorf("成果物の保存に失敗したのだ: %w", err)
	}

	slog.Info("成果物を保存したのだ",
		"prompts", result.PromptsPath,
		"markdown", result.MarkdownPath,
		"html", result.HTMLPath,
		"images", len(result.ImagePaths))
	return result, nil
}
