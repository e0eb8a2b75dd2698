package runner

import (
	"context"
	"log/slog"

	"github.com/shouni/go-dataset-kit/internal/config"
	"github.com/shouni/go-dataset-kit/pkg/domain"

	imagedom "github.com/shouni/gemini-image-kit/pkg/domain"
	imagegen "github.com/shouni/gemini-image-kit/pkg/generator"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// DatasetImageRunner は、プロンプトレコードを基に並列で画像生成を行う実体。
type DatasetImageRunner struct {
	imageGen       imagegen.ImageGenerator // 画像生成AI（Gemini）へのアダプター
	negativePrompt string                  // 全リクエスト共通で適用する除外指示
}

// NewDatasetImageRunner は、DatasetImageRunnerの新しいインスタンスを生成して返す。
func NewDatasetImageRunner(imageGen imagegen.ImageGenerator, negativePrompt string) *DatasetImageRunner {
	return &DatasetImageRunner{
		imageGen:       imageGen,
		negativePrompt: negativePrompt,
	}
}

// Run は並列処理を用いて、各レコードの画像を生成するメインロジックなのだ。
// 個々の失敗ではバッチ全体を止めず、該当スロットを nil のまま残すのだ。
func (ir *DatasetImageRunner) Run(ctx context.Context, records []domain.PromptRecord) ([]*imagedom.ImageResponse, error) {
	images := make([]*imagedom.ImageResponse, len(records))
	eg, egCtx := errgroup.WithContext(ctx)

	// Burst 2 により、開始直後に2枚までは同時にリクエストを開始できるのだ
	limiter := rate.NewLimiter(rate.Every(config.DefaultRateLimit), 2)
	slog.Info("並列画像生成を開始するのだ", "count", len(records), "interval", config.DefaultRateLimit)

	for i, record := range records {
		eg.Go(func() error {
			// 1. レートリミットに従って、自分の番が来るまで待機するのだ
			if err := limiter.Wait(egCtx); err != nil {
				return err
			}

			slog.Info("画像を生成中...", "index", i+1, "scene", record.Scene)

			resp, err := ir.imageGen.GenerateMangaPanel(egCtx, imagedom.ImageGenerationRequest{
				Prompt:         record.Prompt,
				NegativePrompt: ir.negativePrompt,
				AspectRatio:    "4:3",
			})
			if err != nil {
				// 生成失敗は記録して続行するのだ。1枚の失敗でバッチを無駄にしないのだ
				slog.Error("画像生成に失敗したのだ", "index", i+1, "error", err)
				return nil
			}

			images[i] = resp
			slog.Info("画像生成に成功したのだ", "index", i+1)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	generated := 0
	for _, img := range images {
		if img != nil {
			generated++
		}
	}
	slog.Info("画像生成バッチが完了したのだ", "requested", len(records), "generated", generated)
	return images, nil
}
