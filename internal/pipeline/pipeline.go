package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-dataset-kit/internal/builder"
	"github.com/shouni/go-dataset-kit/internal/config"
	"github.com/shouni/go-dataset-kit/pkg/dataset"
	"github.com/shouni/go-dataset-kit/pkg/domain"

	imagedom "github.com/shouni/gemini-image-kit/pkg/domain"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/gcsfactory"
)

// Execute はプロンプト生成から画像生成、保存までの全工程を実行するのだ。
// PromptsOnly が指定されている場合は画像生成をスキップするのだ。
func Execute(ctx context.Context, cfg *config.Config) error {
	appCtx, err := setupAppContext(ctx, cfg)
	if err != nil {
		return err
	}

	// --- Phase 1: Prompt Phase (プロンプト生成) ---
	records, err := runPromptStep(ctx, appCtx)
	if err != nil {
		return err
	}

	// --- Phase 2: Image Phase (イメージ作成) ---
	var images []*imagedom.ImageResponse
	if !cfg.Options.PromptsOnly {
		images, err = runImageStep(ctx, appCtx, records)
		if err != nil {
			return err
		}
	}

	// --- Phase 3: Publish Phase (保存/変換) ---
	if err := runPublishStep(ctx, appCtx, records, images); err != nil {
		return err
	}

	slog.Info("データセット生成パイプラインが完了したのだ！")
	return nil
}

// ExecutePrepare は既存画像の整形・水増し・ZIPパッケージングを実行するのだ。
// 外部サービスには依存しないのだ。
func ExecutePrepare(ctx context.Context, cfg *config.Config) error {
	opts := cfg.Options
	if opts.InputDir == "" {
		return fmt.Errorf("入力ディレクトリ（--input-dir）を指定してほしいのだ")
	}
	if opts.OutputFile == "" {
		return fmt.Errorf("出力ファイル（--output-file）を指定してほしいのだ")
	}

	return dataset.Prepare(ctx, opts.InputDir, opts.OutputFile, dataset.PrepareOptions{
		Width:     opts.Width,
		Height:    opts.Height,
		Augment:   opts.Augment,
		NumImages: opts.NumImages,
		Seed:      opts.Seed,
	})
}

// setupAppContext は、提供された設定と共有コンポーネントを使用して、アプリケーションコンテキストを初期化して返すのだ。
func setupAppContext(ctx context.Context, cfg *config.Config) (*builder.AppContext, error) {
	httpClient := httpkit.New(config.DefaultHTTPTimeout)

	// LLMも画像生成も使わない実行ではAIクライアントを作らないのだ。
	// その場合カスケードは定義済みシーンと合成フォールバックだけで動くのだ。
	var aiClient gemini.GenerativeModel
	if cfg.Options.UseLLM || !cfg.Options.PromptsOnly {
		var err error
		aiClient, err = builder.InitializeAIClient(ctx, cfg.GeminiAPIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create ai client: %w", err)
		}
	}

	gcsFactory, err := gcsfactory.NewGCSClientFactory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client factory: %w", err)
	}

	reader, err := gcsFactory.NewInputReader()
	if err != nil {
		return nil, err
	}
	writer, err := gcsFactory.NewOutputWriter()
	if err != nil {
		return nil, err
	}

	appCtx := builder.NewAppContext(cfg, httpClient, aiClient, reader, writer)
	return &appCtx, nil
}

// runPromptStep は PromptRunner を使ってプロンプトレコードを生成するのだ
func runPromptStep(ctx context.Context, appCtx *builder.AppContext) ([]domain.PromptRecord, error) {
	slog.Info("Phase 1: プロンプト生成を開始するのだ...", "object", appCtx.Options.Object)
	promptRunner, err := builder.BuildPromptRunner(appCtx)
	if err != nil {
		return nil, fmt.Errorf("PromptRunnerの構築に失敗したのだ: %w", err)
	}

	records, err := promptRunner.Run(ctx)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("プロンプトが1件も生成されなかったのだ")
	}
	return records, nil
}

// runImageStep は DatasetImageRunner を使って画像を並列生成するのだ
func runImageStep(ctx context.Context, appCtx *builder.AppContext, records []domain.PromptRecord) ([]*imagedom.ImageResponse, error) {
	slog.Info("Phase 2: 画像生成を開始するのだ...", "records", len(records))
	imageRunner, err := builder.BuildImageRunner(appCtx)
	if err != nil {
		return nil, fmt.Errorf("ImageRunnerの構築に失敗したのだ: %w", err)
	}

	images, err := imageRunner.Run(ctx, records)
	if err != nil {
		return nil, fmt.Errorf("画像生成に失敗したのだ: %w", err)
	}
	return images, nil
}

// runPublishStep は PublishRunner を使って最終成果物を保存するのだ
func runPublishStep(ctx context.Context, appCtx *builder.AppContext, records []domain.PromptRecord, images []*imagedom.ImageResponse) error {
	slog.Info("Phase 3: 保存処理を開始するのだ...")
	publishRunner, err := builder.BuildPublisherRunner(appCtx)
	if err != nil {
		return fmt.Errorf("PublishRunnerの構築に失敗したのだ: %w", err)
	}

	if _, err := publishRunner.Run(ctx, records, images); err != nil {
		return fmt.Errorf("保存処理に失敗したのだ: %w", err)
	}
	return nil
}
