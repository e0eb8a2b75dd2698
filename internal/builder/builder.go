package builder

import (
	"context"
	"fmt"
	"time"

	"github.com/shouni/go-dataset-kit/internal/runner"
	"github.com/shouni/go-dataset-kit/pkg/generator"
	"github.com/shouni/go-dataset-kit/pkg/publisher"

	"github.com/patrickmn/go-cache"
	imagegen "github.com/shouni/gemini-image-kit/pkg/generator"
	"github.com/shouni/go-gemini-client/pkg/gemini"
	"github.com/shouni/go-text-format/pkg/builder"
	"google.golang.org/genai"
)

// BuildPromptRunner はプロンプト生成カスケードを駆動する Runner を構築します。
func BuildPromptRunner(appCtx *AppContext) (*runner.PromptRunner, error) {
	var textGen generator.TextGenerator
	if appCtx.aiClient != nil {
		textGen = generator.NewGeminiTextGenerator(appCtx.aiClient)
	}

	cascade, err := generator.NewCascade(textGen, appCtx.Config.GeminiModel)
	if err != nil {
		return nil, fmt.Errorf("カスケードの構築に失敗したのだ: %w", err)
	}

	return runner.NewPromptRunner(cascade, appCtx.Options), nil
}

// BuildImageRunner は並列画像生成を担当する Runner を構築します。
func BuildImageRunner(appCtx *AppContext) (*runner.DatasetImageRunner, error) {
	imgGen, err := InitializeImageGenerator(appCtx)
	if err != nil {
		return nil, fmt.Errorf("GeminiGeneratorの初期化に失敗したのだ: %w", err)
	}

	return runner.NewDatasetImageRunner(imgGen, appCtx.Config.NegativePrompt), nil
}

// BuildPublisherRunner はコンテンツ保存と変換を行う Runner を構築します。
func BuildPublisherRunner(appCtx *AppContext) (*runner.PublishRunner, error) {
	config := builder.BuilderConfig{
		EnableHardWraps: true,
		Mode:            "webtoon",
	}
	appBuilder, err := builder.NewBuilder(config)
	if err != nil {
		return nil, fmt.Errorf("アプリケーションビルダーの初期化に失敗しました: %w", err)
	}

	md2htmlRunner, err := appBuilder.BuildRunner()
	if err != nil {
		return nil, fmt.Errorf("MarkdownToHtmlRunnerの初期化に失敗しました: %w", err)
	}

	pub := publisher.NewDatasetPublisher(appCtx.Writer, md2htmlRunner)
	return runner.NewPublishRunner(pub, appCtx.Options), nil
}

// InitializeAIClient は gemini クライアントを初期化します。
func InitializeAIClient(ctx context.Context, apiKey string) (gemini.GenerativeModel, error) {
	// シーンの多様性を確保するため、既定よりも高めの温度で動かすのだ
	const defaultGeminiTemperature = float32(0.9)
	clientConfig := gemini.Config{
		APIKey:      apiKey,
		Temperature: genai.Ptr(defaultGeminiTemperature),
	}
	aiClient, err := gemini.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("AIクライアントの初期化に失敗しました: %w", err)
	}
	return aiClient, nil
}

// InitializeImageGenerator は ImageGeneratorを初期化します。
func InitializeImageGenerator(appCtx *AppContext) (imagegen.ImageGenerator, error) {
	imgCache := cache.New(30*time.Minute, 1*time.Hour)
	cacheTTL := 1 * time.Hour

	core, err := imagegen.NewGeminiImageCore(
		appCtx.httpClient,
		imgCache,
		cacheTTL,
	)
	if err != nil {
		return nil, fmt.Errorf("GeminiImageCoreの初期化に失敗したのだ: %w", err)
	}

	imgGen, err := imagegen.NewGeminiGenerator(
		core,
		appCtx.aiClient,
		appCtx.Config.GeminiImageModel,
	)
	if err != nil {
		return nil, fmt.Errorf("GeminiGeneratorの初期化に失敗したのだ: %w", err)
	}

	return imgGen, nil
}
