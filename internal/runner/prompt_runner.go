package runner

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-dataset-kit/internal/config"
	"github.com/shouni/go-dataset-kit/pkg/domain"
	"github.com/shouni/go-dataset-kit/pkg/generator"
)

// PromptRunner は実行時オプションに応じた生成パスでカスケードを駆動し、
// データセット1バッチ分のプロンプトレコードを組み立てます。
type PromptRunner struct {
	cascade *generator.Cascade
	opts    config.GenerateOptions
}

// NewPromptRunner は PromptRunner の新しいインスタンスを生成して返すのだ。
func NewPromptRunner(cascade *generator.Cascade, opts config.GenerateOptions) *PromptRunner {
	return &PromptRunner{cascade: cascade, opts: opts}
}

// Run は設定に応じて LLM 経由・完全動的・定義済みシーンのいずれかの
// パスでプロンプト列を生成するのだ。
func (pr *PromptRunner) Run(ctx context.Context) ([]domain.PromptRecord, error) {
	count := pr.opts.Count
	if count <= 0 {
		count = config.DefaultCount
	}

	switch {
	case pr.opts.UseLLM:
		slog.Info("LLMによるプロンプト生成を開始するのだ",
			"object", pr.opts.Object, "count", count, "advanced", pr.opts.AdvancedPrompts)

		records, err := pr.cascade.LLMPrompts(ctx, pr.opts.Object, generator.LLMPromptOptions{
			Count:            count,
			MinObjects:       pr.opts.MinObjects,
			MaxObjects:       pr.opts.MaxObjects,
			ExactObjects:     pr.opts.NumObjects,
			Advanced:         pr.opts.AdvancedPrompts,
			UseDynamicScenes: pr.opts.DynamicScenes,
		})
		if err != nil {
			return nil, fmt.Errorf("LLMプロンプト生成に失敗したのだ: %w", err)
		}
		return records, nil

	case pr.opts.DynamicScenes:
		slog.Info("完全動的なプロンプト生成を開始するのだ", "object", pr.opts.Object, "count", count)
		return pr.cascade.FullyDynamicPrompts(ctx, pr.opts.Object, count), nil

	default:
		slog.Info("定義済みシーンからのプロンプト生成を開始するのだ", "object", pr.opts.Object, "count", count)
		records, err := pr.cascade.SimplePrompts(ctx, pr.opts.Object, count, false)
		if err != nil {
			return nil, fmt.Errorf("プロンプト生成に失敗したのだ: %w", err)
		}
		return records, nil
	}
}
