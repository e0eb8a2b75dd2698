package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-dataset-kit/internal/config"
	"github.com/shouni/go-dataset-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// samplesCmd は、動作確認用のプリセット（LLM + advanced）で少量生成するのだ。
var samplesCmd = &cobra.Command{
	Use:   "samples",
	Short: "プリセット設定でサンプル画像を少量生成しますなのだ。",
	Long: `LLMによるシーン記述と advanced プロンプトを有効にした推奨設定で、
動作確認用のサンプルを生成するのだ。件数は --count で調整できるのだよ。`,
	RunE: samplesCommand,
}

func samplesCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if opts.Object == "" {
		return fmt.Errorf("生成対象（--object）を指定してほしいのだ")
	}

	cfg := config.LoadConfig()
	applyModelOverrides(cmd, cfg)
	cfg.Options = opts

	// サンプル生成はLLM＋advancedの推奨構成で固定するのだ
	cfg.Options.UseLLM = true
	cfg.Options.AdvancedPrompts = true
	if cfg.Options.Count <= 0 || cfg.Options.Count > 10 {
		cfg.Options.Count = 3
	}

	slog.Info("サンプル生成を開始するのだ",
		"object", opts.Object,
		"count", cfg.Options.Count)

	if err := pipeline.Execute(ctx, cfg); err != nil {
		return fmt.Errorf("サンプル生成中にエラーが発生したのだ: %w", err)
	}

	slog.Info("サンプル生成が完了したのだ！")
	return nil
}
