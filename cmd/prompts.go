package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-dataset-kit/internal/config"
	"github.com/shouni/go-dataset-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// promptsCmd は、画像生成を行わずプロンプトレコードのJSONだけを出力するのだ。
var promptsCmd = &cobra.Command{
	Use:   "prompts",
	Short: "プロンプトレコードのみを生成してJSONに保存しますなのだ。",
	Long: `画像生成をスキップし、プロンプト・シーン・オブジェクト個数のレコード列を
JSONファイルとして出力するのだ。--use-llm なしなら外部サービスへは一切
アクセスしないのだよ。`,
	RunE: promptsCommand,
}

func promptsCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if opts.Object == "" {
		return fmt.Errorf("生成対象（--object）を指定してほしいのだ")
	}

	cfg := config.LoadConfig()
	applyModelOverrides(cmd, cfg)
	cfg.Options = opts
	cfg.Options.PromptsOnly = true

	slog.Info("プロンプト生成を開始するのだ",
		"object", opts.Object,
		"count", opts.Count,
		"use_llm", opts.UseLLM)

	if err := pipeline.Execute(ctx, cfg); err != nil {
		return fmt.Errorf("プロンプト生成中にエラーが発生したのだ: %w", err)
	}

	slog.Info("プロンプトの出力が完了したのだ！")
	return nil
}
