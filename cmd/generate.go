package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-dataset-kit/internal/config"
	"github.com/shouni/go-dataset-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// generateCmd は、プロンプト生成から画像生成、保存までの全工程を実行するのだ。
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "オブジェクトのプロンプトと画像を一括生成しますなのだ。",
	Long: `指定されたオブジェクトに対してシーンを選定し、画像生成プロンプトを組み立て、
Gemini で画像を生成して保存するのだ。外部サービスが不調でも定義済みシーンと
合成フォールバックで処理は最後まで進むのだよ。`,
	RunE: generateCommand,
}

func generateCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if opts.Object == "" {
		return fmt.Errorf("生成対象（--object）を指定してほしいのだ")
	}

	// 環境変数等から基本設定をロードするのだ
	cfg := config.LoadConfig()
	applyModelOverrides(cmd, cfg)
	cfg.Options = opts

	slog.Info("データセット生成パイプラインを起動するのだ！",
		"object", opts.Object,
		"count", opts.Count,
		"text_model", cfg.GeminiModel,
		"image_model", cfg.GeminiImageModel,
		"output", opts.OutputDir)

	if err := pipeline.Execute(ctx, cfg); err != nil {
		return fmt.Errorf("パイプライン実行中にエラーが発生したのだ: %w", err)
	}

	slog.Info("すべての生成工程が完了したのだ！")
	return nil
}
