package cmd

import (
	"testing"

	"github.com/shouni/go-dataset-kit/internal/config"

	"github.com/spf13/cobra"
)

func newFlagTestCommand(t *testing.T, args []string) *cobra.Command {
	t.Helper()
	opts = config.GenerateOptions{}
	cmd := &cobra.Command{Use: "test"}
	addAppFlags(cmd)
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("フラグの解析に失敗しました: %v", err)
	}
	return cmd
}

func TestApplyModelOverrides(t *testing.T) {
	t.Run("フラグ未指定なら環境変数由来の値が保持されること", func(t *testing.T) {
		cmd := newFlagTestCommand(t, []string{"--object", "empty can"})
		cfg := &config.Config{
			GeminiModel:      "env-text-model",
			GeminiImageModel: "env-image-model",
		}
		applyModelOverrides(cmd, cfg)
		if cfg.GeminiModel != "env-text-model" {
			t.Errorf("テキストモデルが上書きされています: %q", cfg.GeminiModel)
		}
		if cfg.GeminiImageModel != "env-image-model" {
			t.Errorf("画像モデルが上書きされています: %q", cfg.GeminiImageModel)
		}
	})

	t.Run("明示されたフラグだけが設定を上書きすること", func(t *testing.T) {
		cmd := newFlagTestCommand(t, []string{"--model", "cli-text-model"})
		cfg := &config.Config{
			GeminiModel:      "env-text-model",
			GeminiImageModel: "env-image-model",
		}
		applyModelOverrides(cmd, cfg)
		if cfg.GeminiModel != "cli-text-model" {
			t.Errorf("テキストモデルが上書きされていません: %q", cfg.GeminiModel)
		}
		if cfg.GeminiImageModel != "env-image-model" {
			t.Errorf("未指定の画像モデルまで上書きされています: %q", cfg.GeminiImageModel)
		}
	})
}
