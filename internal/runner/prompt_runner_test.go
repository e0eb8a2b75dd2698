package runner

import (
	"context"
	"strings"
	"testing"

	"github.com/shouni/go-dataset-kit/internal/config"
	"github.com/shouni/go-dataset-kit/pkg/generator"
)

func newOfflineCascade(t *testing.T) *generator.Cascade {
	t.Helper()
	c, err := generator.NewCascade(nil, "test-model")
	if err != nil {
		t.Fatalf("カスケードの初期化に失敗しました: %v", err)
	}
	return c
}

func TestPromptRunner_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("定義済みシーンから件数どおり生成されること", func(t *testing.T) {
		pr := NewPromptRunner(newOfflineCascade(t), config.GenerateOptions{
			Object: "empty can",
			Count:  4,
		})
		records, err := pr.Run(ctx)
		if err != nil {
			t.Fatalf("実行に失敗したのだ: %v", err)
		}
		if len(records) != 4 {
			t.Fatalf("4件を期待しましたが %d 件でした", len(records))
		}
		for _, r := range records {
			if r.Object != "empty can" {
				t.Errorf("オブジェクト名が一致しません: %+v", r)
			}
		}
	})

	t.Run("完全動的パスはプール外オブジェクトでも成功すること", func(t *testing.T) {
		pr := NewPromptRunner(newOfflineCascade(t), config.GenerateOptions{
			Object:        "spatula",
			Count:         3,
			DynamicScenes: true,
		})
		records, err := pr.Run(ctx)
		if err != nil {
			t.Fatalf("実行に失敗したのだ: %v", err)
		}
		if len(records) != 3 {
			t.Fatalf("3件を期待しましたが %d 件でした", len(records))
		}
		for _, r := range records {
			if !strings.Contains(r.Scene, "spatula") {
				t.Errorf("シーンにオブジェクト名がありません: %q", r.Scene)
			}
		}
	})

	t.Run("件数未指定は既定値に補正されること", func(t *testing.T) {
		pr := NewPromptRunner(newOfflineCascade(t), config.GenerateOptions{
			Object: "plastic bottle",
		})
		records, err := pr.Run(ctx)
		if err != nil {
			t.Fatalf("実行に失敗したのだ: %v", err)
		}
		if len(records) != config.DefaultCount {
			t.Errorf("既定件数 %d を期待しましたが %d 件でした", config.DefaultCount, len(records))
		}
	})
}
