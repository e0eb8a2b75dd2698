package generator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shouni/go-dataset-kit/pkg/scenepool"
)

// stubGen は外部サービスの応答を台本どおりに返すスタブです。
type stubGen struct {
	fn    func(req TextRequest) (string, error)
	calls int
}

func (s *stubGen) Generate(_ context.Context, req TextRequest) (string, error) {
	s.calls++
	return s.fn(req)
}

func failingGen() *stubGen {
	return &stubGen{fn: func(TextRequest) (string, error) {
		return "", errors.New("service unavailable")
	}}
}

func fixedGen(text string) *stubGen {
	return &stubGen{fn: func(TextRequest) (string, error) {
		return text, nil
	}}
}

// zeroRand は常に0を返し、乱択を決定論化します。
type zeroRand struct{}

func (zeroRand) IntN(int) int { return 0 }

func newTestCascade(t *testing.T, gen TextGenerator) *Cascade {
	t.Helper()
	c, err := NewCascade(gen, "test-model", WithRand(zeroRand{}))
	if err != nil {
		t.Fatalf("カスケードの初期化に失敗しました: %v", err)
	}
	return c
}

func TestCascade_InferScene(t *testing.T) {
	ctx := context.Background()

	t.Run("外部段の失敗時は定義済みプールへフォールバックすること", func(t *testing.T) {
		c := newTestCascade(t, failingGen())
		got := c.InferScene(ctx, "empty can", 1, 0)
		if got.Source != SourceMatchedPool {
			t.Fatalf("出所が %v です（matched_pool を期待）", got.Source)
		}
		pool, _ := scenepool.Default().Scenes("empty can")
		if got.Text != pool[0] {
			t.Errorf("乱数0ならプール先頭を期待しますが %q でした", got.Text)
		}
	})

	t.Run("プール外オブジェクトは合成フォールバックで終端すること", func(t *testing.T) {
		c := newTestCascade(t, failingGen())
		got := c.InferScene(ctx, "spatula", 1, 2)
		if got.Source != SourceSynthetic {
			t.Fatalf("出所が %v です（synthetic を期待）", got.Source)
		}
		if !strings.Contains(got.Text, "spatula") {
			t.Errorf("合成シーンにオブジェクト名がありません: %q", got.Text)
		}
	})

	t.Run("合成フォールバックは同じ位置添字で決定論的であること", func(t *testing.T) {
		c := newTestCascade(t, failingGen())
		a := c.InferScene(ctx, "spatula", 1, 5)
		b := c.InferScene(ctx, "spatula", 1, 5)
		if a.Text != b.Text {
			t.Errorf("同じ添字から異なるシーンが生成されました: %q != %q", a.Text, b.Text)
		}
	})

	t.Run("外部段の妥当な応答が採用されること", func(t *testing.T) {
		c := newTestCascade(t, fixedGen("1. a crushed can beside a park bench\n2. a can floating in a fountain"))
		got := c.InferScene(ctx, "empty can", 1, 0)
		if got.Source != SourceExternal {
			t.Fatalf("出所が %v です（external を期待）", got.Source)
		}
		if got.Text != "a crushed can beside a park bench" {
			t.Errorf("乱数0なら先頭候補を期待しますが %q でした", got.Text)
		}
	})

	t.Run("外部クライアント未設定でもエラーにならないこと", func(t *testing.T) {
		c := newTestCascade(t, nil)
		got := c.InferScene(ctx, "glass bottle", 2, 0)
		if got.Text == "" {
			t.Error("シーンが空です")
		}
	})
}

func TestCascade_DynamicScenes(t *testing.T) {
	ctx := context.Background()

	t.Run("常に要求件数ちょうどを返すこと", func(t *testing.T) {
		gen := fixedGen("1. scene on a sidewalk\n2. scene near a vending machine\n3. scene under a bridge")
		c := newTestCascade(t, gen)

		for _, n := range []int{1, 3, 7} {
			got, _ := c.DynamicScenes(ctx, "empty can", n)
			if len(got) != n {
				t.Errorf("件数=%d を要求しましたが %d 件でした", n, len(got))
			}
		}
	})

	t.Run("応答不足分が決定論的に補われること", func(t *testing.T) {
		gen := fixedGen("1. only one scene here okay")
		c := newTestCascade(t, gen)
		a, _ := c.DynamicScenes(ctx, "newspaper", 5)
		b, _ := c.DynamicScenes(ctx, "newspaper", 5)
		for i := range a {
			if a[i] != b[i] {
				t.Errorf("補充分が決定論的ではありません: %d件目 %q != %q", i, a[i], b[i])
			}
		}
	})

	t.Run("2件しか返らない応答でも10件中3種以上の相異なるシーンになること", func(t *testing.T) {
		gen := fixedGen("1. a can on the kitchen floor\n2. a can beside a park fountain")
		c := newTestCascade(t, gen)
		got, _ := c.DynamicScenes(ctx, "empty can", 10)
		if len(got) != 10 {
			t.Fatalf("10件を期待しましたが %d 件でした", len(got))
		}
		if n := distinctCount(got); n < 3 {
			t.Errorf("相異なるシーンが %d 種しかありません", n)
		}
	})

	t.Run("外部段の失敗時はデフォルトシーンで件数を満たすこと", func(t *testing.T) {
		c := newTestCascade(t, failingGen())
		got, source := c.DynamicScenes(ctx, "plastic bag", 8)
		if len(got) != 8 {
			t.Fatalf("8件を期待しましたが %d 件でした", len(got))
		}
		if source != SourceSynthetic {
			t.Errorf("出所が %v です（synthetic を期待）", source)
		}
		for _, s := range got {
			if !strings.Contains(s, "plastic bag") {
				t.Errorf("シーンにオブジェクト名がありません: %q", s)
			}
		}
	})
}

func TestCascade_SimplePrompts(t *testing.T) {
	ctx := context.Background()

	t.Run("プール外オブジェクトは動的生成なしではエラーになること", func(t *testing.T) {
		c := newTestCascade(t, nil)
		_, err := c.SimplePrompts(ctx, "spatula", 3, false)
		if !errors.Is(err, ErrUnsupportedObject) {
			t.Fatalf("ErrUnsupportedObject を期待しましたが %v でした", err)
		}
	})

	t.Run("定義済みオブジェクトから件数どおりのレコードが得られること", func(t *testing.T) {
		c := newTestCascade(t, nil)
		got, err := c.SimplePrompts(ctx, "empty can", 12, false)
		if err != nil {
			t.Fatalf("生成に失敗しました: %v", err)
		}
		if len(got) != 12 {
			t.Fatalf("12件を期待しましたが %d 件でした", len(got))
		}
		for _, r := range got {
			if !strings.HasPrefix(r.Prompt, "Photorealistic image of") {
				t.Errorf("写実テンプレートで包まれていません: %q", r.Prompt)
			}
			if r.Object != "empty can" || r.ObjectCount != 1 {
				t.Errorf("レコードのメタデータが不正です: %+v", r)
			}
		}
	})

	t.Run("0件以下の要求は空のレコード列を返すこと", func(t *testing.T) {
		c := newTestCascade(t, nil)
		for _, n := range []int{0, -1} {
			got, err := c.SimplePrompts(ctx, "empty can", n, true)
			if err != nil {
				t.Fatalf("件数=%d でエラーは期待していません: %v", n, err)
			}
			if len(got) != 0 {
				t.Errorf("件数=%d で %d 件が返りました", n, len(got))
			}
		}
	})
}

func TestCascade_RealisticPrompt(t *testing.T) {
	ctx := context.Background()

	t.Run("外部段の応答がそのまま採用されること", func(t *testing.T) {
		c := newTestCascade(t, fixedGen("A weathered can rests on cracked pavement under dull morning light."))
		got := c.RealisticPrompt(ctx, "empty can", "sidewalk", 2, 1, 3)
		if !strings.HasPrefix(got.Prompt, "A weathered can") {
			t.Errorf("外部応答が採用されていません: %q", got.Prompt)
		}
		if got.ObjectCount != 2 {
			t.Errorf("明示した個数が保持されていません: %d", got.ObjectCount)
		}
	})

	t.Run("外部段の失敗時もエラーを返さずフォールバックすること", func(t *testing.T) {
		c := newTestCascade(t, failingGen())
		got := c.RealisticPrompt(ctx, "paper cup", "office desk", 0, 1, 3)
		if got.Prompt == "" {
			t.Fatal("フォールバックプロンプトが空です")
		}
		if !strings.Contains(got.Prompt, "paper cup") {
			t.Errorf("プロンプトにオブジェクト名がありません: %q", got.Prompt)
		}
		if got.ObjectCount < 1 || got.ObjectCount > 3 {
			t.Errorf("個数が指定範囲外です: %d", got.ObjectCount)
		}
	})
}

func TestCascade_LLMPrompts(t *testing.T) {
	ctx := context.Background()

	t.Run("情景描写が固定テンプレートで包まれること", func(t *testing.T) {
		c := newTestCascade(t, fixedGen("Two cans lie beneath a rusted railing near the harbor."))
		got, err := c.LLMPrompts(ctx, "empty can", LLMPromptOptions{Count: 2, ExactObjects: 2})
		if err != nil {
			t.Fatalf("生成に失敗しました: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("2件を期待しましたが %d 件でした", len(got))
		}
		for _, r := range got {
			if !strings.HasPrefix(r.Prompt, "Casual amateur snapshot of") {
				t.Errorf("簡易テンプレートで包まれていません: %q", r.Prompt)
			}
			if r.SceneDescription == "" {
				t.Error("情景描写が保持されていません")
			}
		}
	})

	t.Run("advancedモードでサフィックスが付くこと", func(t *testing.T) {
		c := newTestCascade(t, fixedGen("A single bottle glints in the late sun on a gravel path"))
		got, err := c.LLMPrompts(ctx, "plastic bottle", LLMPromptOptions{Count: 1, Advanced: true})
		if err != nil {
			t.Fatalf("生成に失敗しました: %v", err)
		}
		if !strings.Contains(got[0].Prompt, "Amateur smartphone photo") {
			t.Errorf("advancedサフィックスがありません: %q", got[0].Prompt)
		}
	})

	t.Run("プール外オブジェクトはクライアントなしではエラーになること", func(t *testing.T) {
		c := newTestCascade(t, nil)
		if _, err := c.LLMPrompts(ctx, "spatula", LLMPromptOptions{Count: 1}); !errors.Is(err, ErrUnsupportedObject) {
			t.Fatalf("ErrUnsupportedObject を期待しましたが %v でした", err)
		}
	})

	t.Run("外部段の失敗時はフォールバックテンプレートで埋まること", func(t *testing.T) {
		c := newTestCascade(t, failingGen())
		got, err := c.LLMPrompts(ctx, "empty can", LLMPromptOptions{Count: 3})
		if err != nil {
			t.Fatalf("エラーは期待していません: %v", err)
		}
		if len(got) != 3 {
			t.Fatalf("3件を期待しましたが %d 件でした", len(got))
		}
		for _, r := range got {
			if r.Prompt == "" {
				t.Error("フォールバックプロンプトが空です")
			}
		}
	})
}

func TestCascade_AppropriateScenes(t *testing.T) {
	ctx := context.Background()

	t.Run("定義済みオブジェクトはプールの全シーンを返すこと", func(t *testing.T) {
		c := newTestCascade(t, nil)
		got := c.AppropriateScenes(ctx, "empty can", false)
		if len(got) != 10 {
			t.Errorf("10件のプールシーンを期待しましたが %d 件でした", len(got))
		}
	})

	t.Run("プール外オブジェクトは汎用シーンへフォールバックすること", func(t *testing.T) {
		c := newTestCascade(t, nil)
		got := c.AppropriateScenes(ctx, "spatula", false)
		if len(got) != len(scenepool.GeneralScenes) {
			t.Errorf("汎用シーンの件数と一致しません: %d", len(got))
		}
	})
}
