package generator

import (
	"strings"
	"testing"
)

func TestFallbackScene(t *testing.T) {
	t.Run("同じ添字からは常に同じシーンが得られること", func(t *testing.T) {
		a := FallbackScene("spatula", 4)
		b := FallbackScene("spatula", 4)
		if a != b {
			t.Errorf("決定論的であるはずの出力が一致しません: %q != %q", a, b)
		}
	})

	t.Run("オブジェクト名が末尾に含まれること", func(t *testing.T) {
		got := FallbackScene("spatula", 0)
		if !strings.HasSuffix(got, " and spatula") {
			t.Errorf("オブジェクト名の埋め込みに失敗しました: %q", got)
		}
	})

	t.Run("異なる添字では異なるシーンになること", func(t *testing.T) {
		if FallbackScene("empty can", 1) == FallbackScene("empty can", 2) {
			t.Error("隣接する添字から同一のシーンが生成されました")
		}
	})
}

func TestDefaultDynamicScenes(t *testing.T) {
	t.Run("要求件数ちょうどを返すこと", func(t *testing.T) {
		for _, n := range []int{1, 5, 18, 30, 50} {
			got := DefaultDynamicScenes("plastic bottle", n)
			if len(got) != n {
				t.Errorf("件数=%d を要求しましたが %d 件でした", n, len(got))
			}
		}
	})

	t.Run("全シーンにオブジェクト名が含まれること", func(t *testing.T) {
		for i, s := range DefaultDynamicScenes("newspaper", 25) {
			if !strings.Contains(s, "newspaper") {
				t.Errorf("%d件目にオブジェクト名がありません: %q", i, s)
			}
		}
	})

	t.Run("雛形を超えた分は照明バリエーション付きで循環すること", func(t *testing.T) {
		got := DefaultDynamicScenes("empty can", 20)
		seen := make(map[string]struct{}, len(got))
		for _, s := range got {
			if _, ok := seen[s]; ok {
				t.Errorf("重複するシーンが生成されました: %q", s)
			}
			seen[s] = struct{}{}
		}
	})
}
