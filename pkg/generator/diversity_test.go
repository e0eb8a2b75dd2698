package generator

import "testing"

func TestEnsureDiverse(t *testing.T) {
	t.Run("しきい値を満たす入力は順序を保ってそのまま返ること", func(t *testing.T) {
		in := []string{"scene a", "scene b", "scene c", "scene a"}
		got := EnsureDiverse(in, "empty can", 3)
		if len(got) != len(in) {
			t.Fatalf("入力の変更は期待していません: %v", got)
		}
		for i := range in {
			if got[i] != in[i] {
				t.Errorf("順序が変わっています: %d件目 %q != %q", i, got[i], in[i])
			}
		}
	})

	t.Run("相異なる要素が不足する場合に3種以上へ補充されること", func(t *testing.T) {
		in := []string{"same scene", "same scene", "same scene", "other scene",
			"same scene", "other scene", "same scene", "same scene", "same scene", "other scene"}
		got := EnsureDiverse(in, "empty can", 3)
		if n := distinctCount(got); n < 3 {
			t.Errorf("相異なる要素が %d 種しかありません", n)
		}
	})

	t.Run("出力長が入力長を下回らないこと", func(t *testing.T) {
		in := make([]string, 10)
		for i := range in {
			in[i] = "duplicated scene"
		}
		got := EnsureDiverse(in, "plastic bag", 3)
		if len(got) < len(in) {
			t.Errorf("出力 %d 件は入力 %d 件より短くなっています", len(got), len(in))
		}
	})

	t.Run("補充後の出力に重複がないこと", func(t *testing.T) {
		in := []string{"dup", "dup", "dup"}
		got := EnsureDiverse(in, "cigarette butt", 3)
		if distinctCount(got) != len(got) {
			t.Errorf("重複排除後に重複が残っています: %v", got)
		}
	})

	t.Run("しきい値0は既定値として扱われること", func(t *testing.T) {
		got := EnsureDiverse([]string{"only one"}, "paper cup", 0)
		if n := distinctCount(got); n < DefaultMinUnique {
			t.Errorf("既定しきい値 %d を満たしていません: %d種", DefaultMinUnique, n)
		}
	})
}
