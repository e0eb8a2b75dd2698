package scenepool

import (
	"reflect"
	"testing"
)

func testPool() *Pool {
	return New([]Entry{
		{Key: "empty can", Scenes: []string{"can scene 1", "can scene 2", "can scene 3"}},
		{Key: "plastic bottle", Scenes: []string{"bottle scene 1", "bottle scene 2"}},
		{Key: "paper cup", Scenes: []string{"cup scene 1"}},
	})
}

func TestPool_Match_ExactMatch(t *testing.T) {
	p := testPool()

	t.Run("完全一致でシーン列がそのままの順序で返ること", func(t *testing.T) {
		got := p.Match("empty can")
		want := []string{"can scene 1", "can scene 2", "can scene 3"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("期待値 %v, 実際の値 %v", want, got)
		}
	})

	t.Run("大文字小文字を区別しないこと", func(t *testing.T) {
		got := p.Match("Empty CAN")
		if len(got) != 3 || got[0] != "can scene 1" {
			t.Errorf("大文字混じりの名前でマッチしませんでした: %v", got)
		}
	})
}

func TestPool_Match_SubstringMatch(t *testing.T) {
	p := testPool()

	t.Run("名前がキーを包含する場合にマッチすること", func(t *testing.T) {
		got := p.Match("crushed empty can on the ground")
		if len(got) == 0 || got[0] != "can scene 1" {
			t.Errorf("部分一致に失敗しました: %v", got)
		}
	})

	t.Run("キーが名前を包含する場合にマッチすること", func(t *testing.T) {
		got := p.Match("plastic bott")
		if len(got) == 0 || got[0] != "bottle scene 1" {
			t.Errorf("部分一致に失敗しました: %v", got)
		}
	})

	t.Run("定義順で最初のヒットのシーン列のみが返ること", func(t *testing.T) {
		p2 := New([]Entry{
			{Key: "can", Scenes: []string{"first"}},
			{Key: "empty can", Scenes: []string{"second"}},
		})
		got := p2.Match("empty can holder")
		if !reflect.DeepEqual(got, []string{"first"}) {
			t.Errorf("全ヒットを集約せず先勝ちであるべきです: %v", got)
		}
	})
}

func TestPool_Match_WordOverlap(t *testing.T) {
	p := testPool()

	t.Run("単語の交差でマッチすること", func(t *testing.T) {
		got := p.Match("bottle of water")
		if len(got) == 0 || got[0] != "bottle scene 1" {
			t.Errorf("単語一致に失敗しました: %v", got)
		}
	})

	t.Run("どの段にも該当しなければnilが返ること", func(t *testing.T) {
		if got := p.Match("spatula"); got != nil {
			t.Errorf("マッチしないはずの名前で結果が返りました: %v", got)
		}
	})
}

func TestDefault_EmptyCanScenes(t *testing.T) {
	// 組み込みプールの "empty can" は10シーンを持つ契約
	scenes, ok := Default().Scenes("empty can")
	if !ok {
		t.Fatal("組み込みプールに 'empty can' が存在しません")
	}
	if len(scenes) != 10 {
		t.Errorf("期待値 10 シーン, 実際の値 %d", len(scenes))
	}
}
