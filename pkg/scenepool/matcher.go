package scenepool

import "strings"

// Match は自由記述のオブジェクト名をプール内のシーン列に解決します。
// 3段階のマッチングを順に試し、最初に結果が得られた段で確定します。
//
//  1. 完全一致: 小文字化した名前がキーと一致する
//  2. 部分一致: キーが名前を含む、または名前がキーを含む（定義順で最初のヒット）
//  3. 単語一致: 名前とキーを空白で分割し、単語集合が交差する（定義順で最初のヒット）
//
// どの段にも該当しない場合は nil を返します。汎用シーンへの
// フォールバックは呼び出し側の責務です。
func (p *Pool) Match(objectName string) []string {
	name := strings.ToLower(objectName)

	if scenes, ok := p.Scenes(name); ok {
		return scenes
	}

	for _, e := range p.entries {
		key := strings.ToLower(e.Key)
		if strings.Contains(name, key) || strings.Contains(key, name) {
			return e.Scenes
		}
	}

	nameWords := wordSet(name)
	for _, e := range p.entries {
		for w := range wordSet(strings.ToLower(e.Key)) {
			if _, ok := nameWords[w]; ok {
				return e.Scenes
			}
		}
	}

	return nil
}

func wordSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(s) {
		set[w] = struct{}{}
	}
	return set
}
