package generator

import "log/slog"

// DefaultMinUnique は生成バッチを「多様」と認めるために必要な相異なる
// シーン数の既定値です。
const DefaultMinUnique = 3

// EnsureDiverse は生成されたシーン列の相異なる要素数が minUnique に
// 満たない場合、決定論的な補充バッチを追記してから重複を除去します。
//
// 補充パスを通った場合、出力の並び順は保証されません。順序よりも
// 一意性を優先する設計上のトレードオフです。しきい値を満たしている
// 入力は順序を保ったままそのまま返します。
func EnsureDiverse(scenes []string, objectName string, minUnique int) []string {
	if minUnique <= 0 {
		minUnique = DefaultMinUnique
	}

	if distinctCount(scenes) >= minUnique {
		return scenes
	}

	slog.Warn("シーンの多様性が不足しているため補充します",
		"object", objectName,
		"distinct", distinctCount(scenes),
		"min_unique", minUnique)

	// 入力長より出力が短くならないよう、入力長+しきい値ぶんの補充を行う
	extra := DefaultDynamicScenes(objectName, len(scenes)+minUnique)
	combined := append(append([]string{}, scenes...), extra...)

	seen := make(map[string]struct{}, len(combined))
	unique := make([]string, 0, len(combined))
	for _, s := range combined {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		unique = append(unique, s)
	}
	return unique
}

func distinctCount(scenes []string) int {
	seen := make(map[string]struct{}, len(scenes))
	for _, s := range scenes {
		seen[s] = struct{}{}
	}
	return len(seen)
}
