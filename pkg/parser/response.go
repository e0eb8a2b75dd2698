// Package parser は、外部テキスト生成サービスの自由記述レスポンスを
// 整形済みのシーン記述リストへ変換します。
//
// 入力は信頼できないため、解析はベストエフォートです。未知の形式の
// 行はそのまま残し、解析失敗でエラーを返すことはありません。
package parser

import (
	"log/slog"
	"strings"
	"unicode"
)

// enumSeparators は "1. シーン" のような行頭の列挙マーカーを
// 取り除くための区切り文字列です。先頭から順に試し、行の先頭5文字以内に
// 最初に見つかったものを適用します。
var enumSeparators = []string{". ", ") ", "- ", ": "}

// ParseScenes は生テキストを行単位に分解し、列挙マーカーや箇条書き記号を
// 取り除いたシーン記述のリストを返します。出力は入力の行順を保ちます。
//
// 空行・数字のみの行・"#" で始まるコメント行は捨てられます。整形後に
// 空になった行も捨てられ、空のシーンとして残ることはありません。
// requestedCount が正の場合、結果は先頭から requestedCount 件に切り詰められます。
//
// この関数は決してエラーを返しません。想定外の内部エラーが起きた場合は
// 空リストを返し、呼び出し側にフォールバックを促します。
func ParseScenes(raw string, requestedCount int) (scenes []string) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("レスポンス解析中に想定外のエラーが発生しました", "panic", r)
			scenes = nil
		}
	}()

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || isDigits(line) || strings.HasPrefix(line, "#") {
			continue
		}

		clean := stripEnumMarker(line)
		clean = stripBullet(clean)
		if clean == "" {
			continue
		}
		scenes = append(scenes, clean)
	}

	if requestedCount > 0 && len(scenes) > requestedCount {
		scenes = scenes[:requestedCount]
	}
	return scenes
}

// stripEnumMarker は行頭が数字の場合に限り、既知の区切り文字で
// 列挙マーカーの除去を試みます。どの区切りにも該当しなければ行をそのまま返します。
func stripEnumMarker(line string) string {
	if len(line) <= 2 || !unicode.IsDigit(rune(line[0])) {
		return line
	}

	head := line
	if len(head) > 5 {
		head = head[:5]
	}
	for _, sep := range enumSeparators {
		if idx := strings.Index(head, sep); idx >= 0 {
			return strings.TrimSpace(line[idx+len(sep):])
		}
	}
	return line
}

// stripBullet は行頭の "-" または "*" を1つだけ取り除きます。
func stripBullet(line string) string {
	if strings.HasPrefix(line, "-") || strings.HasPrefix(line, "*") {
		return strings.TrimSpace(line[1:])
	}
	return line
}

func isDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return len(s) > 0
}
