// Package generator は、外部テキスト生成サービスの不安定な応答を
// 有界・重複排除・スキーマ準拠のシーン記述と画像生成プロンプトへ変換する
// フォールバックカスケードを提供します。
package generator

import (
	"context"
	"math/rand/v2"
)

// TextRequest は外部テキスト生成サービスへの1回の要求パラメータです。
type TextRequest struct {
	SystemInstruction string
	UserMessage       string
	Model             string
	Temperature       float32
	MaxTokens         int
}

// TextGenerator は外部テキスト生成サービスとの契約です。
// 失敗・タイムアウト・要求構造に従わない応答のいずれも起こり得るため、
// カスケードはこの3つを同一に扱います。
type TextGenerator interface {
	Generate(ctx context.Context, req TextRequest) (string, error)
}

// Rand はカスケード内の乱択を差し替え可能にするためのインターフェースです。
// 決定論テストではスタブを注入します。
type Rand interface {
	// IntN は [0, n) の一様乱数を返します。
	IntN(n int) int
}

// systemRand は math/rand/v2 のグローバル生成器に委譲するデフォルト実装です。
type systemRand struct{}

func (systemRand) IntN(n int) int { return rand.IntN(n) }

// SystemRand は本番用の乱数源を返します。
func SystemRand() Rand { return systemRand{} }
