package domain

import "fmt"

// PromptRecord は画像生成1枚分のプロンプトとメタデータを保持します。
// JSONフィールド名は下流のデータセット永続化処理が依存する契約です。
type PromptRecord struct {
	Prompt      string `json:"prompt"`
	Scene       string `json:"scene"`
	Object      string `json:"object"`
	ObjectCount int    `json:"object_count"`

	// SceneDescription は LLM が scene を膨らませた最終的な情景描写。
	// 外部サービス経由で生成された場合のみ設定されます。
	SceneDescription string `json:"scene_description,omitempty"`
}

// String はログ出力用の短い表現を返します。
func (r PromptRecord) String() string {
	return fmt.Sprintf("%s x%d (%s)", r.Object, r.ObjectCount, r.Scene)
}

// GeneratedImage は保存済み画像1枚の情報です。
// {object}_prompts.json に書き出される1要素に対応します。
type GeneratedImage struct {
	FileName    string `json:"file_name"`
	FilePath    string `json:"file_path"`
	Prompt      string `json:"prompt"`
	Scene       string `json:"scene"`
	Object      string `json:"object"`
	ObjectCount int    `json:"object_count"`
}
