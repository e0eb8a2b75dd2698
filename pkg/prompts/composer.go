package prompts

import (
	"fmt"
	"strings"
	"text/template"
)

// 固定のプロンプト装飾。外部サービスを介さない合成パスで使用します。
const (
	// SimplePromptFormat は LLM が生成した情景描写を包む簡易テンプレートです。
	SimplePromptFormat = "Casual amateur snapshot of %s. Unprocessed, smartphone quality with technical imperfections."

	// AdvancedPromptSuffix は advanced モードで情景描写の後ろに付ける撮影指示です。
	AdvancedPromptSuffix = "Amateur smartphone photo, unprocessed RAW quality, unstable handheld shot, " +
		"random composition with poor framing, visible digital noise, flat colors, " +
		"mild motion blur, and uneven lighting with bad white balance."

	// PhotorealisticPromptFormat は定義済みシーン向けの写実プロンプトです。
	PhotorealisticPromptFormat = "Photorealistic image of %s. High resolution, detailed, professional photography."
)

// Composer はシーン・オブジェクト・個数からプロンプト文字列を組み立てる
// 純粋な整形器です。テンプレートの選択は呼び出し側の操作が決め、
// Composer 自身は文字列補間以外の判断を行いません。
type Composer struct {
	templates map[string]*template.Template
}

// NewComposer は埋め込み済みテンプレートをすべて解析して Composer を初期化します。
func NewComposer() (*Composer, error) {
	parsed := make(map[string]*template.Template, len(allTemplates))
	for mode, content := range allTemplates {
		if content == "" {
			return nil, fmt.Errorf("プロンプトテンプレート '%s' (go:embed) の読み込みに失敗しました: 内容が空です", mode)
		}

		tmpl, err := template.New(mode).Parse(content)
		if err != nil {
			return nil, fmt.Errorf("プロンプト '%s' の解析に失敗: %w", mode, err)
		}
		parsed[mode] = tmpl
	}

	return &Composer{templates: parsed}, nil
}

// Build は、要求されたモードに応じて適切なテンプレートを実行します。
// data は変更されません。
func (c *Composer) Build(mode string, data TemplateData) (string, error) {
	tmpl, ok := c.templates[mode]
	if !ok {
		return "", fmt.Errorf("不明なモードです: '%s'", mode)
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("プロンプトテンプレートの実行に失敗しました: %w", err)
	}

	return strings.TrimSpace(sb.String()), nil
}

// ComposeSimple は簡易テンプレートで情景描写を包みます。
func ComposeSimple(sceneDescription string) string {
	return fmt.Sprintf(SimplePromptFormat, sceneDescription)
}

// ComposeAdvanced は advanced モードの撮影指示を情景描写の後ろへ連結します。
func ComposeAdvanced(sceneDescription string) string {
	return fmt.Sprintf("%s. %s", strings.TrimSuffix(sceneDescription, "."), AdvancedPromptSuffix)
}

// ComposePhotorealistic は定義済みシーン向けの写実プロンプトを返します。
func ComposePhotorealistic(scene string) string {
	return fmt.Sprintf(PhotorealisticPromptFormat, scene)
}
