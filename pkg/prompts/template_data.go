package prompts

import (
	_ "embed"
)

// テンプレートのモード識別子
const (
	ModeDynamicSceneSystem   = "dynamic_scene_system"
	ModeDynamicSceneUser     = "dynamic_scene_user"
	ModeDiverseSceneSystem   = "diverse_scene_system"
	ModeDiverseSceneUser     = "diverse_scene_user"
	ModeSceneInferenceSystem = "scene_inference_system"
	ModeSceneInferenceUser   = "scene_inference_user"
	ModeRealisticSystem      = "realistic_prompt_system"
	ModeRealisticUser        = "realistic_prompt_user"
	ModeFallbackPrompt       = "fallback_prompt"
	ModeEnhancedFallback     = "enhanced_fallback_prompt"
)

// TemplateData はプロンプトテンプレートに渡すデータ構造です。
// テンプレートが参照しないフィールドはゼロ値のままで構いません。
type TemplateData struct {
	ObjectName   string
	SceneType    string
	NumScenes    int
	NumObjects   int
	ExamplesText string
}

var (
	//go:embed dynamic_scene_system.md
	dynamicSceneSystem string
	//go:embed dynamic_scene_user.md
	dynamicSceneUser string
	//go:embed diverse_scene_system.md
	diverseSceneSystem string
	//go:embed diverse_scene_user.md
	diverseSceneUser string
	//go:embed scene_inference_system.md
	sceneInferenceSystem string
	//go:embed scene_inference_user.md
	sceneInferenceUser string
	//go:embed realistic_prompt_system.md
	realisticPromptSystem string
	//go:embed realistic_prompt_user.md
	realisticPromptUser string
	//go:embed fallback_prompt.md
	fallbackPrompt string
	//go:embed enhanced_fallback_prompt.md
	enhancedFallbackPrompt string
)

// allTemplates はモードとテンプレート文字列を紐づけるマップなのだ。
var allTemplates = map[string]string{
	ModeDynamicSceneSystem:   dynamicSceneSystem,
	ModeDynamicSceneUser:     dynamicSceneUser,
	ModeDiverseSceneSystem:   diverseSceneSystem,
	ModeDiverseSceneUser:     diverseSceneUser,
	ModeSceneInferenceSystem: sceneInferenceSystem,
	ModeSceneInferenceUser:   sceneInferenceUser,
	ModeRealisticSystem:      realisticPromptSystem,
	ModeRealisticUser:        realisticPromptUser,
	ModeFallbackPrompt:       fallbackPrompt,
	ModeEnhancedFallback:     enhancedFallbackPrompt,
}
