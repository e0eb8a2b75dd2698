package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shouni/go-dataset-kit/pkg/domain"
	"github.com/shouni/go-dataset-kit/pkg/parser"
	"github.com/shouni/go-dataset-kit/pkg/prompts"
	"github.com/shouni/go-dataset-kit/pkg/scenepool"
)

// Source は結果がカスケードのどの段で確定したかを示すタグです。
type Source int

const (
	// SourceExternal は外部テキスト生成サービスの応答に由来します。
	SourceExternal Source = iota
	// SourceMatchedPool は定義済みシーンプールのマッチングに由来します。
	SourceMatchedPool
	// SourceSynthetic は決定論的なテンプレート展開に由来します。
	SourceSynthetic
)

func (s Source) String() string {
	switch s {
	case SourceExternal:
		return "external"
	case SourceMatchedPool:
		return "matched_pool"
	case SourceSynthetic:
		return "synthetic"
	default:
		return "unknown"
	}
}

// SceneResult は1件のシーン記述とその出所です。
type SceneResult struct {
	Text   string
	Source Source
}

// ErrUnsupportedObject は、動的生成が無効でプールにも該当キーがない場合に
// 返されます。これ以上のフォールバック段が存在しない唯一の構成エラーです。
var ErrUnsupportedObject = errors.New("unsupported object type")

// シーン文字列の最低限の妥当性チェックに使う語数の範囲
const (
	minSceneWords = 2
	maxSceneWords = 15
)

// 各操作で外部サービスに渡す生成パラメータ
const (
	dynamicSceneTemperature   = 0.9
	dynamicSceneMaxTokens     = 800
	diverseSceneTemperature   = 0.8
	diverseSceneMaxTokens     = 500
	sceneInferenceTemperature = 0.9
	sceneInferenceMaxTokens   = 50
	realisticTemperature      = 0.8
	realisticMaxTokens        = 500
	llmPromptTemperature      = 0.7
	llmPromptMaxTokens        = 100
)

// オブジェクト個数の既定範囲
const (
	defaultMinObjects = 1
	defaultMaxObjects = 3
)

// llmSceneInstructionFormat は LLM にシーンの情景描写をさせる際の基本指示です。
const llmSceneInstructionFormat = "Describe a realistic scene containing %s %s(s) in this setting: '%s'. " +
	"Keep your response to 1-2 sentences only describing the scene. " +
	"DO NOT write 'a photo of' or 'a picture of' - just describe the scene itself."

// llmAdvancedInstructionFormat は advanced モードでより具体的な描写を求める指示です。
const llmAdvancedInstructionFormat = "You are an expert photographer describing scenes with %s %s(s) in various environments. " +
	"Create a brief, vivid description of a scene containing %s %s(s) in this setting: '%s'. " +
	"Make it specific and visually interesting. " +
	"Focus on lighting, environment, and composition. " +
	"Your descriptions should be suitable for generating photorealistic images. " +
	"Keep your response to 1-2 sentences only describing the scene. " +
	"DO NOT write 'a photo of' or 'a picture of' - just describe the scene itself."

// Cascade は各公開操作を
//
//	TRY_EXTERNAL → TRY_MATCHED_POOL → TRY_SYNTHETIC_FALLBACK
//
// の3状態機械として実行します。最終段は決定論的なテンプレート展開で
// 必ず終端するため、構成エラーを除きどの操作も呼び出し元へエラーを
// 伝播しません。劣化した出力を返してでも可用性を優先します。
type Cascade struct {
	textGen  TextGenerator // nil の場合は外部段をスキップする
	pool     *scenepool.Pool
	composer *prompts.Composer
	rng      Rand
	model    string
}

// Option は Cascade の構築オプションです。
type Option func(*Cascade)

// WithRand は乱数源を差し替えます。テスト用です。
func WithRand(r Rand) Option {
	return func(c *Cascade) { c.rng = r }
}

// WithPool はシーンプールを差し替えます。
func WithPool(p *scenepool.Pool) Option {
	return func(c *Cascade) { c.pool = p }
}

// NewCascade はカスケードを構築します。textGen に nil を渡すと
// 外部サービスを使わず、常にプールと合成フォールバックで動作します。
func NewCascade(textGen TextGenerator, model string, opts ...Option) (*Cascade, error) {
	composer, err := prompts.NewComposer()
	if err != nil {
		return nil, fmt.Errorf("プロンプトテンプレートの初期化に失敗しました: %w", err)
	}

	c := &Cascade{
		textGen:  textGen,
		pool:     scenepool.Default(),
		composer: composer,
		rng:      SystemRand(),
		model:    model,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// AppropriateScenes はオブジェクトに適したシーン列を返します。
// useLLM が真で外部サービスが使える場合は動的生成を試み、失敗時や
// 無効時はプールのマッチング、最後に汎用シーンへフォールバックします。
func (c *Cascade) AppropriateScenes(ctx context.Context, objectName string, useLLM bool) []string {
	if useLLM && c.textGen != nil {
		if scenes, err := c.externalDynamicScenes(ctx, objectName, 10); err == nil && len(scenes) > 0 {
			return scenes
		}
		slog.Warn("LLMによるシーン生成に失敗したため定義済みシーンへフォールバックします", "object", objectName)
	}

	if matched := c.pool.Match(objectName); len(matched) > 0 {
		return matched
	}
	return scenepool.GeneralScenes
}

// InferScene はオブジェクトに適した1件のシーンを推定します。
// position は合成フォールバック時の決定論的なテンプレート選択に使う
// 位置添字で、同じ添字からは常に同じシーンが得られます。
func (c *Cascade) InferScene(ctx context.Context, objectName string, numObjects, position int) SceneResult {
	// TRY_EXTERNAL: 複数候補を生成してから乱択する
	if c.textGen != nil {
		if scene, ok := c.inferSceneExternal(ctx, objectName, numObjects); ok {
			return SceneResult{Text: scene, Source: SourceExternal}
		}
	}

	// TRY_MATCHED_POOL
	if matched := c.pool.Match(objectName); len(matched) > 0 {
		return SceneResult{
			Text:   matched[c.rng.IntN(len(matched))],
			Source: SourceMatchedPool,
		}
	}

	// TRY_SYNTHETIC_FALLBACK: 必ず終端する
	return SceneResult{
		Text:   FallbackScene(objectName, position),
		Source: SourceSynthetic,
	}
}

// inferSceneExternal は動的シーン生成と直接推定の2通りで外部段を試します。
func (c *Cascade) inferSceneExternal(ctx context.Context, objectName string, numObjects int) (string, bool) {
	if scenes, err := c.externalDynamicScenes(ctx, objectName, 10); err == nil {
		if sane := filterSaneScenes(scenes); len(sane) > 0 {
			return sane[c.rng.IntN(len(sane))], true
		}
	}

	// より直接的な単発推定を試す
	system, user, err := c.buildScenePair(
		prompts.ModeSceneInferenceSystem, prompts.ModeSceneInferenceUser,
		prompts.TemplateData{ObjectName: objectName, NumObjects: numObjects})
	if err != nil {
		return "", false
	}

	raw, err := c.textGen.Generate(ctx, TextRequest{
		SystemInstruction: system,
		UserMessage:       user,
		Model:             c.model,
		Temperature:       sceneInferenceTemperature,
		MaxTokens:         sceneInferenceMaxTokens,
	})
	if err != nil {
		slog.Warn("シーン推定の外部呼び出しに失敗しました", "object", objectName, "error", err)
		return "", false
	}

	scene := strings.Trim(strings.ReplaceAll(strings.TrimSpace(raw), "\n", " "), `"'`)
	if !isSaneScene(scene) {
		slog.Warn("シーン推定の応答が妥当性チェックを通りませんでした", "object", objectName, "scene", scene)
		return "", false
	}
	return scene, true
}

// DynamicScenes は外部サービスでシーンを生成し、不足分を位置添字による
// 決定論的なテンプレートで埋め、常にちょうど count 件を返します。
// 外部サービスが使えない・失敗した場合も件数の契約は変わりません。
func (c *Cascade) DynamicScenes(ctx context.Context, objectName string, count int) ([]string, Source) {
	if count <= 0 {
		return []string{}, SourceSynthetic
	}

	source := SourceExternal
	scenes, err := c.externalDynamicScenes(ctx, objectName, count)
	if err != nil || len(scenes) == 0 {
		if err != nil {
			slog.Warn("動的シーン生成に失敗したためデフォルトシーンを使用します", "object", objectName, "error", err)
		}
		return DefaultDynamicScenes(objectName, count), SourceSynthetic
	}

	// 不足分を合成フォールバックで埋めてから切り詰める
	for len(scenes) < count {
		scenes = append(scenes, FallbackScene(objectName, len(scenes)+1))
	}
	return scenes[:count], source
}

// externalDynamicScenes は外部段の1回分です。呼び出し失敗・空応答は
// エラーとして返し、状態機械を先へ進めます。
func (c *Cascade) externalDynamicScenes(ctx context.Context, objectName string, count int) ([]string, error) {
	if c.textGen == nil {
		return nil, errors.New("テキスト生成クライアントが設定されていません")
	}

	system, user, err := c.buildScenePair(
		prompts.ModeDynamicSceneSystem, prompts.ModeDynamicSceneUser,
		prompts.TemplateData{ObjectName: objectName, NumScenes: count})
	if err != nil {
		return nil, err
	}

	raw, err := c.textGen.Generate(ctx, TextRequest{
		SystemInstruction: system,
		UserMessage:       user,
		Model:             c.model,
		Temperature:       dynamicSceneTemperature,
		MaxTokens:         dynamicSceneMaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("外部サービスの呼び出しに失敗しました: %w", err)
	}

	scenes := parser.ParseScenes(raw, 0)
	if len(scenes) == 0 {
		return nil, errors.New("応答から有効なシーンを抽出できませんでした")
	}
	return scenes, nil
}

// DiverseScenes は多様性重視のシーン生成です。プールのマッチ結果を
// 例示として外部サービスに渡し、失敗時は汎用シーンへフォールバックします。
func (c *Cascade) DiverseScenes(ctx context.Context, objectName string, count int) []string {
	if c.textGen == nil {
		slog.Warn("外部サービスが未設定のため定義済みシーンを使用します", "object", objectName)
		return c.AppropriateScenes(ctx, objectName, false)
	}

	var examples []string
	if matched := c.pool.Match(objectName); len(matched) > 0 {
		examples = matched[:min(3, len(matched))]
	}
	var examplesText strings.Builder
	for _, ex := range examples {
		fmt.Fprintf(&examplesText, "- %s\n", ex)
	}

	system, user, err := c.buildScenePair(
		prompts.ModeDiverseSceneSystem, prompts.ModeDiverseSceneUser,
		prompts.TemplateData{
			ObjectName:   objectName,
			NumScenes:    count,
			ExamplesText: strings.TrimRight(examplesText.String(), "\n"),
		})
	if err == nil {
		raw, genErr := c.textGen.Generate(ctx, TextRequest{
			SystemInstruction: system,
			UserMessage:       user,
			Model:             c.model,
			Temperature:       diverseSceneTemperature,
			MaxTokens:         diverseSceneMaxTokens,
		})
		if genErr == nil {
			if scenes := parser.ParseScenes(raw, 0); len(scenes) > 0 {
				return scenes
			}
		} else {
			slog.Warn("多様シーン生成の外部呼び出しに失敗しました", "object", objectName, "error", genErr)
		}
	}

	// フォールバック: 汎用シーンにオブジェクト名を添える
	scenes := make([]string, len(scenepool.GeneralScenes))
	for i, s := range scenepool.GeneralScenes {
		scenes[i] = fmt.Sprintf("%s with %s", s, objectName)
	}
	return scenes
}

// RealisticPrompt は指定のオブジェクト・シーン・個数に対する写実的な
// 画像生成プロンプトを組み立てます。外部段が失敗した場合は固定の
// フォールバックテンプレートで代替し、エラーを返しません。
func (c *Cascade) RealisticPrompt(ctx context.Context, objectName, sceneType string, numObjects, minObjects, maxObjects int) domain.PromptRecord {
	numObjects = c.resolveObjectCount(numObjects, minObjects, maxObjects)

	data := prompts.TemplateData{
		ObjectName: objectName,
		SceneType:  sceneType,
		NumObjects: numObjects,
	}

	if c.textGen != nil {
		if system, user, err := c.buildScenePair(prompts.ModeRealisticSystem, prompts.ModeRealisticUser, data); err == nil {
			raw, genErr := c.textGen.Generate(ctx, TextRequest{
				SystemInstruction: system,
				UserMessage:       user,
				Model:             c.model,
				Temperature:       realisticTemperature,
				MaxTokens:         realisticMaxTokens,
			})
			if genErr == nil && strings.TrimSpace(raw) != "" {
				return domain.PromptRecord{
					Prompt:      strings.TrimSpace(raw),
					Scene:       sceneType,
					Object:      objectName,
					ObjectCount: numObjects,
				}
			}
			if genErr != nil {
				slog.Warn("写実プロンプト生成の外部呼び出しに失敗しました", "object", objectName, "error", genErr)
			}
		}
	}

	return c.fallbackRecord(prompts.ModeFallbackPrompt, objectName, sceneType, numObjects)
}

// SimplePrompt は1件の簡易プロンプトを生成します。シーンが未指定の場合は
// 動的生成（useLLM 時）または定義済み雛形から選び、外部応答を直接返すことは
// せず、常に固定テンプレートで包みます。
func (c *Cascade) SimplePrompt(ctx context.Context, objectName, sceneType string, numObjects int, useLLM bool) domain.PromptRecord {
	if objectName == "" {
		keys := c.pool.Keys()
		objectName = keys[c.rng.IntN(len(keys))]
	}
	numObjects = c.resolveObjectCount(numObjects, defaultMinObjects, defaultMaxObjects)

	if sceneType == "" {
		sceneType = c.pickScene(ctx, objectName, useLLM)
	}

	return c.fallbackRecord(prompts.ModeEnhancedFallback, objectName, sceneType, numObjects)
}

// pickScene はシーン未指定時の選択パスです。動的生成の結果には
// 多様性ガードを通してから乱択します。
func (c *Cascade) pickScene(ctx context.Context, objectName string, useLLM bool) string {
	if useLLM && c.textGen != nil {
		scenes, _ := c.DynamicScenes(ctx, objectName, 10)
		scenes = EnsureDiverse(scenes, objectName, DefaultMinUnique)
		return scenes[c.rng.IntN(len(scenes))]
	}

	defaults := DefaultDynamicScenes(objectName, 10)
	return defaults[c.rng.IntN(len(defaults))]
}

// SimplePrompts は定義済みシーン（または動的生成）から count 件の
// 写実プロンプトを一括生成します。動的生成が無効でプールに該当キーが
// ない場合のみ ErrUnsupportedObject を返します。
func (c *Cascade) SimplePrompts(ctx context.Context, objectName string, count int, useDynamicScenes bool) ([]domain.PromptRecord, error) {
	if !useDynamicScenes {
		if _, ok := c.pool.Scenes(objectName); !ok {
			return nil, fmt.Errorf("%w: %q (サポート対象: %s)",
				ErrUnsupportedObject, objectName, strings.Join(c.pool.Keys(), ", "))
		}
	}
	if count <= 0 {
		return []domain.PromptRecord{}, nil
	}

	var scenes []string
	if useDynamicScenes {
		scenes, _ = c.DynamicScenes(ctx, objectName, count)
	} else {
		scenes = c.AppropriateScenes(ctx, objectName, false)
	}

	// 件数が足りない場合は先頭から循環して補う
	base := len(scenes)
	for len(scenes) < count {
		scenes = append(scenes, scenes[len(scenes)%base])
	}

	records := make([]domain.PromptRecord, 0, count)
	for _, scene := range scenes[:count] {
		records = append(records, domain.PromptRecord{
			Prompt:      prompts.ComposePhotorealistic(scene),
			Scene:       scene,
			Object:      objectName,
			ObjectCount: 1,
		})
	}
	return records, nil
}

// FullyDynamicPrompts はプールに依存せず、任意のオブジェクトに対して
// count 件のプロンプトを生成します。個数はレコードごとに乱択されます。
func (c *Cascade) FullyDynamicPrompts(ctx context.Context, objectName string, count int) []domain.PromptRecord {
	scenes, _ := c.DynamicScenes(ctx, objectName, count)

	records := make([]domain.PromptRecord, 0, count)
	for _, scene := range scenes {
		numObjects := c.resolveObjectCount(0, defaultMinObjects, defaultMaxObjects)
		records = append(records, c.fallbackRecord(prompts.ModeEnhancedFallback, objectName, scene, numObjects))
	}
	return records
}

// LLMPromptOptions は LLMPrompts の生成パラメータです。
type LLMPromptOptions struct {
	Count            int
	MinObjects       int
	MaxObjects       int
	ExactObjects     int  // 正の場合は Min/Max より優先
	Advanced         bool // より具体的な撮影描写を要求する
	UseDynamicScenes bool
}

// LLMPrompts は LLM に情景描写をさせた上で固定テンプレートに流し込む
// 生成パスです。プール外のオブジェクトは外部サービスが使えれば動的生成へ
// 切り替え、使えなければ ErrUnsupportedObject を返します。
func (c *Cascade) LLMPrompts(ctx context.Context, objectName string, opts LLMPromptOptions) ([]domain.PromptRecord, error) {
	if opts.Count <= 0 {
		opts.Count = 1
	}
	if opts.MinObjects <= 0 {
		opts.MinObjects = defaultMinObjects
	}
	if opts.MaxObjects < opts.MinObjects {
		opts.MaxObjects = opts.MinObjects
	}

	if !opts.UseDynamicScenes {
		if _, ok := c.pool.Scenes(objectName); !ok {
			if c.textGen == nil {
				return nil, fmt.Errorf("%w: %q (サポート対象: %s)",
					ErrUnsupportedObject, objectName, strings.Join(c.pool.Keys(), ", "))
			}
			slog.Warn("定義済みマップにないオブジェクトのため動的生成へ切り替えます", "object", objectName)
			opts.UseDynamicScenes = true
		}
	}

	var scenes []string
	if opts.UseDynamicScenes {
		scenes, _ = c.DynamicScenes(ctx, objectName, opts.Count)
	} else {
		scenes = c.AppropriateScenes(ctx, objectName, false)
	}

	records := make([]domain.PromptRecord, 0, opts.Count)
	for i := 0; i < opts.Count; i++ {
		scene := scenes[i%len(scenes)]

		numObjects := opts.ExactObjects
		if numObjects <= 0 {
			numObjects = c.resolveObjectCount(0, opts.MinObjects, opts.MaxObjects)
		}

		records = append(records, c.llmPromptRecord(ctx, objectName, scene, numObjects, opts.Advanced))
	}
	return records, nil
}

// llmPromptRecord は1件分の LLM 情景描写とテンプレート適用を行います。
// 外部段が失敗した場合はフォールバックテンプレートで代替します。
func (c *Cascade) llmPromptRecord(ctx context.Context, objectName, scene string, numObjects int, advanced bool) domain.PromptRecord {
	if c.textGen == nil {
		return c.fallbackRecord(prompts.ModeFallbackPrompt, objectName, scene, numObjects)
	}

	countDesc := fmt.Sprintf("%d", numObjects)

	var instruction string
	if advanced {
		instruction = fmt.Sprintf(llmAdvancedInstructionFormat, countDesc, objectName, countDesc, objectName, scene)
	} else {
		instruction = fmt.Sprintf(llmSceneInstructionFormat, countDesc, objectName, scene)
	}

	raw, err := c.textGen.Generate(ctx, TextRequest{
		SystemInstruction: instruction,
		UserMessage:       "Generate a scene description.",
		Model:             c.model,
		Temperature:       llmPromptTemperature,
		MaxTokens:         llmPromptMaxTokens,
	})
	if err != nil || strings.TrimSpace(raw) == "" {
		if err != nil {
			slog.Warn("LLMプロンプト生成に失敗したためフォールバックします", "object", objectName, "error", err)
		}
		return c.fallbackRecord(prompts.ModeFallbackPrompt, objectName, scene, numObjects)
	}

	sceneDesc := strings.TrimSpace(raw)
	var promptText string
	if advanced {
		promptText = prompts.ComposeAdvanced(sceneDesc)
	} else {
		promptText = prompts.ComposeSimple(sceneDesc)
	}

	return domain.PromptRecord{
		Prompt:           promptText,
		Scene:            scene,
		SceneDescription: sceneDesc,
		Object:           objectName,
		ObjectCount:      numObjects,
	}
}

// fallbackRecord は固定テンプレートからレコードを組み立てる終端の安全網です。
// テンプレートは埋め込み済みで解析も初期化時に済んでいるため失敗しません。
func (c *Cascade) fallbackRecord(mode, objectName, sceneType string, numObjects int) domain.PromptRecord {
	prompt, err := c.composer.Build(mode, prompts.TemplateData{
		ObjectName: objectName,
		SceneType:  sceneType,
		NumObjects: numObjects,
	})
	if err != nil {
		// 起こり得ないが、念のため最低限のプロンプトで代替する
		slog.Error("フォールバックテンプレートの展開に失敗しました", "mode", mode, "error", err)
		prompt = fmt.Sprintf("An amateur smartphone photo of %d %s(s) in a %s.", numObjects, objectName, sceneType)
	}

	return domain.PromptRecord{
		Prompt:      prompt,
		Scene:       sceneType,
		Object:      objectName,
		ObjectCount: numObjects,
	}
}

// resolveObjectCount は未指定(0以下)の個数を [min, max] から乱択します。
func (c *Cascade) resolveObjectCount(numObjects, minObjects, maxObjects int) int {
	if numObjects > 0 {
		return numObjects
	}
	if minObjects <= 0 {
		minObjects = defaultMinObjects
	}
	if maxObjects < minObjects {
		maxObjects = minObjects
	}
	return minObjects + c.rng.IntN(maxObjects-minObjects+1)
}

// buildScenePair は system / user 両テンプレートをまとめて展開します。
func (c *Cascade) buildScenePair(systemMode, userMode string, data prompts.TemplateData) (string, string, error) {
	system, err := c.composer.Build(systemMode, data)
	if err != nil {
		return "", "", err
	}
	user, err := c.composer.Build(userMode, data)
	if err != nil {
		return "", "", err
	}
	return system, user, nil
}

func filterSaneScenes(scenes []string) []string {
	sane := make([]string, 0, len(scenes))
	for _, s := range scenes {
		if isSaneScene(s) {
			sane = append(sane, s)
		}
	}
	return sane
}

// isSaneScene は短いシーン文字列の最低限の妥当性を語数で判定します。
func isSaneScene(scene string) bool {
	n := len(strings.Fields(scene))
	return n >= minSceneWords && n <= maxSceneWords
}
