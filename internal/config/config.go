package config

import (
	"time"

	"github.com/shouni/go-utils/envutil"
)

// デフォルト値の定義なのだ
const (
	DefaultModel       = "gemini-3-flash-preview"
	DefaultImageModel  = "gemini-3-pro-image-preview"
	DefaultHTTPTimeout = 30 * time.Second
	DefaultRateLimit   = 10 * time.Second // 画像生成リクエストの最小間隔
	DefaultOutputDir   = "output"
	DefaultCount       = 5
	DefaultMinObjects  = 1
	DefaultMaxObjects  = 3
	DefaultCanvasW     = 640
	DefaultCanvasH     = 480

	// DefaultNegativePrompt は写実データセットに混入させたくない要素の指定なのだ。
	DefaultNegativePrompt = "cartoon, illustration, 3d render, painting, drawing, anime, " +
		"text, letters, watermark, signature, logo, border, frame, low quality, distorted"
)

// Config はアプリケーション全体の環境設定（APIキーやクラウド設定）を保持する構造体なのだ。
type Config struct {
	ProjectID        string
	LocationID       string
	GeminiAPIKey     string
	GeminiModel      string
	GeminiImageModel string
	NegativePrompt   string

	Options GenerateOptions
}

// LoadConfig は環境変数から設定を読み込み、構造体を返すのだ！
func LoadConfig() *Config {
	cfg := &Config{
		ProjectID:        envutil.GetEnv("PROJECT_ID", ""),
		LocationID:       envutil.GetEnv("REGION", ""),
		GeminiAPIKey:     envutil.GetEnv("GEMINI_API_KEY", ""),
		GeminiModel:      envutil.GetEnv("GEMINI_MODEL", DefaultModel),
		GeminiImageModel: envutil.GetEnv("IMAGE_GEMINI_MODEL", DefaultImageModel),
		NegativePrompt:   envutil.GetEnv("NEGATIVE_PROMPT", DefaultNegativePrompt),
	}
	return cfg
}

// GenerateOptions は CLI フラグから渡される実行時のパラメータなのだ。
type GenerateOptions struct {
	// 生成対象
	Object     string // --object
	Count      int    // --count
	MinObjects int    // --min-objects
	MaxObjects int    // --max-objects
	NumObjects int    // --num-objects: 正の場合は範囲指定より優先

	// 出力設定
	OutputDir string // --output-dir（ローカル or gs://...）

	// AI挙動設定
	AIModel         string // --model: テキスト生成用のGeminiモデル
	ImageModel      string // --image-model: 画像生成用のGeminiモデル
	UseLLM          bool   // --use-llm / --no-llm
	AdvancedPrompts bool   // --advanced-prompts
	DynamicScenes   bool   // --dynamic-scenes: 定義済みマップ外のオブジェクトも許可する
	PromptsOnly     bool   // 画像生成を行わずJSONだけ出力する

	// データセット整形（prepare）関連
	InputDir   string // --input-dir
	OutputFile string // --output-file
	Width      int    // --width
	Height     int    // --height
	Augment    bool   // --augment
	NumImages  int    // --num-images
	Seed       uint64 // --seed

	// 実行制御
	HTTPTimeout time.Duration // --http-timeout
}
