package cmd

import (
	"fmt"
	"os"

	"github.com/shouni/go-dataset-kit/internal/config"

	clibase "github.com/shouni/go-cli-base"
	"github.com/spf13/cobra"
)

// opts は各サブコマンドで共有される実行時オプションなのだ。
var opts config.GenerateOptions

// addAppFlags は、アプリケーション全般に適用されるグローバルフラグを定義するのだ。
func addAppFlags(rootCmd *cobra.Command) {
	// --- 生成対象 ---
	rootCmd.PersistentFlags().StringVarP(&opts.Object, "object", "b", "empty can", "生成対象のオブジェクト名なのだ。")
	rootCmd.PersistentFlags().IntVarP(&opts.Count, "count", "n", config.DefaultCount, "生成するプロンプト/画像の件数なのだ。")
	rootCmd.PersistentFlags().IntVar(&opts.MinObjects, "min-objects", config.DefaultMinObjects, "1枚あたりのオブジェクト最小個数なのだ。")
	rootCmd.PersistentFlags().IntVar(&opts.MaxObjects, "max-objects", config.DefaultMaxObjects, "1枚あたりのオブジェクト最大個数なのだ。")
	rootCmd.PersistentFlags().IntVar(&opts.NumObjects, "num-objects", 0, "オブジェクト個数の固定値（指定時は範囲より優先）なのだ。")

	// --- 生成結果の出力設定 ---
	rootCmd.PersistentFlags().StringVarP(&opts.OutputDir, "output-dir", "o", config.DefaultOutputDir, "保存先ディレクトリ（ローカル or gs://...）なのだ。")

	// --- AIモデル・挙動設定 ---
	rootCmd.PersistentFlags().StringVar(&opts.AIModel, "model", config.DefaultModel, "テキスト生成に使う Gemini モデル名なのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.ImageModel, "image-model", config.DefaultImageModel, "画像生成に使う Gemini モデル名なのだ。")
	rootCmd.PersistentFlags().BoolVar(&opts.UseLLM, "use-llm", false, "LLMによるシーン記述生成を有効にするのだ。")
	rootCmd.PersistentFlags().BoolVar(&opts.AdvancedPrompts, "advanced-prompts", false, "より具体的な撮影描写を要求するのだ（--use-llm前提）。")
	rootCmd.PersistentFlags().BoolVar(&opts.DynamicScenes, "dynamic-scenes", false, "定義済みマップにないオブジェクトも動的生成で扱うのだ。")
	rootCmd.PersistentFlags().DurationVar(&opts.HTTPTimeout, "http-timeout", config.DefaultHTTPTimeout, "Webリクエストのタイムアウトなのだ。")
}

// applyModelOverrides は、フラグが明示的に指定された場合に限り
// 環境変数由来のモデル設定を上書きするのだ。未指定ならGEMINI_MODELや
// IMAGE_GEMINI_MODELの値がそのまま使われるのだよ。
func applyModelOverrides(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("model") {
		cfg.GeminiModel = opts.AIModel
	}
	if cmd.Flags().Changed("image-model") {
		cfg.GeminiImageModel = opts.ImageModel
	}
}

// preRunAppE は、コマンド実行前に環境変数などの必須チェックを行うのだ。
func preRunAppE(cmd *cobra.Command, args []string) error {
	// prepare は外部サービスを使わないのでキー不要なのだ
	if cmd.Name() == "prepare" {
		return nil
	}

	// プロンプトのみ・LLM不使用の組み合わせも外部サービスを呼ばないのだ
	if cmd.Name() == "prompts" && !opts.UseLLM {
		return nil
	}

	// Gemini APIを利用するため、APIキーの存在チェックは欠かせないのだ！
	if os.Getenv("GEMINI_API_KEY") == "" {
		return fmt.Errorf("エラー: 環境変数 GEMINI_API_KEY が設定されていません。Gemini APIの利用には必須なのだ")
	}

	return nil
}

// Execute は、アプリケーションのメインエントリポイントなのだ。
// main.go から呼び出されて、cobra のコマンドライン解析を開始するのだよ。
func Execute() {
	clibase.Execute(
		"go-dataset-kit",
		addAppFlags,
		preRunAppE,
		generateCmd,
		promptsCmd,
		prepareCmd,
		samplesCmd,
	)
}
