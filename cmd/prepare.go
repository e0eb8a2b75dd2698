package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-dataset-kit/internal/config"
	"github.com/shouni/go-dataset-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// prepareCmd は、既存画像をスタジオ取り込み形式のZIPへ整形するのだ。
var prepareCmd = &cobra.Command{
	Use:   "prepare",
	Short: "既存画像をリサイズ・水増しして学習用ZIPに整形しますなのだ。",
	Long: `ディレクトリ内の画像をキャンバスサイズへ整形し、必要に応じてランダムな
摂動で水増しした上で Cam0/N.png の構成でZIPにまとめるのだ。
外部サービスには依存しないのだよ。`,
	RunE: prepareCommand,
}

func init() {
	prepareCmd.Flags().StringVarP(&opts.InputDir, "input-dir", "i", "", "整形対象の画像があるディレクトリなのだ。")
	prepareCmd.Flags().StringVarP(&opts.OutputFile, "output-file", "f", "dataset.zip", "出力するZIPファイルのパスなのだ。")
	prepareCmd.Flags().IntVar(&opts.Width, "width", config.DefaultCanvasW, "キャンバスの幅なのだ。")
	prepareCmd.Flags().IntVar(&opts.Height, "height", config.DefaultCanvasH, "キャンバスの高さなのだ。")
	prepareCmd.Flags().BoolVar(&opts.Augment, "augment", false, "ランダムな摂動による水増しを有効にするのだ。")
	prepareCmd.Flags().IntVar(&opts.NumImages, "num-images", 0, "水増し後の総枚数（0で入力枚数のまま）なのだ。")
	prepareCmd.Flags().Uint64Var(&opts.Seed, "seed", 1, "水増しの乱数シードなのだ。")
}

func prepareCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg := config.LoadConfig()
	cfg.Options = opts

	slog.Info("データセット整形を開始するのだ",
		"input", opts.InputDir,
		"output", opts.OutputFile,
		"augment", opts.Augment)

	if err := pipeline.ExecutePrepare(ctx, cfg); err != nil {
		return fmt.Errorf("データセット整形中にエラーが発生したのだ: %w", err)
	}

	slog.Info("データセットZIPの作成が完了したのだ！")
	return nil
}
