package dataset

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/disintegration/imaging"
)

// cameraDirName はスタジオ取り込み形式が要求するカメラ別ディレクトリ名です。
const cameraDirName = "Cam0"

// PrepareOptions はデータセット整形の設定項目です。
type PrepareOptions struct {
	Width     int
	Height    int
	Augment   bool   // 水増しを有効にする
	NumImages int    // 0以下の場合は入力枚数のまま
	Seed      uint64 // 水増しの乱数シード
}

// Prepare は srcDir の画像をキャンバスサイズへ整形（必要なら水増し）し、
// Cam0/N.png の形に並べ替えた上で outFile へZIPとして書き出します。
// 中間ファイルは一時ディレクトリに展開し、終了時に破棄します。
func Prepare(ctx context.Context, srcDir, outFile string, opts PrepareOptions) error {
	sources, err := listImages(srcDir)
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		return fmt.Errorf("%s に画像ファイルが見つかりません", srcDir)
	}

	total := opts.NumImages
	if total <= 0 {
		total = len(sources)
	}

	stageRoot, err := os.MkdirTemp("", "dataset-stage-*")
	if err != nil {
		return fmt.Errorf("一時ディレクトリの作成に失敗しました: %w", err)
	}
	defer os.RemoveAll(stageRoot)

	camDir := filepath.Join(stageRoot, cameraDirName)
	if err := os.MkdirAll(camDir, 0o755); err != nil {
		return fmt.Errorf("ステージングディレクトリの作成に失敗しました: %w", err)
	}

	augmentor := NewAugmentor(opts.Seed, opts.Width, opts.Height)

	slog.Info("データセットを整形します",
		"sources", len(sources), "total", total, "augment", opts.Augment)

	for i := 0; i < total; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		src := sources[i%len(sources)]
		img, err := imaging.Open(src)
		if err != nil {
			return fmt.Errorf("画像の読み込みに失敗しました %s: %w", src, err)
		}

		// 1周目はリサイズのみ、2周目以降は摂動を加えて水増しする
		out := augmentor.Resize(img)
		if opts.Augment && i >= len(sources) {
			out = augmentor.Apply(img)
		}

		dst := filepath.Join(camDir, fmt.Sprintf("%d.png", i))
		if err := imaging.Save(out, dst); err != nil {
			return fmt.Errorf("画像の書き出しに失敗しました %s: %w", dst, err)
		}
	}

	if err := writeZip(stageRoot, outFile); err != nil {
		return err
	}

	slog.Info("データセットZIPを作成しました", "path", outFile, "images", total)
	return nil
}

// listImages は対象ディレクトリ直下の画像ファイルをソート済みで返します。
func listImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("入力ディレクトリの読み取りに失敗しました: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".png", ".jpg", ".jpeg":
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// writeZip は root 以下のツリーを相対パスのままZIPへ格納します。
func writeZip(root, outFile string) error {
	if dir := filepath.Dir(outFile); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("出力ディレクトリの作成に失敗しました: %w", err)
		}
	}

	f, err := os.Create(outFile)
	if err != nil {
		return fmt.Errorf("ZIPファイルの作成に失敗しました: %w", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	defer zw.Close()

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		w, err := zw.Create(filepath.ToSlash(rel))
		if err != nil {
			return fmt.Errorf("ZIPエントリの作成に失敗しました %s: %w", rel, err)
		}

		src, err := os.Open(path)
		if err != nil {
			return err
		}
		defer src.Close()

		_, err = io.Copy(w, src)
		return err
	})
	if err != nil {
		return fmt.Errorf("ZIPへの書き込みに失敗しました: %w", err)
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("ZIPのクローズに失敗しました: %w", err)
	}
	return nil
}
