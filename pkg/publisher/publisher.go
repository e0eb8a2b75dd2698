// Package publisher は生成された画像とプロンプトレコードの永続化、
// および閲覧用ギャラリー（Markdown/HTML）の出力を担います。
package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/shouni/go-dataset-kit/pkg/domain"

	imagedom "github.com/shouni/gemini-image-kit/pkg/domain"
	"github.com/shouni/go-remote-io/pkg/remoteio"
	"github.com/shouni/go-text-format/pkg/md2htmlrunner"
)

// Options はパブリッシュ動作を制御する設定項目です。
type Options struct {
	OutputDir string
	Title     string // ギャラリーの見出し。空の場合はオブジェクト名から組み立てる
}

// Item は保存対象の1組（画像とその生成メタデータ）です。
// Image が nil の場合はプロンプトレコードのみが記録されます。
type Item struct {
	Image  *imagedom.ImageResponse
	Record domain.PromptRecord
}

// PublishResult はパブリッシュ処理で生成されたファイルの情報を保持します。
type PublishResult struct {
	PromptsPath  string   // プロンプトレコードのJSONパス
	MarkdownPath string   // ギャラリーMarkdownのパス
	HTMLPath     string   // 変換後HTMLのパス（htmlRunner未設定時は空）
	ImagePaths   []string // 保存された全画像のパスリスト
}

const (
	defaultImageDirName = "images"
	galleryFileName     = "gallery.md"
	timestampLayout     = "20060102_150405"
)

// DatasetPublisher は成果物の永続化とフォーマット変換を担います。
// 書き込み先はローカル/GCSを writer が吸収します。
type DatasetPublisher struct {
	writer     remoteio.OutputWriter
	htmlRunner md2htmlrunner.Runner
	now        func() time.Time
}

// NewDatasetPublisher は DatasetPublisher を生成します。htmlRunner に nil を
// 渡すとHTML変換をスキップします。
func NewDatasetPublisher(writer remoteio.OutputWriter, htmlRunner md2htmlrunner.Runner) *DatasetPublisher {
	return &DatasetPublisher{
		writer:     writer,
		htmlRunner: htmlRunner,
		now:        time.Now,
	}
}

// Publish は画像の保存、プロンプトJSONの書き出し、ギャラリーの構築と
// HTML変換を一括して実行し、生成されたファイル情報を返却するのだ！
func (p *DatasetPublisher) Publish(ctx context.Context, objectName string, items []Item, opts Options) (PublishResult, error) {
	result := PublishResult{}

	imgDir, err := ResolveOutputPath(opts.OutputDir, defaultImageDirName)
	if err != nil {
		return result, err
	}

	// 1. 画像の保存
	saved, err := p.saveImages(ctx, objectName, items, imgDir)
	if err != nil {
		return result, fmt.Errorf("画像の書き込みに失敗しました: %w", err)
	}
	for _, s := range saved {
		result.ImagePaths = append(result.ImagePaths, s.FilePath)
	}

	// 2. プロンプトレコードの書き出し
	promptsPath, err := p.writePrompts(ctx, objectName, items, saved, opts.OutputDir)
	if err != nil {
		return result, err
	}
	result.PromptsPath = promptsPath

	// 3. ギャラリーMarkdownの構築と書き出し
	title := opts.Title
	if title == "" {
		title = fmt.Sprintf("%s dataset", objectName)
	}
	content := p.buildGallery(title, items, saved)

	markdownPath, err := ResolveOutputPath(opts.OutputDir, galleryFileName)
	if err != nil {
		return result, err
	}
	if err := p.writer.Write(ctx, markdownPath, strings.NewReader(content), "text/markdown; charset=utf-8"); err != nil {
		return result, fmt.Errorf("markdownファイルの書き込みに失敗しました: %w", err)
	}
	result.MarkdownPath = markdownPath

	// 4. HTML変換と保存
	if p.htmlRunner != nil {
		slog.Info("ギャラリーをHTMLへ変換します", "title", title)
		htmlBuffer, err := p.htmlRunner.Run(ctx, title, []byte(content))
		if err != nil {
			return result, fmt.Errorf("HTMLの変換に失敗しました: %w", err)
		}

		htmlPath := strings.TrimSuffix(markdownPath, filepath.Ext(markdownPath)) + ".html"
		if err := p.writer.Write(ctx, htmlPath, htmlBuffer, "text/html; charset=utf-8"); err != nil {
			return result, fmt.Errorf("HTMLファイルの書き込みに失敗しました: %w", err)
		}
		result.HTMLPath = htmlPath
	}

	return result, nil
}

// saveImages は画像データを保存し、保存済みメタデータの列を返します。
// 画像を持たない項目は読み飛ばします。
func (p *DatasetPublisher) saveImages(ctx context.Context, objectName string, items []Item, baseDir string) ([]domain.GeneratedImage, error) {
	ts := p.now().Format(timestampLayout)
	slug := sanitizeName(objectName)

	var saved []domain.GeneratedImage
	for i, item := range items {
		if item.Image == nil || len(item.Image.Data) == 0 {
			continue
		}
		name := fmt.Sprintf("%s_%03d_%s.png", ts, i+1, slug)
		fullPath, err := ResolveOutputPath(baseDir, name)
		if err != nil {
			return nil, fmt.Errorf("出力パスの解決に失敗しました: %w", err)
		}

		if err := p.writer.Write(ctx, fullPath, bytes.NewReader(item.Image.Data), "image/png"); err != nil {
			return nil, fmt.Errorf("画像の書き込みに失敗しました %s: %w", fullPath, err)
		}

		saved = append(saved, domain.GeneratedImage{
			FileName:    name,
			FilePath:    fullPath,
			Prompt:      item.Record.Prompt,
			Scene:       item.Record.Scene,
			Object:      item.Record.Object,
			ObjectCount: item.Record.ObjectCount,
		})
	}
	return saved, nil
}

// writePrompts はプロンプトレコードの配列をJSONとして書き出します。
func (p *DatasetPublisher) writePrompts(ctx context.Context, objectName string, items []Item, saved []domain.GeneratedImage, outputDir string) (string, error) {
	var payload any
	if len(saved) > 0 {
		payload = saved
	} else {
		records := make([]domain.PromptRecord, 0, len(items))
		for _, item := range items {
			records = append(records, item.Record)
		}
		payload = records
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("プロンプトレコードのJSON化に失敗しました: %w", err)
	}

	name := fmt.Sprintf("%s_prompts.json", sanitizeName(objectName))
	promptsPath, err := ResolveOutputPath(outputDir, name)
	if err != nil {
		return "", err
	}
	if err := p.writer.Write(ctx, promptsPath, bytes.NewReader(data), "application/json; charset=utf-8"); err != nil {
		return "", fmt.Errorf("プロンプトファイルの書き込みに失敗しました: %w", err)
	}
	return promptsPath, nil
}

// buildGallery はギャラリー用のMarkdown文字列を構築します。
func (p *DatasetPublisher) buildGallery(title string, items []Item, saved []domain.GeneratedImage) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s\n\n", title))

	imgIdx := 0
	for _, item := range items {
		if item.Image != nil && len(item.Image.Data) > 0 && imgIdx < len(saved) {
			img := saved[imgIdx]
			imgIdx++
			relPath := path.Join(defaultImageDirName, img.FileName)
			sb.WriteString(fmt.Sprintf("## %s\n\n", img.FileName))
			sb.WriteString(fmt.Sprintf("![%s](%s)\n\n", img.Object, relPath))
		} else {
			sb.WriteString(fmt.Sprintf("## %s\n\n", item.Record.Object))
		}

		sb.WriteString(fmt.Sprintf("- prompt: %s\n", item.Record.Prompt))
		sb.WriteString(fmt.Sprintf("- scene: %s\n", item.Record.Scene))
		sb.WriteString(fmt.Sprintf("- object_count: %d\n", item.Record.ObjectCount))
		sb.WriteString("\n")
	}
	return sb.String()
}

// sanitizeName はファイル名に使えるようオブジェクト名を変換します。
func sanitizeName(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "/", "_")
	return s
}
