package generator

import (
	"context"
	"fmt"
	"strings"

	"github.com/shouni/go-gemini-client/pkg/gemini"
)

// GeminiTextGenerator は gemini.GenerativeModel を TextGenerator 契約へ
// 適合させるアダプターです。システム指示とユーザーメッセージを1つの
// プロンプトへ連結して送信します。温度やトークン上限はクライアント側の
// 設定に従うため、要求ごとの指定は参考値として扱われます。
type GeminiTextGenerator struct {
	client gemini.GenerativeModel
}

// NewGeminiTextGenerator はアダプターを生成します。
func NewGeminiTextGenerator(client gemini.GenerativeModel) *GeminiTextGenerator {
	return &GeminiTextGenerator{client: client}
}

// Generate は TextGenerator インターフェースを実装します。
func (g *GeminiTextGenerator) Generate(ctx context.Context, req TextRequest) (string, error) {
	var sb strings.Builder
	if req.SystemInstruction != "" {
		sb.WriteString(req.SystemInstruction)
		sb.WriteString("\n\n")
	}
	sb.WriteString(req.UserMessage)

	resp, err := g.client.GenerateContent(ctx, sb.String(), req.Model)
	if err != nil {
		return "", fmt.Errorf("Gemini APIの呼び出しに失敗しました: %w", err)
	}
	return resp.Text, nil
}
