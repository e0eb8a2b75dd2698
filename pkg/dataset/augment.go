// Package dataset は学習用データセットの整形を担います。画像のリサイズ、
// ランダムな摂動による水増し、スタジオ取り込み形式へのZIPパッケージングを
// 提供します。
package dataset

import (
	"image"
	"image/color"
	"math/rand/v2"

	"github.com/disintegration/imaging"
)

// キャンバスの既定サイズ
const (
	DefaultWidth  = 640
	DefaultHeight = 480
)

// 各摂動の強度範囲
const (
	maxRotateDegrees  = 15.0
	maxBlurSigma      = 3.0
	minContrastFactor = 0.75
	maxContrastFactor = 1.5
	minBrightFactor   = 0.8
	maxBrightFactor   = 1.2
	maxNoiseFraction  = 0.05
	minCropFactor     = -0.05
	maxCropFactor     = 0.10
)

// Augmentor は1枚の画像にランダムな摂動を適用します。
// 乱数源を固定すれば出力は再現可能です。
type Augmentor struct {
	rng    *rand.Rand
	width  int
	height int
}

// NewAugmentor は指定シードの Augmentor を生成します。
func NewAugmentor(seed uint64, width, height int) *Augmentor {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return &Augmentor{
		rng:    rand.New(rand.NewPCG(seed, seed)),
		width:  width,
		height: height,
	}
}

// Apply は回転・切り抜き/余白・ぼかし・ノイズ・コントラスト・明度の摂動を
// ランダムな順序と強度で適用し、最後にキャンバスサイズへ整形します。
func (a *Augmentor) Apply(img image.Image) *image.NRGBA {
	ops := []func(image.Image) image.Image{
		a.rotate,
		a.cropOrPad,
		a.blur,
		a.noise,
		a.contrast,
		a.brightness,
	}
	a.rng.Shuffle(len(ops), func(i, j int) { ops[i], ops[j] = ops[j], ops[i] })

	out := img
	for _, op := range ops {
		out = op(out)
	}
	return a.Resize(out)
}

// Resize は摂動なしでキャンバスサイズへ整形します。縦横比を保ったまま
// 全体を覆うよう拡縮し、はみ出しを中央で切り落とします。
func (a *Augmentor) Resize(img image.Image) *image.NRGBA {
	return imaging.Fill(img, a.width, a.height, imaging.Center, imaging.Lanczos)
}

func (a *Augmentor) rotate(img image.Image) image.Image {
	angle := (a.rng.Float64()*2 - 1) * maxRotateDegrees
	return imaging.Rotate(img, angle, color.NRGBA{A: 255})
}

// cropOrPad は負の係数で端を切り落とし、正の係数で余白を加えます。
func (a *Augmentor) cropOrPad(img image.Image) image.Image {
	factor := minCropFactor + a.rng.Float64()*(maxCropFactor-minCropFactor)
	b := img.Bounds()
	w := b.Dx() + int(float64(b.Dx())*factor)
	h := b.Dy() + int(float64(b.Dy())*factor)
	if w < 1 || h < 1 {
		return img
	}

	if factor < 0 {
		return imaging.CropCenter(img, w, h)
	}
	canvas := imaging.New(w, h, color.NRGBA{A: 255})
	return imaging.PasteCenter(canvas, img)
}

func (a *Augmentor) blur(img image.Image) image.Image {
	sigma := a.rng.Float64() * maxBlurSigma
	if sigma < 0.1 {
		return img
	}
	return imaging.Blur(img, sigma)
}

// noise は各画素に一様な加法ノイズを与えます。imaging にノイズ処理はないため
// NRGBAバッファを直接操作します。
func (a *Augmentor) noise(img image.Image) image.Image {
	amplitude := a.rng.Float64() * maxNoiseFraction * 255
	if amplitude < 1 {
		return img
	}

	out := imaging.Clone(img)
	for i := 0; i < len(out.Pix); i += 4 {
		for c := 0; c < 3; c++ {
			delta := (a.rng.Float64()*2 - 1) * amplitude
			out.Pix[i+c] = clampUint8(float64(out.Pix[i+c]) + delta)
		}
	}
	return out
}

func (a *Augmentor) contrast(img image.Image) image.Image {
	factor := minContrastFactor + a.rng.Float64()*(maxContrastFactor-minContrastFactor)
	// imaging は -100..100 のパーセンテージ指定のため倍率から換算する
	return imaging.AdjustContrast(img, (factor-1)*100)
}

func (a *Augmentor) brightness(img image.Image) image.Image {
	factor := minBrightFactor + a.rng.Float64()*(maxBrightFactor-minBrightFactor)
	return imaging.AdjustBrightness(img, (factor-1)*100)
}

func clampUint8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
