package generator

import (
	"fmt"

	"github.com/shouni/go-dataset-kit/pkg/scenepool"
)

// FallbackScene は照明・環境・地面の各テーブルから剰余添字で要素を選び、
// 決定論的な合成シーンを返します。同じオブジェクト名と位置添字の組み合わせは
// 常に同じシーンを生成します。
func FallbackScene(objectName string, index int) string {
	light := scenepool.LightingConditions[(index*7)%len(scenepool.LightingConditions)]
	env := scenepool.EnvironmentTypes[(index*3)%len(scenepool.EnvironmentTypes)]
	surf := scenepool.SurfaceTypes[(index*5)%len(scenepool.SurfaceTypes)]

	return fmt.Sprintf("%s %s with %s and %s", light, env, surf, objectName)
}

// DefaultDynamicScenes は定義済みシーン雛形にオブジェクト名を埋め込んだ
// 決定論的なシーン列を返します。雛形が尽きた後は、照明バリエーションを
// 先頭に付けて循環させることで要求件数まで埋めます。
func DefaultDynamicScenes(objectName string, numScenes int) []string {
	base := make([]string, len(scenepool.DefaultScenes))
	for i, tmpl := range scenepool.DefaultScenes {
		base[i] = fmt.Sprintf(tmpl, objectName)
	}

	n := min(numScenes, len(base))
	result := make([]string, 0, numScenes)
	result = append(result, base[:n]...)

	for len(result) < numScenes {
		idx := len(result) % len(base)
		lightVar := scenepool.LightingVariations[len(result)%len(scenepool.LightingVariations)]
		result = append(result, lightVar+" "+base[idx])
	}

	return result[:numScenes]
}
