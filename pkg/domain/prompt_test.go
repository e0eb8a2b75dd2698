package domain

import (
	"encoding/json"
	"testing"
)

func TestPromptRecord_JSON(t *testing.T) {
	t.Run("下流が依存するフィールド名で出力されること", func(t *testing.T) {
		rec := PromptRecord{
			Prompt:      "An amateur smartphone photo of 2 empty can(s) in a kitchen counter.",
			Scene:       "kitchen counter",
			Object:      "empty can",
			ObjectCount: 2,
		}

		data, err := json.Marshal(rec)
		if err != nil {
			t.Fatalf("Marshal失敗: %v", err)
		}

		var m map[string]any
		if err := json.Unmarshal(data, &m); err != nil {
			t.Fatalf("Unmarshal失敗: %v", err)
		}

		for _, key := range []string{"prompt", "scene", "object", "object_count"} {
			if _, ok := m[key]; !ok {
				t.Errorf("フィールド %q が出力に含まれていません: %s", key, data)
			}
		}
		if m["object_count"].(float64) != 2 {
			t.Errorf("object_count の値が不正です: %v", m["object_count"])
		}
	})

	t.Run("scene_descriptionは未設定なら省略されること", func(t *testing.T) {
		data, err := json.Marshal(PromptRecord{Prompt: "p", Scene: "s", Object: "o", ObjectCount: 1})
		if err != nil {
			t.Fatalf("Marshal失敗: %v", err)
		}
		var m map[string]any
		if err := json.Unmarshal(data, &m); err != nil {
			t.Fatalf("Unmarshal失敗: %v", err)
		}
		if _, ok := m["scene_description"]; ok {
			t.Error("空の scene_description が省略されていません")
		}
	})
}
