package scenepool

import "strings"

// Entry はオブジェクト名キーと、そのオブジェクトに適したシーン候補の組です。
// シーンの並び順は選択時の優先順位として扱われます。
type Entry struct {
	Key    string
	Scenes []string
}

// Pool は定義済みシーンの読み取り専用コレクションです。
// キーの定義順がマッチングの走査順を決めるため、スライスで保持します。
// プロセス起動時に一度だけ構築され、以降は変更されません。
type Pool struct {
	entries []Entry
	index   map[string]int // 小文字化したキー → entries の添字
}

// New は与えられたエントリ列からプールを構築します。
func New(entries []Entry) *Pool {
	index := make(map[string]int, len(entries))
	for i, e := range entries {
		index[strings.ToLower(e.Key)] = i
	}
	return &Pool{entries: entries, index: index}
}

// Default は組み込みのオブジェクト別シーンマップからプールを構築します。
func Default() *Pool {
	return New(objectSceneEntries)
}

// Keys は定義順のキー一覧を返します。
func (p *Pool) Keys() []string {
	keys := make([]string, len(p.entries))
	for i, e := range p.entries {
		keys[i] = e.Key
	}
	return keys
}

// Scenes は小文字化した完全一致キーに対応するシーン列を返します。
func (p *Pool) Scenes(key string) ([]string, bool) {
	i, ok := p.index[strings.ToLower(key)]
	if !ok {
		return nil, false
	}
	return p.entries[i].Scenes, true
}

// objectSceneEntries は散乱物検出データセット向けの定義済みシーンマップです。
var objectSceneEntries = []Entry{
	{Key: "empty can", Scenes: []string{
		"roadside gutter with fallen leaves and an aluminum can",
		"park bench with a crushed soda can underneath",
		"kitchen counter next to a recycling bag",
		"beach sand near a driftwood log",
		"office desk beside a computer keyboard",
		"vending machine corner with cigarette butts",
		"riverside embankment with tall grass",
		"parking lot asphalt near a concrete wheel stop",
		"convenience store entrance with a trash bin",
		"picnic table with leftover food wrappers",
	}},
	{Key: "plastic bottle", Scenes: []string{
		"riverbank mud with reeds and debris",
		"gym floor beside a workout bench",
		"car seat with scattered receipts",
		"hiking trail edge with exposed roots",
		"supermarket parking lot near a cart return",
		"school courtyard by a drinking fountain",
		"bedroom nightstand with a reading lamp",
		"bus stop shelter with a worn bench",
		"drainage ditch beside a country road",
	}},
	{Key: "glass bottle", Scenes: []string{
		"bar counter with dim pendant lighting",
		"alleyway behind a restaurant with crates",
		"backyard patio table after a party",
		"rocky shoreline between tide pools",
		"basement shelf with dusty jars",
		"campfire site with a ring of stones",
		"apartment balcony railing at dusk",
	}},
	{Key: "paper cup", Scenes: []string{
		"office break room counter with a coffee machine",
		"sidewalk cafe table with napkins",
		"stadium bleachers after an event",
		"train station platform near a pillar",
		"food court table with plastic trays",
		"conference room table with notepads",
	}},
	{Key: "cigarette butt", Scenes: []string{
		"building entrance near a standing ashtray",
		"sidewalk crack with sparse weeds",
		"balcony floor with a metal railing",
		"gravel shoulder of a quiet road",
		"smoking area bench with painted lines",
	}},
	{Key: "snack wrapper", Scenes: []string{
		"movie theater floor between seat rows",
		"school desk with pencil shavings",
		"hiking trail with packed dirt",
		"car floor mat with dried mud",
		"playground sandpit beside a swing set",
		"couch cushion gap in a living room",
	}},
	{Key: "plastic bag", Scenes: []string{
		"chain-link fence with a snagged bag",
		"supermarket checkout counter",
		"windy street corner with scattered litter",
		"kitchen pantry shelf with groceries",
		"roadside hedge with tangled branches",
	}},
	{Key: "cardboard box", Scenes: []string{
		"apartment hallway beside a door",
		"warehouse loading dock with pallets",
		"garage corner with tools",
		"curbside on collection day",
		"attic floor with old furniture",
		"storefront back entrance with flattened boxes",
	}},
	{Key: "newspaper", Scenes: []string{
		"front porch step in early morning light",
		"subway seat with fingerprints on the window",
		"cafe table with a half-finished coffee",
		"recycling bin overflowing at a curb",
		"park bench held down by a stone",
	}},
	{Key: "food container", Scenes: []string{
		"office desk during an overtime evening",
		"picnic blanket on patchy grass",
		"refrigerator shelf with condiment jars",
		"takeout counter with paper bags",
		"dormitory sink with unwashed dishes",
	}},
}

// GeneralScenes はどのオブジェクトにも合致しなかった場合の汎用シーンです。
var GeneralScenes = []string{
	"urban street with litter",
	"park area",
	"kitchen counter",
	"office desk",
	"parking lot",
	"riverside or beach",
	"grassy field",
	"restaurant table",
	"store shelf",
	"bedroom floor",
}

// DefaultScenes は %s にオブジェクト名を埋め込んで使うシーン雛形です。
var DefaultScenes = []string{
	"kitchen counter with %s",
	"bathroom corner with %s",
	"office desk with %s",
	"bedroom with %s on nightstand",
	"storage room with %s",
	"apartment hallway with %s",
	"attic with %s",
	"classroom with %s",
	"restaurant booth with %s",
	"hotel room with %s",
	"urban street with %s",
	"park bench with %s",
	"parking lot with %s",
	"beach with %s",
	"backyard with %s",
	"bus stop with %s",
	"alleyway with %s",
	"highway underpass with %s",
}

// 合成フォールバックシーンの構成要素。添字演算で決定論的に組み合わせます。
var (
	EnvironmentTypes = []string{
		"kitchen", "bathroom", "office", "bedroom", "living room", "hallway",
		"basement", "attic", "garage", "classroom", "restaurant", "store",
		"urban", "park", "roadside", "beach", "forest", "sidewalk", "backyard", "alley",
	}

	SurfaceTypes = []string{
		"tile", "linoleum", "carpet", "hardwood", "concrete", "counter", "table", "desk", "shelf",
		"asphalt", "grass", "sand", "gravel", "mud", "pavement", "dirt", "stone",
	}

	LightingConditions = []string{
		"dimly lit", "brightly lit", "naturally lit", "artificially lit", "shadowy",
		"sunlit", "fluorescent-lit", "evening", "morning", "noon", "dusk", "dawn",
	}
)

// LightingVariations はデフォルトシーンを水増しする際に先頭へ付ける照明語です。
var LightingVariations = []string{
	"underexposed", "overexposed", "shadow-filled", "harshly lit",
	"unevenly lit", "poorly lit", "backlit", "side-lit",
}
