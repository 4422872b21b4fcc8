package pricing

// FallbackTableVersion identifies the shipped fallback table so support can
// tell which curation a deployment is running.
const FallbackTableVersion = "2026-08"

// FallbackPrices is the hand-curated name → price table consulted when the
// live catalog has no usable entry for an item (absent, or present with a
// 0 price meaning "no trade data"). Entries are advisory: they never
// overwrite a non-zero live price. Keys are normalized (lowercase, trimmed).
//
// This is the single canonical table; historical deployments carried several
// conflicting copies and the values here are the ones a domain owner signed
// off on. Keep it sorted so diffs stay reviewable.
var FallbackPrices = map[string]int{
	"abyssal whip":        1_800_000,
	"amulet of fury":      2_500_000,
	"amulet of glory":     12_000,
	"armadyl godsword":    16_000_000,
	"bandos chestplate":   14_000_000,
	"bandos tassets":      17_000_000,
	"barrows gloves":      130_000,
	"black mask":          800_000,
	"cooked karambwan":    450,
	"dragon boots":        180_000,
	"dragon claws":        55_000_000,
	"dragon dagger":       17_000,
	"dragon defender":     35_000,
	"dragon scimitar":     60_000,
	"dragonfire shield":   1_200_000,
	"fire cape":           0, // untradeable, listed so lookups stop at 0 deliberately
	"granite maul":        35_000,
	"lobster":             180,
	"manta ray":           1_400,
	"monkfish":            400,
	"nature rune":         100,
	"old school bond":     5_000_000,
	"prayer potion(4)":    10_000,
	"ranger boots":        30_000_000,
	"rune arrow":          60,
	"rune platebody":      38_000,
	"rune scimitar":       15_000,
	"saradomin brew(4)":   6_000,
	"shark":               800,
	"super restore(4)":    11_000,
	"toktz-ket-xil":       40_000,
	"twisted bow":         1_100_000_000,
	"zamorakian spear":    11_000_000,
}

// FallbackPrice looks up a normalized name in the fallback table.
func FallbackPrice(normalizedName string) (int, bool) {
	p, ok := FallbackPrices[normalizedName]
	return p, ok
}
