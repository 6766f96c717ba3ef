package icon

// Icon identifies a symbol in the registry.
type Icon int

const (
	Success Icon = iota
	Fail
	Progress
	Play
	Pause
	Muted
	Volume
	Fullscreen
	Link
	Key
)

var icons = map[Icon]*iconDef{
	Success: {
		emoji:   "✅",
		nerd:    "",
		plain:   "✓",
		kaomoji: "(ᵔ◡ᵔ)",
		squares: "🟩",
	},
	Fail: {
		emoji:   "❌",
		nerd:    "",
		plain:   "✖",
		kaomoji: "(╥﹏╥)",
		squares: "🟥",
	},
	Progress: {
		emoji:   "⏳",
		nerd:    "",
		plain:   "…",
		kaomoji: "(・_・ヾ",
		squares: "🟨",
	},
	Play: {
		emoji:   "▶️",
		nerd:    "",
		plain:   "▶",
		kaomoji: "(ﾉ◕ヮ◕)ﾉ",
		squares: "🟦",
	},
	Pause: {
		emoji:   "⏸️",
		nerd:    "",
		plain:   "❚❚",
		kaomoji: "(－_－) zzZ",
		squares: "⬜",
	},
	Muted: {
		emoji:   "🔇",
		nerd:    "",
		plain:   "x",
		kaomoji: "(・ー・)",
		squares: "⬛",
	},
	Volume: {
		emoji:   "🔊",
		nerd:    "",
		plain:   "♪",
		kaomoji: "♪(´▽｀)",
		squares: "🟪",
	},
	Fullscreen: {
		emoji:   "⛶",
		nerd:    "",
		plain:   "□",
		kaomoji: "[¬º-°]¬",
		squares: "🔲",
	},
	Link: {
		emoji:   "🔗",
		nerd:    "",
		plain:   "→",
		kaomoji: "(☞ﾟヮﾟ)☞",
		squares: "🟫",
	},
	Key: {
		emoji:   "🔑",
		nerd:    "",
		plain:   "*",
		kaomoji: "(⌐■_■)",
		squares: "🟧",
	},
}
