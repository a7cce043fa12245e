package token

// Named character reference resolution. The full HTML5 named-reference
// table has over 2000 entries; this carries the common subset actually
// encountered in authored content and in legacy (semicolon-less) form,
// keyed without their leading '&'. Unrecognized names fall through to
// the literal-ampersand behavior in consumeCharacterReference.
var namedCharRefs = map[string]string{
	"amp;": "&", "AMP;": "&", "lt;": "<", "LT;": "<", "gt;": ">", "GT;": ">",
	"quot;": "\"", "QUOT;": "\"", "apos;": "'",
	"nbsp;": " ", "NBSP;": " ",
	"copy;": "©", "COPY;": "©",
	"reg;": "®", "REG;": "®",
	"trade;": "™",
	"hellip;": "…",
	"mdash;": "—",
	"ndash;": "–",
	"lsquo;": "‘", "rsquo;": "’",
	"ldquo;": "“", "rdquo;": "”",
	"middot;": "·",
	"eacute;": "é", "Eacute;": "É",
	"egrave;": "è", "Egrave;": "È",
	"agrave;": "à", "Agrave;": "À",
	"ccedil;": "ç", "Ccedil;": "Ç",
	"uuml;": "ü", "Uuml;": "Ü",
	"ouml;": "ö", "Ouml;": "Ö",
	"auml;": "ä", "Auml;": "Ä",
	"szlig;": "ß",
	"deg;": "°", "plusmn;": "±",
	"times;": "×", "divide;": "÷",
	"frac12;": "½", "frac14;": "¼", "frac34;": "¾",
	"sup1;": "¹", "sup2;": "²", "sup3;": "³",
	"laquo;": "«", "raquo;": "»",
	"sect;": "§", "para;": "¶",
	"euro;": "€", "pound;": "£", "cent;": "¢", "yen;": "¥",
	"bull;": "•",
	"dagger;": "†", "Dagger;": "‡",
	"larr;": "←", "uarr;": "↑", "rarr;": "→", "darr;": "↓",
	"infin;": "∞", "ne;": "≠", "le;": "≤", "ge;": "≥",
	"alpha;": "α", "beta;": "β", "gamma;": "γ", "delta;": "δ",
	"pi;": "π", "sigma;": "σ", "omega;": "ω",
	"spades;": "♠", "clubs;": "♣", "hearts;": "♥", "diams;": "♦",
	"shy;": "­",
}

// namedCharRefsLegacy lists entity names the HTML5 tokenizer also
// recognizes without a trailing semicolon, for historical compatibility.
var namedCharRefsLegacy = map[string]string{
	"amp": "&", "AMP": "&", "lt": "<", "LT": "<", "gt": ">", "GT": ">",
	"quot": "\"", "QUOT": "\"", "nbsp": " ", "NBSP": " ",
	"copy": "©", "COPY": "©", "reg": "®", "REG": "®",
}

// longestNamedMatch scans src (which begins right after the triggering
// '&') for the longest named character reference it can match, returning
// the matched name (including ';' when present), its replacement text,
// and the number of runes consumed from src. consumed == 0 means no
// known name matched.
func longestNamedMatch(src []rune) (name, value string, consumed int) {
	maxLen := 32
	if len(src) < maxLen {
		maxLen = len(src)
	}
	// candidate run: letters/digits only, names never contain anything else
	runEnd := 0
	for runEnd < maxLen && isEntityNameRune(src[runEnd]) {
		runEnd++
	}
	withSemi := runEnd < len(src) && src[runEnd] == ';'
	if withSemi {
		candidate := string(src[:runEnd]) + ";"
		if v, ok := namedCharRefs[candidate]; ok {
			return candidate, v, runEnd + 1
		}
	}
	// try progressively shorter legacy (no-semicolon) prefixes
	for l := runEnd; l >= 2; l-- {
		candidate := string(src[:l])
		if v, ok := namedCharRefsLegacy[candidate]; ok {
			return candidate, v, l
		}
	}
	return "", "", 0
}

func isEntityNameRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
