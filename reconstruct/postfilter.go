package reconstruct

import (
	"net/url"
	"strings"
)

// boilerplate link labels that never carry content.
var linkNoise = map[string]bool{
	"home":       true,
	"log in":     true,
	"login":      true,
	"sign in":    true,
	"sign up":    true,
	"register":   true,
	"subscribe":  true,
	"contact":    true,
	"contact us": true,
	"about":      true,
	"about us":   true,
	"read more":  true,
	"learn more": true,
	"next":       true,
	"previous":   true,
	"back":       true,
	"share":      true,
	"print":      true,
}

// isoLangCodes holds the ISO 639-1 two-letter language codes. A first path
// segment matching one of these marks a language-switcher link.
var isoLangCodes = map[string]bool{
	"aa": true, "ab": true, "ae": true, "af": true, "ak": true, "am": true,
	"an": true, "ar": true, "as": true, "av": true, "ay": true, "az": true,
	"ba": true, "be": true, "bg": true, "bh": true, "bi": true, "bm": true,
	"bn": true, "bo": true, "br": true, "bs": true, "ca": true, "ce": true,
	"ch": true, "co": true, "cr": true, "cs": true, "cu": true, "cv": true,
	"cy": true, "da": true, "de": true, "dv": true, "dz": true, "ee": true,
	"el": true, "en": true, "eo": true, "es": true, "et": true, "eu": true,
	"fa": true, "ff": true, "fi": true, "fj": true, "fo": true, "fr": true,
	"fy": true, "ga": true, "gd": true, "gl": true, "gn": true, "gu": true,
	"gv": true, "ha": true, "he": true, "hi": true, "ho": true, "hr": true,
	"ht": true, "hu": true, "hy": true, "hz": true, "ia": true, "id": true,
	"ie": true, "ig": true, "ii": true, "ik": true, "io": true, "is": true,
	"it": true, "iu": true, "ja": true, "jv": true, "ka": true, "kg": true,
	"ki": true, "kj": true, "kk": true, "kl": true, "km": true, "kn": true,
	"ko": true, "kr": true, "ks": true, "ku": true, "kv": true, "kw": true,
	"ky": true, "la": true, "lb": true, "lg": true, "li": true, "ln": true,
	"lo": true, "lt": true, "lu": true, "lv": true, "mg": true, "mh": true,
	"mi": true, "mk": true, "ml": true, "mn": true, "mr": true, "ms": true,
	"mt": true, "my": true, "na": true, "nb": true, "nd": true, "ne": true,
	"ng": true, "nl": true, "nn": true, "no": true, "nr": true, "nv": true,
	"ny": true, "oc": true, "oj": true, "om": true, "or": true, "os": true,
	"pa": true, "pi": true, "pl": true, "ps": true, "pt": true, "qu": true,
	"rm": true, "rn": true, "ro": true, "ru": true, "rw": true, "sa": true,
	"sc": true, "sd": true, "se": true, "sg": true, "si": true, "sk": true,
	"sl": true, "sm": true, "sn": true, "so": true, "sq": true, "sr": true,
	"ss": true, "st": true, "su": true, "sv": true, "sw": true, "ta": true,
	"te": true, "tg": true, "th": true, "ti": true, "tk": true, "tl": true,
	"tn": true, "to": true, "tr": true, "ts": true, "tt": true, "tw": true,
	"ty": true, "ug": true, "uk": true, "ur": true, "uz": true, "ve": true,
	"vi": true, "vo": true, "wa": true, "wo": true, "xh": true, "yi": true,
	"yo": true, "za": true, "zh": true, "zu": true,
}

// langNames marks link labels that are language names, in English or in the
// language itself, which identify language-switcher links wherever they
// point.
var langNames = map[string]bool{
	"english": true, "german": true, "french": true, "spanish": true,
	"italian": true, "portuguese": true, "dutch": true, "russian": true,
	"japanese": true, "chinese": true, "korean": true, "arabic": true,
	"hindi": true, "polish": true, "turkish": true, "swedish": true,
	"norwegian": true, "danish": true, "finnish": true, "czech": true,
	"greek": true, "hebrew": true, "thai": true, "vietnamese": true,
	"indonesian": true, "ukrainian": true, "romanian": true,
	"hungarian": true,

	"deutsch": true, "français": true, "francais": true, "español": true,
	"espanol": true, "italiano": true, "português": true, "portugues": true,
	"nederlands": true, "русский": true, "日本語": true, "中文": true,
	"한국어": true, "العربية": true, "polski": true, "türkçe": true,
	"turkce": true, "svenska": true, "norsk": true, "dansk": true,
	"suomi": true, "čeština": true, "cestina": true, "ελληνικά": true,
	"עברית": true, "ไทย": true, "tiếng việt": true, "українська": true,
	"română": true, "romana": true, "magyar": true,
}

// isLangSegment reports whether a path segment is an ISO 639-1 language
// code, optionally carrying a region suffix as in "en-us".
func isLangSegment(segment string) bool {
	if lang, _, ok := strings.Cut(segment, "-"); ok {
		return isoLangCodes[lang]
	}
	return isoLangCodes[segment]
}

// isLanguageLink reports whether a link is a language-switcher entry: its
// href's first path segment is a language code, or its label is a language
// name.
func isLanguageLink(item Item) bool {
	if u, err := url.Parse(strings.ToLower(item.Href)); err == nil {
		segment, _, _ := strings.Cut(strings.Trim(u.Path, "/"), "/")
		if segment != "" && isLangSegment(segment) {
			return true
		}
	}
	return langNames[strings.ToLower(strings.TrimSpace(item.Text))]
}

// filterLinks drops noise links, language-switcher links, and all but the
// first occurrence of each href. Non-link items pass through untouched.
func filterLinks(items []Item) []Item {
	seenHref := make(map[string]bool)
	out := items[:0]
	for _, item := range items {
		if item.Type != ItemLink {
			out = append(out, item)
			continue
		}
		if linkNoise[strings.ToLower(item.Text)] {
			continue
		}
		if isLanguageLink(item) {
			continue
		}
		if seenHref[item.Href] {
			continue
		}
		seenHref[item.Href] = true
		out = append(out, item)
	}
	return out
}
