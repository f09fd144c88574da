package services

import "github.com/gosimple/slug"

// The default transliteration renders ю as "iu", я as "ia" and so on, which
// does not match the slug scheme the site's existing URLs were built with
// (ё→yo, й→y, х→h, щ→sch, ъ/ь dropped, ю→yu, я→ya). Registering the
// differing letters here keeps every generated slug on that scheme.
func init() {
	slug.CustomRuneSub = map[rune]string{
		'ё': "yo", 'Ё': "yo",
		'й': "y", 'Й': "y",
		'х': "h", 'Х': "h",
		'щ': "sch", 'Щ': "sch",
		'ъ': "", 'Ъ': "",
		'ь': "", 'Ь': "",
		'ю': "yu", 'Ю': "yu",
		'я': "ya", 'Я': "ya",
	}
}
