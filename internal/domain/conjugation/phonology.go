package conjugation

import "strings"

// Phonological primitives shared by the focus handlers. All functions are
// total over strings: an empty input yields an empty (or unchanged) output
// rather than an error. Roots are expected in lowercase Latin orthography;
// characters outside a-z are treated as consonants.

// IsVowel reports whether c is one of the five Tagalog vowels.
func IsVowel(c byte) bool {
	switch c {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	default:
		return false
	}
}

// isLiquid reports whether c is a liquid consonant (l or r), which triggers
// the ni- prefix and the -in suffix branch in the IN paradigm.
func isLiquid(c byte) bool {
	return c == 'l' || c == 'r'
}

// FirstVowelIndex returns the index of the first vowel in root,
// or -1 if root contains no vowel.
func FirstVowelIndex(root string) int {
	for i := 0; i < len(root); i++ {
		if IsVowel(root[i]) {
			return i
		}
	}
	return -1
}

// FirstSyllable returns the leading substring of root up to and including
// its first vowel (a CV heuristic). Vowel-initial roots yield just their
// first character. Roots without a vowel are returned unchanged.
func FirstSyllable(root string) string {
	i := FirstVowelIndex(root)
	if i < 0 {
		return root
	}
	return root[:i+1]
}

// Reduplicate prepends the first syllable of root to root, the pattern
// Tagalog uses for the incompleted and contemplated aspects
// (luto -> luluto, kain -> kakain).
func Reduplicate(root string) string {
	return FirstSyllable(root) + root
}

// InsertInfix places infix immediately after the first consonant of root
// (kain + um -> kumain). Vowel-initial roots have no infix position, so the
// infix becomes a plain prefix (alis + um -> umalis).
func InsertInfix(root, infix string) string {
	if root == "" {
		return root
	}
	if IsVowel(root[0]) {
		return infix + root
	}
	return root[:1] + infix + root[1:]
}

// AttachPrefix joins prefix and stem, inserting the orthographic hyphen
// Tagalog requires before a vowel-initial stem (mag + aral -> mag-aral).
func AttachPrefix(prefix, stem string) string {
	if stem != "" && IsVowel(stem[0]) {
		return prefix + "-" + stem
	}
	return prefix + stem
}

// RaiseFinalVowel changes the last o or u in root to u, the regular
// vowel-raising rule that applies before the -in/-hin suffixes
// (luto -> lutu, inom -> inum). Roots without an o or u are unchanged.
func RaiseFinalVowel(root string) string {
	for i := len(root) - 1; i >= 0; i-- {
		if root[i] == 'o' || root[i] == 'u' {
			return root[:i] + "u" + root[i+1:]
		}
	}
	return root
}

// SoftenFinalD changes a final d to r, the regular sound change that applies
// before -in suffixation (lakad -> lakar). Other roots are unchanged.
func SoftenFinalD(root string) string {
	if strings.HasSuffix(root, "d") {
		return root[:len(root)-1] + "r"
	}
	return root
}

// endsInVowel reports whether the root's final character is a vowel,
// which governs the choice between the -in and -hin suffixes.
func endsInVowel(root string) bool {
	return root != "" && IsVowel(root[len(root)-1])
}
