package conjugation

import "strings"

// Focus handlers. Each is a pure function from (root, aspect) to a surface
// form, built from the phonology primitives. Aspect validity is checked by
// the dispatcher, so the trailing switch cases are exhaustive.

// magForm conjugates in the MAG actor-focus paradigm, the most regular of
// the three: mag-/nag- prefixation plus reduplication for the incompleted
// and contemplated aspects.
func magForm(root string, aspect Aspect) string {
	switch aspect {
	case AspectInfinitive:
		return AttachPrefix("mag", root)
	case AspectCompleted:
		return AttachPrefix("nag", root)
	case AspectIncompleted:
		return AttachPrefix("nag", Reduplicate(root))
	default: // AspectContemplated
		return AttachPrefix("mag", Reduplicate(root))
	}
}

// umForm conjugates in the UM actor-focus paradigm. The infinitive and
// completed aspects share one surface form (Tagalog UM does not distinguish
// them morphologically), and the contemplated form carries no um morpheme
// at all.
func umForm(root string, aspect Aspect) string {
	switch aspect {
	case AspectInfinitive, AspectCompleted:
		return InsertInfix(root, "um")
	case AspectIncompleted:
		return InsertInfix(Reduplicate(root), "um")
	default: // AspectContemplated
		return Reduplicate(root)
	}
}

// inForm conjugates in the IN object-focus paradigm, by far the most
// irregular: suffix choice depends on the final vowel and on whether the
// initial consonant is a liquid, and the completed form branches three ways
// on the root's first character.
func inForm(root string, aspect Aspect) string {
	switch aspect {
	case AspectInfinitive:
		return inInfinitive(root)
	case AspectCompleted:
		return inCompleted(root)
	case AspectIncompleted:
		return inIncompleted(root)
	default: // AspectContemplated
		return inContemplated(root)
	}
}

// inInfinitive selects between the -in and -hin suffixes and applies the
// regular sound changes:
//
//	liquid-initial root ending in o/u:  raise the vowel, suffix -in  (luto -> lutuin)
//	other root ending in o/u:           raise the vowel, suffix -hin (takbo -> takbuhin)
//	root ending in a/e/i:               suffix -hin                  (basa -> basahin)
//	consonant-final root:               d->r, raise vowel, suffix -in (lakad -> lakarin)
func inInfinitive(root string) string {
	if root == "" {
		return root
	}
	if endsInVowel(root) {
		last := root[len(root)-1]
		if last == 'o' || last == 'u' {
			if isLiquid(root[0]) {
				return RaiseFinalVowel(root) + "in"
			}
			return RaiseFinalVowel(root) + "hin"
		}
		return root + "hin"
	}
	return RaiseFinalVowel(SoftenFinalD(root)) + "in"
}

// inCompleted branches on the root's first character:
// vowel-initial roots take the in- prefix (inom -> ininom), liquid-initial
// roots take ni- (luto -> niluto), everything else infixes -in-
// (kain -> kinain).
func inCompleted(root string) string {
	if root == "" {
		return root
	}
	if IsVowel(root[0]) {
		return "in" + root
	}
	if isLiquid(root[0]) {
		return "ni" + root
	}
	return InsertInfix(root, "in")
}

// inIncompleted derives the progressive form from the completed form so the
// two stay consistent: a ni- completed form keeps its prefix around the
// reduplicated root (niluluto), anything else infixes -in- into the
// reduplication (kinakain, binabasa).
func inIncompleted(root string) string {
	if root == "" {
		return root
	}
	if strings.HasPrefix(inCompleted(root), "ni") {
		return "ni" + Reduplicate(root)
	}
	return InsertInfix(Reduplicate(root), "in")
}

// inContemplated builds the future form compositionally as
// firstSyllable(root) + infinitive(root), which keeps it consistent with the
// infinitive's suffix logic without any string substitution
// (luto -> lu + lutuin -> lulutuin, kain -> ka + kainin -> kakainin).
func inContemplated(root string) string {
	return FirstSyllable(root) + inInfinitive(root)
}
