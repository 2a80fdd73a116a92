package conjugation

// lexiconKey addresses a single irregular surface form.
type lexiconKey struct {
	root   string
	focus  Focus
	aspect Aspect
}

// lexicon holds the surface forms that cannot be derived from the regular
// phonological rules. It is built once at package initialization and never
// mutated, so concurrent readers need no synchronization. A miss is not an
// error; it means the regular rules apply.
//
// Extending the table is always additive: map a new (root, focus, aspect)
// key to its literal form.
var lexicon = map[lexiconKey]string{
	// dala drops the final root vowel before -hin; the regular rule would
	// produce "dalahin". The contemplated form reuses the irregular stem.
	{"dala", FocusIn, AspectInfinitive}:   "dalhin",
	{"dala", FocusIn, AspectContemplated}: "dadalhin",

	// kuha has an unpredictable stem change in the suffixed forms.
	{"kuha", FocusIn, AspectInfinitive}:   "kunin",
	{"kuha", FocusIn, AspectContemplated}: "kukunin",

	// punta takes MAG-focus semantics but surfaces with an um-style stem
	// (pumunta), not the rule-derived magpunta.
	{"punta", FocusMag, AspectInfinitive}:   "pumunta",
	{"punta", FocusMag, AspectCompleted}:    "pumunta",
	{"punta", FocusMag, AspectIncompleted}:  "pumupunta",
	{"punta", FocusMag, AspectContemplated}: "pupunta",
}

// lexiconLookup returns the overridden surface form for the triple, if any.
func lexiconLookup(root string, focus Focus, aspect Aspect) (string, bool) {
	form, ok := lexicon[lexiconKey{root: root, focus: focus, aspect: aspect}]
	return form, ok
}
