package conjugation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConjugateMag(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		root     string
		aspect   Aspect
		expected string
	}{
		{name: "infinitive", root: "luto", aspect: AspectInfinitive, expected: "magluto"},
		{name: "infinitive vowel-initial gets hyphen", root: "aral", aspect: AspectInfinitive, expected: "mag-aral"},
		{name: "completed", root: "luto", aspect: AspectCompleted, expected: "nagluto"},
		{name: "completed vowel-initial", root: "aral", aspect: AspectCompleted, expected: "nag-aral"},
		{name: "incompleted reduplicates", root: "luto", aspect: AspectIncompleted, expected: "nagluluto"},
		{name: "incompleted vowel-initial", root: "aral", aspect: AspectIncompleted, expected: "nag-aaral"},
		{name: "contemplated reduplicates", root: "luto", aspect: AspectContemplated, expected: "magluluto"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			form, err := Conjugate(tc.root, FocusMag, tc.aspect)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, form)
		})
	}
}

func TestConjugateUm(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		root     string
		aspect   Aspect
		expected string
	}{
		{name: "infinitive infixes um", root: "kain", aspect: AspectInfinitive, expected: "kumain"},
		{name: "completed shares infinitive form", root: "kain", aspect: AspectCompleted, expected: "kumain"},
		{name: "incompleted", root: "kain", aspect: AspectIncompleted, expected: "kumakain"},
		{name: "contemplated has no um morpheme", root: "kain", aspect: AspectContemplated, expected: "kakain"},
		{name: "vowel-initial infinitive takes um as prefix", root: "alis", aspect: AspectInfinitive, expected: "umalis"},
		{name: "vowel-initial incompleted", root: "alis", aspect: AspectIncompleted, expected: "umaalis"},
		{name: "vowel-initial contemplated", root: "alis", aspect: AspectContemplated, expected: "aalis"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			form, err := Conjugate(tc.root, FocusUm, tc.aspect)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, form)
		})
	}
}

func TestConjugateIn(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		root     string
		aspect   Aspect
		expected string
	}{
		// Infinitive suffix selection.
		{name: "liquid-initial o-final raises vowel and takes in", root: "luto", aspect: AspectInfinitive, expected: "lutuin"},
		{name: "non-liquid o-final raises vowel and takes hin", root: "takbo", aspect: AspectInfinitive, expected: "takbuhin"},
		{name: "a-final takes hin", root: "basa", aspect: AspectInfinitive, expected: "basahin"},
		{name: "consonant-final softens d and raises vowel", root: "lakad", aspect: AspectInfinitive, expected: "lakarin"},
		{name: "consonant-final with o raises vowel", root: "inom", aspect: AspectInfinitive, expected: "inumin"},

		// Completed prefix/infix selection.
		{name: "vowel-initial completed takes in prefix", root: "inom", aspect: AspectCompleted, expected: "ininom"},
		{name: "liquid-initial completed takes ni prefix", root: "luto", aspect: AspectCompleted, expected: "niluto"},
		{name: "liquid-initial completed lakad", root: "lakad", aspect: AspectCompleted, expected: "nilakad"},
		{name: "default completed infixes in", root: "kain", aspect: AspectCompleted, expected: "kinain"},
		{name: "default completed basa", root: "basa", aspect: AspectCompleted, expected: "binasa"},

		// Incompleted derives from completed.
		{name: "ni completed keeps prefix around reduplication", root: "luto", aspect: AspectIncompleted, expected: "niluluto"},
		{name: "default incompleted infixes into reduplication", root: "kain", aspect: AspectIncompleted, expected: "kinakain"},
		{name: "incompleted basa", root: "basa", aspect: AspectIncompleted, expected: "binabasa"},
		{name: "vowel-initial incompleted", root: "inom", aspect: AspectIncompleted, expected: "iniinom"},

		// Contemplated composes reduplication with the infinitive.
		{name: "contemplated luto", root: "luto", aspect: AspectContemplated, expected: "lulutuin"},
		{name: "contemplated kain", root: "kain", aspect: AspectContemplated, expected: "kakainin"},
		{name: "contemplated inom", root: "inom", aspect: AspectContemplated, expected: "iinumin"},
		{name: "contemplated lakad", root: "lakad", aspect: AspectContemplated, expected: "lalakarin"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			form, err := Conjugate(tc.root, FocusIn, tc.aspect)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, form)
		})
	}
}

func TestConjugateLexiconOverrides(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		root     string
		focus    Focus
		aspect   Aspect
		expected string
	}{
		{name: "dala infinitive drops root vowel", root: "dala", focus: FocusIn, aspect: AspectInfinitive, expected: "dalhin"},
		{name: "dala contemplated reuses irregular stem", root: "dala", focus: FocusIn, aspect: AspectContemplated, expected: "dadalhin"},
		{name: "dala completed stays regular", root: "dala", focus: FocusIn, aspect: AspectCompleted, expected: "dinala"},
		{name: "kuha stem change", root: "kuha", focus: FocusIn, aspect: AspectInfinitive, expected: "kunin"},
		{name: "kuha contemplated", root: "kuha", focus: FocusIn, aspect: AspectContemplated, expected: "kukunin"},
		{name: "kuha completed stays regular", root: "kuha", focus: FocusIn, aspect: AspectCompleted, expected: "kinuha"},
		{name: "punta infinitive uses um-style stem", root: "punta", focus: FocusMag, aspect: AspectInfinitive, expected: "pumunta"},
		{name: "punta completed", root: "punta", focus: FocusMag, aspect: AspectCompleted, expected: "pumunta"},
		{name: "punta incompleted", root: "punta", focus: FocusMag, aspect: AspectIncompleted, expected: "pumupunta"},
		{name: "punta contemplated", root: "punta", focus: FocusMag, aspect: AspectContemplated, expected: "pupunta"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			form, err := Conjugate(tc.root, tc.focus, tc.aspect)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, form)
		})
	}
}

func TestConjugateInvalidArguments(t *testing.T) {
	t.Parallel()

	_, err := Conjugate("luto", Focus("maka"), AspectInfinitive)
	assert.ErrorIs(t, err, ErrInvalidFocus)

	_, err = Conjugate("luto", FocusMag, Aspect("recent"))
	assert.ErrorIs(t, err, ErrInvalidAspect)

	_, err = Conjugate("luto", Focus(""), Aspect(""))
	assert.ErrorIs(t, err, ErrInvalidFocus)
}

// Totality: every focus/aspect pair yields a non-empty form for non-empty
// roots, and the empty root degrades to a deterministic string rather than
// an error.
func TestConjugateTotality(t *testing.T) {
	t.Parallel()

	roots := []string{"luto", "kain", "basa", "inom", "aral", "alis", "lakad", "takbo", "dala", "kuha", "punta", "sulat"}

	for _, root := range roots {
		for _, focus := range Focuses() {
			for _, aspect := range Aspects() {
				form, err := Conjugate(root, focus, aspect)
				require.NoError(t, err, "root=%s focus=%s aspect=%s", root, focus, aspect)
				assert.NotEmpty(t, form, "root=%s focus=%s aspect=%s", root, focus, aspect)
			}
		}
	}

	for _, focus := range Focuses() {
		for _, aspect := range Aspects() {
			_, err := Conjugate("", focus, aspect)
			assert.NoError(t, err, "empty root must not fail for focus=%s aspect=%s", focus, aspect)
		}
	}
}

// Determinism: repeated calls with identical arguments return identical
// strings regardless of call history.
func TestConjugateDeterminism(t *testing.T) {
	t.Parallel()

	for _, focus := range Focuses() {
		for _, aspect := range Aspects() {
			first, err := Conjugate("luto", focus, aspect)
			require.NoError(t, err)
			for i := 0; i < 3; i++ {
				again, err := Conjugate("luto", focus, aspect)
				require.NoError(t, err)
				assert.Equal(t, first, again)
			}
		}
	}
}

// Structural consistency for roots without lexicon overrides. MAG
// reduplication surfaces intact, so the incompleted form repeats the first
// syllable verbatim. UM and IN infix after the initial consonant, splitting
// the first copy of the reduplicated syllable (kakain -> kumakain), so for
// those the check is the infix-split shape: the form ends with the root and
// the reduplicated vowel residue sits directly before it. The contemplated
// form always ends with the IN infinitive's suffix.
func TestConjugateStructuralConsistency(t *testing.T) {
	t.Parallel()

	roots := []string{"luto", "kain", "basa", "sulat", "inom", "aral"}

	for _, root := range roots {
		vowelResidue := FirstSyllable(root)[len(FirstSyllable(root))-1:]

		magIncompleted, err := Conjugate(root, FocusMag, AspectIncompleted)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, strings.Count(magIncompleted, FirstSyllable(root)), 2,
			"incompleted %q of %s/mag should repeat the first syllable", magIncompleted, root)

		for _, focus := range []Focus{FocusUm, FocusIn} {
			incompleted, err := Conjugate(root, focus, AspectIncompleted)
			require.NoError(t, err)
			assert.True(t, strings.HasSuffix(incompleted, root),
				"incompleted %q of %s/%s should end with the root", incompleted, root, focus)
			assert.Contains(t, incompleted, vowelResidue+root,
				"incompleted %q of %s/%s should keep the reduplicated vowel before the root",
				incompleted, root, focus)
		}

		infinitive, err := Conjugate(root, FocusIn, AspectInfinitive)
		require.NoError(t, err)
		contemplated, err := Conjugate(root, FocusIn, AspectContemplated)
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(contemplated, infinitive),
			"contemplated %q should end with the infinitive %q", contemplated, infinitive)
	}
}

func TestParseFocusAndAspect(t *testing.T) {
	t.Parallel()

	focus, err := ParseFocus("mag")
	require.NoError(t, err)
	assert.Equal(t, FocusMag, focus)

	_, err = ParseFocus("benefactive")
	assert.ErrorIs(t, err, ErrInvalidFocus)

	aspect, err := ParseAspect("contemplated")
	require.NoError(t, err)
	assert.Equal(t, AspectContemplated, aspect)

	_, err = ParseAspect("past")
	assert.ErrorIs(t, err, ErrInvalidAspect)
}
