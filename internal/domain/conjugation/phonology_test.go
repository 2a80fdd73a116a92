package conjugation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirstVowelIndex(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		root     string
		expected int
	}{
		{name: "consonant-initial root", root: "luto", expected: 1},
		{name: "vowel-initial root", root: "aral", expected: 0},
		{name: "consonant cluster", root: "prito", expected: 2},
		{name: "no vowels", root: "psst", expected: -1},
		{name: "empty string", root: "", expected: -1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, FirstVowelIndex(tc.root))
		})
	}
}

func TestFirstSyllable(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		root     string
		expected string
	}{
		{name: "CV syllable", root: "luto", expected: "lu"},
		{name: "vowel-initial root yields single character", root: "aral", expected: "a"},
		{name: "consonant cluster", root: "prito", expected: "pri"},
		{name: "no vowels returns root unchanged", root: "psst", expected: "psst"},
		{name: "empty string", root: "", expected: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, FirstSyllable(tc.root))
		})
	}
}

func TestReduplicate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		root     string
		expected string
	}{
		{name: "consonant-initial root", root: "luto", expected: "luluto"},
		{name: "vowel-initial root", root: "inom", expected: "iinom"},
		{name: "empty string", root: "", expected: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, Reduplicate(tc.root))
		})
	}
}

func TestInsertInfix(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		root     string
		infix    string
		expected string
	}{
		{name: "um after first consonant", root: "kain", infix: "um", expected: "kumain"},
		{name: "in after first consonant", root: "basa", infix: "in", expected: "binasa"},
		{name: "vowel-initial root takes infix as prefix", root: "alis", infix: "um", expected: "umalis"},
		{name: "empty string unchanged", root: "", infix: "um", expected: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, InsertInfix(tc.root, tc.infix))
		})
	}
}

func TestAttachPrefix(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		prefix   string
		stem     string
		expected string
	}{
		{name: "consonant-initial stem", prefix: "mag", stem: "luto", expected: "magluto"},
		{name: "vowel-initial stem gets hyphen", prefix: "mag", stem: "aral", expected: "mag-aral"},
		{name: "empty stem", prefix: "mag", stem: "", expected: "mag"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, AttachPrefix(tc.prefix, tc.stem))
		})
	}
}

func TestRaiseFinalVowel(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		root     string
		expected string
	}{
		{name: "final o raised", root: "luto", expected: "lutu"},
		{name: "non-final o raised when last of its kind", root: "inom", expected: "inum"},
		{name: "final u unchanged in value", root: "basu", expected: "basu"},
		{name: "no o or u", root: "kain", expected: "kain"},
		{name: "empty string", root: "", expected: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, RaiseFinalVowel(tc.root))
		})
	}
}

func TestSoftenFinalD(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "lakar", SoftenFinalD("lakad"))
	assert.Equal(t, "luto", SoftenFinalD("luto"), "non-d final character unchanged")
	assert.Equal(t, "", SoftenFinalD(""), "empty string unchanged")
}
