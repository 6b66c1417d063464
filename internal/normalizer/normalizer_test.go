package normalizer

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "Empty", input: "", expected: ""},
		{name: "Only punctuation", input: " ,.;!? ", expected: ""},
		{name: "Lower case and punctuation", input: "Село Раевка, дом 5", expected: "село раевка дом 5"},
		{name: "Yo fold", input: "Посёлок Ёлкино", expected: "поселок елкино"},
		{name: "Decomposed yo", input: "Посе\u0308лок", expected: "поселок"},
		{name: "Hyphen kept", input: "Ростов-на-Дону", expected: "ростов-на-дону"},
		{name: "Whitespace collapse", input: "  ул.\tЛенина\n\n 12/3  ", expected: "ул ленина 12 3"},
		{name: "Latin", input: "Ufa Airport, Street 5", expected: "ufa airport street 5"},
		{name: "Foreign letters", input: "Straße №7", expected: "stra e 7"},
		{name: "Quotes and brackets", input: "«Раевский» (Альшеевский р-н)", expected: "раевский альшеевский р-н"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Normalize(tc.input))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"Село Раевка, дом 5",
		"Посёлок Ёлкино",
		"  Уфа — аэропорт «Уфа»  ",
		"İstanbul ß ǅ ﬁ ½ ٣",
		"Ростов-на-Дону, пр. Ленина 1/2",
		"  неразрывные пробелы",
	}

	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestBuildAliases(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		contains []string
		absent   []string
	}{
		{
			name:     "Abbreviated village",
			input:    "с. Раевка",
			contains: []string{"с раевка", "село раевка", "раевка"},
		},
		{
			name:     "Abbreviated hamlet",
			input:    "д. Шафеево",
			contains: []string{"д шафеево", "деревня шафеево", "шафеево"},
		},
		{
			name:     "Parenthesized qualifier",
			input:    "Ким (Альшеевский район)",
			contains: []string{"ким альшеевский район", "ким"},
		},
		{
			name:     "Whole word only",
			input:    "Сосновка",
			contains: []string{"сосновка"},
			absent:   []string{"селоосновка", "основка"},
		},
		{
			name:     "Settlement word stripped",
			input:    "Поселок Раевский",
			contains: []string{"поселок раевский", "раевский"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			aliases := BuildAliases(tc.input)
			for _, want := range tc.contains {
				assert.Contains(t, aliases, want)
			}
			for _, unwanted := range tc.absent {
				assert.NotContains(t, aliases, unwanted)
			}
			assertLongestFirst(t, aliases)
		})
	}
}

func TestBuildAliases_Empty(t *testing.T) {
	assert.Empty(t, BuildAliases(""))
	assert.Empty(t, BuildAliases(" ,. "))
}

func TestBuildAliases_NoDuplicates(t *testing.T) {
	aliases := BuildAliases("Раевка")
	assert.Equal(t, []string{"раевка"}, aliases)
}

func TestOrderLongestFirst(t *testing.T) {
	got := OrderLongestFirst([]string{"уфа", "", "уфа аэропорт", "уфа", "абв"})
	assert.Equal(t, []string{"уфа аэропорт", "абв", "уфа"}, got)
}

func assertLongestFirst(t *testing.T, aliases []string) {
	t.Helper()
	for i := 1; i < len(aliases); i++ {
		prev := utf8.RuneCountInString(aliases[i-1])
		cur := utf8.RuneCountInString(aliases[i])
		assert.GreaterOrEqual(t, prev, cur, "aliases not ordered: %v", aliases)
	}
}
