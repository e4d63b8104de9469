// Package canon holds the 66-book Protestant canon: ordinals, display
// abbreviations, names, chapter counts and the abbreviation lookup used to
// resolve operator-supplied book references.
package canon

import (
	"strings"
)

// Canon boundaries. Ordinals are 1-based and contiguous.
const (
	BookCount = 66
	OTFirst   = 1
	OTLast    = 39
	NTFirst   = 40
	NTLast    = 66
)

// Book describes one book of the canon.
type Book struct {
	Ordinal  int
	Abbrev   string // Display abbreviation used in output, e.g. "Ge", "Rev"
	Name     string
	OSIS     string
	Chapters int
	Aliases  []string
}

// books is indexed by ordinal-1.
var books = []Book{
	// Old Testament
	{1, "Ge", "Genesis", "Gen", 50, []string{"gn"}},
	{2, "Ex", "Exodus", "Exod", 40, []string{"exo"}},
	{3, "Le", "Leviticus", "Lev", 27, []string{"lv"}},
	{4, "Nu", "Numbers", "Num", 36, []string{"nm", "nb"}},
	{5, "De", "Deuteronomy", "Deut", 34, []string{"dt"}},
	{6, "Jos", "Joshua", "Josh", 24, []string{"jsh"}},
	{7, "Jdg", "Judges", "Judg", 21, []string{"jg"}},
	{8, "Ru", "Ruth", "Ruth", 4, []string{"rth"}},
	{9, "1Sa", "1 Samuel", "1Sam", 31, []string{"1sm"}},
	{10, "2Sa", "2 Samuel", "2Sam", 24, []string{"2sm"}},
	{11, "1Ki", "1 Kings", "1Kgs", 22, []string{"1kin"}},
	{12, "2Ki", "2 Kings", "2Kgs", 25, []string{"2kin"}},
	{13, "1Ch", "1 Chronicles", "1Chr", 29, []string{"1chron"}},
	{14, "2Ch", "2 Chronicles", "2Chr", 36, []string{"2chron"}},
	{15, "Ezr", "Ezra", "Ezra", 10, nil},
	{16, "Ne", "Nehemiah", "Neh", 13, nil},
	{17, "Es", "Esther", "Esth", 10, []string{"est"}},
	{18, "Job", "Job", "Job", 42, []string{"jb"}},
	{19, "Ps", "Psalms", "Ps", 150, []string{"psalm", "psa", "pss"}},
	{20, "Pr", "Proverbs", "Prov", 31, []string{"pro", "prv"}},
	{21, "Ec", "Ecclesiastes", "Eccl", 12, []string{"ecc", "qoh"}},
	{22, "So", "Song of Solomon", "Song", 8, []string{"sos", "songofsongs", "canticles"}},
	{23, "Isa", "Isaiah", "Isa", 66, []string{"is"}},
	{24, "Jer", "Jeremiah", "Jer", 52, []string{"je"}},
	{25, "La", "Lamentations", "Lam", 5, nil},
	{26, "Eze", "Ezekiel", "Ezek", 48, []string{"ezk"}},
	{27, "Da", "Daniel", "Dan", 12, []string{"dn"}},
	{28, "Ho", "Hosea", "Hos", 14, nil},
	{29, "Joe", "Joel", "Joel", 3, []string{"jl"}},
	{30, "Am", "Amos", "Amos", 9, nil},
	{31, "Ob", "Obadiah", "Obad", 1, nil},
	{32, "Jon", "Jonah", "Jonah", 4, []string{"jnh"}},
	{33, "Mic", "Micah", "Mic", 7, []string{"mi"}},
	{34, "Na", "Nahum", "Nah", 3, nil},
	{35, "Hab", "Habakkuk", "Hab", 3, nil},
	{36, "Zep", "Zephaniah", "Zeph", 3, []string{"zp"}},
	{37, "Hag", "Haggai", "Hag", 2, []string{"hg"}},
	{38, "Zec", "Zechariah", "Zech", 14, []string{"zc"}},
	{39, "Mal", "Malachi", "Mal", 4, []string{"ml"}},
	// New Testament
	{40, "Mt", "Matthew", "Matt", 28, []string{"mat"}},
	{41, "Mk", "Mark", "Mark", 16, []string{"mr", "mrk"}},
	{42, "Lk", "Luke", "Luke", 24, []string{"lu"}},
	{43, "Jn", "John", "John", 21, []string{"jhn"}},
	{44, "Ac", "Acts", "Acts", 28, []string{"act"}},
	{45, "Ro", "Romans", "Rom", 16, []string{"rm"}},
	{46, "1Co", "1 Corinthians", "1Cor", 16, nil},
	{47, "2Co", "2 Corinthians", "2Cor", 13, nil},
	{48, "Ga", "Galatians", "Gal", 6, nil},
	{49, "Eph", "Ephesians", "Eph", 6, nil},
	{50, "Php", "Philippians", "Phil", 4, []string{"pp"}},
	{51, "Col", "Colossians", "Col", 4, nil},
	{52, "1Th", "1 Thessalonians", "1Thess", 5, nil},
	{53, "2Th", "2 Thessalonians", "2Thess", 3, nil},
	{54, "1Ti", "1 Timothy", "1Tim", 6, nil},
	{55, "2Ti", "2 Timothy", "2Tim", 4, nil},
	{56, "Tit", "Titus", "Titus", 3, nil},
	{57, "Phm", "Philemon", "Phlm", 1, []string{"philem"}},
	{58, "Heb", "Hebrews", "Heb", 13, nil},
	{59, "Jas", "James", "Jas", 5, []string{"jm"}},
	{60, "1Pe", "1 Peter", "1Pet", 5, []string{"1pt"}},
	{61, "2Pe", "2 Peter", "2Pet", 3, []string{"2pt"}},
	{62, "1Jn", "1 John", "1John", 5, []string{"1jo", "1jhn"}},
	{63, "2Jn", "2 John", "2John", 1, []string{"2jo", "2jhn"}},
	{64, "3Jn", "3 John", "3John", 1, []string{"3jo", "3jhn"}},
	{65, "Jude", "Jude", "Jude", 1, []string{"jud"}},
	{66, "Rev", "Revelation", "Rev", 22, []string{"re", "apocalypse"}},
}

// lookup maps a normalized key to a zero-based book index.
var lookup = buildLookup()

func buildLookup() map[string]int {
	m := make(map[string]int, len(books)*5)
	for i, b := range books {
		keys := append([]string{b.Abbrev, b.Name, b.OSIS}, b.Aliases...)
		for _, k := range keys {
			m[normalize(k)] = i
		}
	}
	return m
}

// normalize lowercases and drops spaces and periods, so "1 Sam.", "1sam"
// and "1Sa" compare on the same footing.
func normalize(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if r == ' ' || r == '.' || r == '\t' {
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// ParseBookAbbrev resolves an abbreviation, OSIS id or full name to a
// zero-based book index. Matching is case-insensitive.
func ParseBookAbbrev(s string) (int, bool) {
	key := normalize(s)
	if key == "" {
		return 0, false
	}
	i, ok := lookup[key]
	return i, ok
}

// BookByOrdinal returns the book with the given 1-based ordinal.
func BookByOrdinal(ordinal int) (Book, bool) {
	if ordinal < 1 || ordinal > BookCount {
		return Book{}, false
	}
	return books[ordinal-1], true
}

// BookByOSIS returns the book with the given OSIS id (case-insensitive).
func BookByOSIS(id string) (Book, bool) {
	for _, b := range books {
		if strings.EqualFold(b.OSIS, id) {
			return b, true
		}
	}
	return Book{}, false
}

// Abbrev returns the display abbreviation for an ordinal, or "" when out of range.
func Abbrev(ordinal int) string {
	b, ok := BookByOrdinal(ordinal)
	if !ok {
		return ""
	}
	return b.Abbrev
}

// Name returns the full name for an ordinal, or "" when out of range.
func Name(ordinal int) string {
	b, ok := BookByOrdinal(ordinal)
	if !ok {
		return ""
	}
	return b.Name
}

// Abbrevs returns the display abbreviations indexed by ordinal-1.
func Abbrevs() []string {
	out := make([]string, len(books))
	for i, b := range books {
		out[i] = b.Abbrev
	}
	return out
}

// Books returns a copy of the canon in canonical order.
func Books() []Book {
	out := make([]Book, len(books))
	copy(out, books)
	return out
}

// Testament returns "OT" or "NT" for a valid ordinal, "" otherwise.
func Testament(ordinal int) string {
	switch {
	case ordinal >= OTFirst && ordinal <= OTLast:
		return "OT"
	case ordinal >= NTFirst && ordinal <= NTLast:
		return "NT"
	default:
		return ""
	}
}
