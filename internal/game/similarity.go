package game

import (
	"strings"
	"unicode"
)

// answerSimilar reports whether a guess should count as matching the answer
// key. Checks run cheapest-first: exact match, containment either way, a
// Ratcliff-Obershelp ratio of at least 0.7, then word overlap covering at
// least 60% of the key's distinct words.
func answerSimilar(answerKey, guess string) bool {
	key := strings.ToLower(strings.TrimSpace(answerKey))
	g := strings.ToLower(strings.TrimSpace(guess))

	if key == g {
		return true
	}
	if key != "" && g != "" && (strings.Contains(key, g) || strings.Contains(g, key)) {
		return true
	}
	if similarityRatio(key, g) >= 0.7 {
		return true
	}

	keyWords := wordSet(key)
	guessWords := wordSet(g)
	common := 0
	for w := range guessWords {
		if keyWords[w] {
			common++
		}
	}
	return common > 0 && float64(common) >= float64(len(keyWords))*0.6
}

func wordSet(s string) map[string]bool {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

// similarityRatio computes the Ratcliff-Obershelp similarity of two strings:
// twice the total length of recursively matched blocks over the combined
// length, in [0, 1].
func similarityRatio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	if len(ra)+len(rb) == 0 {
		return 1
	}
	matched := matchedLen(ra, rb)
	return 2 * float64(matched) / float64(len(ra)+len(rb))
}

// matchedLen sums the longest common substring and, recursively, the matches
// in the pieces on either side of it.
func matchedLen(a, b []rune) int {
	ai, bi, size := longestCommonSubstring(a, b)
	if size == 0 {
		return 0
	}
	total := size
	total += matchedLen(a[:ai], b[:bi])
	total += matchedLen(a[ai+size:], b[bi+size:])
	return total
}

func longestCommonSubstring(a, b []rune) (ai, bi, size int) {
	if len(a) == 0 || len(b) == 0 {
		return 0, 0, 0
	}
	// lengths[j] is the match length ending at a[i], b[j].
	lengths := make([]int, len(b)+1)
	for i := 0; i < len(a); i++ {
		prev := 0
		for j := 0; j < len(b); j++ {
			cur := lengths[j+1]
			if a[i] == b[j] {
				lengths[j+1] = prev + 1
				if lengths[j+1] > size {
					size = lengths[j+1]
					ai = i - size + 1
					bi = j - size + 1
				}
			} else {
				lengths[j+1] = 0
			}
			prev = cur
		}
	}
	return ai, bi, size
}
