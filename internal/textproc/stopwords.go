package textproc

// StopWords is a set of function words excluded from vocabularies and keyword sets.
type StopWords map[string]struct{}

// Contains reports whether word is a stop word.
func (s StopWords) Contains(word string) bool {
	_, ok := s[word]
	return ok
}

// Words returns the stop words as a slice in no particular order.
func (s StopWords) Words() []string {
	words := make([]string, 0, len(s))
	for word := range s {
		words = append(words, word)
	}
	return words
}

// NewStopWords builds a set from the given words, folded the same way tokens are.
func NewStopWords(words ...string) StopWords {
	set := make(StopWords, len(words))
	for _, word := range words {
		set[Fold(word)] = struct{}{}
	}
	return set
}

// English returns the common English stop word list.
func English() StopWords {
	return NewStopWords(englishStopWords...)
}

var englishStopWords = []string{
	"a", "about", "above", "after", "again", "against", "ain", "all", "am", "an", "and", "any", "are",
	"aren", "as", "at", "be", "because", "been", "before", "being", "below", "between", "both", "but",
	"by", "can", "couldn", "d", "did", "didn", "do", "does", "doesn", "doing", "don", "down", "during",
	"each", "few", "for", "from", "further", "had", "hadn", "has", "hasn", "have", "haven", "having",
	"he", "her", "here", "hers", "herself", "him", "himself", "his", "how", "i", "if", "in", "into",
	"is", "isn", "it", "its", "itself", "just", "ll", "m", "ma", "me", "mightn", "more", "most",
	"mustn", "my", "myself", "needn", "no", "nor", "not", "now", "o", "of", "off", "on", "once",
	"only", "or", "other", "our", "ours", "ourselves", "out", "over", "own", "re", "s", "same",
	"shan", "she", "should", "shouldn", "so", "some", "such", "t", "than", "that", "the", "their",
	"theirs", "them", "themselves", "then", "there", "these", "they", "this", "those", "through",
	"to", "too", "under", "until", "up", "ve", "very", "was", "wasn", "we", "were", "weren", "what",
	"when", "where", "which", "while", "who", "whom", "why", "will", "with", "won", "wouldn", "y",
	"you", "your", "yours", "yourself", "yourselves",
}
