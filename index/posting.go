package index

// PostingList maps a document ID to the term frequency of one token in that document.
// Term frequency is occurrences of the token divided by the document's token count.
type PostingList map[int]float64

// DocumentFrequency returns the number of documents carrying the token.
func (pl PostingList) DocumentFrequency() int {
	return len(pl)
}
