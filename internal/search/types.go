package search

import "github.com/gcbaptista/search-server/model"

// candidateHit represents a document candidate during search processing
type candidateHit struct {
	documentID int
	score      float64
	rating     int
	status     model.DocumentStatus
}

func (c candidateHit) toDocument() model.Document {
	return model.Document{ID: c.documentID, Relevance: c.score, Rating: c.rating}
}
