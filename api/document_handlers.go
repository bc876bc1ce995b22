package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DocumentFailure reports one rejected document of a batch.
type DocumentFailure struct {
	Position int    `json:"position"`
	ID       *int   `json:"id,omitempty"`
	Error    string `json:"error"`
}

// AddDocumentsHandler ingests a single document object or an array of them.
// Documents are added in order; a rejected document does not affect the others.
func (api *API) AddDocumentsHandler(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	var docs []AddDocumentRequest
	trimmed := bytes.TrimSpace(body)
	batch := len(trimmed) > 0 && trimmed[0] == '['
	if batch {
		err = json.Unmarshal(trimmed, &docs)
	} else {
		var doc AddDocumentRequest
		err = json.Unmarshal(trimmed, &doc)
		docs = []AddDocumentRequest{doc}
	}
	if err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	if len(docs) == 0 {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidRequest, "No documents provided")
		return
	}

	if !batch {
		if result := ValidateAddDocumentRequest(docs[0]); result.HasErrors() {
			SendValidationError(c, result)
			return
		}
		if err := api.addDocument(docs[0]); err != nil {
			SendEngineError(c, "add document", ErrorCodeInvalidDocument, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"status":      "created",
			"document_id": *docs[0].ID,
		})
		return
	}

	var failures []DocumentFailure
	added := 0
	for i, doc := range docs {
		if result := ValidateAddDocumentRequest(doc); result.HasErrors() {
			failures = append(failures, DocumentFailure{Position: i, ID: doc.ID, Error: result.Errors[0].Message})
			continue
		}
		if err := api.addDocument(doc); err != nil {
			failures = append(failures, DocumentFailure{Position: i, ID: doc.ID, Error: err.Error()})
			continue
		}
		added++
	}

	status := http.StatusCreated
	switch {
	case added == 0:
		status = http.StatusBadRequest
	case len(failures) > 0:
		status = http.StatusMultiStatus
	}

	c.JSON(status, gin.H{
		"message":  fmt.Sprintf("%d of %d document(s) added", added, len(docs)),
		"added":    added,
		"failures": failures,
	})
}

func (api *API) addDocument(doc AddDocumentRequest) error {
	api.mu.Lock()
	defer api.mu.Unlock()

	err := api.engine.AddDocument(*doc.ID, doc.Text, doc.Status, doc.Ratings)
	api.metrics.ObserveIngest(err, api.engine.GetDocumentCount())
	if err != nil {
		api.logger.Debug("document rejected", zap.Int("document_id", *doc.ID), zap.Error(err))
	}
	return err
}

// GetDocumentCountHandler returns the number of indexed documents.
func (api *API) GetDocumentCountHandler(c *gin.Context) {
	api.mu.RLock()
	count := api.engine.GetDocumentCount()
	api.mu.RUnlock()

	c.JSON(http.StatusOK, gin.H{"document_count": count})
}

// GetDocumentIDHandler returns the id of the document ingested at the given position.
func (api *API) GetDocumentIDHandler(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		result := &ValidationResult{Valid: true}
		result.AddError("index", "Index must be an integer")
		SendValidationError(c, result)
		return
	}

	api.mu.RLock()
	documentID, err := api.engine.GetDocumentID(index)
	api.mu.RUnlock()
	if err != nil {
		SendEngineError(c, "get document id", ErrorCodeInvalidRequest, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"index":       index,
		"document_id": documentID,
	})
}
