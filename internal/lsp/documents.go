package lsp

import (
	"sync"

	"github.com/jsvensson/colorspaces/internal/color"
)

// document is an open document and its analysis, computed on first use.
type document struct {
	content string
	result  *AnalysisResult
	palette map[string]color.RGB // last non-empty palette seen for this URI
}

// DocumentStore holds open document contents keyed by URI.
type DocumentStore struct {
	mu   sync.Mutex
	docs map[string]*document
}

func NewDocumentStore() *DocumentStore {
	return &DocumentStore{docs: make(map[string]*document)}
}

func (s *DocumentStore) Open(uri, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[uri] = &document{content: content}
}

// Update replaces the content and drops any cached analysis. The last
// resolved palette is carried over.
func (s *DocumentStore) Update(uri, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := &document{content: content}
	if old, ok := s.docs[uri]; ok {
		doc.palette = old.palette
		if old.result != nil && len(old.result.Palette) > 0 {
			doc.palette = old.result.Palette
		}
	}
	s.docs[uri] = doc
}

func (s *DocumentStore) Close(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, uri)
}

func (s *DocumentStore) Get(uri string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[uri]
	if !ok {
		return "", false
	}
	return doc.content, true
}

// Analysis returns the analysis of the document's current content, or nil
// if the document is not open.
func (s *DocumentStore) Analysis(uri string) *AnalysisResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[uri]
	if !ok {
		return nil
	}
	return doc.analysis(uri)
}

// Palette returns the palette of the current content. While the document
// doesn't resolve one, for instance mid-way through typing a reference, the
// last palette that did is returned instead.
func (s *DocumentStore) Palette(uri string) map[string]color.RGB {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[uri]
	if !ok {
		return nil
	}
	if result := doc.analysis(uri); len(result.Palette) > 0 {
		return result.Palette
	}
	return doc.palette
}

// analysis must be called with the store lock held.
func (d *document) analysis(uri string) *AnalysisResult {
	if d.result == nil {
		d.result = Analyze(uri, d.content)
	}
	return d.result
}
