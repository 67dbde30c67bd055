package search

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/mapping"
)

// buildIndexMapping creates the Bleve mapping for entry documents:
// analyzed text for title and notes, keywords for exact kind/id filters,
// numerics for year and rating ranges.
func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = en.AnalyzerName

	docMapping := bleve.NewDocumentMapping()

	// Title - primary search target, stored for result rendering.
	titleFieldMapping := bleve.NewTextFieldMapping()
	titleFieldMapping.Analyzer = en.AnalyzerName
	titleFieldMapping.Store = true
	titleFieldMapping.IncludeTermVectors = true // For highlighting
	docMapping.AddFieldMappingsAt("title", titleFieldMapping)

	// Notes - searchable free text.
	notesFieldMapping := bleve.NewTextFieldMapping()
	notesFieldMapping.Analyzer = en.AnalyzerName
	notesFieldMapping.Store = true
	notesFieldMapping.IncludeTermVectors = true // For highlighting
	docMapping.AddFieldMappingsAt("notes", notesFieldMapping)

	// Kind and id - exact match only.
	kindFieldMapping := bleve.NewTextFieldMapping()
	kindFieldMapping.Analyzer = keyword.Name
	kindFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("kind", kindFieldMapping)

	idFieldMapping := bleve.NewTextFieldMapping()
	idFieldMapping.Analyzer = keyword.Name
	idFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("id", idFieldMapping)

	// Watched flag for filtered searches.
	watchedFieldMapping := bleve.NewBooleanFieldMapping()
	watchedFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("watched", watchedFieldMapping)

	// Numerics for range filters and sorting.
	yearFieldMapping := bleve.NewNumericFieldMapping()
	yearFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("year", yearFieldMapping)

	catalogRatingFieldMapping := bleve.NewNumericFieldMapping()
	catalogRatingFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("catalog_rating", catalogRatingFieldMapping)

	userRatingFieldMapping := bleve.NewNumericFieldMapping()
	userRatingFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("user_rating", userRatingFieldMapping)

	addedAtFieldMapping := bleve.NewNumericFieldMapping()
	addedAtFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("added_at", addedAtFieldMapping)

	indexMapping.AddDocumentMapping("_default", docMapping)

	return indexMapping
}
