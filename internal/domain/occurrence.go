package domain

// Occurrence records an observation of an organism in the field: where and
// when it was seen, optionally which life node it was identified as. An
// occurrence with no identity document is a "what is this?" post waiting for
// suggestions.
type Occurrence struct {
	VersionedModel

	When  string `gorm:"column:seen_when;size:255" json:"when,omitempty"`
	Where string `gorm:"column:seen_where;size:255" json:"where,omitempty"`
	Notes string `gorm:"column:notes;type:text" json:"notes,omitempty"`

	Lat *float64 `gorm:"column:lat" json:"lat,omitempty"`
	Lng *float64 `gorm:"column:lng" json:"lng,omitempty"`

	// IdentityDocumentID points at the identified LifeNode's document.
	IdentityDocumentID *uint64 `gorm:"column:identity_document_id;index" json:"identity_document_id,omitempty"`
}

func (Occurrence) TableName() string {
	return "occurrences"
}

func (Occurrence) Kind() ContentKind {
	return KindOccurrence
}

// OccurrenceRequest is the create/edit payload for an occurrence.
type OccurrenceRequest struct {
	When        string   `json:"when"`
	Where       string   `json:"where"`
	Notes       string   `json:"notes"`
	Lat         *float64 `json:"lat"`
	Lng         *float64 `json:"lng"`
	IdentityUID string   `json:"identity_uid"`
}

// SuggestionRequest proposes an identification for an occurrence.
type SuggestionRequest struct {
	IdentityUID string `json:"identity_uid" binding:"required"`
	Notes       string `json:"notes"`
}

// Suggestion proposes an identification for an occurrence.
type Suggestion struct {
	VersionedModel

	OccurrenceDocumentID uint64 `gorm:"column:occurrence_document_id;index" json:"occurrence_document_id"`
	IdentityDocumentID   uint64 `gorm:"column:identity_document_id;index" json:"identity_document_id"`
	Notes                string `gorm:"column:notes;type:text" json:"notes,omitempty"`
}

func (Suggestion) TableName() string {
	return "suggestions"
}

func (Suggestion) Kind() ContentKind {
	return KindSuggestion
}
