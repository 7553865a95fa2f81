package domain

import (
	"time"

	"github.com/google/uuid"
)

// Document is the stable identity of one versionable entity, independent of
// its concrete content type. Content rows come and go with every revision;
// the Document row is the thing other entities point at.
type Document struct {
	ID  uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UID string `gorm:"column:uid;size:36;uniqueIndex" json:"uid"`

	Kind ContentKind `gorm:"column:kind;size:32;index" json:"kind"`

	// OwnerID points at the document of the owning parent (usually the member
	// that authored the first revision). Nil for system-created entities.
	OwnerID *uint64 `gorm:"column:owner_id;index" json:"owner_id,omitempty"`

	// Privacy is opaque to the versioning core; callers interpret it.
	Privacy int8 `gorm:"column:privacy;default:0" json:"privacy"`

	RevisionsCount    int     `gorm:"column:revisions_count;default:0" json:"revisions_count"`
	TipRevisionID     *uint64 `gorm:"column:tip_revision_id" json:"tip_revision_id,omitempty"`
	CreatedRevisionID *uint64 `gorm:"column:created_revision_id" json:"created_revision_id,omitempty"`

	CreatedAt time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt *time.Time `gorm:"column:deleted_at" json:"deleted_at,omitempty"`
}

func (Document) TableName() string {
	return "documents"
}

// NewDocument returns an unsaved identity for the given kind.
func NewDocument(kind ContentKind) *Document {
	return &Document{UID: uuid.NewString(), Kind: kind}
}

// Deleted reports whether the identity has been soft-deleted.
func (d *Document) Deleted() bool {
	return d.DeletedAt != nil
}

// RevisionKind classifies a revision within a document's chain.
type RevisionKind string

const (
	RevisionCreate RevisionKind = "create"
	RevisionChange RevisionKind = "change"
	RevisionDelete RevisionKind = "delete"
)

// DeriveRevisionKind applies the chain transition rule: no parent means
// create, a parent on a deleted row means delete, otherwise change.
func DeriveRevisionKind(parentID uint64, isDeleted bool) RevisionKind {
	switch {
	case parentID == 0:
		return RevisionCreate
	case isDeleted:
		return RevisionDelete
	default:
		return RevisionChange
	}
}

// Revision is one immutable link in a document's history chain. Rows are
// append-only; nothing updates or deletes them after creation.
type Revision struct {
	ID   uint64       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Kind RevisionKind `gorm:"column:kind;size:6" json:"kind"`

	// Index is the 1-based ordinal within the document's chain. The composite
	// unique index is what turns a concurrent count-then-insert race into a
	// duplicate-key error instead of a duplicated index.
	Index int `gorm:"column:idx;uniqueIndex:,composite:chain" json:"index"`

	DocumentID uint64  `gorm:"column:document_id;uniqueIndex:,composite:chain" json:"document_id"`
	ParentID   *uint64 `gorm:"column:parent_id" json:"parent_id,omitempty"`

	// AuthorID references the acting member's document. Nil for system saves.
	AuthorID        *uint64 `gorm:"column:author_id;index" json:"author_id,omitempty"`
	AuthorIP        string  `gorm:"column:author_ip;size:45" json:"author_ip,omitempty"`
	AuthorUserAgent string  `gorm:"column:author_useragent;size:512" json:"author_useragent,omitempty"`
	Message         string  `gorm:"column:message;type:text" json:"message,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Revision) TableName() string {
	return "revisions"
}

// VersionedModel is embedded by every versioned content row. One row exists
// per revision, not per identity; the revision id doubles as the primary key.
type VersionedModel struct {
	RevisionID uint64 `gorm:"column:revision_id;primaryKey;autoIncrement:false" json:"revision_id"`
	DocumentID uint64 `gorm:"column:document_id;uniqueIndex:,composite:tip" json:"document_id"`

	// IsTip is nil on superseded rows so the composite unique index only ever
	// sees one non-null value per document.
	IsTip     *bool `gorm:"column:is_tip;uniqueIndex:,composite:tip" json:"is_tip,omitempty"`
	IsDeleted bool  `gorm:"column:is_deleted;default:false" json:"is_deleted,omitempty"`
}

// Meta exposes the embedded versioning fields to the generic store.
func (m *VersionedModel) Meta() *VersionedModel {
	return m
}

// Versioned is implemented by every content row the store can manage.
type Versioned interface {
	Meta() *VersionedModel
	Kind() ContentKind
	TableName() string
}
