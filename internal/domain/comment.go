package domain

// Comment is attached to any document: a life node, an occurrence, an image.
// The parent pointer targets the document, not a content row, so the thread
// follows the entity through its revisions.
type Comment struct {
	VersionedModel

	ParentDocumentID uint64 `gorm:"column:parent_document_id;index" json:"parent_document_id"`
	Body             string `gorm:"column:body;type:text" json:"body"`
}

func (Comment) TableName() string {
	return "comments"
}

func (Comment) Kind() ContentKind {
	return KindComment
}

// CommentRequest is the create/edit payload for a comment.
type CommentRequest struct {
	Body string `json:"body" binding:"required"`
}

// ImageRequest attaches image metadata to a subject document.
type ImageRequest struct {
	SubjectUID string `json:"subject_uid" binding:"required"`
	FileRef    string `json:"file_ref" binding:"required"`
	Caption    string `json:"caption"`
}

// Image is the versioned metadata row for an uploaded picture. The binary
// itself lives elsewhere; only the reference is versioned here.
type Image struct {
	VersionedModel

	SubjectDocumentID uint64 `gorm:"column:subject_document_id;index" json:"subject_document_id"`
	FileRef           string `gorm:"column:file_ref;size:512" json:"file_ref"`
	Caption           string `gorm:"column:caption;size:512" json:"caption,omitempty"`
}

func (Image) TableName() string {
	return "images"
}

func (Image) Kind() ContentKind {
	return KindImage
}
