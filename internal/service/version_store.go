package service

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"github.com/veredas/veredas-backend/internal/common"
	"github.com/veredas/veredas-backend/internal/domain"
	"github.com/veredas/veredas-backend/internal/repository"
	"github.com/veredas/veredas-backend/pkg/cache"
	"gorm.io/gorm"
)

// maxConflictRetries bounds the automatic redo of a save that lost an index
// race. Only applies when the caller did not pin an explicit parent.
const maxConflictRetries = 3

var (
	revisionSavesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "revision_saves_total",
			Help: "Total number of committed revisions",
		},
		[]string{"content_kind", "revision_kind"},
	)

	revisionConflictsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "revision_conflicts_total",
			Help: "Saves surfaced to the caller as concurrency conflicts",
		},
	)

	revisionConflictRetriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "revision_conflict_retries_total",
			Help: "Automatic in-store save retries after a lost index race",
		},
	)
)

type versionedPtr[T any] interface {
	*T
	domain.Versioned
}

// Store is the versioned entity store for one content type T. It orchestrates
// the save/delete protocol across the identity registry and the revision
// chain, and owns the two read paths (current tip, full history).
type Store[T any, PT versionedPtr[T]] struct {
	db    *gorm.DB
	docs  repository.DocumentRepository
	revs  repository.RevisionRepository
	cache cache.DocumentCache
	log   zerolog.Logger

	kind  domain.ContentKind
	table string
}

// NewStore builds a store for T. The kind must be registered in the schema
// registry before the store is constructed.
func NewStore[T any, PT versionedPtr[T]](db *gorm.DB, docs repository.DocumentRepository, revs repository.RevisionRepository, log zerolog.Logger) *Store[T, PT] {
	var zero T
	kind := PT(&zero).Kind()
	desc, ok := domain.LookupKind(kind)
	if !ok {
		panic("service: content kind not registered: " + string(kind))
	}
	return &Store[T, PT]{
		db:    db,
		docs:  docs,
		revs:  revs,
		log:   log.With().Str("content_kind", string(kind)).Logger(),
		kind:  kind,
		table: desc.Table,
	}
}

// WithCache attaches a tip cache. Reads fall back to the database when the
// cache is unavailable or cold.
func (s *Store[T, PT]) WithCache(c cache.DocumentCache) *Store[T, PT] {
	s.cache = c
	return s
}

// Kind returns the content kind this store manages.
func (s *Store[T, PT]) Kind() domain.ContentKind {
	return s.kind
}

type saveOptions struct {
	parentID uint64
	message  string
}

// SaveOption customizes one Save call.
type SaveOption func(*saveOptions)

// WithParent pins the revision the save descends from. A pinned parent that
// is no longer the tip fails with ErrStaleParent instead of retrying.
func WithParent(revisionID uint64) SaveOption {
	return func(o *saveOptions) { o.parentID = revisionID }
}

// WithMessage sets the revision changelog note, overriding the requester's
// default message.
func WithMessage(message string) SaveOption {
	return func(o *saveOptions) { o.message = message }
}

// Save runs the full revision protocol for row: ensure an identity, append a
// revision, flip the tip flags, advance the registry pointers and persist the
// new content row, all in one transaction. On success the row carries the new
// revision id and the tip flag.
func (s *Store[T, PT]) Save(ctx context.Context, row PT, req *domain.Requester, opts ...SaveOption) error {
	var o saveOptions
	for _, opt := range opts {
		opt(&o)
	}

	meta := row.Meta()
	prior := *meta

	var lastErr error
	for attempt := 0; ; attempt++ {
		var rev *domain.Revision
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var txErr error
			rev, txErr = s.saveTx(tx, row, req, o)
			return txErr
		})
		if err == nil {
			revisionSavesTotal.WithLabelValues(string(s.kind), string(rev.Kind)).Inc()
			s.invalidateTip(ctx, meta.DocumentID)
			s.log.Debug().
				Uint64("document_id", meta.DocumentID).
				Uint64("revision_id", rev.ID).
				Int("index", rev.Index).
				Str("revision_kind", string(rev.Kind)).
				Msg("revision saved")
			return nil
		}

		*meta = prior
		lastErr = err

		// only a lost storage race is retryable, and only when the caller
		// left parent selection to the store
		if !errors.Is(err, common.ErrConcurrencyConflict) || o.parentID != 0 || attempt >= maxConflictRetries {
			break
		}
		revisionConflictRetriesTotal.Inc()
		s.log.Warn().
			Uint64("document_id", meta.DocumentID).
			Int("attempt", attempt+1).
			Msg("revision save conflict, retrying")
	}

	if errors.Is(lastErr, common.ErrConcurrencyConflict) {
		revisionConflictsTotal.Inc()
	}
	return lastErr
}

// saveTx is steps 1-9 of the protocol, inside the caller's transaction.
func (s *Store[T, PT]) saveTx(tx *gorm.DB, row PT, req *domain.Requester, o saveOptions) (*domain.Revision, error) {
	meta := row.Meta()

	var doc *domain.Document
	if meta.DocumentID == 0 {
		fresh, err := s.docs.Ensure(tx, s.kind)
		if err != nil {
			return nil, err
		}
		doc = fresh
		meta.DocumentID = doc.ID
	} else {
		doc = &domain.Document{}
		err := tx.Where("id = ?", meta.DocumentID).First(doc).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound
		}
		if err != nil {
			return nil, err
		}
	}

	parentID := o.parentID
	if parentID == 0 {
		parentID = meta.RevisionID
	}

	if parentID != 0 {
		if doc.TipRevisionID == nil || *doc.TipRevisionID != parentID {
			tipID := uint64(0)
			if doc.TipRevisionID != nil {
				tipID = *doc.TipRevisionID
			}
			return nil, &common.ConflictError{
				DocumentID:    doc.ID,
				TipRevisionID: tipID,
				Err:           common.ErrStaleParent,
			}
		}
	} else if doc.TipRevisionID != nil {
		return nil, common.ErrAlreadyCreated
	}

	kind := domain.DeriveRevisionKind(parentID, meta.IsDeleted)

	rev, err := s.revs.Append(tx, doc, kind, parentID, req, o.message)
	if err != nil {
		return nil, err
	}

	// clear the previous tip before inserting the new one; same transaction,
	// so no reader ever sees zero or two tips
	if err := tx.Table(s.table).
		Where("document_id = ? AND is_tip IS NOT NULL", doc.ID).
		Update("is_tip", nil).Error; err != nil {
		return nil, err
	}

	meta.RevisionID = rev.ID
	tip := true
	meta.IsTip = &tip

	var authorID *uint64
	if req != nil {
		authorID = req.AuthorDocumentID()
	}
	if err := s.docs.AdvanceTip(tx, doc, rev, kind == domain.RevisionCreate, authorID); err != nil {
		return nil, err
	}

	if err := tx.Create(row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &common.ConflictError{
				DocumentID:     doc.ID,
				AttemptedIndex: rev.Index,
				Err:            common.ErrConcurrencyConflict,
			}
		}
		return nil, err
	}
	return rev, nil
}

// Delete soft-deletes the row's document and appends the final delete-kind
// revision: deleted_at on the identity, is_deleted on the new row, parent
// pinned to the revision the caller holds. Deleting twice fails with
// ErrAlreadyDeleted and appends nothing.
func (s *Store[T, PT]) Delete(ctx context.Context, row PT, req *domain.Requester) error {
	meta := row.Meta()
	if meta.DocumentID == 0 || meta.RevisionID == 0 {
		return common.ErrValidation
	}
	prior := *meta

	var rev *domain.Revision
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var doc domain.Document
		err := tx.Where("id = ?", meta.DocumentID).First(&doc).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.ErrNotFound
		}
		if err != nil {
			return err
		}
		if doc.Deleted() {
			return common.ErrAlreadyDeleted
		}

		if err := s.docs.MarkDeleted(tx, &doc, time.Now()); err != nil {
			return err
		}

		meta.IsDeleted = true
		rev, err = s.saveTx(tx, row, req, saveOptions{parentID: prior.RevisionID})
		return err
	})
	if err != nil {
		*meta = prior
		if errors.Is(err, common.ErrConcurrencyConflict) {
			revisionConflictsTotal.Inc()
		}
		return err
	}

	revisionSavesTotal.WithLabelValues(string(s.kind), string(rev.Kind)).Inc()
	s.invalidateTip(ctx, meta.DocumentID)
	s.log.Debug().
		Uint64("document_id", meta.DocumentID).
		Uint64("revision_id", rev.ID).
		Msg("document deleted")
	return nil
}

// PatchFields is the explicit no-history escape hatch: a direct column update
// on one existing content row, bypassing the revision protocol entirely. The
// versioning columns are stripped so a patch can never forge chain state.
func (s *Store[T, PT]) PatchFields(ctx context.Context, row PT, fields map[string]interface{}) error {
	meta := row.Meta()
	if meta.RevisionID == 0 {
		return common.ErrValidation
	}
	for _, col := range []string{"revision_id", "document_id", "is_tip", "is_deleted"} {
		delete(fields, col)
	}
	if len(fields) == 0 {
		return common.ErrInvalidInput
	}
	err := s.db.WithContext(ctx).Table(s.table).
		Where("revision_id = ?", meta.RevisionID).
		Updates(fields).Error
	if err != nil {
		return err
	}
	s.invalidateTip(ctx, meta.DocumentID)
	return nil
}

// Current returns the live tip row for a document, or ErrNotFound when the
// document is absent, deleted, or has never been saved.
func (s *Store[T, PT]) Current(ctx context.Context, documentID uint64) (PT, error) {
	if s.cache != nil && s.cache.IsAvailable() {
		var cached T
		err := s.cache.GetTip(ctx, string(s.kind), documentID, &cached)
		if err == nil {
			return PT(&cached), nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.log.Warn().Err(err).Uint64("document_id", documentID).Msg("tip cache read failed")
		}
	}

	var v T
	err := s.db.WithContext(ctx).Table(s.table).
		Select(s.table+".*").
		Joins("JOIN documents ON documents.id = "+s.table+".document_id").
		Where(s.table+".document_id = ? AND "+s.table+".is_tip IS NOT NULL AND documents.deleted_at IS NULL", documentID).
		Take(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if s.cache != nil && s.cache.IsAvailable() {
		if err := s.cache.SetTip(ctx, string(s.kind), documentID, &v); err != nil {
			s.log.Warn().Err(err).Uint64("document_id", documentID).Msg("tip cache write failed")
		}
	}
	return PT(&v), nil
}

// History returns every content row of a document in chain order, deleted
// rows included. This is the browse-the-past read path; it ignores both the
// tip flag and the soft-delete filter.
func (s *Store[T, PT]) History(ctx context.Context, documentID uint64) ([]T, error) {
	var rows []T
	err := s.db.WithContext(ctx).Table(s.table).
		Select(s.table+".*").
		Joins("JOIN revisions ON revisions.id = "+s.table+".revision_id").
		Where(s.table+".document_id = ?", documentID).
		Order("revisions.idx ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// HistoryAny adapts History for kind-dispatched callers.
func (s *Store[T, PT]) HistoryAny(ctx context.Context, documentID uint64) (interface{}, error) {
	return s.History(ctx, documentID)
}

// CurrentAny adapts Current for kind-dispatched callers.
func (s *Store[T, PT]) CurrentAny(ctx context.Context, documentID uint64) (interface{}, error) {
	return s.Current(ctx, documentID)
}

func (s *Store[T, PT]) invalidateTip(ctx context.Context, documentID uint64) {
	if s.cache == nil || !s.cache.IsAvailable() {
		return
	}
	if err := s.cache.InvalidateTip(ctx, string(s.kind), documentID); err != nil {
		s.log.Warn().Err(err).Uint64("document_id", documentID).Msg("tip cache invalidation failed")
	}
}
