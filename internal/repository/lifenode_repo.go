package repository

import (
	"errors"

	"github.com/veredas/veredas-backend/internal/common"
	"github.com/veredas/veredas-backend/internal/domain"
	"gorm.io/gorm"
)

// tipRows scopes a query to live tips of the given content table: the
// current row of each non-deleted document. The scope carries no select so
// it works for Count as well; row fetches add their own column list.
func tipRows(db *gorm.DB, table string) *gorm.DB {
	return db.Table(table).
		Joins("JOIN documents ON documents.id = "+table+".document_id").
		Where(table + ".is_tip IS NOT NULL AND documents.deleted_at IS NULL")
}

// LifeNodeRepository reads current taxonomy rows.
type LifeNodeRepository interface {
	FindByTitleAndRank(title string, rank domain.Rank) (*domain.LifeNode, error)
	ListByRank(rank domain.Rank, page, limit int) ([]*domain.LifeNode, int64, error)
	ListChildren(parentDocumentID uint64) ([]*domain.LifeNode, error)
	SearchByTitle(keyword string, page, limit int) ([]*domain.LifeNode, int64, error)
	ListCommonNames(lifeNodeDocumentID uint64) ([]*domain.CommonName, error)
	FindCommonNameByName(name string) (*domain.CommonName, error)
}

type lifeNodeRepository struct {
	db *gorm.DB
}

func NewLifeNodeRepository(db *gorm.DB) LifeNodeRepository {
	return &lifeNodeRepository{db: db}
}

func (r *lifeNodeRepository) FindByTitleAndRank(title string, rank domain.Rank) (*domain.LifeNode, error) {
	var node domain.LifeNode
	err := tipRows(r.db, "life_nodes").
		Select("life_nodes.*").
		Where("LOWER(life_nodes.title) = LOWER(?) AND life_nodes.rank = ?", title, rank).
		Take(&node).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &node, nil
}

func (r *lifeNodeRepository) ListByRank(rank domain.Rank, page, limit int) ([]*domain.LifeNode, int64, error) {
	var total int64
	if err := tipRows(r.db, "life_nodes").
		Where("life_nodes.rank = ?", rank).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var nodes []*domain.LifeNode
	err := tipRows(r.db, "life_nodes").
		Select("life_nodes.*").
		Where("life_nodes.rank = ?", rank).
		Order("life_nodes.title ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&nodes).Error
	if err != nil {
		return nil, 0, err
	}
	return nodes, total, nil
}

func (r *lifeNodeRepository) ListChildren(parentDocumentID uint64) ([]*domain.LifeNode, error) {
	var nodes []*domain.LifeNode
	err := tipRows(r.db, "life_nodes").
		Select("life_nodes.*").
		Where("life_nodes.parent_document_id = ?", parentDocumentID).
		Order("life_nodes.title ASC").
		Find(&nodes).Error
	if err != nil {
		return nil, err
	}
	return nodes, nil
}

func (r *lifeNodeRepository) SearchByTitle(keyword string, page, limit int) ([]*domain.LifeNode, int64, error) {
	pattern := "%" + keyword + "%"

	var total int64
	if err := tipRows(r.db, "life_nodes").
		Where("life_nodes.title LIKE ?", pattern).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var nodes []*domain.LifeNode
	err := tipRows(r.db, "life_nodes").
		Select("life_nodes.*").
		Where("life_nodes.title LIKE ?", pattern).
		Order("life_nodes.title ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&nodes).Error
	if err != nil {
		return nil, 0, err
	}
	return nodes, total, nil
}

func (r *lifeNodeRepository) ListCommonNames(lifeNodeDocumentID uint64) ([]*domain.CommonName, error) {
	var names []*domain.CommonName
	err := tipRows(r.db, "common_names").
		Select("common_names.*").
		Where("common_names.lifenode_document_id = ?", lifeNodeDocumentID).
		Order("common_names.name ASC").
		Find(&names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

func (r *lifeNodeRepository) FindCommonNameByName(name string) (*domain.CommonName, error) {
	var cn domain.CommonName
	err := tipRows(r.db, "common_names").
		Select("common_names.*").
		Where("common_names.name = ?", name).
		Take(&cn).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cn, nil
}
