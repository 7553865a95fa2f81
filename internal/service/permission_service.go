package service

import (
	"github.com/veredas/veredas-backend/internal/domain"
)

// PermissionService is the injected reputation → permission policy. The
// versioned store never calls it; handlers check before mutating.
type PermissionService interface {
	Permissions(doc *domain.Document, member *domain.Member) []domain.Permission
	Can(doc *domain.Document, member *domain.Member, perm domain.Permission) bool
}

// PermissionConfig holds the reputation thresholds. Scoring itself is
// external; only the gate values live here.
type PermissionConfig struct {
	EditMinReputation   int `yaml:"edit_min_reputation"`
	DeleteMinReputation int `yaml:"delete_min_reputation"`
}

type permissionService struct {
	cfg PermissionConfig
}

func NewPermissionService(cfg PermissionConfig) PermissionService {
	return &permissionService{cfg: cfg}
}

// Permissions derives what member may do with doc. Reads are always allowed
// (privacy is interpreted elsewhere); the owner may always edit and delete;
// everyone else is gated on reputation.
func (s *permissionService) Permissions(doc *domain.Document, member *domain.Member) []domain.Permission {
	perms := []domain.Permission{domain.PermissionRead}
	if member == nil {
		return perms
	}

	if doc.OwnerID != nil && *doc.OwnerID == member.DocumentID {
		return append(perms, domain.PermissionEdit, domain.PermissionDelete)
	}

	if member.Reputation >= s.cfg.EditMinReputation {
		perms = append(perms, domain.PermissionEdit)
	}
	if member.Reputation >= s.cfg.DeleteMinReputation {
		perms = append(perms, domain.PermissionDelete)
	}
	return perms
}

func (s *permissionService) Can(doc *domain.Document, member *domain.Member, perm domain.Permission) bool {
	return domain.HasPermission(s.Permissions(doc, member), perm)
}
