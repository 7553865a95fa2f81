package domain

// Taxonomic ranks, ordered kingdom-first. The numeric gaps mirror the usual
// biological hierarchy so intermediate ranks can be added without renumbering.
type Rank int

const (
	RankKingdom      Rank = 10
	RankPhylum       Rank = 20
	RankClass        Rank = 30
	RankOrder        Rank = 40
	RankFamily       Rank = 50
	RankGenus        Rank = 60
	RankSpecies      Rank = 70
	RankInfraspecies Rank = 80
	RankVariety      Rank = 100
)

var rankNames = map[Rank]string{
	RankKingdom:      "kingdom",
	RankPhylum:       "phylum",
	RankClass:        "class",
	RankOrder:        "order",
	RankFamily:       "family",
	RankGenus:        "genus",
	RankSpecies:      "species",
	RankInfraspecies: "infraspecies",
	RankVariety:      "variety",
}

var ranksByName = func() map[string]Rank {
	m := make(map[string]Rank, len(rankNames))
	for r, name := range rankNames {
		m[name] = r
	}
	return m
}()

func (r Rank) String() string {
	return rankNames[r]
}

// RankByName resolves a rank from its lowercase name.
func RankByName(name string) (Rank, bool) {
	r, ok := ranksByName[name]
	return r, ok
}

// LifeNode is one node of the taxonomic tree (kingdom down to variety).
type LifeNode struct {
	VersionedModel

	Title       string `gorm:"column:title;size:255;index" json:"title"`
	Description string `gorm:"column:description;type:text" json:"description,omitempty"`
	Rank        Rank   `gorm:"column:rank" json:"rank"`

	// ParentDocumentID points at the parent taxon's document, so the edge
	// survives revisions of either side.
	ParentDocumentID *uint64 `gorm:"column:parent_document_id;index" json:"parent_document_id,omitempty"`

	// GbifID links the node to the GBIF backbone taxonomy when known.
	GbifID *int `gorm:"column:gbif_id" json:"gbif_id,omitempty"`
}

func (LifeNode) TableName() string {
	return "life_nodes"
}

func (LifeNode) Kind() ContentKind {
	return KindLifeNode
}

// CommonNameInput is one vernacular name in a create/edit payload.
type CommonNameInput struct {
	Name     string `json:"name" binding:"required"`
	Language string `json:"language"`
}

// LifeNodeRequest is the create/edit payload for a taxonomy node.
type LifeNodeRequest struct {
	Title       string            `json:"title" binding:"required"`
	Description string            `json:"description"`
	Rank        string            `json:"rank" binding:"required"`
	ParentUID   string            `json:"parent_uid"`
	GbifID      *int              `json:"gbif_id"`
	CommonNames []CommonNameInput `json:"common_names"`
}

// SpeciesRequest creates a species with its genus (and optional family)
// resolved or created in the same call.
type SpeciesRequest struct {
	Species     string            `json:"species" binding:"required"`
	Genus       string            `json:"genus" binding:"required"`
	Family      string            `json:"family"`
	CommonNames []CommonNameInput `json:"common_names"`
}

// CommonName is a vernacular name attached to a life node.
type CommonName struct {
	VersionedModel

	LifeNodeDocumentID uint64 `gorm:"column:lifenode_document_id;index" json:"lifenode_document_id"`
	Name               string `gorm:"column:name;size:255;index" json:"name"`
	Language           string `gorm:"column:language;size:8" json:"language,omitempty"`
}

func (CommonName) TableName() string {
	return "common_names"
}

func (CommonName) Kind() ContentKind {
	return KindCommonName
}
