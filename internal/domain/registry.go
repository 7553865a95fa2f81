package domain

import "fmt"

// ContentKind discriminates which concrete schema a document belongs to.
type ContentKind string

const (
	KindMember     ContentKind = "member"
	KindLifeNode   ContentKind = "lifenode"
	KindCommonName ContentKind = "commonname"
	KindOccurrence ContentKind = "occurrence"
	KindSuggestion ContentKind = "suggestion"
	KindComment    ContentKind = "comment"
	KindImage      ContentKind = "image"
)

// SchemaDescriptor maps a kind to its concrete row shape. The registry is
// resolved once at startup; nothing in the save path reflects over types.
type SchemaDescriptor struct {
	Kind  ContentKind
	Table string
	New   func() Versioned
}

var kindRegistry = map[ContentKind]SchemaDescriptor{}

// RegisterKind adds a schema descriptor to the registry. Registering the same
// kind twice is a wiring bug and panics at startup.
func RegisterKind(desc SchemaDescriptor) {
	if _, dup := kindRegistry[desc.Kind]; dup {
		panic(fmt.Sprintf("domain: kind %q registered twice", desc.Kind))
	}
	kindRegistry[desc.Kind] = desc
}

// LookupKind resolves a kind to its schema descriptor.
func LookupKind(kind ContentKind) (SchemaDescriptor, bool) {
	desc, ok := kindRegistry[kind]
	return desc, ok
}

// RegisteredKinds returns every registered descriptor, for migrations.
func RegisteredKinds() []SchemaDescriptor {
	descs := make([]SchemaDescriptor, 0, len(kindRegistry))
	for _, desc := range kindRegistry {
		descs = append(descs, desc)
	}
	return descs
}

func init() {
	RegisterKind(SchemaDescriptor{Kind: KindMember, Table: Member{}.TableName(), New: func() Versioned { return &Member{} }})
	RegisterKind(SchemaDescriptor{Kind: KindLifeNode, Table: LifeNode{}.TableName(), New: func() Versioned { return &LifeNode{} }})
	RegisterKind(SchemaDescriptor{Kind: KindCommonName, Table: CommonName{}.TableName(), New: func() Versioned { return &CommonName{} }})
	RegisterKind(SchemaDescriptor{Kind: KindOccurrence, Table: Occurrence{}.TableName(), New: func() Versioned { return &Occurrence{} }})
	RegisterKind(SchemaDescriptor{Kind: KindSuggestion, Table: Suggestion{}.TableName(), New: func() Versioned { return &Suggestion{} }})
	RegisterKind(SchemaDescriptor{Kind: KindComment, Table: Comment{}.TableName(), New: func() Versioned { return &Comment{} }})
	RegisterKind(SchemaDescriptor{Kind: KindImage, Table: Image{}.TableName(), New: func() Versioned { return &Image{} }})
}
