package models

import "sync"

// RelationKind classifies how two entities are related.
type RelationKind string

const (
	// HasMany is a one-to-many relation keyed by a foreign key on the child.
	HasMany RelationKind = "has_many"
	// BelongsTo is the child side of a one-to-many relation.
	BelongsTo RelationKind = "belongs_to"
	// ManyToMany links two entities through a junction table.
	ManyToMany RelationKind = "many_to_many"
)

// Relation describes one edge of the association graph: which table refers
// to which, through which foreign key, and (for many-to-many) through which
// junction table. The repository layer consults these descriptors when
// building join queries instead of encoding table/column names inline.
type Relation struct {
	Name       string
	Kind       RelationKind
	From       string
	To         string
	ForeignKey string
	// Through is the junction table for many-to-many relations.
	Through string
	// ThroughFK is the junction column referencing To for many-to-many relations.
	ThroughFK string
}

var (
	relationsOnce sync.Once
	relations     map[string]Relation
)

// buildAssociationGraph assembles the full relation set once. The graph is
// read-only after construction.
func buildAssociationGraph() {
	all := []Relation{
		{Name: "user_posts", Kind: HasMany, From: "users", To: "posts", ForeignKey: "user_id"},
		{Name: "user_comments", Kind: HasMany, From: "users", To: "comments", ForeignKey: "user_id"},
		{Name: "user_votes", Kind: HasMany, From: "users", To: "votes", ForeignKey: "user_id"},
		{Name: "post_author", Kind: BelongsTo, From: "posts", To: "users", ForeignKey: "user_id"},
		{Name: "post_comments", Kind: HasMany, From: "posts", To: "comments", ForeignKey: "post_id"},
		{Name: "post_votes", Kind: HasMany, From: "posts", To: "votes", ForeignKey: "post_id"},
		{Name: "comment_author", Kind: BelongsTo, From: "comments", To: "users", ForeignKey: "user_id"},
		{Name: "voted_posts", Kind: ManyToMany, From: "users", To: "posts", ForeignKey: "user_id", Through: "votes", ThroughFK: "post_id"},
	}
	relations = make(map[string]Relation, len(all))
	for _, r := range all {
		relations[r.Name] = r
	}
}

// RelationByName returns the relation descriptor registered under name.
func RelationByName(name string) (Relation, bool) {
	relationsOnce.Do(buildAssociationGraph)
	r, ok := relations[name]
	return r, ok
}

// AssociationGraph returns every registered relation descriptor.
func AssociationGraph() []Relation {
	relationsOnce.Do(buildAssociationGraph)
	out := make([]Relation, 0, len(relations))
	for _, r := range relations {
		out = append(out, r)
	}
	return out
}
