package ast

// Program is the root of a parsed hexput source file: a flat top-level
// Block and the location it spans (spec.md §6). It does not record which
// FeatureFlags gated the parse that produced it.
type Program struct {
	Body *Block
	Loc  SourceLocation
}

func (n *Program) Location() SourceLocation { return n.Loc }
func (n *Program) ToMap(inc bool) map[string]interface{} {
	m := base("PROGRAM", n.Loc, inc)
	m["body"] = n.Body.ToMap(inc)
	return m
}
