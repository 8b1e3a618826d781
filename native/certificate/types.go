package certificate

// DescriptionMaxLen bounds certificate descriptions, measured in UTF-16
// code units to match the deployed contract.
const DescriptionMaxLen = 500

// MaxCategoryTags bounds the tag list attached to a category record.
const MaxCategoryTags = 16

// Metadata is the immutable payload recorded at mint. It is removed only
// by an explicit burn.
type Metadata struct {
	ModuleRef   string   `json:"moduleRef"`
	Recipient   [20]byte `json:"recipient"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Height      uint64   `json:"height"`
}

// Clone returns a copy of the metadata.
func (m *Metadata) Clone() *Metadata {
	if m == nil {
		return nil
	}
	clone := *m
	return &clone
}

// Version is an immutable entry in a certificate's version history, keyed
// by (token id, version number). Version numbers carry no ordering
// constraint between insertions.
type Version struct {
	TokenID uint64 `json:"tokenId"`
	Version uint64 `json:"version"`
	Payload string `json:"payload"`
	Height  uint64 `json:"height"`
}

// Clone returns a copy of the version entry.
func (v *Version) Clone() *Version {
	if v == nil {
		return nil
	}
	clone := *v
	return &clone
}

// Category labels a certificate. Writes overwrite any prior record.
type Category struct {
	Label  string   `json:"label"`
	Tags   []string `json:"tags"`
	Height uint64   `json:"height"`
}

// Clone returns a deep copy of the category record.
func (c *Category) Clone() *Category {
	if c == nil {
		return nil
	}
	clone := *c
	clone.Tags = append([]string(nil), c.Tags...)
	return &clone
}

// CollaboratorGrant records a role and permission list granted by the
// owner. Writes overwrite any prior grant for the same pair.
type CollaboratorGrant struct {
	TokenID      uint64   `json:"tokenId"`
	Collaborator [20]byte `json:"collaborator"`
	Role         string   `json:"role"`
	Permissions  []string `json:"permissions"`
	Height       uint64   `json:"height"`
}

// Clone returns a deep copy of the grant.
func (g *CollaboratorGrant) Clone() *CollaboratorGrant {
	if g == nil {
		return nil
	}
	clone := *g
	clone.Permissions = append([]string(nil), g.Permissions...)
	return &clone
}

// Status is the mutable free-form status record, overwritten on update.
type Status struct {
	Label   string `json:"label"`
	Visible bool   `json:"visible"`
	Height  uint64 `json:"height"`
}

// Clone returns a copy of the status record.
func (s *Status) Clone() *Status {
	if s == nil {
		return nil
	}
	clone := *s
	return &clone
}
