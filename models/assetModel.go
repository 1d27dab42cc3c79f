package models

// ResourceKind tells the asset host how to treat an upload.
type ResourceKind string

const (
	ResourceImage ResourceKind = "image"
	ResourceVideo ResourceKind = "video"
)

// Asset is a file held by the external asset host.
type Asset struct {
	URL          string       `bson:"url" json:"url"`
	PublicID     string       `bson:"public_id" json:"public_id"`
	ResourceType ResourceKind `bson:"resource_type,omitempty" json:"-"`
}

// IsZero reports whether the asset was never uploaded.
func (a *Asset) IsZero() bool {
	return a == nil || a.PublicID == ""
}
