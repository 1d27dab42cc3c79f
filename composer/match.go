package composer

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/amanjaiswal-07/youtube-backend/helpers"
	"github.com/amanjaiswal-07/youtube-backend/models"
)

// Filter collects the optional predicates a listing can be narrowed by.
// Zero values mean "no constraint".
type Filter struct {
	// Query is matched against the text index.
	Query string
	// OwnerID is the hex id of the owning user.
	OwnerID string
	// Published restricts the result to published (true) or unpublished
	// (false) rows when set.
	Published *bool
	// Parent narrows comments or likes to one parent entity.
	Parent *models.Parent
}

// ParseID validates a hex ObjectID coming from a request. name is used in
// the error message.
func ParseID(name, hex string) (primitive.ObjectID, error) {
	hex = strings.TrimSpace(hex)
	if hex == "" {
		return primitive.NilObjectID, helpers.InvalidArgument("%s is required", name)
	}
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, helpers.InvalidArgument("invalid %s", name)
	}
	return id, nil
}

// Match ANDs every set constraint of f into one predicate.
func Match(f Filter) (bson.D, error) {
	match := bson.D{}

	if q := strings.TrimSpace(f.Query); q != "" {
		match = append(match, bson.E{Key: "$text", Value: bson.D{{Key: "$search", Value: q}}})
	}
	if f.OwnerID != "" {
		owner, err := ParseID("userId", f.OwnerID)
		if err != nil {
			return nil, err
		}
		match = append(match, bson.E{Key: "owner", Value: owner})
	}
	if f.Published != nil {
		match = append(match, bson.E{Key: "isPublished", Value: *f.Published})
	}
	if f.Parent != nil {
		if f.Parent.ID.IsZero() {
			return nil, helpers.InvalidArgument("parent id is required")
		}
		match = append(match, f.Parent.Filter()...)
	}

	return match, nil
}

// ParentFilter resolves raw request ids into a Filter for one parent, failing
// closed when the parent is missing, ambiguous, malformed or not allowed.
func ParentFilter(refs models.ParentRefs, allowed ...models.ParentKind) (Filter, error) {
	p, err := ResolveParent(refs, allowed...)
	if err != nil {
		return Filter{}, err
	}
	return Filter{Parent: &p}, nil
}

// ResolveParent is models.ResolveParent with errors mapped to InvalidArgument.
func ResolveParent(refs models.ParentRefs, allowed ...models.ParentKind) (models.Parent, error) {
	p, err := models.ResolveParent(refs, allowed...)
	if err != nil {
		return models.Parent{}, helpers.InvalidArgument("%s", err.Error()).Wrap(err)
	}
	return p, nil
}

// VisibleTo is the publication constraint for viewer looking at owner's
// videos: owners see everything, everyone else only published rows.
func VisibleTo(ownerHex string, viewer primitive.ObjectID) *bool {
	if !viewer.IsZero() && ownerHex == viewer.Hex() {
		return nil
	}
	published := true
	return &published
}
