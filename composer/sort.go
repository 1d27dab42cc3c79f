package composer

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/amanjaiswal-07/youtube-backend/helpers"
)

const DefaultSortField = "createdAt"

// Sortable is the whitelist of fields a listing may be ordered by.
type Sortable []string

func (s Sortable) allows(field string) bool {
	for _, f := range s {
		if f == field {
			return true
		}
	}
	return false
}

// Sort builds a $sort document. An empty field means newest first. The
// direction accepts asc/desc or 1/-1 and defaults to descending. _id is
// appended as a tie breaker so pages never overlap.
func (s Sortable) Sort(field, direction string) (bson.D, error) {
	field = strings.TrimSpace(field)
	if field == "" {
		field = DefaultSortField
	}
	if !s.allows(field) {
		return nil, helpers.InvalidArgument("cannot sort by %q", field).
			WithDetails("sortBy must be one of: " + strings.Join(s, ", "))
	}

	dir := -1
	switch strings.ToLower(strings.TrimSpace(direction)) {
	case "", "desc", "-1":
	case "asc", "1":
		dir = 1
	default:
		return nil, helpers.InvalidArgument("sortType must be asc or desc")
	}

	sort := bson.D{{Key: field, Value: dir}}
	if field != "_id" {
		sort = append(sort, bson.E{Key: "_id", Value: dir})
	}
	return sort, nil
}

// Newest is the default sort used when a listing takes no sort input.
func Newest() bson.D {
	return bson.D{{Key: DefaultSortField, Value: -1}, {Key: "_id", Value: -1}}
}
