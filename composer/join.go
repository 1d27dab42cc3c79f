package composer

import (
	"go.mongodb.org/mongo-driver/bson"
)

// Join embeds rows of another collection into each row, matched on
// LocalField == ForeignField. Only Fields (plus _id) and Derive fields of the
// joined rows are kept; list a nested join's As in Fields to embed it.
type Join struct {
	From         string
	LocalField   string
	ForeignField string
	As           string

	// Fields is the projection whitelist for joined rows.
	Fields []string
	// Nested joins run inside the joined collection before projection.
	Nested []Join
	// Derive adds computed fields to joined rows after Nested joins.
	Derive []Field
	// Sort orders joined rows.
	Sort bson.D
	// Limit caps the number of joined rows after Sort. Zero means no cap.
	Limit int64
	// One flattens the result to a single object or null.
	One bool
	// PreserveOrder keeps joined rows in the order of the LocalField array.
	// It requires ForeignField to be _id.
	PreserveOrder bool
}

func (j Join) pipeline() bson.A {
	inner := bson.A{}
	for _, n := range j.Nested {
		for _, s := range n.Stages() {
			inner = append(inner, s)
		}
	}
	if len(j.Derive) > 0 {
		inner = append(inner, AddFields(j.Derive...))
	}
	if len(j.Sort) > 0 {
		inner = append(inner, bson.D{{Key: "$sort", Value: j.Sort}})
	}
	if j.Limit > 0 {
		inner = append(inner, bson.D{{Key: "$limit", Value: j.Limit}})
	}
	if len(j.Fields) > 0 {
		keep := append([]string{}, j.Fields...)
		for _, d := range j.Derive {
			keep = append(keep, d.Name)
		}
		inner = append(inner, Project(keep...))
	}
	return inner
}

// Stages renders the join as aggregation stages for the parent pipeline.
func (j Join) Stages() []bson.D {
	as := j.As
	if j.PreserveOrder {
		as = "_" + j.As + "_joined"
	}

	lookup := bson.D{
		{Key: "from", Value: j.From},
		{Key: "localField", Value: j.LocalField},
		{Key: "foreignField", Value: j.ForeignField},
		{Key: "as", Value: as},
	}
	if inner := j.pipeline(); len(inner) > 0 {
		lookup = append(lookup, bson.E{Key: "pipeline", Value: inner})
	}

	stages := []bson.D{{{Key: "$lookup", Value: lookup}}}

	switch {
	case j.PreserveOrder:
		stages = append(stages,
			bson.D{{Key: "$addFields", Value: bson.D{{Key: j.As, Value: orderBy(j.LocalField, as)}}}},
			bson.D{{Key: "$unset", Value: as}},
		)
	case j.One:
		stages = append(stages, AddFields(First(j.As, j.As)))
	}
	return stages
}

// orderBy maps each id in the local array to its joined row, dropping ids
// whose row no longer exists.
func orderBy(localField, joined string) bson.D {
	pick := bson.D{{Key: "$arrayElemAt", Value: bson.A{
		bson.D{{Key: "$filter", Value: bson.D{
			{Key: "input", Value: ref(joined)},
			{Key: "as", Value: "row"},
			{Key: "cond", Value: bson.D{{Key: "$eq", Value: bson.A{"$$row._id", "$$id"}}}},
		}}},
		0,
	}}}

	return bson.D{{Key: "$filter", Value: bson.D{
		{Key: "input", Value: bson.D{{Key: "$map", Value: bson.D{
			{Key: "input", Value: arrayOrEmpty(localField)},
			{Key: "as", Value: "id"},
			{Key: "in", Value: pick},
		}}}},
		{Key: "as", Value: "row"},
		{Key: "cond", Value: bson.D{{Key: "$ifNull", Value: bson.A{"$$row", false}}}},
	}}}
}
