package model

import "github.com/google/uuid"

// InsertResult reports a single inserted row.
type InsertResult struct {
	Acknowledged bool      `json:"acknowledged"`
	InsertedID   uuid.UUID `json:"insertedId"`
}

// UpdateResult reports rows matched and changed by an update.
// Postgres does not distinguish the two, so both carry the affected row count.
type UpdateResult struct {
	Acknowledged  bool  `json:"acknowledged"`
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

// DeleteResult reports rows removed by a delete.
type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

// Inserted builds an InsertResult for id.
func Inserted(id uuid.UUID) InsertResult {
	return InsertResult{Acknowledged: true, InsertedID: id}
}

// Updated builds an UpdateResult for n affected rows.
func Updated(n int64) UpdateResult {
	return UpdateResult{Acknowledged: true, MatchedCount: n, ModifiedCount: n}
}

// Deleted builds a DeleteResult for n removed rows.
func Deleted(n int64) DeleteResult {
	return DeleteResult{Acknowledged: true, DeletedCount: n}
}
