package models

// MergeStrategy declares how a JSON blob column combines with an incoming
// partial value on update.
type MergeStrategy int

const (
	// ShallowMerge overwrites matching keys and keeps stored-only keys.
	ShallowMerge MergeStrategy = iota
	// Replace discards the stored value wholly.
	Replace
)

// BlobStrategies is the per-field merge policy for Product blob columns.
// Mapping-shaped blobs merge key-wise; sequence-shaped blobs are replaced.
var BlobStrategies = map[string]MergeStrategy{
	"dimensions": ShallowMerge,
	"meta":       ShallowMerge,
	"reviews":    Replace,
	"tags":       Replace,
	"images":     Replace,
}
