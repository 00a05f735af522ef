package ports

import (
	"context"

	"shipflow/internal/core/domain/model/sequence"
)

// SequenceAllocator hands out the next sequence number of a record type.
//
// Next must run inside the caller's transaction: the number is reserved
// until that transaction ends, so concurrent creators of the same record
// type are serialized and a rolled-back creation releases its number.
// The first allocation for a type continues from the highest number already
// stored, so existing records {1,2,3} yield 4 and an empty table yields 1.
type SequenceAllocator interface {
	Next(ctx context.Context, recordType sequence.RecordType) (int64, error)
}
