package fixture

import "github.com/goliatone/go-autofixture/internal/fixture"

// Record re-exports the ordered result type.
type Record = fixture.Record

// Error re-exports the materializer error.
type Error = fixture.Error

// ErrorKind re-exports the materializer error classification.
type ErrorKind = fixture.ErrorKind

const (
	ErrorKindUnknownField = fixture.ErrorKindUnknownField
	ErrorKindUnsupported  = fixture.ErrorKindUnsupported
	ErrorKindSpec         = fixture.ErrorKindSpec
)

var (
	ErrUnknownField = fixture.ErrUnknownField
	ErrUnsupported  = fixture.ErrUnsupported
)

// ElementCount is the size of generated arrays and the CreateMany default.
const ElementCount = fixture.ElementCount

// NewRecord returns an empty record, mainly for renderers and tests.
func NewRecord() *Record {
	return fixture.NewRecord()
}
