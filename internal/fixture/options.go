package fixture

import (
	"io"
	"log/slog"

	"github.com/goliatone/go-autofixture/pkg/random"
)

// ElementCount is the number of values generated for every array field and
// the default for CreateMany.
const ElementCount = 3

// Options configures the Builder. Options are constructed by the public
// adapter in pkg/fixture and passed into New.
type Options struct {
	Generator *random.Generator
	Logger    *slog.Logger
}

func defaultOptions() Options {
	return Options{
		Generator: random.Default(),
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}
