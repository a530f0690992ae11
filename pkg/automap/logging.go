package automap

// logging.go centralizes the zap.Field constructors used across this
// package so call sites stay one-line, matching the teacher's convention
// of keeping structured-field construction out of the hot path's main
// body.
//
// © 2025 automap authors. MIT License.

import (
	"go.uber.org/zap"

	"github.com/arnovian/automap/internal/hashpolicy"
)

func zapLenField(n int) zap.Field {
	return zap.Int("len", n)
}

func zapCapacityField(n int) zap.Field {
	return zap.Int("capacity", n)
}

func zapCategoryField(cat hashpolicy.Category) zap.Field {
	return zap.String("category", cat.String())
}
