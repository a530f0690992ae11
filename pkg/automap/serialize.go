package automap

// serialize.go implements the persisted form described in spec.md §6 and
// SPEC_FULL.md §10: a small fixed header (variant, category, width,
// count) followed by either raw native-order element bytes (every
// primitive category) or a gob-encoded ordered key sequence (the generic
// category). The table itself is never serialized — Deserialize always
// rebuilds it via the same construction paths used for fresh input,
// matching the teacher's "derive, don't persist, anything recomputable"
// posture in its own arena/clockpro snapshotting.
//
// © 2025 automap authors. MIT License.

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"io"
	"math"

	"github.com/arnovian/automap/internal/hashpolicy"
	"github.com/arnovian/automap/internal/typedarray"
)

type wireVariant uint8

const (
	wireMutable wireVariant = iota
	wireFrozen
)

// wireHeader is written verbatim (fixed-size, little-endian) at the start
// of every serialized map.
type wireHeader struct {
	Variant  wireVariant
	Category uint8
	Width    uint32 // element width in bytes (Bytes/Unicode: row width)
	Count    uint32
}

const headerSize = 1 + 1 + 4 + 4

func writeHeader(w io.Writer, h wireHeader) error {
	buf := make([]byte, headerSize)
	buf[0] = byte(h.Variant)
	buf[1] = h.Category
	binary.LittleEndian.PutUint32(buf[2:6], h.Width)
	binary.LittleEndian.PutUint32(buf[6:10], h.Count)
	_, err := w.Write(buf)
	return err
}

func readHeader(r io.Reader) (wireHeader, error) {
	buf := make([]byte, headerSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return wireHeader{}, err
	}
	return wireHeader{
		Variant:  wireVariant(buf[0]),
		Category: buf[1],
		Width:    binary.LittleEndian.Uint32(buf[2:6]),
		Count:    binary.LittleEndian.Uint32(buf[6:10]),
	}, nil
}

// Serialize writes f's persisted form to w (SPEC_FULL.md §10).
func (f *FrozenMap) Serialize(w io.Writer) error {
	return serializeCore(w, f.core, wireFrozen)
}

// Serialize writes m's persisted form to w.
func (m *Map) Serialize(w io.Writer) error {
	return serializeCore(w, m.core, wireMutable)
}

func serializeCore(w io.Writer, c *core, variant wireVariant) error {
	width := c.category.Width()
	if err := writeHeader(w, wireHeader{
		Variant:  variant,
		Category: uint8(c.category),
		Width:    uint32(width),
		Count:    uint32(c.Len()),
	}); err != nil {
		return err
	}
	if c.category == hashpolicy.Generic {
		return serializeGeneric(w, c)
	}
	return serializePrimitive(w, c, width)
}

func serializeGeneric(w io.Writer, c *core) error {
	keys := make([]any, 0, c.Len())
	for k := range c.Keys() {
		keys = append(keys, k)
	}
	return gob.NewEncoder(w).Encode(keys)
}

func serializePrimitive(w io.Writer, c *core, width int) error {
	if c.category == hashpolicy.Bytes || c.category == hashpolicy.Unicode {
		return fmt.Errorf("automap: serialize: %s category not yet supported by the wire format", c.category)
	}
	var buf bytes.Buffer
	for k := range c.Keys() {
		if err := binary.Write(&buf, binary.LittleEndian, toWireValue(c.category, k)); err != nil {
			return fmt.Errorf("automap: serialize element: %w", err)
		}
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func toWireValue(cat hashpolicy.Category, k any) any {
	switch cat {
	case hashpolicy.Int8:
		return int8(asInt64(k))
	case hashpolicy.Int16:
		return int16(asInt64(k))
	case hashpolicy.Int32:
		return int32(asInt64(k))
	case hashpolicy.Int64:
		return asInt64(k)
	case hashpolicy.Uint8:
		return uint8(asUint64(k))
	case hashpolicy.Uint16:
		return uint16(asUint64(k))
	case hashpolicy.Uint32:
		return uint32(asUint64(k))
	case hashpolicy.Uint64:
		return asUint64(k)
	case hashpolicy.Float32:
		return float32(asFloat64(k))
	case hashpolicy.Float64:
		return asFloat64(k)
	case hashpolicy.Float16:
		return uint16(k.(hashpolicy.Float16))
	default:
		return int8(0)
	}
}

func asInt64(k any) int64 {
	switch v := k.(type) {
	case int8:
		return int64(v)
	case int16:
		return int64(v)
	case int32:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	default:
		return 0
	}
}

func asUint64(k any) uint64 {
	switch v := k.(type) {
	case uint8:
		return uint64(v)
	case uint16:
		return uint64(v)
	case uint32:
		return uint64(v)
	case uint64:
		return v
	case uint:
		return uint64(v)
	default:
		return 0
	}
}

func asFloat64(k any) float64 {
	switch v := k.(type) {
	case float32:
		return float64(v)
	case float64:
		return v
	default:
		return math.NaN()
	}
}

// DeserializeFrozen reconstructs a *FrozenMap previously written by
// Serialize. For a primitive category it rebuilds via the typed-array
// fast path over a freshly allocated, owned buffer, frozen with
// typedarray.Freeze before handoff since the fast path only ever accepts
// an immutable view (the wire format never preserves pointer identity, so
// the restored map always owns a fresh buffer anyway); for the generic
// category it gob-decodes the ordered key sequence — callers must
// gob.Register every concrete type they expect to round-trip, exactly as
// encoding/gob requires.
func DeserializeFrozen(r io.Reader, opts ...Option) (*FrozenMap, error) {
	h, err := readHeader(r)
	if err != nil {
		return nil, err
	}
	cat := hashpolicy.Category(h.Category)
	if cat == hashpolicy.Generic {
		var keys []any
		if err := gob.NewDecoder(r).Decode(&keys); err != nil {
			return nil, err
		}
		return NewFrozen(sliceSeq(keys), opts...)
	}

	raw := make([]byte, int(h.Width)*int(h.Count))
	if _, err := io.ReadFull(r, raw); err != nil {
		return nil, err
	}
	arr, rowWidth, err := arrayFromWire(cat, int(h.Width), int(h.Count), raw)
	if err != nil {
		return nil, err
	}
	view, err := typedarray.Freeze(arr)
	if err != nil {
		return nil, err
	}
	return NewFrozenFromArray(view, rowWidth, opts...)
}

// arrayFromWire reconstructs a native Go slice of the appropriate element
// type from raw little-endian bytes, ready for typedarray.Recognize.
// Bytes and Unicode are not yet supported by the wire format's
// deserialize path (only scalar numeric categories round-trip through
// the fast path today); callers needing those should persist via the
// generic path instead.
func arrayFromWire(cat hashpolicy.Category, width, count int, raw []byte) (any, int, error) {
	r := bytes.NewReader(raw)
	switch cat {
	case hashpolicy.Int8:
		s := make([]int8, count)
		return s, 0, binary.Read(r, binary.LittleEndian, s)
	case hashpolicy.Int16:
		s := make([]int16, count)
		return s, 0, binary.Read(r, binary.LittleEndian, s)
	case hashpolicy.Int32:
		s := make([]int32, count)
		return s, 0, binary.Read(r, binary.LittleEndian, s)
	case hashpolicy.Int64:
		s := make([]int64, count)
		return s, 0, binary.Read(r, binary.LittleEndian, s)
	case hashpolicy.Uint8:
		s := make([]uint8, count)
		return s, 0, binary.Read(r, binary.LittleEndian, s)
	case hashpolicy.Uint16:
		s := make([]uint16, count)
		return s, 0, binary.Read(r, binary.LittleEndian, s)
	case hashpolicy.Uint32:
		s := make([]uint32, count)
		return s, 0, binary.Read(r, binary.LittleEndian, s)
	case hashpolicy.Uint64:
		s := make([]uint64, count)
		return s, 0, binary.Read(r, binary.LittleEndian, s)
	case hashpolicy.Float32:
		s := make([]float32, count)
		return s, 0, binary.Read(r, binary.LittleEndian, s)
	case hashpolicy.Float64:
		s := make([]float64, count)
		return s, 0, binary.Read(r, binary.LittleEndian, s)
	case hashpolicy.Float16:
		s := make(typedarray.Float16Slice, count)
		return s, 0, binary.Read(r, binary.LittleEndian, s)
	default:
		return nil, 0, fmt.Errorf("automap: deserialize: unsupported category %s", cat)
	}
}
