package store

import (
	"math"

	"fortio.org/safecast"

	"github.com/gogpu/uniforms/ir"
)

// encode converts v to the canonical cell representation of kind dst.
func encode(dst ir.ScalarKind, v ir.ScalarValue) uint32 {
	switch dst {
	case ir.ScalarFloat:
		return math.Float32bits(toFloat(v))
	case ir.ScalarSint:
		return uint32(toInt(v)) //nolint:gosec // G115: two's-complement storage
	case ir.ScalarUint:
		return toUint(v)
	case ir.ScalarBool:
		if isTrue(v) {
			return 1
		}
		return 0
	default:
		panic("store: unknown scalar kind " + dst.String())
	}
}

// decode reinterprets a cell word stored as kind src.
func decode(src ir.ScalarKind, bits uint32) ir.ScalarValue {
	switch src {
	case ir.ScalarFloat:
		return ir.Float(math.Float32frombits(bits))
	case ir.ScalarSint:
		return ir.Sint(int32(bits)) //nolint:gosec // G115: two's-complement storage
	case ir.ScalarUint:
		return ir.Uint(bits)
	case ir.ScalarBool:
		return ir.Bool(bits != 0)
	default:
		panic("store: unknown scalar kind " + src.String())
	}
}

func toFloat(v ir.ScalarValue) float32 {
	switch v.Kind {
	case ir.ScalarFloat:
		return v.Float32()
	case ir.ScalarSint:
		return float32(v.Int32())
	case ir.ScalarUint:
		return float32(v.Uint32())
	case ir.ScalarBool:
		if v.Bits != 0 {
			return 1
		}
		return 0
	default:
		return 0
	}
}

func toInt(v ir.ScalarValue) int32 {
	switch v.Kind {
	case ir.ScalarFloat:
		return roundToInt32(v.Float32())
	case ir.ScalarSint:
		return v.Int32()
	case ir.ScalarUint:
		if v.Uint32() > math.MaxInt32 {
			return math.MaxInt32
		}
		return int32(v.Uint32()) //nolint:gosec // G115: checked above
	case ir.ScalarBool:
		if v.Bits != 0 {
			return 1
		}
		return 0
	default:
		return 0
	}
}

func toUint(v ir.ScalarValue) uint32 {
	switch v.Kind {
	case ir.ScalarFloat:
		return roundToUint32(v.Float32())
	case ir.ScalarSint:
		if v.Int32() < 0 {
			return 0
		}
		return uint32(v.Int32())
	case ir.ScalarUint:
		return v.Uint32()
	case ir.ScalarBool:
		if v.Bits != 0 {
			return 1
		}
		return 0
	default:
		return 0
	}
}

func isTrue(v ir.ScalarValue) bool {
	switch v.Kind {
	case ir.ScalarFloat:
		return v.Float32() != 0
	case ir.ScalarSint, ir.ScalarUint, ir.ScalarBool:
		return uint32(v.Bits) != 0
	default:
		return false
	}
}

// roundToInt32 clamps f to the int32 range and then rounds it to the
// nearest integer. NaN converts to 0.
func roundToInt32(f float32) int32 {
	x := float64(f)
	switch {
	case math.IsNaN(x):
		return 0
	case x <= math.MinInt32:
		return math.MinInt32
	case x >= math.MaxInt32:
		return math.MaxInt32
	}
	r, err := safecast.Round[int32](x)
	if err != nil {
		return 0
	}
	return r
}

// roundToUint32 clamps f to the uint32 range and then rounds it to the
// nearest integer. NaN converts to 0.
func roundToUint32(f float32) uint32 {
	x := float64(f)
	switch {
	case math.IsNaN(x), x <= 0:
		return 0
	case x >= math.MaxUint32:
		return math.MaxUint32
	}
	r, err := safecast.Round[uint32](x)
	if err != nil {
		return 0
	}
	return r
}
