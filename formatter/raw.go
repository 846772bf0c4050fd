package formatter

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/davecgh/go-spew/spew"
)

var dumper = &spew.ConfigState{
	Indent:                  " ",
	MaxDepth:                10,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// FormatRaw renders args space-separated with a trailing newline and no
// metadata. Scalars are written directly; composite values go through spew.
// It panics with *OverflowError if the result does not fit.
func FormatRaw(args []any) *Record {
	r := &Record{}
	for i, arg := range args {
		if i > 0 {
			r.appendByte("raw", ' ')
		}
		r.appendFunc("raw", func(dst []byte) []byte {
			return appendValue(dst, arg)
		})
	}
	r.terminate()
	return r
}

func appendValue(dst []byte, v any) []byte {
	switch val := v.(type) {
	case nil:
		return append(dst, "nil"...)
	case string:
		return append(dst, val...)
	case []byte:
		return append(dst, val...)
	case error:
		return append(dst, val.Error()...)
	case fmt.Stringer:
		return append(dst, val.String()...)
	case bool:
		return strconv.AppendBool(dst, val)
	case int:
		return strconv.AppendInt(dst, int64(val), 10)
	case int64:
		return strconv.AppendInt(dst, val, 10)
	case int32:
		return strconv.AppendInt(dst, int64(val), 10)
	case uint:
		return strconv.AppendUint(dst, uint64(val), 10)
	case uint64:
		return strconv.AppendUint(dst, val, 10)
	case uint32:
		return strconv.AppendUint(dst, uint64(val), 10)
	case float64:
		return strconv.AppendFloat(dst, val, 'g', -1, 64)
	case float32:
		return strconv.AppendFloat(dst, float64(val), 'g', -1, 32)
	default:
		var b bytes.Buffer
		dumper.Fdump(&b, v)
		return append(dst, bytes.TrimSpace(b.Bytes())...)
	}
}
