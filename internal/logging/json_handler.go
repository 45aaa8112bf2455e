package logging

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"path/filepath"
	"strings"
	"time"
)

// floatPrecision matches the six decimals layout properties are stored with,
// so logged geometry lines up with the values in the property store.
const floatPrecision = 1e6

func newJSONHandler(w io.Writer, lvl *slog.LevelVar, addSource bool) slog.Handler {
	opts := slog.HandlerOptions{
		Level:     lvl,
		AddSource: addSource,
		ReplaceAttr: func(_ []string, attr slog.Attr) slog.Attr {
			switch attr.Key {
			case slog.TimeKey:
				attr.Key = "ts"
				if attr.Value.Kind() == slog.KindTime {
					attr.Value = slog.StringValue(attr.Value.Time().UTC().Format(time.RFC3339))
				}
				return attr
			case slog.LevelKey:
				attr.Key = "level"
				attr.Value = slog.StringValue(strings.ToLower(attr.Value.String()))
				return attr
			case slog.MessageKey:
				attr.Key = "msg"
				return attr
			case slog.SourceKey:
				if src, ok := attr.Value.Any().(*slog.Source); ok && src != nil {
					attr.Value = slog.StringValue(fmt.Sprintf("%s:%d", filepath.Base(src.File), src.Line))
				}
				return attr
			}
			if attr.Value.Kind() == slog.KindFloat64 {
				v := attr.Value.Float64()
				if !math.IsNaN(v) && !math.IsInf(v, 0) {
					attr.Value = slog.Float64Value(math.Round(v*floatPrecision) / floatPrecision)
				}
			}
			return attr
		},
	}

	return slog.NewJSONHandler(w, &opts)
}
