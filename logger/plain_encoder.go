package logger

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

// plainEncoder implements a calm, compact console encoder.
// Format: "13:04:35.182  WARN  p.venv  Virtual environment has no python dir  venv=/work/.venv"
//
// Output carries no ANSI sequences. Editors capture launcher stderr in
// output panes that do not interpret escape codes, so color would show up
// as literal garbage next to the server's own diagnostics.
type plainEncoder struct {
	zapcore.Encoder // Embed a base encoder for field serialization
}

func newPlainEncoder() *plainEncoder {
	// Create a base JSON encoder for field serialization (internal use only)
	return &plainEncoder{
		Encoder: zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
	}
}

func (enc *plainEncoder) Clone() zapcore.Encoder {
	return &plainEncoder{
		Encoder: enc.Encoder.Clone(),
	}
}

func (enc *plainEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	final := buffer.NewPool().Get()

	final.AppendString(ent.Time.Format("15:04:05.000"))

	// Level: only labeled for non-INFO entries
	if ent.Level != zapcore.InfoLevel {
		final.AppendString("  ")
		final.AppendString(levelLabel(ent.Level))
	}

	// Component name (abbreviated) for visual grouping
	if ent.LoggerName != "" {
		final.AppendString("  ")
		final.AppendString(abbreviateName(ent.LoggerName))
	}

	final.AppendString("  ")
	final.AppendString(ent.Message)

	// Fields: rendered as key=value pairs after the message
	if len(fields) > 0 {
		if rendered := renderFields(fields); rendered != "" {
			final.AppendString("  ")
			final.AppendString(rendered)
		}
	}

	final.AppendString("\n")
	return final, nil
}

// levelLabel returns the printable label for a level
func levelLabel(level zapcore.Level) string {
	switch level {
	case zapcore.DebugLevel:
		return "DEBUG"
	case zapcore.WarnLevel:
		return "WARN"
	case zapcore.ErrorLevel:
		return "ERROR"
	case zapcore.DPanicLevel, zapcore.PanicLevel, zapcore.FatalLevel:
		return level.CapitalString()
	default:
		return ""
	}
}

// abbreviateName shortens component names: entry.resolver -> e.resolver
func abbreviateName(name string) string {
	parts := strings.Split(name, ".")
	if len(parts) > 1 {
		return string(parts[0][0]) + "." + strings.Join(parts[1:], ".")
	}
	return name
}

// fieldValue extracts the value from a zap field, handling different field types.
// Every field ends up with SOME representation: a log field must never be
// silently discarded, or the one clue that mattered is gone.
func fieldValue(field zapcore.Field) string {
	switch field.Type {
	case zapcore.StringType:
		return field.String
	case zapcore.Int64Type, zapcore.Int32Type, zapcore.Int16Type, zapcore.Int8Type:
		return strconv.FormatInt(field.Integer, 10)
	case zapcore.Uint64Type, zapcore.Uint32Type, zapcore.Uint16Type, zapcore.Uint8Type, zapcore.UintptrType:
		return strconv.FormatUint(uint64(field.Integer), 10)
	case zapcore.BoolType:
		if field.Integer == 1 {
			return "true"
		}
		return "false"
	case zapcore.Float64Type:
		return strconv.FormatFloat(math.Float64frombits(uint64(field.Integer)), 'g', -1, 64)
	case zapcore.Float32Type:
		return strconv.FormatFloat(float64(math.Float32frombits(uint32(field.Integer))), 'g', -1, 32)
	case zapcore.DurationType:
		return time.Duration(field.Integer).String()
	case zapcore.ErrorType:
		if err, ok := field.Interface.(error); ok {
			return err.Error()
		}
		return ""
	case zapcore.SkipType:
		return ""
	}

	// Arrays, objects, times, and anything exotic go through the generic
	// object encoder
	obj := zapcore.NewMapObjectEncoder()
	field.AddTo(obj)
	if v, ok := obj.Fields[field.Key]; ok {
		return fmt.Sprintf("%v", v)
	}
	return ""
}

// renderFields formats structured fields as key=value pairs.
// Values containing whitespace are quoted so path lists stay unambiguous.
func renderFields(fields []zapcore.Field) string {
	pairs := make([]string, 0, len(fields))
	for _, field := range fields {
		if field.Key == "" {
			continue
		}
		val := fieldValue(field)
		if val == "" {
			continue
		}
		if strings.ContainsAny(val, " \t") {
			val = strconv.Quote(val)
		}
		pairs = append(pairs, field.Key+"="+val)
	}
	return strings.Join(pairs, " ")
}
