package logger

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

var bufferpool = buffer.NewPool()

// kvEncoder renders entries as "[time] [LEVEL] caller message key=value ...".
// Fields attached through With are kept in the embedded map encoder and
// printed before the per-entry fields.
type kvEncoder struct {
	*zapcore.MapObjectEncoder
	cfg zapcore.EncoderConfig
}

func newKVEncoder(cfg zapcore.EncoderConfig) zapcore.Encoder {
	return &kvEncoder{MapObjectEncoder: zapcore.NewMapObjectEncoder(), cfg: cfg}
}

func (e *kvEncoder) Clone() zapcore.Encoder {
	m := zapcore.NewMapObjectEncoder()
	for k, v := range e.Fields {
		m.Fields[k] = v
	}
	return &kvEncoder{MapObjectEncoder: m, cfg: e.cfg}
}

func (e *kvEncoder) EncodeEntry(entry zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	buf := bufferpool.Get()
	sep := e.cfg.ConsoleSeparator

	var parts partsEncoder
	if e.cfg.TimeKey != "" && e.cfg.EncodeTime != nil {
		e.cfg.EncodeTime(entry.Time, &parts)
	}
	if e.cfg.LevelKey != "" && e.cfg.EncodeLevel != nil {
		e.cfg.EncodeLevel(entry.Level, &parts)
	}
	if e.cfg.CallerKey != "" && entry.Caller.Defined && e.cfg.EncodeCaller != nil {
		e.cfg.EncodeCaller(entry.Caller, &parts)
	}
	for _, p := range parts {
		buf.AppendString(p)
		buf.AppendString(sep)
	}
	buf.AppendString(entry.Message)

	if len(e.Fields) > 0 {
		buf.AppendString(sep)
		buf.AppendString(joinSorted(e.Fields, sep, "="))
	}
	for _, f := range fields {
		buf.AppendString(sep)
		buf.AppendString(f.Key)
		buf.AppendByte('=')
		buf.AppendString(fieldValue(f))
	}

	if e.cfg.LineEnding != "" {
		buf.AppendString(e.cfg.LineEnding)
	} else {
		buf.AppendString(zapcore.DefaultLineEnding)
	}
	return buf, nil
}

// fieldValue flattens a field through a map encoder so every zap field type
// is handled by zap itself.
func fieldValue(f zapcore.Field) string {
	m := zapcore.NewMapObjectEncoder()
	f.AddTo(m)
	if v, ok := m.Fields[f.Key]; ok {
		return fmt.Sprint(v)
	}
	return joinSorted(m.Fields, ",", ":")
}

func joinSorted(fields map[string]any, sep, kv string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + kv + fmt.Sprint(fields[k])
	}
	return strings.Join(parts, sep)
}

// partsEncoder collects the primitive values emitted by time/level/caller encoders.
type partsEncoder []string

func (p *partsEncoder) add(v any)                      { *p = append(*p, fmt.Sprint(v)) }
func (p *partsEncoder) AppendBool(v bool)              { p.add(v) }
func (p *partsEncoder) AppendByteString(v []byte)      { p.add(string(v)) }
func (p *partsEncoder) AppendComplex128(v complex128)  { p.add(v) }
func (p *partsEncoder) AppendComplex64(v complex64)    { p.add(v) }
func (p *partsEncoder) AppendFloat64(v float64)        { p.add(v) }
func (p *partsEncoder) AppendFloat32(v float32)        { p.add(v) }
func (p *partsEncoder) AppendInt(v int)                { p.add(v) }
func (p *partsEncoder) AppendInt64(v int64)            { p.add(v) }
func (p *partsEncoder) AppendInt32(v int32)            { p.add(v) }
func (p *partsEncoder) AppendInt16(v int16)            { p.add(v) }
func (p *partsEncoder) AppendInt8(v int8)              { p.add(v) }
func (p *partsEncoder) AppendString(v string)          { p.add(v) }
func (p *partsEncoder) AppendUint(v uint)              { p.add(v) }
func (p *partsEncoder) AppendUint64(v uint64)          { p.add(v) }
func (p *partsEncoder) AppendUint32(v uint32)          { p.add(v) }
func (p *partsEncoder) AppendUint16(v uint16)          { p.add(v) }
func (p *partsEncoder) AppendUint8(v uint8)            { p.add(v) }
func (p *partsEncoder) AppendUintptr(v uintptr)        { p.add(v) }
func (p *partsEncoder) AppendDuration(v time.Duration) { p.add(v.String()) }
func (p *partsEncoder) AppendTime(v time.Time)         { p.add(v.String()) }
