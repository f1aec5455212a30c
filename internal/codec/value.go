package codec

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// ValueWriter builds a self-describing value encoding: a sequence of
// (field number, wire type, payload) records using the protobuf wire
// format. Unknown trailing fields added by a future version are simply
// skippable by an older reader, which is the forward-compatibility
// property §4.2 asks for without requiring a schema compiler.
type ValueWriter struct {
	buf []byte
}

// NewValueWriter returns an empty writer.
func NewValueWriter() *ValueWriter { return &ValueWriter{} }

// AppendUint64 writes field n as a varint.
func (w *ValueWriter) AppendUint64(n protowire.Number, v uint64) {
	w.buf = protowire.AppendTag(w.buf, n, protowire.VarintType)
	w.buf = protowire.AppendVarint(w.buf, v)
}

// AppendBytes writes field n as a length-delimited byte string.
func (w *ValueWriter) AppendBytes(n protowire.Number, v []byte) {
	w.buf = protowire.AppendTag(w.buf, n, protowire.BytesType)
	w.buf = protowire.AppendBytes(w.buf, v)
}

// AppendFelt writes field n as a length-delimited 32-byte felt.
func (w *ValueWriter) AppendFelt(n protowire.Number, f Felt) {
	w.AppendBytes(n, f[:])
}

// AppendMessage writes field n as a nested, length-delimited message
// produced by a sub-encoder.
func (w *ValueWriter) AppendMessage(n protowire.Number, sub *ValueWriter) {
	w.AppendBytes(n, sub.Bytes())
}

// Bytes returns the encoded value.
func (w *ValueWriter) Bytes() []byte { return w.buf }

// ValueReader walks a ValueWriter-produced encoding one field at a time.
type ValueReader struct {
	buf []byte
}

// NewValueReader wraps an encoded value for reading.
func NewValueReader(b []byte) *ValueReader { return &ValueReader{buf: b} }

// Done reports whether every field has been consumed.
func (r *ValueReader) Done() bool { return len(r.buf) == 0 }

// Next returns the next field's number and wire type without consuming
// its payload. Callers must follow with the matching Consume* call, or
// Skip to discard a field the reader's version does not recognize.
func (r *ValueReader) Next() (protowire.Number, protowire.Type, error) {
	if len(r.buf) == 0 {
		return 0, 0, fmt.Errorf("codec: no more fields")
	}
	num, typ, n := protowire.ConsumeTag(r.buf)
	if n < 0 {
		return 0, 0, fmt.Errorf("codec: malformed field tag: %w", protowire.ParseError(n))
	}
	return num, typ, nil
}

// ConsumeUint64 consumes the tag and a varint payload.
func (r *ValueReader) ConsumeUint64() (uint64, error) {
	_, _, tagLen := protowire.ConsumeTag(r.buf)
	if tagLen < 0 {
		return 0, fmt.Errorf("codec: malformed field tag: %w", protowire.ParseError(tagLen))
	}
	v, n := protowire.ConsumeVarint(r.buf[tagLen:])
	if n < 0 {
		return 0, fmt.Errorf("codec: malformed varint: %w", protowire.ParseError(n))
	}
	r.buf = r.buf[tagLen+n:]
	return v, nil
}

// ConsumeBytes consumes the tag and a length-delimited payload.
func (r *ValueReader) ConsumeBytes() ([]byte, error) {
	_, _, tagLen := protowire.ConsumeTag(r.buf)
	if tagLen < 0 {
		return nil, fmt.Errorf("codec: malformed field tag: %w", protowire.ParseError(tagLen))
	}
	v, n := protowire.ConsumeBytes(r.buf[tagLen:])
	if n < 0 {
		return nil, fmt.Errorf("codec: malformed length-delimited field: %w", protowire.ParseError(n))
	}
	r.buf = r.buf[tagLen+n:]
	return v, nil
}

// ConsumeFelt consumes the tag and a 32-byte felt payload.
func (r *ValueReader) ConsumeFelt() (Felt, error) {
	b, err := r.ConsumeBytes()
	if err != nil {
		return Felt{}, err
	}
	return FeltFromBytes(b)
}

// Skip discards the next field's payload, for a field number the reader
// doesn't recognize (added by a newer writer).
func (r *ValueReader) Skip() error {
	num, typ, tagLen := protowire.ConsumeTag(r.buf)
	if tagLen < 0 {
		return fmt.Errorf("codec: malformed field tag: %w", protowire.ParseError(tagLen))
	}
	n := protowire.ConsumeFieldValue(num, typ, r.buf[tagLen:])
	if n < 0 {
		return fmt.Errorf("codec: malformed field value: %w", protowire.ParseError(n))
	}
	r.buf = r.buf[tagLen+n:]
	return nil
}
