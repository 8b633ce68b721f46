// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package replay

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
	"google.golang.org/protobuf/encoding/protowire"

	perrors "github.com/tochemey/pcheck/errors"
)

// record fields, laid out as a protobuf message
const (
	fieldID        protowire.Number = 1
	fieldTest      protowire.Number = 2
	fieldStrategy  protowire.Number = 3
	fieldSeed      protowire.Number = 4
	fieldIteration protowire.Number = 5
	fieldBug       protowire.Number = 6
	fieldDecision  protowire.Number = 7
	fieldMaxSteps  protowire.Number = 8
)

// decision fields
const (
	fieldKind    protowire.Number = 1
	fieldValue   protowire.Number = 2
	fieldSampled protowire.Number = 3
)

// the encoder and decoder are safe for concurrent EncodeAll and DecodeAll calls
var (
	encoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault), zstd.WithEncoderConcurrency(1))
	decoder, _ = zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
)

// Encode serializes the record in protobuf wire format and compresses it with zstd.
func Encode(record *Record) ([]byte, error) {
	if record == nil {
		return nil, perrors.NewErrInvalidRecord(fmt.Errorf("nil record"))
	}

	var b []byte
	b = appendString(b, fieldID, record.ID)
	b = appendString(b, fieldTest, record.Test)
	b = appendString(b, fieldStrategy, record.Strategy)
	b = protowire.AppendTag(b, fieldSeed, protowire.VarintType)
	b = protowire.AppendVarint(b, record.Seed)
	b = protowire.AppendTag(b, fieldIteration, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(record.Iteration))
	b = appendString(b, fieldBug, record.Bug)
	b = protowire.AppendTag(b, fieldMaxSteps, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(record.MaxSteps))

	var d []byte
	for _, decision := range record.Decisions {
		d = d[:0]
		d = protowire.AppendTag(d, fieldKind, protowire.VarintType)
		d = protowire.AppendVarint(d, uint64(decision.Kind))
		d = protowire.AppendTag(d, fieldValue, protowire.VarintType)
		d = protowire.AppendVarint(d, protowire.EncodeZigZag(decision.Value))
		d = protowire.AppendTag(d, fieldSampled, protowire.VarintType)
		d = protowire.AppendVarint(d, protowire.EncodeBool(decision.Sampled))

		b = protowire.AppendTag(b, fieldDecision, protowire.BytesType)
		b = protowire.AppendBytes(b, d)
	}

	return encoder.EncodeAll(b, nil), nil
}

// Decode is the inverse of Encode. Unknown fields are skipped.
func Decode(data []byte) (*Record, error) {
	b, err := decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, perrors.NewErrInvalidRecord(err)
	}

	record := new(Record)
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, perrors.NewErrInvalidRecord(protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case num == fieldID && typ == protowire.BytesType:
			record.ID, n = protowire.ConsumeString(b)
		case num == fieldTest && typ == protowire.BytesType:
			record.Test, n = protowire.ConsumeString(b)
		case num == fieldStrategy && typ == protowire.BytesType:
			record.Strategy, n = protowire.ConsumeString(b)
		case num == fieldBug && typ == protowire.BytesType:
			record.Bug, n = protowire.ConsumeString(b)
		case num == fieldSeed && typ == protowire.VarintType:
			record.Seed, n = protowire.ConsumeVarint(b)
		case num == fieldIteration && typ == protowire.VarintType:
			var v uint64
			v, n = protowire.ConsumeVarint(b)
			record.Iteration = int(v)
		case num == fieldMaxSteps && typ == protowire.VarintType:
			var v uint64
			v, n = protowire.ConsumeVarint(b)
			record.MaxSteps = int(v)
		case num == fieldDecision && typ == protowire.BytesType:
			var raw []byte
			raw, n = protowire.ConsumeBytes(b)
			if n >= 0 {
				decision, err := decodeDecision(raw)
				if err != nil {
					return nil, err
				}
				record.Decisions = append(record.Decisions, decision)
			}
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
		}

		if n < 0 {
			return nil, perrors.NewErrInvalidRecord(protowire.ParseError(n))
		}
		b = b[n:]
	}

	return record, nil
}

func decodeDecision(b []byte) (Decision, error) {
	var decision Decision
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return decision, perrors.NewErrInvalidRecord(protowire.ParseError(n))
		}
		b = b[n:]

		if typ != protowire.VarintType {
			n = protowire.ConsumeFieldValue(num, typ, b)
		} else {
			var v uint64
			v, n = protowire.ConsumeVarint(b)
			switch num {
			case fieldKind:
				decision.Kind = Kind(v)
			case fieldValue:
				decision.Value = protowire.DecodeZigZag(v)
			case fieldSampled:
				decision.Sampled = protowire.DecodeBool(v)
			}
		}

		if n < 0 {
			return decision, perrors.NewErrInvalidRecord(protowire.ParseError(n))
		}
		b = b[n:]
	}

	if decision.Kind < KindOperation || decision.Kind > KindDelay {
		return decision, perrors.NewErrInvalidRecord(fmt.Errorf("unknown decision kind %d", decision.Kind))
	}
	return decision, nil
}

func appendString(b []byte, num protowire.Number, value string) []byte {
	if value == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, value)
}
