// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package bej

import (
	"fmt"
	"io"
)

// options collects the functional options accepted by Decode.
type options struct {
	annotationDict []byte
	profile        *DecodeProfile
	logf           func(string, ...any)
}

// Option configures a Decode call.
type Option func(*options)

// WithAnnotationDictionary supplies the annotation dictionary's raw
// bytes, so sequences whose LSB selects it (DictSelector
// SelectAnnotation) resolve names instead of falling back to
// unknown_<n>.
func WithAnnotationDictionary(data []byte) Option {
	return func(o *options) { o.annotationDict = data }
}

// WithProfile overrides the default DecodeProfile (indent string,
// format-name overrides, default annotation dictionary path).
func WithProfile(p *DecodeProfile) Option {
	return func(o *options) { o.profile = p }
}

// WithLogger routes warnings (spec §7: container length mismatch,
// unknown format code, nonzero reserved header flags, dictionary_size
// disagreement) to logf instead of discarding them.
func WithLogger(logf func(string, ...any)) Option {
	return func(o *options) { o.logf = logf }
}

// Decode validates payload's 7-byte header, parses schemaDict, and
// walks the root SFLV, writing pretty-printed JSON to w. It is the
// top-level driver (C7): it primes the root scope from the schema
// dictionary and invokes the SFLV dispatcher (C6) with with_name =
// false, since the root record has no enclosing key.
//
// Decode returns a non-nil *DecodeError (wrapped, where applicable)
// on any of the fatal conditions in spec §7. Container-length
// mismatches and unknown format codes are warnings, not failures, and
// do not cause Decode to return an error.
func Decode(w io.Writer, payload, schemaDict []byte, opts ...Option) error {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	logf := o.logf
	if logf == nil {
		logf = func(string, ...any) {}
	}

	if len(payload) < 7 {
		return errTruncated(0, "payload shorter than 7-byte header")
	}
	if payload[0] != 0x00 || payload[1] != 0xF0 ||
		(payload[2] != 0xF0 && payload[2] != 0xF1) || payload[3] != 0xF1 {
		return errUnsupportedVersion(0, fmt.Sprintf("unrecognized version bytes % x", payload[0:4]))
	}
	if payload[4] != 0 || payload[5] != 0 {
		logf("bej: warning: reserved header flags nonzero: %02x %02x (offset 4)", payload[4], payload[5])
	}
	// Schema classes 0x00-0x03 are accepted, 0x04 (ERROR) and anything
	// else is rejected. spec.md §9 flags the reference's treatment of
	// this byte as ambiguous; this is the resolved Open Question.
	class := SchemaClass(payload[6])
	switch class {
	case SchemaClassMajor, SchemaClassEvent, SchemaClassAnnotation, SchemaClassCollectionMember:
	case SchemaClassError:
		return errUnsupportedSchemaClass(6, "ERROR schema class payloads are not supported")
	default:
		return errUnsupportedSchemaClass(6, fmt.Sprintf("unrecognized schema class 0x%02X", payload[6]))
	}
	if len(payload) < 8 {
		return errTruncated(7, "payload has no root SFLV record")
	}

	schema, err := ParseDictionary(schemaDict, logf)
	if err != nil {
		return err
	}

	var annotation *Dictionary
	if o.annotationDict != nil {
		annotation, err = ParseAnnotationDictionary(o.annotationDict, logf)
		if err != nil {
			return err
		}
	}

	profile := o.profile
	if profile == nil {
		profile = DefaultProfile()
	}

	r := NewReader(payload)
	r.SetPos(7)
	out := newEmitter(w, profile.Indent)
	ctx := &decodeContext{
		r:       r,
		dicts:   Dictionaries{Schema: schema, Annotation: annotation},
		scopes:  newScopeStack(schema.RootScope()),
		out:     out,
		logf:    logf,
		profile: profile,
	}

	if err := decodeSFLV(ctx, len(payload), false); err != nil {
		return err
	}
	if err := out.writeRaw("\n"); err != nil {
		return err
	}
	if err := out.flush(); err != nil {
		return errIO(len(payload), err)
	}
	return nil
}
