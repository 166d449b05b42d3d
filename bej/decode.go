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

import "fmt"

// decodeContext is the tuple threaded through the recursive descent:
// the byte cursor, both dictionaries, the scope stack, the output
// emitter and the warning sink. It is created once per Decode call
// and mutated monotonically (the cursor only advances) until the
// top-level call returns.
type decodeContext struct {
	r       *Reader
	dicts   Dictionaries
	scopes  *scopeStack
	out     *emitter
	logf    func(string, ...any)
	profile *DecodeProfile
}

func (ctx *decodeContext) warn(offset int, format string, args ...any) {
	if ctx.logf == nil {
		return
	}
	msg := fmt.Sprintf(format, args...)
	ctx.logf("bej: warning: %s (offset %d)", msg, offset)
}

// decodeSFLV reads one Sequence-Format-Length-Value record starting
// at the current cursor and emits its JSON representation. regionEnd
// is the tighter of the payload bound and the enclosing container's
// value_end; withName controls whether a "<name>": prefix is emitted
// (set members carry names, array elements and the root record do
// not). This is the recursive core (C6) of the decoder.
func decodeSFLV(ctx *decodeContext, regionEnd int, withName bool) error {
	start := ctx.r.Pos()

	seqKey, selector, err := ctx.r.ReadSequence(regionEnd)
	if err != nil {
		return err
	}
	formatByte, _, err := ctx.r.ReadFormat(regionEnd)
	if err != nil {
		return err
	}
	length, err := ctx.r.ReadNNINT(regionEnd)
	if err != nil {
		return err
	}
	valueStart := ctx.r.Pos()
	valueEnd := valueStart + int(length)
	if valueEnd > regionEnd {
		return errTruncated(valueStart, "SFLV value extends past enclosing region")
	}

	dict := ctx.dicts.Select(DictSelector(selector))
	var entry Entry
	haveEntry := false
	if dict != nil {
		// Annotation properties are a flat namespace in Redfish: an
		// annotation-flagged sequence always names a top-level entry
		// in the annotation dictionary, never one nested under the
		// schema scope currently on the stack. The schema scope stack
		// is meaningless as an offset into a different dictionary's
		// buffer, so annotation lookups always use that dictionary's
		// own root scope instead of ctx.scopes.top().
		scope := ctx.scopes.top()
		if DictSelector(selector) == SelectAnnotation {
			scope = dict.RootScope()
		}
		entry, haveEntry, err = dict.FindEntry(scope, seqKey)
		if err != nil {
			return err
		}
	}
	var name string
	if haveEntry {
		name = dict.EntryName(entry)
	}
	if withName {
		key := name
		if !haveEntry || name == "" {
			key = fmt.Sprintf("unknown_%d", seqKey)
		}
		if err := ctx.out.writeKey(key); err != nil {
			return err
		}
	}

	format := Format(formatByte)
	switch format {
	case FormatSet, FormatArray:
		if !haveEntry {
			ctx.warn(start, "no dictionary entry for sequence %d; skipping container", seqKey)
			ctx.r.SetPos(valueEnd)
			return ctx.out.writeRaw("null")
		}
		child := dict.ChildScope(entry)
		if err := ctx.scopes.push(child, start); err != nil {
			return err
		}
		var derr error
		if format == FormatSet {
			derr = decodeSet(ctx, valueEnd)
		} else {
			derr = decodeArray(ctx, valueEnd)
		}
		ctx.scopes.pop()
		return derr
	case FormatEnum:
		value, err := ctx.r.Slice(int(length), regionEnd)
		if err != nil {
			return err
		}
		if !haveEntry {
			ctx.warn(start, "no dictionary entry for sequence %d; skipping enum", seqKey)
			return ctx.out.writeRaw("null")
		}
		return decodeEnum(ctx, dict, entry, value, valueStart)
	case FormatInteger:
		value, err := ctx.r.Slice(int(length), regionEnd)
		if err != nil {
			return err
		}
		return decodeInteger(ctx, value, valueStart)
	case FormatString:
		value, err := ctx.r.Slice(int(length), regionEnd)
		if err != nil {
			return err
		}
		return decodeString(ctx, value)
	case FormatBoolean:
		value, err := ctx.r.Slice(int(length), regionEnd)
		if err != nil {
			return err
		}
		return decodeBoolean(ctx, value)
	case FormatNull:
		value, err := ctx.r.Slice(int(length), regionEnd)
		if err != nil {
			return err
		}
		return decodeNull(ctx, value, valueStart)
	default:
		// REAL, BYTE_STRING, CHOICE, PROPERTY_ANNOTATION, RESOURCE_LINK,
		// RESOURCE_LINK_EXPANSION, and any code outside the enumeration:
		// recognized but not implemented in the core (spec §4.4).
		ctx.warn(start, "unsupported format %s; emitting null", ctx.profile.formatName(Format(formatByte)))
		ctx.r.SetPos(valueEnd)
		return ctx.out.writeRaw("null")
	}
}
