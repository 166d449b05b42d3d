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

// decodeSet renders a SET as a JSON object. Children carry names
// resolved from the dictionary (with_name = true).
func decodeSet(ctx *decodeContext, valueEnd int) error {
	return decodeCollection(ctx, valueEnd, '{', '}', true)
}

// decodeArray renders an ARRAY as a JSON array. Elements are
// anonymous in JSON even though every element repeats the same wire
// sequence number (with_name = false); all elements of an array share
// one dictionary entry, so the pushed scope does not change between
// elements.
func decodeArray(ctx *decodeContext, valueEnd int) error {
	return decodeCollection(ctx, valueEnd, '[', ']', false)
}

func decodeCollection(ctx *decodeContext, valueEnd int, open, close byte, withName bool) error {
	if err := ctx.out.writeByte(open); err != nil {
		return err
	}
	if err := ctx.out.writeRaw("\n"); err != nil {
		return err
	}
	ctx.out.depth++

	n, err := ctx.r.ReadNNINT(valueEnd)
	if err != nil {
		return err
	}
	for i := 0; i < int(n) && ctx.r.Pos() < valueEnd; i++ {
		if err := ctx.out.writeIndent(); err != nil {
			return err
		}
		if err := decodeSFLV(ctx, valueEnd, withName); err != nil {
			return err
		}
		hasNext := i+1 < int(n) && ctx.r.Pos() < valueEnd
		if hasNext {
			if err := ctx.out.writeByte(','); err != nil {
				return err
			}
		}
		if err := ctx.out.writeRaw("\n"); err != nil {
			return err
		}
	}

	ctx.out.depth--
	if ctx.r.Pos() != valueEnd {
		ctx.warn(ctx.r.Pos(), "container contents end at %d, declared value_end is %d; snapping cursor", ctx.r.Pos(), valueEnd)
		ctx.r.SetPos(valueEnd)
	}
	if err := ctx.out.writeIndent(); err != nil {
		return err
	}
	return ctx.out.writeByte(close)
}
