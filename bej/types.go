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

// Format is a BEJ format code, the upper nibble of an SFLV's F byte
// and of a dictionary entry's format_nibble.
type Format byte

const (
	FormatSet                    Format = 0x00
	FormatArray                  Format = 0x01
	FormatNull                   Format = 0x02
	FormatInteger                Format = 0x03
	FormatEnum                   Format = 0x04
	FormatString                 Format = 0x05
	FormatReal                   Format = 0x06
	FormatBoolean                Format = 0x07
	FormatByteString             Format = 0x08
	FormatChoice                 Format = 0x09
	FormatPropertyAnnotation     Format = 0x0A
	FormatResourceLink           Format = 0x0E
	FormatResourceLinkExpansion  Format = 0x0F
)

func (f Format) String() string {
	switch f {
	case FormatSet:
		return "SET"
	case FormatArray:
		return "ARRAY"
	case FormatNull:
		return "NULL"
	case FormatInteger:
		return "INTEGER"
	case FormatEnum:
		return "ENUM"
	case FormatString:
		return "STRING"
	case FormatReal:
		return "REAL"
	case FormatBoolean:
		return "BOOLEAN"
	case FormatByteString:
		return "BYTE_STRING"
	case FormatChoice:
		return "CHOICE"
	case FormatPropertyAnnotation:
		return "PROPERTY_ANNOTATION"
	case FormatResourceLink:
		return "RESOURCE_LINK"
	case FormatResourceLinkExpansion:
		return "RESOURCE_LINK_EXPANSION"
	default:
		return "UNKNOWN"
	}
}

// container reports whether a format is decoded by a container
// decoder (Set or Array) rather than a scalar value decoder.
func (f Format) container() bool {
	return f == FormatSet || f == FormatArray
}

// SchemaClass is the byte-6 field of the payload header.
type SchemaClass byte

const (
	SchemaClassMajor            SchemaClass = 0x00
	SchemaClassEvent            SchemaClass = 0x01
	SchemaClassAnnotation       SchemaClass = 0x02
	SchemaClassCollectionMember SchemaClass = 0x03
	SchemaClassError            SchemaClass = 0x04
)

// DictSelector names which dictionary a sequence number's LSB selects.
type DictSelector byte

const (
	SelectSchema     DictSelector = 0
	SelectAnnotation DictSelector = 1
)
