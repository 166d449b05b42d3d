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
	"os"

	"golang.org/x/exp/maps"
	"gopkg.in/yaml.v2"
)

// DecodeProfile carries the handful of output knobs that spec.md
// leaves as external collaborators: the indent string and a default
// path for the annotation dictionary. It is the analogue of the
// teacher's db.Definition: an optional YAML document, defaulted when
// absent.
type DecodeProfile struct {
	// Indent is repeated once per nesting level. Defaults to "\t"
	// (spec §6.3: "tab-indented").
	Indent string `yaml:"indent"`

	// FormatNames overrides the human-readable name logged for a BEJ
	// format code in warnings (it never changes decode semantics).
	FormatNames map[string]string `yaml:"formatNames"`

	// AnnotationDictionary is the default path to the annotation
	// dictionary file, used when the CLI's -a flag is not given.
	AnnotationDictionary string `yaml:"annotationDictionary"`
}

var defaultFormatNames = map[string]string{}

// DefaultProfile returns the built-in profile used when no -profile
// file is given: tab indent, DMTF format names, no annotation
// dictionary.
func DefaultProfile() *DecodeProfile {
	return &DecodeProfile{
		Indent:      "\t",
		FormatNames: maps.Clone(defaultFormatNames),
	}
}

// LoadProfile reads and parses a YAML DecodeProfile from path,
// filling in defaults for any field the document omits.
func LoadProfile(path string) (*DecodeProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading decode profile: %w", err)
	}
	p := DefaultProfile()
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parsing decode profile %s: %w", path, err)
	}
	if p.Indent == "" {
		p.Indent = "\t"
	}
	if p.FormatNames == nil {
		p.FormatNames = maps.Clone(defaultFormatNames)
	}
	return p, nil
}

// formatName returns the profile's override name for code, if any,
// else code's own String().
func (p *DecodeProfile) formatName(code Format) string {
	if p == nil {
		return code.String()
	}
	if name, ok := p.FormatNames[fmt.Sprintf("0x%02X", byte(code))]; ok {
		return name
	}
	return code.String()
}
