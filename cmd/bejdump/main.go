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

// Command bejdump decodes a BEJ payload against a schema dictionary
// and writes pretty-printed JSON. See cmd/dump in the teacher repo for
// the CLI shape this follows: flag-parsed inputs, a single output
// sink, os.Exit(1) on any failure.
package main

import (
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"

	"github.com/openbej/bejdump/bej"
)

// maxInputSize is the reference harness's cap on both required
// inputs (spec §6.4).
const maxInputSize = 65536

func main() {
	var (
		bejPath     = flag.String("b", "", "BEJ payload file (required)")
		schemaPath  = flag.String("s", "", "schema dictionary file (required)")
		outPath     = flag.String("o", "", "output file (default: standard output)")
		annotPath   = flag.String("a", "", "annotation dictionary file")
		profilePath = flag.String("profile", "", "decode profile YAML file")
		verbose     = flag.Bool("v", false, "log warnings to standard error")
	)
	flag.Usage = usage
	flag.Parse()

	if *bejPath == "" || *schemaPath == "" {
		usage()
		os.Exit(1)
	}

	traceID := uuid.New().String()

	var logf func(string, ...any)
	if *verbose {
		logf = func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, "[%s] "+format+"\n", append([]any{traceID}, args...)...)
		}
	}

	payload, err := readInput(*bejPath)
	if err != nil {
		fail(err)
	}
	schemaDict, err := readInput(*schemaPath)
	if err != nil {
		fail(err)
	}

	var opts []bej.Option
	if logf != nil {
		opts = append(opts, bej.WithLogger(logf))
	}

	var profile *bej.DecodeProfile
	if *profilePath != "" {
		profile, err = bej.LoadProfile(*profilePath)
		if err != nil {
			fail(err)
		}
		opts = append(opts, bej.WithProfile(profile))
	}

	annotPathToUse := *annotPath
	if annotPathToUse == "" && profile != nil {
		annotPathToUse = profile.AnnotationDictionary
	}
	if annotPathToUse != "" {
		annotDict, err := readInput(annotPathToUse)
		if err != nil {
			fail(err)
		}
		opts = append(opts, bej.WithAnnotationDictionary(annotDict))
	}

	if *verbose {
		logf("dictionary fingerprint=%016x", bej.Fingerprint(schemaDict))
	}

	out := os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			fail(fmt.Errorf("opening output file %s: %w", *outPath, err))
		}
		defer f.Close()
		out = f
	}

	w := bufio.NewWriter(out)
	if err := bej.Decode(w, payload, schemaDict, opts...); err != nil {
		fail(err)
	}
	if err := w.Flush(); err != nil {
		fail(err)
	}
}

// readInput reads path fully into memory, enforcing the reference
// harness's 64KiB cap, and transparently gzip-decompresses it when
// the name ends in .gz. A path of "-" reads from standard input,
// following the teacher CLI's convention for streamed input.
func readInput(path string) ([]byte, error) {
	var data []byte
	if path == "-" {
		raw, err := io.ReadAll(io.LimitReader(os.Stdin, maxInputSize+1))
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		if len(raw) > maxInputSize {
			return nil, fmt.Errorf("stdin input exceeds %d byte limit", maxInputSize)
		}
		data = raw
	} else {
		fi, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", path, err)
		}
		if fi.Size() > maxInputSize {
			return nil, fmt.Errorf("input %s exceeds %d byte limit", path, maxInputSize)
		}
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
	}
	if !strings.HasSuffix(path, ".gz") {
		return data, nil
	}
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("opening gzip stream %s: %w", path, err)
	}
	defer zr.Close()
	out, err := io.ReadAll(io.LimitReader(zr, maxInputSize+1))
	if err != nil {
		return nil, fmt.Errorf("decompressing %s: %w", path, err)
	}
	if len(out) > maxInputSize {
		return nil, fmt.Errorf("decompressed input %s exceeds %d byte limit", path, maxInputSize)
	}
	return out, nil
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: bejdump -b payload.bej -s schema.dict [-a annotation.dict] [-o out.json] [-profile profile.yaml] [-v]")
	flag.PrintDefaults()
}
