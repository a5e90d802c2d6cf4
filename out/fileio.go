// Copyright 2016 The Isolation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	goio "io"
	"os"
	"path"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Encoder defines encoders; e.g. gob or json
type Encoder interface {
	Encode(e interface{}) error
}

// Decoder defines decoders; e.g. gob or json
type Decoder interface {
	Decode(e interface{}) error
}

// GetEncoder returns a new encoder
func GetEncoder(w goio.Writer, enctype string) Encoder {
	if enctype == "json" {
		return json.NewEncoder(w)
	}
	return gob.NewEncoder(w)
}

// GetDecoder returns a new decoder
func GetDecoder(r goio.Reader, enctype string) Decoder {
	if enctype == "json" {
		return json.NewDecoder(r)
	}
	return gob.NewDecoder(r)
}

// SaveResults writes one result set to dir/<fnkey>_<kind>.<enctype> where
// the kind comes from the concrete result type; e.g. "static" for
// *StaticResults. The directory is created if absent
func SaveResults(dir, fnkey, enctype string, res interface{}, verbose bool) (err error) {
	kind := resultsKind(res)
	if kind == "" {
		return chk.Err("cannot save results of unknown type %T", res)
	}
	err = os.MkdirAll(dir, 0777)
	if err != nil {
		return
	}
	var buf bytes.Buffer
	enc := GetEncoder(&buf, enctype)
	err = enc.Encode(res)
	if err != nil {
		return chk.Err("cannot encode %s results\n%v", kind, err)
	}
	return saveFile(resultsPath(dir, fnkey, kind, enctype), &buf, verbose)
}

// ReadResults reads one result set from dir/<fnkey>_<kind>.<enctype> into
// res, which must point to one of the result types
func ReadResults(dir, fnkey, enctype string, res interface{}) (err error) {
	kind := resultsKind(res)
	if kind == "" {
		return chk.Err("cannot read results of unknown type %T", res)
	}
	fil, err := os.Open(resultsPath(dir, fnkey, kind, enctype))
	if err != nil {
		return
	}
	defer func() { fil.Close() }()
	dec := GetDecoder(fil, enctype)
	err = dec.Decode(res)
	if err != nil {
		return chk.Err("cannot decode %s results\n%v", kind, err)
	}
	return
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

func resultsKind(res interface{}) string {
	switch res.(type) {
	case *StaticResults:
		return "static"
	case *ModalResults:
		return "modal"
	case *TimeHistoryResults:
		return "timehist"
	case *PushoverResults:
		return "pushover"
	case *ComparisonResults:
		return "compare"
	}
	return ""
}

func resultsPath(dir, fnkey, kind, enctype string) string {
	return path.Join(dir, io.Sf("%s_%s.%s", fnkey, kind, enctype))
}

func saveFile(filename string, buf *bytes.Buffer, verbose bool) (err error) {
	fil, err := os.Create(filename)
	if err != nil {
		return
	}
	defer func() { err = fil.Close() }()
	_, err = fil.Write(buf.Bytes())
	if verbose {
		io.Pfblue2("file <%s> written\n", filename)
	}
	return
}
