// Copyright 2014 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pngembed

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
)

// An Object is a PDF value handed to the host document. It is one of:
//
//	Name, a name constant (as in /DeviceRGB)
//	Integer, an integer
//	Dict, a dictionary of name-value pairs
//	Array, an array of objects
//	Reference, an indirect object reference
//
// An Object may also be nil, to represent the PDF null.
type Object interface{}

// Name is a PDF name, written without the leading slash.
type Name string

// Integer is a PDF integer.
type Integer int64

// Dict is a PDF dictionary.
type Dict map[Name]Object

// Array is a PDF array.
type Array []Object

// Reference is an indirect reference to an object in the host document.
type Reference struct {
	ID  uint32
	Gen uint16
}

func (r Reference) String() string {
	return fmt.Sprintf("%d %d R", r.ID, r.Gen)
}

// Format renders x in PDF syntax. Dictionary keys are sorted so the output
// is deterministic.
func Format(x Object) string {
	var buf bytes.Buffer
	writeObject(&buf, x)
	return buf.String()
}

func writeObject(buf *bytes.Buffer, x Object) {
	switch x := x.(type) {
	default:
		fmt.Fprint(buf, x)
	case nil:
		buf.WriteString("null")
	case Name:
		buf.WriteString("/")
		buf.WriteString(string(x))
	case Integer:
		buf.WriteString(strconv.FormatInt(int64(x), 10))
	case Dict:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, string(k))
		}
		sort.Strings(keys)
		buf.WriteString("<<")
		for i, k := range keys {
			if i > 0 {
				buf.WriteString(" ")
			}
			buf.WriteString("/")
			buf.WriteString(k)
			buf.WriteString(" ")
			writeObject(buf, x[Name(k)])
		}
		buf.WriteString(">>")
	case Array:
		buf.WriteString("[")
		for i, elem := range x {
			if i > 0 {
				buf.WriteString(" ")
			}
			writeObject(buf, elem)
		}
		buf.WriteString("]")
	case Reference:
		buf.WriteString(x.String())
	}
}
