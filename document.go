// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pngembed

import (
	"bytes"
	"fmt"
	"sort"
	"sync"
)

// Document is the part of a PDF writer that Embed needs.
//
// Alloc reserves a new indirect object reference. PutStream stores a stream
// object under a reference obtained from Alloc; data is already encoded as
// described by the /Filter entry of hdr, and hdr already carries /Length.
type Document interface {
	Alloc() Reference
	PutStream(ref Reference, hdr Dict, data []byte) error
}

// Stream is a stream object held by a MemoryDocument.
type Stream struct {
	Ref  Reference
	Hdr  Dict
	Data []byte
}

// MemoryDocument is a Document that keeps its objects in memory.
// It is safe for concurrent use.
type MemoryDocument struct {
	mu      sync.Mutex
	next    uint32
	streams map[Reference]*Stream
}

// NewMemoryDocument returns an empty document. Object numbers start at 1.
func NewMemoryDocument() *MemoryDocument {
	return &MemoryDocument{
		next:    1,
		streams: make(map[Reference]*Stream),
	}
}

// Alloc implements Document.
func (d *MemoryDocument) Alloc() Reference {
	d.mu.Lock()
	defer d.mu.Unlock()
	ref := Reference{ID: d.next}
	d.next++
	return ref
}

// PutStream implements Document.
func (d *MemoryDocument) PutStream(ref Reference, hdr Dict, data []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if ref.ID == 0 || ref.ID >= d.next {
		return fmt.Errorf("reference %v was not allocated", ref)
	}
	if _, dup := d.streams[ref]; dup {
		return fmt.Errorf("object %v already written", ref)
	}
	d.streams[ref] = &Stream{Ref: ref, Hdr: hdr, Data: data}
	return nil
}

// Stream returns the stream stored under ref, or nil.
func (d *MemoryDocument) Stream(ref Reference) *Stream {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.streams[ref]
}

// Len returns the number of stored streams.
func (d *MemoryDocument) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.streams)
}

// String renders every stored object header in object-number order, as
// "N G obj <<...>> stream (L bytes)" lines. Stream data is not included.
func (d *MemoryDocument) String() string {
	d.mu.Lock()
	defer d.mu.Unlock()

	refs := make([]Reference, 0, len(d.streams))
	for ref := range d.streams {
		refs = append(refs, ref)
	}
	sort.Slice(refs, func(i, j int) bool {
		if refs[i].ID != refs[j].ID {
			return refs[i].ID < refs[j].ID
		}
		return refs[i].Gen < refs[j].Gen
	})

	var buf bytes.Buffer
	for _, ref := range refs {
		s := d.streams[ref]
		fmt.Fprintf(&buf, "%d %d obj %s stream (%d bytes)\n", ref.ID, ref.Gen, Format(s.Hdr), len(s.Data))
	}
	return buf.String()
}
