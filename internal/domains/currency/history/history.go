// Package history keeps the most recent conversions in a fixed-size ring.
package history

import "vietour/internal/domains/currency/model"

const Capacity = 10

// Ring holds at most Capacity records. Pushing onto a full ring evicts the oldest record.
// A Ring is not safe for concurrent use.
type Ring struct {
	records []model.ConversionRecord
	next    int
	size    int
}

func New() *Ring {
	return &Ring{records: make([]model.ConversionRecord, Capacity)}
}

// FromRecords rebuilds a ring from a newest-first listing such as Records returns.
// Records beyond Capacity are dropped.
func FromRecords(records []model.ConversionRecord) *Ring {
	ring := New()

	if len(records) > Capacity {
		records = records[:Capacity]
	}

	for i := len(records) - 1; i >= 0; i-- {
		ring.Push(records[i])
	}

	return ring
}

func (r *Ring) Push(record model.ConversionRecord) {
	r.records[r.next] = record
	r.next = (r.next + 1) % len(r.records)

	if r.size < len(r.records) {
		r.size++
	}
}

// Records returns a copy of the stored records, newest first.
func (r *Ring) Records() []model.ConversionRecord {
	out := make([]model.ConversionRecord, 0, r.size)

	for i := 1; i <= r.size; i++ {
		out = append(out, r.records[(r.next-i+len(r.records))%len(r.records)])
	}

	return out
}

func (r *Ring) Len() int {
	return r.size
}
