package store

import (
	"context"
	"sync"

	"github.com/rs/xid"
	"github.com/samber/lo"

	"pixelfrag/pkg/convert"
)

// DefaultHistory is how many conversions a Board keeps reachable.
const DefaultHistory = 3

func NewBoard(max int) *Board {
	return &Board{max: lo.Ternary(max > 0, max, DefaultHistory)}
}

// Board keeps the latest conversions in memory so their artifacts can be
// shown and downloaded. The last published result is the current one.
type Board struct {
	l     sync.RWMutex
	max   int
	items []*convert.Result
}

func (b *Board) Publish(_ context.Context, r *convert.Result) error {
	b.l.Lock()
	defer b.l.Unlock()

	b.items = append(b.items, r)
	if len(b.items) > b.max {
		b.items = b.items[1:]
	}
	return nil
}

// Current returns the latest result, or nil before the first conversion.
func (b *Board) Current() *convert.Result {
	b.l.RLock()
	defer b.l.RUnlock()

	r, _ := lo.Last(b.items)
	return r
}

// Logs returns the kept results, oldest first.
func (b *Board) Logs() []*convert.Result {
	b.l.RLock()
	defer b.l.RUnlock()

	return append([]*convert.Result(nil), b.items...)
}

// Lookup finds an artifact of a kept result by conversion id and file name.
func (b *Board) Lookup(id xid.ID, name string) (convert.Artifact, bool) {
	b.l.RLock()
	defer b.l.RUnlock()

	r, ok := lo.Find(b.items, func(r *convert.Result) bool { return r.ID == id })
	if !ok {
		return convert.Artifact{}, false
	}

	return lo.Find(r.Artifacts(), func(a convert.Artifact) bool { return a.Name == name })
}
