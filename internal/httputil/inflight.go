// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"

	"golang.org/x/sync/singleflight"
)

// Inflight collapses identical concurrent reads into one round trip. Keys
// are chosen by the caller (typically method + URL). Only idempotent
// requests should go through it; nothing is cached once the shared call
// returns.
type Inflight struct {
	group singleflight.Group
}

// Do runs fn once per key among concurrent callers and hands every caller
// the same *Response. A caller whose ctx ends first returns ctx.Err()
// without cancelling the shared call. shared reports whether the result was
// delivered to more than one caller.
func (f *Inflight) Do(ctx context.Context, key string, fn func() (*Response, error)) (resp *Response, shared bool, err error) {
	ch := f.group.DoChan(key, func() (any, error) {
		return fn()
	})

	select {
	case <-ctx.Done():
		return nil, false, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Shared, res.Err
		}
		return res.Val.(*Response), res.Shared, nil
	}
}
