package tree

import (
	"context"
	"fmt"

	"github.com/marcus/reviewer/internal/folder"
)

// DefaultPageSize is the number of entries requested per page.
const DefaultPageSize = 500

// Listing is a directory merged from one or more pages.
type Listing struct {
	Base     string
	Entry    folder.Entry
	Total    int
	Fetches  int
	Complete bool
}

// Paginate reads opts.Path page by page. Pages are requested strictly in
// sequence because each one depends on the total reported so far. By default
// only the offsets 0 and pageSize are tried; full keeps going until the
// reported total is reached.
func Paginate(ctx context.Context, svc folder.Service, opts folder.Options, pageSize int, full bool) (*Listing, error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	var out *Listing
	taken := 0
	for skip := 0; ; skip += pageSize {
		if !full && skip > pageSize {
			break
		}
		o := opts
		o.Skip = skip
		o.Take = pageSize
		page, err := svc.ReadFolder(ctx, o)
		if err != nil {
			if out == nil {
				return nil, fmt.Errorf("read %s at %d: %w", opts.Path, skip, err)
			}
			// Keep what was loaded; the listing is marked incomplete.
			return out, fmt.Errorf("read %s at %d: %w", opts.Path, skip, err)
		}

		if out == nil {
			out = &Listing{Base: page.Base, Entry: page.Entry, Total: page.Total}
			out.Entry.Children = nil
		}
		out.Entry.Children = append(out.Entry.Children, page.Entry.Children...)
		out.Fetches++
		out.Total = page.Total
		taken += page.Take

		if taken == page.Total {
			out.Complete = true
			break
		}
		if page.Take == 0 {
			break
		}
	}
	return out, nil
}
