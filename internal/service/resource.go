package service

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"billingapi/internal/repository"
)

// SearchLimit caps the number of documents Search returns.
const SearchLimit = 20

// DefaultSearchFields are searched when the caller names none.
var DefaultSearchFields = []string{"name", "email", "title", "settingKey", "notes", "description"}

// SearchQuery is a case-insensitive substring search over Fields.
type SearchQuery struct {
	Q      string
	Fields []string
}

// SummaryFilter narrows countFilter to documents where Field equals Value.
type SummaryFilter struct {
	Field string
	Value string
}

// SummaryResult is the payload of a successful Summary.
type SummaryResult struct {
	CountFilter  int64 `json:"countFilter"`
	CountAllDocs int64 `json:"countAllDocs"`
}

// ResourceService exposes the generic operations every collection supports.
// Expected failures come back as a Response; only infrastructure faults are errors.
type ResourceService[T repository.Document] interface {
	// Read returns one live document.
	Read(ctx context.Context, id string) (*Response, error)

	// Update merge-patches a live document. The patch can never mark it removed.
	Update(ctx context.Context, id string, patch map[string]any) (*Response, error)

	// Search returns up to SearchLimit live documents matching q on any field.
	Search(ctx context.Context, q SearchQuery) (*Response, error)

	// Summary counts live documents, and those matching f when given.
	Summary(ctx context.Context, f *SummaryFilter) (*Response, error)
}

type resourceService[T repository.Document] struct {
	store repository.Store[T]
	now   func() time.Time
}

// NewResourceService constructs a ResourceService over store.
func NewResourceService[T repository.Document](store repository.Store[T]) ResourceService[T] {
	return &resourceService[T]{store: store, now: time.Now}
}

func (s *resourceService[T]) Read(ctx context.Context, id string) (*Response, error) {
	doc, err := s.store.FindOne(ctx, repository.ByID(id))
	if err != nil {
		if soft := softFailure(err); soft != nil {
			return soft, nil
		}
		return nil, err
	}
	return ok(doc, "we found this document"), nil
}

func (s *resourceService[T]) Update(ctx context.Context, id string, patch map[string]any) (*Response, error) {
	if _, err := s.store.FindOne(ctx, repository.ByID(id)); err != nil {
		if soft := softFailure(err); soft != nil {
			return soft, nil
		}
		return nil, err
	}

	set := make(map[string]any, len(patch)+2)
	for k, v := range patch {
		switch k {
		case "id", "removed", "created", "updated":
			continue
		}
		set[k] = v
	}
	set["removed"] = false
	set["updated"] = s.now().UTC()

	doc, err := s.store.FindOneAndUpdate(ctx, repository.ByID(id), repository.Patch{Set: set})
	if err != nil {
		if soft := softFailure(err); soft != nil {
			return soft, nil
		}
		return nil, err
	}
	return ok(doc, "we update this document"), nil
}

func (s *resourceService[T]) Search(ctx context.Context, q SearchQuery) (*Response, error) {
	term := strings.TrimSpace(q.Q)
	if term == "" {
		return noMatch(MsgNoDocument), nil
	}

	fields := make([]string, 0, len(q.Fields))
	for _, f := range q.Fields {
		if f = strings.TrimSpace(f); f != "" {
			fields = append(fields, f)
		}
	}
	if len(fields) == 0 {
		fields = DefaultSearchFields
	}

	docs, err := s.store.Find(ctx, repository.Filter{
		Contains: &repository.Contains{Fields: fields, Term: term},
	}, SearchLimit)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return noMatch(MsgNoDocument), nil
	}
	return ok(docs, "Successfully found all documents"), nil
}

func (s *resourceService[T]) Summary(ctx context.Context, f *SummaryFilter) (*Response, error) {
	var res SummaryResult

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.store.CountDocuments(gctx, repository.Filter{})
		res.CountAllDocs = n
		return err
	})
	if f != nil && f.Field != "" {
		g.Go(func() error {
			n, err := s.store.CountDocuments(gctx, repository.Filter{
				Equals: map[string]string{f.Field: f.Value},
			})
			res.CountFilter = n
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if f == nil || f.Field == "" {
		res.CountFilter = res.CountAllDocs
	}
	if res.CountAllDocs == 0 {
		return &Response{Result: []any{}, Message: MsgEmptyCollection, Outcome: OutcomeEmptyCollection}, nil
	}
	return ok(res, "Successfully count all documents"), nil
}
