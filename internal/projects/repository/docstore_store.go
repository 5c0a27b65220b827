package repository

import (
	"context"
	"fmt"
	"time"

	"gocloud.dev/docstore"
	"gocloud.dev/gcerrors"

	"github.com/GoSim-25-26J-441/portfolio-backend/internal/metrics"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/projects/domain"
)

// DocstoreKeyField is the key field collections must be opened with,
// e.g. mem://portfolio/ownerID or mongo://db/portfolio?id_field=ownerID.
const DocstoreKeyField = "ownerID"

type listDocument struct {
	OwnerID   string           `docstore:"ownerID"`
	Projects  []domain.Project `docstore:"projects"`
	UpdatedAt time.Time        `docstore:"updatedAt"`
}

// DocStore keeps one document per owner in a gocloud.dev docstore collection.
type DocStore struct {
	coll *docstore.Collection
}

// NewDocStore wraps an open collection keyed by DocstoreKeyField.
func NewDocStore(coll *docstore.Collection) *DocStore {
	return &DocStore{coll: coll}
}

// OpenDocStore opens the collection at url.
func OpenDocStore(ctx context.Context, url string) (*DocStore, error) {
	coll, err := docstore.OpenCollection(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("open docstore collection: %w", err)
	}
	return NewDocStore(coll), nil
}

func (s *DocStore) List(ctx context.Context, ownerID string) (out []domain.Project, err error) {
	defer func(start time.Time) { metrics.ObserveStore(BackendDocstore, "list", start, err) }(time.Now())

	doc := &listDocument{OwnerID: ownerID}
	if err := s.coll.Get(ctx, doc); err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return []domain.Project{}, nil
		}
		return nil, fmt.Errorf("failed to get projects: %w", err)
	}
	return nonNil(doc.Projects), nil
}

func (s *DocStore) Replace(ctx context.Context, ownerID string, projects []domain.Project) (err error) {
	defer func(start time.Time) { metrics.ObserveStore(BackendDocstore, "replace", start, err) }(time.Now())

	if err := ownerRequired(ownerID); err != nil {
		return err
	}
	doc := &listDocument{
		OwnerID:   ownerID,
		Projects:  nonNil(projects),
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.coll.Put(ctx, doc); err != nil {
		return fmt.Errorf("failed to put projects: %w", err)
	}
	return nil
}

func (s *DocStore) Close() error {
	return s.coll.Close()
}
