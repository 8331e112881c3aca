package store

import (
	"context"
	"encoding/json"
	"os"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"neonmap/internal/apperr"
)

const keyPrefix = "map/"

type BadgerConfig struct {
	// Path is the database directory. It is ignored when InMemory is set.
	Path     string
	InMemory bool
	// Principal is used for requests whose context carries none.
	Principal Principal
}

// BadgerStore keeps maps in an embedded Badger database, one JSON record per
// key.
type BadgerStore struct {
	db        *badger.DB
	log       *zap.Logger
	principal Principal
	now       func() time.Time
	newID     func() string
}

// badgerLogger routes Badger's own logging into zap.
type badgerLogger struct {
	*zap.SugaredLogger
}

func (l badgerLogger) Warningf(format string, args ...interface{}) {
	l.Warnf(format, args...)
}

func OpenBadger(cfg BadgerConfig, log *zap.Logger) (*BadgerStore, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if cfg.Path == "" {
			return nil, errors.New("badger path is required")
		}
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, errors.Wrapf(err, "create database directory %s", cfg.Path)
		}
		opts = badger.DefaultOptions(cfg.Path).WithSyncWrites(true)
	}
	opts = opts.WithNumVersionsToKeep(1).
		WithLogger(badgerLogger{log.Named("badger").WithOptions(zap.IncreaseLevel(zap.WarnLevel)).Sugar()})

	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrap(err, "open badger database")
	}
	return &BadgerStore{
		db:        db,
		log:       log,
		principal: cfg.Principal,
		now:       time.Now,
		newID:     uuid.NewString,
	}, nil
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}

func (s *BadgerStore) principalOf(ctx context.Context) Principal {
	if p, ok := PrincipalFrom(ctx); ok {
		return p
	}
	return s.principal
}

func key(id ID) []byte {
	return []byte(keyPrefix + string(id))
}

func get(txn *badger.Txn, id ID) (*Record, error) {
	item, err := txn.Get(key(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, apperr.NotFound("map")
	}
	if err != nil {
		return nil, apperr.Internal(err, "read map")
	}
	var rec Record
	err = item.Value(func(v []byte) error {
		return json.Unmarshal(v, &rec)
	})
	if err != nil {
		return nil, apperr.Internal(err, "decode map")
	}
	return &rec, nil
}

func put(txn *badger.Txn, rec *Record) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return apperr.Internal(err, "encode map")
	}
	if err := txn.Set(key(rec.ID), b); err != nil {
		return apperr.Internal(err, "write map")
	}
	return nil
}

func (s *BadgerStore) Load(ctx context.Context, id ID) (*Record, error) {
	var rec *Record
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		rec, err = get(txn, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if !s.principalOf(ctx).CanAccess(rec) {
		return nil, apperr.Forbidden("no access to this map")
	}
	return rec, nil
}

func (s *BadgerStore) Create(ctx context.Context, in NewRecord) (*Record, error) {
	if err := PrepareCreate(&in); err != nil {
		return nil, err
	}
	now := s.now().UTC()
	rec := &Record{
		ID:              ID(s.newID()),
		Title:           in.Title,
		Owner:           s.principalOf(ctx).User,
		Workspace:       in.Workspace,
		Project:         in.Project,
		RelatedWorkItem: in.RelatedWorkItem,
		Nodes:           in.Nodes,
		Edges:           in.Edges,
		IsPersonal:      *in.IsPersonal,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.db.Update(func(txn *badger.Txn) error { return put(txn, rec) }); err != nil {
		return nil, err
	}
	s.log.Info("map created", zap.String("map", rec.ID.String()), zap.String("title", rec.Title))
	return rec, nil
}

func (s *BadgerStore) Update(ctx context.Context, id ID, patch Patch) (*Record, error) {
	if err := PreparePatch(&patch); err != nil {
		return nil, err
	}
	p := s.principalOf(ctx)
	var rec *Record
	err := s.db.Update(func(txn *badger.Txn) error {
		var err error
		if rec, err = get(txn, id); err != nil {
			return err
		}
		if !p.CanAccess(rec) {
			return apperr.Forbidden("no access to this map")
		}
		patch.Apply(rec)
		rec.UpdatedAt = s.now().UTC()
		return put(txn, rec)
	})
	if err != nil {
		return nil, err
	}
	s.log.Debug("map updated", zap.String("map", id.String()))
	return rec, nil
}

func (s *BadgerStore) Delete(ctx context.Context, id ID) error {
	p := s.principalOf(ctx)
	return s.db.Update(func(txn *badger.Txn) error {
		rec, err := get(txn, id)
		if err != nil {
			return err
		}
		if !p.CanAccess(rec) {
			return apperr.Forbidden("no access to this map")
		}
		if err := txn.Delete(key(id)); err != nil {
			return apperr.Internal(err, "delete map")
		}
		return nil
	})
}

// List returns the maps visible to the principal, most recently updated
// first.
func (s *BadgerStore) List(ctx context.Context, f Filter) ([]Summary, error) {
	recs, err := s.records(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]Summary, len(recs))
	for i := range recs {
		out[i] = Summarize(&recs[i])
	}
	return out, nil
}

// Records is List with the full records, as served by the REST API.
func (s *BadgerStore) Records(ctx context.Context, f Filter) ([]Record, error) {
	return s.records(ctx, f)
}

func (s *BadgerStore) records(ctx context.Context, f Filter) ([]Record, error) {
	p := s.principalOf(ctx)
	var out []Record
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(keyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			var rec Record
			if err := it.Item().Value(func(v []byte) error { return json.Unmarshal(v, &rec) }); err != nil {
				return apperr.Internal(err, "decode map")
			}
			if p.CanList(&rec) && f.Match(&rec) {
				out = append(out, rec)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}
