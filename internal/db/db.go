package db

import (
	"bytes"
	"context"
	"encoding/gob"
	"sort"

	badger "github.com/dgraph-io/badger/v3"
	"github.com/pkg/errors"

	"github.com/supby/zclext/internal/logger"
	"github.com/supby/zclext/internal/types"
)

var ErrRunNotFound = errors.New("run not found")

var runKeyPrefix = []byte("run/")

type RunJournalOptions struct {
	// InMemory keeps the journal out of the filesystem; dirname is ignored.
	InMemory bool
	Logger   logger.Logger
}

func NewRunJournal(dirname string, options RunJournalOptions) (RunJournal, error) {
	opt := badger.DefaultOptions(dirname)
	if options.InMemory {
		opt = badger.DefaultOptions("").WithInMemory(true)
	}
	opt.ValueLogFileSize = 1024 * 1024 * 40

	if options.Logger != nil {
		opt = opt.WithLogger(&badgerLogger{inner: options.Logger})
	} else {
		opt = opt.WithLogger(nil)
	}

	db, err := badger.Open(opt)
	if err != nil {
		return nil, errors.Wrapf(err, "opening run journal %s", dirname)
	}

	return &runJournal{
		db: db,
	}, nil
}

type runJournal struct {
	db *badger.DB
}

func runKey(id string) []byte {
	return append(append([]byte{}, runKeyPrefix...), id...)
}

func decodeRun(v []byte) (types.RunReport, error) {
	var ret types.RunReport
	dec := gob.NewDecoder(bytes.NewReader(v))
	if err := dec.Decode(&ret); err != nil {
		return types.RunReport{}, err
	}
	return ret, nil
}

func (j *runJournal) GetRuns(ctx context.Context) ([]types.RunReport, error) {
	var ret []types.RunReport
	err := j.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = runKeyPrefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			err := it.Item().Value(func(v []byte) error {
				run, err := decodeRun(v)
				if err != nil {
					return err
				}

				ret = append(ret, run)

				return nil
			})

			if err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	sort.SliceStable(ret, func(a, b int) bool {
		return ret[a].Started.Before(ret[b].Started)
	})

	return ret, nil
}

func (j *runJournal) SaveRun(ctx context.Context, run types.RunReport) error {
	if run.ID == "" {
		return errors.New("run has no id")
	}

	buf := bytes.Buffer{}
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(run); err != nil {
		return err
	}

	return j.db.Update(func(txn *badger.Txn) error {
		return txn.Set(runKey(run.ID), buf.Bytes())
	})
}

func (j *runJournal) DeleteRun(ctx context.Context, id string) error {
	return j.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(runKey(id))
	})
}

func (j *runJournal) GetRun(ctx context.Context, id string) (types.RunReport, error) {
	var ret types.RunReport
	err := j.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(runKey(id))
		if err != nil {
			return err
		}

		return item.Value(func(v []byte) error {
			ret, err = decodeRun(v)
			return err
		})
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return types.RunReport{}, errors.Wrapf(ErrRunNotFound, "%s", id)
	}
	if err != nil {
		return types.RunReport{}, err
	}

	return ret, nil
}

func (j *runJournal) Close(ctx context.Context) error {
	return j.db.Close()
}

// badgerLogger routes badger's own logging into the journal's logger.
// Badger is chatty at info level, so that goes to debug.
type badgerLogger struct {
	inner logger.Logger
}

func (l *badgerLogger) Errorf(format string, v ...interface{}) {
	l.inner.Error(format, v...)
}

func (l *badgerLogger) Warningf(format string, v ...interface{}) {
	l.inner.Warn(format, v...)
}

func (l *badgerLogger) Infof(format string, v ...interface{}) {
	l.inner.Debug(format, v...)
}

func (l *badgerLogger) Debugf(format string, v ...interface{}) {
	l.inner.Debug(format, v...)
}
