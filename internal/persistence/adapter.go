package persistence

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/HabitQuest_Go/internal/concurrency"
	"github.com/osse101/HabitQuest_Go/internal/domain"
	"github.com/osse101/HabitQuest_Go/internal/logger"
	"github.com/osse101/HabitQuest_Go/internal/metrics"
	"github.com/osse101/HabitQuest_Go/internal/validation"
)

var errMalformed = errors.New("malformed document")

// AdapterOptions configures an Adapter. Zero values take the defaults.
type AdapterOptions struct {
	Collection   string
	Debounce     time.Duration
	WriterID     string
	CacheSize    int
	CacheTTL     time.Duration
	PollInterval time.Duration
	// Seed builds the document written for a profile that has none
	Seed func(id string) domain.Document
	// Schemas, when set, rejects stored documents of the wrong shape
	Schemas validation.SchemaValidator
}

type pendingSave struct {
	doc   domain.Document
	timer *time.Timer
}

// Adapter sits between the game and a DocumentStore. Reads are cached,
// writes are debounced and coalesced, and changes made by other writers
// are polled and pushed to subscribers.
type Adapter struct {
	store  DocumentStore
	opts   AdapterOptions
	cache  *expirable.LRU[string, domain.Document]
	writes *concurrency.LockManager

	mu           sync.Mutex
	pending      map[string]*pendingSave
	remote       map[string][]byte
	deleted      map[string]struct{}
	listeners    map[string]map[uint64]func(domain.Document)
	nextListener uint64
	closed       bool

	pollStart  sync.Once
	pollCancel context.CancelFunc
	pollDone   chan struct{}
	since      time.Time
}

// NewAdapter creates an adapter over store
func NewAdapter(store DocumentStore, opts AdapterOptions) *Adapter {
	if opts.Collection == "" {
		opts.Collection = CollectionUsers
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.WriterID == "" {
		opts.WriterID = uuid.NewString()
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = DefaultCacheSize
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = DefaultCacheTTL
	}
	if opts.Seed == nil {
		opts.Seed = func(id string) domain.Document {
			doc := domain.DefaultDocument()
			doc.ID = id
			return doc
		}
	}

	return &Adapter{
		store:     store,
		opts:      opts,
		cache:     expirable.NewLRU[string, domain.Document](opts.CacheSize, nil, opts.CacheTTL),
		writes:    concurrency.NewLockManager(),
		pending:   make(map[string]*pendingSave),
		remote:    make(map[string][]byte),
		deleted:   make(map[string]struct{}),
		listeners: make(map[string]map[uint64]func(domain.Document)),
		since:     time.Now(),
	}
}

// WriterID identifies this adapter's writes in the change feed
func (a *Adapter) WriterID() string {
	return a.opts.WriterID
}

// Load returns the document of id. A missing or malformed document is
// replaced by the seed, which is written before Load returns.
func (a *Adapter) Load(ctx context.Context, id string) (domain.Document, bool, error) {
	if doc, ok := a.cache.Get(id); ok {
		return doc.Clone(), false, nil
	}

	doc, err := a.fetch(ctx, id)
	switch {
	case err == nil:
		a.cache.Add(id, doc.Clone())
		return doc, false, nil
	case errors.Is(err, domain.ErrDocumentNotFound) && a.isDeleted(id):
		return domain.Document{}, false, fmt.Errorf("%w: %s", domain.ErrProfileNotFound, id)
	case errors.Is(err, domain.ErrDocumentNotFound), errors.Is(err, errMalformed):
		seed := a.opts.Seed(id)
		seed.Normalize()
		if err := a.Seed(ctx, id, seed); err != nil {
			return domain.Document{}, false, err
		}
		logger.FromContext(ctx).Info(LogMsgDocumentSeeded, logger.AttrKeyProfileID, id, "reason", err.Error())
		return seed, true, nil
	default:
		return domain.Document{}, false, fmt.Errorf("load document %s: %w", id, err)
	}
}

// Seed writes doc synchronously, replacing whatever is stored or pending.
// It revives an id removed by Delete.
func (a *Adapter) Seed(ctx context.Context, id string, doc domain.Document) error {
	a.mu.Lock()
	a.dropPending(id)
	delete(a.deleted, id)
	a.mu.Unlock()

	err := a.writes.WithLock(id, func() error {
		return a.write(ctx, id, doc)
	})
	if err != nil {
		return fmt.Errorf("seed document %s: %w", id, err)
	}
	a.cache.Add(id, doc.Clone())
	return nil
}

// Save records doc as the latest state of id and schedules a write after
// the debounce delay. Repeated saves within the delay are coalesced into
// one write of the last document.
func (a *Adapter) Save(_ context.Context, id string, doc domain.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document %s: %w", id, err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if _, gone := a.deleted[id]; gone {
		logger.Debug(LogMsgSaveAfterDelete, logger.AttrKeyProfileID, id)
		return nil
	}
	a.cache.Add(id, doc.Clone())

	if snapshot, ok := a.remote[id]; ok {
		delete(a.remote, id)
		if bytes.Equal(snapshot, data) {
			metrics.EchoesSuppressed.Inc()
			logger.Debug(LogMsgEchoSkipped, logger.AttrKeyProfileID, id)
			return nil
		}
	}

	p, ok := a.pending[id]
	if ok {
		metrics.SavesCoalesced.Inc()
		if p.timer != nil {
			p.timer.Stop()
		}
	} else {
		p = &pendingSave{}
		a.pending[id] = p
	}
	p.doc = doc.Clone()
	p.timer = time.AfterFunc(a.opts.Debounce, func() {
		_ = a.flushID(context.Background(), id)
	})
	return nil
}

// Flush writes every pending document now
func (a *Adapter) Flush(ctx context.Context) error {
	a.mu.Lock()
	ids := make([]string, 0, len(a.pending))
	for id := range a.pending {
		ids = append(ids, id)
	}
	a.mu.Unlock()

	var errs []error
	for _, id := range ids {
		if err := a.flushID(ctx, id); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close stops the change poller and flushes pending writes
func (a *Adapter) Close(ctx context.Context) error {
	a.mu.Lock()
	a.closed = true
	cancel, done := a.pollCancel, a.pollDone
	a.mu.Unlock()

	if cancel != nil {
		cancel()
		select {
		case <-done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return a.Flush(ctx)
}

// Delete removes the document of id and cancels its pending write. Until
// the id is seeded again, saves of it are dropped, a failed in-flight write
// is not retried and Load reports the profile as not found.
func (a *Adapter) Delete(ctx context.Context, id string) error {
	a.mu.Lock()
	a.dropPending(id)
	delete(a.remote, id)
	a.deleted[id] = struct{}{}
	a.mu.Unlock()
	a.cache.Remove(id)

	err := a.writes.WithLock(id, func() error {
		return a.store.Delete(ctx, a.opts.Collection, id)
	})
	if err != nil {
		a.mu.Lock()
		delete(a.deleted, id)
		a.mu.Unlock()
		return fmt.Errorf("delete document %s: %w", id, err)
	}
	// a write that finished while the delete waited may have cached the doc
	a.cache.Remove(id)
	return nil
}

func (a *Adapter) isDeleted(id string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, ok := a.deleted[id]
	return ok
}

// Subscribe calls onChange whenever another writer changes the document
// of id. The returned function removes the listener.
func (a *Adapter) Subscribe(_ context.Context, id string, onChange func(domain.Document)) func() {
	a.mu.Lock()
	a.nextListener++
	key := a.nextListener
	if a.listeners[id] == nil {
		a.listeners[id] = make(map[uint64]func(domain.Document))
	}
	a.listeners[id][key] = onChange
	closed := a.closed
	a.mu.Unlock()

	if !closed && a.opts.PollInterval > 0 {
		a.pollStart.Do(a.startPoller)
	}

	return func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		delete(a.listeners[id], key)
		if len(a.listeners[id]) == 0 {
			delete(a.listeners, id)
		}
	}
}

func (a *Adapter) startPoller() {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	a.mu.Lock()
	a.pollCancel = cancel
	a.pollDone = done
	a.mu.Unlock()

	go func() {
		defer close(done)
		ticker := time.NewTicker(a.opts.PollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				a.poll(ctx)
			}
		}
	}()
}

// poll applies every change written by someone else since the last poll.
// Only the poller goroutine touches a.since.
func (a *Adapter) poll(ctx context.Context) {
	changes, err := a.store.Changes(ctx, a.opts.Collection, a.since)
	if err != nil {
		logger.Warn(LogMsgPollFailed, "error", err)
		return
	}
	for _, c := range changes {
		if c.UpdatedAt.After(a.since) {
			a.since = c.UpdatedAt
		}
		if c.Writer == a.opts.WriterID {
			continue
		}
		metrics.RemoteChanges.Inc()
		a.applyRemote(ctx, c.ID)
	}
}

// applyRemote reloads a document changed elsewhere. The remote version
// replaces the cached one and any unsaved local edit.
func (a *Adapter) applyRemote(ctx context.Context, id string) {
	a.mu.Lock()
	subs := make([]func(domain.Document), 0, len(a.listeners[id]))
	for _, fn := range a.listeners[id] {
		subs = append(subs, fn)
	}
	a.mu.Unlock()

	if len(subs) == 0 {
		a.cache.Remove(id)
		return
	}

	doc, err := a.fetch(ctx, id)
	if err != nil {
		logger.Warn(LogMsgRemoteLoadFailed, logger.AttrKeyProfileID, id, "error", err)
		a.cache.Remove(id)
		return
	}
	data, err := json.Marshal(doc)
	if err != nil {
		logger.Warn(LogMsgRemoteLoadFailed, logger.AttrKeyProfileID, id, "error", err)
		return
	}

	a.mu.Lock()
	a.remote[id] = data
	a.dropPending(id)
	a.mu.Unlock()
	a.cache.Add(id, doc.Clone())

	logger.Debug(LogMsgRemoteApplied, logger.AttrKeyProfileID, id)
	for _, fn := range subs {
		fn(doc.Clone())
	}
}

// fetch reads and decodes one stored document
func (a *Adapter) fetch(ctx context.Context, id string) (domain.Document, error) {
	body, err := a.store.Get(ctx, a.opts.Collection, id)
	if err != nil {
		return domain.Document{}, err
	}
	if a.opts.Schemas != nil {
		if err := a.opts.Schemas.ValidateBytes(body, validation.SchemaDocument); err != nil {
			return domain.Document{}, fmt.Errorf("%w: %v", errMalformed, err)
		}
	}
	doc, err := domain.DecodeDocument(body)
	if err != nil {
		return domain.Document{}, fmt.Errorf("%w: %v", errMalformed, err)
	}
	if doc.ID == "" {
		doc.ID = id
	}
	return doc, nil
}

// flushID writes the pending document of id, if any. On failure the
// document is put back unless a newer one was saved or the id was deleted
// meanwhile.
func (a *Adapter) flushID(ctx context.Context, id string) error {
	return a.writes.WithLock(id, func() error {
		a.mu.Lock()
		p, ok := a.pending[id]
		if !ok {
			a.mu.Unlock()
			return nil
		}
		delete(a.pending, id)
		if p.timer != nil {
			p.timer.Stop()
		}
		doc := p.doc
		a.mu.Unlock()

		err := a.write(ctx, id, doc)
		if err == nil {
			return nil
		}

		logger.Error(LogMsgSaveFailed, logger.AttrKeyProfileID, id, "error", err)
		a.mu.Lock()
		_, newer := a.pending[id]
		_, gone := a.deleted[id]
		if !newer && !gone {
			a.pending[id] = &pendingSave{doc: doc}
		}
		a.mu.Unlock()
		return fmt.Errorf("save document %s: %w", id, err)
	})
}

func (a *Adapter) write(ctx context.Context, id string, doc domain.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document %s: %w", id, err)
	}

	start := time.Now()
	err = a.store.Put(WithWriter(ctx, a.opts.WriterID), a.opts.Collection, id, data)
	metrics.DocumentSaveDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.DocumentSaves.WithLabelValues(metrics.ResultError).Inc()
		return err
	}
	metrics.DocumentSaves.WithLabelValues(metrics.ResultSuccess).Inc()
	return nil
}

// dropPending cancels the pending write of id. Callers hold a.mu.
func (a *Adapter) dropPending(id string) {
	if p, ok := a.pending[id]; ok {
		if p.timer != nil {
			p.timer.Stop()
		}
		delete(a.pending, id)
	}
}

// hasPending reports whether a write of id is scheduled or awaiting retry
func (a *Adapter) hasPending(id string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, ok := a.pending[id]
	return ok
}
