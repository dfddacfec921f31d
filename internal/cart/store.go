package cart

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/tailorline/storefront/internal/pricing"
	"github.com/tailorline/storefront/pkg/logger"
)

// DefaultKey is the storage key the storefront uses for its single cart.
const DefaultKey = "cart"

// Selection is an item that was just chosen somewhere else (a product page,
// the tailoring form) and should be merged into the cart exactly once.
type Selection struct {
	ArrivalID uuid.UUID
	Line      Line
}

// NewSelection stamps a line with a fresh arrival id.
func NewSelection(line Line) Selection {
	return Selection{ArrivalID: uuid.New(), Line: line}
}

// Store is the ordered, persisted cart. Every mutation writes the whole cart
// back to storage. Storage failures are logged and never surfaced.
type Store struct {
	mu        sync.Mutex
	lines     []Line
	storage   Storage
	key       string
	logg      *logger.Logger
	processed map[uuid.UUID]struct{}
}

// NewStore loads the cart stored under key. A missing or unreadable cart
// starts empty.
func NewStore(ctx context.Context, storage Storage, key string, logg *logger.Logger) *Store {
	if key == "" {
		key = DefaultKey
	}
	if logg == nil {
		logg = logger.Nop()
	}
	s := &Store{
		storage:   storage,
		key:       key,
		logg:      logg,
		processed: make(map[uuid.UUID]struct{}),
	}
	s.lines = s.load(ctx)
	return s
}

func (s *Store) load(ctx context.Context) []Line {
	if s.storage == nil {
		return nil
	}
	ctx = s.logg.WithCartKey(ctx, s.key)
	data, err := s.storage.Load(ctx, s.key)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		s.logg.Error(ctx, "cart.load_failed", err)
		return nil
	}
	var stored []Line
	if err := json.Unmarshal(data, &stored); err != nil {
		s.logg.Error(ctx, "cart.decode_failed", err)
		return nil
	}

	lines := make([]Line, 0, len(stored))
	for _, l := range stored {
		l = l.normalize()
		if i := indexOf(lines, l.Key()); i >= 0 {
			lines[i].Quantity += l.Quantity
			continue
		}
		lines = append(lines, l)
	}
	return lines
}

// persist must be called with mu held. Writes are detached from the caller's
// cancellation so a completed mutation is never lost half way.
func (s *Store) persist(ctx context.Context) {
	if s.storage == nil {
		return
	}
	ctx = s.logg.WithCartKey(context.WithoutCancel(ctx), s.key)
	payload := s.lines
	if payload == nil {
		payload = []Line{}
	}
	data, err := json.Marshal(payload)
	if err != nil {
		s.logg.Error(ctx, "cart.encode_failed", err)
		return
	}
	if err := s.storage.Save(ctx, s.key, data); err != nil {
		s.logg.Error(ctx, "cart.save_failed", err)
	}
}

// Lines returns a copy of the cart in display order.
func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Line, len(s.lines))
	for i, l := range s.lines {
		out[i] = l.clone()
	}
	return out
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines)
}

func (s *Store) Get(key Key) (Line, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := indexOf(s.lines, key); i >= 0 {
		return s.lines[i].clone(), true
	}
	return Line{}, false
}

// Total is the sum of price × quantity over every line.
func (s *Store) Total() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return pricing.CartTotal(s.lines)
}

// AddLine merges by (id, itemType): an existing line gains the incoming
// quantity, otherwise the line is appended. Quantities below one count as one.
func (s *Store) AddLine(ctx context.Context, line Line) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addLocked(line)
	s.persist(ctx)
}

func (s *Store) addLocked(line Line) {
	line = line.normalize().clone()
	if i := indexOf(s.lines, line.Key()); i >= 0 {
		s.lines[i].Quantity += line.Quantity
		return
	}
	s.lines = append(s.lines, line)
}

// SetQuantity overwrites the quantity of a line. Quantities below one are
// ignored and false is returned.
func (s *Store) SetQuantity(ctx context.Context, key Key, qty int) bool {
	if qty < 1 {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.lines, key)
	if i < 0 {
		return false
	}
	s.lines[i].Quantity = qty
	s.persist(ctx)
	return true
}

// RemoveLine drops the line if present. Removing a missing line is a no-op.
func (s *Store) RemoveLine(ctx context.Context, key Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := indexOf(s.lines, key); i >= 0 {
		s.lines = append(s.lines[:i], s.lines[i+1:]...)
		s.persist(ctx)
	}
}

// RemoveLines drops every listed line and keeps the rest in order. It
// returns how many lines were removed.
func (s *Store) RemoveLines(ctx context.Context, keys []Key) int {
	if len(keys) == 0 {
		return 0
	}
	drop := make(map[Key]struct{}, len(keys))
	for _, k := range keys {
		drop[k] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.lines[:0:0]
	for _, l := range s.lines {
		if _, ok := drop[l.Key()]; ok {
			continue
		}
		kept = append(kept, l)
	}
	removed := len(s.lines) - len(kept)
	if removed > 0 {
		s.lines = kept
		s.persist(ctx)
	}
	return removed
}

func (s *Store) SetCustomDescription(ctx context.Context, key Key, text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.lines, key)
	if i < 0 {
		return false
	}
	s.lines[i].CustomDescription = text
	s.persist(ctx)
	return true
}

// Reorder moves the line at from into the position currently held by to.
func (s *Store) Reorder(ctx context.Context, from, to Key) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.moveLocked(ctx, indexOf(s.lines, from), indexOf(s.lines, to))
}

// Move is Reorder by position.
func (s *Store) Move(ctx context.Context, from, to int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.moveLocked(ctx, from, to)
}

func (s *Store) moveLocked(ctx context.Context, from, to int) bool {
	n := len(s.lines)
	if from < 0 || to < 0 || from >= n || to >= n {
		return false
	}
	if from == to {
		return true
	}
	moved := s.lines[from]
	s.lines = append(s.lines[:from], s.lines[from+1:]...)
	s.lines = append(s.lines[:to], append([]Line{moved}, s.lines[to:]...)...)
	s.persist(ctx)
	return true
}

func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
	s.persist(ctx)
}

// ReplaceAll swaps the whole cart, merging duplicate keys.
func (s *Store) ReplaceAll(ctx context.Context, lines []Line) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
	for _, l := range lines {
		s.addLocked(l)
	}
	s.persist(ctx)
}

// Reconcile merges a selection with AddLine semantics the first time its
// arrival id is seen. It reports whether the selection was applied.
func (s *Store) Reconcile(ctx context.Context, sel Selection) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, seen := s.processed[sel.ArrivalID]; seen {
		return false
	}
	s.processed[sel.ArrivalID] = struct{}{}
	s.addLocked(sel.Line)
	s.persist(ctx)
	s.logg.Debug(s.logg.WithField(ctx, "line", sel.Line.Key().String()), "cart.selection_merged")
	return true
}

func indexOf(lines []Line, key Key) int {
	for i, l := range lines {
		if l.Key() == key {
			return i
		}
	}
	return -1
}
