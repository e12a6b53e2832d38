package services

import (
	"sync"

	"github.com/custodia-labs/deckwork/internal/core/domain"
)

// DeckListener receives deck mutations. It runs synchronously on the
// goroutine that mutated the deck, after the deck lock is released.
type DeckListener func(domain.DeckEvent)

// Deck is the ordered slide collection with a single current selection.
// It is safe for concurrent use.
type Deck struct {
	mu        sync.RWMutex
	slides    []domain.Slide
	currentID string

	listenersMu sync.Mutex
	listeners   []deckSubscription
	nextID      int
}

type deckSubscription struct {
	id int
	fn DeckListener
}

// NewDeck creates an empty deck with no selection.
func NewDeck() *Deck {
	return &Deck{}
}

// Subscribe registers a listener and returns a function that removes it.
func (d *Deck) Subscribe(fn DeckListener) func() {
	d.listenersMu.Lock()
	defer d.listenersMu.Unlock()

	id := d.nextID
	d.nextID++
	d.listeners = append(d.listeners, deckSubscription{id: id, fn: fn})

	return func() {
		d.listenersMu.Lock()
		defer d.listenersMu.Unlock()
		for i, sub := range d.listeners {
			if sub.id == id {
				d.listeners = append(d.listeners[:i], d.listeners[i+1:]...)
				return
			}
		}
	}
}

// SetSlides replaces the collection. The selected id is kept as is,
// even when the new collection no longer contains it.
func (d *Deck) SetSlides(slides []domain.Slide) {
	copied := make([]domain.Slide, len(slides))
	copy(copied, slides)

	d.mu.Lock()
	d.slides = copied
	d.mu.Unlock()

	d.notify(domain.DeckEvent{Kind: domain.DeckSlidesReplaced})
}

// Select makes id the current slide. Unknown ids are ignored.
func (d *Deck) Select(id string) bool {
	d.mu.Lock()
	if d.indexOfLocked(id) < 0 || d.currentID == id {
		d.mu.Unlock()
		return false
	}
	d.currentID = id
	d.mu.Unlock()

	d.notify(domain.DeckEvent{Kind: domain.DeckSelectionChanged, SlideID: id})
	return true
}

// MoveSlide removes the slide at from and inserts it at to in the
// remaining sequence. Out-of-range indices and from == to are no-ops.
func (d *Deck) MoveSlide(from, to int) bool {
	d.mu.Lock()
	n := len(d.slides)
	if n < 2 || from == to || from < 0 || from >= n || to < 0 || to >= n {
		d.mu.Unlock()
		return false
	}

	moved := d.slides[from]
	rest := make([]domain.Slide, 0, n)
	rest = append(rest, d.slides[:from]...)
	rest = append(rest, d.slides[from+1:]...)

	reordered := make([]domain.Slide, 0, n)
	reordered = append(reordered, rest[:to]...)
	reordered = append(reordered, moved)
	reordered = append(reordered, rest[to:]...)
	d.slides = reordered
	d.mu.Unlock()

	d.notify(domain.DeckEvent{Kind: domain.DeckReordered, SlideID: moved.ID, From: from, To: to})
	return true
}

// Apply performs a reorder command.
func (d *Deck) Apply(cmd domain.ReorderCommand) bool {
	return d.MoveSlide(cmd.From, cmd.To)
}

// Next selects the following slide. It does not wrap.
func (d *Deck) Next() bool {
	return d.step(1)
}

// Previous selects the preceding slide. It does not wrap.
func (d *Deck) Previous() bool {
	return d.step(-1)
}

func (d *Deck) step(delta int) bool {
	d.mu.Lock()
	idx := d.indexOfLocked(d.currentID)
	target := idx + delta
	if idx < 0 || target < 0 || target >= len(d.slides) {
		d.mu.Unlock()
		return false
	}
	id := d.slides[target].ID
	d.currentID = id
	d.mu.Unlock()

	d.notify(domain.DeckEvent{Kind: domain.DeckSelectionChanged, SlideID: id})
	return true
}

// Slides returns a copy of the slides in display order.
func (d *Deck) Slides() []domain.Slide {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]domain.Slide, len(d.slides))
	copy(out, d.slides)
	return out
}

// Len returns the number of slides.
func (d *Deck) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.slides)
}

// IndexOf returns the display position of id, or -1.
func (d *Deck) IndexOf(id string) int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.indexOfLocked(id)
}

// CurrentID returns the selected id, which may be stale after SetSlides.
func (d *Deck) CurrentID() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.currentID
}

// Current returns the selected slide if it is part of the deck.
func (d *Deck) Current() (domain.Slide, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	idx := d.indexOfLocked(d.currentID)
	if idx < 0 {
		return domain.Slide{}, false
	}
	return d.slides[idx], true
}

func (d *Deck) indexOfLocked(id string) int {
	if id == "" {
		return -1
	}
	for i, s := range d.slides {
		if s.ID == id {
			return i
		}
	}
	return -1
}

func (d *Deck) notify(ev domain.DeckEvent) {
	d.listenersMu.Lock()
	fns := make([]DeckListener, 0, len(d.listeners))
	for _, sub := range d.listeners {
		fns = append(fns, sub.fn)
	}
	d.listenersMu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}
