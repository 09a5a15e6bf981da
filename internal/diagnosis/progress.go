package diagnosis

import (
	"strings"
	"sync"
	"time"

	"github.com/ishan-kshirsagar0-7/GlycoSight-AI/internal"
)

// DefaultStatusInterval matches the pace of the remote model run.
const DefaultStatusInterval = 12 * time.Second

// StatusMessages is the fixed sequence shown while a submission is in
// flight. The first entry names the detected input kind.
func StatusMessages(inputType internal.InputType) []string {
	return []string{
		"File identified as - " + strings.ToUpper(string(inputType)),
		"Taking a thorough look at your file's contents...",
		"Extracting crucial parameters from your data...",
		"Analyzing your data by referring to our corpus...",
		"Diagnosing your condition...",
		"Almost there...",
	}
}

// Cycler publishes each message in order on a timer, stopping early when the
// sequence is exhausted. Stop is safe to call more than once and must run
// whenever the request settles so no timer is orphaned.
type Cycler struct {
	interval time.Duration
	messages []string
	publish  func(string)

	stopOnce sync.Once
	stopChan chan struct{}
	done     chan struct{}
}

func NewCycler(messages []string, interval time.Duration, publish func(string)) *Cycler {
	return &Cycler{
		interval: interval,
		messages: messages,
		publish:  publish,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start publishes the first message immediately and the rest on the timer.
func (cy *Cycler) Start() {
	go func() {
		defer close(cy.done)
		if len(cy.messages) == 0 {
			return
		}
		cy.publish(cy.messages[0])
		ticker := time.NewTicker(cy.interval)
		defer ticker.Stop()
		idx := 1
		for idx < len(cy.messages) {
			select {
			case <-ticker.C:
				cy.publish(cy.messages[idx])
				idx++
			case <-cy.stopChan:
				return
			}
		}
	}()
}

func (cy *Cycler) Stop() {
	cy.stopOnce.Do(func() {
		close(cy.stopChan)
	})
	<-cy.done
}

// StatusBoard holds the current in-flight status message per user so the
// dashboard can poll it.
type StatusBoard struct {
	mu       sync.RWMutex
	statuses map[string]string
}

func NewStatusBoard() *StatusBoard {
	return &StatusBoard{statuses: make(map[string]string)}
}

func (b *StatusBoard) Set(userID, message string) {
	b.mu.Lock()
	b.statuses[userID] = message
	b.mu.Unlock()
}

func (b *StatusBoard) Get(userID string) (string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	msg, ok := b.statuses[userID]
	return msg, ok
}

func (b *StatusBoard) Clear(userID string) {
	b.mu.Lock()
	delete(b.statuses, userID)
	b.mu.Unlock()
}
