/* poller.go
 * Contains the killboard polling loop. On a fixed cadence the poller walks the registered player
 * list, fetches each player's recent events from the game API, filters them against the persisted
 * deduplication set and emits exactly one notification per unseen event. This file is the dedup
 * contract the rest of the bot hangs off; change it carefully
 * Authors: Zachary Bower
 */

package poller

import (
	"context"
	"log"
	"sync"
	"time"

	"killboard-bot/api/external"
	"killboard-bot/api/store"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/time/rate"
)

const (
	// DefaultInterval is the tick period
	DefaultInterval = 60 * time.Second

	// DefaultPlayerDelay is the inter-player pacing inside a tick, to respect upstream rate limits
	DefaultPlayerDelay = 2 * time.Second

	// DefaultEventLimit is the page size requested from the event source
	DefaultEventLimit = 10

	// maxSendAttempts bounds notification send retries before the event is abandoned
	maxSendAttempts = 3
)

// Registry lists the tracked player bindings at the start of a tick
type Registry interface {
	ListRegisteredPlayers(ctx context.Context) ([]store.RegisteredPlayer, error)
}

// SeenEvents is the durable deduplication set keyed by event id
type SeenEvents interface {
	IsEventProcessed(ctx context.Context, eventID string) (bool, error)
	MarkEventProcessed(ctx context.Context, eventID string) error
}

// EventSource returns a bounded page of a player's most recent events
type EventSource interface {
	PlayerEvents(ctx context.Context, playerID string, limit int) ([]external.Event, error)
}

// Sink delivers a formatted notification to the killboard channel
type Sink interface {
	Send(ctx context.Context, n Notification) error
}

// Notification is one outbound killboard message, already classified and formatted
type Notification struct {
	EventID     string
	Kill        bool
	Title       string
	Description string
	ImageURL    string
	Fame        int64
}

// Poller runs the recurring killboard check
type Poller struct {
	registry Registry
	seen     SeenEvents
	source   EventSource
	sink     Sink

	interval   time.Duration
	eventLimit int
	pacing     *rate.Limiter

	// tickMu guarantees at most one tick in flight; a tick that is still running when the ticker
	// fires again causes the new tick to be skipped, never run concurrently
	tickMu sync.Mutex
}

// New creates a Poller with the default interval, pacing and event page size
// Preconditions: Receives non-nil registry, seen set, event source and sink
// Postconditions: Returns pointer to the Poller; nothing runs until Start is called
func New(registry Registry, seen SeenEvents, source EventSource, sink Sink) *Poller {
	return &Poller{
		registry:   registry,
		seen:       seen,
		source:     source,
		sink:       sink,
		interval:   DefaultInterval,
		eventLimit: DefaultEventLimit,
		pacing:     rate.NewLimiter(rate.Every(DefaultPlayerDelay), 1),
	}
}

// SetInterval overrides the tick period. Must be called before Start
func (p *Poller) SetInterval(interval time.Duration) {
	if interval > 0 {
		p.interval = interval
	}
}

// SetPlayerDelay overrides the inter-player pacing. Must be called before Start
func (p *Poller) SetPlayerDelay(delay time.Duration) {
	if delay > 0 {
		p.pacing = rate.NewLimiter(rate.Every(delay), 1)
	}
}

// Start runs the polling loop until the context is cancelled. The first tick runs immediately;
// the persisted seen set keeps a restart from re-announcing events already posted
// Preconditions: The chat session and database connection behind the collaborators are established
// Postconditions: Returns after ctx is cancelled; an in-progress tick is abandoned mid-loop, which
// is safe because event processing is idempotent via the seen set
func (p *Poller) Start(ctx context.Context) {
	log.Printf("killboard poller started (interval %s)", p.interval)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.RunTick(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("killboard poller stopped")
			return
		case <-ticker.C:
			p.RunTick(ctx)
		}
	}
}

// RunTick executes one poll of every registered player. If a previous tick is still in flight the
// call returns immediately without doing any work.
// Failures are contained per player: a failed fetch logs and skips that player, it never aborts the
// remainder of the tick.
func (p *Poller) RunTick(ctx context.Context) {
	if !p.tickMu.TryLock() {
		log.Println("previous killboard tick still running, skipping")
		return
	}
	defer p.tickMu.Unlock()

	players, err := p.registry.ListRegisteredPlayers(ctx)
	if err != nil {
		// Store unreachable: fail open to "do nothing this tick", never crash
		log.Printf("killboard tick aborted, could not list registered players: %v", err)
		return
	}

	for i, player := range players {
		if ctx.Err() != nil {
			return
		}
		p.checkPlayer(ctx, player)

		// Pace between players, but not after the last one
		if i < len(players)-1 {
			if err := p.pacing.Wait(ctx); err != nil {
				return
			}
		}
	}
}

// checkPlayer fetches one player's recent events and announces the unseen ones
func (p *Poller) checkPlayer(ctx context.Context, player store.RegisteredPlayer) {
	events, err := p.source.PlayerEvents(ctx, player.PlayerID, p.eventLimit)
	if err != nil {
		log.Printf("failed to fetch events for %s: %v", player.PlayerName, err)
		return
	}

	for _, event := range events {
		if ctx.Err() != nil {
			return
		}

		eventID := event.ID()
		seen, err := p.seen.IsEventProcessed(ctx, eventID)
		if err != nil {
			log.Printf("failed to check event %s: %v", eventID, err)
			continue
		}
		if seen {
			continue
		}

		notification := Classify(event, player)
		if err := p.send(ctx, notification); err != nil {
			// Mark seen anyway: at-most-once-best-effort delivery is preferred over a retry storm
			// re-announcing the same fight every tick
			log.Printf("giving up sending notification for event %s: %v", eventID, err)
		}
		if err := p.seen.MarkEventProcessed(ctx, eventID); err != nil {
			log.Printf("failed to mark event %s processed: %v", eventID, err)
		}
	}
}

// send delivers a notification with bounded exponential backoff
func (p *Poller) send(ctx context.Context, n Notification) error {
	bo := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxSendAttempts-1), ctx)
	return backoff.Retry(func() error {
		return p.sink.Send(ctx, n)
	}, bo)
}

// Classify builds the notification for an event from the perspective of a tracked player. An event
// is a kill for the player iff they are the killer; anything else, including assists where the
// player appears only in the participant list, reads as a death of some tracked party
func Classify(event external.Event, player store.RegisteredPlayer) Notification {
	kill := event.Killer.ID == player.PlayerID

	n := Notification{
		EventID:  event.ID(),
		Kill:     kill,
		ImageURL: external.KillImageURL(event.ID()),
		Fame:     event.TotalVictimKillFame,
	}
	if kill {
		n.Title = "KILL: " + player.PlayerName + " got a kill!"
	} else {
		n.Title = "DEATH: " + player.PlayerName + " was killed!"
	}
	n.Description = "**" + event.Killer.Name + "** defeated **" + event.Victim.Name + "**"
	return n
}
