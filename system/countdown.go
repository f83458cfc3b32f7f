package system

// @lixen: #focus{lifecycle[timer,countdown],event[dispatch]}

import (
	"fmt"
	"time"

	"github.com/lixenwraith/deskrush/engine"
	"github.com/lixenwraith/deskrush/event"
	"github.com/lixenwraith/deskrush/parameter"
	"github.com/lixenwraith/deskrush/status"
)

// Countdown is the level timer shared by every station
// It decays one second per game second, takes discrete credits and debits, and
// raises EventCountdownExpired once per transition into the expired state
type Countdown struct {
	world   *engine.World
	display engine.TimeDisplay

	remaining time.Duration
	expired   bool
	ended     bool

	statRemaining *status.AtomicFloat
	statDisplay   *status.AtomicString
}

// NewCountdown creates the level timer with its initial value and pushes the first display update
func NewCountdown(world *engine.World, initial time.Duration) *Countdown {
	c := &Countdown{
		world:         world,
		display:       world.Collab.Display,
		remaining:     initial,
		statRemaining: world.Status.Floats.Get("countdown.remaining"),
		statDisplay:   world.Status.Strings.Get("countdown.display"),
	}
	c.notify()
	return c
}

// Name returns system's name
func (c *Countdown) Name() string {
	return "countdown"
}

// Priority returns the system's priority (last, after every credit and debit of the step)
func (c *Countdown) Priority() int {
	return parameter.PriorityCountdown
}

// Update applies the step's decay and evaluates expiry
func (c *Countdown) Update(dt time.Duration) {
	c.Tick(dt)
}

// Tick decays the remaining time by dt and checks expiry
// Remaining saturates at zero here; a debit may push it lower until the next Tick
func (c *Countdown) Tick(dt time.Duration) {
	if c.ended {
		return
	}
	if dt > 0 {
		c.remaining -= dt
	}
	if c.remaining <= 0 {
		c.remaining = 0
		if !c.expired {
			c.expired = true
			c.world.PushEvent(event.EventCountdownExpired, &event.CountdownPayload{
				Remaining: 0,
				Expired:   true,
			})
		}
	}
	c.notify()
}

// Credit adds time; lifting an expired countdown above zero rescues it unless the session ended
func (c *Countdown) Credit(amount time.Duration) {
	c.remaining += amount
	if c.expired && c.remaining > 0 && !c.ended {
		c.expired = false
		c.world.PushEvent(event.EventCountdownRescued, &event.CountdownPayload{
			Remaining: c.remaining,
			Delta:     amount,
		})
	}
	c.changed(amount)
}

// Debit removes time; expiry is evaluated by the next Tick
func (c *Countdown) Debit(amount time.Duration) {
	c.remaining -= amount
	c.changed(-amount)
}

func (c *Countdown) changed(delta time.Duration) {
	c.world.PushEvent(event.EventCountdownChanged, &event.CountdownPayload{
		Remaining: c.remaining,
		Delta:     delta,
		Expired:   c.expired,
	})
	c.notify()
}

func (c *Countdown) notify() {
	text := FormatRemaining(c.remaining)
	c.display.SetTimeText(text)
	c.statRemaining.Set(c.remaining.Seconds())
	c.statDisplay.Store(text)
}

// End closes the session: decay stops and credits no longer rescue
func (c *Countdown) End() {
	c.ended = true
}

// Remaining returns the current remaining time, possibly negative between a debit and the next Tick
func (c *Countdown) Remaining() time.Duration {
	return c.remaining
}

// HasExpired reports the expired flag
func (c *Countdown) HasExpired() bool {
	return c.expired
}

// Ended reports whether End was called
func (c *Countdown) Ended() bool {
	return c.ended
}

// FormatRemaining renders the countdown the way the HUD shows it:
// MM:SS from one minute up, 0:SS below, never negative
func FormatRemaining(d time.Duration) string {
	if d <= 0 {
		return "0:00"
	}
	secs := int(d / time.Second)
	if d >= parameter.CountdownLongFormat {
		return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
	}
	return fmt.Sprintf("0:%02d", secs)
}
