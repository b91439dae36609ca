package snake

import (
	"fmt"
	"sort"
	"time"
)

// PowerUpChance is the probability that eating food drops a pickup.
const PowerUpChance = 0.1

// speedFactor scales the tick interval while the speed effect is active.
const speedFactor = 0.7

// PowerUpKind identifies a timed pickup effect.
type PowerUpKind int

const (
	PowerUpSpeed PowerUpKind = iota + 1
	PowerUpGhost
	PowerUpDoublePoints
)

type powerUpSpec struct {
	name     string
	duration time.Duration
	hue      float64
}

var powerUpSpecs = map[PowerUpKind]powerUpSpec{
	PowerUpSpeed:        {name: "SPEED", duration: 5 * time.Second, hue: 0},
	PowerUpGhost:        {name: "GHOST", duration: 3 * time.Second, hue: 240},
	PowerUpDoublePoints: {name: "DOUBLE_POINTS", duration: 7 * time.Second, hue: 51},
}

var powerUpKinds = []PowerUpKind{PowerUpSpeed, PowerUpGhost, PowerUpDoublePoints}

func (k PowerUpKind) String() string {
	if s, ok := powerUpSpecs[k]; ok {
		return s.name
	}
	return fmt.Sprintf("PowerUpKind(%d)", int(k))
}

// Duration returns how long the effect lasts once picked up.
func (k PowerUpKind) Duration() time.Duration {
	return powerUpSpecs[k].duration
}

// Hue returns the display hue of the pickup in degrees.
func (k PowerUpKind) Hue() float64 {
	return powerUpSpecs[k].hue
}

// PowerUp is a pickup lying on the board.
type PowerUp struct {
	Cell Cell
	Kind PowerUpKind
}

// ActiveEffect is a picked-up effect and its expiry on the engine clock.
type ActiveEffect struct {
	Kind  PowerUpKind
	Until time.Duration
}

// Remaining returns the time left at clock now.
func (a ActiveEffect) Remaining(now time.Duration) time.Duration {
	if a.Until <= now {
		return 0
	}
	return a.Until - now
}

func (e *Engine) effectActive(k PowerUpKind) bool {
	_, ok := e.effects[k]
	return ok
}

func (e *Engine) multiplier() int {
	if e.effectActive(PowerUpDoublePoints) {
		return 2
	}
	return 1
}

// maybeDropPowerUp rolls for a pickup after an eat.
func (e *Engine) maybeDropPowerUp() {
	if !e.cfg.powerUps || e.pickup != nil || e.rng.Float64() >= PowerUpChance {
		return
	}
	kind := powerUpKinds[e.rng.Intn(len(powerUpKinds))]
	occupied := NewCellSet(e.segments...)
	if e.hasFood {
		occupied[e.food] = struct{}{}
	}
	c, ok := e.placer.Place(occupied, e.size)
	if !ok {
		return
	}
	e.pickup = &PowerUp{Cell: c, Kind: kind}
	e.record(CategoryPowerUp, "spawn", fmt.Sprintf("%s at %s", kind, c), float64(kind))
}

// activate applies a pickup. Picking up an effect that is already running
// restarts its timer.
func (e *Engine) activate(p PowerUp) {
	e.pickup = nil
	e.effects[p.Kind] = e.clock + p.Kind.Duration()
	e.record(CategoryPowerUp, "activate", p.Kind.String(), p.Kind.Duration().Seconds())
	e.spawnParticles(p.Cell, p.Kind.Hue(), PowerUpBurst)
	e.guard("sound", func() {
		if e.sound != nil {
			e.sound.PlayFoodCollect()
		}
	})
	e.notifyPowerUp(p.Kind, true)
}

// expireEffects drops every effect whose deadline has passed at now.
func (e *Engine) expireEffects(now time.Duration) {
	for _, k := range powerUpKinds {
		until, ok := e.effects[k]
		if !ok || until > now {
			continue
		}
		delete(e.effects, k)
		e.record(CategoryPowerUp, "expire", k.String(), 0)
		e.notifyPowerUp(k, false)
	}
}

func (e *Engine) activeEffects() []ActiveEffect {
	if len(e.effects) == 0 {
		return nil
	}
	out := make([]ActiveEffect, 0, len(e.effects))
	for k, until := range e.effects {
		out = append(out, ActiveEffect{Kind: k, Until: until})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Kind < out[j].Kind })
	return out
}
