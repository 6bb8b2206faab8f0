package engine

import (
	"sync/atomic"
	"time"

	"jordanella.com/market-sniper-go/internal/events"
	"jordanella.com/market-sniper-go/internal/evidence"
	"jordanella.com/market-sniper-go/internal/frame"
	"jordanella.com/market-sniper-go/internal/input"
	"jordanella.com/market-sniper-go/internal/ledger"
	"jordanella.com/market-sniper-go/internal/logging"
	"jordanella.com/market-sniper-go/internal/monitor"
	"jordanella.com/market-sniper-go/internal/notify"
	"jordanella.com/market-sniper-go/internal/ocr"
	"jordanella.com/market-sniper-go/internal/rules"
)

const (
	// passInterval paces the analysis loop and doubles as the short pause
	// after a failed pass.
	passInterval = 50 * time.Millisecond

	// settleDelay is the fixed pause after any firing before the next
	// pass, distinct from the per-rule cooldown field.
	settleDelay = 1500 * time.Millisecond
)

// brain is the analysis loop: read latest frame, crop, preprocess,
// recognize, match, act, notify. One pass per iteration; the running flag
// is checked at pass boundaries only.
type brain struct {
	slot          *frame.Slot
	roi           frame.Region
	newRecognizer RecognizerFactory
	rules         []rules.Rule

	actuator     *input.Actuator
	idle         *input.IdleScheduler
	actionKey    string
	holdDuration time.Duration

	discord       *notify.Discord
	notifySuccess bool
	notifyError   bool
	inventory     *notify.Inventory
	account       string
	evidenceDir   string
	ledger        *ledger.Ledger

	bus    events.EventBus
	health *monitor.Health
	logger *logging.Logger
}

func (b *brain) run(running *atomic.Bool) {
	b.logger.Info("brain loop started")

	recognizer := b.initRecognizer()
	if recognizer != nil {
		defer recognizer.Close()
	}

	store := b.initEvidenceStore()

	for running.Load() {
		b.idle.Tick()

		if fired := b.pass(recognizer, store); fired {
			time.Sleep(settleDelay)
		}
		time.Sleep(passInterval)
	}

	b.logger.Info("brain loop stopped")
}

// initRecognizer builds the recognition provider. Failure leaves the loop
// running without recognition so frames still stream to the preview.
func (b *brain) initRecognizer() ocr.Provider {
	if b.newRecognizer == nil {
		b.health.SetOCRDegraded(true)
		return nil
	}
	recognizer, err := b.newRecognizer()
	if err != nil {
		b.logger.Error("recognition unavailable, running degraded", err)
		b.health.SetOCRDegraded(true)
		if b.bus != nil {
			b.bus.Publish(events.NewErrorEvent("brain", err))
		}
		if b.notifyError {
			go b.discord.NotifyError("Recognition unavailable, engine running degraded: " + err.Error())
		}
		return nil
	}
	return recognizer
}

func (b *brain) initEvidenceStore() *evidence.Store {
	if b.evidenceDir == "" {
		return nil
	}
	store, err := evidence.NewStore(b.evidenceDir)
	if err != nil {
		b.logger.Error("evidence store unavailable", err)
		return nil
	}
	return store
}

// pass executes one analysis pass and reports whether a rule fired.
// Every failure skips the pass; nothing here terminates the loop.
func (b *brain) pass(recognizer ocr.Provider, store *evidence.Store) bool {
	latest := b.slot.Latest()
	if latest == nil {
		return false
	}

	cropped := frame.Crop(latest, b.roi)
	if cropped == nil {
		b.logger.WarnWithContext("crop out of bounds", map[string]interface{}{
			"roi":   b.roi,
			"frame": map[string]int{"w": latest.Width, "h": latest.Height},
		})
		return false
	}

	frame.Preprocess(cropped)

	if recognizer == nil {
		return false
	}

	tokens, err := recognizer.Recognize(cropped.Pixels, cropped.Width, cropped.Height)
	if err != nil {
		b.health.RecordOCRFailure()
		b.logger.Error("recognition failed", err)
		if b.bus != nil {
			b.bus.Publish(events.NewErrorEvent("brain", err))
		}
		return false
	}
	b.health.RecordPass()
	if b.bus != nil && len(tokens) > 0 {
		b.bus.Publish(events.NewTokensRecognizedEvent(len(tokens)))
	}

	firing := rules.Match(tokens, b.rules)
	if firing == nil {
		return false
	}

	b.logger.InfoWithContext("rule matched", map[string]interface{}{
		"rule":  firing.RuleID,
		"text":  firing.MatchedText,
		"price": firing.Price,
	})
	b.health.RecordFiring()

	// Side effects are detached; their failures are logged only and never
	// block the next pass.
	go b.dispatchSideEffects(store, firing, cropped)

	if err := b.actuator.LongPress(b.actionKey, b.holdDuration); err != nil {
		b.logger.Error("action press failed", err)
	}

	if b.bus != nil {
		b.bus.Publish(events.NewRuleFiredEvent(firing.RuleID, firing.MatchedText, firing.Attribute, firing.Price))
	}
	return true
}

// dispatchSideEffects writes evidence, records the ledger entry, and posts
// both notification sinks for one firing.
func (b *brain) dispatchSideEffects(store *evidence.Store, firing *rules.Firing, crop *frame.Frame) {
	evidenceRef := ""
	if store != nil {
		path, err := store.Write(firing.MatchedText, crop)
		if err != nil {
			b.logger.Error("evidence write failed", err)
		} else {
			evidenceRef = path
		}
	}

	if b.ledger != nil {
		_, err := b.ledger.Record(ledger.Entry{
			RuleID:       firing.RuleID,
			Item:         firing.MatchedText,
			Attribute:    firing.Attribute,
			Price:        firing.Price,
			EvidencePath: evidenceRef,
			Account:      b.account,
		})
		if err != nil {
			b.logger.Error("ledger record failed", err)
		}
	}

	b.inventory.UploadFiring(firing.MatchedText, firing.Attribute, b.account, firing.Price, evidenceRef)
	if b.notifySuccess {
		b.discord.NotifyFiring(firing.MatchedText, firing.RuleID, firing.Price)
	}
}
