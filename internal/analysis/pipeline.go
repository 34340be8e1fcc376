// Package analysis implements the quota-gated command pipeline: it turns an
// inbound command or button selection into a quota decision, a profile fetch
// plus extraction, and a deterministic report. It knows nothing about the
// transport; replies go through the Responder interface and the transport
// adapter owns delivery.
package analysis

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tikscope/tikscope/internal/chart"
	"github.com/tikscope/tikscope/internal/logger"
	"github.com/tikscope/tikscope/internal/metrics"
	"github.com/tikscope/tikscope/internal/profile"
	"github.com/tikscope/tikscope/internal/quota"
	"github.com/tikscope/tikscope/internal/recommend"
)

const topVideoCount = 3

// Button is one inline choice offered to the user; Data round-trips back as
// the selection payload.
type Button struct {
	Label string
	Data  string
}

// Responder is the abstract bot interface the pipeline renders through.
type Responder interface {
	SendText(userID, text string)
	SendButtons(userID, text string, buttons []Button)
	SendPhoto(userID, caption string, png []byte)
}

// Pipeline orchestrates quota check, fetch, extraction, report assembly and
// quota increment for one inbound event at a time per user.
type Pipeline struct {
	store        quota.Store
	fetcher      profile.Fetcher
	table        *recommend.Table
	responder    Responder
	freeLimit    int
	fetchTimeout time.Duration

	// Per-user critical section across check-then-increment, so a rapid
	// double-tap cannot pass a quota check that only one request should.
	locksMu   sync.Mutex
	userLocks map[string]*sync.Mutex
}

func New(store quota.Store, fetcher profile.Fetcher, table *recommend.Table, responder Responder, freeLimit int, fetchTimeout time.Duration) *Pipeline {
	return &Pipeline{
		store:        store,
		fetcher:      fetcher,
		table:        table,
		responder:    responder,
		freeLimit:    freeLimit,
		fetchTimeout: fetchTimeout,
		userLocks:    make(map[string]*sync.Mutex),
	}
}

// RequestAnalysis handles the start-analysis command: it validates the
// username and offers one button per known country, with the pending request
// encoded entirely in each button's payload. Browsing the country list is
// free; no quota is checked here.
func (p *Pipeline) RequestAnalysis(userID, username string) {
	username = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(username), "@"))
	if username == "" {
		p.responder.SendText(userID, MsgUsernameMissing)
		return
	}

	var buttons []Button
	for _, country := range p.table.Countries() {
		buttons = append(buttons, Button{
			Label: country,
			Data:  EncodeSelection(username, country),
		})
	}

	p.responder.SendButtons(userID, MsgChooseCountry, buttons)
}

// HandleSelection resolves a country-selection event end to end. Every error
// is converted to exactly one user-facing message here; failed fetches and
// extractions never consume quota.
func (p *Pipeline) HandleSelection(ctx context.Context, userID, payload string) {
	requestID := uuid.NewString()

	username, country, err := DecodeSelection(payload)
	if err != nil {
		p.rejectPayload(userID, requestID, payload, err)
		return
	}

	entry, ok := p.table.Lookup(country)
	if !ok {
		p.rejectPayload(userID, requestID, payload,
			fmt.Errorf("%w: unknown country %q", ErrPayloadMalformed, country))
		return
	}

	lock := p.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	isVIP := p.store.IsVIP(userID)
	if !isVIP {
		count, err := p.store.Get(ctx, userID)
		if err != nil {
			// Fail safe: an unreadable store must not block the pipeline.
			logger.Warn("Quota read failed, treating count as zero", map[string]interface{}{
				"request_id": requestID,
				"user_id":    userID,
				"error":      err.Error(),
			})
			count = 0
		}
		if count >= p.freeLimit {
			metrics.QuotaRejectionsTotal.Inc()
			logger.Info("Analysis rejected, quota exhausted", map[string]interface{}{
				"request_id": requestID,
				"user_id":    userID,
				"count":      count,
				"limit":      p.freeLimit,
			})
			p.responder.SendText(userID, fmt.Sprintf(QuotaExceededTemplate, p.freeLimit, p.freeLimit))
			return
		}
	}

	fetchCtx, cancel := context.WithTimeout(ctx, p.fetchTimeout)
	defer cancel()

	raw, err := p.fetcher.Fetch(fetchCtx, username)
	if err != nil {
		metrics.FetchFailuresTotal.Inc()
		logger.Warn("Profile fetch failed", map[string]interface{}{
			"request_id": requestID,
			"user_id":    userID,
			"username":   username,
			"error":      err.Error(),
		})
		p.responder.SendText(userID, MsgFetchFailed)
		return
	}

	stats, err := profile.Extract(raw)
	if err != nil {
		metrics.ExtractionFailuresTotal.Inc()
		logger.Warn("Profile extraction failed", map[string]interface{}{
			"request_id": requestID,
			"user_id":    userID,
			"username":   username,
			"error":      err.Error(),
		})
		p.responder.SendText(userID, MsgExtractionFailed)
		return
	}

	if stats.MarkersFound == 0 {
		// Tolerated as an all-zero result; likely a page-layout change
		// rather than an empty profile, so it is worth watching.
		metrics.EmptyExtractionsTotal.Inc()
		logger.Warn("No stat markers found in profile page", map[string]interface{}{
			"request_id": requestID,
			"user_id":    userID,
			"username":   username,
			"page_bytes": len(raw),
		})
	}

	// Write-then-respond: the increment must be durable before the user is
	// told how many attempts remain. A confirmed-failed write aborts the
	// report; only successful analyses consume quota.
	remaining := VIPRemaining
	if !isVIP {
		newCount, err := p.store.Increment(ctx, userID)
		if err != nil {
			logger.Error("Quota increment failed after successful extraction", map[string]interface{}{
				"request_id": requestID,
				"user_id":    userID,
				"error":      err.Error(),
			})
			p.responder.SendText(userID, MsgQuotaWriteFailed)
			return
		}
		left := p.freeLimit - newCount
		if left < 0 {
			left = 0
		}
		remaining = fmt.Sprintf("%d", left)
	}

	topVideos := profile.ExtractTopVideos(raw, topVideoCount)

	metrics.AnalysesTotal.Inc()
	logger.Info("Analysis completed", map[string]interface{}{
		"request_id": requestID,
		"user_id":    userID,
		"username":   username,
		"country":    country,
		"followers":  stats.Followers,
		"engagement": stats.EngagementRate,
		"top_videos": len(topVideos),
		"vip":        isVIP,
	})

	p.responder.SendText(userID, BuildReport(username, stats, entry, remaining, topVideos))

	// The chart is presentation only: render failures degrade silently to a
	// text-only report.
	if len(topVideos) > 0 {
		png, err := chart.RenderTopVideos(topVideos)
		if err != nil {
			logger.Debug("Chart rendering skipped", map[string]interface{}{
				"request_id": requestID,
				"error":      err.Error(),
			})
			return
		}
		p.responder.SendPhoto(userID, ChartCaption(entry.Lang), png)
	}
}

// Usage reports consumed and remaining attempts without consuming quota.
func (p *Pipeline) Usage(ctx context.Context, userID string) (used int, remaining string) {
	if p.store.IsVIP(userID) {
		return 0, VIPRemaining
	}

	count, err := p.store.Get(ctx, userID)
	if err != nil {
		logger.Warn("Quota read failed in usage lookup", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		count = 0
	}

	left := p.freeLimit - count
	if left < 0 {
		left = 0
	}
	return count, fmt.Sprintf("%d", left)
}

func (p *Pipeline) rejectPayload(userID, requestID, payload string, err error) {
	metrics.MalformedPayloadsTotal.Inc()
	logger.Warn("Rejected selection payload", map[string]interface{}{
		"request_id": requestID,
		"user_id":    userID,
		"payload":    payload,
		"error":      err.Error(),
	})
	p.responder.SendText(userID, MsgPayloadMalformed)
}

func (p *Pipeline) userLock(userID string) *sync.Mutex {
	p.locksMu.Lock()
	defer p.locksMu.Unlock()

	lock, ok := p.userLocks[userID]
	if !ok {
		lock = &sync.Mutex{}
		p.userLocks[userID] = lock
	}
	return lock
}
