// README: Fixed-interval feed poller feeding the live view.
package live

import (
	"context"
	"log/slog"
	"time"

	"lastmile/internal/obs"
)

// Poller polls the authoritative feed on a fixed interval and applies
// each cycle to the view. It runs independently of the clustering
// trigger; a poll failure is one empty cycle, never fatal.
type Poller struct {
	view     *View
	feed     *FeedClient
	interval time.Duration
	timeout  time.Duration
	log      *slog.Logger
}

func NewPoller(view *View, feed *FeedClient, interval, timeout time.Duration, log *slog.Logger) *Poller {
	return &Poller{
		view:     view,
		feed:     feed,
		interval: interval,
		timeout:  timeout,
		log:      log,
	}
}

// Run polls until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.pollOnce(ctx)
		}
	}
}

func (p *Poller) pollOnce(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	routes, err := p.feed.Fetch(ctx)
	if err != nil {
		obs.FeedPollFailures.Inc()
		p.log.Warn("feed poll failed, applying empty cycle", "error", err)
		p.view.ApplyFeed(nil)
		return
	}
	p.view.ApplyFeed(routes)
}
