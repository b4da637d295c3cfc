package service

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mmcdole/gofeed"
	"github.com/rs/zerolog"

	"github.com/drydock-app/drydock/internal/database"
	"github.com/drydock-app/drydock/internal/database/repository"
)

// FeedFetchOptions controls the outbound HTTP behaviour of feed fetches.
type FeedFetchOptions struct {
	UserAgent    string
	Timeout      time.Duration
	MaxRedirects int
}

func (o FeedFetchOptions) withDefaults() FeedFetchOptions {
	if o.UserAgent == "" {
		o.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	}
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	if o.MaxRedirects <= 0 {
		o.MaxRedirects = 10
	}
	return o
}

// FeedService fetches subscribed feeds and stores their items.
type FeedService struct {
	DB     *sql.DB
	Feeds  *repository.FeedRepo
	Items  *repository.FeedItemRepo
	Logger zerolog.Logger

	opts   FeedFetchOptions
	client *http.Client
}

func NewFeedService(db *sql.DB, feeds *repository.FeedRepo, items *repository.FeedItemRepo, logger zerolog.Logger, opts FeedFetchOptions) *FeedService {
	opts = opts.withDefaults()
	return &FeedService{
		DB:     db,
		Feeds:  feeds,
		Items:  items,
		Logger: logger,
		opts:   opts,
		client: &http.Client{
			Timeout: opts.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= opts.MaxRedirects {
					return fmt.Errorf("stopped after %d redirects", opts.MaxRedirects)
				}
				return nil
			},
		},
	}
}

// Subscribe validates the URL, fetches it once to resolve a title when none
// is given, and stores the feed plus its current items.
func (s *FeedService) Subscribe(ctx context.Context, url, title string) (repository.Feed, int, error) {
	url, err := normalizeFeedURL(url)
	if err != nil {
		return repository.Feed{}, 0, err
	}

	parsed, err := s.fetch(ctx, url)
	if err != nil {
		return repository.Feed{}, 0, err
	}
	if strings.TrimSpace(title) == "" {
		title = strings.TrimSpace(parsed.Title)
	}
	if title == "" {
		title = url
	}

	id, err := s.Feeds.Insert(ctx, title, url, database.Now())
	if err != nil {
		return repository.Feed{}, 0, fmt.Errorf("add feed: %w", err)
	}
	feed := repository.Feed{ID: id, Title: title, URL: url}

	added, err := s.storeItems(ctx, feed, parsed)
	if err != nil {
		return feed, added, err
	}
	if err := s.Feeds.TouchLastUpdated(ctx, id, database.Now()); err != nil {
		return feed, added, err
	}
	s.Logger.Info().Str("feed", title).Int("items", added).Msg("feed subscribed")
	return feed, added, nil
}

// Unsubscribe removes a feed and its stored items in one transaction, so a
// failed feed delete never leaves the items orphaned.
func (s *FeedService) Unsubscribe(ctx context.Context, id int64) error {
	feed, err := s.Feeds.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("remove feed: %w", err)
	}
	err = database.WithTx(s.DB, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM feed_items WHERE feed_id = ?`, id); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `DELETE FROM feeds WHERE id = ?`, id)
		return err
	})
	if err != nil {
		return fmt.Errorf("remove feed: %w", err)
	}
	s.Logger.Info().Str("feed", feed.Title).Msg("feed removed")
	return nil
}

// ClearItems drops every stored item for a feed; the subscription stays and
// the next refresh repopulates it.
func (s *FeedService) ClearItems(ctx context.Context, id int64) error {
	feed, err := s.Feeds.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("clear feed items: %w", err)
	}
	if err := s.Items.DeleteForFeed(ctx, id); err != nil {
		return fmt.Errorf("clear feed items: %w", err)
	}
	s.Logger.Info().Str("feed", feed.Title).Msg("feed items cleared")
	return nil
}

// FetchAndStore refreshes a single feed and returns the number of new items.
func (s *FeedService) FetchAndStore(ctx context.Context, feed repository.Feed) (int, error) {
	url, err := normalizeFeedURL(feed.URL)
	if err != nil {
		return 0, err
	}

	parsed, err := s.fetch(ctx, url)
	if err != nil {
		return 0, err
	}

	added, err := s.storeItems(ctx, feed, parsed)
	if err != nil {
		return added, err
	}
	if err := s.Feeds.TouchLastUpdated(ctx, feed.ID, database.Now()); err != nil {
		return added, err
	}
	return added, nil
}

// RefreshResult summarises a refresh-all run.
type RefreshResult struct {
	FeedsChecked int
	ItemsAdded   int
	Errors       []string
}

// Summary renders the result the way the feeds screen shows it.
func (r RefreshResult) Summary() string {
	if len(r.Errors) == 0 {
		return fmt.Sprintf("Refreshed %d feeds. Added %d new items.", r.FeedsChecked, r.ItemsAdded)
	}
	return fmt.Sprintf("Refreshed %d feeds with %d errors. Added %d items.", r.FeedsChecked, len(r.Errors), r.ItemsAdded)
}

// RefreshAll fetches every subscribed feed. A failing feed is recorded and
// skipped; the run continues.
func (s *FeedService) RefreshAll(ctx context.Context) (RefreshResult, error) {
	feeds, err := s.Feeds.List(ctx)
	if err != nil {
		return RefreshResult{}, err
	}

	res := RefreshResult{FeedsChecked: len(feeds)}
	for _, f := range feeds {
		added, err := s.FetchAndStore(ctx, f)
		if err != nil {
			s.Logger.Error().Str("feed", f.Title).Err(err).Msg("feed refresh failed")
			res.Errors = append(res.Errors, fmt.Sprintf("%s: %v", f.Title, err))
			continue
		}
		s.Logger.Info().Str("feed", f.Title).Int("items", added).Msg("feed refreshed")
		res.ItemsAdded += added
	}
	return res, nil
}

func (s *FeedService) fetch(ctx context.Context, url string) (*gofeed.Feed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %q: %w", url, err)
	}
	req.Header.Set("User-Agent", s.opts.UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed %q: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch feed %q: http %s", url, resp.Status)
	}

	parsed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse feed %q: %w", url, err)
	}
	return parsed, nil
}

func (s *FeedService) storeItems(ctx context.Context, feed repository.Feed, parsed *gofeed.Feed) (int, error) {
	now := database.Now()
	added := 0
	for _, item := range parsed.Items {
		if item == nil {
			continue
		}
		title := strings.TrimSpace(item.Title)
		if title == "" {
			title = "Untitled"
		}
		pub := now
		if item.PublishedParsed != nil {
			pub = item.PublishedParsed.UTC()
		} else if item.UpdatedParsed != nil {
			pub = item.UpdatedParsed.UTC()
		}
		inserted, err := s.Items.InsertOrIgnore(ctx, repository.FeedItem{
			FeedID:      feed.ID,
			Title:       title,
			Link:        item.Link,
			Description: item.Description,
			PubDate:     pub,
			GUID:        itemGUID(feed.URL, item),
		}, now)
		if err != nil {
			s.Logger.Error().Str("feed", feed.Title).Err(err).Msg("store feed item failed")
			continue
		}
		if inserted {
			added++
		}
	}
	return added, nil
}

// itemGUID prefers the item's own guid, then its link. Items carrying
// neither get a stable UUID derived from the feed URL and title so
// re-fetches still dedupe.
func itemGUID(feedURL string, item *gofeed.Item) string {
	if g := strings.TrimSpace(item.GUID); g != "" {
		return g
	}
	if l := strings.TrimSpace(item.Link); l != "" {
		return l
	}
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(feedURL+"|"+item.Title)).String()
}

// normalizeFeedURL trims the URL and prefixes https:// when no scheme is given.
func normalizeFeedURL(url string) (string, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return "", fmt.Errorf("feed url is empty")
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "https://" + url
	}
	return url, nil
}
