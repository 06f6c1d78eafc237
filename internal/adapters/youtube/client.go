// Package youtube resolves competitor channel names to live channel
// profiles via the YouTube Data API v3, so the research prompt can be
// grounded in real subscriber and upload numbers.
package youtube

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"

	"github.com/voxline-studio/backend/internal/core/domain"
)

// Client implements ports.CompetitorIntel with API-key auth.
type Client struct {
	svc *yt.Service
	log *zap.Logger
}

// New builds the client. Extra options are accepted so tests can point the
// service at a fake endpoint.
func New(ctx context.Context, apiKey string, log *zap.Logger, extra ...option.ClientOption) (*Client, error) {
	opts := append([]option.ClientOption{option.WithAPIKey(apiKey)}, extra...)
	svc, err := yt.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("youtube: build service: %w", err)
	}
	return &Client{svc: svc, log: log}, nil
}

// LookupChannels resolves each name to its best-matching channel. Names
// that resolve to nothing are skipped, not errors — the research section
// can still reason about them without live data.
func (c *Client) LookupChannels(ctx context.Context, names []string) ([]domain.CompetitorProfile, error) {
	profiles := make([]domain.CompetitorProfile, 0, len(names))
	for _, name := range names {
		search, err := c.svc.Search.List([]string{"snippet"}).
			Q(name).
			Type("channel").
			MaxResults(1).
			Context(ctx).
			Do()
		if err != nil {
			return nil, fmt.Errorf("youtube: search channel %q: %w", name, err)
		}
		if len(search.Items) == 0 || search.Items[0].Id == nil || search.Items[0].Id.ChannelId == "" {
			c.log.Debug("no channel match", zap.String("competitor", name))
			continue
		}

		channels, err := c.svc.Channels.List([]string{"snippet", "statistics"}).
			Id(search.Items[0].Id.ChannelId).
			Context(ctx).
			Do()
		if err != nil {
			return nil, fmt.Errorf("youtube: fetch channel %q: %w", name, err)
		}
		if len(channels.Items) == 0 {
			continue
		}

		item := channels.Items[0]
		profile := domain.CompetitorProfile{Channel: name}
		if item.Snippet != nil {
			profile.Channel = item.Snippet.Title
			profile.Description = item.Snippet.Description
		}
		if item.Statistics != nil {
			profile.Subscribers = item.Statistics.SubscriberCount
			profile.Videos = item.Statistics.VideoCount
		}
		profiles = append(profiles, profile)
	}
	return profiles, nil
}
