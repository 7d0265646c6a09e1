// Package cast builds Cast media descriptors for library videos and hands them
// to a player.
package cast

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/claes/dirigible/internal/model"
)

var ErrNoPlayer = errors.New("no cast device configured")

// TokenSource issues short-lived access tokens.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Player plays a descriptor on some surface.
type Player interface {
	Play(ctx context.Context, mi model.MediaInfo) error
}

// VideoSource resolves a video by id.
type VideoSource interface {
	Video(ctx context.Context, id string) (model.Video, error)
}

type Builder struct {
	tokens TokenSource
}

func NewBuilder(tokens TokenSource) *Builder {
	return &Builder{tokens: tokens}
}

// Build describes v for a Cast receiver. The stream and image URLs carry an
// access_token query parameter; a failed token fetch leaves it empty.
func (b *Builder) Build(ctx context.Context, v model.Video) model.MediaInfo {
	token, err := b.tokens.Token(ctx)
	if err != nil {
		slog.Debug("error getting access token", "err", err)
	}

	md := model.MediaMetadata{
		MetadataType: model.MetadataTypeMovie,
		Title:        v.Name,
		Subtitle:     v.Name,
	}
	if v.Icon != "" {
		image := model.Image{URL: withToken(v.Icon, token)}
		// notification, lockscreen
		md.Images = []model.Image{image, image}
	}

	contentID := withToken(v.URL, token)
	slog.Debug("video", "url", contentID)

	return model.MediaInfo{
		ContentID:   contentID,
		ContentType: model.MimeTypeMP4,
		StreamType:  model.StreamTypeBuffered,
		Metadata:    md,
	}
}

// Download URLs already carry alt=media, so the token is always appended with '&'.
func withToken(u, token string) string {
	return u + "&access_token=" + token
}

// Caster resolves a video, describes it and plays it.
type Caster struct {
	videos  VideoSource
	builder *Builder
	player  Player
}

// NewCaster returns a Caster. player may be nil, in which case Cast only
// builds the descriptor and reports ErrNoPlayer.
func NewCaster(videos VideoSource, builder *Builder, player Player) *Caster {
	return &Caster{videos: videos, builder: builder, player: player}
}

func (c *Caster) Describe(ctx context.Context, id string) (model.MediaInfo, error) {
	v, err := c.videos.Video(ctx, id)
	if err != nil {
		return model.MediaInfo{}, fmt.Errorf("resolve video: %w", err)
	}
	return c.builder.Build(ctx, v), nil
}

func (c *Caster) Cast(ctx context.Context, id string) (model.MediaInfo, error) {
	mi, err := c.Describe(ctx, id)
	if err != nil {
		return mi, err
	}
	if c.player == nil {
		return mi, ErrNoPlayer
	}
	if err := c.player.Play(ctx, mi); err != nil {
		return mi, fmt.Errorf("play: %w", err)
	}
	slog.Info("casting", "title", mi.Metadata.Title)
	return mi, nil
}
