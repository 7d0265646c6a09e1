package cast

import (
	"context"
	"errors"
	"testing"

	"github.com/claes/dirigible/internal/model"
)

type staticToken struct {
	tok string
	err error
}

func (s staticToken) Token(context.Context) (string, error) { return s.tok, s.err }

type fakeVideos map[string]model.Video

func (f fakeVideos) Video(_ context.Context, id string) (model.Video, error) {
	v, ok := f[id]
	if !ok {
		return model.Video{}, errors.New("not found")
	}
	return v, nil
}

type recordingPlayer struct {
	played []model.MediaInfo
	err    error
}

func (p *recordingPlayer) Play(_ context.Context, mi model.MediaInfo) error {
	p.played = append(p.played, mi)
	return p.err
}

func TestBuild_WithIcon(t *testing.T) {
	v := model.Video{ID: "v1", Name: "clip", URL: "https://dl/v1?alt=media", Icon: "https://dl/j1?alt=media"}
	mi := NewBuilder(staticToken{tok: "T"}).Build(context.Background(), v)

	if mi.ContentID != "https://dl/v1?alt=media&access_token=T" {
		t.Fatalf("bad content id: %q", mi.ContentID)
	}
	if mi.ContentType != "video/mp4" || mi.StreamType != model.StreamTypeBuffered {
		t.Fatalf("bad type: %q %q", mi.ContentType, mi.StreamType)
	}
	if mi.Metadata.Title != "clip" || mi.Metadata.Subtitle != "clip" {
		t.Fatalf("bad metadata: %#v", mi.Metadata)
	}
	imgs := mi.Metadata.Images
	if len(imgs) != 2 || imgs[0] != imgs[1] {
		t.Fatalf("want two identical images, got %#v", imgs)
	}
	if imgs[0].URL != "https://dl/j1?alt=media&access_token=T" {
		t.Fatalf("bad image url: %q", imgs[0].URL)
	}
}

func TestBuild_WithoutIcon(t *testing.T) {
	mi := NewBuilder(staticToken{tok: "T"}).Build(context.Background(), model.Video{Name: "clip", URL: "u?alt=media"})
	if len(mi.Metadata.Images) != 0 {
		t.Fatalf("expected no images, got %#v", mi.Metadata.Images)
	}
}

func TestBuild_TokenFailureStillBuilds(t *testing.T) {
	mi := NewBuilder(staticToken{err: errors.New("offline")}).Build(context.Background(), model.Video{Name: "clip", URL: "u?alt=media"})
	if mi.ContentID != "u?alt=media&access_token=" {
		t.Fatalf("bad content id: %q", mi.ContentID)
	}
}

func TestCaster_Cast(t *testing.T) {
	p := &recordingPlayer{}
	c := NewCaster(fakeVideos{"v1": {ID: "v1", Name: "clip", URL: "u?alt=media"}}, NewBuilder(staticToken{tok: "T"}), p)

	mi, err := c.Cast(context.Background(), "v1")
	if err != nil {
		t.Fatalf("Cast: %v", err)
	}
	if len(p.played) != 1 || p.played[0].ContentID != mi.ContentID {
		t.Fatalf("player not called with descriptor: %#v", p.played)
	}
}

func TestCaster_NoPlayer(t *testing.T) {
	c := NewCaster(fakeVideos{"v1": {ID: "v1", Name: "clip"}}, NewBuilder(staticToken{}), nil)
	mi, err := c.Cast(context.Background(), "v1")
	if !errors.Is(err, ErrNoPlayer) {
		t.Fatalf("expected ErrNoPlayer, got %v", err)
	}
	if mi.Metadata.Title != "clip" {
		t.Fatalf("descriptor should still be returned: %#v", mi)
	}
}

func TestCaster_UnknownVideo(t *testing.T) {
	p := &recordingPlayer{}
	c := NewCaster(fakeVideos{}, NewBuilder(staticToken{}), p)
	if _, err := c.Cast(context.Background(), "nope"); err == nil {
		t.Fatalf("expected error")
	}
	if len(p.played) != 0 {
		t.Fatalf("player should not be called")
	}
}

func TestNewChromecast_Addr(t *testing.T) {
	c, err := NewChromecast("192.168.1.20")
	if err != nil {
		t.Fatal(err)
	}
	if c.Addr() != "192.168.1.20:8009" {
		t.Fatalf("unexpected addr %q", c.Addr())
	}
	c, err = NewChromecast("tv.local:9000")
	if err != nil {
		t.Fatal(err)
	}
	if c.Addr() != "tv.local:9000" {
		t.Fatalf("unexpected addr %q", c.Addr())
	}
	if _, err := NewChromecast("tv.local:nope"); err == nil {
		t.Fatalf("expected port error")
	}
	if _, err := NewChromecast(""); err == nil {
		t.Fatalf("expected host error")
	}
}
