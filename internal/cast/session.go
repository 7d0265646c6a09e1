package cast

import (
	"context"
	"errors"
	"fmt"
	"time"

	castv2 "github.com/vishen/go-chromecast/cast"

	"github.com/claes/dirigible/internal/model"
)

const (
	defaultMediaReceiver = "CC1AD845"

	senderID   = "sender-0"
	receiverID = "receiver-0"

	namespaceConn  = "urn:x-cast:com.google.cast.tp.connection"
	namespaceRecv  = "urn:x-cast:com.google.cast.receiver"
	namespaceMedia = "urn:x-cast:com.google.cast.media"

	// go-chromecast numbers its own requests from 1; ours start well above.
	firstRequestID = 1 << 20
)

var errNoReceiver = errors.New("default media receiver did not start")

// receiver is the part of application.Application a session needs.
type receiver interface {
	Update() error
	App() *castv2.Application
}

type castSession struct {
	conn castv2.Conn
	app  receiver

	nextID   *int
	attempts int
	wait     time.Duration
}

func (s *castSession) send(payload castv2.Payload, dest, namespace string) error {
	if *s.nextID < firstRequestID {
		*s.nextID = firstRequestID
	}
	*s.nextID++
	payload.SetRequestId(*s.nextID)
	return s.conn.Send(*s.nextID, payload, senderID, dest, namespace)
}

func (s *castSession) load(ctx context.Context, mi model.MediaInfo) error {
	transport, err := s.ensureMediaReceiver(ctx)
	if err != nil {
		return err
	}
	connect := castv2.ConnectHeader
	if err := s.send(&connect, transport, namespaceConn); err != nil {
		return fmt.Errorf("connect to media receiver: %w", err)
	}
	cmd := castv2.LoadMediaCommand{
		PayloadHeader: castv2.LoadHeader,
		Autoplay:      true,
		Media:         toMediaItem(mi),
	}
	return s.send(&cmd, transport, namespaceMedia)
}

// ensureMediaReceiver returns the transport id of the default media
// receiver, launching it and polling the receiver status until it shows up.
func (s *castSession) ensureMediaReceiver(ctx context.Context) (string, error) {
	if a := s.app.App(); a != nil && a.AppId == defaultMediaReceiver && a.TransportId != "" {
		return a.TransportId, nil
	}
	launch := castv2.LaunchRequest{PayloadHeader: castv2.LaunchHeader, AppId: defaultMediaReceiver}
	if err := s.send(&launch, receiverID, namespaceRecv); err != nil {
		return "", fmt.Errorf("launch media receiver: %w", err)
	}
	attempts, wait := s.attempts, s.wait
	if attempts == 0 {
		attempts = 10
	}
	if wait == 0 {
		wait = 500 * time.Millisecond
	}
	for i := 0; i < attempts; i++ {
		if err := s.app.Update(); err != nil {
			return "", err
		}
		if a := s.app.App(); a != nil && a.AppId == defaultMediaReceiver && a.TransportId != "" {
			return a.TransportId, nil
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(wait):
		}
	}
	return "", errNoReceiver
}

func toMediaItem(mi model.MediaInfo) castv2.MediaItem {
	md := castv2.MediaMetadata{
		MetadataType: mi.Metadata.MetadataType,
		Title:        mi.Metadata.Title,
		Subtitle:     mi.Metadata.Subtitle,
	}
	for _, img := range mi.Metadata.Images {
		md.Images = append(md.Images, castv2.Image{URL: img.URL})
	}
	return castv2.MediaItem{
		ContentId:   mi.ContentID,
		ContentType: mi.ContentType,
		StreamType:  mi.StreamType,
		Metadata:    md,
	}
}
