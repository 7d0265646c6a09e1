// Package library assembles pages of playable videos from the remote "Videos" folder.
package library

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/claes/dirigible/internal/auth"
	"github.com/claes/dirigible/internal/model"
	"github.com/claes/dirigible/internal/naming"
)

// FolderName is the top-level folder the library is read from.
const FolderName = "Videos"

var (
	ErrNotVideo     = errors.New("file is not a video")
	ErrNotInLibrary = errors.New("file is not in the library folder")
)

// Source is the remote file listing the library is built from.
type Source interface {
	// FindFolder returns the top-level folder called name.
	FindFolder(ctx context.Context, name string) (model.File, bool, error)
	// ListChildren returns one page of MP4 and JPEG files under folderID, ordered by name.
	// A non-empty query restricts results to names containing it.
	ListChildren(ctx context.Context, folderID, query, pageToken string) (model.FileList, error)
	// Get returns metadata for a single file.
	Get(ctx context.Context, fileID string) (model.File, error)
	// DownloadURL returns the direct-download URL for fileID.
	DownloadURL(fileID string) (string, error)
}

// Account reports the signed-in account.
type Account interface {
	AccountName(ctx context.Context) (string, error)
}

// Library lists and resolves videos kept in the FolderName folder of the
// signed-in account.
type Library struct {
	src  Source
	acct Account
}

// New returns a Library reading from src on behalf of acct.
func New(src Source, acct Account) *Library {
	return &Library{src: src, acct: acct}
}

// Load reads one page of the library.
// Authorization failures are reported through Result.Authorization; other
// failures are logged and produce an empty Result.
func (l *Library) Load(ctx context.Context, query, pageToken string) model.Result {
	var result model.Result

	name, err := l.acct.AccountName(ctx)
	if err != nil {
		slog.Warn("unable to read account", "err", err)
		return result
	}
	if name == "" {
		return result
	}

	videos, next, err := l.load(ctx, query, pageToken)
	if err != nil {
		var rec *auth.RecoverableError
		if errors.As(err, &rec) {
			result.Authorization = &model.Authorization{URL: rec.URL}
			return result
		}
		slog.Warn("error getting file list", "err", err)
		return result
	}
	result.Videos = videos
	result.NextPageToken = next
	return result
}

func (l *Library) load(ctx context.Context, query, pageToken string) ([]model.Video, string, error) {
	folder, ok, err := l.src.FindFolder(ctx, FolderName)
	if err != nil {
		return nil, "", fmt.Errorf("find folder: %w", err)
	}
	if !ok {
		slog.Debug("no library folder", "name", FolderName)
		return nil, "", nil
	}
	list, err := l.src.ListChildren(ctx, folder.ID, query, pageToken)
	if err != nil {
		return nil, "", fmt.Errorf("list %s: %w", folder.ID, err)
	}
	return Assemble(list.Files, l.src.DownloadURL), list.NextPageToken, nil
}

// Video resolves a single video by id, including its thumbnail when a
// same-named JPEG sits next to it.
func (l *Library) Video(ctx context.Context, id string) (model.Video, error) {
	f, err := l.src.Get(ctx, id)
	if err != nil {
		return model.Video{}, fmt.Errorf("get %s: %w", id, err)
	}
	if f.MimeType != model.MimeTypeMP4 {
		return model.Video{}, ErrNotVideo
	}
	folder, ok, err := l.src.FindFolder(ctx, FolderName)
	if err != nil {
		return model.Video{}, fmt.Errorf("find folder: %w", err)
	}
	if !ok || f.Parent != folder.ID {
		return model.Video{}, ErrNotInLibrary
	}
	list, err := l.src.ListChildren(ctx, folder.ID, naming.BaseName(f.Name), "")
	if err != nil {
		return model.Video{}, fmt.Errorf("list %s: %w", folder.ID, err)
	}
	for _, v := range Assemble(list.Files, l.src.DownloadURL) {
		if v.ID == id {
			return v, nil
		}
	}
	return Assemble([]model.File{f}, l.src.DownloadURL)[0], nil
}

// Assemble pairs every MP4 in files with the first JPEG of the same base name.
// Each JPEG is used at most once; unmatched JPEGs are dropped.
func Assemble(files []model.File, resolve func(id string) (string, error)) []model.Video {
	videos := make([]model.Video, 0, len(files))
	thumbs := make([]model.File, 0, len(files))

	for _, f := range files {
		switch f.MimeType {
		case model.MimeTypeMP4:
			v := model.Video{ID: f.ID, Name: naming.BaseName(f.Name), Size: f.Size}
			if u, err := resolve(f.ID); err != nil {
				slog.Debug("error getting url", "id", f.ID, "err", err)
			} else {
				v.URL = u
			}
			videos = append(videos, v)
		case model.MimeTypeJPEG:
			thumbs = append(thumbs, f)
		}
	}

	for i := range videos {
		for j, f := range thumbs {
			if naming.BaseName(f.Name) != videos[i].Name {
				continue
			}
			if u, err := resolve(f.ID); err != nil {
				slog.Debug("error getting url", "id", f.ID, "err", err)
			} else {
				videos[i].Icon = u
				videos[i].IconID = f.ID
			}
			thumbs = append(thumbs[:j], thumbs[j+1:]...)
			break
		}
	}
	return videos
}
