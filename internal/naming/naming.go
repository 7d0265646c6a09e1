package naming

import (
	"log/slog"
	"net/url"
	"strings"

	"github.com/claes/dirigible/internal/model"
)

// IsVideo reports whether name looks like an MP4 file.
func IsVideo(name string) bool {
	return name != "" && strings.HasSuffix(name, ".mp4")
}

// NameFromPath returns the last path segment, query-unescaped.
// If unescaping fails the original path is returned unchanged.
func NameFromPath(path string) string {
	seg := path
	if i := strings.LastIndex(path, "/"); i >= 0 {
		seg = path[i+1:]
	}
	name, err := url.QueryUnescape(seg)
	if err != nil {
		slog.Debug("error decoding path", "path", path, "err", err)
		return path
	}
	return name
}

// BaseName returns filename up to its first '.'.
func BaseName(filename string) string {
	base, _, _ := strings.Cut(filename, ".")
	return base
}

// Path joins a library root and a file name.
func Path(path, name string) string {
	return path + "/" + name
}

// IconPath is the thumbnail location for the video base name.
func IconPath(path, name string) string {
	return path + "/" + name + ".jpg"
}

// BuildMediaInfo describes a video served from a plain HTTP directory at path,
// where the thumbnail sits next to file as <base>.jpg.
func BuildMediaInfo(path, file string) model.MediaInfo {
	name := BaseName(NameFromPath(file))
	image := model.Image{URL: IconPath(path, BaseName(file))}
	return model.MediaInfo{
		ContentID:   Path(path, file),
		ContentType: model.MimeTypeMP4,
		StreamType:  model.StreamTypeBuffered,
		Metadata: model.MediaMetadata{
			MetadataType: model.MetadataTypeMovie,
			Title:        name,
			Subtitle:     name,
			// notification, lockscreen
			Images: []model.Image{image, image},
		},
	}
}

// SplitURL splits a video URL into its directory and file name.
func SplitURL(u string) (path, file string) {
	i := strings.LastIndex(u, "/")
	if i < 0 {
		return "", u
	}
	return u[:i], u[i+1:]
}
