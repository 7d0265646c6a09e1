package model

const (
	MimeTypeMP4    = "video/mp4"
	MimeTypeJPEG   = "image/jpeg"
	MimeTypeFolder = "application/vnd.google-apps.folder"
)

// Video is a playable MP4 from the library, optionally paired with a thumbnail.
type Video struct {
	ID   string `json:"id"`
	Name string `json:"name"` // filename up to the first '.'
	URL  string `json:"url,omitempty"`
	Icon string `json:"icon,omitempty"`
	// IconID is the file id of the thumbnail behind Icon.
	IconID string `json:"icon_id,omitempty"`
	Size   int64  `json:"size,omitempty"`
}

// Result is the outcome of one library page load.
// Videos is nil when the load did not complete, e.g. authorization is required.
type Result struct {
	Videos        []Video        `json:"videos"`
	Authorization *Authorization `json:"authorization,omitempty"`
	NextPageToken string         `json:"next_page_token,omitempty"`
}

// Authorization tells the caller to send the user through a consent step.
type Authorization struct {
	URL string `json:"url"`
}

// File is the subset of remote file metadata the library works with.
type File struct {
	ID       string
	Name     string
	MimeType string
	Size     int64
	Parent   string // first parent folder id, if known
}

// FileList is one page of a remote listing.
type FileList struct {
	Files         []File
	NextPageToken string
}

const (
	StreamTypeBuffered = "BUFFERED"
	MetadataTypeMovie  = 1
)

// MediaInfo describes a playable item for a Cast receiver.
type MediaInfo struct {
	ContentID   string        `json:"contentId"`
	ContentType string        `json:"contentType"`
	StreamType  string        `json:"streamType"`
	Metadata    MediaMetadata `json:"metadata"`
}

// MediaMetadata is the title block and artwork shown by the receiver.
type MediaMetadata struct {
	MetadataType int     `json:"metadataType"`
	Title        string  `json:"title"`
	Subtitle     string  `json:"subtitle"`
	Images       []Image `json:"images"`
}

// Image is an artwork URL; the receiver picks its own size.
type Image struct {
	URL string `json:"url"`
}
