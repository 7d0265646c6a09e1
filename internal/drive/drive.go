// Package drive reads the video library from Google Drive.
package drive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/claes/dirigible/internal/auth"
	"github.com/claes/dirigible/internal/model"
)

const fileFields = "id, name, mimeType, size, parents"

// Client implements library.Source on top of the Drive v3 API.
type Client struct {
	svc *drive.Service
	// consentURL is reported with authorization failures; may be nil.
	consentURL func() string
}

// NewService creates a Drive service that sends requests through hc.
func NewService(ctx context.Context, hc *http.Client, opts ...option.ClientOption) (*drive.Service, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(hc)}, opts...)
	svc, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("could not create drive service: %w", err)
	}
	return svc, nil
}

// New wraps svc. consentURL, when set, supplies the URL attached to
// authorization failures.
func New(svc *drive.Service, consentURL func() string) *Client {
	return &Client{svc: svc, consentURL: consentURL}
}

// FindFolder returns the first folder directly under the Drive root called name.
func (c *Client) FindFolder(ctx context.Context, name string) (model.File, bool, error) {
	q := fmt.Sprintf("'root' in parents and mimeType='%s' and name='%s' and trashed=false",
		model.MimeTypeFolder, escape(name))
	list, err := c.svc.Files.List().
		Q(q).
		Spaces("drive").
		Fields("nextPageToken, files(id, name)").
		Context(ctx).
		Do()
	if err != nil {
		return model.File{}, false, c.wrap(err)
	}
	for _, f := range list.Files {
		if f.Name == name {
			return toFile(f), true, nil
		}
	}
	return model.File{}, false, nil
}

// ListChildren lists one page of MP4 and JPEG files under folderID, ordered by name.
func (c *Client) ListChildren(ctx context.Context, folderID, query, pageToken string) (model.FileList, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "'%s' in parents and (mimeType='%s' or mimeType='%s') and trashed=false",
		escape(folderID), model.MimeTypeMP4, model.MimeTypeJPEG)
	if query != "" {
		fmt.Fprintf(&b, " and name contains '%s'", escape(query))
	}
	call := c.svc.Files.List().
		Q(b.String()).
		OrderBy("name").
		Spaces("drive").
		Fields("nextPageToken, files(" + fileFields + ")").
		Context(ctx)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}
	list, err := call.Do()
	if err != nil {
		return model.FileList{}, c.wrap(err)
	}
	out := model.FileList{NextPageToken: list.NextPageToken, Files: make([]model.File, 0, len(list.Files))}
	for _, f := range list.Files {
		out.Files = append(out.Files, toFile(f))
	}
	return out, nil
}

// Get returns metadata for one file, including its first parent.
func (c *Client) Get(ctx context.Context, fileID string) (model.File, error) {
	f, err := c.svc.Files.Get(fileID).Fields(fileFields).Context(ctx).Do()
	if err != nil {
		return model.File{}, c.wrap(err)
	}
	return toFile(f), nil
}

// Open starts downloading the content of fileID. The caller closes the body.
func (c *Client) Open(ctx context.Context, fileID string) (io.ReadCloser, string, error) {
	resp, err := c.svc.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return nil, "", c.wrap(err)
	}
	return resp.Body, resp.Header.Get("Content-Type"), nil
}

// DownloadURL returns the alt=media URL of fileID. It carries no credentials;
// callers append an access token.
func (c *Client) DownloadURL(fileID string) (string, error) {
	if fileID == "" {
		return "", errors.New("empty file id")
	}
	u, err := url.Parse(c.svc.BasePath)
	if err != nil {
		return "", fmt.Errorf("parse base path: %w", err)
	}
	u = u.JoinPath("files", fileID)
	u.RawQuery = url.Values{"alt": {"media"}}.Encode()
	return u.String(), nil
}

// AccountEmail returns the email address of the authorized user.
func (c *Client) AccountEmail(ctx context.Context) (string, error) {
	about, err := c.svc.About.Get().Fields("user(emailAddress)").Context(ctx).Do()
	if err != nil {
		return "", c.wrap(err)
	}
	if about.User == nil {
		return "", nil
	}
	return about.User.EmailAddress, nil
}

// wrap turns credential rejections into *auth.RecoverableError.
func (c *Client) wrap(err error) error {
	var rec *auth.RecoverableError
	if errors.As(err, &rec) {
		return err
	}
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) || !needsConsent(gerr) {
		return err
	}
	u := ""
	if c.consentURL != nil {
		u = c.consentURL()
	}
	return &auth.RecoverableError{URL: u, Err: err}
}

func needsConsent(e *googleapi.Error) bool {
	if e.Code == http.StatusUnauthorized {
		return true
	}
	if e.Code != http.StatusForbidden {
		return false
	}
	for _, item := range e.Errors {
		switch item.Reason {
		case "insufficientPermissions", "authError":
			return true
		}
	}
	return false
}

func toFile(f *drive.File) model.File {
	out := model.File{ID: f.Id, Name: f.Name, MimeType: f.MimeType, Size: f.Size}
	if len(f.Parents) > 0 {
		out.Parent = f.Parents[0]
	}
	return out
}

// escape quotes a value for use inside a single-quoted query string.
func escape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}
