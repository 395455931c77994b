// Package drive implements the ObjectStore interface on top of a Google
// Drive folder. Objects are files inside the configured folder; a key of the
// form "sub/name" addresses a file inside a lazily created sub-folder.
package drive

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/hirotalab/cms-server/internal/storage"
)

const folderMimeType = "application/vnd.google-apps.folder"

const fileFields = "files(id, name, mimeType, size, modifiedTime, webViewLink)"

// Store persists objects as files in a Google Drive folder.
type Store struct {
	svc      *drive.Service
	folderID string

	mu      sync.Mutex
	folders map[string]string // sub-folder name -> Drive folder ID
}

// New builds a Drive-backed store rooted at folderID. Credentials come from
// the service account file when it exists, otherwise from application
// default credentials.
func New(ctx context.Context, folderID, serviceAccountFile string) (*Store, error) {
	opts := []option.ClientOption{option.WithScopes(drive.DriveScope)}
	if serviceAccountFile != "" {
		if _, err := os.Stat(serviceAccountFile); err == nil {
			opts = append(opts, option.WithCredentialsFile(serviceAccountFile))
		}
	}
	svc, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}
	return &Store{svc: svc, folderID: folderID, folders: make(map[string]string)}, nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	file, err := s.find(ctx, key, false)
	if err != nil {
		return nil, err
	}
	res, err := s.svc.Files.Get(file.Id).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", key, err)
	}
	defer res.Body.Close()
	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return data, nil
}

func (s *Store) Put(ctx context.Context, key string, data []byte, contentType string) error {
	parentID, name, err := s.resolve(ctx, key, true)
	if err != nil {
		return err
	}
	media := googleapi.ContentType(contentType)
	existing, err := s.findIn(ctx, parentID, name)
	if err != nil && err != storage.ErrNotFound {
		return err
	}
	if existing != nil {
		_, err = s.svc.Files.Update(existing.Id, &drive.File{}).
			Media(bytes.NewReader(data), media).Context(ctx).Do()
	} else {
		meta := &drive.File{Name: name, Parents: []string{parentID}}
		_, err = s.svc.Files.Create(meta).
			Media(bytes.NewReader(data), media).Fields("id").Context(ctx).Do()
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	file, err := s.find(ctx, key, false)
	if err != nil {
		return err
	}
	if err := s.svc.Files.Delete(file.Id).Context(ctx).Do(); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (s *Store) List(ctx context.Context, prefix string) ([]storage.ObjectInfo, error) {
	parentID := s.folderID
	if prefix != "" {
		id, err := s.folder(ctx, prefix, false)
		if err == storage.ErrNotFound {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		parentID = id
	}

	var infos []storage.ObjectInfo
	pageToken := ""
	for {
		call := s.svc.Files.List().
			Q(fmt.Sprintf("'%s' in parents and trashed = false", parentID)).
			Fields(googleapi.Field("nextPageToken, " + fileFields)).
			PageSize(100).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		res, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("list folder: %w", err)
		}
		for _, f := range res.Files {
			if f.MimeType == folderMimeType {
				continue
			}
			infos = append(infos, objectInfo(prefix, f))
		}
		pageToken = res.NextPageToken
		if pageToken == "" {
			return infos, nil
		}
	}
}

func (s *Store) Stat(ctx context.Context, key string) (storage.ObjectInfo, error) {
	file, err := s.find(ctx, key, false)
	if err != nil {
		return storage.ObjectInfo{}, err
	}
	prefix, _ := splitKey(key)
	return objectInfo(prefix, file), nil
}

func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.Stat(ctx, key)
	if err == storage.ErrNotFound {
		return false, nil
	}
	return err == nil, err
}

// find locates the file a key refers to. When create is set, missing
// sub-folders are created on the way.
func (s *Store) find(ctx context.Context, key string, create bool) (*drive.File, error) {
	parentID, name, err := s.resolve(ctx, key, create)
	if err != nil {
		return nil, err
	}
	file, err := s.findIn(ctx, parentID, name)
	if err != nil {
		return nil, err
	}
	if file == nil {
		return nil, storage.ErrNotFound
	}
	return file, nil
}

func (s *Store) resolve(ctx context.Context, key string, create bool) (parentID, name string, err error) {
	prefix, name := splitKey(key)
	if prefix == "" {
		return s.folderID, name, nil
	}
	id, err := s.folder(ctx, prefix, create)
	if err != nil {
		return "", "", err
	}
	return id, name, nil
}

// folder returns the Drive ID of a sub-folder, creating it when asked to.
// Resolved IDs are cached for the process lifetime.
func (s *Store) folder(ctx context.Context, name string, create bool) (string, error) {
	s.mu.Lock()
	if id, ok := s.folders[name]; ok {
		s.mu.Unlock()
		return id, nil
	}
	s.mu.Unlock()

	existing, err := s.findIn(ctx, s.folderID, name)
	if err != nil && err != storage.ErrNotFound {
		return "", err
	}
	if existing != nil && existing.MimeType == folderMimeType {
		s.cacheFolder(name, existing.Id)
		return existing.Id, nil
	}
	if !create {
		return "", storage.ErrNotFound
	}

	meta := &drive.File{Name: name, MimeType: folderMimeType, Parents: []string{s.folderID}}
	created, err := s.svc.Files.Create(meta).Fields("id").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("create folder %s: %w", name, err)
	}
	s.cacheFolder(name, created.Id)
	return created.Id, nil
}

func (s *Store) cacheFolder(name, id string) {
	s.mu.Lock()
	s.folders[name] = id
	s.mu.Unlock()
}

// findIn searches a parent folder for a file by exact name. Returns a nil
// file with no error when nothing matches.
func (s *Store) findIn(ctx context.Context, parentID, name string) (*drive.File, error) {
	q := fmt.Sprintf("name = '%s' and '%s' in parents and trashed = false", escapeQuery(name), parentID)
	res, err := s.svc.Files.List().
		Q(q).
		Fields(googleapi.Field(fileFields)).
		PageSize(1).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", name, err)
	}
	if len(res.Files) == 0 {
		return nil, nil
	}
	return res.Files[0], nil
}

func objectInfo(prefix string, f *drive.File) storage.ObjectInfo {
	key := f.Name
	if prefix != "" {
		key = prefix + "/" + f.Name
	}
	updated, _ := time.Parse(time.RFC3339, f.ModifiedTime)
	return storage.ObjectInfo{
		Key:         key,
		ID:          f.Id,
		Size:        f.Size,
		ContentType: f.MimeType,
		UpdatedAt:   updated,
		Link:        f.WebViewLink,
	}
}

func splitKey(key string) (prefix, name string) {
	if i := strings.IndexByte(key, '/'); i >= 0 {
		return key[:i], key[i+1:]
	}
	return "", key
}

// escapeQuery escapes a file name for use inside a Drive query literal.
func escapeQuery(name string) string {
	name = strings.ReplaceAll(name, `\`, `\\`)
	return strings.ReplaceAll(name, `'`, `\'`)
}
