package media

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/mediastash/mediastash-backend/internal/metadata"
	"github.com/mediastash/mediastash-backend/internal/storage"
	"github.com/mediastash/mediastash-backend/pkg/enums"
	pkgerrors "github.com/mediastash/mediastash-backend/pkg/errors"
)

const defaultUploaderName = "Anonymous"

type metadataStore interface {
	ReadAll(ctx context.Context) []metadata.Record
	Append(ctx context.Context, record metadata.Record) error
}

type diskStore interface {
	Stage(r io.Reader) (string, error)
	Promote(staged, dir, filename string) error
	Discard(staged string)
}

// Service exposes the upload, listing and search semantics.
type Service interface {
	Upload(ctx context.Context, input UploadInput) (*metadata.Record, error)
	List(ctx context.Context, kind enums.MediaKind) ([]metadata.Record, error)
	Search(ctx context.Context, query string) []metadata.Record
}

type service struct {
	store metadataStore
	disk  diskStore
	now   func() time.Time
}

// NewService constructs a media service backed by the provided metadata store
// and disk tree.
func NewService(store metadataStore, disk diskStore) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("metadata store required")
	}
	if disk == nil {
		return nil, fmt.Errorf("disk store required")
	}
	return &service{
		store: store,
		disk:  disk,
		now:   time.Now,
	}, nil
}

// FilePart carries one file part of the multipart request.
type FilePart struct {
	Reader      io.Reader
	FileName    string
	ContentType string
}

// UploadInput models a decoded upload request.
type UploadInput struct {
	Media        *FilePart
	Thumbnail    *FilePart
	Title        string
	UploaderName string
}

func (s *service) Upload(ctx context.Context, input UploadInput) (*metadata.Record, error) {
	if input.Media == nil || input.Media.Reader == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "media file is required")
	}

	kind := enums.ClassifyMediaKind(input.Media.ContentType)
	uploadedAt := s.now().UnixMilli()
	filename := fmt.Sprintf("%d%s", uploadedAt, strings.ToLower(filepath.Ext(input.Media.FileName)))

	staged, err := s.disk.Stage(input.Media.Reader)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "stage media upload")
	}
	if err := s.disk.Promote(staged, kind.Dir(), filename); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store media file")
	}

	thumbnailPath := ""
	if input.Thumbnail != nil && input.Thumbnail.Reader != nil {
		thumbName := thumbnailName(filename, input.Thumbnail.FileName)
		stagedThumb, err := s.disk.Stage(input.Thumbnail.Reader)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "stage thumbnail upload")
		}
		if err := s.disk.Promote(stagedThumb, storage.DirThumbnails, thumbName); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store thumbnail file")
		}
		thumbnailPath = "/media/" + storage.DirThumbnails + "/" + thumbName
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		title = input.Media.FileName
	}
	uploader := strings.TrimSpace(input.UploaderName)
	if uploader == "" {
		uploader = defaultUploaderName
	}

	record := metadata.Record{
		Filename:         filename,
		Title:            title,
		UploaderName:     uploader,
		MediaKind:        kind,
		ThumbnailPath:    thumbnailPath,
		UploadedAtMillis: uploadedAt,
	}

	// A failure past this point leaves the promoted files on disk with no
	// metadata entry; there is no compensation step.
	if err := s.store.Append(ctx, record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append media record")
	}
	return &record, nil
}

// thumbnailName pairs a thumbnail with its media file: the media filename's
// base plus the thumbnail's original extension.
func thumbnailName(mediaFilename, thumbFileName string) string {
	base := strings.TrimSuffix(mediaFilename, filepath.Ext(mediaFilename))
	return base + strings.ToLower(filepath.Ext(thumbFileName))
}

func (s *service) List(ctx context.Context, kind enums.MediaKind) ([]metadata.Record, error) {
	if !kind.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid media type")
	}

	records := s.store.ReadAll(ctx)
	items := make([]metadata.Record, 0, len(records))
	for _, record := range records {
		if record.MediaKind == kind {
			items = append(items, record)
		}
	}

	// Newest first; ties keep whatever order the scan produced.
	sort.Slice(items, func(i, j int) bool {
		return items[i].UploadedAtMillis > items[j].UploadedAtMillis
	})
	return items, nil
}

func (s *service) Search(ctx context.Context, query string) []metadata.Record {
	q := strings.ToLower(strings.TrimSpace(query))
	matches := []metadata.Record{}
	if q == "" {
		return matches
	}

	for _, record := range s.store.ReadAll(ctx) {
		if record.MediaKind != enums.MediaKindVideo {
			continue
		}
		if strings.Contains(strings.ToLower(record.Title), q) ||
			strings.Contains(strings.ToLower(record.UploaderName), q) {
			matches = append(matches, record)
		}
	}
	return matches
}
