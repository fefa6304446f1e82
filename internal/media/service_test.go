package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mediastash/mediastash-backend/internal/metadata"
	"github.com/mediastash/mediastash-backend/internal/storage"
	"github.com/mediastash/mediastash-backend/pkg/enums"
)

func newTestService(t *testing.T, at time.Time) (*service, string) {
	t.Helper()
	root := t.TempDir()
	disk, err := storage.NewLocal(root)
	require.NoError(t, err)
	store := metadata.NewStore(filepath.Join(root, "media.json"), nil)
	svc := &service{
		store: store,
		disk:  disk,
		now:   func() time.Time { return at },
	}
	return svc, disk.Root()
}

func TestUploadVideo(t *testing.T) {
	svc, root := newTestService(t, time.UnixMilli(1700000000000))

	record, err := svc.Upload(context.Background(), UploadInput{
		Media: &FilePart{
			Reader:      strings.NewReader("video-bytes"),
			FileName:    "clip.MP4",
			ContentType: "video/mp4",
		},
		Title:        "Sunset Drive",
		UploaderName: "ana",
	})
	require.NoError(t, err)
	require.Equal(t, "1700000000000.mp4", record.Filename)
	require.Equal(t, enums.MediaKindVideo, record.MediaKind)
	require.Equal(t, int64(1700000000000), record.UploadedAtMillis)
	require.Empty(t, record.ThumbnailPath)

	stored, err := os.ReadFile(filepath.Join(root, storage.DirVideos, record.Filename))
	require.NoError(t, err)
	require.Equal(t, "video-bytes", string(stored))

	listed, err := svc.List(context.Background(), enums.MediaKindVideo)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Equal(t, "Sunset Drive", listed[0].Title)
	require.Equal(t, "ana", listed[0].UploaderName)
}

func TestUploadDefaultsTitleAndUploader(t *testing.T) {
	svc, _ := newTestService(t, time.UnixMilli(42))

	record, err := svc.Upload(context.Background(), UploadInput{
		Media: &FilePart{
			Reader:      strings.NewReader("x"),
			FileName:    "song.mp3",
			ContentType: "audio/mpeg",
		},
	})
	require.NoError(t, err)
	require.Equal(t, "song.mp3", record.Title)
	require.Equal(t, "Anonymous", record.UploaderName)
	require.Equal(t, enums.MediaKindAudio, record.MediaKind)
}

func TestUploadNonMediaContentTypeLandsInAudios(t *testing.T) {
	// Classification is binary: anything without a video prefix is audio,
	// images included.
	svc, root := newTestService(t, time.UnixMilli(99))

	record, err := svc.Upload(context.Background(), UploadInput{
		Media: &FilePart{
			Reader:      strings.NewReader("png-bytes"),
			FileName:    "pic.png",
			ContentType: "image/png",
		},
	})
	require.NoError(t, err)
	require.Equal(t, enums.MediaKindAudio, record.MediaKind)

	_, err = os.Stat(filepath.Join(root, storage.DirAudios, "99.png"))
	require.NoError(t, err)
}

func TestUploadMissingMediaRejected(t *testing.T) {
	svc, _ := newTestService(t, time.Now())

	_, err := svc.Upload(context.Background(), UploadInput{})
	require.Error(t, err)
}

func TestUploadThumbnail(t *testing.T) {
	svc, root := newTestService(t, time.UnixMilli(1234))

	record, err := svc.Upload(context.Background(), UploadInput{
		Media: &FilePart{
			Reader:      strings.NewReader("v"),
			FileName:    "clip.mp4",
			ContentType: "video/mp4",
		},
		Thumbnail: &FilePart{
			Reader:      strings.NewReader("thumb-bytes"),
			FileName:    "cover.JPG",
			ContentType: "image/jpeg",
		},
	})
	require.NoError(t, err)
	require.Equal(t, "/media/thumbnails/1234.jpg", record.ThumbnailPath)

	stored, err := os.ReadFile(filepath.Join(root, storage.DirThumbnails, "1234.jpg"))
	require.NoError(t, err)
	require.Equal(t, "thumb-bytes", string(stored))
}

func TestListNewestFirst(t *testing.T) {
	svc, _ := newTestService(t, time.Now())
	for _, ts := range []int64{100, 300, 200} {
		require.NoError(t, svc.store.Append(context.Background(), metadata.Record{
			Filename:         fmt.Sprintf("%d.mp4", ts),
			MediaKind:        enums.MediaKindVideo,
			UploadedAtMillis: ts,
		}))
	}

	listed, err := svc.List(context.Background(), enums.MediaKindVideo)
	require.NoError(t, err)

	got := make([]int64, 0, len(listed))
	for _, record := range listed {
		got = append(got, record.UploadedAtMillis)
	}
	require.Equal(t, []int64{300, 200, 100}, got)
}

func TestListFiltersByKind(t *testing.T) {
	svc, _ := newTestService(t, time.Now())
	require.NoError(t, svc.store.Append(context.Background(), metadata.Record{Filename: "1.mp4", MediaKind: enums.MediaKindVideo, UploadedAtMillis: 1}))
	require.NoError(t, svc.store.Append(context.Background(), metadata.Record{Filename: "2.mp3", MediaKind: enums.MediaKindAudio, UploadedAtMillis: 2}))

	videos, err := svc.List(context.Background(), enums.MediaKindVideo)
	require.NoError(t, err)
	require.Len(t, videos, 1)
	require.Equal(t, "1.mp4", videos[0].Filename)

	audios, err := svc.List(context.Background(), enums.MediaKindAudio)
	require.NoError(t, err)
	require.Len(t, audios, 1)
	require.Equal(t, "2.mp3", audios[0].Filename)
}

func TestListRejectsUnknownKind(t *testing.T) {
	svc, _ := newTestService(t, time.Now())

	_, err := svc.List(context.Background(), enums.MediaKind("image"))
	require.Error(t, err)
}

func TestSearch(t *testing.T) {
	svc, _ := newTestService(t, time.Now())
	seed := []metadata.Record{
		{Filename: "1.mp4", Title: "Sunset Drive", UploaderName: "ana", MediaKind: enums.MediaKindVideo, UploadedAtMillis: 1},
		{Filename: "2.mp4", Title: "Morning Run", UploaderName: "Driver Dan", MediaKind: enums.MediaKindVideo, UploadedAtMillis: 2},
		{Filename: "3.mp3", Title: "drive time podcast", UploaderName: "ana", MediaKind: enums.MediaKindAudio, UploadedAtMillis: 3},
	}
	for _, rec := range seed {
		require.NoError(t, svc.store.Append(context.Background(), rec))
	}

	require.Empty(t, svc.Search(context.Background(), ""))
	require.Empty(t, svc.Search(context.Background(), "   "))

	// Case-insensitive substring match on title or uploader name; audio
	// records never match even when their title contains the query.
	for _, query := range []string{"drive", "DRIVE"} {
		matches := svc.Search(context.Background(), query)
		require.Len(t, matches, 2, "query %q", query)
		for _, m := range matches {
			require.Equal(t, enums.MediaKindVideo, m.MediaKind)
		}
	}

	require.Len(t, svc.Search(context.Background(), "ana"), 1)
	require.Empty(t, svc.Search(context.Background(), "no-such-clip"))
}
