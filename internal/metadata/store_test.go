package metadata

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mediastash/mediastash-backend/pkg/enums"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "media.json"), nil)
}

func TestReadAllAbsentDocument(t *testing.T) {
	store := newTestStore(t)

	records := store.ReadAll(context.Background())
	require.NotNil(t, records)
	require.Empty(t, records)
}

func TestReadAllCorruptDocument(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.WriteFile(store.path, []byte("{not json"), 0o644))

	require.Empty(t, store.ReadAll(context.Background()))
}

func TestAppendRoundTrip(t *testing.T) {
	store := newTestStore(t)
	rec := Record{
		Filename:         "1700000000000.mp4",
		Title:            "Sunset Drive",
		UploaderName:     "ana",
		MediaKind:        enums.MediaKindVideo,
		ThumbnailPath:    "/media/thumbnails/1700000000000.jpg",
		UploadedAtMillis: 1700000000000,
	}

	require.NoError(t, store.Append(context.Background(), rec))

	records := store.ReadAll(context.Background())
	require.Len(t, records, 1)
	require.Equal(t, rec, records[0])
}

func TestSaveAllOverwritesDocument(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.SaveAll(context.Background(), []Record{{Filename: "a.mp4", MediaKind: enums.MediaKindVideo}}))
	require.NoError(t, store.SaveAll(context.Background(), []Record{{Filename: "b.mp4", MediaKind: enums.MediaKindVideo}}))

	records := store.ReadAll(context.Background())
	require.Len(t, records, 1)
	require.Equal(t, "b.mp4", records[0].Filename)
}

func TestConcurrentAppendsLoseNothing(t *testing.T) {
	store := newTestStore(t)

	const n = 25
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := store.Append(context.Background(), Record{
				Filename:         fmt.Sprintf("%d.mp3", i),
				MediaKind:        enums.MediaKindAudio,
				UploadedAtMillis: int64(i),
			})
			if err != nil {
				t.Errorf("append %d: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	require.Len(t, store.ReadAll(context.Background()), n)
}
