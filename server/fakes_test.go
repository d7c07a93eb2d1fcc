package server

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"musicalchairs/model"
	"musicalchairs/partition"
	"musicalchairs/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeAudioRepo is an in-memory AudioRepository honoring the same
// contract as the Mongo implementation.
type fakeAudioRepo struct {
	records []*model.AudioRecord
	clock   time.Time
	failing bool // when set, every operation reports a storage failure
}

func newFakeAudioRepo() *fakeAudioRepo {
	return &fakeAudioRepo{clock: time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)}
}

func (f *fakeAudioRepo) tick() time.Time {
	f.clock = f.clock.Add(time.Minute)
	return f.clock
}

func (f *fakeAudioRepo) Create(ctx context.Context, artistName, trackName, fileURL string) (*model.AudioRecord, error) {
	if f.failing {
		return nil, fmt.Errorf("insert failed")
	}
	now := f.tick()
	record := &model.AudioRecord{
		ID:            primitive.NewObjectID(),
		ArtistName:    artistName,
		TrackName:     trackName,
		FileURL:       fileURL,
		CollectionTag: partition.Tag(artistName, trackName),
		AudioID:       primitive.NewObjectID(),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	f.records = append(f.records, record)
	return record, nil
}

func (f *fakeAudioRepo) List(ctx context.Context, opts repository.ListOptions) ([]*model.AudioRecord, error) {
	if f.failing {
		return nil, fmt.Errorf("query failed")
	}
	sorted := make([]*model.AudioRecord, len(f.records))
	copy(sorted, f.records)

	asc := opts.Order == "asc"
	sort.SliceStable(sorted, func(i, j int) bool {
		var less bool
		switch opts.SortBy {
		case repository.SortByArtistName:
			less = sorted[i].ArtistName < sorted[j].ArtistName
		case repository.SortByTrackName:
			less = sorted[i].TrackName < sorted[j].TrackName
		default:
			less = sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
		}
		if asc {
			return less
		}
		return !less
	})

	return paginate(sorted, opts.Page, opts.Limit), nil
}

func (f *fakeAudioRepo) Search(ctx context.Context, artistFilter, trackFilter string, page, limit int) ([]*model.AudioRecord, error) {
	if f.failing {
		return nil, fmt.Errorf("query failed")
	}
	matches := make([]*model.AudioRecord, 0)
	for _, record := range f.records {
		if artistFilter != "" && !strings.Contains(strings.ToLower(record.ArtistName), strings.ToLower(artistFilter)) {
			continue
		}
		if trackFilter != "" && !strings.Contains(strings.ToLower(record.TrackName), strings.ToLower(trackFilter)) {
			continue
		}
		matches = append(matches, record)
	}
	return paginate(matches, page, limit), nil
}

func (f *fakeAudioRepo) GetByID(ctx context.Context, id string) (*model.AudioRecord, error) {
	if f.failing {
		return nil, fmt.Errorf("query failed")
	}
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, repository.ErrInvalidID
	}
	for _, record := range f.records {
		if record.ID.Hex() == id {
			return record, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeAudioRepo) Update(ctx context.Context, id string, update model.AudioUpdate) error {
	record, err := f.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if update.ArtistName != nil {
		record.ArtistName = *update.ArtistName
	}
	if update.TrackName != nil {
		record.TrackName = *update.TrackName
	}
	if update.FileURL != nil {
		record.FileURL = *update.FileURL
	}
	record.UpdatedAt = f.tick()
	return nil
}

func (f *fakeAudioRepo) Delete(ctx context.Context, id string) error {
	if _, err := f.GetByID(ctx, id); err != nil {
		return err
	}
	for i, record := range f.records {
		if record.ID.Hex() == id {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeAudioRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.records)), nil
}

func paginate(records []*model.AudioRecord, page, limit int) []*model.AudioRecord {
	skip := (page - 1) * limit
	if skip >= len(records) {
		return []*model.AudioRecord{}
	}
	end := skip + limit
	if end > len(records) {
		end = len(records)
	}
	return records[skip:end]
}

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	users map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User)}
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, username, passwordHash string) (*model.User, error) {
	if _, exists := f.users[username]; exists {
		return nil, repository.ErrDuplicateUser
	}
	user := &model.User{
		ID:           primitive.NewObjectID(),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	f.users[username] = user
	return user, nil
}

func (f *fakeUserRepo) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	user, exists := f.users[username]
	if !exists {
		return nil, repository.ErrNotFound
	}
	return user, nil
}

// fakeBlobStore is an in-memory BlobStore.
type fakeBlobStore struct {
	objects map[string][]byte
	seq     int
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{objects: make(map[string][]byte)}
}

func (f *fakeBlobStore) Upload(ctx context.Context, r io.Reader, size int64, contentType string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.seq++
	name := fmt.Sprintf("blob%d.wav", f.seq)
	f.objects[name] = data
	return name, nil
}

func (f *fakeBlobStore) PublicURL(objectName string) string {
	return "http://blob.test/uploads/" + objectName
}

func (f *fakeBlobStore) Open(ctx context.Context, objectName string) (io.ReadCloser, error) {
	data, exists := f.objects[objectName]
	if !exists {
		return nil, fmt.Errorf("object %s not found", objectName)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}
