package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"musicalchairs/logger"
	"musicalchairs/model"
	"musicalchairs/partition"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// metadataCollection is the single index collection holding denormalized
// copies of every record across both partitions. All reads go here; the
// partition collections are only touched on create and delete.
const metadataCollection = "metadata"

// Sort fields accepted by List.
const (
	SortByCreatedAt  = "created_at"
	SortByArtistName = "artistName"
	SortByTrackName  = "trackName"
)

// ListOptions control pagination and ordering of List. Page is 1-based.
type ListOptions struct {
	Page   int
	Limit  int
	SortBy string // created_at (default), artistName, trackName
	Order  string // asc or desc (default)
}

// AudioRepository defines the interface for audio metadata operations.
type AudioRepository interface {
	Create(ctx context.Context, artistName, trackName, fileURL string) (*model.AudioRecord, error)
	List(ctx context.Context, opts ListOptions) ([]*model.AudioRecord, error)
	Search(ctx context.Context, artistFilter, trackFilter string, page, limit int) ([]*model.AudioRecord, error)
	GetByID(ctx context.Context, id string) (*model.AudioRecord, error)
	Update(ctx context.Context, id string, update model.AudioUpdate) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

// mongoAudioRepository implements AudioRepository on MongoDB.
type mongoAudioRepository struct {
	db *mongo.Database
}

// NewMongoAudioRepository creates a new mongoAudioRepository.
func NewMongoAudioRepository(db *mongo.Database) AudioRepository {
	return &mongoAudioRepository{db: db}
}

// Create inserts the authoritative record into the partition collection
// chosen by the selector, then inserts the denormalized index record. If
// the index insert fails, the partition insert is compensated with a
// delete so no orphan is left behind.
func (r *mongoAudioRepository) Create(ctx context.Context, artistName, trackName, fileURL string) (*model.AudioRecord, error) {
	tag := partition.Tag(artistName, trackName)
	now := time.Now().UTC()

	partitionDoc := &model.PartitionRecord{
		ArtistName:    artistName,
		TrackName:     trackName,
		FileURL:       fileURL,
		CollectionTag: tag,
		CreatedAt:     now,
	}
	res, err := r.db.Collection(tag).InsertOne(ctx, partitionDoc)
	if err != nil {
		return nil, fmt.Errorf("failed to insert into partition %s: %w", tag, err)
	}
	audioID, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("unexpected inserted id type %T for partition %s", res.InsertedID, tag)
	}

	record := &model.AudioRecord{
		ArtistName:    artistName,
		TrackName:     trackName,
		FileURL:       fileURL,
		CollectionTag: tag,
		AudioID:       audioID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	indexRes, err := r.db.Collection(metadataCollection).InsertOne(ctx, record)
	if err != nil {
		// Compensate the first write so the partition does not keep a
		// record the index knows nothing about.
		if _, delErr := r.db.Collection(tag).DeleteOne(ctx, bson.M{"_id": audioID}); delErr != nil {
			logger.Error("compensating delete failed, orphan left in partition",
				logger.String("collection", tag),
				logger.String("audioId", audioID.Hex()),
				logger.ErrorField(delErr))
		}
		return nil, fmt.Errorf("failed to insert metadata record: %w", err)
	}

	record.ID, ok = indexRes.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("unexpected inserted id type %T for metadata", indexRes.InsertedID)
	}

	logger.Info("audio record created",
		logger.String("id", record.ID.Hex()),
		logger.String("collection", tag),
		logger.String("artist", artistName),
		logger.String("track", trackName))
	return record, nil
}

// List reads a page of records from the index collection, sorted then
// skipped/limited. A page past the end of the data yields an empty slice.
func (r *mongoAudioRepository) List(ctx context.Context, opts ListOptions) ([]*model.AudioRecord, error) {
	sortBy := opts.SortBy
	switch sortBy {
	case SortByCreatedAt, SortByArtistName, SortByTrackName:
	default:
		sortBy = SortByCreatedAt
	}
	direction := -1
	if opts.Order == "asc" {
		direction = 1
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: sortBy, Value: direction}}).
		SetSkip(int64(opts.Page-1) * int64(opts.Limit)).
		SetLimit(int64(opts.Limit))

	return r.find(ctx, bson.M{}, findOpts)
}

// Search matches non-empty filters as case-insensitive substrings against
// the index collection. Filter validation (at least one non-empty) is the
// caller's responsibility.
func (r *mongoAudioRepository) Search(ctx context.Context, artistFilter, trackFilter string, page, limit int) ([]*model.AudioRecord, error) {
	filter := bson.M{}
	if artistFilter != "" {
		filter["artistName"] = primitive.Regex{Pattern: regexp.QuoteMeta(artistFilter), Options: "i"}
	}
	if trackFilter != "" {
		filter["trackName"] = primitive.Regex{Pattern: regexp.QuoteMeta(trackFilter), Options: "i"}
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: SortByCreatedAt, Value: -1}}).
		SetSkip(int64(page-1) * int64(limit)).
		SetLimit(int64(limit))

	return r.find(ctx, filter, findOpts)
}

// GetByID retrieves a single index record.
func (r *mongoAudioRepository) GetByID(ctx context.Context, id string) (*model.AudioRecord, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	record := &model.AudioRecord{}
	err = r.db.Collection(metadataCollection).FindOne(ctx, bson.M{"_id": objectID}).Decode(record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch metadata record %s: %w", id, err)
	}
	return record, nil
}

// Update merges the supplied fields into the index record. The index is
// authoritative for reads, so the partition copy is left alone; the
// partition tag and back-reference never change.
func (r *mongoAudioRepository) Update(ctx context.Context, id string, update model.AudioUpdate) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if update.ArtistName != nil {
		set["artistName"] = *update.ArtistName
	}
	if update.TrackName != nil {
		set["trackName"] = *update.TrackName
	}
	if update.FileURL != nil {
		set["fileUrl"] = *update.FileURL
	}

	res, err := r.db.Collection(metadataCollection).UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update metadata record %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes both copies of a record: the authoritative partition
// document first (via the index record's back-reference), then the index
// record. A partition document that is already gone is reported but does
// not abort the delete.
func (r *mongoAudioRepository) Delete(ctx context.Context, id string) error {
	record, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	partRes, err := r.db.Collection(record.CollectionTag).DeleteOne(ctx, bson.M{"_id": record.AudioID})
	if err != nil {
		return fmt.Errorf("failed to delete from partition %s: %w", record.CollectionTag, err)
	}
	if partRes.DeletedCount == 0 {
		logger.Warn("partition record already missing, deleting index record anyway",
			logger.String("id", id),
			logger.String("collection", record.CollectionTag),
			logger.String("audioId", record.AudioID.Hex()))
	}

	idxRes, err := r.db.Collection(metadataCollection).DeleteOne(ctx, bson.M{"_id": record.ID})
	if err != nil {
		return fmt.Errorf("failed to delete metadata record %s: %w", id, err)
	}
	if idxRes.DeletedCount == 0 {
		return ErrNotFound
	}

	logger.Info("audio record deleted",
		logger.String("id", id),
		logger.String("collection", record.CollectionTag))
	return nil
}

// Count returns the total number of index records.
func (r *mongoAudioRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.db.Collection(metadataCollection).CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count metadata records: %w", err)
	}
	return n, nil
}

// find runs a query against the index collection and decodes the cursor.
func (r *mongoAudioRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*model.AudioRecord, error) {
	cursor, err := r.db.Collection(metadataCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query metadata collection: %w", err)
	}
	defer cursor.Close(ctx)

	records := make([]*model.AudioRecord, 0)
	for cursor.Next(ctx) {
		record := &model.AudioRecord{}
		if err := cursor.Decode(record); err != nil {
			return nil, fmt.Errorf("failed to decode metadata record: %w", err)
		}
		records = append(records, record)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("error during metadata cursor iteration: %w", err)
	}
	return records, nil
}
