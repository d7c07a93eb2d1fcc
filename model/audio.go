package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AudioRecord is the denormalized index document kept in the metadata
// collection. It carries the full artist/track/url payload plus a pointer
// (CollectionTag, AudioID) to the authoritative copy in one of the two
// partition collections. All listing, search and pagination reads come
// from here and never touch the partitions.
type AudioRecord struct {
	ID            primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	ArtistName    string             `json:"artistName" bson:"artistName"`
	TrackName     string             `json:"trackName" bson:"trackName"`
	FileURL       string             `json:"fileUrl" bson:"fileUrl"`
	CollectionTag string             `json:"collection_tag" bson:"collection_tag"` // immutable after create
	AudioID       primitive.ObjectID `json:"audio_id" bson:"audio_id"`             // _id of the partition document
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at" bson:"updated_at"`
}

// PartitionRecord is the full document stored in the partition collection
// chosen at upload time.
type PartitionRecord struct {
	ID            primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	ArtistName    string             `json:"artistName" bson:"artistName"`
	TrackName     string             `json:"trackName" bson:"trackName"`
	FileURL       string             `json:"fileUrl" bson:"fileUrl"`
	CollectionTag string             `json:"collection_tag" bson:"collection_tag"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
}

// AudioUpdate holds the optional fields of a partial metadata edit. A nil
// pointer means "leave unchanged". The partition tag and back-reference are
// deliberately absent: they are fixed at creation.
type AudioUpdate struct {
	ArtistName *string `json:"artistName"`
	TrackName  *string `json:"trackName"`
	FileURL    *string `json:"fileUrl"`
}

// Empty reports whether the update would change nothing.
func (u AudioUpdate) Empty() bool {
	return u.ArtistName == nil && u.TrackName == nil && u.FileURL == nil
}
