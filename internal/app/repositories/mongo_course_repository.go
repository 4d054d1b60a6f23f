package repositories

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/magallanes/coursecatalog/internal/app/models"
	"github.com/magallanes/coursecatalog/internal/pkg/logger"
)

// MongoCourseSink writes course records into a MongoDB collection.
type MongoCourseSink struct {
	collection *mongo.Collection
	log        zerolog.Logger
}

// NewMongoCourseSink creates a sink over collection
func NewMongoCourseSink(collection *mongo.Collection) *MongoCourseSink {
	return &MongoCourseSink{
		collection: collection,
		log:        logger.WithComponent("mongo_sink").With().Str("collection", collection.Name()).Logger(),
	}
}

// InsertMany implements CourseSink. Documents are inserted unordered so one
// bad document does not stop the rest.
func (s *MongoCourseSink) InsertMany(ctx context.Context, records []models.CourseRecord) error {
	if len(records) == 0 {
		return nil
	}

	docs := make([]interface{}, len(records))
	for i := range records {
		docs[i] = records[i]
	}

	res, err := s.collection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	if err != nil {
		s.log.Error().Err(err).Int("records", len(records)).Msg("Error inserting course records")
		return fmt.Errorf("error inserting into %s: %w", s.collection.Name(), err)
	}

	s.log.Debug().Int("inserted", len(res.InsertedIDs)).Msg("Course records inserted")
	return nil
}
