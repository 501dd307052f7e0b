package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/soyleaf/soyleaf-api/internal/core/domain"
)

const reportsCollection = "predictions"

// ReportRepository stores one document per completed classification. The
// collection is append-only; no update or delete path exists.
type ReportRepository struct {
	coll *mongo.Collection
}

func NewReportRepository(db *mongo.Database) *ReportRepository {
	return &ReportRepository{coll: db.Collection(reportsCollection)}
}

func (r *ReportRepository) Append(ctx context.Context, report *domain.PredictionReport) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"username":   report.Username,
		"image":      report.Image,
		"prediction": report.Prediction,
		"confidence": report.Confidence,
		"timestamp":  report.Timestamp.UTC(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}

type mongoReport struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Username   string             `bson:"username"`
	Image      string             `bson:"image"`
	Prediction string             `bson:"prediction"`
	Confidence float64            `bson:"confidence"`
	Timestamp  time.Time          `bson:"timestamp"`
}

// ListByUser returns the user's reports newest first.
func (r *ReportRepository) ListByUser(ctx context.Context, username string) ([]domain.PredictionReport, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{"username": username}, opts)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoReport
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode reports: %w", err)
	}

	reports := make([]domain.PredictionReport, 0, len(docs))
	for _, d := range docs {
		reports = append(reports, domain.PredictionReport{
			ID:         d.ID.Hex(),
			Username:   d.Username,
			Image:      d.Image,
			Prediction: d.Prediction,
			Confidence: d.Confidence,
			Timestamp:  d.Timestamp,
		})
	}
	return reports, nil
}

// EnsureIndexes backs the per-user history query.
func (r *ReportRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "username", Value: 1}, {Key: "timestamp", Value: -1}},
	})
	return err
}
