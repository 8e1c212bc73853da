package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/emotional-truth/portal-api/internal/core/domain"
)

const adsCollection = "ads"

type AdRepository struct {
	coll *mongo.Collection
}

func NewAdRepository(db *mongo.Database) *AdRepository {
	return &AdRepository{coll: db.Collection(adsCollection)}
}

type adDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	ImageURL  string             `bson:"image_url"`
	Link      string             `bson:"link"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (d adDoc) toDomain() *domain.Ad {
	return &domain.Ad{
		ID:        d.ID.Hex(),
		Title:     d.Title,
		ImageURL:  d.ImageURL,
		Link:      d.Link,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func (r *AdRepository) FindAll(ctx context.Context) ([]domain.Ad, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find ads: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.Ad
	for cur.Next(ctx) {
		var d adDoc
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode ad: %w", err)
		}
		out = append(out, *d.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate ads: %w", err)
	}
	return out, nil
}

func (r *AdRepository) Insert(ctx context.Context, ad *domain.Ad) (*domain.Ad, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	res, err := r.coll.InsertOne(ctx, bson.M{
		"title":      ad.Title,
		"image_url":  ad.ImageURL,
		"link":       ad.Link,
		"created_at": now,
		"updated_at": now,
	})
	if err != nil {
		return nil, fmt.Errorf("insert ad: %w", err)
	}

	stored := *ad
	stored.ID = res.InsertedID.(primitive.ObjectID).Hex()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	return &stored, nil
}

func (r *AdRepository) Update(ctx context.Context, ad *domain.Ad) (*domain.Ad, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(ad.ID)
	if err != nil {
		return nil, domain.ErrAdNotFound
	}

	set := bson.M{
		"title":      ad.Title,
		"image_url":  ad.ImageURL,
		"link":       ad.Link,
		"updated_at": time.Now().UTC(),
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var d adDoc
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAdNotFound
		}
		return nil, fmt.Errorf("update ad: %w", err)
	}
	return d.toDomain(), nil
}

func (r *AdRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrAdNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete ad: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrAdNotFound
	}
	return nil
}
