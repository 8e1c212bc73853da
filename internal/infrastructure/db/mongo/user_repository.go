package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/emotional-truth/portal-api/internal/core/domain"
)

const usersCollection = "users"

// caseInsensitive matches ignoring case and diacritics; used for the
// recovery-flow email lookup.
var caseInsensitive = &options.Collation{Locale: "en", Strength: 2}

type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

// userDoc mirrors a users row. The video field is decoded as a raw value
// because legacy rows carry a single string where newer rows carry an
// array; normalization to []string happens here and nowhere else.
type userDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Username  string             `bson:"username"`
	Password  string             `bson:"password,omitempty"`
	FirstName string             `bson:"first_name"`
	LastName  string             `bson:"last_name"`
	Email     string             `bson:"email"`
	Role      string             `bson:"role"`
	VideoURLs bson.RawValue      `bson:"video_urls,omitempty"`
	AvatarURL string             `bson:"avatar_url,omitempty"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (d userDoc) toDomain() *domain.User {
	return &domain.User{
		ID:        d.ID.Hex(),
		Username:  d.Username,
		Password:  d.Password,
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Email:     d.Email,
		Role:      d.Role,
		VideoURLs: decodeVideoURLs(d.VideoURLs),
		AvatarURL: d.AvatarURL,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// decodeVideoURLs accepts the legacy single-string shape as well as the
// array shape; anything unreadable normalizes to an empty collection,
// never nil.
func decodeVideoURLs(raw bson.RawValue) []string {
	switch raw.Type {
	case bsontype.String:
		if s, ok := raw.StringValueOK(); ok && s != "" {
			return []string{s}
		}
	case bsontype.Array:
		values, err := raw.Array().Values()
		if err != nil {
			break
		}
		out := make([]string, 0, len(values))
		for _, v := range values {
			if s, ok := v.StringValueOK(); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return []string{}
}

func (r *UserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.User
	for cur.Next(ctx) {
		var d userDoc
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		out = append(out, *d.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return out, nil
}

// FindByCredentials is a plain equality filter on username and password,
// both case-sensitive. The store contract requires credentials to match
// exactly as stored.
func (r *UserRepository) FindByCredentials(ctx context.Context, username, password string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d userDoc
	err := r.coll.FindOne(ctx, bson.M{"username": username, "password": password}).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by credentials: %w", err)
	}
	return d.toDomain(), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOne().SetCollation(caseInsensitive)
	var d userDoc
	err := r.coll.FindOne(ctx, bson.M{"email": email}, opts).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return d.toDomain(), nil
}

func (r *UserRepository) Insert(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	doc := bson.M{
		"username":   user.Username,
		"password":   user.Password,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"email":      user.Email,
		"role":       user.Role,
		"video_urls": videoURLsArray(user.VideoURLs),
		"created_at": now,
		"updated_at": now,
	}
	if user.AvatarURL != "" {
		doc["avatar_url"] = user.AvatarURL
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	stored := *user
	stored.ID = res.InsertedID.(primitive.ObjectID).Hex()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	if stored.VideoURLs == nil {
		stored.VideoURLs = []string{}
	}
	return &stored, nil
}

// Update rewrites the row by id and returns the stored result in one round
// trip. An empty password is omitted from the update document so the
// persisted value survives.
func (r *UserRepository) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	set := bson.M{
		"username":   user.Username,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"email":      user.Email,
		"role":       user.Role,
		"video_urls": videoURLsArray(user.VideoURLs),
		"avatar_url": user.AvatarURL,
		"updated_at": time.Now().UTC(),
	}
	if user.Password != "" {
		set["password"] = user.Password
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var d userDoc
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return d.toDomain(), nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes the repository relies on.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "email", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func videoURLsArray(urls []string) bson.A {
	arr := make(bson.A, 0, len(urls))
	for _, u := range urls {
		arr = append(arr, u)
	}
	return arr
}
