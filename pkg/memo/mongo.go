package memo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoConfig configures the MongoDB backend.
type MongoConfig struct {
	ConnectionURL   string        `env:"MONGODB_URL" envDefault:"mongodb://localhost:27017"`
	Database        string        `env:"MONGODB_DATABASE" envDefault:"probekit"`
	Collection      string        `env:"MONGODB_COLLECTION" envDefault:"memo_entries"`
	ConnectTimeout  time.Duration `env:"MONGODB_CONNECT_TIMEOUT" envDefault:"10s"`
	MaxPoolSize     uint64        `env:"MONGODB_MAX_POOL_SIZE" envDefault:"100"`
	MinPoolSize     uint64        `env:"MONGODB_MIN_POOL_SIZE" envDefault:"1"`
	MaxConnIdleTime time.Duration `env:"MONGODB_MAX_CONN_IDLE_TIME" envDefault:"300s"`
	RetryAttempts   int           `env:"MONGODB_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval   time.Duration `env:"MONGODB_RETRY_INTERVAL" envDefault:"5s"`
}

// ConnectMongo opens a client and pings the primary, retrying RetryAttempts
// times.
func ConnectMongo(ctx context.Context, cfg MongoConfig) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(cfg.ConnectionURL).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetMinPoolSize(cfg.MinPoolSize).
		SetMaxConnIdleTime(cfg.MaxConnIdleTime)

	var lastErr error
	for i := range max(cfg.RetryAttempts, 1) {
		if i > 0 {
			select {
			case <-ctx.Done():
				return nil, errors.Join(ErrMongoNotReady, ctx.Err())
			case <-time.After(cfg.RetryInterval):
			}
		}

		client, err := mongo.Connect(opts)
		if err != nil {
			lastErr = err
			continue
		}
		if err := client.Ping(ctx, nil); err != nil {
			_ = client.Disconnect(context.WithoutCancel(ctx))
			lastErr = err
			continue
		}
		return client, nil
	}
	return nil, errors.Join(ErrMongoNotReady, lastErr)
}

// mongoEntry is the stored document. The entry itself travels as JSON so the
// document shape does not depend on bson tags of classify types.
type mongoEntry struct {
	EnvironmentID string    `bson:"_id"`
	Payload       string    `bson:"payload"`
	UpdatedAt     time.Time `bson:"updated_at"`
}

// MongoStore keeps one document per environment, keyed by its id.
type MongoStore struct {
	coll *mongo.Collection
}

var _ Store = (*MongoStore)(nil)

func NewMongoStore(coll *mongo.Collection) *MongoStore {
	return &MongoStore{coll: coll}
}

// EnsureTTL creates the index that lets MongoDB expire entries not
// overwritten for ttl. Zero ttl is a no-op.
func (s *MongoStore) EnsureTTL(ctx context.Context, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "updated_at", Value: 1}},
		Options: options.Index().SetName("memo_ttl").SetExpireAfterSeconds(int32(ttl.Seconds())),
	})
	if err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}

func (s *MongoStore) Save(ctx context.Context, e Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return errors.Join(ErrCorruptEntry, err)
	}
	doc := mongoEntry{EnvironmentID: e.EnvironmentID, Payload: string(data), UpdatedAt: e.UpdatedAt}
	_, err = s.coll.ReplaceOne(ctx,
		bson.D{{Key: "_id", Value: e.EnvironmentID}},
		doc,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}

func (s *MongoStore) Load(ctx context.Context, environmentID string) (Entry, error) {
	var doc mongoEntry
	err := s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: environmentID}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Entry{}, ErrNotFound
	}
	if err != nil {
		return Entry{}, errors.Join(ErrStoreUnavailable, err)
	}

	var e Entry
	if err := json.Unmarshal([]byte(doc.Payload), &e); err != nil {
		return Entry{}, errors.Join(ErrCorruptEntry, err)
	}
	return e, nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	if err := s.coll.Database().Client().Ping(ctx, nil); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}
