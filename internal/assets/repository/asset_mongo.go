package repository

import (
	"context"
	"errors"
	"fmt"
	assetserrors "smartoffice/internal/assets/errors"
	"smartoffice/pkg/config"
	"smartoffice/pkg/model"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	fieldID               = "_id"
	fieldName             = "name"
	fieldType             = "type"
	fieldDescription      = "description"
	fieldIsAvailable      = "is_available"
	fieldBookedBy         = "booked_by"
	fieldBookedByFullName = "booked_by_full_name"
	fieldCreatedAt        = "created_at"
)

type mongoAssetRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoAssetRepository(cfg *config.Config) AssetRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoAssetRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func parseObjectID(id string) (primitive.ObjectID, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %s", assetserrors.ErrInvalidID, id)
	}
	return objectID, nil
}

func (r *mongoAssetRepository) Create(ctx context.Context, asset *model.Asset) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	asset.ID = ""
	asset.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, asset)
	if err != nil {
		return fmt.Errorf("failed to create asset: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		asset.ID = oid.Hex()
	}
	return nil
}

func (r *mongoAssetRepository) FindByID(ctx context.Context, id string) (*model.Asset, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	var asset model.Asset
	err = r.collection.FindOne(ctx, bson.M{fieldID: objectID}).Decode(&asset)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, assetserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find asset: %w", err)
	}

	return &asset, nil
}

func (r *mongoAssetRepository) FindAll(ctx context.Context, filter model.AssetFilter, limit int, offset int64) ([]*model.Asset, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: fieldCreatedAt, Value: 1}, {Key: fieldID, Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, buildFilter(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find assets: %w", err)
	}
	defer cursor.Close(ctx)

	assets := []*model.Asset{}
	if err = cursor.All(ctx, &assets); err != nil {
		return nil, fmt.Errorf("failed to decode assets: %w", err)
	}

	return assets, nil
}

func (r *mongoAssetRepository) Count(ctx context.Context, filter model.AssetFilter) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, buildFilter(filter))
	if err != nil {
		return 0, fmt.Errorf("failed to count assets: %w", err)
	}
	return count, nil
}

type typeCount struct {
	Type      string `bson:"_id"`
	Total     int64  `bson:"total"`
	Available int64  `bson:"available"`
}

func (r *mongoAssetRepository) Stats(ctx context.Context) (*model.AssetStats, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$" + fieldType},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "available", Value: bson.D{{Key: "$sum", Value: bson.D{
				{Key: "$cond", Value: bson.A{"$" + fieldIsAvailable, 1, 0}},
			}}}},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate asset stats: %w", err)
	}
	defer cursor.Close(ctx)

	var counts []typeCount
	if err = cursor.All(ctx, &counts); err != nil {
		return nil, fmt.Errorf("failed to decode asset stats: %w", err)
	}

	stats := newStats()
	for _, c := range counts {
		addStats(stats, c.Type, c.Total, c.Available)
	}
	return stats, nil
}

// Replace writes an edit only while the stored hold state still matches the
// snapshot the edit was built from.
func (r *mongoAssetRepository) Replace(ctx context.Context, id string, asset *model.Asset, expectedHolderID string) (bool, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := parseObjectID(id)
	if err != nil {
		return false, err
	}

	set := bson.M{
		fieldName:        asset.Name,
		fieldType:        asset.Type,
		fieldDescription: asset.Description,
		fieldIsAvailable: asset.IsAvailable,
	}
	unset := bson.M{}
	setOrUnset(set, unset, fieldBookedBy, asset.BookedBy)
	setOrUnset(set, unset, fieldBookedByFullName, asset.BookedByFullName)

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	result, err := r.collection.UpdateOne(ctx, replaceFilter(objectID, asset.IsAvailable, expectedHolderID), update)
	if err != nil {
		return false, fmt.Errorf("failed to replace asset: %w", err)
	}
	return result.MatchedCount == 1, nil
}

// replaceFilter matches the asset only in the hold state an edit was read in.
// An empty holder matches a missing or empty booked_by.
func replaceFilter(objectID primitive.ObjectID, isAvailable bool, expectedHolderID string) bson.M {
	filter := bson.M{
		fieldID:          objectID,
		fieldIsAvailable: isAvailable,
	}
	if expectedHolderID == "" {
		filter[fieldBookedBy] = bson.M{"$in": bson.A{nil, ""}}
	} else {
		filter[fieldBookedBy] = expectedHolderID
	}
	return filter
}

// TryBook flips an available asset to held in a single conditional update.
// The availability check lives in the filter, so two racing callers can never
// both match.
func (r *mongoAssetRepository) TryBook(ctx context.Context, id string, holderID string, holderName string) (bool, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := parseObjectID(id)
	if err != nil {
		return false, err
	}

	filter := bson.M{
		fieldID:          objectID,
		fieldIsAvailable: true,
	}
	set := bson.M{
		fieldIsAvailable: false,
		fieldBookedBy:    holderID,
	}
	unset := bson.M{}
	setOrUnset(set, unset, fieldBookedByFullName, holderName)

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to book asset: %w", err)
	}
	return result.ModifiedCount == 1, nil
}

// TryRelease frees a held asset in a single conditional update. When
// requiredHolderID is set, the stored holder must match it at write time.
func (r *mongoAssetRepository) TryRelease(ctx context.Context, id string, requiredHolderID string) (bool, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := parseObjectID(id)
	if err != nil {
		return false, err
	}

	filter := bson.M{
		fieldID:          objectID,
		fieldIsAvailable: false,
	}
	if requiredHolderID != "" {
		filter[fieldBookedBy] = requiredHolderID
	}
	update := bson.M{
		"$set": bson.M{fieldIsAvailable: true},
		"$unset": bson.M{
			fieldBookedBy:         "",
			fieldBookedByFullName: "",
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to release asset: %w", err)
	}
	return result.ModifiedCount == 1, nil
}

func (r *mongoAssetRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := parseObjectID(id)
	if err != nil {
		return err
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{fieldID: objectID})
	if err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}
	if result.DeletedCount == 0 {
		return assetserrors.ErrNotFound
	}
	return nil
}

func buildFilter(filter model.AssetFilter) bson.M {
	query := bson.M{}
	if filter.Type != "" {
		query[fieldType] = filter.Type
	}
	if filter.Available != nil {
		query[fieldIsAvailable] = *filter.Available
	}
	return query
}

func setOrUnset(set, unset bson.M, field, value string) {
	if value == "" {
		unset[field] = ""
		return
	}
	set[field] = value
}
