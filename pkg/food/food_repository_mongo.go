package food

import (
	"Food-Quality-Registry/domain"
	"Food-Quality-Registry/entities"
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const foodProductCollection = "food_products"

type (
	// foodProductDocument is the BSON shape of entities.FoodProduct; ids are
	// kept as their canonical string form.
	foodProductDocument struct {
		ID               string     `bson:"_id"`
		UserID           string     `bson:"user_id"`
		BatchCode        string     `bson:"batch_code"`
		ProductName      string     `bson:"product_name"`
		Category         string     `bson:"category"`
		InspectionStatus string     `bson:"inspection_status"`
		ProductImage     *string    `bson:"product_image,omitempty"`
		Notes            string     `bson:"notes,omitempty"`
		ProductionDate   *time.Time `bson:"production_date,omitempty"`
		ExpiryDate       *time.Time `bson:"expiry_date,omitempty"`
		CreatedAt        time.Time  `bson:"created_at"`
		UpdatedAt        time.Time  `bson:"updated_at"`
	}

	mongoFoodRepository struct {
		collection *mongo.Collection
	}
)

func NewMongoFoodRepository(db *mongo.Database) FoodRepository {
	return &mongoFoodRepository{collection: db.Collection(foodProductCollection)}
}

// EnsureMongoIndexes creates the store-wide unique batch code index and the
// owner lookup index.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(foodProductCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "batch_code", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_food_products_batch_code"),
		},
		{
			Keys:    bson.D{{Key: "_id", Value: 1}, {Key: "user_id", Value: 1}},
			Options: options.Index().SetName("idx_food_products_id_user"),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetName("idx_food_products_user_id"),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create food product indexes: %w", err)
	}
	return nil
}

func toDocument(p *entities.FoodProduct) foodProductDocument {
	return foodProductDocument{
		ID:               p.ID.String(),
		UserID:           p.UserID.String(),
		BatchCode:        p.BatchCode,
		ProductName:      p.ProductName,
		Category:         p.Category,
		InspectionStatus: p.InspectionStatus,
		ProductImage:     p.ProductImage,
		Notes:            p.Notes,
		ProductionDate:   p.ProductionDate,
		ExpiryDate:       p.ExpiryDate,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func (d foodProductDocument) toEntity() (*entities.FoodProduct, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}
	userID, err := uuid.Parse(d.UserID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}
	return &entities.FoodProduct{
		ID:               id,
		UserID:           userID,
		BatchCode:        d.BatchCode,
		ProductName:      d.ProductName,
		Category:         d.Category,
		InspectionStatus: d.InspectionStatus,
		ProductImage:     d.ProductImage,
		Notes:            d.Notes,
		ProductionDate:   d.ProductionDate,
		ExpiryDate:       d.ExpiryDate,
		Timestamp: entities.Timestamp{
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
		},
	}, nil
}

// searchFilter builds the owner-scoped, case-insensitive substring filter.
func searchFilter(userID uuid.UUID, keyword string) bson.M {
	pattern := bson.M{"$regex": regexp.QuoteMeta(keyword), "$options": "i"}
	return bson.M{
		"user_id": userID.String(),
		"$or": []bson.M{
			{"product_name": pattern},
			{"batch_code": pattern},
			{"category": pattern},
		},
	}
}

func (r *mongoFoodRepository) find(ctx context.Context, filter bson.M) ([]*entities.FoodProduct, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find food products: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []foodProductDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode food products: %w", err)
	}

	products := make([]*entities.FoodProduct, 0, len(docs))
	for _, doc := range docs {
		p, err := doc.toEntity()
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, nil
}

func (r *mongoFoodRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.FoodProduct, error) {
	return r.find(ctx, bson.M{"user_id": userID.String()})
}

func (r *mongoFoodRepository) FindByUserIDWithSearch(ctx context.Context, userID uuid.UUID, keyword string) ([]*entities.FoodProduct, error) {
	return r.find(ctx, searchFilter(userID, keyword))
}

func (r *mongoFoodRepository) FindByIDAndUserID(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*entities.FoodProduct, error) {
	var doc foodProductDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": id.String(), "user_id": userID.String()}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrFoodProductNotFound
		}
		return nil, fmt.Errorf("failed to find food product: %w", err)
	}
	return doc.toEntity()
}

func (r *mongoFoodRepository) DeleteByIDAndUserID(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": id.String(), "user_id": userID.String()}); err != nil {
		return fmt.Errorf("failed to delete food product: %w", err)
	}
	return nil
}

func (r *mongoFoodRepository) CountByUserIDAndInspectionStatus(ctx context.Context, userID uuid.UUID, status string) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"user_id": userID.String(), "inspection_status": status})
	if err != nil {
		return 0, fmt.Errorf("failed to count food products: %w", err)
	}
	return count, nil
}

func (r *mongoFoodRepository) FindDistinctBatchCodesByUserID(ctx context.Context, userID uuid.UUID) ([]string, error) {
	values, err := r.collection.Distinct(ctx, "batch_code", bson.M{"user_id": userID.String()})
	if err != nil {
		return nil, fmt.Errorf("failed to list batch codes: %w", err)
	}

	batchCodes := make([]string, 0, len(values))
	for _, v := range values {
		if code, ok := v.(string); ok {
			batchCodes = append(batchCodes, code)
		}
	}
	sort.Strings(batchCodes)
	return batchCodes, nil
}

func (r *mongoFoodRepository) Save(ctx context.Context, product *entities.FoodProduct) error {
	doc := toDocument(product)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrBatchCodeExists
		}
		return fmt.Errorf("failed to save food product: %w", err)
	}
	return nil
}
