package products

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName is the MongoDB collection holding products.
const CollectionName = "produtos"

// productDocument is the stored shape. Price is Decimal128 so repeated
// read-modify-write cycles never go through a binary float.
type productDocument struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	Name        string               `bson:"nome"`
	Price       primitive.Decimal128 `bson:"preco"`
	Description string               `bson:"descricao"`
}

type mongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepository{collection: db.Collection(CollectionName)}
}

func (r *mongoRepository) ValidID(id string) bool {
	return primitive.IsValidObjectID(id)
}

func (r *mongoRepository) Save(ctx context.Context, p Product) (Product, error) {
	if p.ID != "" {
		stored, updated, err := r.Update(ctx, p)
		if err != nil {
			return Product{}, err
		}
		if !updated {
			return Product{}, fmt.Errorf("update product %s: no document modified", p.ID)
		}
		return stored, nil
	}

	doc, err := toDocument(p)
	if err != nil {
		return Product{}, err
	}

	res, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return Product{}, fmt.Errorf("insert product: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return Product{}, fmt.Errorf("insert product: unexpected id type %T", res.InsertedID)
	}

	p.ID = oid.Hex()
	log.Debug().Str("product_id", p.ID).Msg("product inserted into mongodb")
	return p, nil
}

func (r *mongoRepository) FindByID(ctx context.Context, id string) (Product, bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		log.Warn().Str("product_id", id).Msg("lookup with malformed product id")
		return Product{}, false, nil
	}

	var doc productDocument
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Product{}, false, nil
	}
	if err != nil {
		return Product{}, false, fmt.Errorf("find product %s: %w", id, err)
	}

	p, err := fromDocument(doc)
	if err != nil {
		return Product{}, false, err
	}
	return p, true, nil
}

func (r *mongoRepository) FindAll(ctx context.Context) ([]Product, error) {
	cursor, err := r.collection.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []productDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	products := make([]Product, 0, len(docs))
	for _, doc := range docs {
		p, err := fromDocument(doc)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, nil
}

// Update reports true only when the document's fields actually changed.
// The returned product carries the price as decoded from its stored form.
func (r *mongoRepository) Update(ctx context.Context, p Product) (Product, bool, error) {
	oid, err := primitive.ObjectIDFromHex(p.ID)
	if err != nil {
		log.Warn().Str("product_id", p.ID).Msg("update with malformed product id")
		return Product{}, false, nil
	}

	price, err := toDecimal128(p.Price)
	if err != nil {
		return Product{}, false, err
	}

	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{
			"nome":      p.Name,
			"preco":     price,
			"descricao": p.Description,
		}},
	)
	if err != nil {
		return Product{}, false, fmt.Errorf("update product %s: %w", p.ID, err)
	}

	if res.ModifiedCount == 0 {
		log.Warn().Str("product_id", p.ID).Int64("matched", res.MatchedCount).Msg("no product modified")
		return Product{}, false, nil
	}

	if p.Price, err = fromDecimal128(price); err != nil {
		return Product{}, false, err
	}
	return p, true, nil
}

func (r *mongoRepository) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		log.Warn().Str("product_id", id).Msg("delete with malformed product id")
		return false, nil
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, fmt.Errorf("delete product %s: %w", id, err)
	}
	return res.DeletedCount > 0, nil
}

func toDocument(p Product) (productDocument, error) {
	price, err := toDecimal128(p.Price)
	if err != nil {
		return productDocument{}, err
	}
	return productDocument{
		Name:        p.Name,
		Price:       price,
		Description: p.Description,
	}, nil
}

func fromDocument(doc productDocument) (Product, error) {
	price, err := fromDecimal128(doc.Price)
	if err != nil {
		return Product{}, fmt.Errorf("product %s: %w", doc.ID.Hex(), err)
	}
	return Product{
		ID:          doc.ID.Hex(),
		Name:        doc.Name,
		Price:       price,
		Description: doc.Description,
	}, nil
}

func toDecimal128(d decimal.Decimal) (primitive.Decimal128, error) {
	v, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		return primitive.Decimal128{}, fmt.Errorf("encode price %s: %w", d, err)
	}
	return v, nil
}

func fromDecimal128(v primitive.Decimal128) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(v.String())
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("decode price %s: %w", v, err)
	}
	return d, nil
}
