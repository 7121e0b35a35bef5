package store

import (
	"context"

	"desireways/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoStore struct {
	users    *mongo.Collection
	products *mongo.Collection
	reviews  *mongo.Collection
}

// NewMongo wraps a connected database. Counter and array mutations go
// through $inc / $addToSet / $push / $pull so they stay atomic at the
// document level under concurrent writers.
func NewMongo(db *mongo.Database) Store {
	return &mongoStore{
		users:    db.Collection("users"),
		products: db.Collection("products"),
		reviews:  db.Collection("reviews"),
	}
}

func (s *mongoStore) CreateUser(ctx context.Context, user *models.User) error {
	_, err := s.users.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

func (s *mongoStore) findUser(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	err := s.users.FindOne(ctx, filter).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *mongoStore) UserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.findUser(ctx, bson.M{"_id": id})
}

func (s *mongoStore) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findUser(ctx, bson.M{"email": email})
}

func (s *mongoStore) UserByReferralCode(ctx context.Context, code string) (*models.User, error) {
	return s.findUser(ctx, bson.M{"referralCode": code})
}

func (s *mongoStore) CreditReferrer(ctx context.Context, referrerID, referredID primitive.ObjectID, points int, entry models.PointsEntry) (bool, error) {
	// Filtering on the referred user id not being recorded yet makes the
	// whole credit conditional, so retried signups cannot double-credit.
	result, err := s.users.UpdateOne(ctx,
		bson.M{"_id": referrerID, "referredUsers": bson.M{"$ne": referredID}},
		bson.M{
			"$inc":      bson.M{"points": points, "referralsCount": 1},
			"$push":     bson.M{"pointsLog": entry},
			"$addToSet": bson.M{"referredUsers": referredID},
		},
	)
	if err != nil {
		return false, err
	}
	return result.ModifiedCount == 1, nil
}

func (s *mongoStore) CompleteProfile(ctx context.Context, userID primitive.ObjectID, profile models.Profile, bonus models.PointsEntry, editedAt int64) (bool, error) {
	result, err := s.users.UpdateOne(ctx,
		bson.M{"_id": userID, "profileStatus": bson.M{"$ne": models.ProfileComplete}},
		bson.M{
			"$set": bson.M{
				"profile":           profile,
				"profileStatus":     models.ProfileComplete,
				"lastProfileEditAt": editedAt,
			},
			"$inc":  bson.M{"points": bonus.Points},
			"$push": bson.M{"pointsLog": bonus},
		},
	)
	if err != nil {
		return false, err
	}
	return result.ModifiedCount == 1, nil
}

func (s *mongoStore) UpdateProfile(ctx context.Context, userID primitive.ObjectID, profile models.Profile, editedAt int64) error {
	result, err := s.users.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{"profile": profile, "lastProfileEditAt": editedAt}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *mongoStore) AppendAuditLog(ctx context.Context, userID primitive.ObjectID, entry models.AuditLog) error {
	_, err := s.users.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$push": bson.M{"logs": entry}},
	)
	return err
}

func (s *mongoStore) AddToWishlist(ctx context.Context, userID primitive.ObjectID, productID string) error {
	result, err := s.users.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$addToSet": bson.M{"wishlist": models.WishlistItem{ProductID: productID}}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *mongoStore) RemoveFromWishlist(ctx context.Context, userID primitive.ObjectID, productID string) error {
	result, err := s.users.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$pull": bson.M{"wishlist": models.WishlistItem{ProductID: productID}}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *mongoStore) Products(ctx context.Context, category string) ([]models.Product, error) {
	filter := bson.M{}
	if category != "" {
		filter["category"] = category
	}
	cursor, err := s.products.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *mongoStore) ProductByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	err := s.products.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *mongoStore) SeedProducts(ctx context.Context, products []models.Product) error {
	count, err := s.products.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if count > 0 || len(products) == 0 {
		return nil
	}
	docs := make([]interface{}, len(products))
	for i := range products {
		docs[i] = products[i]
	}
	_, err = s.products.InsertMany(ctx, docs)
	return err
}

func (s *mongoStore) InsertReview(ctx context.Context, review *models.Review) error {
	_, err := s.reviews.InsertOne(ctx, review)
	return err
}

func (s *mongoStore) ReviewByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error) {
	var review models.Review
	err := s.reviews.FindOne(ctx, bson.M{"_id": id}).Decode(&review)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (s *mongoStore) UpdateReview(ctx context.Context, id, userID primitive.ObjectID, rating int, text string, updatedAt int64) (bool, error) {
	result, err := s.reviews.UpdateOne(ctx,
		bson.M{"_id": id, "userId": userID},
		bson.M{"$set": bson.M{"rating": rating, "text": text, "updatedAt": updatedAt}},
	)
	if err != nil {
		return false, err
	}
	return result.MatchedCount == 1, nil
}

func (s *mongoStore) DeleteReview(ctx context.Context, id, userID primitive.ObjectID) (bool, error) {
	result, err := s.reviews.DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		return false, err
	}
	return result.DeletedCount == 1, nil
}

func (s *mongoStore) ReviewsByProduct(ctx context.Context, productID string) ([]models.Review, error) {
	cursor, err := s.reviews.Find(ctx, bson.M{"productId": productID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}
