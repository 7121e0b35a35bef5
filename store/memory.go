package store

import (
	"context"
	"sync"

	"desireways/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memStore keeps everything in process memory behind one mutex, which gives
// it the same single-document atomicity the Mongo operators provide. Used by
// the test suite and for local development without a database.
type memStore struct {
	mu        sync.Mutex
	users     map[primitive.ObjectID]*models.User
	products  map[string]models.Product
	order     []string
	reviews   map[primitive.ObjectID]*models.Review
	reviewSeq []primitive.ObjectID
}

func NewMemory() Store {
	return &memStore{
		users:    make(map[primitive.ObjectID]*models.User),
		products: make(map[string]models.Product),
		reviews:  make(map[primitive.ObjectID]*models.Review),
	}
}

func copyUser(u *models.User) *models.User {
	c := *u
	c.ReferredUsers = append([]primitive.ObjectID(nil), u.ReferredUsers...)
	c.PointsLog = append([]models.PointsEntry(nil), u.PointsLog...)
	c.Wishlist = append([]models.WishlistItem(nil), u.Wishlist...)
	c.Logs = append([]models.AuditLog(nil), u.Logs...)
	if u.Profile != nil {
		p := *u.Profile
		c.Profile = &p
	}
	return &c
}

func (s *memStore) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return ErrDuplicate
		}
	}
	s.users[user.ID] = copyUser(user)
	return nil
}

func (s *memStore) UserByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyUser(u), nil
}

func (s *memStore) UserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return nil, ErrNotFound
}

func (s *memStore) UserByReferralCode(_ context.Context, code string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ReferralCode == code {
			return copyUser(u), nil
		}
	}
	return nil, ErrNotFound
}

func (s *memStore) CreditReferrer(_ context.Context, referrerID, referredID primitive.ObjectID, points int, entry models.PointsEntry) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[referrerID]
	if !ok {
		return false, nil
	}
	for _, id := range u.ReferredUsers {
		if id == referredID {
			return false, nil
		}
	}
	u.Points += points
	u.ReferralsCount++
	u.PointsLog = append(u.PointsLog, entry)
	u.ReferredUsers = append(u.ReferredUsers, referredID)
	return true, nil
}

func (s *memStore) CompleteProfile(_ context.Context, userID primitive.ObjectID, profile models.Profile, bonus models.PointsEntry, editedAt int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok || u.ProfileStatus == models.ProfileComplete {
		return false, nil
	}
	u.Profile = &profile
	u.ProfileStatus = models.ProfileComplete
	u.LastProfileEditAt = editedAt
	u.Points += bonus.Points
	u.PointsLog = append(u.PointsLog, bonus)
	return true, nil
}

func (s *memStore) UpdateProfile(_ context.Context, userID primitive.ObjectID, profile models.Profile, editedAt int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return ErrNotFound
	}
	u.Profile = &profile
	u.LastProfileEditAt = editedAt
	return nil
}

func (s *memStore) AppendAuditLog(_ context.Context, userID primitive.ObjectID, entry models.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return ErrNotFound
	}
	u.Logs = append(u.Logs, entry)
	return nil
}

func (s *memStore) AddToWishlist(_ context.Context, userID primitive.ObjectID, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return ErrNotFound
	}
	for _, item := range u.Wishlist {
		if item.ProductID == productID {
			return nil
		}
	}
	u.Wishlist = append(u.Wishlist, models.WishlistItem{ProductID: productID})
	return nil
}

func (s *memStore) RemoveFromWishlist(_ context.Context, userID primitive.ObjectID, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return ErrNotFound
	}
	kept := u.Wishlist[:0]
	for _, item := range u.Wishlist {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	u.Wishlist = kept
	return nil
}

func (s *memStore) Products(_ context.Context, category string) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var products []models.Product
	for _, id := range s.order {
		p := s.products[id]
		if category == "" || p.Category == category {
			products = append(products, p)
		}
	}
	return products, nil
}

func (s *memStore) ProductByID(_ context.Context, id string) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (s *memStore) SeedProducts(_ context.Context, products []models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.products) > 0 {
		return nil
	}
	for _, p := range products {
		s.products[p.ID] = p
		s.order = append(s.order, p.ID)
	}
	return nil
}

func (s *memStore) InsertReview(_ context.Context, review *models.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *review
	s.reviews[review.ID] = &c
	s.reviewSeq = append(s.reviewSeq, review.ID)
	return nil
}

func (s *memStore) ReviewByID(_ context.Context, id primitive.ObjectID) (*models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reviews[id]
	if !ok {
		return nil, ErrNotFound
	}
	c := *r
	return &c, nil
}

func (s *memStore) UpdateReview(_ context.Context, id, userID primitive.ObjectID, rating int, text string, updatedAt int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reviews[id]
	if !ok || r.UserID != userID {
		return false, nil
	}
	r.Rating = rating
	r.Text = text
	r.UpdatedAt = updatedAt
	return true, nil
}

func (s *memStore) DeleteReview(_ context.Context, id, userID primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reviews[id]
	if !ok || r.UserID != userID {
		return false, nil
	}
	delete(s.reviews, id)
	return true, nil
}

func (s *memStore) ReviewsByProduct(_ context.Context, productID string) ([]models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var reviews []models.Review
	for _, id := range s.reviewSeq {
		r, ok := s.reviews[id]
		if ok && r.ProductID == productID {
			reviews = append(reviews, *r)
		}
	}
	return reviews, nil
}
