package services_test

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/pehnava/pehnava/app/models"
	"github.com/pehnava/pehnava/app/services"
)

// In-memory store fakes. They implement the services store interfaces
// over plain slices so the service logic can be exercised without Mongo.

type fakeUserStore struct {
	users []models.User
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, services.ErrNotFound
}

func (f *fakeUserStore) FindByID(_ context.Context, id primitive.ObjectID) (models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, services.ErrNotFound
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	f.users = append(f.users, *user)
	return nil
}

func (f *fakeUserStore) Update(_ context.Context, user *models.User) error {
	for i, u := range f.users {
		if u.ID == user.ID {
			f.users[i] = *user
			return nil
		}
	}
	return services.ErrNotFound
}

type fakeProductStore struct {
	products []models.Product
}

func (f *fakeProductStore) All(_ context.Context) ([]models.Product, error) {
	return append([]models.Product(nil), f.products...), nil
}

func (f *fakeProductStore) FindByID(_ context.Context, id primitive.ObjectID) (models.Product, error) {
	for _, p := range f.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, services.ErrNotFound
}

func (f *fakeProductStore) FindByOwner(_ context.Context, owner primitive.ObjectID) ([]models.Product, error) {
	var out []models.Product
	for _, p := range f.products {
		if p.Owner == owner {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductStore) IDsByOwner(_ context.Context, owner primitive.ObjectID) ([]primitive.ObjectID, error) {
	ids := []primitive.ObjectID{}
	for _, p := range f.products {
		if p.Owner == owner {
			ids = append(ids, p.ID)
		}
	}
	return ids, nil
}

func (f *fakeProductStore) Create(_ context.Context, product *models.Product) error {
	product.ID = primitive.NewObjectID()
	f.products = append(f.products, *product)
	return nil
}

func (f *fakeProductStore) Update(_ context.Context, product *models.Product) error {
	for i, p := range f.products {
		if p.ID == product.ID {
			f.products[i] = *product
			return nil
		}
	}
	return services.ErrNotFound
}

func (f *fakeProductStore) Delete(_ context.Context, id primitive.ObjectID) error {
	for i, p := range f.products {
		if p.ID == id {
			f.products = append(f.products[:i], f.products[i+1:]...)
			return nil
		}
	}
	return services.ErrNotFound
}

type fakeOrderStore struct {
	orders []models.Order
}

func (f *fakeOrderStore) Create(_ context.Context, order *models.Order) error {
	order.ID = primitive.NewObjectID()
	f.orders = append(f.orders, *order)
	return nil
}

func (f *fakeOrderStore) FindByID(_ context.Context, id primitive.ObjectID) (models.Order, error) {
	for _, o := range f.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return models.Order{}, services.ErrNotFound
}

func (f *fakeOrderStore) FindByBuyer(_ context.Context, buyer primitive.ObjectID) ([]models.Order, error) {
	var out []models.Order
	for _, o := range f.orders {
		if o.Buyer == buyer && !o.IsClearedByUser {
			out = append(out, o)
		}
	}
	return out, nil
}

func touches(o models.Order, ids []primitive.ObjectID) bool {
	for _, item := range o.OrderItems {
		for _, id := range ids {
			if item.Product == id {
				return true
			}
		}
	}
	return false
}

func (f *fakeOrderStore) FindTouchingProducts(_ context.Context, productIDs []primitive.ObjectID) ([]models.Order, error) {
	var out []models.Order
	for _, o := range f.orders {
		if touches(o, productIDs) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrderStore) CountTouchingProducts(ctx context.Context, productIDs []primitive.ObjectID) (int64, error) {
	orders, _ := f.FindTouchingProducts(ctx, productIDs)
	return int64(len(orders)), nil
}

func (f *fakeOrderStore) DistinctBuyersTouchingProducts(ctx context.Context, productIDs []primitive.ObjectID) ([]primitive.ObjectID, error) {
	seen := map[primitive.ObjectID]bool{}
	var out []primitive.ObjectID
	orders, _ := f.FindTouchingProducts(ctx, productIDs)
	for _, o := range orders {
		if !seen[o.Buyer] {
			seen[o.Buyer] = true
			out = append(out, o.Buyer)
		}
	}
	return out, nil
}

func (f *fakeOrderStore) Save(_ context.Context, order *models.Order) error {
	for i, o := range f.orders {
		if o.ID == order.ID {
			f.orders[i] = *order
			return nil
		}
	}
	return services.ErrNotFound
}

func (f *fakeOrderStore) ClearForBuyer(_ context.Context, buyer primitive.ObjectID) (int64, error) {
	var n int64
	for i, o := range f.orders {
		if o.Buyer == buyer && o.Status.Terminal() && !o.IsClearedByUser {
			f.orders[i].IsClearedByUser = true
			n++
		}
	}
	return n, nil
}

func (f *fakeOrderStore) Delete(_ context.Context, id primitive.ObjectID) error {
	for i, o := range f.orders {
		if o.ID == id {
			f.orders = append(f.orders[:i], f.orders[i+1:]...)
			return nil
		}
	}
	return services.ErrNotFound
}

type fakeTryOnStore struct {
	events []models.TryOnEvent
}

func (f *fakeTryOnStore) Insert(_ context.Context, event *models.TryOnEvent) error {
	event.ID = primitive.NewObjectID()
	f.events = append(f.events, *event)
	return nil
}

func (f *fakeTryOnStore) CountByAdmin(_ context.Context, admin primitive.ObjectID) (int64, error) {
	var n int64
	for _, e := range f.events {
		if e.Admin == admin {
			n++
		}
	}
	return n, nil
}

type fakeActivityStore struct {
	activities []models.Activity
}

func (f *fakeActivityStore) Insert(_ context.Context, activity *models.Activity) error {
	activity.ID = primitive.NewObjectID()
	f.activities = append(f.activities, *activity)
	return nil
}

func (f *fakeActivityStore) RecentByOwner(_ context.Context, owner primitive.ObjectID, limit int64) ([]models.Activity, error) {
	var out []models.Activity
	for i := len(f.activities) - 1; i >= 0 && int64(len(out)) < limit; i-- {
		if f.activities[i].Owner == owner {
			out = append(out, f.activities[i])
		}
	}
	return out, nil
}

// seedProduct adds a product owned by owner with the given price and
// returns its ID.
func seedProduct(store *fakeProductStore, owner primitive.ObjectID, name string, price float64) primitive.ObjectID {
	p := models.Product{Name: name, Price: price}
	p.Owner = owner
	_ = store.Create(context.Background(), &p)
	return p.ID
}
